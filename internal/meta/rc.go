package meta

// Rc is the action code returned by a parse. Most settings return RcOk; layout
// commands return a code the caller acts on.
type Rc int

// Action codes.
const (
	RcOk Rc = iota
	RcFailure
	RcRangeError
	RcInvalidLDrawLine
	RcStep
	RcRotStep
	RcClear
	RcNoStep
	RcCalloutBegin
	RcCalloutDivider
	RcCalloutEnd
	RcCalloutPointer
	RcCalloutDividerPointer
	RcCalloutPointerAttrib
	RcCalloutDividerPointerAttrib
	RcStepGroupBegin
	RcStepGroupDivider
	RcStepGroupEnd
	RcStepGroupDividerPointer
	RcStepGroupDividerPointerAttrib
	RcPagePointer
	RcPagePointerAttrib
	RcInsert
	RcInsertPage
	RcInsertCoverPage
	RcInsertFinalModel
	RcBufferStore
	RcBufferLoad
	RcMLCadSkipBegin
	RcMLCadSkipEnd
	RcMLCadGroup
	RcLDCadGroup
	RcLeoCadGroupBegin
	RcLeoCadGroupEnd
	RcPliBeginIgn
	RcPliBeginSub1
	RcPliBeginSub2
	RcPliEnd
	RcPartBeginIgn
	RcPartEnd
	RcBomBeginIgn
	RcBomEnd
	RcPageOrientation
	RcPageSize
	RcReserveSpace
	RcRemoveGroup
	RcRemovePart
	RcRemoveName
	RcSynthBegin
	RcSynthEnd
	RcResolution
	RcInclude
	RcContStepNum
	RcCountInstance
	RcStepPliPerStep
)

var rcNames = map[Rc]string{
	RcOk:                            "Ok",
	RcFailure:                       "ParseFailure",
	RcRangeError:                    "RangeError",
	RcInvalidLDrawLine:              "InvalidLDrawLine",
	RcStep:                          "Step",
	RcRotStep:                       "RotStep",
	RcClear:                         "Clear",
	RcNoStep:                        "NoStep",
	RcCalloutBegin:                  "CalloutBegin",
	RcCalloutDivider:                "CalloutDivider",
	RcCalloutEnd:                    "CalloutEnd",
	RcCalloutPointer:                "CalloutPointer",
	RcCalloutDividerPointer:         "CalloutDividerPointer",
	RcCalloutPointerAttrib:          "CalloutPointerAttrib",
	RcCalloutDividerPointerAttrib:   "CalloutDividerPointerAttrib",
	RcStepGroupBegin:                "StepGroupBegin",
	RcStepGroupDivider:              "StepGroupDivider",
	RcStepGroupEnd:                  "StepGroupEnd",
	RcStepGroupDividerPointer:       "StepGroupDividerPointer",
	RcStepGroupDividerPointerAttrib: "StepGroupDividerPointerAttrib",
	RcPagePointer:                   "PagePointer",
	RcPagePointerAttrib:             "PagePointerAttrib",
	RcInsert:                        "Insert",
	RcInsertPage:                    "InsertPage",
	RcInsertCoverPage:               "InsertCoverPage",
	RcInsertFinalModel:              "InsertFinalModel",
	RcBufferStore:                   "BufferStore",
	RcBufferLoad:                    "BufferLoad",
	RcMLCadSkipBegin:                "MLCadSkipBegin",
	RcMLCadSkipEnd:                  "MLCadSkipEnd",
	RcMLCadGroup:                    "MLCadGroup",
	RcLDCadGroup:                    "LDCadGroup",
	RcLeoCadGroupBegin:              "LeoCadGroupBegin",
	RcLeoCadGroupEnd:                "LeoCadGroupEnd",
	RcPliBeginIgn:                   "PliBeginIgn",
	RcPliBeginSub1:                  "PliBeginSub1",
	RcPliBeginSub2:                  "PliBeginSub2",
	RcPliEnd:                        "PliEnd",
	RcPartBeginIgn:                  "PartBeginIgn",
	RcPartEnd:                       "PartEnd",
	RcBomBeginIgn:                   "BomBeginIgn",
	RcBomEnd:                        "BomEnd",
	RcPageOrientation:               "PageOrientation",
	RcPageSize:                      "PageSize",
	RcReserveSpace:                  "ReserveSpace",
	RcRemoveGroup:                   "RemoveGroup",
	RcRemovePart:                    "RemovePart",
	RcRemoveName:                    "RemoveName",
	RcSynthBegin:                    "SynthBegin",
	RcSynthEnd:                      "SynthEnd",
	RcResolution:                    "Resolution",
	RcInclude:                       "Include",
	RcContStepNum:                   "ContStepNum",
	RcCountInstance:                 "CountInstance",
	RcStepPliPerStep:                "StepPliPerStep",
}

// String returns the code name.
func (rc Rc) String() string {
	if name, ok := rcNames[rc]; ok {
		return name
	}
	return "Unknown"
}

// IsError reports whether the code signals a rejected line.
func (rc Rc) IsError() bool {
	return rc == RcFailure || rc == RcRangeError
}

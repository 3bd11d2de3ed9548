package meta

// attach registers n under keyword in b and returns it, so schema constructors can
// declare and wire a field in one statement.
func attach[N Node](b *Branch, keyword string, n N) N {
	b.add(keyword, n)
	return n
}

func withRc[N Node](n N, rc Rc) N {
	n.base().rc = rc
	return n
}

func margins(b *Branch, x, y float64) *FloatPair {
	return attach(b, "MARGINS", NewFloatPair(x, y, 0, 1000, 4))
}

func parms(b *Branch, keyword, value string) *String {
	return attach(b, keyword, NewString(value))
}

// Camera holds the view settings shared by assembly and parts list images.
type Camera struct {
	DistanceFactor *Int
	FoV            *Float
	Angles         *FloatPair
	Distance       *Int
	ZNear          *Float
	ZFar           *Float
}

func newCamera(b *Branch, latitude, longitude float64) Camera {
	native := b.branch("CAMERA_DISTANCE_NATIVE")
	return Camera{
		DistanceFactor: attach(native, "FACTOR", NewInt(1000, -5000, 5000)),
		FoV:            attach(b, "CAMERA_FOV", NewFloat(0.01, 0, 360, 4)),
		Angles:         attach(b, "CAMERA_ANGLES", NewFloatPair(latitude, longitude, -360, 360, 2)),
		Distance:       attach(b, "CAMERA_DISTANCE", NewInt(-1, -1, 1000000)),
		ZNear:          attach(b, "CAMERA_ZNEAR", NewFloat(10, -1e6, 1e6, 2)),
		ZFar:           attach(b, "CAMERA_ZFAR", NewFloat(4000, -1e6, 1e6, 2)),
	}
}

// NumberMeta is the font, color and margins of a step, page or instance number.
type NumberMeta struct {
	*Branch
	Placement *Placement
	Color     *String
	Font      *String
	Margin    *FloatPair
}

func newNumber(parent *Branch, keyword string, spot Spot, rel RelativeTo, font string) *NumberMeta {
	b := parent.branch(keyword)
	return &NumberMeta{
		Branch:    b,
		Placement: attach(b, "PLACEMENT", NewPlacement(spot, rel)),
		Color:     attach(b, "FONT_COLOR", NewString("black")),
		Font:      attach(b, "FONT", NewString(font)),
		Margin:    margins(b, 0.05, 0.05),
	}
}

// PageAttributeText is a text item printed on cover or content pages.
type PageAttributeText struct {
	*Branch
	Font      *String
	Color     *String
	Alignment *Choice
	Margin    *FloatPair
	Placement *Placement
	Content   *String
	Display   *Bool
}

func newPageAttributeText(parent *Branch, keyword string) *PageAttributeText {
	b := parent.branch(keyword)
	return &PageAttributeText{
		Branch:    b,
		Font:      attach(b, "FONT", NewString("Arial,18,-1,255,75,0,0,0,0,0")),
		Color:     attach(b, "COLOR", NewString("black")),
		Alignment: attach(b, "ALIGNMENT", NewChoice("LEFT", "LEFT", "CENTER", "RIGHT")),
		Margin:    margins(b, 0, 0),
		Placement: attach(b, "PLACEMENT", NewPlacement(TopLeftInsideCorner, PageType)),
		Content:   attach(b, "CONTENT", NewString("")),
		Display:   attach(b, "DISPLAY", NewBool(true)),
	}
}

// PageAttributePicture is an image printed on cover or content pages.
type PageAttributePicture struct {
	*Branch
	Placement *Placement
	Margin    *FloatPair
	Scale     *Float
	File      *String
	Display   *Bool
	Stretch   *Bool
	Tile      *Bool
}

func newPageAttributePicture(parent *Branch, keyword string) *PageAttributePicture {
	b := parent.branch(keyword)
	return &PageAttributePicture{
		Branch:    b,
		Placement: attach(b, "PLACEMENT", NewPlacement(TopLeftInsideCorner, PageType)),
		Margin:    margins(b, 0, 0),
		Scale:     attach(b, "SCALE", NewFloat(1, -10000, 10000, 4)),
		File:      attach(b, "FILE", NewString("")),
		Display:   attach(b, "DISPLAY", NewBool(true)),
		Stretch:   attach(b, "STRETCH", NewBool(false)),
		Tile:      attach(b, "TILE", NewBool(false)),
	}
}

// PageBand is the page header or footer.
type PageBand struct {
	*Branch
	Placement *Placement
	Size      *FloatPair
}

func newPageBand(parent *Branch, keyword string, spot Spot) *PageBand {
	b := parent.branch(keyword)
	return &PageBand{
		Branch:    b,
		Placement: attach(b, "PLACEMENT", NewPlacement(spot, PageType)),
		Size:      attach(b, "SIZE", NewFloatPair(8.2677, 0.3, 0.1, 1000, 4)),
	}
}

// Text attributes of PAGE, in registration order.
var pageTextAttributes = []string{
	"DOCUMENT_TITLE_FRONT", "DOCUMENT_TITLE_BACK", "MODEL_ID", "MODEL_DESCRIPTION",
	"MODEL_PARTS", "DOCUMENT_AUTHOR_FRONT", "DOCUMENT_AUTHOR_BACK", "DOCUMENT_AUTHOR",
	"PUBLISH_DESCRIPTION", "PUBLISH_URL", "PUBLISH_URL_BACK", "PUBLISH_EMAIL",
	"PUBLISH_EMAIL_BACK", "PUBLISH_COPYRIGHT_BACK", "PUBLISH_COPYRIGHT",
	"LEGO_DISCLAIMER", "APP_PLUG", "MODEL_CATEGORY",
}

// Picture attributes of PAGE, in registration order.
var pagePictureAttributes = []string{
	"DOCUMENT_LOGO_FRONT", "DOCUMENT_LOGO_BACK", "DOCUMENT_COVER_IMAGE", "APP_PLUG_IMAGE",
}

// PageMeta configures the page itself.
type PageMeta struct {
	*Branch
	Size              *PageSize
	Orientation       *Choice
	Margin            *FloatPair
	Border            *Border
	Background        *Background
	DisplayPageNumber *Bool
	TogglePnPlacement *Bool
	Number            *NumberMeta
	InstanceCount     *NumberMeta
	SubModelColor     *StringList
	Pointer           *Pointer
	PointerAttrib     *PointerAttrib
	Header            *PageBand
	Footer            *PageBand
	Text              map[string]*PageAttributeText
	Pictures          map[string]*PageAttributePicture
}

func newPageMeta(parent *Branch, resolution *Resolution) *PageMeta {
	b := parent.branch("PAGE")
	m := &PageMeta{
		Branch:            b,
		Size:              attach(b, "SIZE", NewPageSize(func() ResolutionUnit { return resolution.Value().Unit })),
		Orientation:       attach(b, "ORIENTATION", withRc(NewChoice("PORTRAIT", "PORTRAIT", "LANDSCAPE"), RcPageOrientation)),
		Margin:            margins(b, 0.05, 0.05),
		Border:            attach(b, "BORDER", NewBorder(BorderData{Kind: BdrNone, Line: solid, Color: "Black"})),
		Background:        attach(b, "BACKGROUND", NewBackground(BackgroundData{Kind: BgColor, Text: "#ffffff"})),
		DisplayPageNumber: attach(b, "DISPLAY_PAGE_NUMBER", NewBool(true)),
		TogglePnPlacement: attach(b, "TOGGLE_PAGE_NUMBER_PLACEMENT", NewBool(false)),
		Number:            newNumber(b, "NUMBER", BottomLeftOutside, PageType, "Arial,24,-1,255,75,0,0,0,0,0"),
		InstanceCount:     newNumber(b, "SUBMODEL_INSTANCE_COUNT", BottomLeftOutside, PageType, "Arial,48,-1,255,75,0,0,0,0,0"),
		SubModelColor:     attach(b, "SUBMODEL_BACKGROUND_COLOR", NewStringList("#FFFFE0", "#FFE4E0", "#FFFFE0", "#E0E0E0")),
		Pointer:           attach(b, "POINTER", NewPointer(RcPagePointer, true)),
		PointerAttrib:     attach(b, "POINTER_ATTRIBUTE", NewPointerAttrib(RcPagePointerAttrib)),
		Header:            newPageBand(b, "PAGE_HEADER", Spot(7)),
		Footer:            newPageBand(b, "PAGE_FOOTER", Spot(17)),
		Text:              make(map[string]*PageAttributeText),
		Pictures:          make(map[string]*PageAttributePicture),
	}
	for _, kw := range pageTextAttributes {
		m.Text[kw] = newPageAttributeText(b, kw)
	}
	for _, kw := range pagePictureAttributes {
		m.Pictures[kw] = newPageAttributePicture(b, kw)
	}
	return m
}

// AssemMeta configures the assembly image of a step.
type AssemMeta struct {
	*Branch
	Margin         *FloatPair
	Placement      *Placement
	ModelScale     *Float
	LDGliteParms   *String
	LDViewParms    *String
	PovrayParms    *String
	ShowStepNumber *Bool
	Annotation     *Bool
	Camera
}

func newAssemMeta(parent *Branch) *AssemMeta {
	b := parent.branch("ASSEM")
	return &AssemMeta{
		Branch:         b,
		Margin:         margins(b, 0, 0),
		Placement:      attach(b, "PLACEMENT", NewPlacement(CenterCenter, PageType)),
		ModelScale:     attach(b, "MODEL_SCALE", NewFloat(1.0, -10000, 10000, 4)),
		LDGliteParms:   parms(b, "LDGLITE_PARMS", "-l3"),
		LDViewParms:    parms(b, "LDVIEW_PARMS", ""),
		PovrayParms:    parms(b, "POVRAY_PARMS", "+A"),
		ShowStepNumber: attach(b, "SHOW_STEP_NUMBER", NewBool(true)),
		Annotation:     attach(b, "ANNOTATION", NewBool(false)),
		Camera:         newCamera(b, 23, 45),
	}
}

// PartMeta holds the margins around each part image.
type PartMeta struct {
	*Branch
	Margin *FloatPair
}

// PartsBegin opens an ignored or substituted region of a parts list.
type PartsBegin struct {
	*Branch
	Ignore *Action
	Sub    *Sub
}

// PliMeta configures a parts list. The bill of materials uses the same shape.
type PliMeta struct {
	*Branch
	Placement     *Placement
	Constrain     *Constrain
	Border        *Border
	Background    *Background
	Margin        *FloatPair
	Instance      *NumberMeta
	Annotate      *Bool
	ModelScale    *Float
	Show          *Bool
	LDViewParms   *String
	LDGliteParms  *String
	PovrayParms   *String
	IncludeSubs   *Bool
	SubModelColor *StringList
	Part          *PartMeta
	Begin         *PartsBegin
	End           *Action
	Sort          *Bool
	SortBy        *String
	Camera
}

func newPliMeta(parent *Branch, keyword string, spot Spot, rel RelativeTo, ignoreRc, endRc Rc) *PliMeta {
	b := parent.branch(keyword)
	part := b.branch("PART")
	begin := b.branch("BEGIN")
	return &PliMeta{
		Branch:        b,
		Placement:     attach(b, "PLACEMENT", NewPlacement(spot, rel)),
		Constrain:     attach(b, "CONSTRAIN", NewConstrain()),
		Border:        attach(b, "BORDER", NewBorder(BorderData{Kind: BdrRound, Line: solid, Color: "Black", Thickness: 1.0 / 64, Radius: 15})),
		Background:    attach(b, "BACKGROUND", NewBackground(BackgroundData{Kind: BgColor, Text: "#ffffff"})),
		Margin:        margins(b, 0.05, 0.05),
		Instance:      newNumber(b, "INSTANCE_COUNT", Spot(18), PageType, "Arial,36,-1,255,75,0,0,0,0,0"),
		Annotate:      attach(b, "ANNOTATE", NewBool(true)),
		ModelScale:    attach(b, "MODEL_SCALE", NewFloat(1.0, -10000, 10000, 4)),
		Show:          attach(b, "SHOW", NewBool(true)),
		LDViewParms:   parms(b, "LDVIEW_PARMS", ""),
		LDGliteParms:  parms(b, "LDGLITE_PARMS", "-fh"),
		PovrayParms:   parms(b, "POVRAY_PARMS", "+A"),
		IncludeSubs:   attach(b, "INCLUDE_SUBMODELS", NewBool(false)),
		SubModelColor: attach(b, "SUBMODEL_BACKGROUND_COLOR", NewStringList("#FFFFE0")),
		Part:          &PartMeta{Branch: part, Margin: margins(part, 0.05, 0.03)},
		Begin: &PartsBegin{
			Branch: begin,
			Ignore: attach(begin, "IGN", NewAction(ignoreRc)),
			Sub:    attach(begin, "SUB", NewSub()),
		},
		End:    attach(b, "END", NewAction(endRc)),
		Sort:   attach(b, "SORT", NewBool(false)),
		SortBy: attach(b, "SORT_BY", NewString("PART_SIZE")),
		Camera: newCamera(b, 23, -45),
	}
}

// ItemMeta is a placed item with margins, as used for the assembly, parts list and
// submodel inside callouts and step groups.
type ItemMeta struct {
	*Branch
	Placement *Placement
	Margin    *FloatPair
	PerStep   *Bool
	Show      *Bool
}

func newItem(parent *Branch, keyword string, spot Spot, rel RelativeTo) *ItemMeta {
	b := parent.branch(keyword)
	return &ItemMeta{
		Branch:    b,
		Placement: attach(b, "PLACEMENT", NewPlacement(spot, rel)),
		Margin:    margins(b, 0, 0),
	}
}

// RotateIconMeta configures the icon shown when the model is rotated between steps.
type RotateIconMeta struct {
	*Branch
	Size       *FloatPair
	Placement  *Placement
	Border     *Border
	Background *Background
	Margin     *FloatPair
	Display    *Bool
	Scale      *Float
	ArrowColor *String
	ArrowHead  *ArrowHead
	ArrowEnd   *Choice
}

func newRotateIcon(parent *Branch) *RotateIconMeta {
	b := parent.branch("ROTATE_ICON")
	return &RotateIconMeta{
		Branch:     b,
		Size:       attach(b, "SIZE", NewFloatPair(0.52, 0.52, 0.1, 3, 4)),
		Placement:  attach(b, "PLACEMENT", NewPlacement(RightTopOutside, AssemType)),
		Border:     attach(b, "BORDER", NewBorder(BorderData{Kind: BdrRound, Line: solid, Color: "Black", Thickness: 1.0 / 64, Radius: 10})),
		Background: attach(b, "BACKGROUND", NewBackground(BackgroundData{Kind: BgTransparent})),
		Margin:     margins(b, 0, 0),
		Display:    attach(b, "DISPLAY", NewBool(true)),
		Scale:      attach(b, "SCALE", NewFloat(1, -10000, 10000, 4)),
		ArrowColor: attach(b, "ARROW_COLOR", NewString("Blue")),
		ArrowHead:  attach(b, "ARROW_HEAD", NewArrowHead(0, 0.125, 0.25, 0.0625)),
		ArrowEnd:   attach(b, "ARROW_END", NewChoice("SQUARE", "SQUARE", "ROUND")),
	}
}

// SubModelMeta configures the submodel preview shown at the first step of a submodel.
type SubModelMeta struct {
	*Branch
	ShowStep          *Bool
	Placement         *Placement
	Constrain         *Constrain
	Border            *Border
	Background        *Background
	Margin            *FloatPair
	Instance          *NumberMeta
	ModelScale        *Float
	Show              *Bool
	ShowTopModel      *Bool
	ShowInstanceCount *Bool
	Rotation          *RotStep
	Camera
}

func newSubModelMeta(parent *Branch) *SubModelMeta {
	b := parent.branch("SUBMODEL_DISPLAY")
	return &SubModelMeta{
		Branch:            b,
		ShowStep:          attach(b, "SHOW_STEP", NewBool(false)),
		Placement:         attach(b, "PLACEMENT", NewPlacement(RightOutside, AssemType)),
		Constrain:         attach(b, "CONSTRAIN", NewConstrain()),
		Border:            attach(b, "BORDER", NewBorder(BorderData{Kind: BdrRound, Line: solid, Color: "Black", Thickness: 1.0 / 64, Radius: 15})),
		Background:        attach(b, "BACKGROUND", NewBackground(BackgroundData{Kind: BgSubmodelColor})),
		Margin:            margins(b, 0.05, 0.05),
		Instance:          newNumber(b, "INSTANCE_COUNT", Spot(18), PageType, "Arial,24,-1,255,75,0,0,0,0,0"),
		ModelScale:        attach(b, "MODEL_SCALE", NewFloat(1.0, -10000, 10000, 4)),
		Show:              attach(b, "SHOW", NewBool(true)),
		ShowTopModel:      attach(b, "SHOW_TOP_MODEL", NewBool(true)),
		ShowInstanceCount: attach(b, "SHOW_INSTANCE_COUNT", NewBool(true)),
		Rotation:          attach(b, "SUBMODEL_ROTATION", NewRotStep()),
		Camera:            newCamera(b, 30, 23),
	}
}

// CalloutMeta configures callouts and opens or closes them.
type CalloutMeta struct {
	*Branch
	Margin            *FloatPair
	StepNum           *NumberMeta
	Sep               *Sep
	Border            *Border
	Instance          *NumberMeta
	Background        *Background
	SubModelColor     *StringList
	SubModelFontColor *String
	Placement         *Placement
	FreeForm          *FreeForm
	Alloc             *Choice
	Pointer           *Pointer
	DivPointer        *Pointer
	PointerAttrib     *PointerAttrib
	DivPointerAttrib  *PointerAttrib
	Begin             *CalloutBegin
	Divider           *Action
	End               *Action
	Csi               *ItemMeta
	Pli               *ItemMeta
	SubModel          *ItemMeta
	RotateIcon        *ItemMeta
}

func newCalloutMeta(parent *Branch) *CalloutMeta {
	b := parent.branch("CALLOUT")
	m := &CalloutMeta{
		Branch:            b,
		Margin:            margins(b, 0.05, 0.05),
		StepNum:           newNumber(b, "STEP_NUMBER", TopLeftInsideCorner, PageType, "Arial,24,-1,255,75,0,0,0,0,0"),
		Sep:               attach(b, "SEPARATOR", NewSep()),
		Border:            attach(b, "BORDER", NewBorder(BorderData{Kind: BdrRound, Line: solid, Color: "Black", Thickness: 1.0 / 64, Radius: 15})),
		Instance:          newNumber(b, "INSTANCE_COUNT", Spot(18), PageType, "Arial,24,-1,255,75,0,0,0,0,0"),
		Background:        attach(b, "BACKGROUND", NewBackground(BackgroundData{Kind: BgSubmodelColor})),
		SubModelColor:     attach(b, "SUBMODEL_BACKGROUND_COLOR", NewStringList("#FFFFE0")),
		SubModelFontColor: attach(b, "SUBMODEL_FONT_COLOR", NewString("black")),
		Placement:         attach(b, "PLACEMENT", NewPlacement(RightOutside, AssemType)),
		FreeForm:          attach(b, "FREEFORM", NewFreeForm()),
		Alloc:             attach(b, "ALLOC", NewChoice("VERTICAL", "HORIZONTAL", "VERTICAL")),
		Pointer:           attach(b, "POINTER", NewPointer(RcCalloutPointer, false)),
		DivPointer:        attach(b, "DIVIDER_POINTER", NewPointer(RcCalloutDividerPointer, false)),
		PointerAttrib:     attach(b, "POINTER_ATTRIBUTE", NewPointerAttrib(RcCalloutPointerAttrib)),
		DivPointerAttrib:  attach(b, "DIVIDER_POINTER_ATTRIBUTE", NewPointerAttrib(RcCalloutDividerPointerAttrib)),
		Begin:             attach(b, "BEGIN", NewCalloutBegin()),
		Divider:           attach(b, "DIVIDER", NewAction(RcCalloutDivider)),
		End:               attach(b, "END", NewAction(RcCalloutEnd)),
		Csi:               newItem(b, "ASSEM", CenterCenter, PageType),
		Pli:               newItem(b, "PLI", Spot(2), AssemType),
		SubModel:          newItem(b, "SUBMODEL_DISPLAY", Spot(10), AssemType),
		RotateIcon:        newItem(b, "ROTATE_ICON", RightTopOutside, AssemType),
	}
	m.Pli.PerStep = attach(m.Pli.Branch, "PER_STEP", NewBool(true))
	m.SubModel.Show = attach(m.SubModel.Branch, "SHOW", NewBool(false))
	b.silent("HORIZONTAL|VERTICAL", m.Alloc)
	return m
}

// MultiStepMeta configures step groups and opens or closes them.
type MultiStepMeta struct {
	*Branch
	Margin            *FloatPair
	StepNum           *NumberMeta
	Placement         *Placement
	Sep               *Sep
	DivPointer        *Pointer
	DivPointerAttrib  *PointerAttrib
	SubModelFontColor *String
	FreeForm          *FreeForm
	Alloc             *Choice
	Csi               *ItemMeta
	Pli               *ItemMeta
	SubModel          *ItemMeta
	RotateIcon        *ItemMeta
	Begin             *Action
	Divider           *Action
	End               *Action
}

func newMultiStepMeta(parent *Branch) *MultiStepMeta {
	b := parent.branch("MULTI_STEP")
	m := &MultiStepMeta{
		Branch:            b,
		Margin:            margins(b, 0.05, 0.05),
		StepNum:           newNumber(b, "STEP_NUMBER", TopLeftInsideCorner, PageType, "Arial,24,-1,255,75,0,0,0,0,0"),
		Placement:         attach(b, "PLACEMENT", NewPlacement(CenterCenter, PageType)),
		Sep:               attach(b, "SEPARATOR", NewSep()),
		DivPointer:        attach(b, "DIVIDER_POINTER", NewPointer(RcStepGroupDividerPointer, false)),
		DivPointerAttrib:  attach(b, "DIVIDER_POINTER_ATTRIBUTE", NewPointerAttrib(RcStepGroupDividerPointerAttrib)),
		SubModelFontColor: attach(b, "SUBMODEL_FONT_COLOR", NewString("black")),
		FreeForm:          attach(b, "FREEFORM", NewFreeForm()),
		Alloc:             attach(b, "ALLOC", NewChoice("VERTICAL", "HORIZONTAL", "VERTICAL")),
		Csi:               newItem(b, "ASSEM", CenterCenter, PageType),
		Pli:               newItem(b, "PLI", Spot(2), AssemType),
		SubModel:          newItem(b, "SUBMODEL_DISPLAY", Spot(10), AssemType),
		RotateIcon:        newItem(b, "ROTATE_ICON", RightTopOutside, AssemType),
		Begin:             attach(b, "BEGIN", NewAction(RcStepGroupBegin)),
		Divider:           attach(b, "DIVIDER", NewAction(RcStepGroupDivider)),
		End:               attach(b, "END", NewAction(RcStepGroupEnd)),
	}
	m.Pli.PerStep = attach(m.Pli.Branch, "PER_STEP", NewBool(true))
	m.SubModel.Show = attach(m.SubModel.Branch, "SHOW", NewBool(false))
	b.silent("HORIZONTAL|VERTICAL", m.Alloc)
	return m
}

// PointerBaseMeta styles the box a page pointer starts from.
type PointerBaseMeta struct {
	*Branch
	Placement  *Placement
	Border     *Border
	Background *Background
	Margin     *FloatPair
}

// FadeStepMeta configures fading of parts added in earlier steps.
type FadeStepMeta struct {
	*Branch
	Color    *String
	UseColor *Bool
	Opacity  *Int
	Enabled  *Bool
}

// HighlightStepMeta configures highlighting of parts added in the current step.
type HighlightStepMeta struct {
	*Branch
	Color     *String
	Enabled   *Bool
	LineWidth *Int
}

// RemoveMeta removes parts from the assembly from this step on.
type RemoveMeta struct {
	*Branch
	Group *String
	Part  *String
	Name  *String
}

// PartIgnMeta brackets parts that are drawn but left out of parts lists and counts.
type PartIgnMeta struct {
	*Branch
	Ignore *Action
	End    *Action
}

// LPubMeta is everything under !LPUB (or LPUB).
type LPubMeta struct {
	*Branch
	Page                     *PageMeta
	Assem                    *AssemMeta
	Callout                  *CalloutMeta
	MultiStep                *MultiStepMeta
	StepNumber               *NumberMeta
	Pli                      *PliMeta
	Bom                      *PliMeta
	PointerBase              *PointerBaseMeta
	Remove                   *RemoveMeta
	Reserve                  *Float
	Part                     *PartIgnMeta
	Resolution               *Resolution
	Insert                   *Insert
	Include                  *String
	NoStep                   *NoStep
	FadeStep                 *FadeStepMeta
	HighlightStep            *HighlightStepMeta
	SubModel                 *SubModelMeta
	RotateIcon               *RotateIconMeta
	ConsolidateInstanceCount *Bool
	ContinuousStepNumbers    *Bool
	StepPliPerStep           *Bool
	CameraDistanceFactor     *Int
}

func newLPubMeta(parent *Branch) *LPubMeta {
	b := parent.branch("!LPUB")
	// resolution first: the page size reads its unit
	res := attach(b, "RESOLUTION", NewResolution())

	m := &LPubMeta{
		Branch:     b,
		Resolution: res,
		Page:       newPageMeta(b, res),
		Assem:      newAssemMeta(b),
		Callout:    newCalloutMeta(b),
		MultiStep:  newMultiStepMeta(b),
		StepNumber: newNumber(b, "STEP_NUMBER", TopLeftOutsideCorner, PliType, "Arial,36,-1,255,75,0,0,0,0,0"),
		Pli:        newPliMeta(b, "PLI", Spot(2), AssemType, RcPliBeginIgn, RcPliEnd),
		Bom:        newPliMeta(b, "BOM", CenterCenter, PageType, RcBomBeginIgn, RcBomEnd),
		Reserve:    attach(b, "RESERVE", withRc(NewFloat(0, 0, 1000000, 4), RcReserveSpace)),
		Insert:     attach(b, "INSERT", NewInsert()),
		Include:    attach(b, "INCLUDE", withRc(NewString(""), RcInclude)),
		NoStep:     attach(b, "NOSTEP", newNoStep()),
		SubModel:   newSubModelMeta(b),
		RotateIcon: newRotateIcon(b),

		ConsolidateInstanceCount: attach(b, "CONSOLIDATE_INSTANCE_COUNT", withRc(NewBool(false), RcCountInstance)),
		ContinuousStepNumbers:    attach(b, "CONTINUOUS_STEP_NUMBERS", withRc(NewBool(false), RcContStepNum)),
	}

	pb := b.branch("POINTER_BASE")
	m.PointerBase = &PointerBaseMeta{
		Branch:     pb,
		Placement:  attach(pb, "PLACEMENT", NewPlacement(CenterCenter, PageType)),
		Border:     attach(pb, "BORDER", NewBorder(BorderData{Kind: BdrRound, Line: solid, Color: "Black", Thickness: 1.0 / 64, Radius: 15})),
		Background: attach(pb, "BACKGROUND", NewBackground(BackgroundData{Kind: BgSubmodelColor})),
		Margin:     margins(pb, 0.05, 0.05),
	}

	rm := b.branch("REMOVE")
	m.Remove = &RemoveMeta{
		Branch: rm,
		Group:  attach(rm, "GROUP", withRc(NewString(""), RcRemoveGroup)),
		Part:   attach(rm, "PART", withRc(NewString(""), RcRemovePart)),
		Name:   attach(rm, "NAME", withRc(NewString(""), RcRemoveName)),
	}

	part := b.branch("PART")
	partBegin := part.branch("BEGIN")
	m.Part = &PartIgnMeta{
		Branch: part,
		Ignore: attach(partBegin, "IGN", NewAction(RcPartBeginIgn)),
		End:    attach(part, "END", NewAction(RcPartEnd)),
	}

	fade := b.branch("FADE_STEP")
	m.FadeStep = &FadeStepMeta{
		Branch:   fade,
		Color:    attach(fade, "FADE_COLOR", NewString("Very_Light_Bluish_Gray")),
		UseColor: attach(fade, "USE_FADE_COLOR", NewBool(false)),
		Opacity:  attach(fade, "FADE_OPACITY", NewInt(50, 0, 100)),
		Enabled:  attach(fade, "FADE", NewBool(false)),
	}

	hl := b.branch("HIGHLIGHT_STEP")
	m.HighlightStep = &HighlightStepMeta{
		Branch:    hl,
		Color:     attach(hl, "HIGHLIGHT_COLOR", NewString("#FFFF00")),
		Enabled:   attach(hl, "HIGHLIGHT", NewBool(false)),
		LineWidth: attach(hl, "HIGHLIGHT_LINE_WIDTH", NewInt(1, 0, 10)),
	}

	stepPli := b.branch("STEP_PLI")
	m.StepPliPerStep = attach(stepPli, "PER_STEP", withRc(NewBool(true), RcStepPliPerStep))

	native := b.branch("CAMERA_DISTANCE_NATIVE")
	m.CameraDistanceFactor = attach(native, "FACTOR", NewInt(1000, -5000, 5000))

	b.link("PAGE_POINTER", m.Page.Pointer)
	return m
}

// MLCadMeta is the group and skip commands of the MLCad editor.
type MLCadMeta struct {
	*Branch
	SkipBegin *Action
	SkipEnd   *Action
	Group     *Action
}

// LeoCadMeta is the group commands of the LeoCAD editor.
type LeoCadMeta struct {
	*Branch
	GroupBegin *Action
	GroupEnd   *Action
}

// SynthMeta is the flexible part synthesis commands.
type SynthMeta struct {
	*Branch
	Begin       *Action
	End         *Action
	Show        *Action
	Hide        *Action
	Inside      *Action
	Outside     *Action
	Cross       *Action
	Synthesized *Action
}

func newSynthMeta(parent *Branch) *SynthMeta {
	b := parent.branch("SYNTH")
	return &SynthMeta{
		Branch:      b,
		Begin:       attach(b, "BEGIN", NewAction(RcSynthBegin)),
		End:         attach(b, "END", NewAction(RcSynthEnd)),
		Show:        attach(b, "SHOW", NewAction(RcOk)),
		Hide:        attach(b, "HIDE", NewAction(RcOk)),
		Inside:      attach(b, "INSIDE", NewAction(RcOk)),
		Outside:     attach(b, "OUTSIDE", NewAction(RcOk)),
		Cross:       attach(b, "CROSS", NewAction(RcOk)),
		Synthesized: attach(b, "SYNTHESIZED", NewAction(RcOk)),
	}
}

package ldraw

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ModelCount is the result of the last CountInstances for one model.
type ModelCount struct {
	Name            string `json:"name" yaml:"name"`
	Instances       int    `json:"instances" yaml:"instances"`
	MirrorInstances int    `json:"mirror_instances" yaml:"mirror_instances"`
	NumSteps        int    `json:"num_steps" yaml:"num_steps"`
	Level           int    `json:"level" yaml:"level"`
	Submodel        bool   `json:"submodel" yaml:"submodel"`
}

// CountReport describes a counted document.
type CountReport struct {
	Document Metadata      `json:"document" yaml:"document"`
	MPD      bool          `json:"mpd" yaml:"mpd"`
	Models   []ModelCount  `json:"models" yaml:"models"`
	Cycles   []*CycleError `json:"cycles,omitempty" yaml:"cycles,omitempty"`
}

// Report counts instances and returns the counts of every model in load order.
func (r *Registry) Report() CountReport {
	cycles := r.CountInstances()

	r.mu.RLock()
	defer r.mu.RUnlock()

	rep := CountReport{
		Document: r.meta,
		MPD:      r.mpd,
		Cycles:   cycles,
	}
	for _, k := range r.order {
		f := r.files[k]
		rep.Models = append(rep.Models, ModelCount{
			Name:            f.Name,
			Instances:       f.Instances,
			MirrorInstances: f.MirrorInstances,
			NumSteps:        f.NumSteps,
			Level:           f.Level,
			Submodel:        r.isSubmodel(k),
		})
	}
	return rep
}

// Encode renders the report as "yaml" or "json".
func (rep CountReport) Encode(format string) ([]byte, error) {
	switch format {
	case "yaml", "yml":
		return yaml.Marshal(rep)
	case "json":
		return json.MarshalIndent(rep, "", "  ")
	}
	return nil, fmt.Errorf("unsupported report format %q", format)
}

package workflow

import (
	"github.com/fractionestate/specify/internal/project"
)

// Report is the full status snapshot of a workspace, ready for
// rendering in any output format.
type Report struct {
	Root         string         `json:"project_root"`
	Model        string         `json:"selected_model,omitempty"`
	Script       string         `json:"script,omitempty"`
	Constitution bool           `json:"constitution"`
	Prompts      []string       `json:"prompts,omitempty"`
	Features     []FeatureState `json:"features"`
	Summary      Summary        `json:"summary"`
	Followups    []string       `json:"followups,omitempty"`

	// ConfigWarning records a readable-but-corrupt project config; the
	// report itself still succeeds.
	ConfigWarning string `json:"config_warning,omitempty"`
}

// BuildReport scans a workspace and assembles its status report. A
// corrupt project config degrades to a warning rather than an error.
func BuildReport(p *project.Project) (*Report, error) {
	features, err := ScanFeatures(p.SpecsDir())
	if err != nil {
		return nil, err
	}

	r := &Report{
		Root:         p.Root,
		Constitution: p.HasConstitution(),
		Prompts:      p.Prompts(),
		Features:     features,
		Summary:      Summarize(features),
	}
	r.Followups = Followups(r.Summary, r.Constitution)

	cfg, err := p.LoadConfig()
	switch {
	case err != nil:
		r.ConfigWarning = err.Error()
	case cfg != nil:
		r.Model = cfg.SelectedModel
		r.Script = cfg.Scripts.Preferred
	}

	return r, nil
}

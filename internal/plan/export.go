package plan

import (
	"scenario-planner/internal/correlation"
	"scenario-planner/internal/scenario"
)

// ExportSuggestions returns a copy of sc in which every inferred capture is
// rewritten to its explicit path form, so authors can review the inferred
// paths and pin them. Captures that could not be resolved are left as they
// were. sc is not modified.
func ExportSuggestions(sc *scenario.Scenario, mappings []correlation.Mapping) *scenario.Scenario {
	out := *sc
	out.Steps = make([]scenario.Step, len(sc.Steps))

	for i := range sc.Steps {
		step := sc.Steps[i]
		step.Captures = exportCaptures(step.Captures, i+1, mappings)
		out.Steps[i] = step
	}

	return &out
}

// ExportSuggestionsYAML generates the suggested scenario as YAML.
func ExportSuggestionsYAML(sc *scenario.Scenario, mappings []correlation.Mapping) ([]byte, error) {
	return scenario.Marshal(ExportSuggestions(sc, mappings))
}

func exportCaptures(captures []scenario.Capture, step int, mappings []correlation.Mapping) []scenario.Capture {
	if captures == nil {
		return nil
	}

	out := make([]scenario.Capture, len(captures))

	for i, c := range captures {
		out[i] = c

		if c.IsExplicit() {
			continue
		}

		for _, m := range mappings {
			if m.Step == step && m.Variable == c.Variable {
				out[i].Path = m.Path
				out[i].Source = ""
			}
		}
	}

	return out
}

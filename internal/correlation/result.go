package correlation

import (
	"scenario-planner/internal/diagnostic"
	"scenario-planner/internal/scenario"
)

// Mapping is the resolved extraction for one capture.
type Mapping struct {
	Variable string
	// Path is the JSONPath the value is read from.
	Path string
	// Step is the 1-based index of the producing step.
	Step     int
	Endpoint string
	// TargetSteps lists later steps that reference ${Variable}.
	TargetSteps []int
	Confidence  float64
	Kind        MatchKind
	Match       scenario.Cardinality
}

// Result is the outcome of analyzing a whole scenario.
type Result struct {
	Mappings    []Mapping
	Diagnostics diagnostic.Diagnostics
}

// HasErrors reports whether any capture could not be resolved.
func (r *Result) HasErrors() bool {
	return r.Diagnostics.HasErrors()
}

// HasWarnings reports whether any mapping deserves a second look.
func (r *Result) HasWarnings() bool {
	return r.Diagnostics.HasWarnings()
}

// Errors returns the rendered error diagnostics.
func (r *Result) Errors() []string {
	return r.Diagnostics.ErrorStrings()
}

// Warnings returns the rendered warning diagnostics.
func (r *Result) Warnings() []string {
	return r.Diagnostics.WarningStrings()
}

// ForStep returns the mappings produced by step (1-based) in capture order.
func (r *Result) ForStep(step int) []Mapping {
	var out []Mapping

	for _, m := range r.Mappings {
		if m.Step == step {
			out = append(out, m)
		}
	}

	return out
}

// Lookup returns the last mapping for variable, if any.
func (r *Result) Lookup(variable string) (Mapping, bool) {
	for i := len(r.Mappings) - 1; i >= 0; i-- {
		if r.Mappings[i].Variable == variable {
			return r.Mappings[i], true
		}
	}

	return Mapping{}, false
}

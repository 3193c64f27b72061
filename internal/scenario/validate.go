package scenario

import (
	"fmt"

	"scenario-planner/internal/diagnostic"
	"scenario-planner/internal/ledger"
)

// Validate checks the structure of a scenario without looking at any
// contract. Problems that prevent a sensible plan are errors; the rest are
// warnings.
func Validate(sc *Scenario) diagnostic.Diagnostics {
	var diags diagnostic.Diagnostics

	if sc.Name == "" {
		diags.AddError(diagnostic.CodeInvalidStep, "scenario name is required", "", "name")
	}

	if len(sc.Steps) == 0 {
		diags.AddError(diagnostic.CodeInvalidStep, "scenario has no steps", "", "scenario")
	}

	validateSettings(&sc.Settings, &diags)

	for _, name := range sc.GlobalNames() {
		if !ledger.IsValidName(name) {
			diags.AddWarning(diagnostic.CodeInvalidStep,
				fmt.Sprintf("variable %q cannot be referenced as ${...}", name), "variables", name)
		}
	}

	for i := range sc.Steps {
		validateStep(&sc.Steps[i], i+1, &diags)
	}

	return diags
}

func validateSettings(s *Settings, diags *diagnostic.Diagnostics) {
	if s.Threads < 1 {
		diags.AddError(diagnostic.CodeInvalidScenarioConfig, "threads must be at least 1", "settings", "threads")
	}

	if s.RampUp < 0 {
		diags.AddError(diagnostic.CodeInvalidScenarioConfig, "rampup must not be negative", "settings", "rampup")
	}

	if s.Duration < 0 {
		diags.AddError(diagnostic.CodeInvalidScenarioConfig, "duration must not be negative", "settings", "duration")
	}
}

func validateStep(step *Step, index int, diags *diagnostic.Diagnostics) {
	loc := diagnostic.StepLocation(index, step.Name)

	if step.ThinkTime < 0 {
		diags.AddError(diagnostic.CodeInvalidStep, "think_time must not be negative", loc, "think_time")
	}

	if step.IsThinkTimeOnly() {
		return
	}

	if step.Endpoint == "" {
		diags.AddError(diagnostic.CodeInvalidStep, "endpoint is required", loc, "endpoint")
	}

	if step.Name == "" {
		diags.AddWarning(diagnostic.CodeInvalidStep, "step has no name", loc, "name")
	}

	seen := make(map[string]bool, len(step.Captures))

	for _, c := range step.Captures {
		switch {
		case c.Variable == "":
			diags.AddError(diagnostic.CodeInvalidStep, "capture has no variable name", loc, "capture")
		case !ledger.IsValidName(c.Variable):
			diags.AddError(diagnostic.CodeInvalidStep,
				fmt.Sprintf("capture %q is not a valid variable name", c.Variable), loc, c.Variable)
		case seen[c.Variable]:
			diags.AddWarning(diagnostic.CodeDuplicateCapture,
				fmt.Sprintf("variable %q is captured more than once; the last capture wins", c.Variable), loc, c.Variable)
		}

		seen[c.Variable] = true
	}

	if step.Loop != nil {
		validateLoop(step.Loop, loc, diags)
	}
}

func validateLoop(l *Loop, loc string, diags *diagnostic.Diagnostics) {
	switch {
	case l.Count != 0 && l.IsWhile():
		diags.AddError(diagnostic.CodeInvalidLoop, "loop cannot specify both count and while", loc, "loop")
	case l.Count == 0 && !l.IsWhile():
		diags.AddError(diagnostic.CodeInvalidLoop, "loop must specify either count or while", loc, "loop")
	case l.Count < 0:
		diags.AddError(diagnostic.CodeInvalidLoop, "loop count must be positive", loc, "loop.count")
	}

	if l.IsWhile() && l.Max < 1 {
		diags.AddError(diagnostic.CodeInvalidLoop, "loop max must be at least 1", loc, "loop.max")
	}

	if l.Interval < 0 {
		diags.AddError(diagnostic.CodeInvalidLoop, "loop interval must not be negative", loc, "loop.interval")
	}
}

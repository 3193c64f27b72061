package plan

import (
	"scenario-planner/internal/correlation"
	"scenario-planner/internal/diagnostic"
	"scenario-planner/internal/ledger"
	"scenario-planner/internal/plantree"
)

// CompileResult is the outcome of compiling one scenario.
type CompileResult struct {
	// Success is false only when a step's endpoint could not be resolved.
	Success bool
	// Tree is the assembled plan. It is partial when Success is false.
	Tree *plantree.Tree

	SamplersCreated   int
	ExtractorsCreated int
	AssertionsCreated int
	LoopsCreated      int
	DelaysCreated     int

	// Mappings are the resolved captures, in step order.
	Mappings []correlation.Mapping
	// Trail records the variables known before each step.
	Trail *ledger.Trail
	// Diagnostics holds warnings and errors from validation, correlation
	// and assembly.
	Diagnostics diagnostic.Diagnostics
}

// Warnings returns the rendered warnings.
func (r *CompileResult) Warnings() []string {
	return r.Diagnostics.WarningStrings()
}

// Errors returns the rendered recoverable errors.
func (r *CompileResult) Errors() []string {
	return r.Diagnostics.ErrorStrings()
}

// HasErrors reports whether any recoverable error was recorded.
func (r *CompileResult) HasErrors() bool {
	return r.Diagnostics.HasErrors()
}

// HasWarnings reports whether any warning was recorded.
func (r *CompileResult) HasWarnings() bool {
	return r.Diagnostics.HasWarnings()
}

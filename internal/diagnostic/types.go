package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"scenario-planner/internal/common"
)

// Codes shared by the compiler packages.
const (
	CodeCaptureUnresolved     = "capture_unresolved"
	CodeCaptureAmbiguous      = "capture_ambiguous"
	CodeCaptureLowConfidence  = "capture_low_confidence"
	CodeSourceFieldMissing    = "source_field_missing"
	CodeExplicitPathInvalid   = "explicit_path_invalid"
	CodeSchemaMissing         = "schema_missing"
	CodeSchemaTruncated       = "schema_truncated"
	CodeEndpointUnresolved    = "endpoint_unresolved"
	CodeUndefinedVariable     = "undefined_variable"
	CodeLoopConditionInvalid  = "loop_condition_invalid"
	CodeInvalidLoop           = "invalid_loop"
	CodeInvalidStep           = "invalid_step"
	CodeDuplicateCapture      = "duplicate_capture"
	CodeInvalidScenarioConfig = "invalid_settings"
	CodePayloadInvalid        = "payload_invalid"
)

// Diagnostics holds all diagnostic information from a compile.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity Severity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Location identifies the step this relates to, e.g. "step [2] Get user".
	Location string
	// Subject is the variable, field or header the diagnostic is about (if any).
	Subject string
	// Suggestions are potential fixes or alternatives.
	Suggestions []string
}

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// StepLocation formats the location of a 1-based step index.
func StepLocation(index int, name string) string {
	if name == "" {
		return fmt.Sprintf("step [%d]", index)
	}

	return fmt.Sprintf("step [%d] %s", index, name)
}

// Add appends d to the list matching its severity.
func (d *Diagnostics) Add(diag Diagnostic) {
	switch diag.Severity {
	case SeverityError:
		d.Errors = append(d.Errors, diag)
	case SeverityWarning:
		d.Warnings = append(d.Warnings, diag)
	default:
		d.Infos = append(d.Infos, diag)
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, location, subject string) {
	d.Add(Diagnostic{
		Severity: SeverityError,
		Code:     code,
		Message:  message,
		Location: location,
		Subject:  subject,
	})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, location, subject string) {
	d.Add(Diagnostic{
		Severity: SeverityWarning,
		Code:     code,
		Message:  message,
		Location: location,
		Subject:  subject,
	})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, location, subject string) {
	d.Add(Diagnostic{
		Severity: SeverityInfo,
		Code:     code,
		Message:  message,
		Location: location,
		Subject:  subject,
	})
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// HasWarnings returns true if there are any warning diagnostics.
func (d *Diagnostics) HasWarnings() bool {
	return len(d.Warnings) > 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return len(d.Errors) == 0
}

// ByCode returns every diagnostic, of any severity, with the given code.
func (d *Diagnostics) ByCode(code string) []Diagnostic {
	var out []Diagnostic

	for _, list := range [][]Diagnostic{d.Errors, d.Warnings, d.Infos} {
		for _, diag := range list {
			if diag.Code == code {
				out = append(out, diag)
			}
		}
	}

	return out
}

// ErrorStrings renders the error diagnostics.
func (d *Diagnostics) ErrorStrings() []string {
	return render(d.Errors)
}

// WarningStrings renders the warning diagnostics.
func (d *Diagnostics) WarningStrings() []string {
	return render(d.Warnings)
}

func render(list []Diagnostic) []string {
	out := make([]string, 0, len(list))
	for _, diag := range list {
		out = append(out, diag.String())
	}

	return out
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	return errors.New(strings.Join(d.ErrorStrings(), "; "))
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Location != "" {
		prefix = append(prefix, d.Location)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(d.Suggestions) > 0 {
		msg += " (did you mean: " + strings.Join(d.Suggestions, ", ") + "?)"
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}

package scenario

import (
	"strconv"

	"scenario-planner/internal/common"
)

// DefaultVersion is assumed when the file omits one.
const DefaultVersion = "1.0"

// Scenario is an ordered list of steps plus run settings and globals.
type Scenario struct {
	Version     string         `yaml:"version,omitempty"`
	Name        string         `yaml:"name"`
	Description string         `yaml:"description,omitempty"`
	Settings    Settings       `yaml:"settings,omitempty"`
	Variables   map[string]any `yaml:"variables,omitempty"`
	Steps       []Step         `yaml:"scenario"`
}

// Settings controls the generated thread group.
type Settings struct {
	Threads int `yaml:"threads,omitempty"`
	// RampUp is in seconds.
	RampUp int `yaml:"rampup,omitempty"`
	// Loops is the iteration count per thread. Nil leaves it to the runner,
	// zero or negative means infinite.
	Loops *int `yaml:"loops,omitempty"`
	// Duration is in seconds.
	Duration int    `yaml:"duration,omitempty"`
	BaseURL  string `yaml:"base_url,omitempty"`
}

// GlobalNames returns the global variable names in sorted order.
func (s *Scenario) GlobalNames() []string {
	return common.SortedKeys(s.Variables)
}

// Step is one authored action.
type Step struct {
	Name     string            `yaml:"name,omitempty"`
	Endpoint string            `yaml:"endpoint,omitempty"`
	Enabled  *bool             `yaml:"enabled,omitempty"`
	Params   map[string]any    `yaml:"params,omitempty"`
	Headers  map[string]string `yaml:"headers,omitempty"`
	Payload  any               `yaml:"payload,omitempty"`
	Captures []Capture         `yaml:"capture,omitempty"`
	Assert   *Assertions       `yaml:"assert,omitempty"`
	Loop     *Loop             `yaml:"loop,omitempty"`
	// ThinkTime is a pause in milliseconds after the step.
	ThinkTime int `yaml:"think_time,omitempty"`
}

// IsEnabled reports whether the step takes part in the plan.
func (s *Step) IsEnabled() bool {
	return s.Enabled == nil || *s.Enabled
}

// IsThinkTimeOnly reports whether the step is a bare pause with no request.
func (s *Step) IsThinkTimeOnly() bool {
	return s.Endpoint == "" && s.ThinkTime > 0
}

// DeclaredStatus returns the asserted status code, or "" when none.
func (s *Step) DeclaredStatus() string {
	if s.Assert == nil || s.Assert.Status == 0 {
		return ""
	}

	return strconv.Itoa(s.Assert.Status)
}

// CaptureNames returns the captured variable names in authored order.
func (s *Step) CaptureNames() []string {
	names := make([]string, 0, len(s.Captures))
	for _, c := range s.Captures {
		names = append(names, c.Variable)
	}

	return names
}

// DisplayName returns the name used in diagnostics and plan nodes.
func (s *Step) DisplayName() string {
	switch {
	case s.Name != "":
		return s.Name
	case s.IsThinkTimeOnly():
		return "Think Time"
	default:
		return s.Endpoint
	}
}

// Capture asks for a response value to be stored in a variable.
type Capture struct {
	Variable string
	// Source names the response field when it differs from Variable.
	Source string
	// Path is an explicit JSONPath; when set no schema lookup happens.
	Path  string
	Match Cardinality
}

// IsExplicit reports whether the author supplied the extraction path.
func (c Capture) IsExplicit() bool {
	return c.Path != ""
}

// Assertions are checks on the response of a step.
type Assertions struct {
	Status       int               `yaml:"status,omitempty"`
	Body         map[string]any    `yaml:"body,omitempty"`
	Headers      map[string]string `yaml:"headers,omitempty"`
	BodyContains []string          `yaml:"body_contains,omitempty"`
}

// IsEmpty reports whether no assertion is declared.
func (a *Assertions) IsEmpty() bool {
	return a == nil || (a.Status == 0 && len(a.Body) == 0 && len(a.Headers) == 0 && len(a.BodyContains) == 0)
}

// DefaultWhileCondition is used for a while loop with an empty condition.
const DefaultWhileCondition = "$.status != 'done'"

// DefaultMaxIterations caps while loops that do not declare max.
const DefaultMaxIterations = 100

// Loop repeats a step a fixed number of times or while a response
// condition holds.
type Loop struct {
	Count int
	While string
	// Max caps while loops.
	Max int
	// Interval is a pause in milliseconds between iterations.
	Interval int
}

// IsWhile reports whether the loop is condition driven.
func (l *Loop) IsWhile() bool {
	return l.While != ""
}

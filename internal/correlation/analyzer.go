package correlation

import (
	"fmt"

	"go.uber.org/zap"

	"scenario-planner/internal/contract"
	"scenario-planner/internal/diagnostic"
	"scenario-planner/internal/fieldindex"
	"scenario-planner/internal/ledger"
	"scenario-planner/internal/match"
	"scenario-planner/internal/scenario"
)

// Config tunes warning thresholds.
type Config struct {
	// LowConfidence is the confidence below which a mapping is flagged.
	LowConfidence float64
	// MaxSuggestions bounds the field names offered for unresolved captures.
	MaxSuggestions int
}

// DefaultConfig returns the default analyzer configuration.
func DefaultConfig() Config {
	return Config{
		LowConfidence:  0.8,
		MaxSuggestions: 3,
	}
}

// Analyzer resolves captures against one contract. It caches field indexes
// and is meant for a single compile; it is not safe for concurrent use.
type Analyzer struct {
	index  *contract.Index
	config Config
	logger *zap.Logger
	fields map[string]*fieldindex.Index
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithConfig replaces DefaultConfig.
func WithConfig(cfg Config) Option {
	return func(a *Analyzer) {
		a.config = cfg
	}
}

// WithLogger sets the logger used for per-capture debug output.
func WithLogger(logger *zap.Logger) Option {
	return func(a *Analyzer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// NewAnalyzer creates an analyzer over index.
func NewAnalyzer(index *contract.Index, opts ...Option) *Analyzer {
	a := &Analyzer{
		index:  index,
		config: DefaultConfig(),
		logger: zap.NewNop(),
		fields: make(map[string]*fieldindex.Index),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// FieldIndex returns the field index of op's response, or nil when the
// operation declares no success schema.
func (a *Analyzer) FieldIndex(op *contract.Operation, declaredStatus string) *fieldindex.Index {
	key := op.Key() + "|" + declaredStatus
	if fi, ok := a.fields[key]; ok {
		return fi
	}

	var fi *fieldindex.Index
	if schema, _ := a.index.SchemaFor(op, declaredStatus); schema != nil {
		fi = fieldindex.Build(schema, a.index)
	}

	a.fields[key] = fi

	return fi
}

// Analyze resolves every capture of every enabled step.
func (a *Analyzer) Analyze(sc *scenario.Scenario) *Result {
	res := &Result{}

	for i := range sc.Steps {
		step := &sc.Steps[i]
		if !step.IsEnabled() || len(step.Captures) == 0 {
			continue
		}

		mappings, diags := a.AnalyzeStep(step, i+1)
		res.Mappings = append(res.Mappings, mappings...)
		res.Diagnostics.Merge(diags)
	}

	for i := range res.Mappings {
		res.Mappings[i].TargetSteps = targetSteps(sc, res.Mappings[i])
	}

	return res
}

// AnalyzeStep resolves the captures of one step (index is 1-based).
func (a *Analyzer) AnalyzeStep(step *scenario.Step, index int) ([]Mapping, diagnostic.Diagnostics) {
	var diags diagnostic.Diagnostics

	loc := diagnostic.StepLocation(index, step.Name)

	op, err := a.index.Resolve(step.Endpoint)
	if err != nil {
		diags.AddError(diagnostic.CodeEndpointUnresolved, err.Error(), loc, step.Endpoint)

		return nil, diags
	}

	fi := a.FieldIndex(op, step.DeclaredStatus())
	if fi == nil && needsSchema(step.Captures) {
		diags.AddWarning(diagnostic.CodeSchemaMissing,
			fmt.Sprintf("%s declares no JSON response schema; captures cannot be inferred", op.Key()),
			loc, op.Key())
	}

	if fi != nil && fi.Truncated() {
		diags.AddInfo(diagnostic.CodeSchemaTruncated,
			fmt.Sprintf("response schema of %s is nested deeper than %d levels; deeper fields were not indexed",
				op.Key(), a.index.MaxDepth()),
			loc, op.Key())
	}

	var mappings []Mapping

	for _, c := range step.Captures {
		m, ok := a.resolve(c, fi, loc, &diags)
		if !ok {
			continue
		}

		m.Step = index
		m.Endpoint = step.Endpoint
		mappings = append(mappings, m)

		a.logger.Debug("capture resolved",
			zap.Int("step", index),
			zap.String("variable", m.Variable),
			zap.String("path", m.Path),
			zap.Stringer("kind", m.Kind),
			zap.Float64("confidence", m.Confidence),
		)
	}

	return mappings, diags
}

func (a *Analyzer) resolve(
	c scenario.Capture,
	fi *fieldindex.Index,
	loc string,
	diags *diagnostic.Diagnostics,
) (Mapping, bool) {
	if c.IsExplicit() {
		if err := fieldindex.Validate(c.Path); err != nil {
			diags.AddWarning(diagnostic.CodeExplicitPathInvalid, err.Error(), loc, c.Variable)
		}
	}

	for i, try := range matchers {
		out, ok := try(c, fi)
		if !ok {
			continue
		}

		if c.Source != "" && i > 1 {
			diags.AddWarning(diagnostic.CodeSourceFieldMissing,
				fmt.Sprintf("source field %q not found for capture %q; matched %s by %s",
					c.Source, c.Variable, out.path(), out.kind),
				loc, c.Variable)
		}

		a.checkQuality(c, out, loc, diags)

		return Mapping{
			Variable:   c.Variable,
			Path:       out.path(),
			Confidence: out.confidence,
			Kind:       out.kind,
			Match:      c.Match,
		}, true
	}

	diag := diagnostic.Diagnostic{
		Severity: diagnostic.SeverityError,
		Code:     diagnostic.CodeCaptureUnresolved,
		Message:  fmt.Sprintf("could not resolve capture %q to a response field", c.Variable),
		Location: loc,
		Subject:  c.Variable,
	}
	if fi != nil {
		name := c.Variable
		if c.Source != "" {
			name = c.Source
		}

		diag.Suggestions = match.Suggest(name, fi.Keys(), a.config.MaxSuggestions)
	}

	diags.Add(diag)

	return Mapping{}, false
}

func (a *Analyzer) checkQuality(c scenario.Capture, out outcome, loc string, diags *diagnostic.Diagnostics) {
	if out.confidence < 1.0 && out.candidates.IsAmbiguous() {
		diags.AddWarning(diagnostic.CodeCaptureAmbiguous,
			fmt.Sprintf("capture %q matches %d fields equally (%s); using %s, runner-up %s",
				c.Variable, out.candidates.Tied(), out.kind, out.path(), out.candidates.RunnerUp().Path),
			loc, c.Variable)
	}

	if out.confidence < a.config.LowConfidence {
		diags.AddWarning(diagnostic.CodeCaptureLowConfidence,
			fmt.Sprintf("low confidence (%.0f%%) for %q -> %s", out.confidence*100, c.Variable, out.path()),
			loc, c.Variable)
	}
}

func needsSchema(captures []scenario.Capture) bool {
	for _, c := range captures {
		if !c.IsExplicit() {
			return true
		}
	}

	return false
}

// targetSteps lists later enabled steps referencing m's variable, stopping
// after a step that captures the same name again.
func targetSteps(sc *scenario.Scenario, m Mapping) []int {
	var out []int

	for i := m.Step; i < len(sc.Steps); i++ {
		step := &sc.Steps[i]
		if !step.IsEnabled() {
			continue
		}

		if ledger.Refers(m.Variable, StepValues(step)...) {
			out = append(out, i+1)
		}

		for _, c := range step.Captures {
			if c.Variable == m.Variable {
				return out
			}
		}
	}

	return out
}

// StepValues returns every authored value of step that may hold ${name}
// references.
func StepValues(step *scenario.Step) []any {
	values := []any{step.Endpoint, step.Params, step.Headers, step.Payload}

	if step.Assert != nil {
		values = append(values, step.Assert.Body, step.Assert.Headers, step.Assert.BodyContains)
	}

	return values
}

package plan

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	"scenario-planner/internal/common"
	"scenario-planner/internal/contract"
	"scenario-planner/internal/correlation"
	"scenario-planner/internal/diagnostic"
	"scenario-planner/internal/fieldindex"
	"scenario-planner/internal/ledger"
	"scenario-planner/internal/plantree"
	"scenario-planner/internal/scenario"
)

// DefaultExtractorDefault is the value extractors store when the path does
// not match.
const DefaultExtractorDefault = "NOT_FOUND"

// DefaultBaseURL is used when neither the scenario nor the contract name a
// server.
const DefaultBaseURL = "http://localhost:8080"

// Assembler turns a scenario and its resolved captures into a plan tree.
type Assembler struct {
	index            *contract.Index
	extractorDefault string
	baseURL          string
	logger           *zap.Logger
}

// NewAssembler creates an assembler over index.
func NewAssembler(index *contract.Index, cfg Config, logger *zap.Logger) *Assembler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Assembler{
		index:            index,
		extractorDefault: cfg.ExtractorDefault,
		baseURL:          cfg.BaseURL,
		logger:           logger,
	}
}

// walk is the accumulator threaded through the step fold.
type walk struct {
	known ledger.Ledger
	seq   []*plantree.Node
}

// Assemble emits the plan for sc. It stops at the first step whose endpoint
// cannot be resolved and returns the partial result with the error.
func (a *Assembler) Assemble(sc *scenario.Scenario, corr *correlation.Result) (*CompileResult, error) {
	res := &CompileResult{
		Mappings: corr.Mappings,
	}

	globals := ledger.New(sc.GlobalNames()...)
	res.Trail = ledger.NewTrail(globals)

	group := plantree.NewNode(plantree.ThreadGroup, "Thread Group")
	res.Tree = &plantree.Tree{Root: a.scaffold(sc, group)}

	w := walk{known: globals}

	for i := range sc.Steps {
		step := &sc.Steps[i]

		res.Trail.Record(w.known)

		if !step.IsEnabled() {
			continue
		}

		next, err := a.step(w, step, i+1, corr.ForStep(i+1), res)
		if err != nil {
			group.Add(w.seq...)

			return res, err
		}

		w = next
	}

	group.Add(w.seq...)
	res.Success = true

	return res, nil
}

// step emits the nodes of one step and returns the accumulator for the
// next one.
func (a *Assembler) step(
	w walk,
	step *scenario.Step,
	index int,
	mappings []correlation.Mapping,
	res *CompileResult,
) (walk, error) {
	loc := diagnostic.StepLocation(index, step.Name)

	a.logger.Debug("assembling step",
		zap.Int("step", index),
		zap.String("name", step.DisplayName()),
		zap.String("endpoint", step.Endpoint),
		zap.Int("known", w.known.Len()),
	)

	if step.IsThinkTimeOnly() {
		w.seq = append(w.seq, delayNode(step.ThinkTime))
		res.DelaysCreated++

		return w, nil
	}

	op, err := a.index.Resolve(step.Endpoint)
	if err != nil {
		return w, fmt.Errorf("step [%d] %q: %w", index, step.DisplayName(), err)
	}

	sub := substitution{known: w.known}
	params, _ := sub.apply(step.Params).(map[string]any)
	headers, _ := sub.apply(step.Headers).(map[string]string)
	payload := sub.apply(step.Payload)

	var asserts *scenario.Assertions
	if step.Assert != nil {
		asserts = &scenario.Assertions{Status: step.Assert.Status}
		asserts.Body, _ = sub.apply(step.Assert.Body).(map[string]any)
		asserts.Headers, _ = sub.apply(step.Assert.Headers).(map[string]string)
		asserts.BodyContains, _ = sub.apply(step.Assert.BodyContains).([]string)
	}

	for _, name := range sub.undefinedNames() {
		res.Diagnostics.AddWarning(diagnostic.CodeUndefinedVariable,
			fmt.Sprintf("${%s} is not defined by a global or an earlier capture", name),
			loc, name)
	}

	body, err := encodeBody(payload)
	if err != nil {
		res.Diagnostics.AddWarning(diagnostic.CodePayloadInvalid,
			fmt.Sprintf("payload cannot be encoded as JSON, request body omitted: %v", err),
			loc, "payload")
	}

	sampler := a.sampler(step, index, op, params, body)

	res.SamplersCreated++

	if len(headers) > 0 {
		sampler.Add(headersNode(headers))
	}

	captured := make([]string, 0, len(mappings))

	for _, m := range mappings {
		sampler.Add(a.extractorNode(m))
		res.ExtractorsCreated++

		captured = append(captured, m.Variable)
	}

	entry := sampler

	if step.Loop != nil {
		loop, fields := a.loopNode(step, loc, res)
		if loop != nil {
			for _, field := range fields {
				sampler.Add(a.conditionExtractor(field))
				res.ExtractorsCreated++

				captured = append(captured, ConditionVariable(field))
			}

			if step.Loop.Interval > 0 {
				sampler.Add(timerNode(step.Loop.Interval))
			}

			loop.Add(sampler)
			entry = loop
			res.LoopsCreated++
		}
	}

	for _, n := range assertionNodes(asserts) {
		sampler.Add(n)
		res.AssertionsCreated++
	}

	w.seq = append(w.seq, entry)

	if step.ThinkTime > 0 {
		w.seq = append(w.seq, delayNode(step.ThinkTime))
		res.DelaysCreated++
	}

	w.known = w.known.With(captured...)

	return w, nil
}

// substitution collects undefined references across every value of a step.
type substitution struct {
	known     ledger.Ledger
	undefined []string
}

func (s *substitution) apply(v any) any {
	out, missing := s.known.Substitute(v)
	s.undefined = append(s.undefined, missing...)

	return out
}

func (s *substitution) undefinedNames() []string {
	names := make(map[string]bool, len(s.undefined))
	for _, n := range s.undefined {
		names[n] = true
	}

	return common.SortedKeys(names)
}

func (a *Assembler) scaffold(sc *scenario.Scenario, group *plantree.Node) *plantree.Node {
	root := plantree.NewNode(plantree.TestPlan, sc.Name).
		Set("version", plantree.String(sc.Version))

	if sc.Description != "" {
		root.Set("description", plantree.String(sc.Description))
	}

	root.Add(a.httpDefaults(sc))

	if len(sc.Variables) > 0 {
		vars := plantree.NewNode(plantree.Variables, "User Defined Variables")
		for _, name := range sc.GlobalNames() {
			vars.Set(name, plantree.FromAny(sc.Variables[name]))
		}

		root.Add(vars)
	}

	s := sc.Settings

	loops := 1
	if s.Duration > 0 {
		loops = -1
	}

	if s.Loops != nil {
		loops = *s.Loops
	}

	group.Set("threads", plantree.Int(s.Threads)).
		Set("rampup", plantree.Int(s.RampUp)).
		Set("loops", plantree.Int(loops)).
		Set("scheduler", plantree.Bool(s.Duration > 0))

	if s.Duration > 0 {
		group.Set("duration", plantree.Int(s.Duration))
	}

	return root.Add(group)
}

func (a *Assembler) httpDefaults(sc *scenario.Scenario) *plantree.Node {
	base := sc.Settings.BaseURL
	if base == "" && a.index.Contract() != nil {
		base = a.index.Contract().BaseURL
	}

	if base == "" {
		base = a.baseURL
	}

	if base == "" {
		base = DefaultBaseURL
	}

	node := plantree.NewNode(plantree.HTTPDefaults, "HTTP Request Defaults").
		Set("base_url", plantree.String(base))

	u, err := url.Parse(base)
	if err != nil {
		a.logger.Warn("unparsable base url", zap.String("base_url", base), zap.Error(err))

		return node
	}

	protocol := u.Scheme
	if protocol == "" {
		protocol = "http"
	}

	domain := u.Hostname()
	if domain == "" {
		domain = "localhost"
	}

	node.Set("protocol", plantree.String(protocol)).
		Set("domain", plantree.String(domain)).
		Set("port", plantree.String(u.Port())).
		Set("path", plantree.String(u.Path))

	return node
}

func (a *Assembler) sampler(
	step *scenario.Step,
	index int,
	op *contract.Operation,
	params map[string]any,
	body string,
) *plantree.Node {
	path, consumed := expandPath(op.Path, params)

	node := plantree.NewNode(plantree.Sampler, fmt.Sprintf("[%d] %s", index, step.DisplayName())).
		Set("method", plantree.String(op.Method)).
		Set("path", plantree.String(path)).
		Set("operation", plantree.String(op.Key())).
		Set("follow_redirects", plantree.Bool(true)).
		Set("keep_alive", plantree.Bool(true))

	if op.ID != "" {
		node.Set("operation_id", plantree.String(op.ID))
	}

	if args := queryArgs(params, consumed); len(args) > 0 {
		node.Set("query", plantree.StringMap(args))
	}

	if body != "" {
		node.Set("body", plantree.String(body))
	}

	return node
}

// encodeBody renders a request payload as indented JSON. A nil payload
// has no body.
func encodeBody(payload any) (string, error) {
	if payload == nil {
		return "", nil
	}

	body, err := sonic.ConfigStd.MarshalIndent(common.StringKeys(payload), "", "  ")
	if err != nil {
		return "", err
	}

	return string(body), nil
}

func (a *Assembler) extractorNode(m correlation.Mapping) *plantree.Node {
	targets := make([]plantree.Value, 0, len(m.TargetSteps))
	for _, t := range m.TargetSteps {
		targets = append(targets, plantree.Int(t))
	}

	return plantree.NewNode(plantree.Extractor, "Extract "+m.Variable).
		Set("variable", plantree.String(m.Variable)).
		Set("path", plantree.String(m.Path)).
		Set("match_number", plantree.Int(m.Match.Number())).
		Set("default", plantree.String(a.extractorDefault)).
		Set("match_kind", plantree.String(m.Kind.String())).
		Set("confidence", plantree.String(strconv.FormatFloat(m.Confidence, 'f', -1, 64))).
		Set("target_steps", plantree.List(targets...))
}

func (a *Assembler) conditionExtractor(field string) *plantree.Node {
	return plantree.NewNode(plantree.Extractor, "Extract "+field+" for condition").
		Set("variable", plantree.String(ConditionVariable(field))).
		Set("path", plantree.String(ExtractorPath(field))).
		Set("match_number", plantree.Int(1)).
		Set("default", plantree.String(a.extractorDefault))
}

// loopNode builds the loop wrapper and returns the response fields its
// condition reads. It returns nil when the loop declares neither mode.
func (a *Assembler) loopNode(step *scenario.Step, loc string, res *CompileResult) (*plantree.Node, []string) {
	l := step.Loop

	if l.IsWhile() {
		cond, err := ParseCondition(l.While)
		if err != nil {
			res.Diagnostics.AddWarning(diagnostic.CodeLoopConditionInvalid, err.Error(), loc, "loop.while")
		}

		maxIter := l.Max
		if maxIter < 1 {
			maxIter = scenario.DefaultMaxIterations
		}

		node := plantree.NewNode(plantree.Loop, step.DisplayName()).
			Set("mode", plantree.String("while")).
			Set("condition", plantree.String(cond.Source)).
			Set("max_iterations", plantree.Int(maxIter))

		if err == nil {
			node.Set("expression", plantree.String(cond.Expression))
		}

		node.Set("fields", plantree.StringList(cond.Fields))

		return node, cond.Fields
	}

	if l.Count > 0 {
		return plantree.NewNode(plantree.Loop, step.DisplayName()).
			Set("mode", plantree.String("count")).
			Set("count", plantree.Int(l.Count)), nil
	}

	return nil, nil
}

func headersNode(headers map[string]string) *plantree.Node {
	node := plantree.NewNode(plantree.Headers, "HTTP Header Manager")
	for _, name := range common.SortedKeys(headers) {
		node.Set(name, plantree.String(headers[name]))
	}

	return node
}

func assertionNodes(a *scenario.Assertions) []*plantree.Node {
	if a.IsEmpty() {
		return nil
	}

	var out []*plantree.Node

	if a.Status != 0 {
		out = append(out, plantree.NewNode(plantree.Assertion, "Status "+strconv.Itoa(a.Status)).
			Set("type", plantree.String("status")).
			Set("expected", plantree.Int(a.Status)))
	}

	for _, field := range common.SortedKeys(a.Body) {
		out = append(out, plantree.NewNode(plantree.Assertion, "Body "+field).
			Set("type", plantree.String("json_path")).
			Set("path", plantree.String(fieldindex.FromDotted(field).JSONPath())).
			Set("expected", plantree.String(paramText(a.Body[field]))))
	}

	for _, name := range common.SortedKeys(a.Headers) {
		out = append(out, plantree.NewNode(plantree.Assertion, "Header "+name).
			Set("type", plantree.String("header")).
			Set("header", plantree.String(name)).
			Set("expected", plantree.String(a.Headers[name])))
	}

	for _, text := range a.BodyContains {
		out = append(out, plantree.NewNode(plantree.Assertion, "Body contains "+strconv.Quote(text)).
			Set("type", plantree.String("body_contains")).
			Set("expected", plantree.String(text)))
	}

	return out
}

func timerNode(ms int) *plantree.Node {
	return plantree.NewNode(plantree.Timer, "Loop Interval").
		Set("delay_ms", plantree.Int(ms))
}

func delayNode(ms int) *plantree.Node {
	return plantree.NewNode(plantree.Delay, "Think Time").
		Set("duration_ms", plantree.Int(ms))
}

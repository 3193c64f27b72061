package plan

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"scenario-planner/internal/contract"
	"scenario-planner/internal/diagnostic"
	"scenario-planner/internal/plantree"
	"scenario-planner/internal/scenario"
)

func compile(t *testing.T, src string) *CompileResult {
	t.Helper()

	res, err := NewCompiler(shopIndex()).Compile(mustParse(t, src))
	require.NoError(t, err)
	require.True(t, res.Success)

	return res
}

func child(n *plantree.Node, kind plantree.NodeKind, name string) *plantree.Node {
	for _, c := range n.Children {
		if c.Kind == kind && (name == "" || c.Name == name) {
			return c
		}
	}

	return nil
}

func TestCompile_Checkout(t *testing.T) {
	res := compile(t, checkoutYAML)

	assert.Equal(t, 3, res.SamplersCreated)
	assert.Equal(t, 2, res.ExtractorsCreated)
	assert.Equal(t, 5, res.AssertionsCreated)
	assert.Equal(t, 0, res.LoopsCreated)
	assert.Equal(t, 2, res.DelaysCreated)
	assert.Empty(t, res.Errors())

	steps := res.Tree.Steps()
	require.Len(t, steps, 5, spew.Sdump(plantree.Outline(res.Tree)))

	kinds := make([]plantree.NodeKind, 0, len(steps))
	for _, s := range steps {
		kinds = append(kinds, s.Kind)
	}

	assert.Equal(t, []plantree.NodeKind{
		plantree.Sampler, plantree.Sampler, plantree.Delay, plantree.Sampler, plantree.Delay,
	}, kinds)

	create := steps[0]
	assert.Equal(t, "[1] Create user", create.Name)
	assert.Equal(t, "POST", create.Text("method"))
	assert.Equal(t, "/users", create.Text("path"))
	assert.Equal(t, "createUser", create.Text("operation_id"))
	assert.Contains(t, create.Text("body"), `"email": "${email}"`)

	ext := child(create, plantree.Extractor, "")
	require.NotNil(t, ext)
	assert.Equal(t, "userId", ext.Text("variable"))
	assert.Equal(t, "$.id", ext.Text("path"))
	assert.Equal(t, "1", ext.Text("match_number"))
	assert.Equal(t, DefaultExtractorDefault, ext.Text("default"))
	assert.Equal(t, "id-suffix", ext.Text("match_kind"))

	targets, ok := ext.Get("target_steps")
	require.True(t, ok)
	assert.True(t, targets.Equal(plantree.List(plantree.Int(3))))

	assert.Equal(t, "500", steps[2].Text("duration_ms"))

	get := steps[3]
	assert.Equal(t, "[3] Get user", get.Name)
	assert.Equal(t, "/users/${userId}", get.Text("path"))

	query, ok := get.Get("query")
	require.True(t, ok)
	assert.True(t, query.Equal(plantree.Object(plantree.Prop("verbose", plantree.String("true")))))

	headers := child(get, plantree.Headers, "")
	require.NotNil(t, headers)
	assert.Equal(t, "Bearer ${token}", headers.Text("Authorization"))

	var types []string
	for _, a := range get.Find(plantree.Assertion) {
		types = append(types, a.Text("type"))
	}

	assert.Equal(t, []string{"status", "json_path", "header", "body_contains"}, types)

	body := child(get, plantree.Assertion, "Body email")
	require.NotNil(t, body)
	assert.Equal(t, "$.email", body.Text("path"))
	assert.Equal(t, "${email}", body.Text("expected"))

	assert.Equal(t, "Think Time", steps[4].Name)
}

func TestCompile_Scaffolding(t *testing.T) {
	res := compile(t, checkoutYAML)
	root := res.Tree.Root

	assert.Equal(t, plantree.TestPlan, root.Kind)
	assert.Equal(t, "checkout", root.Name)
	assert.Equal(t, "2.0", root.Text("version"))

	defaults := child(root, plantree.HTTPDefaults, "")
	require.NotNil(t, defaults)
	assert.Equal(t, "https", defaults.Text("protocol"))
	assert.Equal(t, "shop.example.com", defaults.Text("domain"))
	assert.Equal(t, "8443", defaults.Text("port"))
	assert.Equal(t, "/api", defaults.Text("path"))

	vars := child(root, plantree.Variables, "")
	require.NotNil(t, vars)
	require.Len(t, vars.Properties, 2)
	assert.Equal(t, "email", vars.Properties[0].Name)
	assert.Equal(t, "secret", vars.Text("password"))

	group := child(root, plantree.ThreadGroup, "")
	require.NotNil(t, group)
	assert.Equal(t, "5", group.Text("threads"))
	assert.Equal(t, "10", group.Text("rampup"))
	assert.Equal(t, "1", group.Text("loops"))
	assert.Equal(t, "false", group.Text("scheduler"))

	require.NoError(t, res.Tree.Validate())
	assert.NotEmpty(t, root.ID)
}

func TestCompile_BaseURLFallsBackToContract(t *testing.T) {
	res := compile(t, `
name: fallback
scenario:
  - name: Ping
    endpoint: health
`)

	defaults := child(res.Tree.Root, plantree.HTTPDefaults, "")
	require.NotNil(t, defaults)
	assert.Equal(t, "contract.example.com", defaults.Text("domain"))
	assert.Nil(t, child(res.Tree.Root, plantree.Variables, ""))
}

func TestCompile_CapturedVariableStaysLive(t *testing.T) {
	res := compile(t, checkoutYAML)

	assert.Empty(t, res.Diagnostics.ByCode(diagnostic.CodeUndefinedVariable))
	assert.Equal(t, "/users/${userId}", res.Tree.Steps()[3].Text("path"))
}

func TestCompile_UndefinedVariableWarns(t *testing.T) {
	res := compile(t, `
name: undefined
scenario:
  - name: Order
    endpoint: createOrder
    headers:
      Authorization: Bearer ${token}
    payload:
      note: uses ${token} twice ${token}
`)

	undefined := res.Diagnostics.ByCode(diagnostic.CodeUndefinedVariable)
	require.Len(t, undefined, 1)
	assert.Equal(t, "token", undefined[0].Subject)
	assert.Equal(t, "step [1] Order", undefined[0].Location)

	sampler := res.Tree.Steps()[0]
	assert.Contains(t, sampler.Text("body"), "uses ${token} twice ${token}")
	assert.Equal(t, "Bearer ${token}", child(sampler, plantree.Headers, "").Text("Authorization"))
}

func TestCompile_NonStringPayloadKeys(t *testing.T) {
	parsed := mustParse(t, `
name: keyed
scenario:
  - name: Create user
    endpoint: createUser
    payload:
      tags:
        1: ${undefinedThing}
        2: plain
`)

	built := &scenario.Scenario{
		Name: "keyed",
		Steps: []scenario.Step{{
			Name:     "Create user",
			Endpoint: "createUser",
			Payload:  map[string]any{"tags": map[any]any{1: "${undefinedThing}", 2: "plain"}},
		}},
	}

	tests := []struct {
		name string
		sc   *scenario.Scenario
	}{
		{name: "decoded from yaml", sc: parsed},
		{name: "built in code", sc: built},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := NewCompiler(shopIndex()).Compile(tt.sc)
			require.NoError(t, err)
			require.True(t, res.Success)

			undefined := res.Diagnostics.ByCode(diagnostic.CodeUndefinedVariable)
			require.Len(t, undefined, 1)
			assert.Equal(t, "undefinedThing", undefined[0].Subject)

			body := res.Tree.Steps()[0].Text("body")
			assert.Contains(t, body, `"1": "${undefinedThing}"`)
			assert.Contains(t, body, `"2": "plain"`)
		})
	}
}

func TestCompile_UnencodablePayloadWarns(t *testing.T) {
	sc := &scenario.Scenario{
		Name: "unencodable",
		Steps: []scenario.Step{
			{Name: "Create user", Endpoint: "createUser", Payload: map[string]any{"ch": make(chan int)}},
			{Name: "Health", Endpoint: "GET /health"},
		},
	}

	res, err := NewCompiler(shopIndex()).Compile(sc)
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.Equal(t, 2, res.SamplersCreated)

	invalid := res.Diagnostics.ByCode(diagnostic.CodePayloadInvalid)
	require.Len(t, invalid, 1)
	assert.Equal(t, "step [1] Create user", invalid[0].Location)

	_, hasBody := res.Tree.Steps()[0].Get("body")
	assert.False(t, hasBody)
}

func TestCompile_CaptureIsNotVisibleToItsOwnStep(t *testing.T) {
	res := compile(t, `
name: self
scenario:
  - name: Create user
    endpoint: createUser
    payload:
      id: ${userId}
    capture:
      - userId
  - name: Get user
    endpoint: getUser
    params:
      id: ${userId}
`)

	undefined := res.Diagnostics.ByCode(diagnostic.CodeUndefinedVariable)
	require.Len(t, undefined, 1)
	assert.Equal(t, "step [1] Create user", undefined[0].Location)
}

func TestCompile_AmbiguousEndpointAborts(t *testing.T) {
	sc := mustParse(t, `
name: ambiguous
scenario:
  - name: Create user
    endpoint: createUser
  - name: Items
    endpoint: GET /items
  - name: After
    endpoint: health
`)

	res, err := NewCompiler(shopIndex()).Compile(sc)
	require.Error(t, err)
	assert.True(t, errors.Is(err, contract.ErrAmbiguousEndpoint))
	assert.Contains(t, err.Error(), `step [2] "Items"`)

	var amb *contract.AmbiguousEndpointError
	require.True(t, errors.As(err, &amb))
	assert.Equal(t, []string{"GET /api/v1/items", "GET /api/v2/items"}, amb.Candidates)

	require.NotNil(t, res)
	assert.False(t, res.Success)
	assert.Equal(t, 1, res.SamplersCreated)
	assert.Len(t, res.Tree.Steps(), 1)
}

func TestCompile_FatalEndpointErrors(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
		want     error
	}{
		{name: "unknown operation id", endpoint: "createUsr", want: contract.ErrEndpointNotFound},
		{name: "unknown path", endpoint: "GET /nowhere", want: contract.ErrEndpointNotFound},
		{name: "bad method", endpoint: "FETCH /users", want: contract.ErrInvalidEndpointRef},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := mustParse(t, fmt.Sprintf("name: fatal\nscenario:\n  - name: Only\n    endpoint: %s\n", tt.endpoint))

			res, err := NewCompiler(shopIndex()).Compile(sc)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.False(t, res.Success)
		})
	}
}

func TestCompile_UnresolvedCaptureKeepsCompiling(t *testing.T) {
	res := compile(t, `
name: totals
scenario:
  - name: Order
    endpoint: createOrder
    capture:
      - orderTotal
      - status
  - name: Get user
    endpoint: getUser
    params:
      id: ${orderTotal}
`)

	unresolved := res.Diagnostics.ByCode(diagnostic.CodeCaptureUnresolved)
	require.Len(t, unresolved, 1)
	assert.Contains(t, unresolved[0].Message, "orderTotal")

	require.Len(t, res.Mappings, 1)
	assert.Equal(t, "status", res.Mappings[0].Variable)
	assert.Equal(t, 1, res.ExtractorsCreated)
	assert.Equal(t, 2, res.SamplersCreated)

	// the unresolved variable never enters the ledger
	assert.Len(t, res.Diagnostics.ByCode(diagnostic.CodeUndefinedVariable), 1)
	assert.False(t, res.Trail.KnownAt(2).Knows("orderTotal"))
	assert.True(t, res.Trail.KnownAt(2).Knows("status"))
}

func TestCompile_ZeroCapturesLeaveLedgerAlone(t *testing.T) {
	res := compile(t, `
name: quiet
variables:
  region: eu
scenario:
  - name: Ping
    endpoint: health
  - name: Ping again
    endpoint: health
`)

	assert.Zero(t, res.ExtractorsCreated)
	assert.Empty(t, res.Tree.Root.Find(plantree.Extractor))
	assert.Equal(t, res.Trail.KnownAt(1).Names(), res.Trail.KnownAt(2).Names())
	assert.Equal(t, []string{"region"}, res.Trail.KnownAt(2).Names())
}

func TestCompile_TrailFollowsStepOrder(t *testing.T) {
	res := compile(t, checkoutYAML)

	require.Equal(t, 5, res.Trail.Len())
	assert.Equal(t, []string{"email", "password"}, res.Trail.KnownAt(1).Names())
	assert.Equal(t, []string{"email", "password", "userId"}, res.Trail.KnownAt(2).Names())
	assert.Equal(t, []string{"email", "password", "token", "userId"}, res.Trail.KnownAt(3).Names())
	assert.Equal(t, res.Trail.KnownAt(4).Names(), res.Trail.KnownAt(5).Names())
}

func TestCompile_Loops(t *testing.T) {
	res := compile(t, jobsYAML)

	assert.Equal(t, 3, res.LoopsCreated)
	assert.Equal(t, 4, res.SamplersCreated)
	assert.Equal(t, 3, res.ExtractorsCreated)

	steps := res.Tree.Steps()
	require.Len(t, steps, 4)

	poll := steps[1]
	require.Equal(t, plantree.Loop, poll.Kind)
	assert.Equal(t, "while", poll.Text("mode"))
	assert.Equal(t, "$.status != 'done'", poll.Text("condition"))
	assert.Equal(t, "status != 'done'", poll.Text("expression"))
	assert.Equal(t, "100", poll.Text("max_iterations"))
	require.Len(t, poll.Children, 1)

	sampler := poll.Children[0]
	assert.Equal(t, "/jobs/${jobId}", sampler.Text("path"))

	cond := child(sampler, plantree.Extractor, "Extract status for condition")
	require.NotNil(t, cond)
	assert.Equal(t, "$.status", cond.Text("path"))

	timer := child(sampler, plantree.Timer, "")
	require.NotNil(t, timer)
	assert.Equal(t, "2000", timer.Text("delay_ms"))

	ping := steps[2]
	assert.Equal(t, "count", ping.Text("mode"))
	assert.Equal(t, "3", ping.Text("count"))
	assert.Nil(t, child(ping.Children[0], plantree.Timer, ""))

	broken := steps[3]
	assert.Equal(t, "5", broken.Text("max_iterations"))
	_, hasExpr := broken.Get("expression")
	assert.False(t, hasExpr)

	invalid := res.Diagnostics.ByCode(diagnostic.CodeLoopConditionInvalid)
	require.Len(t, invalid, 1)
	assert.Equal(t, "step [4] Broken", invalid[0].Location)
}

func TestCompile_NestedLoopConditionField(t *testing.T) {
	res := compile(t, `
name: nested
scenario:
  - name: Wait
    endpoint: GET /health
    loop:
      while: "$.job.status != 'done'"
  - name: After
    endpoint: GET /health
    headers:
      X-Last: ${job_status}
`)

	loop := res.Tree.Steps()[0]
	assert.Equal(t, "job_status != 'done'", loop.Text("expression"))

	cond := child(loop.Children[0], plantree.Extractor, "Extract job.status for condition")
	require.NotNil(t, cond)
	assert.Equal(t, "job_status", cond.Text("variable"))
	assert.Equal(t, "$.job.status", cond.Text("path"))

	assert.Empty(t, res.Diagnostics.ByCode(diagnostic.CodeUndefinedVariable))
}

func TestCompile_ThreadGroupLoops(t *testing.T) {
	tests := []struct {
		name      string
		settings  string
		loops     string
		scheduler string
	}{
		{name: "default", settings: "threads: 1", loops: "1", scheduler: "false"},
		{name: "duration", settings: "duration: 60", loops: "-1", scheduler: "true"},
		{name: "explicit", settings: "loops: 7", loops: "7", scheduler: "false"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := compile(t, "name: tg\nsettings:\n  "+tt.settings+"\nscenario:\n  - name: Ping\n    endpoint: health\n")

			group := child(res.Tree.Root, plantree.ThreadGroup, "")
			require.NotNil(t, group)
			assert.Equal(t, tt.loops, group.Text("loops"))
			assert.Equal(t, tt.scheduler, group.Text("scheduler"))
		})
	}
}

func TestCompile_OrderAndIdempotence(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		sc, err := scenario.Parse([]byte(checkoutYAML))
		if err != nil {
			t.Fatal(err)
		}

		sc.Settings.Threads = rapid.IntRange(1, 100).Draw(t, "threads")

		var want []string

		for i := range sc.Steps {
			on := rapid.Bool().Draw(t, fmt.Sprintf("enabled%d", i))
			sc.Steps[i].Enabled = &on

			if on && !sc.Steps[i].IsThinkTimeOnly() {
				want = append(want, fmt.Sprintf("[%d] %s", i+1, sc.Steps[i].DisplayName()))
			}
		}

		first, err := NewCompiler(shopIndex()).Compile(sc)
		if err != nil {
			t.Fatal(err)
		}

		second, err := NewCompiler(shopIndex()).Compile(sc)
		if err != nil {
			t.Fatal(err)
		}

		var got []string
		for _, n := range first.Tree.Steps() {
			if n.Kind == plantree.Sampler {
				got = append(got, n.Name)
			}
		}

		assert.Equal(t, want, got)

		a, err := plantree.Encode(first.Tree)
		if err != nil {
			t.Fatal(err)
		}

		b, err := plantree.Encode(second.Tree)
		if err != nil {
			t.Fatal(err)
		}

		if string(a) != string(b) {
			t.Fatalf("compiles differ:\n%s\n%s", a, b)
		}
	})
}

type recordingObserver struct {
	results []*CompileResult
	errs    []error
}

func (o *recordingObserver) ObserveCompile(res *CompileResult, err error, _ time.Duration) {
	o.results = append(o.results, res)
	o.errs = append(o.errs, err)
}

func TestCompile_Observer(t *testing.T) {
	obs := &recordingObserver{}
	c := NewCompiler(shopIndex(), WithObserver(obs), WithLogger(nil))

	_, err := c.Compile(mustParse(t, checkoutYAML))
	require.NoError(t, err)

	_, err = c.Compile(mustParse(t, "name: bad\nscenario:\n  - name: X\n    endpoint: GET /items\n"))
	require.Error(t, err)

	require.Len(t, obs.results, 2)
	assert.True(t, obs.results[0].Success)
	assert.NoError(t, obs.errs[0])
	assert.False(t, obs.results[1].Success)
	assert.Error(t, obs.errs[1])
}

func TestCompile_ConfigOverrides(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ExtractorDefault = "MISSING"

	res, err := NewCompiler(shopIndex(), WithConfig(cfg)).Compile(mustParse(t, checkoutYAML))
	require.NoError(t, err)

	for _, e := range res.Tree.Root.Find(plantree.Extractor) {
		assert.Equal(t, "MISSING", e.Text("default"))
	}
}

func TestCompile_NilScenario(t *testing.T) {
	_, err := NewCompiler(shopIndex()).Compile(nil)
	assert.Error(t, err)
}

package contract

import (
	"errors"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndex_Resolve(t *testing.T) {
	idx := NewIndex(sampleContract())

	tests := []struct {
		name string
		ref  string
		want string
	}{
		{"operation id", "createUser", "POST /users"},
		{"exact method and path", "POST /users", "POST /users"},
		{"lowercase method and trailing slash", "post /users/", "POST /users"},
		{"suffix with literal parameter segment", "GET /orders/{orderId}", "GET /api/v1/orders/{orderId}"},
		{"longer suffix disambiguates", "GET /v2/items", "GET /api/v2/items"},
		{"exact match wins over suffix", "GET /users/{id}", "GET /users/{id}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op, err := idx.Resolve(tt.ref)
			require.NoError(t, err)
			assert.Equal(t, tt.want, op.Key())
		})
	}
}

func TestIndex_ResolveAmbiguous(t *testing.T) {
	idx := NewIndex(sampleContract())

	_, err := idx.Resolve("GET /items")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAmbiguousEndpoint))

	var amb *AmbiguousEndpointError
	require.ErrorAs(t, err, &amb)
	assert.Equal(t, []string{"GET /api/v1/items", "GET /api/v2/items"}, amb.Candidates)
}

func TestIndex_ResolvePinned(t *testing.T) {
	idx := NewIndex(sampleContract(), WithPins(map[string]string{"get /items": "/api/v2/items/"}))

	op, err := idx.Resolve("GET /items")
	require.NoError(t, err)
	assert.Equal(t, "listItemsV2", op.ID)

	idx = NewIndex(sampleContract(), WithPins(map[string]string{"GET /items": "/api/v3/items"}))
	_, err = idx.Resolve("GET /items")
	assert.ErrorIs(t, err, ErrEndpointNotFound)
}

func TestIndex_ResolveNotFound(t *testing.T) {
	idx := NewIndex(sampleContract())

	for _, ref := range []string{"DELETE /users", "GET /id", "creatUser"} {
		t.Run(ref, func(t *testing.T) {
			_, err := idx.Resolve(ref)
			assert.ErrorIs(t, err, ErrEndpointNotFound)
		})
	}

	_, err := idx.Resolve("creatUser")

	var nf *EndpointNotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Contains(t, nf.Suggestions, "createUser")
}

func TestIndex_ResolveInvalid(t *testing.T) {
	idx := NewIndex(sampleContract())

	for _, ref := range []string{"", "FETCH /users", "GET users", "GET /users extra", "/users"} {
		t.Run(ref, func(t *testing.T) {
			_, err := idx.Resolve(ref)
			assert.ErrorIs(t, err, ErrInvalidEndpointRef)
		})
	}
}

func TestIndex_SchemaFor(t *testing.T) {
	idx := NewIndex(sampleContract())

	tests := []struct {
		name       string
		ref        string
		declared   string
		wantStatus string
		wantProps  []string
	}{
		{"preference falls through to 201", "createUser", "", "201", []string{"id", "email"}},
		{"declared error status is ignored", "createUser", "400", "201", []string{"id", "email"}},
		{"swagger definitions ref", "getUser", "", "200", []string{"id", "email"}},
		{"other 2xx fallback", "getOrder", "", "202", []string{}},
		{"default response", "health", "", "default", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op, err := idx.Resolve(tt.ref)
			require.NoError(t, err)

			s, status := idx.SchemaFor(op, tt.declared)
			require.NotNil(t, s)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantProps, s.Properties.Names())
		})
	}
}

func TestIndex_SchemaForDeclaredSuccess(t *testing.T) {
	op := &Operation{
		ID: "startExport", Method: "POST", Path: "/exports",
		Responses: map[string]*Schema{
			"200": {Type: SchemaType{TypeObject}, Properties: Properties{{Name: "url", Schema: &Schema{Type: SchemaType{"string"}}}}},
			"202": {Type: SchemaType{TypeObject}, Properties: Properties{{Name: "jobId", Schema: &Schema{Type: SchemaType{"string"}}}}},
			"404": {Ref: "#/components/schemas/Error"},
		},
	}
	idx := NewIndex(&Contract{Schemas: sampleContract().Schemas, Operations: []Operation{*op}})

	tests := []struct {
		declared   string
		wantStatus string
		wantProps  []string
	}{
		{declared: "", wantStatus: "200", wantProps: []string{"url"}},
		{declared: "202", wantStatus: "202", wantProps: []string{"jobId"}},
		{declared: "404", wantStatus: "200", wantProps: []string{"url"}},
	}

	for _, tt := range tests {
		t.Run("declared "+tt.declared, func(t *testing.T) {
			s, status := idx.SchemaFor(op, tt.declared)
			require.NotNil(t, s)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantProps, s.Properties.Names())
		})
	}
}

func TestIndex_SchemaForAbsent(t *testing.T) {
	idx := NewIndex(sampleContract())

	for _, ref := range []string{"deleteUser", "listItemsV1"} {
		op, err := idx.Resolve(ref)
		require.NoError(t, err)

		s, status := idx.SchemaFor(op, "")
		assert.Nil(t, s)
		assert.Empty(t, status)
	}
}

func TestIndex_Deref(t *testing.T) {
	idx := NewIndex(sampleContract())

	assert.Nil(t, idx.Deref(&Schema{Ref: "#/components/schemas/Missing"}))
	assert.Nil(t, idx.Deref(&Schema{Ref: "#/components/schemas/Loop1"}), "reference cycles terminate")
	assert.Nil(t, idx.Deref(&Schema{Ref: "https://example.com/schema.json"}))

	inline := &Schema{Type: SchemaType{"string"}}
	assert.Same(t, inline, idx.Deref(inline))
}

func TestIndex_ResolveByOperationIDProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("every declared operation id resolves", prop.ForAll(
		func(ids []string) bool {
			c := &Contract{}
			for i, id := range ids {
				c.Operations = append(c.Operations, Operation{
					ID:     id,
					Method: Methods[i%len(Methods)],
					Path:   "/r/" + id,
				})
			}

			idx := NewIndex(c)
			for _, id := range ids {
				op, err := idx.Resolve(id)
				if err != nil || op.ID != id {
					return false
				}
			}

			return true
		},
		gen.SliceOf(gen.Identifier()),
	))

	properties.TestingRun(t)
}

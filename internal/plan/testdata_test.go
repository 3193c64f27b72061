package plan

import (
	"testing"

	"github.com/stretchr/testify/require"

	"scenario-planner/internal/contract"
	"scenario-planner/internal/scenario"
)

func str() *contract.Schema {
	return &contract.Schema{Type: contract.SchemaType{"string"}}
}

func obj(props ...contract.Property) *contract.Schema {
	return &contract.Schema{Type: contract.SchemaType{contract.TypeObject}, Properties: props}
}

func prop(name string, s *contract.Schema) contract.Property {
	return contract.Property{Name: name, Schema: s}
}

func shopContract() *contract.Contract {
	return &contract.Contract{
		Title:   "Shop",
		BaseURL: "http://contract.example.com",
		Operations: []contract.Operation{
			{
				ID: "createUser", Method: "POST", Path: "/users",
				Responses: map[string]*contract.Schema{"201": obj(prop("id", str()), prop("email", str()))},
			},
			{
				ID: "getUser", Method: "GET", Path: "/users/{id}",
				Responses: map[string]*contract.Schema{"200": obj(prop("id", str()), prop("email", str()), prop("name", str()))},
			},
			{
				ID: "login", Method: "POST", Path: "/auth/login",
				Responses: map[string]*contract.Schema{"200": obj(prop("accessToken", str()), prop("expires", str()))},
			},
			{
				ID: "createOrder", Method: "POST", Path: "/orders",
				Responses: map[string]*contract.Schema{"201": obj(prop("id", str()), prop("status", str()))},
			},
			{ID: "listItemsV1", Method: "GET", Path: "/api/v1/items"},
			{ID: "listItemsV2", Method: "GET", Path: "/api/v2/items"},
			{
				ID: "startJob", Method: "POST", Path: "/jobs",
				Responses: map[string]*contract.Schema{"202": obj(prop("jobId", str()), prop("status", str()))},
			},
			{
				ID: "getJob", Method: "GET", Path: "/jobs/{jobId}",
				Responses: map[string]*contract.Schema{"200": obj(prop("status", str()), prop("progress", str()))},
			},
			{ID: "health", Method: "GET", Path: "/health", Responses: map[string]*contract.Schema{"200": str()}},
		},
	}
}

func shopIndex() *contract.Index {
	return contract.NewIndex(shopContract())
}

const checkoutYAML = `
name: checkout
version: "2.0"
description: Sign up and read the profile back
settings:
  threads: 5
  rampup: 10
  base_url: https://shop.example.com:8443/api
variables:
  password: secret
  email: a@b.c
scenario:
  - name: Create user
    endpoint: createUser
    payload:
      email: ${email}
      password: ${password}
    capture:
      - userId
    assert:
      status: 201
  - name: Login
    endpoint: POST /auth/login
    payload:
      email: ${email}
      password: ${password}
    capture:
      - token: accessToken
    think_time: 500
  - name: Get user
    endpoint: getUser
    params:
      id: ${userId}
      verbose: true
    headers:
      Authorization: Bearer ${token}
    assert:
      status: 200
      body:
        email: ${email}
      headers:
        Content-Type: application/json
      body_contains:
        - name
  - name: Disabled
    endpoint: getUser
    enabled: false
  - think_time: 1000
`

const jobsYAML = `
name: jobs
scenario:
  - name: Start job
    endpoint: startJob
    capture:
      - jobId
  - name: Poll job
    endpoint: getJob
    params:
      jobId: ${jobId}
    loop:
      while: "$.status != 'done'"
      interval: 2000
  - name: Ping
    endpoint: GET /health
    loop:
      count: 3
  - name: Broken
    endpoint: GET /health
    loop:
      while: "$.status =="
      max: 5
`

func mustParse(t *testing.T, src string) *scenario.Scenario {
	t.Helper()

	sc, err := scenario.Parse([]byte(src))
	require.NoError(t, err)

	return sc
}

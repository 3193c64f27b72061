// Package scenario defines the authored scenario model and its YAML form.
//
// A scenario file looks like:
//
//	name: Checkout
//	settings:
//	  threads: 5
//	  base_url: https://shop.example.com
//	variables:
//	  sku: ABC-1
//	scenario:
//	  - name: Create user
//	    endpoint: createUser
//	    payload: {email: test@example.com}
//	    capture:
//	      - userId
//	  - name: Get user
//	    endpoint: GET /users/{userId}
//	    params: {userId: "${userId}"}
//	    assert: {status: 200}
//	  - think_time: 500
//
// Captures accept three forms: a bare variable name, "variable: sourceField",
// and "variable: {path: <JSONPath>, match: first|all|N}".
package scenario

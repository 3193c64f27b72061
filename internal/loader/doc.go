// Package loader reads contracts and scenarios from disk.
//
// Contracts are OpenAPI 3 or Swagger 2 documents in YAML or JSON. Only what
// the compiler needs is kept: operations with their response body schemas
// and the reusable schemas those refer to. JSON input is checked with sonic
// before decoding so syntax errors are reported as JSON errors; decoding
// itself goes through yaml.v3 (JSON is YAML) to keep property order.
package loader

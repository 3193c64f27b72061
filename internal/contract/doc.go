// Package contract holds the decoded API contract and the index used to
// resolve scenario endpoint references against it.
//
// An endpoint reference is either an operation id ("createUser") or a
// "METHOD /path" pair. Method/path references are matched exactly first and
// then by path suffix, so "GET /users/{id}" finds "/api/v1/users/{id}".
// More than one suffix match is reported as an AmbiguousEndpointError
// unless the caller pinned the reference to a full path.
package contract

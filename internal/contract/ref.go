package contract

import (
	"slices"
	"strings"
)

// Methods lists the HTTP methods accepted in endpoint references.
var Methods = []string{"GET", "POST", "PUT", "DELETE", "PATCH", "HEAD", "OPTIONS"}

// EndpointRef is a parsed scenario endpoint reference.
type EndpointRef struct {
	// OperationID is set for operation id references.
	OperationID string
	// Method and Path are set for "METHOD /path" references.
	Method string
	Path   string
}

// IsOperationID reports whether the reference names an operation id.
func (r EndpointRef) IsOperationID() bool {
	return r.OperationID != ""
}

// String returns the canonical textual form.
func (r EndpointRef) String() string {
	if r.IsOperationID() {
		return r.OperationID
	}

	return r.Method + " " + r.Path
}

// ParseEndpointRef parses an operation id or a "METHOD /path" string.
// The method is case-insensitive and returned upper-cased.
func ParseEndpointRef(raw string) (EndpointRef, error) {
	fields := strings.Fields(raw)

	switch len(fields) {
	case 0:
		return EndpointRef{}, &InvalidEndpointRefError{Ref: raw, Reason: "empty reference"}
	case 1:
		if strings.HasPrefix(fields[0], "/") {
			return EndpointRef{}, &InvalidEndpointRefError{Ref: raw, Reason: "path without method"}
		}

		return EndpointRef{OperationID: fields[0]}, nil
	case 2:
		method := strings.ToUpper(fields[0])
		if !slices.Contains(Methods, method) {
			return EndpointRef{}, &InvalidEndpointRefError{Ref: raw, Reason: "unknown HTTP method " + fields[0]}
		}

		if !strings.HasPrefix(fields[1], "/") {
			return EndpointRef{}, &InvalidEndpointRefError{Ref: raw, Reason: "path must start with /"}
		}

		return EndpointRef{Method: method, Path: NormalizePath(fields[1])}, nil
	default:
		return EndpointRef{}, &InvalidEndpointRefError{Ref: raw, Reason: `expected "METHOD /path" or an operation id`}
	}
}

// NormalizePath drops a trailing slash from every path except "/".
func NormalizePath(p string) string {
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
		if p == "" {
			return "/"
		}
	}

	return p
}

// segments splits a normalized path into its non-empty segments.
func segments(p string) []string {
	return strings.FieldsFunc(p, func(r rune) bool { return r == '/' })
}

// hasSuffixSegments reports whether full ends with every segment of short.
// Segments are compared as literal text, so "{id}" only matches "{id}".
func hasSuffixSegments(full, short []string) bool {
	if len(short) == 0 || len(short) > len(full) {
		return false
	}

	return slices.Equal(full[len(full)-len(short):], short)
}

package contract

import (
	"errors"
	"strings"
)

// Sentinel errors matched with errors.Is.
var (
	ErrEndpointNotFound   = errors.New("endpoint not found")
	ErrAmbiguousEndpoint  = errors.New("ambiguous endpoint")
	ErrInvalidEndpointRef = errors.New("invalid endpoint reference")
)

// EndpointNotFoundError reports a reference with no matching operation.
type EndpointNotFoundError struct {
	Ref         string
	Suggestions []string
}

func (e *EndpointNotFoundError) Error() string {
	msg := "endpoint not found: " + e.Ref
	if len(e.Suggestions) > 0 {
		msg += " (did you mean: " + strings.Join(e.Suggestions, ", ") + "?)"
	}

	return msg
}

// Is matches ErrEndpointNotFound.
func (e *EndpointNotFoundError) Is(target error) bool {
	return target == ErrEndpointNotFound
}

// AmbiguousEndpointError reports a short path matching several operations.
type AmbiguousEndpointError struct {
	Ref string
	// Candidates lists every matching operation as "METHOD /path", sorted.
	Candidates []string
}

func (e *AmbiguousEndpointError) Error() string {
	return "ambiguous endpoint " + e.Ref + ": matches " + strings.Join(e.Candidates, ", ")
}

// Is matches ErrAmbiguousEndpoint.
func (e *AmbiguousEndpointError) Is(target error) bool {
	return target == ErrAmbiguousEndpoint
}

// InvalidEndpointRefError reports a reference that is neither an operation
// id nor a "METHOD /path" pair.
type InvalidEndpointRefError struct {
	Ref    string
	Reason string
}

func (e *InvalidEndpointRefError) Error() string {
	return "invalid endpoint reference " + `"` + e.Ref + `": ` + e.Reason
}

// Is matches ErrInvalidEndpointRef.
func (e *InvalidEndpointRefError) Is(target error) bool {
	return target == ErrInvalidEndpointRef
}

// Package diagnostic provides structured warnings and errors collected while
// compiling a scenario.
//
// Key capabilities:
//   - Unresolved capture errors with closest-field suggestions
//   - Ambiguous and low-confidence correlation warnings
//   - Undefined variable warnings
//   - Rendering to the plain string lists carried by a compile result
package diagnostic

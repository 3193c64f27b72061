// Package fieldindex flattens a response schema into a map from field name
// to every extraction path that reaches a field of that name.
//
// Schemas are walked breadth-first so shallower paths are listed before
// deeper ones. Arrays contribute a wildcard segment ("[*]") instead of
// per-index paths, and recursion stops at a fixed depth so self-referencing
// schemas terminate.
package fieldindex

// Package match provides name normalization, Levenshtein distance calculation,
// and candidate ranking for resolving captured variables to response fields.
//
// Key functions:
//   - NormalizeIdent, NormalizeStem: fold identifiers for comparison
//   - StripIDSuffix: splits "userId" style names into their owner prefix
//   - Levenshtein: computes edit distance between strings
//   - Suggest: lists the closest field names for an unresolved variable
package match

// Package correlation resolves scenario captures to response extraction
// paths.
//
// Each capture is tried against an ordered list of matchers and the first
// one that finds a field wins:
//
//  1. explicit path supplied by the author (confidence 1.0)
//  2. explicit source field name (1.0)
//  3. exact field name (1.0)
//  4. case-insensitive field name (0.9)
//  5. "userId" style names mapped to an "id" field, preferring one nested
//     under "user" (0.8)
//  6. field names containing the variable name (0.7)
//
// Captures no matcher can place are reported as errors and produce no
// mapping. Ties and low-confidence matches are reported as warnings.
package correlation

// Package plan compiles a scenario against a contract into a plan tree.
//
// Compilation pipeline:
//  1. Validate the scenario structure
//  2. Resolve captures to extraction paths (correlation)
//  3. Walk enabled steps in order, threading the variable ledger:
//     - resolve the endpoint (fatal when not found or ambiguous)
//     - check ${name} references against the variables known so far
//     - emit sampler, headers, extractors, assertions, loop and delay nodes
//     - add the step's resolved captures to the ledger
//  4. Assign deterministic node identifiers and validate the tree
//
// Recoverable problems are collected as diagnostics on the CompileResult;
// only an unresolvable endpoint reference stops compilation.
package plan

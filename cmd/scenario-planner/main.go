// Package main provides the CLI entrypoint for scenario-planner.
//
// scenario-planner compiles a declarative multi-step API scenario against
// an OpenAPI contract into a load-test plan tree:
//   - Resolves each step's endpoint, including abbreviated paths
//   - Infers where captured values live in each response
//   - Checks ${variable} references against what earlier steps capture
//   - Emits a format-neutral plan (JSON or a readable outline)
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

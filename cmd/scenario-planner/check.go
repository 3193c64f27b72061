package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"scenario-planner/internal/correlation"
)

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check <scenario.yaml>",
		Short: "Validate a scenario and show how each capture resolves",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			compiler, sc, err := a.load(args[0])
			if err != nil {
				return err
			}

			corr, validation := compiler.Analyze(sc)

			printMappings(cmd, corr.Mappings)

			diags := validation
			diags.Merge(corr.Diagnostics)
			printDiagnostics(cmd.ErrOrStderr(), diags)

			if diags.HasErrors() {
				return errHasErrors
			}

			fmt.Fprintln(cmd.OutOrStdout(), "ok")

			return nil
		},
	}
}

func printMappings(cmd *cobra.Command, mappings []correlation.Mapping) {
	if len(mappings) == 0 {
		return
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tVARIABLE\tPATH\tKIND\tCONFIDENCE\tUSED BY")

	for _, m := range mappings {
		used := make([]string, 0, len(m.TargetSteps))
		for _, s := range m.TargetSteps {
			used = append(used, fmt.Sprint(s))
		}

		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%.0f%%\t%s\n",
			m.Step, m.Variable, m.Path, m.Kind, m.Confidence*100, strings.Join(used, ","))
	}

	_ = w.Flush()
}

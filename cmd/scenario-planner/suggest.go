package main

import (
	"github.com/spf13/cobra"

	"scenario-planner/internal/loader"
	"scenario-planner/internal/plan"
)

func newSuggestCmd(a *app) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "suggest <scenario.yaml>",
		Short: "Rewrite inferred captures as explicit paths for review",
		Long: `suggest resolves every capture and writes the scenario back with each
inferred capture replaced by its explicit {path, match} form, so the
inferred paths can be reviewed and locked in.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			compiler, sc, err := a.load(args[0])
			if err != nil {
				return err
			}

			corr, _ := compiler.Analyze(sc)
			printDiagnostics(cmd.ErrOrStderr(), corr.Diagnostics)

			if out != "" {
				return loader.WriteScenario(plan.ExportSuggestions(sc, corr.Mappings), out)
			}

			data, err := plan.ExportSuggestionsYAML(sc, corr.Mappings)
			if err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(data)

			return err
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "write the suggested scenario here instead of stdout")

	return cmd
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"scenario-planner/internal/metrics"
	"scenario-planner/internal/plan"
	"scenario-planner/internal/plantree"
)

type compileOptions struct {
	out         string
	format      string
	metricsFile string
	strict      bool
}

func newCompileCmd(a *app) *cobra.Command {
	o := &compileOptions{}

	cmd := &cobra.Command{
		Use:   "compile <scenario.yaml>",
		Short: "Compile a scenario into a plan tree",
		Example: `  scenario-planner compile -c openapi.yaml scenario.yaml
  scenario-planner compile -c openapi.yaml --format outline scenario.yaml
  scenario-planner compile -c openapi.yaml -o plan.json --metrics-file planner.prom scenario.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(cmd, a, o, args[0])
		},
	}

	cmd.Flags().StringVarP(&o.out, "out", "o", "", "write the plan to this file instead of stdout")
	cmd.Flags().StringVar(&o.format, "format", "json", "plan format: json or outline")
	cmd.Flags().StringVar(&o.metricsFile, "metrics-file", "", "write prometheus textfile metrics here")
	cmd.Flags().BoolVar(&o.strict, "strict", false, "fail when any capture is unresolved")

	return cmd
}

func runCompile(cmd *cobra.Command, a *app, o *compileOptions, scenarioPath string) error {
	if o.format != "json" && o.format != "outline" {
		return fmt.Errorf("unknown format %q (want json or outline)", o.format)
	}

	var m *metrics.Metrics

	var opts []plan.Option
	if o.metricsFile != "" {
		m = metrics.New()
		opts = append(opts, plan.WithObserver(m))
	}

	compiler, sc, err := a.load(scenarioPath, opts...)
	if err != nil {
		return err
	}

	res, compileErr := compiler.Compile(sc)

	if m != nil {
		if err := m.WriteFile(o.metricsFile); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}

	if compileErr != nil {
		return compileErr
	}

	printDiagnostics(cmd.ErrOrStderr(), res.Diagnostics)

	var data []byte

	switch o.format {
	case "outline":
		data = []byte(plantree.Outline(res.Tree))
	default:
		data, err = plantree.Encode(res.Tree)
		if err != nil {
			return err
		}

		data = append(data, '\n')
	}

	if o.out == "" {
		if _, err := cmd.OutOrStdout().Write(data); err != nil {
			return err
		}
	} else if err := os.WriteFile(o.out, data, 0o644); err != nil {
		return fmt.Errorf("failed to write plan %s: %w", o.out, err)
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "%d samplers, %d extractors, %d assertions, %d loops, %d warnings, %d errors\n",
		res.SamplersCreated, res.ExtractorsCreated, res.AssertionsCreated, res.LoopsCreated,
		len(res.Diagnostics.Warnings), len(res.Diagnostics.Errors))

	if o.strict && res.HasErrors() {
		return errHasErrors
	}

	return nil
}

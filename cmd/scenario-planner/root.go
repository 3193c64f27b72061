package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"scenario-planner/internal/config"
	"scenario-planner/internal/contract"
	"scenario-planner/internal/diagnostic"
	"scenario-planner/internal/loader"
	"scenario-planner/internal/logger"
	"scenario-planner/internal/plan"
	"scenario-planner/internal/scenario"
)

// Version is the current release.
const Version = "0.3.0"

// errHasErrors is returned when a run recorded recoverable errors and the
// caller asked for them to fail the command.
var errHasErrors = errors.New("scenario has errors")

// app holds flags shared by every command.
type app struct {
	cfgFile      string
	contractPath string
	debug        bool

	cfg    config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "scenario-planner",
		Short: "Compile API test scenarios into load-test plans",
		Long: `scenario-planner reads an ordered list of HTTP steps and an OpenAPI
contract, resolves every endpoint and capture, and emits a plan tree that a
load-test tool serializer can turn into its native format.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "configuration file")
	root.PersistentFlags().StringVarP(&a.contractPath, "contract", "c", "", "OpenAPI 3 or Swagger 2 contract")
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logging")
	root.CompletionOptions.DisableDefaultCmd = true

	root.AddCommand(
		newCompileCmd(a),
		newCheckCmd(a),
		newSuggestCmd(a),
		newVersionCmd(),
	)

	return root
}

func (a *app) init() error {
	a.cfg = config.Default()

	if a.cfgFile != "" {
		cfg, err := config.Load(a.cfgFile)
		if err != nil {
			return err
		}

		a.cfg = cfg
	}

	if a.debug {
		a.cfg.Log.Level = "debug"
	}

	l, err := logger.New(a.cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	a.logger = l

	return nil
}

// load reads the contract and the scenario and builds the compiler.
func (a *app) load(scenarioPath string, opts ...plan.Option) (*plan.Compiler, *scenario.Scenario, error) {
	if a.contractPath == "" {
		return nil, nil, errors.New("--contract is required")
	}

	c, err := loader.LoadContract(a.contractPath)
	if err != nil {
		return nil, nil, err
	}

	sc, err := loader.LoadScenario(scenarioPath)
	if err != nil {
		return nil, nil, err
	}

	a.logger.Debug("loaded inputs",
		zap.String("contract", c.Title),
		zap.Int("operations", len(c.Operations)),
		zap.String("scenario", sc.Name),
		zap.Int("steps", len(sc.Steps)),
	)

	idx := contract.NewIndex(c, a.cfg.IndexOptions()...)

	opts = append([]plan.Option{
		plan.WithConfig(a.cfg.CompilerConfig()),
		plan.WithLogger(a.logger),
	}, opts...)

	return plan.NewCompiler(idx, opts...), sc, nil
}

func printDiagnostics(w io.Writer, diags diagnostic.Diagnostics) {
	for _, d := range diags.Errors {
		fmt.Fprintf(w, "error: %s\n", d)
	}

	for _, d := range diags.Warnings {
		fmt.Fprintf(w, "warning: %s\n", d)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "scenario-planner %s\n", Version)
		},
	}
}

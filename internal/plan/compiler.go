package plan

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"scenario-planner/internal/contract"
	"scenario-planner/internal/correlation"
	"scenario-planner/internal/diagnostic"
	"scenario-planner/internal/scenario"
)

// Config holds configuration for the compile process.
type Config struct {
	// Correlation tunes capture resolution warnings.
	Correlation correlation.Config
	// ExtractorDefault is stored by extractors whose path does not match.
	ExtractorDefault string
	// BaseURL is used when neither the scenario nor the contract name a
	// server.
	BaseURL string
}

// DefaultConfig returns the default compile configuration.
func DefaultConfig() Config {
	return Config{
		Correlation:      correlation.DefaultConfig(),
		ExtractorDefault: DefaultExtractorDefault,
		BaseURL:          DefaultBaseURL,
	}
}

// Observer is told about every finished compile.
type Observer interface {
	ObserveCompile(res *CompileResult, err error, elapsed time.Duration)
}

// Compiler runs the compile pipeline against one contract. Each Compile
// call builds its own field indexes, ledger and tree.
type Compiler struct {
	index    *contract.Index
	config   Config
	logger   *zap.Logger
	observer Observer
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithConfig replaces DefaultConfig.
func WithConfig(cfg Config) Option {
	return func(c *Compiler) {
		c.config = cfg
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Compiler) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithObserver registers an observer, typically metrics.
func WithObserver(o Observer) Option {
	return func(c *Compiler) {
		c.observer = o
	}
}

// NewCompiler creates a compiler over index.
func NewCompiler(index *contract.Index, opts ...Option) *Compiler {
	c := &Compiler{
		index:  index,
		config: DefaultConfig(),
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Analyze runs validation and correlation only.
func (c *Compiler) Analyze(sc *scenario.Scenario) (*correlation.Result, diagnostic.Diagnostics) {
	validation := scenario.Validate(sc)

	analyzer := correlation.NewAnalyzer(c.index,
		correlation.WithConfig(c.config.Correlation),
		correlation.WithLogger(c.logger),
	)

	return analyzer.Analyze(sc), validation
}

// Compile turns sc into a plan. A non-nil error means a step's endpoint
// could not be resolved; the returned result is then partial and its
// Success is false.
func (c *Compiler) Compile(sc *scenario.Scenario) (*CompileResult, error) {
	if sc == nil {
		return nil, errors.New("scenario is required")
	}

	start := time.Now()

	corr, validation := c.Analyze(sc)

	res, err := NewAssembler(c.index, c.config, c.logger).Assemble(sc, corr)

	diags := validation
	diags.Merge(corr.Diagnostics)
	diags.Merge(res.Diagnostics)
	res.Diagnostics = diags

	if res.Tree != nil {
		res.Tree.AssignIDs(sc.Name + "@" + sc.Version)

		if verr := res.Tree.Validate(); verr != nil && err == nil {
			err = verr
			res.Success = false
		}
	}

	c.log(sc, res, err)

	if c.observer != nil {
		c.observer.ObserveCompile(res, err, time.Since(start))
	}

	return res, err
}

func (c *Compiler) log(sc *scenario.Scenario, res *CompileResult, err error) {
	for _, d := range res.Diagnostics.Errors {
		c.logger.Warn("compile error", zap.String("code", d.Code), zap.String("location", d.Location),
			zap.String("message", d.Message))
	}

	for _, d := range res.Diagnostics.Warnings {
		c.logger.Warn("compile warning", zap.String("code", d.Code), zap.String("location", d.Location),
			zap.String("message", d.Message))
	}

	if err != nil {
		c.logger.Error("compile failed", zap.String("scenario", sc.Name), zap.Error(err))

		return
	}

	c.logger.Info("compiled scenario",
		zap.String("scenario", sc.Name),
		zap.Int("samplers", res.SamplersCreated),
		zap.Int("extractors", res.ExtractorsCreated),
		zap.Int("assertions", res.AssertionsCreated),
		zap.Int("loops", res.LoopsCreated),
		zap.Int("warnings", len(res.Diagnostics.Warnings)),
		zap.Int("errors", len(res.Diagnostics.Errors)),
	)
}

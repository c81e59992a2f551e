package reasoning

import (
	"context"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/m4xw311/thinkmode/analyzer"
	"github.com/m4xw311/thinkmode/config"
	"github.com/m4xw311/thinkmode/errors"
	"github.com/m4xw311/thinkmode/evaluator"
	"github.com/m4xw311/thinkmode/executor"
	"github.com/m4xw311/thinkmode/llm"
	"github.com/m4xw311/thinkmode/logging"
	"github.com/m4xw311/thinkmode/session"
	"github.com/m4xw311/thinkmode/task"
)

// settings is everything derived from a Config. It is immutable once
// built; Reconfigure swaps in a new one.
type settings struct {
	thresholds config.ThresholdConfig
	analyzer   analyzer.Analyzer
	executor   *executor.Executor
	workers    int
}

// System routes tasks to a reasoning mode, executes them and keeps run
// statistics. It is safe for concurrent use.
type System struct {
	backend llm.Backend
	logger  *logging.Logger

	analyzer    analyzer.Analyzer
	concurrency int

	current atomic.Pointer[settings]
	stats   *session.Recorder
}

// Option configures a System.
type Option func(*System)

// WithAnalyzer replaces the keyword analyzer built from the configuration.
func WithAnalyzer(a analyzer.Analyzer) Option {
	return func(s *System) {
		s.analyzer = a
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *logging.Logger) Option {
	return func(s *System) {
		s.logger = l
	}
}

// WithConcurrency overrides the configured batch concurrency limit.
func WithConcurrency(n int) Option {
	return func(s *System) {
		s.concurrency = n
	}
}

// New creates a System. A nil cfg means config.Default(). Invalid
// thresholds, keyword sets or mode profiles fail with a configuration error.
func New(cfg *config.Config, backend llm.Backend, opts ...Option) (*System, error) {
	if backend == nil {
		return nil, errors.Configuration("no backend configured")
	}
	s := &System{
		backend: backend,
		logger:  logging.NopLogger(),
		stats:   session.NewRecorder(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.WithComponent("reasoning")

	st, err := s.build(cfg)
	if err != nil {
		return nil, err
	}
	s.current.Store(st)
	return s, nil
}

// Reconfigure validates cfg and makes it the active configuration. Tasks
// already running, including whole batches, keep the settings they started
// with.
func (s *System) Reconfigure(cfg *config.Config) error {
	st, err := s.build(cfg)
	if err != nil {
		return err
	}
	s.current.Store(st)
	s.logger.Info("configuration replaced")
	return nil
}

func (s *System) build(cfg *config.Config) (*settings, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	thresholds, err := cfg.ThresholdConfig()
	if err != nil {
		return nil, err
	}
	warnings, err := thresholds.Validate()
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		s.logger.Warn("threshold configuration", "warning", w)
	}

	a := s.analyzer
	if a == nil {
		keywords, err := cfg.KeywordOverrides()
		if err != nil {
			return nil, err
		}
		var opts []analyzer.Option
		for name, words := range keywords {
			c, err := task.ParseCategory(name)
			if err != nil {
				return nil, errors.Configuration("keywords: %v", err)
			}
			opts = append(opts, analyzer.WithKeywords(c, words...))
		}
		a = analyzer.New(opts...)
	}

	profiles, err := cfg.ModeProfiles()
	if err != nil {
		return nil, err
	}

	workers := s.concurrency
	if workers < 1 {
		workers = cfg.Workers()
	}

	return &settings{
		thresholds: thresholds.Clone(),
		analyzer:   a,
		executor:   executor.New(s.backend, profiles),
		workers:    workers,
	}, nil
}

// TaskOption adjusts how a single task is processed.
type TaskOption func(*taskOptions)

type taskOptions struct {
	force      task.Mode
	onDecision func(task.Features, task.Decision)
}

// ForceMode runs the task in mode m regardless of its score. The decision
// has confidence 1.0 and rationale "forced".
func ForceMode(m task.Mode) TaskOption {
	return func(o *taskOptions) {
		o.force = m
	}
}

// OnDecision registers a callback invoked once the mode is chosen and
// before the backend is called.
func OnDecision(fn func(task.Features, task.Decision)) TaskOption {
	return func(o *taskOptions) {
		o.onDecision = fn
	}
}

func collect(opts []TaskOption) taskOptions {
	var o taskOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Decide analyses text and selects a mode without calling the backend or
// touching statistics.
func (s *System) Decide(text string, opts ...TaskOption) (task.Features, task.Decision) {
	return decide(s.current.Load(), text, collect(opts))
}

func decide(st *settings, text string, o taskOptions) (task.Features, task.Decision) {
	features := st.analyzer.Analyze(text)
	if o.force != "" {
		return features, evaluator.Forced(o.force)
	}
	return features, evaluator.Select(features, st.thresholds)
}

// ProcessTask analyses, routes and executes one task. An empty id is
// replaced by a generated "task_<uuid>". On failure no statistics are
// recorded and the error is an execution error.
func (s *System) ProcessTask(ctx context.Context, text, id string, opts ...TaskOption) (task.Result, error) {
	if id == "" {
		id = "task_" + uuid.NewString()
	}
	return s.process(ctx, s.current.Load(), text, id, collect(opts))
}

func (s *System) process(ctx context.Context, st *settings, text, id string, o taskOptions) (task.Result, error) {
	log := s.logger.WithTask(id)

	features, decision := decide(st, text, o)
	log.Info("mode selected",
		"category", features.Category,
		"complexity", features.ComplexityScore,
		"mode", decision.Mode,
		"confidence", decision.Confidence,
		"rationale", decision.Rationale)
	if o.onDecision != nil {
		o.onDecision(features, decision)
	}

	resp, elapsed, err := st.executor.Execute(ctx, text, decision)
	if err != nil {
		log.Error("task failed", "mode", decision.Mode, "error", err)
		return task.Result{}, errors.Wrapf(err, "task %s", id)
	}

	res := task.Result{
		TaskID:               id,
		Decision:             decision,
		Response:             resp,
		ExecutionTimeSeconds: elapsed.Seconds(),
		Features:             features,
	}
	s.stats.Record(res)
	log.Debug("task completed", "seconds", res.ExecutionTimeSeconds)
	return res, nil
}

// Statistics returns a snapshot of the run statistics.
func (s *System) Statistics() session.Statistics {
	return s.stats.Snapshot()
}

// Reset clears the run statistics.
func (s *System) Reset() {
	s.stats.Reset()
}

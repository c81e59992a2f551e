package main

import (
	"github.com/m4xw311/thinkmode/config"
	"github.com/m4xw311/thinkmode/llm"
	"github.com/m4xw311/thinkmode/logging"
	"github.com/m4xw311/thinkmode/reasoning"
	"github.com/spf13/cobra"
)

// newBackend is replaced in tests.
var newBackend = llm.New

type rootOptions struct {
	configPath string
	logLevel   string
	provider   string
	model      string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "thinkmode",
		Short: "Route tasks to a reasoning mode before sending them to an LLM",
		Long: `thinkmode scores each task's complexity and picks one of three reasoning
modes (non_thinking, simplified, full_thinking) before calling the configured
LLM backend. Configuration is read from ~/.thinkmode/config.yaml and
./.thinkmode/config.yaml, with --config applied last.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "path to an additional config file")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: DEBUG, INFO, WARN or ERROR")
	flags.StringVar(&opts.provider, "llm", "", "LLM provider: simulated, anthropic, openai, deepseek, gemini or bedrock")
	flags.StringVar(&opts.model, "model", "", "model name passed to the provider")

	cmd.AddCommand(
		newRunCmd(opts),
		newAnalyzeCmd(opts),
		newBatchCmd(opts),
		newReplCmd(opts),
		newMCPCmd(opts),
	)
	return cmd
}

// loadConfig reads the layered configuration and applies flag overrides.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	if o.provider != "" {
		cfg.LLMClient = o.provider
	}
	if o.model != "" {
		cfg.Model = o.model
	}
	return cfg, nil
}

// system builds the reasoning system for a command. The returned cleanup
// closes the log file.
func (o *rootOptions) system(cmd *cobra.Command, extra ...reasoning.Option) (*reasoning.System, func(), error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, nil, err
	}

	var logger *logging.Logger
	if cfg.LogFile != "" {
		logger, err = logging.NewLogger(cfg.LogFile, cfg.LogLevel)
		if err != nil {
			return nil, nil, err
		}
	} else {
		logger = logging.New(cmd.ErrOrStderr(), cfg.LogLevel)
	}
	cleanup := func() { _ = logger.Close() }

	backend, err := newBackend(cmd.Context(), cfg, logger)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	sys, err := reasoning.New(cfg, backend, append([]reasoning.Option{reasoning.WithLogger(logger)}, extra...)...)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return sys, cleanup, nil
}

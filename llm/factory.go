package llm

import (
	"context"
	"strings"

	"github.com/m4xw311/thinkmode/config"
	"github.com/m4xw311/thinkmode/errors"
	"github.com/m4xw311/thinkmode/logging"
)

// New builds the backend named by cfg.LLMClient. Providers that need an API
// key fall back to the simulated backend, with a warning, when the key is
// not set.
func New(ctx context.Context, cfg *config.Config, logger *logging.Logger) (Backend, error) {
	if logger == nil {
		logger = logging.NopLogger()
	}
	provider := strings.ToLower(strings.TrimSpace(cfg.LLMClient))
	if provider == "" || provider == "mock" {
		provider = ProviderSimulated
	}
	logger = logger.WithComponent("llm").With("provider", provider)

	var cred Credential
	if _, ok := credentialEnv[provider]; ok {
		cred = CredentialFromEnv(provider)
		if cred.Empty() {
			logger.Warn("credential not set, using simulated backend", "env", cred.Env)
			return NewSimulatedBackend(), nil
		}
		logger.Debug("credential loaded", "env", cred.Env, "key", cred.Masked())
	}

	var (
		backend Backend
		err     error
	)
	switch provider {
	case ProviderSimulated:
		backend = NewSimulatedBackend()
	case ProviderAnthropic:
		backend, err = NewAnthropicBackend(cred, cfg.Model, cfg.BaseURL)
	case ProviderOpenAI:
		backend, err = NewOpenAIBackend(cred, cfg.Model, cfg.BaseURL)
	case ProviderDeepSeek:
		backend, err = NewDeepSeekBackend(cred, cfg.Model, cfg.BaseURL)
	case ProviderGemini:
		backend, err = NewGeminiBackend(ctx, cred, cfg.Model)
	case ProviderBedrock:
		backend, err = NewBedrockBackend(ctx, cfg.Model)
	default:
		return nil, errors.Configuration("unknown llm %q", cfg.LLMClient)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "error initializing %s backend", provider)
	}

	logger.Info("backend ready", "model", cfg.Model)
	return backend, nil
}

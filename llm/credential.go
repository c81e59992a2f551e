package llm

import (
	"os"
	"strings"
)

// Provider names accepted in the `llm` configuration key.
const (
	ProviderSimulated = "simulated"
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
	ProviderDeepSeek  = "deepseek"
	ProviderGemini    = "gemini"
	ProviderBedrock   = "bedrock"
)

var credentialEnv = map[string]string{
	ProviderAnthropic: "ANTHROPIC_API_KEY",
	ProviderOpenAI:    "OPENAI_API_KEY",
	ProviderDeepSeek:  "DEEPSEEK_API_KEY",
	ProviderGemini:    "GEMINI_API_KEY",
}

// Credential is an API key read from the environment. Its String form is
// masked so it can be logged.
type Credential struct {
	Provider string
	Env      string
	value    string
}

// CredentialFromEnv reads the API key for provider from its environment
// variable. Providers authenticated some other way (bedrock, simulated)
// yield a Credential with an empty Env.
func CredentialFromEnv(provider string) Credential {
	env := credentialEnv[provider]
	c := Credential{Provider: provider, Env: env}
	if env != "" {
		c.value = strings.TrimSpace(os.Getenv(env))
	}
	return c
}

// Empty reports whether no key was found.
func (c Credential) Empty() bool { return c.value == "" }

// Secret returns the raw key for handing to a provider SDK.
func (c Credential) Secret() string { return c.value }

// Masked shows at most the first four characters of the key.
func (c Credential) Masked() string {
	switch {
	case c.value == "":
		return "<unset>"
	case len(c.value) <= 8:
		return "****"
	default:
		return c.value[:4] + "****"
	}
}

func (c Credential) String() string   { return c.Masked() }
func (c Credential) GoString() string { return c.Masked() }

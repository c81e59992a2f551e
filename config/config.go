package config

import (
	"os"
	"path/filepath"

	"github.com/m4xw311/thinkmode/errors"
	"gopkg.in/yaml.v3"
)

// ModeProfile carries the generation parameters used for one reasoning mode.
// Zero fields fall back to the built-in profile for the mode.
type ModeProfile struct {
	Model       string   `yaml:"model"`
	MaxTokens   int64    `yaml:"max_tokens"`
	Temperature *float64 `yaml:"temperature"`
}

func (p ModeProfile) over(base ModeProfile) ModeProfile {
	if p.Model == "" {
		p.Model = base.Model
	}
	if p.MaxTokens == 0 {
		p.MaxTokens = base.MaxTokens
	}
	if p.Temperature == nil {
		p.Temperature = base.Temperature
	}
	return p
}

func temperature(v float64) *float64 { return &v }

type Config struct {
	LLMClient string `yaml:"llm"`
	Model     string `yaml:"model"`
	BaseURL   string `yaml:"base_url"`

	// Thresholds and CategoryThresholds are kept raw so that missing and
	// non-numeric values can be reported as configuration errors.
	Thresholds         map[string]any            `yaml:"thresholds"`
	CategoryThresholds map[string]map[string]any `yaml:"category_thresholds"`

	Keywords    map[string][]string    `yaml:"keywords"`
	Modes       map[string]ModeProfile `yaml:"modes"`
	Concurrency int                    `yaml:"concurrency"`
	LogLevel    string                 `yaml:"log_level"`
	LogFile     string                 `yaml:"log_file"`
}

// DefaultConcurrency bounds concurrent backend calls in a batch.
const DefaultConcurrency = 4

// Default returns the built-in configuration: the simulated backend,
// default thresholds and the default mode profiles.
func Default() *Config {
	return &Config{
		LLMClient: "simulated",
		Modes: map[string]ModeProfile{
			"non_thinking":  {MaxTokens: 1024, Temperature: temperature(0.3)},
			"simplified":    {MaxTokens: 1536, Temperature: temperature(0.5)},
			"full_thinking": {MaxTokens: 2048, Temperature: temperature(0.7)},
		},
		Concurrency: DefaultConcurrency,
		LogLevel:    "INFO",
	}
}

// LoadConfig loads configuration from the user's home directory and the current
// working directory, with the latter taking precedence. A non-empty
// explicitPath is applied last.
func LoadConfig(explicitPath string) (*Config, error) {
	cfg := Default()

	// Load user-level config first
	home, err := os.UserHomeDir()
	if err == nil {
		userConfigPath := filepath.Join(home, ".thinkmode", "config.yaml")
		if _, err := os.Stat(userConfigPath); err == nil {
			if err := loadFromFile(userConfigPath, cfg); err != nil {
				return nil, errors.Wrapf(err, "error loading user config")
			}
		}
	}

	// Load project-level config, overriding user-level
	wd, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrapf(err, "could not get working directory")
	}
	projectConfigPath := filepath.Join(wd, ".thinkmode", "config.yaml")
	if _, err := os.Stat(projectConfigPath); err == nil {
		if err := loadFromFile(projectConfigPath, cfg); err != nil {
			return nil, errors.Wrapf(err, "error loading project config")
		}
	}

	if explicitPath != "" {
		if err := loadFromFile(explicitPath, cfg); err != nil {
			return nil, errors.Wrapf(err, "error loading config %s", explicitPath)
		}
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return Parse(data, cfg)
}

// Parse decodes YAML over cfg. Scalars present in data replace those in
// cfg; maps are merged key by key, so a project file may override a single
// threshold set by the user file.
func Parse(data []byte, cfg *Config) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return errors.Configuration("invalid YAML: %v", err)
	}
	return nil
}

// ThresholdConfig resolves the raw threshold sections into a validated
// ThresholdConfig. With no thresholds section the defaults apply; a present
// section must name all four thresholds.
func (c *Config) ThresholdConfig() (ThresholdConfig, error) {
	tc := DefaultThresholdConfig()
	if len(c.Thresholds) > 0 {
		t, err := ParseThresholds(c.Thresholds)
		if err != nil {
			return ThresholdConfig{}, err
		}
		tc.Default = t
	}
	for name, raw := range c.CategoryThresholds {
		if !knownCategory(name) {
			return ThresholdConfig{}, errors.Configuration("category_thresholds: unknown category %q", name)
		}
		o, err := parseOverride(raw)
		if err != nil {
			return ThresholdConfig{}, errors.Wrapf(err, "category_thresholds.%s", name)
		}
		tc.Overrides[name] = tc.Overrides[name].merge(o)
	}
	return tc, nil
}

// KeywordOverrides returns the keyword sets configured per category.
func (c *Config) KeywordOverrides() (map[string][]string, error) {
	for name := range c.Keywords {
		if !knownCategory(name) || name == "other" {
			return nil, errors.Configuration("keywords: category %q cannot carry keywords", name)
		}
	}
	return c.Keywords, nil
}

// ModeProfiles returns the generation profile for every mode, falling back
// to the built-in defaults for modes absent from the configuration.
func (c *Config) ModeProfiles() (map[string]ModeProfile, error) {
	profiles := Default().Modes
	for name, p := range c.Modes {
		base, ok := profiles[name]
		if !ok {
			return nil, errors.Configuration("modes: unknown reasoning mode %q", name)
		}
		if p.MaxTokens < 0 {
			return nil, errors.Configuration("modes.%s: max_tokens must not be negative", name)
		}
		profiles[name] = p.over(base)
	}
	return profiles, nil
}

// Workers returns the batch concurrency limit, at least 1.
func (c *Config) Workers() int {
	if c.Concurrency < 1 {
		return DefaultConcurrency
	}
	return c.Concurrency
}

func knownCategory(name string) bool {
	switch name {
	case "programming", "math_reasoning", "simple_qa", "other":
		return true
	}
	return false
}

// Package config loads covergen's configuration from a JSON file with
// environment variable overrides.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"github.com/covergen/covergen/pkg/llm"
)

const (
	// DefaultRequestTimeoutSeconds bounds the job posting fetch.
	DefaultRequestTimeoutSeconds = 10
	// DefaultMaxTokens bounds generated letter length.
	DefaultMaxTokens = 3000
	// DefaultTemperature is the initial sampling temperature.
	DefaultTemperature = 0.7
	// DefaultRetries is the number of generation retries.
	DefaultRetries = 2
)

// ErrMissingAPIKey indicates no API key was found in the config file or
// the environment.
var ErrMissingAPIKey = errors.New("api_key is required")

// Config represents the application configuration.
type Config struct {
	APIKey                string  `json:"api_key"`
	Model                 string  `json:"model"`
	Provider              string  `json:"provider,omitempty"`
	TemplatePath          string  `json:"template_path"`
	OutputDir             string  `json:"output_dir"`
	RequestTimeoutSeconds int     `json:"request_timeout_seconds,omitempty"`
	UserAgent             string  `json:"user_agent,omitempty"`
	MaxTokens             int     `json:"max_tokens,omitempty"`
	Temperature           float64 `json:"temperature,omitempty"`
	Retries               int     `json:"retries,omitempty"`
}

// DefaultPath returns the per-user config file location.
func DefaultPath() (path string, err error) {
	var homeDir string
	homeDir, err = os.UserHomeDir()
	if err != nil {
		err = errors.Wrap(err, "failed to get user home directory")
		return path, err
	}
	path = filepath.Join(homeDir, ".covergen", "config.json")
	return path, err
}

// Load reads configuration from file with environment variable overrides.
// A .env file in the working directory is loaded first if present.
func Load(configPath string) (cfg Config, err error) {
	// Best effort; absence of a .env file is the normal case.
	_ = godotenv.Load()

	path := configPath
	if path == "" {
		path, err = DefaultPath()
		if err != nil {
			return cfg, err
		}
	}

	var data []byte
	data, err = os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			err = errors.Errorf("config file not found: %s (run 'covergen setup' to create)", path)
			return cfg, err
		}
		err = errors.Wrapf(err, "failed to read config file: %s", path)
		return cfg, err
	}

	err = json.Unmarshal(data, &cfg)
	if err != nil {
		err = errors.Wrapf(err, "failed to parse config file: %s", path)
		return cfg, err
	}

	cfg.applyEnvOverrides()

	err = cfg.Validate()
	if err != nil {
		err = errors.Wrap(err, "config validation failed")
		return cfg, err
	}

	return cfg, err
}

// applyEnvOverrides lets environment variables win over file values.
// LLM_API_KEY is the generic key; provider-specific names are accepted
// in order of specificity.
func (c *Config) applyEnvOverrides() {
	for _, name := range []string{"LLM_API_KEY", "OPENAI_API_KEY", "GEMINI_API_KEY", "ANTHROPIC_API_KEY"} {
		if key := os.Getenv(name); key != "" {
			c.APIKey = key
			break
		}
	}

	if model := os.Getenv("LLM_MODEL"); model != "" {
		c.Model = model
	}

	if provider := os.Getenv("LLM_PROVIDER"); provider != "" {
		c.Provider = provider
	}
}

// Validate checks required fields and fills in defaults.
func (c *Config) Validate() (err error) {
	if c.APIKey == "" {
		err = errors.Wrap(ErrMissingAPIKey, "set api_key in the config file or the LLM_API_KEY env var")
		return err
	}

	if c.Model == "" {
		err = errors.New("model is required (set in config or LLM_MODEL env var)")
		return err
	}

	if c.Provider != "" {
		switch llm.ProviderKind(c.Provider) {
		case llm.KindOpenAI, llm.KindGemini, llm.KindAnthropic:
		default:
			err = errors.Errorf("unknown provider %q (expected openai, gemini, or anthropic)", c.Provider)
			return err
		}
	}

	if c.OutputDir == "" {
		c.OutputDir = "./cover_letters"
	}

	if c.RequestTimeoutSeconds <= 0 {
		c.RequestTimeoutSeconds = DefaultRequestTimeoutSeconds
	}

	if c.MaxTokens <= 0 {
		c.MaxTokens = DefaultMaxTokens
	}

	if c.Temperature <= 0 {
		c.Temperature = DefaultTemperature
	}

	if c.Retries <= 0 {
		c.Retries = DefaultRetries
	}

	return err
}

// RequestTimeout returns the fetch timeout as a duration.
func (c *Config) RequestTimeout() (timeout time.Duration) {
	timeout = time.Duration(c.RequestTimeoutSeconds) * time.Second
	return timeout
}

// ProviderKind resolves the configured provider, inferring from the model
// name when not set explicitly.
func (c *Config) ProviderKind() (kind llm.ProviderKind) {
	if c.Provider != "" {
		kind = llm.ProviderKind(c.Provider)
		return kind
	}
	kind = llm.DetectKind(c.Model)
	return kind
}

// InitConfig creates a default configuration file for the user to edit.
func InitConfig(configPath string) (err error) {
	path := configPath
	if path == "" {
		path, err = DefaultPath()
		if err != nil {
			return err
		}
	}

	dir := filepath.Dir(path)
	err = os.MkdirAll(dir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create config directory: %s", dir)
		return err
	}

	_, err = os.Stat(path)
	if err == nil {
		err = errors.Errorf("config file already exists: %s", path)
		return err
	}

	var homeDir string
	homeDir, err = os.UserHomeDir()
	if err != nil {
		err = errors.Wrap(err, "failed to get user home directory")
		return err
	}

	defaultConfig := Config{
		APIKey:                "your-api-key",
		Model:                 "gpt-4o-mini",
		TemplatePath:          filepath.Join(homeDir, ".covergen", "template.txt"),
		OutputDir:             filepath.Join(homeDir, "Documents", "CoverLetters"),
		RequestTimeoutSeconds: DefaultRequestTimeoutSeconds,
		MaxTokens:             DefaultMaxTokens,
		Temperature:           DefaultTemperature,
		Retries:               DefaultRetries,
	}

	var data []byte
	data, err = json.MarshalIndent(defaultConfig, "", "  ")
	if err != nil {
		err = errors.Wrap(err, "failed to marshal default config")
		return err
	}

	err = os.WriteFile(path, data, 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write config file: %s", path)
		return err
	}

	return err
}

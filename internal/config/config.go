package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/dotenv"
	tomlparser "github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/mitchellh/go-homedir"
	gotoml "github.com/pelletier/go-toml/v2"

	"github.com/ziadkadry99/tailor4job/internal/llm"
	"github.com/ziadkadry99/tailor4job/internal/prompt"
	"github.com/ziadkadry99/tailor4job/internal/render"
)

const envPrefix = "TAILOR4JOB_"

// ErrMalformedConfig is returned when the configuration file cannot be parsed.
var ErrMalformedConfig = errors.New("could not parse TOML config file")

// Load reads configuration from the given TOML file, then overlays
// environment variable overrides (TAILOR4JOB_*). A missing file yields the
// defaults; a file that is not valid TOML is an error.
func Load(path string) (*Config, error) {
	path, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("expanding config path: %w", err)
	}

	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), tomlparser.Parser()); err != nil {
			return nil, fmt.Errorf("%w at %s: %w", ErrMalformedConfig, path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Overlay environment variables: TAILOR4JOB_MODEL -> model, etc.
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("%w at %s: %w", ErrMalformedConfig, path, err)
	}

	return cfg, nil
}

// Save writes the configuration to the given TOML file path.
func (c *Config) Save(path string) error {
	path, err := homedir.Expand(path)
	if err != nil {
		return fmt.Errorf("expanding config path: %w", err)
	}
	data, err := gotoml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

var validLogFormats = map[string]bool{
	"console": true,
	"json":    true,
}

// Validate checks that the configuration contains valid values. Model,
// provider and input files are checked once flags have been merged in.
func (c *Config) Validate() error {
	if c.AnalysisMode != "" {
		if _, err := prompt.ParseMode(c.AnalysisMode); err != nil {
			return err
		}
	}

	switch c.Render.PDFEngine {
	case "", render.EngineText, render.EngineChrome:
	default:
		return fmt.Errorf("invalid render.pdf_engine %q: must be one of %s, %s", c.Render.PDFEngine, render.EngineText, render.EngineChrome)
	}

	if c.Log.Format != "" && !validLogFormats[c.Log.Format] {
		return fmt.Errorf("invalid log.format %q: must be one of console, json", c.Log.Format)
	}

	if c.RateLimitRPM < 0 {
		return fmt.Errorf("rate_limit_rpm must be non-negative")
	}

	return nil
}

// BaseURLs returns the configured endpoint overrides keyed by provider name.
func (c *Config) BaseURLs() map[string]string {
	urls := make(map[string]string)
	if c.Providers.Groq.BaseURL != "" {
		urls[llm.ProviderGroq] = c.Providers.Groq.BaseURL
	}
	if c.Providers.OpenRouter.BaseURL != "" {
		urls[llm.ProviderOpenRouter] = c.Providers.OpenRouter.BaseURL
	}
	return urls
}

// APIKeyEnvVar returns the conventional environment variable name for
// the API key of the given provider.
func APIKeyEnvVar(provider string) string {
	switch provider {
	case llm.ProviderGroq:
		return "GROQ_API_KEY"
	case llm.ProviderOpenRouter:
		return "OPENROUTER_API_KEY"
	default:
		return ""
	}
}

// LoadCredentials resolves every supported provider's API key once. The
// process environment wins over the dotenv file; a missing dotenv file is
// not an error.
func LoadCredentials(envFile string) (llm.Credentials, error) {
	k := koanf.New(".")
	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			if err := k.Load(file.Provider(envFile), dotenv.Parser()); err != nil {
				return nil, fmt.Errorf("reading %s: %w", envFile, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing %s: %w", envFile, err)
		}
	}

	creds := make(llm.Credentials)
	for _, name := range llm.Supported() {
		key := APIKeyEnvVar(name)
		if v := os.Getenv(key); v != "" {
			creds[name] = v
			continue
		}
		if v := k.String(key); v != "" {
			creds[name] = v
		}
	}
	return creds, nil
}

// SplitList splits a comma-separated string and trims whitespace, dropping
// empty entries.
func SplitList(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}

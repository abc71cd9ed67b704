package config

import (
	"github.com/ziadkadry99/tailor4job/internal/llm"
	"github.com/ziadkadry99/tailor4job/internal/prompt"
	"github.com/ziadkadry99/tailor4job/internal/render"
)

// DefaultPath is the configuration file read when --config is not given.
const DefaultPath = "~/.tailor4job_config.toml"

// DefaultEnvFile is the dotenv file consulted for API keys.
const DefaultEnvFile = ".env"

// defaultModels suggests a model per provider in the init wizard.
var defaultModels = map[string]string{
	llm.ProviderGroq:       "llama3-8b-8192",
	llm.ProviderOpenRouter: "meta-llama/llama-3.1-8b-instruct:free",
}

// DefaultConfig returns a Config with sensible defaults. Model, provider and
// input files have no default and must come from the file or the flags.
func DefaultConfig() *Config {
	return &Config{
		AnalysisMode: string(prompt.ModeDetailed),
		Render: RenderConfig{
			PDFEngine: render.EngineText,
		},
		Log: LogConfig{
			Level:      "warn",
			Format:     "console",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// DefaultModel returns the suggested model for provider, or "" when none is known.
func DefaultModel(provider string) string {
	return defaultModels[provider]
}

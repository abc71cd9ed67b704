package config

// Config is the tailor4job configuration, corresponding to ~/.tailor4job_config.toml.
// Command-line flags take precedence over every field.
type Config struct {
	InputFiles []string `toml:"input_files,omitempty" koanf:"input_files"`
	// Model and Provider are comma-separated lists of equal length.
	Model        string `toml:"model,omitempty" koanf:"model"`
	Provider     string `toml:"provider,omitempty" koanf:"provider"`
	AnalysisMode string `toml:"analysis_mode,omitempty" koanf:"analysis_mode"`
	Output       string `toml:"output,omitempty" koanf:"output"`
	RateLimitRPM int    `toml:"rate_limit_rpm,omitempty" koanf:"rate_limit_rpm"`

	Providers ProvidersConfig `toml:"providers" koanf:"providers"`
	Render    RenderConfig    `toml:"render" koanf:"render"`
	Log       LogConfig       `toml:"log" koanf:"log"`
}

// ProvidersConfig holds per-provider endpoint overrides.
type ProvidersConfig struct {
	Groq       ProviderConfig `toml:"groq" koanf:"groq"`
	OpenRouter ProviderConfig `toml:"openrouter" koanf:"openrouter"`
}

// ProviderConfig holds settings for a single provider.
type ProviderConfig struct {
	BaseURL string `toml:"base_url,omitempty" koanf:"base_url"`
}

// RenderConfig controls how output files are produced.
type RenderConfig struct {
	PDFEngine  string `toml:"pdf_engine" koanf:"pdf_engine"`
	Markdown   bool   `toml:"markdown" koanf:"markdown"`
	ChromePath string `toml:"chrome_path,omitempty" koanf:"chrome_path"`
}

// LogConfig controls diagnostic logging. Logs go to stderr and, when File is
// set, to a rotated JSON log file.
type LogConfig struct {
	Level      string `toml:"level" koanf:"level"`
	Format     string `toml:"format" koanf:"format"`
	File       string `toml:"file,omitempty" koanf:"file"`
	MaxSizeMB  int    `toml:"max_size_mb,omitempty" koanf:"max_size_mb"`
	MaxBackups int    `toml:"max_backups,omitempty" koanf:"max_backups"`
}

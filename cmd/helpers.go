package cmd

import (
	"errors"
	"fmt"

	"github.com/ziadkadry99/tailor4job/internal/config"
	"github.com/ziadkadry99/tailor4job/internal/document"
	"github.com/ziadkadry99/tailor4job/internal/prompt"
	"github.com/ziadkadry99/tailor4job/internal/runner"
)

// inputs is the merged view of flags and config for one analysis.
type inputs struct {
	cfg   *config.Config
	files []string
	pairs []runner.Pair
	mode  prompt.Mode
}

// resolveInputs merges flags over the config file. Flags win; the config
// supplies whatever was not given on the command line.
func resolveInputs(opts *rootOptions, args []string) (*inputs, error) {
	cfg, err := loadConfig(opts.cfgFile)
	if err != nil {
		return nil, err
	}

	patterns := args
	if len(patterns) == 0 {
		patterns = cfg.InputFiles
	}
	if len(patterns) == 0 {
		return nil, errors.New("no input files provided. Use --help for usage information")
	}
	files, err := document.ExpandPaths(patterns)
	if err != nil {
		return nil, err
	}

	pairs, err := runner.ParsePairs(firstNonEmpty(opts.model, cfg.Model), firstNonEmpty(opts.provider, cfg.Provider))
	if err != nil {
		return nil, err
	}

	mode, err := prompt.ParseMode(firstNonEmpty(opts.analysisMode, cfg.AnalysisMode, string(prompt.ModeDetailed)))
	if err != nil {
		return nil, err
	}

	return &inputs{cfg: cfg, files: files, pairs: pairs, mode: mode}, nil
}

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w\nRun `tailor4job init` to recreate it", path, err)
	}
	return cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

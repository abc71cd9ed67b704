package config

import (
	"errors"
	"fmt"
	"io"

	"github.com/manifoldco/promptui"

	"github.com/ziadkadry99/tailor4job/internal/llm"
	"github.com/ziadkadry99/tailor4job/internal/prompt"
	"github.com/ziadkadry99/tailor4job/internal/render"
)

// RunWizard runs an interactive configuration wizard, saves the result to
// path and returns it. Values already in base are offered as defaults.
func RunWizard(path string, base *Config, out io.Writer) (*Config, error) {
	if base == nil {
		base = DefaultConfig()
	}
	cfg := *base

	fmt.Fprintln(out, "Welcome to Tailor4Job! Let's set up your defaults.")
	fmt.Fprintln(out)

	// 1. Provider selection.
	providers := llm.Supported()
	providerPrompt := promptui.Select{
		Label: "Select LLM provider",
		Items: providers,
	}
	_, provider, err := providerPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("provider selection: %w", err)
	}

	// 2. Model.
	defaultModel := DefaultModel(provider)
	if base.Provider == provider && base.Model != "" {
		defaultModel = base.Model
	}
	modelPrompt := promptui.Prompt{
		Label:    "Model",
		Default:  defaultModel,
		Validate: validateRequired,
	}
	model, err := modelPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("model: %w", err)
	}

	// 3. Analysis mode.
	modes := prompt.Modes()
	modeItems := make([]string, len(modes))
	for i, m := range modes {
		modeItems[i] = string(m)
	}
	modePrompt := promptui.Select{
		Label: "Select analysis mode",
		Items: modeItems,
	}
	_, mode, err := modePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("analysis mode selection: %w", err)
	}

	// 4. Output file.
	outputPrompt := promptui.Prompt{
		Label:    "Output file (.docx or .pdf, blank prints to the terminal)",
		Default:  base.Output,
		Validate: validateOutput,
	}
	output, err := outputPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("output file: %w", err)
	}

	cfg.Provider = provider
	cfg.Model = model
	cfg.AnalysisMode = mode
	cfg.Output = output

	if envVar := APIKeyEnvVar(provider); envVar != "" {
		fmt.Fprintf(out, "\nNote: set %s in your environment or .env file before running tailor4job.\n", envVar)
	}

	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintf(out, "\nConfiguration saved to %s\n", path)
	return &cfg, nil
}

func validateRequired(s string) error {
	if len(SplitList(s)) == 0 {
		return errors.New("a value is required")
	}
	return nil
}

func validateOutput(s string) error {
	if s == "" {
		return nil
	}
	_, err := render.DetectFormat(s)
	return err
}

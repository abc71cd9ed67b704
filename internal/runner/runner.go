// Package runner drives one analysis across every requested model/provider pair.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/ziadkadry99/tailor4job/internal/document"
	"github.com/ziadkadry99/tailor4job/internal/llm"
	"github.com/ziadkadry99/tailor4job/internal/progress"
	"github.com/ziadkadry99/tailor4job/internal/prompt"
	"github.com/ziadkadry99/tailor4job/internal/render"
)

// ProviderSource resolves a provider by name. *llm.Factory satisfies it.
type ProviderSource interface {
	Provider(name string) (llm.Provider, error)
}

// Renderer writes content to an output file. *render.Renderer satisfies it.
type Renderer interface {
	Render(ctx context.Context, content *string, outputPath string) error
}

// Config wires a Runner. Nil writers discard output; a nil Progress reports
// nothing.
type Config struct {
	Providers ProviderSource
	Renderer  Renderer
	Stdout    io.Writer
	Stderr    io.Writer
	Progress  progress.Reporter
	Logger    *zap.Logger
}

// Runner sends the combined documents to each pair in turn.
type Runner struct {
	providers ProviderSource
	renderer  Renderer
	stdout    io.Writer
	stderr    io.Writer
	progress  progress.Reporter
	logger    *zap.Logger
}

// New creates a Runner.
func New(cfg Config) *Runner {
	r := &Runner{
		providers: cfg.Providers,
		renderer:  cfg.Renderer,
		stdout:    cfg.Stdout,
		stderr:    cfg.Stderr,
		progress:  cfg.Progress,
		logger:    cfg.Logger,
	}
	if r.stdout == nil {
		r.stdout = io.Discard
	}
	if r.stderr == nil {
		r.stderr = io.Discard
	}
	if r.progress == nil {
		r.progress = progress.Nop{}
	}
	if r.logger == nil {
		r.logger = zap.NewNop()
	}
	r.logger = r.logger.Named("runner")
	return r
}

// Request describes one invocation.
type Request struct {
	Files []string
	Pairs []Pair
	Mode  prompt.Mode
	// Output is the base output file; empty prints results to stdout.
	Output     string
	TokenUsage bool
	// ContinueOnError keeps processing the remaining pairs after a failure.
	ContinueOnError bool
}

// PairResult is the outcome of one pair.
type PairResult struct {
	Pair       Pair
	OutputPath string
	Usage      *llm.TokenUsage
	Err        error
}

// Summary collects the outcome of every pair that was attempted.
type Summary struct {
	Results []PairResult
}

// Failed returns the results that ended in an error.
func (s *Summary) Failed() []PairResult {
	var failed []PairResult
	for _, r := range s.Results {
		if r.Err != nil {
			failed = append(failed, r)
		}
	}
	return failed
}

// Run processes every pair in order. All providers are resolved and the
// prompt is built before the first request, so configuration errors never
// cost an API call. By default the first failing pair aborts the run.
func (r *Runner) Run(ctx context.Context, req Request) (*Summary, error) {
	if len(req.Pairs) == 0 {
		return nil, errors.New("no model/provider pairs to run")
	}
	if req.Output != "" {
		if _, err := render.DetectFormat(req.Output); err != nil {
			return nil, err
		}
		if err := checkOutputPaths(req.Output, req.Pairs); err != nil {
			return nil, err
		}
	}

	providers := make([]llm.Provider, len(req.Pairs))
	for i, pair := range req.Pairs {
		p, err := r.providers.Provider(pair.Provider)
		if err != nil {
			return nil, err
		}
		providers[i] = p
	}

	promptText, err := BuildPrompt(req.Files, req.Mode)
	if err != nil {
		return nil, err
	}

	multi := len(req.Pairs) > 1
	summary := &Summary{}

	r.progress.Start(len(req.Pairs))
	defer r.progress.Finish()

	for i, pair := range req.Pairs {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		r.progress.Update(i, fmt.Sprintf("Processing files using %s model and %s provider", pair.Model, pair.Provider))

		result := r.runPair(ctx, providers[i], pair, promptText, req, multi)
		summary.Results = append(summary.Results, result)

		if result.Err != nil {
			r.logger.Debug("pair failed", zap.String("model", pair.Model), zap.String("provider", pair.Provider), zap.Error(result.Err))
			if !req.ContinueOnError {
				return summary, result.Err
			}
		}
	}

	failed := summary.Failed()
	if len(failed) == 0 {
		return summary, nil
	}

	fmt.Fprintf(r.stderr, "%d of %d model/provider pairs failed:\n", len(failed), len(summary.Results))
	errs := make([]error, 0, len(failed))
	for _, f := range failed {
		fmt.Fprintf(r.stderr, "  %s: %v\n", f.Pair, f.Err)
		errs = append(errs, fmt.Errorf("%s: %w", f.Pair, f.Err))
	}
	return summary, errors.Join(errs...)
}

func (r *Runner) runPair(ctx context.Context, provider llm.Provider, pair Pair, promptText string, req Request, multi bool) PairResult {
	result := PairResult{Pair: pair}

	res, err := llm.Complete(ctx, provider, pair.Model, promptText, req.TokenUsage)
	if err != nil {
		result.Err = err
		return result
	}
	result.Usage = res.Usage

	if req.Output != "" {
		path := OutputPath(req.Output, pair.Model, multi)
		if err := r.renderer.Render(ctx, &res.Content, path); err != nil {
			result.Err = err
			return result
		}
		result.OutputPath = path
		fmt.Fprintf(r.stderr, "Output saved to %s\n", path)
	} else {
		fmt.Fprintln(r.stdout, res.Content)
	}

	if req.TokenUsage && res.Usage != nil {
		r.printUsage(pair.Model, res.Usage)
	}
	return result
}

func (r *Runner) printUsage(model string, u *llm.TokenUsage) {
	fmt.Fprintf(r.stderr, "Prompt Tokens: %s\nCompletion Tokens: %s\nTotal Tokens: %s\n",
		llm.FormatCount(u.PromptTokens),
		llm.FormatCount(u.CompletionTokens),
		llm.FormatCount(u.TotalTokens),
	)
	if llm.HasPricing(model) && u.PromptTokens != nil && u.CompletionTokens != nil {
		fmt.Fprintf(r.stderr, "Estimated Cost: $%.6f\n", llm.EstimateCost(model, *u.PromptTokens, *u.CompletionTokens))
	}
}

// BuildPrompt reads every file in order and prepends the mode's instructions.
func BuildPrompt(files []string, mode prompt.Mode) (string, error) {
	text, err := document.ReadAll(files)
	if err != nil {
		return "", err
	}
	return prompt.Build(mode, text)
}

package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/tailor4job/internal/docx"
	"github.com/ziadkadry99/tailor4job/internal/llm"
	"github.com/ziadkadry99/tailor4job/internal/progress"
	"github.com/ziadkadry99/tailor4job/internal/prompt"
	"github.com/ziadkadry99/tailor4job/internal/render"
)

type fakeProvider struct {
	mu      sync.Mutex
	name    string
	content string
	usage   *llm.TokenUsage
	err     error
	prompts []string
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Complete(_ context.Context, req llm.CompletionRequest) (*llm.CompletionResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, req.Messages[0].Content)
	if f.err != nil {
		return nil, f.err
	}
	return &llm.CompletionResult{Content: f.content + " from " + req.Model, Usage: f.usage, Model: req.Model}, nil
}

func (f *fakeProvider) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

type fakeSource map[string]*fakeProvider

func (s fakeSource) Provider(name string) (llm.Provider, error) {
	p, ok := s[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", llm.ErrUnsupportedProvider, name)
	}
	return p, nil
}

func ip(v int) *int { return &v }

type harness struct {
	runner *Runner
	source fakeSource
	stdout bytes.Buffer
	stderr bytes.Buffer
	files  []string
	dir    string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()

	resume := filepath.Join(dir, "resume.docx")
	require.NoError(t, docx.Save(resume, "Jane Doe", "Go engineer"))
	job := filepath.Join(dir, "job.txt")
	require.NoError(t, os.WriteFile(job, []byte("Backend role"), 0o644))

	renderer, err := render.New(render.Options{}, nil)
	require.NoError(t, err)

	h := &harness{
		source: fakeSource{
			"groq":       {name: "groq", content: "groq analysis", usage: &llm.TokenUsage{PromptTokens: ip(10), CompletionTokens: ip(20), TotalTokens: ip(30)}},
			"openrouter": {name: "openrouter", content: "openrouter analysis"},
		},
		files: []string{resume, job},
		dir:   dir,
	}
	h.runner = New(Config{
		Providers: h.source,
		Renderer:  renderer,
		Stdout:    &h.stdout,
		Stderr:    &h.stderr,
		Progress:  progress.NewReporter(&h.stderr),
	})
	return h
}

func TestRunPrintsToStdout(t *testing.T) {
	h := newHarness(t)

	summary, err := h.runner.Run(context.Background(), Request{
		Files: h.files,
		Pairs: []Pair{{Model: "llama3-8b-8192", Provider: "groq"}},
		Mode:  prompt.ModeBasic,
	})
	require.NoError(t, err)
	require.Len(t, summary.Results, 1)

	assert.Equal(t, "groq analysis from llama3-8b-8192\n", h.stdout.String())
	assert.Contains(t, h.stderr.String(), "Processing files using llama3-8b-8192 model and groq provider")
	assert.NotContains(t, h.stderr.String(), "Prompt Tokens")

	sent := h.source["groq"].prompts[0]
	want, err := prompt.Build(prompt.ModeBasic, "Jane Doe\nGo engineer\nBackend role\n")
	require.NoError(t, err)
	assert.Equal(t, want, sent)
}

func TestRunTokenUsage(t *testing.T) {
	h := newHarness(t)

	_, err := h.runner.Run(context.Background(), Request{
		Files:      h.files,
		Pairs:      []Pair{{Model: "llama3-8b-8192", Provider: "groq"}, {Model: "some/model", Provider: "openrouter"}},
		Mode:       prompt.ModeDetailed,
		TokenUsage: true,
	})
	require.NoError(t, err)

	stderr := h.stderr.String()
	assert.Contains(t, stderr, "Prompt Tokens: 10\nCompletion Tokens: 20\nTotal Tokens: 30\n")
	assert.Contains(t, stderr, "Estimated Cost: $")
	// openrouter returned no usage object: nothing is printed for it.
	assert.Equal(t, 1, bytes.Count(h.stderr.Bytes(), []byte("Prompt Tokens")))
}

func TestRunSingleOutputKeepsName(t *testing.T) {
	h := newHarness(t)
	out := filepath.Join(h.dir, "out", "analysis.docx")

	summary, err := h.runner.Run(context.Background(), Request{
		Files:  h.files,
		Pairs:  []Pair{{Model: "llama3-8b-8192", Provider: "groq"}},
		Mode:   prompt.ModeDetailed,
		Output: out,
	})
	require.NoError(t, err)

	assert.Equal(t, out, summary.Results[0].OutputPath)
	paragraphs, err := docx.ReadParagraphs(out)
	require.NoError(t, err)
	assert.Equal(t, []string{"groq analysis from llama3-8b-8192"}, paragraphs)
	assert.Contains(t, h.stderr.String(), "Output saved to "+out)
	assert.Empty(t, h.stdout.String())
}

func TestRunMultipleOutputsArePrefixed(t *testing.T) {
	h := newHarness(t)
	out := filepath.Join(h.dir, "analysis.pdf")

	_, err := h.runner.Run(context.Background(), Request{
		Files:  h.files,
		Pairs:  []Pair{{Model: "llama3-8b-8192", Provider: "groq"}, {Model: "meta-llama/llama-3.1-8b-instruct:free", Provider: "openrouter"}},
		Mode:   prompt.ModeDetailed,
		Output: out,
	})
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(h.dir, "llama3-8b-8192_analysis.pdf"))
	assert.FileExists(t, filepath.Join(h.dir, "meta-llama_llama-3.1-8b-instruct_free_analysis.pdf"))
	assert.NoFileExists(t, out)
}

func TestRunResolvesAllProvidersFirst(t *testing.T) {
	h := newHarness(t)

	_, err := h.runner.Run(context.Background(), Request{
		Files: h.files,
		Pairs: []Pair{{Model: "llama3-8b-8192", Provider: "groq"}, {Model: "x", Provider: "unsupported-provider"}},
		Mode:  prompt.ModeDetailed,
	})
	require.ErrorIs(t, err, llm.ErrUnsupportedProvider)
	assert.Zero(t, h.source["groq"].calls())
}

func TestRunRejectsOutputFormatBeforeRequests(t *testing.T) {
	h := newHarness(t)

	_, err := h.runner.Run(context.Background(), Request{
		Files:  h.files,
		Pairs:  []Pair{{Model: "llama3-8b-8192", Provider: "groq"}},
		Mode:   prompt.ModeDetailed,
		Output: filepath.Join(h.dir, "analysis.txt"),
	})
	require.ErrorIs(t, err, render.ErrUnsupportedFormat)
	assert.Zero(t, h.source["groq"].calls())
}

func TestRunRejectsSharedOutputBeforeRequests(t *testing.T) {
	h := newHarness(t)

	_, err := h.runner.Run(context.Background(), Request{
		Files: h.files,
		Pairs: []Pair{
			{Model: "llama3-8b-8192", Provider: "groq"},
			{Model: "llama3-8b-8192", Provider: "openrouter"},
		},
		Mode:   prompt.ModeDetailed,
		Output: filepath.Join(h.dir, "analysis.docx"),
	})
	require.ErrorIs(t, err, ErrDuplicateOutput)
	assert.Contains(t, err.Error(), "llama3-8b-8192 (groq) and llama3-8b-8192 (openrouter)")
	assert.Zero(t, h.source["groq"].calls())
	assert.Zero(t, h.source["openrouter"].calls())
	assert.NoFileExists(t, filepath.Join(h.dir, "llama3-8b-8192_analysis.docx"))
}

func TestRunSameModelTwiceToStdout(t *testing.T) {
	h := newHarness(t)

	summary, err := h.runner.Run(context.Background(), Request{
		Files: h.files,
		Pairs: []Pair{
			{Model: "llama3-8b-8192", Provider: "groq"},
			{Model: "llama3-8b-8192", Provider: "openrouter"},
		},
		Mode: prompt.ModeBasic,
	})
	require.NoError(t, err)
	assert.Len(t, summary.Results, 2)
}

func TestRunMissingFileSendsNothing(t *testing.T) {
	h := newHarness(t)

	_, err := h.runner.Run(context.Background(), Request{
		Files: []string{filepath.Join(h.dir, "missing.txt")},
		Pairs: []Pair{{Model: "llama3-8b-8192", Provider: "groq"}},
		Mode:  prompt.ModeDetailed,
	})
	require.Error(t, err)
	assert.Zero(t, h.source["groq"].calls())
}

func TestRunInvalidModeSendsNothing(t *testing.T) {
	h := newHarness(t)

	_, err := h.runner.Run(context.Background(), Request{
		Files: h.files,
		Pairs: []Pair{{Model: "llama3-8b-8192", Provider: "groq"}},
		Mode:  "verbose",
	})
	require.ErrorIs(t, err, prompt.ErrInvalidMode)
	assert.Zero(t, h.source["groq"].calls())
}

func TestRunAbortsOnFirstFailure(t *testing.T) {
	h := newHarness(t)
	h.source["groq"].err = &llm.ProviderRequestError{Provider: "groq", StatusCode: 401, Body: "Invalid API Key"}

	summary, err := h.runner.Run(context.Background(), Request{
		Files: h.files,
		Pairs: []Pair{{Model: "llama3-8b-8192", Provider: "groq"}, {Model: "m", Provider: "openrouter"}},
		Mode:  prompt.ModeDetailed,
	})
	require.ErrorIs(t, err, llm.ErrProviderRequest)
	assert.Contains(t, err.Error(), "Invalid API Key")
	assert.Len(t, summary.Results, 1)
	assert.Zero(t, h.source["openrouter"].calls())
}

func TestRunContinueOnError(t *testing.T) {
	h := newHarness(t)
	h.source["groq"].err = fmt.Errorf("%w: boom", llm.ErrMalformedResponse)

	summary, err := h.runner.Run(context.Background(), Request{
		Files:           h.files,
		Pairs:           []Pair{{Model: "llama3-8b-8192", Provider: "groq"}, {Model: "m", Provider: "openrouter"}},
		Mode:            prompt.ModeDetailed,
		ContinueOnError: true,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, llm.ErrMalformedResponse))

	assert.Len(t, summary.Results, 2)
	assert.Len(t, summary.Failed(), 1)
	assert.Equal(t, 1, h.source["openrouter"].calls())
	assert.Contains(t, h.stdout.String(), "openrouter analysis from m")
	assert.Contains(t, h.stderr.String(), "1 of 2 model/provider pairs failed:")
	assert.Contains(t, h.stderr.String(), "llama3-8b-8192 (groq)")
}

func TestRunCancelledContext(t *testing.T) {
	h := newHarness(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := h.runner.Run(ctx, Request{
		Files: h.files,
		Pairs: []Pair{{Model: "llama3-8b-8192", Provider: "groq"}},
		Mode:  prompt.ModeDetailed,
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, h.source["groq"].calls())
}

func TestEstimateCosts(t *testing.T) {
	h := newHarness(t)

	estimates, err := EstimateCosts(h.files, []Pair{{Model: "llama-3.3-70b-versatile", Provider: "groq"}, {Model: "private/model", Provider: "openrouter"}}, prompt.ModeDetailed)
	require.NoError(t, err)
	require.Len(t, estimates, 2)

	assert.Greater(t, estimates[0].PromptTokens, 0)
	assert.Equal(t, estimates[0].PromptTokens, estimates[1].PromptTokens)
	assert.True(t, estimates[0].Priced)
	assert.Greater(t, estimates[0].InputCostUSD, 0.0)
	assert.False(t, estimates[1].Priced)
	assert.Zero(t, estimates[1].InputCostUSD)
	assert.Zero(t, h.source["groq"].calls())
}

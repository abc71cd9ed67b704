package llm

import "context"

// Provider defines the interface for LLM providers.
type Provider interface {
	// Complete sends exactly one completion request and returns the normalized result.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResult, error)
	// Name returns the name of this provider.
	Name() string
}

package llm

import "context"

// Normalize returns a copy of res, dropping the token usage unless wantUsage
// is set.
func Normalize(res *CompletionResult, wantUsage bool) *CompletionResult {
	out := *res
	if !wantUsage {
		out.Usage = nil
	}
	return &out
}

// Complete sends prompt to model through p as one user message and
// normalizes the result.
func Complete(ctx context.Context, p Provider, model, prompt string, wantUsage bool) (*CompletionResult, error) {
	res, err := p.Complete(ctx, UserRequest(model, prompt))
	if err != nil {
		return nil, err
	}
	return Normalize(res, wantUsage), nil
}

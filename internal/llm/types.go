package llm

import "fmt"

// Role represents the role of a message sender in a conversation.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message represents a single message in a conversation.
type Message struct {
	Role    Role
	Content string
}

// CompletionRequest contains the parameters for an LLM completion request.
type CompletionRequest struct {
	Model    string
	Messages []Message
}

// UserRequest builds a request carrying prompt as a single user message.
func UserRequest(model, prompt string) CompletionRequest {
	return CompletionRequest{
		Model:    model,
		Messages: []Message{{Role: RoleUser, Content: prompt}},
	}
}

// TokenUsage holds provider-reported token counts. A nil counter means the
// provider did not report it.
type TokenUsage struct {
	PromptTokens     *int
	CompletionTokens *int
	TotalTokens      *int
}

// CompletionResult is the provider-agnostic outcome of one request.
type CompletionResult struct {
	Content      string
	Usage        *TokenUsage
	Model        string
	FinishReason string
}

func intPtr(v int) *int { return &v }

// FormatCount renders a counter, or "n/a" when it was not reported.
func FormatCount(v *int) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%d", *v)
}

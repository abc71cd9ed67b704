package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

const groqBaseURL = "https://api.groq.com/openai/v1"

// GroqProvider implements Provider using Groq's OpenAI-compatible API through
// the go-openai SDK client.
type GroqProvider struct {
	client *openai.Client
	logger *zap.Logger
}

// NewGroqProvider creates a new Groq provider. An empty baseURL selects the
// public Groq endpoint.
func NewGroqProvider(apiKey, baseURL string, httpClient *http.Client, logger *zap.Logger) *GroqProvider {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = groqBaseURL
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if httpClient != nil {
		cfg.HTTPClient = httpClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GroqProvider{
		client: openai.NewClientWithConfig(cfg),
		logger: logger.Named(ProviderGroq),
	}
}

func (p *GroqProvider) Name() string {
	return ProviderGroq
}

func (p *GroqProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResult, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages))
	for _, msg := range req.Messages {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}

	p.logger.Debug("sending chat completion", zap.String("model", req.Model), zap.Int("messages", len(messages)))

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    req.Model,
		Messages: messages,
	})
	if err != nil {
		return nil, p.requestError(err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: groq response has no choices", ErrMalformedResponse)
	}

	p.logger.Debug("chat completion received",
		zap.String("model", resp.Model),
		zap.Int("total_tokens", resp.Usage.TotalTokens),
	)

	return &CompletionResult{
		Content:      resp.Choices[0].Message.Content,
		Usage:        groqUsage(resp.Usage),
		Model:        resp.Model,
		FinishReason: string(resp.Choices[0].FinishReason),
	}, nil
}

// groqUsage returns nil when the response carried no usage object, which the
// SDK decodes as all-zero counts.
func groqUsage(u openai.Usage) *TokenUsage {
	if u.PromptTokens == 0 && u.CompletionTokens == 0 && u.TotalTokens == 0 {
		return nil
	}
	return &TokenUsage{
		PromptTokens:     intPtr(u.PromptTokens),
		CompletionTokens: intPtr(u.CompletionTokens),
		TotalTokens:      intPtr(u.TotalTokens),
	}
}

// requestError maps SDK errors onto ProviderRequestError when a status code
// is known.
func (p *GroqProvider) requestError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &ProviderRequestError{Provider: ProviderGroq, StatusCode: apiErr.HTTPStatusCode, Body: apiErr.Message}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode != 0 {
		body := reqErr.HTTPStatus
		if reqErr.Err != nil {
			body = reqErr.Err.Error()
		}
		return &ProviderRequestError{Provider: ProviderGroq, StatusCode: reqErr.HTTPStatusCode, Body: body}
	}
	return fmt.Errorf("%w: groq: %w", ErrProviderRequest, err)
}

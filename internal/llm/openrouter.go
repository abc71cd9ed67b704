package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const openRouterBaseURL = "https://openrouter.ai/api/v1"

// OpenRouterProvider implements Provider with a direct HTTP POST to the
// OpenRouter chat completions endpoint.
type OpenRouterProvider struct {
	apiKey   string
	endpoint string
	client   *http.Client
	logger   *zap.Logger
}

// NewOpenRouterProvider creates a new OpenRouter provider. An empty baseURL
// selects the public OpenRouter API.
func NewOpenRouterProvider(apiKey, baseURL string, httpClient *http.Client, logger *zap.Logger) *OpenRouterProvider {
	if baseURL == "" {
		baseURL = openRouterBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OpenRouterProvider{
		apiKey:   apiKey,
		endpoint: strings.TrimRight(baseURL, "/") + "/chat/completions",
		client:   httpClient,
		logger:   logger.Named(ProviderOpenRouter),
	}
}

func (p *OpenRouterProvider) Name() string {
	return ProviderOpenRouter
}

type openRouterRequest struct {
	Model    string              `json:"model"`
	Messages []openRouterMessage `json:"messages"`
}

type openRouterMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// openRouterResponse uses pointers so absent fields can be told apart from
// zero values.
type openRouterResponse struct {
	ID      string              `json:"id"`
	Model   string              `json:"model"`
	Choices *[]openRouterChoice `json:"choices"`
	Usage   *openRouterUsage    `json:"usage"`
}

type openRouterChoice struct {
	Message struct {
		Role    string  `json:"role"`
		Content *string `json:"content"`
	} `json:"message"`
	FinishReason string `json:"finish_reason"`
}

type openRouterUsage struct {
	PromptTokens     *int `json:"prompt_tokens"`
	CompletionTokens *int `json:"completion_tokens"`
	TotalTokens      *int `json:"total_tokens"`
}

func (p *OpenRouterProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResult, error) {
	apiReq := openRouterRequest{Model: req.Model}
	for _, msg := range req.Messages {
		apiReq.Messages = append(apiReq.Messages, openRouterMessage{Role: string(msg.Role), Content: msg.Content})
	}

	body, err := json.Marshal(apiReq)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal openrouter request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)

	reqID := uuid.NewString()
	start := time.Now()
	p.logger.Debug("llm.http.request",
		zap.String("req_id", reqID),
		zap.String("url", p.endpoint),
		zap.String("model", req.Model),
		zap.Int("content_length", len(body)),
	)

	httpResp, err := p.client.Do(httpReq)
	if err != nil {
		p.logger.Debug("llm.http.send_error", zap.String("req_id", reqID), zap.Error(err))
		return nil, fmt.Errorf("%w: openrouter: %w", ErrProviderRequest, err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading openrouter response: %w", ErrProviderRequest, err)
	}

	p.logger.Debug("llm.http.response",
		zap.String("req_id", reqID),
		zap.Int("status", httpResp.StatusCode),
		zap.Int("bytes", len(respBody)),
		zap.Duration("elapsed", time.Since(start)),
	)

	if httpResp.StatusCode != http.StatusOK {
		return nil, &ProviderRequestError{
			Provider:   ProviderOpenRouter,
			StatusCode: httpResp.StatusCode,
			Body:       strings.TrimSpace(string(respBody)),
		}
	}

	var apiResp openRouterResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return nil, fmt.Errorf("%w: decoding openrouter response: %w", ErrMalformedResponse, err)
	}
	return apiResp.result()
}

func (r *openRouterResponse) result() (*CompletionResult, error) {
	if r.Choices == nil {
		return nil, fmt.Errorf("%w: openrouter response has no choices field", ErrMalformedResponse)
	}
	choices := *r.Choices
	if len(choices) == 0 {
		return nil, fmt.Errorf("%w: openrouter response has an empty choices list", ErrMalformedResponse)
	}
	content := choices[0].Message.Content
	if content == nil {
		return nil, fmt.Errorf("%w: openrouter choice has no message content", ErrMalformedResponse)
	}

	res := &CompletionResult{
		Content:      *content,
		Model:        r.Model,
		FinishReason: choices[0].FinishReason,
	}
	if r.Usage != nil {
		res.Usage = &TokenUsage{
			PromptTokens:     r.Usage.PromptTokens,
			CompletionTokens: r.Usage.CompletionTokens,
			TotalTokens:      r.Usage.TotalTokens,
		}
	}
	return res, nil
}

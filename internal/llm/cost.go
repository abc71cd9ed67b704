package llm

// modelPricing holds per-model pricing in USD per 1M tokens.
type modelPricing struct {
	InputPerMillion  float64
	OutputPerMillion float64
}

// priceTable maps model identifiers to their pricing.
var priceTable = map[string]modelPricing{
	// Groq models
	"llama3-8b-8192":          {InputPerMillion: 0.05, OutputPerMillion: 0.08},
	"llama3-70b-8192":         {InputPerMillion: 0.59, OutputPerMillion: 0.79},
	"llama-3.1-8b-instant":    {InputPerMillion: 0.05, OutputPerMillion: 0.08},
	"llama-3.3-70b-versatile": {InputPerMillion: 0.59, OutputPerMillion: 0.79},
	"gemma2-9b-it":            {InputPerMillion: 0.20, OutputPerMillion: 0.20},

	// OpenRouter models
	"openai/gpt-4o":                         {InputPerMillion: 2.50, OutputPerMillion: 10.00},
	"openai/gpt-4o-mini":                    {InputPerMillion: 0.15, OutputPerMillion: 0.60},
	"anthropic/claude-3.5-sonnet":           {InputPerMillion: 3.00, OutputPerMillion: 15.00},
	"meta-llama/llama-3.1-8b-instruct":      {InputPerMillion: 0.02, OutputPerMillion: 0.05},
	"meta-llama/llama-3.1-8b-instruct:free": {InputPerMillion: 0, OutputPerMillion: 0},
}

// HasPricing reports whether model is in the price table.
func HasPricing(model string) bool {
	_, ok := priceTable[model]
	return ok
}

// EstimateCost returns the estimated cost in USD for the given model and token counts.
// Returns 0 if the model is not found in the price table.
func EstimateCost(model string, inputTokens, outputTokens int) float64 {
	pricing, ok := priceTable[model]
	if !ok {
		return 0
	}

	inputCost := float64(inputTokens) / 1_000_000.0 * pricing.InputPerMillion
	outputCost := float64(outputTokens) / 1_000_000.0 * pricing.OutputPerMillion
	return inputCost + outputCost
}

// EstimateTokens provides a rough token count estimation for the given text.
// Uses the approximation of 1 token per 4 characters.
func EstimateTokens(text string) int {
	n := len(text) / 4
	if n == 0 && len(text) > 0 {
		return 1
	}
	return n
}

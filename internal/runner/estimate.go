package runner

import (
	"github.com/ziadkadry99/tailor4job/internal/llm"
	"github.com/ziadkadry99/tailor4job/internal/prompt"
)

// Estimate is the dry-run cost of sending the prompt to one pair.
type Estimate struct {
	Pair         Pair
	PromptTokens int
	// InputCostUSD covers the prompt only; completion length is unknown
	// before the call.
	InputCostUSD float64
	Priced       bool
}

// EstimateCosts builds the prompt exactly as Run would and prices it for
// every pair without contacting any provider.
func EstimateCosts(files []string, pairs []Pair, mode prompt.Mode) ([]Estimate, error) {
	promptText, err := BuildPrompt(files, mode)
	if err != nil {
		return nil, err
	}
	tokens := llm.EstimateTokens(promptText)

	estimates := make([]Estimate, len(pairs))
	for i, pair := range pairs {
		estimates[i] = Estimate{
			Pair:         pair,
			PromptTokens: tokens,
			InputCostUSD: llm.EstimateCost(pair.Model, tokens, 0),
			Priced:       llm.HasPricing(pair.Model),
		}
	}
	return estimates, nil
}

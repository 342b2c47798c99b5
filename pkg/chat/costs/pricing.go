package costs

import (
	"github.com/shopspring/decimal"
)

// ModelPricing holds per-1M-token rates in USD.
type ModelPricing struct {
	InputPerMillion  decimal.Decimal
	OutputPerMillion decimal.Decimal
}

var million = decimal.NewFromInt(1_000_000)

// pricing table for the models this service bills against. Unknown models
// cost zero and get flagged in logs by the tracker.
var pricingTable = map[string]ModelPricing{
	"gpt-4o-mini": {
		InputPerMillion:  decimal.RequireFromString("0.40"),
		OutputPerMillion: decimal.RequireFromString("1.60"),
	},
	"gpt-4o": {
		InputPerMillion:  decimal.RequireFromString("2.50"),
		OutputPerMillion: decimal.RequireFromString("10.00"),
	},
	"text-embedding-3-small": {
		InputPerMillion: decimal.RequireFromString("0.02"),
	},
	"text-embedding-3-large": {
		InputPerMillion: decimal.RequireFromString("0.13"),
	},
}

// CalculateCost returns the USD cost for a call against the given model.
// The second return reports whether the model was found in the pricing table.
func CalculateCost(model string, inputTokens, outputTokens int) (decimal.Decimal, bool) {
	pricing, ok := pricingTable[model]
	if !ok {
		return decimal.Zero, false
	}

	cost := decimal.NewFromInt(int64(inputTokens)).
		Div(million).
		Mul(pricing.InputPerMillion)

	if outputTokens > 0 && !pricing.OutputPerMillion.IsZero() {
		outputCost := decimal.NewFromInt(int64(outputTokens)).
			Div(million).
			Mul(pricing.OutputPerMillion)
		cost = cost.Add(outputCost)
	}

	return cost, true
}

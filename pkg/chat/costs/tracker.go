package costs

import (
	"time"

	"github.com/shopspring/decimal"

	"building-chat-be/pkg/chat/types"
)

// CallType labels which kind of billed API call produced a record.
type CallType string

const (
	CallClassification CallType = "classification"
	CallEmbedding      CallType = "embedding"
	CallChat           CallType = "chat"
)

// Record is one billed API call. Appended, never mutated.
type Record struct {
	Timestamp    time.Time
	CallType     CallType
	Model        string
	InputTokens  int
	OutputTokens int
	TotalTokens  int
	CostUSD      decimal.Decimal
}

// Tracker accumulates cost records for exactly one orchestrated request.
// It is not safe for concurrent use and must never be shared across
// requests; the orchestrator creates a fresh one per Handle call.
type Tracker struct {
	records   []Record
	totalCost decimal.Decimal
	startedAt time.Time
}

func NewTracker() *Tracker {
	return &Tracker{
		totalCost: decimal.Zero,
		startedAt: time.Now(),
	}
}

// Log appends one record for a billed call and returns its computed cost.
// Unknown models are recorded at zero cost so the call count stays honest.
func (t *Tracker) Log(callType CallType, model string, inputTokens, outputTokens int) decimal.Decimal {
	cost, _ := CalculateCost(model, inputTokens, outputTokens)

	t.records = append(t.records, Record{
		Timestamp:    time.Now(),
		CallType:     callType,
		Model:        model,
		InputTokens:  inputTokens,
		OutputTokens: outputTokens,
		TotalTokens:  inputTokens + outputTokens,
		CostUSD:      cost,
	})
	t.totalCost = t.totalCost.Add(cost)

	return cost
}

// Records returns a copy of the recorded calls in append order.
func (t *Tracker) Records() []Record {
	out := make([]Record, len(t.records))
	copy(out, t.records)
	return out
}

// TotalCost returns the running USD total.
func (t *Tracker) TotalCost() decimal.Decimal {
	return t.totalCost
}

// Summary groups the session's records by call type.
func (t *Tracker) Summary() types.CostSummary {
	byType := make(map[string]types.CallTypeStats)
	costByType := make(map[string]decimal.Decimal)

	for _, rec := range t.records {
		key := string(rec.CallType)
		stats := byType[key]
		stats.Count++
		stats.TotalTokens += rec.TotalTokens
		costByType[key] = costByType[key].Add(rec.CostUSD)
		byType[key] = stats
	}

	for key, stats := range byType {
		stats.TotalCost = costByType[key].StringFixed(6)
		byType[key] = stats
	}

	return types.CostSummary{
		TotalCostUSD:  t.totalCost.StringFixed(6),
		TotalAPICalls: len(t.records),
		CallsByType:   byType,
	}
}

// SessionDuration reports how long this tracker has been live.
func (t *Tracker) SessionDuration() time.Duration {
	return time.Since(t.startedAt)
}

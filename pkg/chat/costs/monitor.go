package costs

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"building-chat-be/pkg/chat/types"
)

const (
	AlertHighSessionCost = "high_session_cost"
	AlertHighDailyCost   = "high_daily_cost"
)

// Alert describes one threshold breach detected by the monitor.
type Alert struct {
	Type      string
	RequestID string
	DateKey   string
	CostUSD   decimal.Decimal
	Threshold decimal.Decimal
}

// Alerter receives threshold breaches. Implementations must not block for
// long; the monitor calls them inline.
type Alerter interface {
	CostAlert(ctx context.Context, alert Alert)
}

// PeriodSummary is one day's or month's accumulated spend.
type PeriodSummary struct {
	Period       string `json:"period"`
	TotalCostUSD string `json:"total_cost_usd"`
	RequestCount int64  `json:"request_count"`
	APICalls     int64  `json:"api_calls"`
}

// Monitor accumulates per-session cost summaries into daily and monthly
// Redis aggregates and raises alerts on threshold breaches. It runs outside
// the request path; its failures never affect request handling.
type Monitor struct {
	rdb              *redis.Client
	sessionThreshold decimal.Decimal
	dailyThreshold   decimal.Decimal
	alerter          Alerter
	now              func() time.Time
}

func NewMonitor(rdb *redis.Client, sessionThresholdUSD, dailyThresholdUSD float64, alerter Alerter) *Monitor {
	return &Monitor{
		rdb:              rdb,
		sessionThreshold: decimal.NewFromFloat(sessionThresholdUSD),
		dailyThreshold:   decimal.NewFromFloat(dailyThresholdUSD),
		alerter:          alerter,
		now:              time.Now,
	}
}

func dailyKey(dateKey string) string    { return "chat:costs:daily:" + dateKey }
func monthlyKey(monthKey string) string { return "chat:costs:monthly:" + monthKey }

// AddSessionCosts folds one session summary into the daily and monthly
// aggregates, then checks thresholds.
func (m *Monitor) AddSessionCosts(ctx context.Context, summary types.CostSummary, requestID string) error {
	sessionCost, err := decimal.NewFromString(summary.TotalCostUSD)
	if err != nil {
		return fmt.Errorf("parse session cost %q: %w", summary.TotalCostUSD, err)
	}

	nowT := m.now()
	dateKey := nowT.Format("2006-01-02")
	monthKey := nowT.Format("2006-01")

	costFloat, _ := sessionCost.Float64()

	pipe := m.rdb.Pipeline()
	dailyTotal := pipe.IncrByFloat(ctx, dailyKey(dateKey)+":total_cost", costFloat)
	pipe.Incr(ctx, dailyKey(dateKey)+":request_count")
	pipe.IncrBy(ctx, dailyKey(dateKey)+":api_calls", int64(summary.TotalAPICalls))
	pipe.IncrByFloat(ctx, monthlyKey(monthKey)+":total_cost", costFloat)
	pipe.Incr(ctx, monthlyKey(monthKey)+":request_count")
	pipe.IncrBy(ctx, monthlyKey(monthKey)+":api_calls", int64(summary.TotalAPICalls))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("update cost aggregates: %w", err)
	}

	m.checkAlerts(ctx, sessionCost, decimal.NewFromFloat(dailyTotal.Val()), requestID, dateKey)
	return nil
}

func (m *Monitor) checkAlerts(ctx context.Context, sessionCost, dailyTotal decimal.Decimal, requestID, dateKey string) {
	if m.alerter == nil {
		return
	}

	if sessionCost.GreaterThan(m.sessionThreshold) {
		m.alerter.CostAlert(ctx, Alert{
			Type:      AlertHighSessionCost,
			RequestID: requestID,
			DateKey:   dateKey,
			CostUSD:   sessionCost,
			Threshold: m.sessionThreshold,
		})
	}

	if dailyTotal.GreaterThan(m.dailyThreshold) {
		m.alerter.CostAlert(ctx, Alert{
			Type:      AlertHighDailyCost,
			RequestID: requestID,
			DateKey:   dateKey,
			CostUSD:   dailyTotal,
			Threshold: m.dailyThreshold,
		})
	}
}

// DailySummary returns the aggregates for the given date (today when empty).
func (m *Monitor) DailySummary(ctx context.Context, date string) (*PeriodSummary, error) {
	if date == "" {
		date = m.now().Format("2006-01-02")
	}
	return m.periodSummary(ctx, date, dailyKey(date))
}

// MonthlySummary returns the aggregates for the given month (current when empty).
func (m *Monitor) MonthlySummary(ctx context.Context, month string) (*PeriodSummary, error) {
	if month == "" {
		month = m.now().Format("2006-01")
	}
	return m.periodSummary(ctx, month, monthlyKey(month))
}

func (m *Monitor) periodSummary(ctx context.Context, period, keyPrefix string) (*PeriodSummary, error) {
	pipe := m.rdb.Pipeline()
	totalCmd := pipe.Get(ctx, keyPrefix+":total_cost")
	requestsCmd := pipe.Get(ctx, keyPrefix+":request_count")
	callsCmd := pipe.Get(ctx, keyPrefix+":api_calls")
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, fmt.Errorf("read cost aggregates: %w", err)
	}

	summary := &PeriodSummary{
		Period:       period,
		TotalCostUSD: "0",
	}
	if v, err := totalCmd.Result(); err == nil {
		if d, derr := decimal.NewFromString(v); derr == nil {
			summary.TotalCostUSD = d.StringFixed(6)
		}
	}
	if v, err := requestsCmd.Int64(); err == nil {
		summary.RequestCount = v
	}
	if v, err := callsCmd.Int64(); err == nil {
		summary.APICalls = v
	}
	return summary, nil
}

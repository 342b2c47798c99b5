package costs

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"building-chat-be/pkg/chat/types"
)

type recordingAlerter struct {
	alerts []Alert
}

func (r *recordingAlerter) CostAlert(ctx context.Context, alert Alert) {
	r.alerts = append(r.alerts, alert)
}

func newTestMonitor(t *testing.T, sessionUSD, dailyUSD float64, alerter Alerter) *Monitor {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewMonitor(rdb, sessionUSD, dailyUSD, alerter)
}

func sessionSummary(cost string, calls int) types.CostSummary {
	return types.CostSummary{TotalCostUSD: cost, TotalAPICalls: calls}
}

func TestAddSessionCostsAccumulates(t *testing.T) {
	m := newTestMonitor(t, 1.0, 10.0, nil)
	ctx := context.Background()

	require.NoError(t, m.AddSessionCosts(ctx, sessionSummary("0.000450", 3), "req-1"))
	require.NoError(t, m.AddSessionCosts(ctx, sessionSummary("0.000550", 2), "req-2"))

	daily, err := m.DailySummary(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "0.001000", daily.TotalCostUSD)
	assert.Equal(t, int64(2), daily.RequestCount)
	assert.Equal(t, int64(5), daily.APICalls)

	monthly, err := m.MonthlySummary(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "0.001000", monthly.TotalCostUSD)
	assert.Equal(t, int64(2), monthly.RequestCount)
}

func TestEmptyPeriodReadsAsZero(t *testing.T) {
	m := newTestMonitor(t, 1.0, 10.0, nil)

	daily, err := m.DailySummary(context.Background(), "1999-01-01")
	require.NoError(t, err)
	assert.Equal(t, "0", daily.TotalCostUSD)
	assert.Equal(t, int64(0), daily.RequestCount)
	assert.Equal(t, int64(0), daily.APICalls)
}

func TestSessionThresholdAlert(t *testing.T) {
	alerter := &recordingAlerter{}
	m := newTestMonitor(t, 0.50, 100.0, alerter)

	require.NoError(t, m.AddSessionCosts(context.Background(), sessionSummary("0.750000", 4), "req-1"))

	require.Len(t, alerter.alerts, 1)
	assert.Equal(t, AlertHighSessionCost, alerter.alerts[0].Type)
	assert.Equal(t, "req-1", alerter.alerts[0].RequestID)
}

func TestDailyThresholdAlert(t *testing.T) {
	alerter := &recordingAlerter{}
	m := newTestMonitor(t, 100.0, 1.0, alerter)
	ctx := context.Background()

	require.NoError(t, m.AddSessionCosts(ctx, sessionSummary("0.700000", 2), "req-1"))
	require.Len(t, alerter.alerts, 0, "first session stays under the daily threshold")

	require.NoError(t, m.AddSessionCosts(ctx, sessionSummary("0.700000", 2), "req-2"))
	require.Len(t, alerter.alerts, 1)
	assert.Equal(t, AlertHighDailyCost, alerter.alerts[0].Type)
}

func TestInvalidSummaryCostRejected(t *testing.T) {
	m := newTestMonitor(t, 1.0, 10.0, nil)

	err := m.AddSessionCosts(context.Background(), sessionSummary("not-a-number", 1), "req-1")
	assert.Error(t, err)
}

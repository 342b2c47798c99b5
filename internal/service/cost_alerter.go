package service

import (
	"context"

	"building-chat-be/internal/constant"
	"building-chat-be/internal/pkg/logger"
	"building-chat-be/internal/pkg/mailer"
	"building-chat-be/pkg/chat/costs"
	"building-chat-be/pkg/events"
	pktNats "building-chat-be/pkg/nats"
)

// costAlerter fans a threshold breach out to the ops log, the alert mailbox
// and the NATS event stream. Every sink is best effort; a dead mailer or
// broker never blocks cost accounting.
type costAlerter struct {
	log        logger.ILogger
	mailer     mailer.IEmailService
	alertEmail string
	natsPub    *pktNats.Publisher
}

func NewCostAlerter(log logger.ILogger, emailService mailer.IEmailService, alertEmail string, natsPub *pktNats.Publisher) costs.Alerter {
	return &costAlerter{
		log:        log,
		mailer:     emailService,
		alertEmail: alertEmail,
		natsPub:    natsPub,
	}
}

func (a *costAlerter) CostAlert(ctx context.Context, alert costs.Alert) {
	costStr := alert.CostUSD.StringFixed(6)
	thresholdStr := alert.Threshold.StringFixed(2)

	a.log.Warn(constant.ModuleCost, "cost threshold exceeded", map[string]interface{}{
		"alert_type": alert.Type,
		"request_id": alert.RequestID,
		"date":       alert.DateKey,
		"cost_usd":   costStr,
		"threshold":  thresholdStr,
	})

	if a.mailer != nil && a.alertEmail != "" {
		if err := a.mailer.SendCostAlert(a.alertEmail, alert.Type, alert.DateKey, costStr, thresholdStr); err != nil {
			a.log.Error(constant.ModuleCost, "failed to send cost alert email", map[string]interface{}{"error": err.Error()})
		}
	}

	if a.natsPub != nil {
		evt := events.NewCostAlertEvent(alert.Type, alert.RequestID, alert.DateKey, costStr, thresholdStr)
		if err := a.natsPub.Publish(ctx, evt); err != nil {
			a.log.Error(constant.ModuleCost, "failed to publish cost alert event", map[string]interface{}{"error": err.Error()})
		}
	}
}

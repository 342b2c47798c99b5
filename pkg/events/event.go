package events

import "time"

// Event defines the contract for operational events published to the bus.
type Event interface {
	// EventType returns the unique code for this event (e.g., "COST_ALERT").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is a reusable implementation for simple events.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewCostAlertEvent describes a cost threshold breach for the ops stream.
func NewCostAlertEvent(alertType, requestID, dateKey, costUSD, thresholdUSD string) Event {
	return BaseEvent{
		Type: "COST_ALERT",
		Data: map[string]interface{}{
			"alert_type": alertType,
			"request_id": requestID,
			"date":       dateKey,
			"cost_usd":   costUSD,
			"threshold":  thresholdUSD,
		},
		OccurredAt: time.Now(),
	}
}

package service

import (
	"context"
	"encoding/json"
	"log"

	"building-chat-be/internal/dto"
	"building-chat-be/pkg/chat/costs"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the session cost topic and folds each summary into
// the Redis daily/monthly aggregates. It runs outside the request path so a
// slow Redis never delays a chat response.
type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	monitor   *costs.Monitor
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	monitor *costs.Monitor,
) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		monitor:   monitor,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.SessionCostMessage
	err := json.Unmarshal(msg.Payload, &payload)
	if err != nil {
		log.Printf("[ERROR] Failed to unmarshal session cost message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Recording session costs for request %s (total $%s, %d api calls)",
		payload.RequestID, payload.Summary.TotalCostUSD, payload.Summary.TotalAPICalls)

	if err := cs.monitor.AddSessionCosts(ctx, payload.Summary, payload.RequestID); err != nil {
		log.Printf("[ERROR] Failed to record session costs for request %s: %v", payload.RequestID, err)
		msg.Nack() // Nack for retriable errors
		return
	}

	msg.Ack()
}

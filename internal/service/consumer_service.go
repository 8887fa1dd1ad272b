package service

import (
	"context"
	"encoding/json"

	"routine-advisor-be/internal/dto"
	"routine-advisor-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
)

// WidgetDelivery pushes an encoded message to a session's open tabs.
// The websocket hub implements it.
type WidgetDelivery interface {
	Send(sessionID string, data []byte)
}

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	delivery   WidgetDelivery
	logger     logger.ILogger
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	delivery WidgetDelivery,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		delivery:   delivery,
		logger:     log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	var event dto.WidgetEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		cs.logger.Error("ConsumerService", "Failed to unmarshal widget event", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		msg.Ack() // Ack invalid messages to prevent infinite redelivery
		return
	}

	data, err := json.Marshal(dto.WidgetPush{Type: event.Type, Data: event.Page})
	if err != nil {
		cs.logger.Error("ConsumerService", "Failed to encode widget push", map[string]interface{}{
			"session_id": event.SessionID,
			"error":      err.Error(),
		})
		msg.Ack()
		return
	}

	cs.delivery.Send(event.SessionID, data)
	msg.Ack()
}

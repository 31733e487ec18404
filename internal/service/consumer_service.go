package service

import (
	"context"
	"encoding/json"

	"notesai-be/internal/pkg/logger"
	"notesai-be/internal/repository/memory"
	"notesai-be/internal/websocket"
	"notesai-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains note lifecycle events off the in-process bus.
// Two consequences per event: the owner's chat-context digest is evicted
// (so the next chat sees fresh notes) and connected clients get a push.
type consumerService struct {
	pubSub       *gochannel.GoChannel
	topicName    string
	contextCache *memory.ContextCache
	hub          *websocket.Hub
	logger       logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	contextCache *memory.ContextCache,
	hub *websocket.Hub,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:       pubSub,
		topicName:    topicName,
		contextCache: contextCache,
		hub:          hub,
		logger:       log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
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
	// Ack everything: these events are advisory, retrying them buys nothing.
	defer msg.Ack()

	var event events.BaseEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		cs.logger.Warn("Consumer", "Failed to unmarshal event", map[string]interface{}{"error": err.Error()})
		return
	}

	userIdStr, _ := event.Data["user_id"].(string)
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		cs.logger.Warn("Consumer", "Event without valid user_id", map[string]interface{}{"type": event.Type})
		return
	}

	cs.contextCache.Invalidate(userId)

	if cs.hub != nil {
		cs.hub.Send(userId, websocket.Event{
			Type: event.Type,
			Data: event.Data,
		})
	}
}

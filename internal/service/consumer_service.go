package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/mawuli2121/Priya-Project/internal/dto"
	"github.com/mawuli2121/Priya-Project/internal/pkg/logger"
	"github.com/mawuli2121/Priya-Project/pkg/events"
	pktNats "github.com/mawuli2121/Priya-Project/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the in-process analysis event topic, writes the
// audit log entry, and forwards each event to NATS when a connection exists.
type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	natsPub   *pktNats.Publisher
	logger    logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	natsPub *pktNats.Publisher,
	sysLogger logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		natsPub:   natsPub,
		logger:    sysLogger,
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
	var payload dto.AnalysisEventMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal event message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	cs.logger.Info("AnalysisEvents", payload.Type, payload.Payload)

	if cs.natsPub != nil {
		occurredAt, err := time.Parse(time.RFC3339, payload.OccurredAt)
		if err != nil {
			occurredAt = time.Now()
		}
		event := events.BaseEvent{
			Type:       payload.Type,
			Data:       payload.Payload,
			OccurredAt: occurredAt,
		}
		if err := cs.natsPub.Publish(ctx, event); err != nil {
			cs.logger.Warn("AnalysisEvents", "NATS forward failed", map[string]interface{}{"error": err.Error()})
		}
	}

	msg.Ack()
}

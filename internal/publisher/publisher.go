package publisher

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/glowdesk/glowdesk/internal/config"
	"github.com/glowdesk/glowdesk/internal/logger"
	"github.com/glowdesk/glowdesk/internal/pubsub"
	"github.com/glowdesk/glowdesk/internal/types"
)

// BillingEventPublisher emits the `changed(clientId)` notification every
// billing mutation triggers, so dependent views re-run their summaries.
type BillingEventPublisher interface {
	PublishBillingEvent(ctx context.Context, event *types.BillingEvent) error
	Close() error
}

type billingEventPublisher struct {
	pubSub pubsub.PubSub
	config *config.BillingConfig
	logger *logger.Logger
}

// NewPublisher creates a pubsub-backed billing event publisher
func NewPublisher(
	pubSub pubsub.PubSub,
	cfg *config.Configuration,
	logger *logger.Logger,
) (BillingEventPublisher, error) {
	return &billingEventPublisher{
		pubSub: pubSub,
		config: &cfg.Billing,
		logger: logger,
	}, nil
}

func (p *billingEventPublisher) PublishBillingEvent(ctx context.Context, event *types.BillingEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	messageID := event.ID
	if messageID == "" {
		messageID = watermill.NewUUID()
	}

	msg := message.NewMessage(messageID, payload)
	msg.Metadata.Set("client_id", event.ClientID)

	if err := p.pubSub.Publish(ctx, p.config.Topic, msg); err != nil {
		p.logger.Errorw("failed to publish billing event",
			"error", err,
			"event_id", event.ID,
			"event_name", event.EventName,
			"client_id", event.ClientID,
		)
		return err
	}

	p.logger.Debugw("published billing event",
		"event_id", event.ID,
		"event_name", event.EventName,
		"client_id", event.ClientID,
		"topic", p.config.Topic,
	)

	return nil
}

// Close closes the publisher
func (p *billingEventPublisher) Close() error {
	return p.pubSub.Close()
}

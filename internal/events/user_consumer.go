package events

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/adotefacil/service-adoption/pkg/kafka"
)

// ListingPurger purges every listing a deleted user owned. It is satisfied
// by *application.AnimalService; the indirection avoids an import cycle
// between internal/events and internal/application.
type ListingPurger interface {
	PurgeUserListings(ctx context.Context, userID uuid.UUID) (int64, error)
}

// UserEventConsumer listens to user events and cascades account deletion
// onto listing ownership: when an account is removed, every listing it owned
// is purged together with its ownership rows.
type UserEventConsumer struct {
	consumer *kafka.Consumer
	service  ListingPurger
	logger   *zap.Logger
}

// NewUserEventConsumer creates a new UserEventConsumer.
func NewUserEventConsumer(
	brokers []string,
	groupID string,
	service ListingPurger,
	logger *zap.Logger,
) *UserEventConsumer {
	consumer := kafka.NewConsumer(brokers, groupID, TopicUserEvents, logger)
	return &UserEventConsumer{
		consumer: consumer,
		service:  service,
		logger:   logger,
	}
}

// Start begins consuming user events. This blocks until the context is
// cancelled.
func (c *UserEventConsumer) Start(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.handleMessage)
}

// Close closes the underlying Kafka consumer.
func (c *UserEventConsumer) Close() error {
	return c.consumer.Close()
}

func (c *UserEventConsumer) handleMessage(ctx context.Context, msg kafkago.Message) error {
	var cloudEvent kafka.CloudEvent
	if err := json.Unmarshal(msg.Value, &cloudEvent); err != nil {
		c.logger.Error("failed to parse cloud event from user topic",
			zap.Error(err),
			zap.String("raw", string(msg.Value)),
		)
		return nil // Don't retry malformed messages
	}

	switch cloudEvent.Type {
	case UserDeleted:
		return c.handleUserDeleted(ctx, cloudEvent)
	default:
		c.logger.Debug("ignoring unhandled user event type",
			zap.String("type", cloudEvent.Type),
		)
		return nil
	}
}

func (c *UserEventConsumer) handleUserDeleted(ctx context.Context, cloudEvent kafka.CloudEvent) error {
	var evt UserDeletedEvent
	if err := cloudEvent.ParseData(&evt); err != nil {
		c.logger.Error("failed to parse UserDeletedEvent data", zap.Error(err))
		return nil // Don't retry malformed data
	}

	c.logger.Info("processing user deleted event",
		zap.String("user_id", evt.UserID.String()),
	)

	removed, err := c.service.PurgeUserListings(ctx, evt.UserID)
	if err != nil {
		c.logger.Error("failed to purge listings of deleted user",
			zap.String("user_id", evt.UserID.String()),
			zap.Error(err),
		)
		return err
	}

	c.logger.Info("listings purged for deleted user",
		zap.String("user_id", evt.UserID.String()),
		zap.Int64("removed", removed),
	)
	return nil
}

package repository

import (
	"context"

	"github.com/tour-microservice/internal/domain"
)

// StreamRepository publishes and consumes the activity event stream.
type StreamRepository interface {
	// PublishActivity appends one tracking event to the stream.
	PublishActivity(ctx context.Context, activity *domain.Activity) error

	// CreateConsumerGroup creates the consumer group, tolerating one
	// that already exists.
	CreateConsumerGroup(ctx context.Context, stream, group string) error

	// Consume reads new messages for the consumer until ctx is done.
	Consume(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error)

	// Ack marks a message as processed.
	Ack(ctx context.Context, stream, group, messageID string) error
}

package kafka

import (
	"context"

	kafkago "github.com/segmentio/kafka-go"
)

// NewPricePublisherWithWriter permite inyectar un writer falso en tests.
func NewPricePublisherWithWriter(w interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}) *PricePublisher {
	return &PricePublisher{w: w}
}

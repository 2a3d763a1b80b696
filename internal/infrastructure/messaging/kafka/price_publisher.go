// Package kafka publica eventos de dominio en Kafka.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/jhoicas/smartpos-api/internal/application/ports"
)

var _ ports.PriceEventPublisher = (*PricePublisher)(nil)

// messageWriter lo que usa PricePublisher de *kafka.Writer.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// PricePublisher publica price.changed con key = product_id, así los cambios de un
// mismo producto caen en la misma partición y conservan el orden.
type PricePublisher struct {
	w messageWriter
}

// NewPricePublisher crea el writer hacia topic.
func NewPricePublisher(brokers []string, topic string) *PricePublisher {
	return &PricePublisher{w: &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireOne,
		BatchTimeout: 10 * time.Millisecond,
	}}
}

// PublishPriceChanged serializa el evento en JSON y lo escribe.
func (p *PricePublisher) PublishPriceChanged(ctx context.Context, ev ports.PriceChangedEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal price event: %w", err)
	}
	if err := p.w.WriteMessages(ctx, kafkago.Message{
		Key:   []byte(ev.ProductID),
		Value: payload,
		Time:  ev.ChangedAt,
	}); err != nil {
		return fmt.Errorf("publish price event: %w", err)
	}
	return nil
}

// Close vacía y cierra el writer.
func (p *PricePublisher) Close() error {
	return p.w.Close()
}

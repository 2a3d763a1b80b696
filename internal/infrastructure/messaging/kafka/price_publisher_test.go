package kafka_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/smartpos-api/internal/application/ports"
	"github.com/jhoicas/smartpos-api/internal/infrastructure/messaging/kafka"
)

type fakeWriter struct {
	msgs   []kafkago.Message
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestPricePublisher_KeyAndPayload(t *testing.T) {
	w := &fakeWriter{}
	p := kafka.NewPricePublisherWithWriter(w)
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	err := p.PublishPriceChanged(context.Background(), ports.PriceChangedEvent{
		ProductID: "p-1",
		OldPrice:  decimal.NewFromInt(150),
		NewPrice:  decimal.NewFromInt(100),
		ChangedAt: at,
	})
	require.NoError(t, err)
	require.Len(t, w.msgs, 1)
	assert.Equal(t, "p-1", string(w.msgs[0].Key))

	var got map[string]any
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &got))
	assert.Equal(t, "p-1", got["product_id"])
	assert.Equal(t, "100", got["new_price"])

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

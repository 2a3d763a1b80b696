package email_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/jhoicas/smartpos-api/internal/application/ports"
	"github.com/jhoicas/smartpos-api/internal/domain"
	"github.com/jhoicas/smartpos-api/internal/infrastructure/email"
)

type fakeDialer struct {
	sent []*gomail.Message
	err  error
}

func (f *fakeDialer) DialAndSend(m ...*gomail.Message) error {
	f.sent = append(f.sent, m...)
	return f.err
}

func TestGomailSender_Send(t *testing.T) {
	d := &fakeDialer{}
	s := email.NewSenderWithDialer("shop@example.com", d)

	err := s.Send(context.Background(), "asha@example.com", "Receipt", "<p>hi</p>",
		ports.Attachment{Filename: "r.pdf", ContentType: "application/pdf", Data: []byte("%PDF")})

	require.NoError(t, err)
	require.Len(t, d.sent, 1)
	assert.Equal(t, []string{"asha@example.com"}, d.sent[0].GetHeader("To"))
	assert.Equal(t, []string{"Receipt"}, d.sent[0].GetHeader("Subject"))

	var buf bytes.Buffer
	_, err = d.sent[0].WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `filename="r.pdf"`)
}

func TestGomailSender_DialError(t *testing.T) {
	s := email.NewSenderWithDialer("shop@example.com", &fakeDialer{err: errors.New("connection refused")})

	err := s.Send(context.Background(), "asha@example.com", "x", "y")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDeliveryFailure))
}

func TestGomailSender_EmptyRecipient(t *testing.T) {
	d := &fakeDialer{}
	s := email.NewSenderWithDialer("shop@example.com", d)

	err := s.Send(context.Background(), "", "x", "y")
	assert.True(t, errors.Is(err, domain.ErrDeliveryFailure))
	assert.Empty(t, d.sent)
}

func TestDisabledSender(t *testing.T) {
	err := email.DisabledSender{}.Send(context.Background(), "a@b.c", "x", "y")
	assert.True(t, errors.Is(err, domain.ErrDeliveryFailure))
}

package email

import (
	"context"
	"fmt"
	"io"

	"gopkg.in/gomail.v2"

	"github.com/jhoicas/smartpos-api/internal/application/ports"
	"github.com/jhoicas/smartpos-api/internal/domain"
	"github.com/jhoicas/smartpos-api/pkg/config"
)

var _ ports.Mailer = (*GomailSender)(nil)

// dialer lo que usa GomailSender de *gomail.Dialer.
type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// GomailSender envía correos por SMTP con gomail.
type GomailSender struct {
	from   string
	dialer dialer
}

// NewGomailSender construye el sender desde la configuración SMTP.
func NewGomailSender(cfg config.SMTPConfig) *GomailSender {
	return &GomailSender{
		from:   cfg.From,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

// Send arma el mensaje HTML con adjuntos y lo envía. Los errores envuelven domain.ErrDeliveryFailure.
func (s *GomailSender) Send(ctx context.Context, to, subject, htmlBody string, attachments ...ports.Attachment) error {
	if to == "" {
		return fmt.Errorf("%w: destinatario vacío", domain.ErrDeliveryFailure)
	}
	m := buildMessage(s.from, to, subject, htmlBody, attachments)

	done := make(chan error, 1)
	go func() { done <- s.dialer.DialAndSend(m) }()
	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("%w: %v", domain.ErrDeliveryFailure, err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", domain.ErrDeliveryFailure, ctx.Err())
	}
}

func buildMessage(from, to, subject, htmlBody string, attachments []ports.Attachment) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)
	for _, a := range attachments {
		data := a.Data
		m.Attach(a.Filename,
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(data)
				return err
			}),
			gomail.SetHeader(map[string][]string{"Content-Type": {a.ContentType}}),
		)
	}
	return m
}

// DisabledSender se usa cuando no hay SMTP configurado: todo envío falla.
type DisabledSender struct{}

var _ ports.Mailer = DisabledSender{}

func (DisabledSender) Send(context.Context, string, string, string, ...ports.Attachment) error {
	return fmt.Errorf("%w: SMTP no configurado", domain.ErrDeliveryFailure)
}

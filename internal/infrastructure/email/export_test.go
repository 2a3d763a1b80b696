package email

import "gopkg.in/gomail.v2"

// NewSenderWithDialer permite inyectar un dialer falso en tests.
func NewSenderWithDialer(from string, d interface {
	DialAndSend(m ...*gomail.Message) error
}) *GomailSender {
	return &GomailSender{from: from, dialer: d}
}

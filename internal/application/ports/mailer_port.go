package ports

import "context"

// Attachment archivo adjunto de un correo.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Mailer define el puerto de salida hacia el colaborador de correo.
// Send devuelve error si el envío falla; el llamador decide si ese error es fatal.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string, attachments ...Attachment) error
}

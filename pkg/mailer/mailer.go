// Package mailer abstracts the outbound transactional-email gateway.
package mailer

import "context"

// Gateway sends email through an external provider. Both methods return the
// provider's message identifier on success.
type Gateway interface {
	// SendEmail sends a structured message; the provider builds the MIME
	// envelope (used for plain HTML sends, provider-side fan-out).
	SendEmail(ctx context.Context, msg Message) (string, error)

	// SendRawEmail transmits a pre-built MIME blob unchanged (used for
	// multipart sends: inline images, attachments, custom headers).
	SendRawEmail(ctx context.Context, msg RawMessage) (string, error)
}

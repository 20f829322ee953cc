package mailer

import "github.com/postwave/postwave/pkg/errx"

var mailerErrors = errx.NewRegistry("MAILER")

var (
	ErrSendFailed     = mailerErrors.Register("SEND_FAILED", errx.TypeExternal, 502, "Email send failed")
	ErrInvalidMessage = mailerErrors.Register("INVALID_MESSAGE", errx.TypeValidation, 400, "Invalid email message")
)

// NewSendFailedError wraps a provider-level failure.
func NewSendFailedError(cause error) *errx.Error {
	return mailerErrors.NewWithCause(ErrSendFailed, cause)
}

// NewInvalidMessageError builds a message validation error.
func NewInvalidMessageError(reason string) *errx.Error {
	return mailerErrors.New(ErrInvalidMessage).WithDetail("reason", reason)
}

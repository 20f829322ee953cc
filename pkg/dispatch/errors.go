package dispatch

import "github.com/postwave/postwave/pkg/errx"

var dispatchErrors = errx.NewRegistry("DISPATCH")

var (
	ErrNoRecipients    = dispatchErrors.Register("NO_RECIPIENTS", errx.TypeValidation, 400, "No recipients provided")
	ErrPayloadTooLarge = dispatchErrors.Register("PAYLOAD_TOO_LARGE", errx.TypeValidation, 400, "Message content exceeds the size limit")
	ErrGatewayFailed   = dispatchErrors.Register("GATEWAY_FAILED", errx.TypeExternal, 502, "Email sending failed")
	ErrLogWrite        = dispatchErrors.Register("LOG_WRITE", errx.TypeInternal, 500, "Failed to write email log")
)

// NewNoRecipientsError builds the empty-recipient-set error.
func NewNoRecipientsError() *errx.Error { return dispatchErrors.New(ErrNoRecipients) }

// NewPayloadTooLargeError builds the size-ceiling error.
func NewPayloadTooLargeError(totalBytes int) *errx.Error {
	return dispatchErrors.New(ErrPayloadTooLarge).
		WithDetail("total_bytes", totalBytes).
		WithDetail("limit_bytes", MaxBinaryBytes)
}

// NewGatewayFailedError wraps a gateway failure on an atomic send path.
func NewGatewayFailedError(cause error) *errx.Error {
	return dispatchErrors.NewWithCause(ErrGatewayFailed, cause)
}

// NewLogWriteError wraps an audit-log persistence failure.
func NewLogWriteError(cause error) *errx.Error {
	return dispatchErrors.NewWithCause(ErrLogWrite, cause)
}

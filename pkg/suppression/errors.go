package suppression

import "github.com/postwave/postwave/pkg/errx"

var suppressionErrors = errx.NewRegistry("SUPPRESSION")

var (
	ErrStoreUnavailable = suppressionErrors.Register("STORE_UNAVAILABLE", errx.TypeExternal, 503, "Suppression store unavailable")
	ErrInvalidEmail     = suppressionErrors.Register("INVALID_EMAIL", errx.TypeValidation, 400, "A valid email address is required")
)

// NewStoreError wraps a suppression-store failure.
func NewStoreError(cause error) *errx.Error {
	return suppressionErrors.NewWithCause(ErrStoreUnavailable, cause)
}

// NewInvalidEmailError builds the missing/malformed address error.
func NewInvalidEmailError() *errx.Error { return suppressionErrors.New(ErrInvalidEmail) }

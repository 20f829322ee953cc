package copygen

import "github.com/postwave/postwave/pkg/errx"

var copygenErrors = errx.NewRegistry("COPYGEN")

var (
	ErrGenerationFailed = copygenErrors.Register("GENERATION_FAILED", errx.TypeExternal, 502, "Email copy generation failed")
	ErrEmptyResponse    = copygenErrors.Register("EMPTY_RESPONSE", errx.TypeExternal, 502, "The model returned no content")
)

// NewGenerationFailedError wraps a provider failure.
func NewGenerationFailedError(cause error) *errx.Error {
	return copygenErrors.NewWithCause(ErrGenerationFailed, cause)
}

// NewEmptyResponseError builds the no-content error.
func NewEmptyResponseError() *errx.Error { return copygenErrors.New(ErrEmptyResponse) }

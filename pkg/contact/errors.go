package contact

import "github.com/postwave/postwave/pkg/errx"

var contactErrors = errx.NewRegistry("CONTACT")

var (
	ErrNotFound      = contactErrors.Register("NOT_FOUND", errx.TypeNotFound, 404, "Contact not found")
	ErrInvalidImport = contactErrors.Register("INVALID_IMPORT", errx.TypeValidation, 400, "Import file could not be parsed")
)

// NewNotFoundError builds the missing-contact error.
func NewNotFoundError() *errx.Error { return contactErrors.New(ErrNotFound) }

// NewInvalidImportError builds an import parse error with a reason.
func NewInvalidImportError(reason string) *errx.Error {
	return contactErrors.New(ErrInvalidImport).WithDetail("reason", reason)
}

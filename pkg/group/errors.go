package group

import "github.com/postwave/postwave/pkg/errx"

var groupErrors = errx.NewRegistry("GROUP")

var (
	ErrNotFound      = groupErrors.Register("NOT_FOUND", errx.TypeNotFound, 404, "Group not found")
	ErrInvalidMember = groupErrors.Register("INVALID_MEMBER", errx.TypeValidation, 400, "Invalid contact ID or contact not owned by user")
)

// NewNotFoundError builds the missing-group error.
func NewNotFoundError() *errx.Error { return groupErrors.New(ErrNotFound) }

// NewInvalidMemberError builds the foreign/unknown member error.
func NewInvalidMemberError(contactID string) *errx.Error {
	return groupErrors.New(ErrInvalidMember).WithDetail("contact_id", contactID)
}

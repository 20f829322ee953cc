package contact

import (
	"context"

	"github.com/postwave/postwave/pkg/kernel"
)

// Repository is the persistence contract for contacts. Every lookup is
// scoped to the owning user; ids belonging to another user behave as absent.
type Repository interface {
	Save(ctx context.Context, c Contact) error
	Update(ctx context.Context, c Contact) error
	Delete(ctx context.Context, id kernel.ContactID, userID kernel.UserID) error
	FindByID(ctx context.Context, id kernel.ContactID, userID kernel.UserID) (*Contact, error)
	FindByUser(ctx context.Context, userID kernel.UserID) ([]Contact, error)

	// FindByIDs returns the subset of ids that resolve to contacts owned by
	// userID. Missing and foreign ids are dropped, never an error.
	FindByIDs(ctx context.Context, ids []kernel.ContactID, userID kernel.UserID) ([]Contact, error)

	// EmailsByUser returns every contact address the user owns.
	EmailsByUser(ctx context.Context, userID kernel.UserID) ([]string, error)

	// ExistingEmails reports which of the given addresses (compared
	// case-insensitively) the user already has a contact for.
	ExistingEmails(ctx context.Context, userID kernel.UserID, emails []string) (map[string]bool, error)
}

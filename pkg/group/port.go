package group

import (
	"context"

	"github.com/postwave/postwave/pkg/kernel"
)

// Repository is the persistence contract for groups, scoped to the owning
// user like the contact repository.
type Repository interface {
	Save(ctx context.Context, g Group) error
	Update(ctx context.Context, g Group) error
	Delete(ctx context.Context, id kernel.GroupID, userID kernel.UserID) error
	FindByID(ctx context.Context, id kernel.GroupID, userID kernel.UserID) (*Group, error)
	FindByUser(ctx context.Context, userID kernel.UserID) ([]Group, error)

	// AppendMembers adds contact ids to an owned group's membership,
	// skipping ids already present.
	AppendMembers(ctx context.Context, id kernel.GroupID, userID kernel.UserID, members []kernel.ContactID) error
}

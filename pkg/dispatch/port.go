package dispatch

import (
	"context"

	"github.com/postwave/postwave/pkg/kernel"
)

// LogRepository is the persistence contract for email logs.
type LogRepository interface {
	Save(ctx context.Context, log EmailLog) error

	// FindByUser returns the user's logs newest first.
	FindByUser(ctx context.Context, userID kernel.UserID, opts kernel.PaginationOptions) (kernel.Paginated[EmailLog], error)
}

// SuppressionChecker reports whether an address has opted out. A nil
// checker disables suppression filtering entirely.
type SuppressionChecker interface {
	IsSuppressed(ctx context.Context, email string) (bool, error)
}

// Archiver stores a copy of each transmitted raw message. A nil archiver
// disables archiving; archive failures never fail a send.
type Archiver interface {
	Store(ctx context.Context, key string, data []byte) error
}

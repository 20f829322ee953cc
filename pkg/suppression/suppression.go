// Package suppression tracks recipient addresses that opted out of bulk
// email. Suppressed addresses are filtered out of every fan-out send.
package suppression

import "context"

// Store is the suppression-list contract. Addresses are normalized to
// lower case before storage and lookup.
type Store interface {
	// Add marks an address as opted out.
	Add(ctx context.Context, email string) error

	// Remove clears an address's opt-out.
	Remove(ctx context.Context, email string) error

	// IsSuppressed reports whether an address has opted out.
	IsSuppressed(ctx context.Context, email string) (bool, error)
}

// Package contact defines the contact entity and its repository port.
package contact

import (
	"time"

	"github.com/postwave/postwave/pkg/kernel"
)

// Contact is an email recipient owned by exactly one user. Groups reference
// contacts by id but do not own them.
type Contact struct {
	ID        kernel.ContactID `db:"id" json:"id"`
	UserID    kernel.UserID    `db:"user_id" json:"user_id"`
	Name      string           `db:"name" json:"name"`
	Email     string           `db:"email" json:"email"`
	CreatedAt time.Time        `db:"created_at" json:"created_at"`
}

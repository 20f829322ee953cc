// Package group defines the contact-group entity and its repository port.
package group

import (
	"time"

	"github.com/postwave/postwave/pkg/kernel"
)

// Group is a named set of contact references owned by one user. Membership
// is by id only: deleting a contact leaves a stale reference behind, which
// the dispatch resolver filters out at send time.
type Group struct {
	ID         kernel.GroupID     `json:"id"`
	UserID     kernel.UserID      `json:"user_id"`
	Name       string             `json:"group_name"`
	ContactIDs []kernel.ContactID `json:"contact_ids"`
	CreatedAt  time.Time          `json:"created_at"`
}

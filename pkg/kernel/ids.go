// Package kernel holds shared identity types and request context shapes.
package kernel

import "github.com/google/uuid"

// UserID identifies a tenant account. Tenancy in this system is per user:
// a user owns its contacts, groups, and email logs.
type UserID string

func NewUserID() UserID           { return UserID(uuid.NewString()) }
func ParseUserID(s string) UserID { return UserID(s) }
func (u UserID) String() string   { return string(u) }
func (u UserID) IsEmpty() bool    { return string(u) == "" }

// ContactID identifies a contact.
type ContactID string

func NewContactID() ContactID     { return ContactID(uuid.NewString()) }
func (c ContactID) String() string { return string(c) }
func (c ContactID) IsEmpty() bool  { return string(c) == "" }

// ParseContactID validates that s is a well-formed contact identifier.
func ParseContactID(s string) (ContactID, bool) {
	if _, err := uuid.Parse(s); err != nil {
		return "", false
	}
	return ContactID(s), true
}

// GroupID identifies a contact group.
type GroupID string

func NewGroupID() GroupID        { return GroupID(uuid.NewString()) }
func (g GroupID) String() string { return string(g) }
func (g GroupID) IsEmpty() bool  { return string(g) == "" }

// ParseGroupID validates that s is a well-formed group identifier.
func ParseGroupID(s string) (GroupID, bool) {
	if _, err := uuid.Parse(s); err != nil {
		return "", false
	}
	return GroupID(s), true
}

// LogID identifies an email log entry.
type LogID string

func NewLogID() LogID          { return LogID(uuid.NewString()) }
func (l LogID) String() string { return string(l) }

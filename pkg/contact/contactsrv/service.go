// Package contactsrv implements contact CRUD and bulk import.
package contactsrv

import (
	"context"
	"strings"
	"time"

	"github.com/postwave/postwave/pkg/contact"
	"github.com/postwave/postwave/pkg/errx"
	"github.com/postwave/postwave/pkg/group"
	"github.com/postwave/postwave/pkg/kernel"
)

// Service handles contact operations for one request at a time.
type Service struct {
	contacts contact.Repository
	groups   group.Repository
}

// NewService creates the contact service. The group repository is used only
// to attach bulk-created contacts to an existing group.
func NewService(contacts contact.Repository, groups group.Repository) *Service {
	return &Service{contacts: contacts, groups: groups}
}

// CreateInput is the payload for creating one contact.
type CreateInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Create stores a new contact for the user.
func (s *Service) Create(ctx context.Context, userID kernel.UserID, in CreateInput) (*contact.Contact, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, errx.Validation("a valid email is required")
	}

	c := contact.Contact{
		ID:        kernel.NewContactID(),
		UserID:    userID,
		Name:      strings.TrimSpace(in.Name),
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.contacts.Save(ctx, c); err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns all of the user's contacts.
func (s *Service) List(ctx context.Context, userID kernel.UserID) ([]contact.Contact, error) {
	return s.contacts.FindByUser(ctx, userID)
}

// UpdateInput carries optional field updates.
type UpdateInput struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// Update applies the provided fields to an owned contact.
func (s *Service) Update(ctx context.Context, userID kernel.UserID, id kernel.ContactID, in UpdateInput) (*contact.Contact, error) {
	c, err := s.contacts.FindByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		c.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil {
		email := strings.TrimSpace(*in.Email)
		if email == "" || !strings.Contains(email, "@") {
			return nil, errx.Validation("a valid email is required")
		}
		c.Email = email
	}
	if err := s.contacts.Update(ctx, *c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete removes an owned contact. Group memberships referencing the deleted
// contact are left in place; the dispatch resolver filters stale references.
func (s *Service) Delete(ctx context.Context, userID kernel.UserID, id kernel.ContactID) error {
	if _, err := s.contacts.FindByID(ctx, id, userID); err != nil {
		return err
	}
	return s.contacts.Delete(ctx, id, userID)
}

// BulkCreateInput is the payload for bulk contact creation.
type BulkCreateInput struct {
	Contacts []CreateInput `json:"contacts"`
	GroupID  string        `json:"group_id"`
}

// BulkCreateResult summarizes a bulk creation.
type BulkCreateResult struct {
	AddedCount     int `json:"added_count"`
	SkippedCount   int `json:"skipped_count"`
	TotalProcessed int `json:"total_processed"`
}

// BulkCreate inserts contacts the user does not already have (matched by
// address, case-insensitive) and optionally appends the new ids to a group.
func (s *Service) BulkCreate(ctx context.Context, userID kernel.UserID, in BulkCreateInput) (*BulkCreateResult, error) {
	if len(in.Contacts) == 0 {
		return nil, errx.Validation("no contacts provided")
	}

	emails := make([]string, 0, len(in.Contacts))
	for _, c := range in.Contacts {
		emails = append(emails, strings.ToLower(strings.TrimSpace(c.Email)))
	}
	existing, err := s.contacts.ExistingEmails(ctx, userID, emails)
	if err != nil {
		return nil, err
	}

	result := &BulkCreateResult{TotalProcessed: len(in.Contacts)}
	var addedIDs []kernel.ContactID
	seen := make(map[string]bool)

	for _, c := range in.Contacts {
		email := strings.ToLower(strings.TrimSpace(c.Email))
		if email == "" || !strings.Contains(email, "@") || existing[email] || seen[email] {
			result.SkippedCount++
			continue
		}
		seen[email] = true

		nc := contact.Contact{
			ID:        kernel.NewContactID(),
			UserID:    userID,
			Name:      strings.TrimSpace(c.Name),
			Email:     email,
			CreatedAt: time.Now().UTC(),
		}
		if err := s.contacts.Save(ctx, nc); err != nil {
			return nil, err
		}
		addedIDs = append(addedIDs, nc.ID)
		result.AddedCount++
	}

	if in.GroupID != "" && len(addedIDs) > 0 {
		gid, ok := kernel.ParseGroupID(in.GroupID)
		if !ok {
			return nil, errx.Validation("invalid group id")
		}
		if err := s.groups.AppendMembers(ctx, gid, userID, addedIDs); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// Package groupsrv implements group CRUD with member ownership checks.
package groupsrv

import (
	"context"
	"strings"
	"time"

	"github.com/postwave/postwave/pkg/contact"
	"github.com/postwave/postwave/pkg/errx"
	"github.com/postwave/postwave/pkg/group"
	"github.com/postwave/postwave/pkg/kernel"
)

// Service handles group operations.
type Service struct {
	groups   group.Repository
	contacts contact.Repository
}

// NewService creates the group service.
func NewService(groups group.Repository, contacts contact.Repository) *Service {
	return &Service{groups: groups, contacts: contacts}
}

// CreateInput is the payload for creating a group.
type CreateInput struct {
	Name       string   `json:"group_name"`
	ContactIDs []string `json:"contact_ids"`
}

// Create stores a new group after verifying every member belongs to the user.
func (s *Service) Create(ctx context.Context, userID kernel.UserID, in CreateInput) (*group.Group, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, errx.Validation("group_name is required")
	}

	members, err := s.verifyMembers(ctx, userID, in.ContactIDs)
	if err != nil {
		return nil, err
	}

	g := group.Group{
		ID:         kernel.NewGroupID(),
		UserID:     userID,
		Name:       strings.TrimSpace(in.Name),
		ContactIDs: members,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.groups.Save(ctx, g); err != nil {
		return nil, err
	}
	return &g, nil
}

// List returns all of the user's groups.
func (s *Service) List(ctx context.Context, userID kernel.UserID) ([]group.Group, error) {
	return s.groups.FindByUser(ctx, userID)
}

// Get returns one owned group.
func (s *Service) Get(ctx context.Context, userID kernel.UserID, id kernel.GroupID) (*group.Group, error) {
	return s.groups.FindByID(ctx, id, userID)
}

// UpdateInput carries optional field updates.
type UpdateInput struct {
	Name       *string   `json:"group_name"`
	ContactIDs *[]string `json:"contact_ids"`
}

// Update renames a group and/or replaces its membership. A replacement
// membership is ownership-checked in full before anything is written.
func (s *Service) Update(ctx context.Context, userID kernel.UserID, id kernel.GroupID, in UpdateInput) (*group.Group, error) {
	g, err := s.groups.FindByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) != "" {
		g.Name = strings.TrimSpace(*in.Name)
	}
	if in.ContactIDs != nil {
		members, err := s.verifyMembers(ctx, userID, *in.ContactIDs)
		if err != nil {
			return nil, err
		}
		g.ContactIDs = members
	}
	if err := s.groups.Update(ctx, *g); err != nil {
		return nil, err
	}
	return g, nil
}

// Delete removes an owned group. Member contacts are untouched.
func (s *Service) Delete(ctx context.Context, userID kernel.UserID, id kernel.GroupID) error {
	if _, err := s.groups.FindByID(ctx, id, userID); err != nil {
		return err
	}
	return s.groups.Delete(ctx, id, userID)
}

// verifyMembers parses the raw ids and checks each resolves to a contact
// owned by the user. Unlike dispatch-time resolution, membership writes are
// strict: one bad id fails the whole request.
func (s *Service) verifyMembers(ctx context.Context, userID kernel.UserID, raw []string) ([]kernel.ContactID, error) {
	ids := make([]kernel.ContactID, 0, len(raw))
	for _, r := range raw {
		id, ok := kernel.ParseContactID(r)
		if !ok {
			return nil, group.NewInvalidMemberError(r)
		}
		ids = append(ids, id)
	}

	owned, err := s.contacts.FindByIDs(ctx, ids, userID)
	if err != nil {
		return nil, err
	}
	ownedSet := make(map[kernel.ContactID]bool, len(owned))
	for _, c := range owned {
		ownedSet[c.ID] = true
	}
	for _, id := range ids {
		if !ownedSet[id] {
			return nil, group.NewInvalidMemberError(id.String())
		}
	}
	return ids, nil
}

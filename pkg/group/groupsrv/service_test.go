package groupsrv_test

import (
	"context"
	"testing"

	"github.com/postwave/postwave/pkg/contact"
	"github.com/postwave/postwave/pkg/group"
	"github.com/postwave/postwave/pkg/group/groupsrv"
	"github.com/postwave/postwave/pkg/kernel"
)

const (
	testUser  = kernel.UserID("11111111-1111-1111-1111-111111111111")
	otherUser = kernel.UserID("22222222-2222-2222-2222-222222222222")
)

type memContactRepo struct {
	contacts []contact.Contact
}

func (r *memContactRepo) Save(ctx context.Context, c contact.Contact) error   { return nil }
func (r *memContactRepo) Update(ctx context.Context, c contact.Contact) error { return nil }
func (r *memContactRepo) Delete(ctx context.Context, id kernel.ContactID, userID kernel.UserID) error {
	return nil
}
func (r *memContactRepo) FindByID(ctx context.Context, id kernel.ContactID, userID kernel.UserID) (*contact.Contact, error) {
	return nil, contact.NewNotFoundError()
}
func (r *memContactRepo) FindByUser(ctx context.Context, userID kernel.UserID) ([]contact.Contact, error) {
	return nil, nil
}
func (r *memContactRepo) FindByIDs(ctx context.Context, ids []kernel.ContactID, userID kernel.UserID) ([]contact.Contact, error) {
	var out []contact.Contact
	for _, id := range ids {
		for _, c := range r.contacts {
			if c.ID == id && c.UserID == userID {
				out = append(out, c)
			}
		}
	}
	return out, nil
}
func (r *memContactRepo) EmailsByUser(ctx context.Context, userID kernel.UserID) ([]string, error) {
	return nil, nil
}
func (r *memContactRepo) ExistingEmails(ctx context.Context, userID kernel.UserID, emails []string) (map[string]bool, error) {
	return nil, nil
}

type memGroupRepo struct {
	groups []group.Group
}

func (r *memGroupRepo) Save(ctx context.Context, g group.Group) error {
	r.groups = append(r.groups, g)
	return nil
}
func (r *memGroupRepo) Update(ctx context.Context, g group.Group) error { return nil }
func (r *memGroupRepo) Delete(ctx context.Context, id kernel.GroupID, userID kernel.UserID) error {
	return nil
}
func (r *memGroupRepo) FindByID(ctx context.Context, id kernel.GroupID, userID kernel.UserID) (*group.Group, error) {
	for _, g := range r.groups {
		if g.ID == id && g.UserID == userID {
			return &g, nil
		}
	}
	return nil, group.NewNotFoundError()
}
func (r *memGroupRepo) FindByUser(ctx context.Context, userID kernel.UserID) ([]group.Group, error) {
	return r.groups, nil
}
func (r *memGroupRepo) AppendMembers(ctx context.Context, id kernel.GroupID, userID kernel.UserID, members []kernel.ContactID) error {
	return nil
}

func TestCreateVerifiesMemberOwnership(t *testing.T) {
	owned := contact.Contact{ID: kernel.NewContactID(), UserID: testUser, Email: "a@example.com"}
	foreign := contact.Contact{ID: kernel.NewContactID(), UserID: otherUser, Email: "f@example.com"}
	contacts := &memContactRepo{contacts: []contact.Contact{owned, foreign}}
	groups := &memGroupRepo{}
	svc := groupsrv.NewService(groups, contacts)

	g, err := svc.Create(context.Background(), testUser, groupsrv.CreateInput{
		Name:       "Customers",
		ContactIDs: []string{owned.ID.String()},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if len(g.ContactIDs) != 1 || g.ContactIDs[0] != owned.ID {
		t.Fatalf("ContactIDs = %v", g.ContactIDs)
	}

	// One foreign member fails the whole request.
	_, err = svc.Create(context.Background(), testUser, groupsrv.CreateInput{
		Name:       "Mixed",
		ContactIDs: []string{owned.ID.String(), foreign.ID.String()},
	})
	if err == nil {
		t.Fatal("Create() accepted a member owned by another user")
	}
	if len(groups.groups) != 1 {
		t.Fatalf("stored groups = %d, want 1", len(groups.groups))
	}
}

func TestCreateRejectsMalformedMemberID(t *testing.T) {
	svc := groupsrv.NewService(&memGroupRepo{}, &memContactRepo{})
	_, err := svc.Create(context.Background(), testUser, groupsrv.CreateInput{
		Name:       "Bad",
		ContactIDs: []string{"not-a-uuid"},
	})
	if err == nil {
		t.Fatal("Create() accepted malformed member id")
	}
}

func TestCreateRequiresName(t *testing.T) {
	svc := groupsrv.NewService(&memGroupRepo{}, &memContactRepo{})
	if _, err := svc.Create(context.Background(), testUser, groupsrv.CreateInput{Name: "  "}); err == nil {
		t.Fatal("Create() accepted blank name")
	}
}

func TestUpdateReplacesMembershipAtomically(t *testing.T) {
	owned := contact.Contact{ID: kernel.NewContactID(), UserID: testUser, Email: "a@example.com"}
	contacts := &memContactRepo{contacts: []contact.Contact{owned}}
	groups := &memGroupRepo{}
	svc := groupsrv.NewService(groups, contacts)

	g, err := svc.Create(context.Background(), testUser, groupsrv.CreateInput{Name: "G"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	replacement := []string{owned.ID.String()}
	updated, err := svc.Update(context.Background(), testUser, g.ID, groupsrv.UpdateInput{
		ContactIDs: &replacement,
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if len(updated.ContactIDs) != 1 || updated.ContactIDs[0] != owned.ID {
		t.Fatalf("ContactIDs = %v", updated.ContactIDs)
	}

	bad := []string{kernel.NewContactID().String()}
	if _, err := svc.Update(context.Background(), testUser, g.ID, groupsrv.UpdateInput{
		ContactIDs: &bad,
	}); err == nil {
		t.Fatal("Update() accepted unknown member id")
	}
}

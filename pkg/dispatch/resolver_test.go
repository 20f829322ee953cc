package dispatch_test

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/postwave/postwave/pkg/contact"
	"github.com/postwave/postwave/pkg/dispatch"
	"github.com/postwave/postwave/pkg/errx"
	"github.com/postwave/postwave/pkg/group"
	"github.com/postwave/postwave/pkg/kernel"
)

// fakeContactRepo holds contacts in memory, scoped by owner like the real
// repository.
type fakeContactRepo struct {
	contacts []contact.Contact
}

func (r *fakeContactRepo) Save(ctx context.Context, c contact.Contact) error {
	r.contacts = append(r.contacts, c)
	return nil
}

func (r *fakeContactRepo) Update(ctx context.Context, c contact.Contact) error { return nil }

func (r *fakeContactRepo) Delete(ctx context.Context, id kernel.ContactID, userID kernel.UserID) error {
	return nil
}

func (r *fakeContactRepo) FindByID(ctx context.Context, id kernel.ContactID, userID kernel.UserID) (*contact.Contact, error) {
	for _, c := range r.contacts {
		if c.ID == id && c.UserID == userID {
			return &c, nil
		}
	}
	return nil, contact.NewNotFoundError()
}

func (r *fakeContactRepo) FindByUser(ctx context.Context, userID kernel.UserID) ([]contact.Contact, error) {
	var out []contact.Contact
	for _, c := range r.contacts {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeContactRepo) FindByIDs(ctx context.Context, ids []kernel.ContactID, userID kernel.UserID) ([]contact.Contact, error) {
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

func (r *fakeContactRepo) EmailsByUser(ctx context.Context, userID kernel.UserID) ([]string, error) {
	var out []string
	for _, c := range r.contacts {
		if c.UserID == userID {
			out = append(out, c.Email)
		}
	}
	return out, nil
}

func (r *fakeContactRepo) ExistingEmails(ctx context.Context, userID kernel.UserID, emails []string) (map[string]bool, error) {
	out := make(map[string]bool)
	for _, c := range r.contacts {
		if c.UserID == userID {
			out[strings.ToLower(c.Email)] = true
		}
	}
	kept := make(map[string]bool)
	for _, e := range emails {
		if out[strings.ToLower(e)] {
			kept[strings.ToLower(e)] = true
		}
	}
	return kept, nil
}

// fakeGroupRepo holds groups in memory.
type fakeGroupRepo struct {
	groups []group.Group
}

func (r *fakeGroupRepo) Save(ctx context.Context, g group.Group) error {
	r.groups = append(r.groups, g)
	return nil
}

func (r *fakeGroupRepo) Update(ctx context.Context, g group.Group) error { return nil }

func (r *fakeGroupRepo) Delete(ctx context.Context, id kernel.GroupID, userID kernel.UserID) error {
	return nil
}

func (r *fakeGroupRepo) FindByID(ctx context.Context, id kernel.GroupID, userID kernel.UserID) (*group.Group, error) {
	for _, g := range r.groups {
		if g.ID == id && g.UserID == userID {
			return &g, nil
		}
	}
	return nil, group.NewNotFoundError()
}

func (r *fakeGroupRepo) FindByUser(ctx context.Context, userID kernel.UserID) ([]group.Group, error) {
	return r.groups, nil
}

func (r *fakeGroupRepo) AppendMembers(ctx context.Context, id kernel.GroupID, userID kernel.UserID, members []kernel.ContactID) error {
	return nil
}

const (
	testUser  = kernel.UserID("11111111-1111-1111-1111-111111111111")
	otherUser = kernel.UserID("22222222-2222-2222-2222-222222222222")
)

func seedContact(repo *fakeContactRepo, userID kernel.UserID, email string) kernel.ContactID {
	id := kernel.NewContactID()
	repo.contacts = append(repo.contacts, contact.Contact{ID: id, UserID: userID, Email: email})
	return id
}

func seedGroup(repo *fakeGroupRepo, userID kernel.UserID, members ...kernel.ContactID) kernel.GroupID {
	id := kernel.NewGroupID()
	repo.groups = append(repo.groups, group.Group{ID: id, UserID: userID, ContactIDs: members})
	return id
}

func TestResolveDeduplicatesAcrossSources(t *testing.T) {
	contacts := &fakeContactRepo{}
	groups := &fakeGroupRepo{}
	cid := seedContact(contacts, testUser, "Alice@Example.com")
	gid := seedGroup(groups, testUser, cid)

	r := dispatch.NewResolver(contacts, groups)
	got, err := r.Resolve(context.Background(), testUser, dispatch.AddressSpec{
		Explicit: []string{"alice@example.com", "ALICE@EXAMPLE.COM", "bob@example.com"},
		GroupIDs: []string{gid.String()},
	})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	want := []string{"alice@example.com", "bob@example.com"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Resolve() = %v, want %v", got, want)
	}
}

func TestResolveAllSentinelExpandsToEveryContact(t *testing.T) {
	contacts := &fakeContactRepo{}
	groups := &fakeGroupRepo{}
	seedContact(contacts, testUser, "a@example.com")
	seedContact(contacts, testUser, "b@example.com")
	seedContact(contacts, otherUser, "foreign@example.com")

	r := dispatch.NewResolver(contacts, groups)

	for _, sentinel := range []string{"ALL", "all", "All"} {
		got, err := r.Resolve(context.Background(), testUser, dispatch.AddressSpec{
			Explicit: []string{"ignored@example.com", sentinel},
		})
		if err != nil {
			t.Fatalf("Resolve(%q) error = %v", sentinel, err)
		}
		want := []string{"a@example.com", "b@example.com"}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("Resolve(%q) = %v, want %v", sentinel, got, want)
		}
	}
}

func TestResolveSendToAllFlag(t *testing.T) {
	contacts := &fakeContactRepo{}
	groups := &fakeGroupRepo{}
	seedContact(contacts, testUser, "a@example.com")

	r := dispatch.NewResolver(contacts, groups)
	got, err := r.Resolve(context.Background(), testUser, dispatch.AddressSpec{SendToAll: true})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if len(got) != 1 || got[0] != "a@example.com" {
		t.Fatalf("Resolve() = %v", got)
	}
}

func TestResolveSkipsBadGroupIDs(t *testing.T) {
	contacts := &fakeContactRepo{}
	groups := &fakeGroupRepo{}
	cid := seedContact(contacts, testUser, "member@example.com")
	gid := seedGroup(groups, testUser, cid)
	foreign := seedGroup(groups, otherUser, seedContact(contacts, otherUser, "foreign@example.com"))

	r := dispatch.NewResolver(contacts, groups)
	got, err := r.Resolve(context.Background(), testUser, dispatch.AddressSpec{
		GroupIDs: []string{
			"not-a-uuid",
			kernel.NewGroupID().String(), // unknown
			foreign.String(),
			gid.String(),
		},
	})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	want := []string{"member@example.com"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Resolve() = %v, want %v", got, want)
	}
}

func TestResolveFiltersStaleGroupMembers(t *testing.T) {
	contacts := &fakeContactRepo{}
	groups := &fakeGroupRepo{}
	cid := seedContact(contacts, testUser, "kept@example.com")
	stale := kernel.NewContactID()
	gid := seedGroup(groups, testUser, cid, stale)

	r := dispatch.NewResolver(contacts, groups)
	got, err := r.Resolve(context.Background(), testUser, dispatch.AddressSpec{
		GroupIDs: []string{gid.String()},
	})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if len(got) != 1 || got[0] != "kept@example.com" {
		t.Fatalf("Resolve() = %v", got)
	}
}

// brokenGroupRepo fails every lookup the way a dead database would.
type brokenGroupRepo struct {
	fakeGroupRepo
	err error
}

func (r *brokenGroupRepo) FindByID(ctx context.Context, id kernel.GroupID, userID kernel.UserID) (*group.Group, error) {
	return nil, r.err
}

func TestResolvePropagatesGroupStoreFailure(t *testing.T) {
	contacts := &fakeContactRepo{}
	seedContact(contacts, testUser, "a@example.com")
	storeErr := errors.New("connection refused")
	groups := &brokenGroupRepo{err: storeErr}

	r := dispatch.NewResolver(contacts, groups)
	_, err := r.Resolve(context.Background(), testUser, dispatch.AddressSpec{
		Explicit: []string{"a@example.com"},
		GroupIDs: []string{kernel.NewGroupID().String()},
	})
	if !errors.Is(err, storeErr) {
		t.Fatalf("Resolve() error = %v, want the store failure", err)
	}
}

func TestResolveEmptySetIsAnError(t *testing.T) {
	r := dispatch.NewResolver(&fakeContactRepo{}, &fakeGroupRepo{})

	_, err := r.Resolve(context.Background(), testUser, dispatch.AddressSpec{
		Explicit: []string{"", "  "},
		GroupIDs: []string{"not-a-uuid"},
	})
	if err == nil {
		t.Fatal("Resolve() expected error, got nil")
	}
	if !errx.IsCode(err, dispatch.ErrNoRecipients) {
		t.Fatalf("Resolve() error = %v, want NO_RECIPIENTS", err)
	}
}

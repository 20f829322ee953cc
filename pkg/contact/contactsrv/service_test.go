package contactsrv_test

import (
	"context"
	"strings"
	"testing"

	"github.com/postwave/postwave/pkg/contact"
	"github.com/postwave/postwave/pkg/contact/contactsrv"
	"github.com/postwave/postwave/pkg/group"
	"github.com/postwave/postwave/pkg/kernel"
)

const testUser = kernel.UserID("11111111-1111-1111-1111-111111111111")

type memContactRepo struct {
	contacts []contact.Contact
}

func (r *memContactRepo) Save(ctx context.Context, c contact.Contact) error {
	r.contacts = append(r.contacts, c)
	return nil
}

func (r *memContactRepo) Update(ctx context.Context, c contact.Contact) error { return nil }

func (r *memContactRepo) Delete(ctx context.Context, id kernel.ContactID, userID kernel.UserID) error {
	return nil
}

func (r *memContactRepo) FindByID(ctx context.Context, id kernel.ContactID, userID kernel.UserID) (*contact.Contact, error) {
	for _, c := range r.contacts {
		if c.ID == id && c.UserID == userID {
			return &c, nil
		}
	}
	return nil, contact.NewNotFoundError()
}

func (r *memContactRepo) FindByUser(ctx context.Context, userID kernel.UserID) ([]contact.Contact, error) {
	return r.contacts, nil
}

func (r *memContactRepo) FindByIDs(ctx context.Context, ids []kernel.ContactID, userID kernel.UserID) ([]contact.Contact, error) {
	return nil, nil
}

func (r *memContactRepo) EmailsByUser(ctx context.Context, userID kernel.UserID) ([]string, error) {
	return nil, nil
}

func (r *memContactRepo) ExistingEmails(ctx context.Context, userID kernel.UserID, emails []string) (map[string]bool, error) {
	have := make(map[string]bool)
	for _, c := range r.contacts {
		if c.UserID == userID {
			have[strings.ToLower(c.Email)] = true
		}
	}
	out := make(map[string]bool)
	for _, e := range emails {
		if have[strings.ToLower(e)] {
			out[strings.ToLower(e)] = true
		}
	}
	return out, nil
}

type memGroupRepo struct {
	appended map[kernel.GroupID][]kernel.ContactID
}

func (r *memGroupRepo) Save(ctx context.Context, g group.Group) error   { return nil }
func (r *memGroupRepo) Update(ctx context.Context, g group.Group) error { return nil }
func (r *memGroupRepo) Delete(ctx context.Context, id kernel.GroupID, userID kernel.UserID) error {
	return nil
}
func (r *memGroupRepo) FindByID(ctx context.Context, id kernel.GroupID, userID kernel.UserID) (*group.Group, error) {
	return nil, group.NewNotFoundError()
}
func (r *memGroupRepo) FindByUser(ctx context.Context, userID kernel.UserID) ([]group.Group, error) {
	return nil, nil
}
func (r *memGroupRepo) AppendMembers(ctx context.Context, id kernel.GroupID, userID kernel.UserID, members []kernel.ContactID) error {
	if r.appended == nil {
		r.appended = make(map[kernel.GroupID][]kernel.ContactID)
	}
	r.appended[id] = append(r.appended[id], members...)
	return nil
}

func TestBulkCreateSkipsDuplicates(t *testing.T) {
	contacts := &memContactRepo{contacts: []contact.Contact{
		{ID: kernel.NewContactID(), UserID: testUser, Email: "existing@example.com"},
	}}
	svc := contactsrv.NewService(contacts, &memGroupRepo{})

	result, err := svc.BulkCreate(context.Background(), testUser, contactsrv.BulkCreateInput{
		Contacts: []contactsrv.CreateInput{
			{Name: "New", Email: "new@example.com"},
			{Name: "Dup", Email: "EXISTING@example.com"},
			{Name: "InBatchDup", Email: "new@example.com"},
			{Name: "Bad", Email: "not-an-email"},
		},
	})
	if err != nil {
		t.Fatalf("BulkCreate() error = %v", err)
	}
	if result.AddedCount != 1 || result.SkippedCount != 3 || result.TotalProcessed != 4 {
		t.Fatalf("result = %+v, want 1 added / 3 skipped / 4 processed", result)
	}
	if len(contacts.contacts) != 2 {
		t.Fatalf("stored = %d contacts, want 2", len(contacts.contacts))
	}
}

func TestBulkCreateAppendsNewContactsToGroup(t *testing.T) {
	contacts := &memContactRepo{}
	groups := &memGroupRepo{}
	svc := contactsrv.NewService(contacts, groups)

	gid := kernel.NewGroupID()
	result, err := svc.BulkCreate(context.Background(), testUser, contactsrv.BulkCreateInput{
		Contacts: []contactsrv.CreateInput{
			{Name: "A", Email: "a@example.com"},
			{Name: "B", Email: "b@example.com"},
		},
		GroupID: gid.String(),
	})
	if err != nil {
		t.Fatalf("BulkCreate() error = %v", err)
	}
	if result.AddedCount != 2 {
		t.Fatalf("added = %d, want 2", result.AddedCount)
	}
	if got := len(groups.appended[gid]); got != 2 {
		t.Fatalf("group members appended = %d, want 2", got)
	}
}

func TestBulkCreateRejectsEmptyInput(t *testing.T) {
	svc := contactsrv.NewService(&memContactRepo{}, &memGroupRepo{})
	if _, err := svc.BulkCreate(context.Background(), testUser, contactsrv.BulkCreateInput{}); err == nil {
		t.Fatal("BulkCreate() expected error for empty input")
	}
}

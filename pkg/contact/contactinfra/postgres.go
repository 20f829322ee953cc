// Package contactinfra provides the Postgres contact repository and the
// Fiber handlers for the contact routes.
package contactinfra

import (
	"context"
	"database/sql"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/postwave/postwave/pkg/contact"
	"github.com/postwave/postwave/pkg/errx"
	"github.com/postwave/postwave/pkg/kernel"
)

// PostgresContactRepository is the Postgres implementation of contact.Repository.
type PostgresContactRepository struct {
	db *sqlx.DB
}

// NewPostgresContactRepository creates the repository.
func NewPostgresContactRepository(db *sqlx.DB) contact.Repository {
	return &PostgresContactRepository{db: db}
}

// Save inserts a new contact.
func (r *PostgresContactRepository) Save(ctx context.Context, c contact.Contact) error {
	query := `
		INSERT INTO contacts (id, user_id, name, email, created_at)
		VALUES (:id, :user_id, :name, :email, :created_at)`

	_, err := r.db.NamedExecContext(ctx, query, c)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" { // unique_violation
			return errx.Conflict("contact with this email already exists")
		}
		return errx.Wrap(err, "failed to save contact", errx.TypeInternal).
			WithDetail("contact_id", c.ID.String())
	}
	return nil
}

// Update rewrites the mutable fields of an owned contact.
func (r *PostgresContactRepository) Update(ctx context.Context, c contact.Contact) error {
	query := `UPDATE contacts SET name = :name, email = :email WHERE id = :id AND user_id = :user_id`

	result, err := r.db.NamedExecContext(ctx, query, c)
	if err != nil {
		return errx.Wrap(err, "failed to update contact", errx.TypeInternal)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return contact.NewNotFoundError()
	}
	return nil
}

// Delete removes an owned contact.
func (r *PostgresContactRepository) Delete(ctx context.Context, id kernel.ContactID, userID kernel.UserID) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM contacts WHERE id = $1 AND user_id = $2`, id.String(), userID.String())
	if err != nil {
		return errx.Wrap(err, "failed to delete contact", errx.TypeInternal)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return contact.NewNotFoundError()
	}
	return nil
}

// FindByID looks up an owned contact.
func (r *PostgresContactRepository) FindByID(ctx context.Context, id kernel.ContactID, userID kernel.UserID) (*contact.Contact, error) {
	var c contact.Contact
	query := `SELECT * FROM contacts WHERE id = $1 AND user_id = $2`
	err := r.db.GetContext(ctx, &c, query, id.String(), userID.String())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, contact.NewNotFoundError()
		}
		return nil, errx.Wrap(err, "failed to find contact", errx.TypeInternal)
	}
	return &c, nil
}

// FindByUser returns all of the user's contacts, newest first.
func (r *PostgresContactRepository) FindByUser(ctx context.Context, userID kernel.UserID) ([]contact.Contact, error) {
	var contacts []contact.Contact
	query := `SELECT * FROM contacts WHERE user_id = $1 ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &contacts, query, userID.String()); err != nil {
		return nil, errx.Wrap(err, "failed to list contacts", errx.TypeInternal)
	}
	return contacts, nil
}

// FindByIDs returns the owned contacts among ids; missing or foreign ids
// are silently dropped.
func (r *PostgresContactRepository) FindByIDs(ctx context.Context, ids []kernel.ContactID, userID kernel.UserID) ([]contact.Contact, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	raw := make([]string, len(ids))
	for i, id := range ids {
		raw[i] = id.String()
	}

	var contacts []contact.Contact
	query := `SELECT * FROM contacts WHERE id = ANY($1) AND user_id = $2`
	if err := r.db.SelectContext(ctx, &contacts, query, pq.Array(raw), userID.String()); err != nil {
		return nil, errx.Wrap(err, "failed to find contacts by ids", errx.TypeInternal)
	}
	return contacts, nil
}

// EmailsByUser returns every contact address the user owns.
func (r *PostgresContactRepository) EmailsByUser(ctx context.Context, userID kernel.UserID) ([]string, error) {
	var emails []string
	query := `SELECT email FROM contacts WHERE user_id = $1`
	if err := r.db.SelectContext(ctx, &emails, query, userID.String()); err != nil {
		return nil, errx.Wrap(err, "failed to list contact emails", errx.TypeInternal)
	}
	return emails, nil
}

// ExistingEmails reports which addresses the user already has, keyed by
// lower-cased address.
func (r *PostgresContactRepository) ExistingEmails(ctx context.Context, userID kernel.UserID, emails []string) (map[string]bool, error) {
	out := make(map[string]bool, len(emails))
	if len(emails) == 0 {
		return out, nil
	}
	lowered := make([]string, len(emails))
	for i, e := range emails {
		lowered[i] = strings.ToLower(e)
	}

	var found []string
	query := `SELECT lower(email) FROM contacts WHERE user_id = $1 AND lower(email) = ANY($2)`
	if err := r.db.SelectContext(ctx, &found, query, userID.String(), pq.Array(lowered)); err != nil {
		return nil, errx.Wrap(err, "failed to check existing emails", errx.TypeInternal)
	}
	for _, e := range found {
		out[e] = true
	}
	return out, nil
}

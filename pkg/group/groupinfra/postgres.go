// Package groupinfra provides the Postgres group repository and the Fiber
// handlers for the group routes.
package groupinfra

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/postwave/postwave/pkg/errx"
	"github.com/postwave/postwave/pkg/group"
	"github.com/postwave/postwave/pkg/kernel"
)

// PostgresGroupRepository is the Postgres implementation of group.Repository.
// Membership is stored as a text[] of contact ids; stale references (deleted
// contacts) stay in the array and are filtered at dispatch resolution.
type PostgresGroupRepository struct {
	db *sqlx.DB
}

// NewPostgresGroupRepository creates the repository.
func NewPostgresGroupRepository(db *sqlx.DB) group.Repository {
	return &PostgresGroupRepository{db: db}
}

type groupRow struct {
	ID         string         `db:"id"`
	UserID     string         `db:"user_id"`
	Name       string         `db:"name"`
	ContactIDs pq.StringArray `db:"contact_ids"`
	CreatedAt  time.Time      `db:"created_at"`
}

func toRow(g group.Group) groupRow {
	ids := make(pq.StringArray, len(g.ContactIDs))
	for i, id := range g.ContactIDs {
		ids[i] = id.String()
	}
	return groupRow{
		ID:         g.ID.String(),
		UserID:     g.UserID.String(),
		Name:       g.Name,
		ContactIDs: ids,
		CreatedAt:  g.CreatedAt,
	}
}

func toDomain(r groupRow) group.Group {
	ids := make([]kernel.ContactID, len(r.ContactIDs))
	for i, id := range r.ContactIDs {
		ids[i] = kernel.ContactID(id)
	}
	return group.Group{
		ID:         kernel.GroupID(r.ID),
		UserID:     kernel.ParseUserID(r.UserID),
		Name:       r.Name,
		ContactIDs: ids,
		CreatedAt:  r.CreatedAt,
	}
}

// Save inserts a new group.
func (r *PostgresGroupRepository) Save(ctx context.Context, g group.Group) error {
	query := `
		INSERT INTO groups (id, user_id, name, contact_ids, created_at)
		VALUES (:id, :user_id, :name, :contact_ids, :created_at)`

	_, err := r.db.NamedExecContext(ctx, query, toRow(g))
	if err != nil {
		return errx.Wrap(err, "failed to save group", errx.TypeInternal).
			WithDetail("group_id", g.ID.String())
	}
	return nil
}

// Update rewrites a group's name and membership.
func (r *PostgresGroupRepository) Update(ctx context.Context, g group.Group) error {
	query := `
		UPDATE groups SET name = :name, contact_ids = :contact_ids
		WHERE id = :id AND user_id = :user_id`

	result, err := r.db.NamedExecContext(ctx, query, toRow(g))
	if err != nil {
		return errx.Wrap(err, "failed to update group", errx.TypeInternal)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return group.NewNotFoundError()
	}
	return nil
}

// Delete removes an owned group.
func (r *PostgresGroupRepository) Delete(ctx context.Context, id kernel.GroupID, userID kernel.UserID) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM groups WHERE id = $1 AND user_id = $2`, id.String(), userID.String())
	if err != nil {
		return errx.Wrap(err, "failed to delete group", errx.TypeInternal)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return group.NewNotFoundError()
	}
	return nil
}

// FindByID looks up an owned group.
func (r *PostgresGroupRepository) FindByID(ctx context.Context, id kernel.GroupID, userID kernel.UserID) (*group.Group, error) {
	var row groupRow
	query := `SELECT * FROM groups WHERE id = $1 AND user_id = $2`
	err := r.db.GetContext(ctx, &row, query, id.String(), userID.String())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, group.NewNotFoundError()
		}
		return nil, errx.Wrap(err, "failed to find group", errx.TypeInternal)
	}
	g := toDomain(row)
	return &g, nil
}

// FindByUser returns all of the user's groups, newest first.
func (r *PostgresGroupRepository) FindByUser(ctx context.Context, userID kernel.UserID) ([]group.Group, error) {
	var rows []groupRow
	query := `SELECT * FROM groups WHERE user_id = $1 ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &rows, query, userID.String()); err != nil {
		return nil, errx.Wrap(err, "failed to list groups", errx.TypeInternal)
	}
	groups := make([]group.Group, len(rows))
	for i, row := range rows {
		groups[i] = toDomain(row)
	}
	return groups, nil
}

// AppendMembers adds contact ids not already present to the membership array.
func (r *PostgresGroupRepository) AppendMembers(ctx context.Context, id kernel.GroupID, userID kernel.UserID, members []kernel.ContactID) error {
	if len(members) == 0 {
		return nil
	}
	raw := make(pq.StringArray, len(members))
	for i, m := range members {
		raw[i] = m.String()
	}

	query := `
		UPDATE groups
		SET contact_ids = contact_ids || (
			SELECT COALESCE(array_agg(m), '{}') FROM unnest($3::text[]) AS m
			WHERE NOT m = ANY(contact_ids)
		)
		WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, id.String(), userID.String(), raw)
	if err != nil {
		return errx.Wrap(err, "failed to append group members", errx.TypeInternal)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return group.NewNotFoundError()
	}
	return nil
}

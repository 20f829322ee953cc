// Package authinfra provides the Postgres user repository and the Fiber
// handlers for the auth routes.
package authinfra

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/postwave/postwave/pkg/errx"
	"github.com/postwave/postwave/pkg/iam/auth"
	"github.com/postwave/postwave/pkg/kernel"
)

// PostgresUserRepository is the Postgres implementation of auth.UserRepository.
type PostgresUserRepository struct {
	db *sqlx.DB
}

// NewPostgresUserRepository creates the repository.
func NewPostgresUserRepository(db *sqlx.DB) auth.UserRepository {
	return &PostgresUserRepository{db: db}
}

// Save inserts a new user.
func (r *PostgresUserRepository) Save(ctx context.Context, user auth.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, name, company_name, phone, created_at)
		VALUES (:id, :email, :password_hash, :name, :company_name, :phone, :created_at)`

	_, err := r.db.NamedExecContext(ctx, query, user)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" { // unique_violation
			return auth.NewEmailTakenError()
		}
		return errx.Wrap(err, "failed to save user", errx.TypeInternal).
			WithDetail("user_id", user.ID.String())
	}
	return nil
}

// FindByID looks up a user by id.
func (r *PostgresUserRepository) FindByID(ctx context.Context, id kernel.UserID) (*auth.User, error) {
	var user auth.User
	query := `SELECT * FROM users WHERE id = $1`
	err := r.db.GetContext(ctx, &user, query, id.String())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, auth.NewUserNotFoundError()
		}
		return nil, errx.Wrap(err, "failed to find user by id", errx.TypeInternal)
	}
	return &user, nil
}

// FindByEmail looks up a user by email.
func (r *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	var user auth.User
	query := `SELECT * FROM users WHERE email = $1`
	err := r.db.GetContext(ctx, &user, query, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, auth.NewUserNotFoundError()
		}
		return nil, errx.Wrap(err, "failed to find user by email", errx.TypeInternal)
	}
	return &user, nil
}

// Package migrations holds the embedded schema migrations and applies any
// that are pending on startup.
package migrations

import (
	"embed"
	"errors"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"github.com/postwave/postwave/pkg/errx"
)

//go:embed *.sql
var files embed.FS

// Apply runs all pending up migrations against db. A database already at
// the latest version is not an error.
func Apply(db *sqlx.DB) error {
	driver, err := postgres.WithInstance(db.DB, &postgres.Config{})
	if err != nil {
		return errx.Wrap(err, "failed to create migration driver", errx.TypeInternal)
	}
	source, err := iofs.New(files, ".")
	if err != nil {
		return errx.Wrap(err, "failed to load embedded migrations", errx.TypeInternal)
	}
	instance, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return errx.Wrap(err, "failed to create migrate instance", errx.TypeInternal)
	}
	if err := instance.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return errx.Wrap(err, "failed to apply migrations", errx.TypeInternal)
	}
	return nil
}

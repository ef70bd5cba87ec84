// Package dbpkg provides helpers to make db initialization and migration easier.
package dbpkg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	// Registers the postgres and postgresql database URL schemes.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	// Registers the file:// source for externally supplied migrations.
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/go-petr/atm-ledger/db"
)

// SQLInterface provides neccessary db methods to perform queries.
//
// Both *sql.DB and *sql.Tx satisfy it, so repositories can be bound to a
// transaction.
type SQLInterface interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	PrepareContext(context.Context, string) (*sql.Stmt, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

// Setup sets up connection with database.
func Setup(driver, source string) (*sql.DB, error) {
	conn, err := sql.Open(driver, source)
	if err != nil {
		return nil, err
	}

	if err = conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return conn, nil
}

// Migrate applies all pending up migrations to the database at source.
//
// When migrationURL is empty the migrations embedded in the binary are used.
// Having nothing to apply is not an error.
func Migrate(source, migrationURL string) error {
	m, err := newMigrate(source, migrationURL)
	if err != nil {
		return fmt.Errorf("cannot create migrate instance: %w", err)
	}

	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("cannot apply migrations: %w", err)
	}

	return nil
}

func newMigrate(source, migrationURL string) (*migrate.Migrate, error) {
	if migrationURL != "" {
		return migrate.New(migrationURL, source)
	}

	src, err := iofs.New(db.Migrations, db.MigrationsDir)
	if err != nil {
		return nil, err
	}

	return migrate.NewWithSourceInstance("iofs", src, source)
}

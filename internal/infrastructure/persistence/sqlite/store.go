// Package sqlite provides a SQLite implementation of the todo, label and
// user repositories over database/sql with the pure-Go modernc driver. It
// serves the standalone persistent mode and lets the SQL code path run in
// tests without an external database server.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/Flip451/t-rust-book-akifumi-sato/internal/application/label"
	"github.com/Flip451/t-rust-book-akifumi-sato/internal/application/todo"
	"github.com/Flip451/t-rust-book-akifumi-sato/internal/application/user"
	"github.com/Flip451/t-rust-book-akifumi-sato/internal/domain"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Store provides the SQLite implementation of the repository interfaces.
type Store struct {
	db *sql.DB
}

// Compile-time verification of the repository interfaces.
var (
	_ todo.Repository  = (*Store)(nil)
	_ label.Repository = (*LabelStore)(nil)
	_ todo.LabelFinder = (*LabelStore)(nil)
	_ user.Repository  = (*UserStore)(nil)
)

// Open opens (creating if needed) the SQLite database at path, enables
// foreign key enforcement, and applies the embedded migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	// Cascading deletes depend on foreign_keys being on for every
	// connection, so it is set through the DSN rather than a one-off Exec.
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	if err := goose.SetDialect("sqlite3"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set goose dialect: %w", err)
	}
	goose.SetBaseFS(embedMigrations)
	if err := goose.Up(db, "migrations"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Labels returns the label.Repository view over this store.
func (s *Store) Labels() *LabelStore {
	return &LabelStore{s: s}
}

// Users returns the user.Repository view over this store.
func (s *Store) Users() *UserStore {
	return &UserStore{s: s}
}

func parseID(id string) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrInvalidID, err)
	}
	return parsed.String(), nil
}

func checkRowsAffected(res sql.Result, sentinel error, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", sentinel, id)
	}
	return nil
}

// isForeignKeyViolation checks for a SQLite foreign key failure. The
// modernc driver surfaces SQLITE_CONSTRAINT_FOREIGNKEY through the error
// message, which is stable across versions.
func isForeignKeyViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

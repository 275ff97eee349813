// Package postgres provides the PostgreSQL implementation of the todo,
// label and user repositories on top of a pgx connection pool. All statements use
// bound parameters; rows map to domain entities at the package boundary.
package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Flip451/t-rust-book-akifumi-sato/internal/application/label"
	"github.com/Flip451/t-rust-book-akifumi-sato/internal/application/todo"
	"github.com/Flip451/t-rust-book-akifumi-sato/internal/application/user"
	"github.com/Flip451/t-rust-book-akifumi-sato/internal/domain"
)

// Store provides the PostgreSQL implementation of the repository
// interfaces. A single Store serves both entity types; the label side is
// exposed through the Labels view.
type Store struct {
	pool *pgxpool.Pool
}

// Compile-time verification of the repository interfaces.
var (
	_ todo.Repository  = (*Store)(nil)
	_ label.Repository = (*LabelStore)(nil)
	_ todo.LabelFinder = (*LabelStore)(nil)
	_ user.Repository  = (*UserStore)(nil)
)

// NewStore creates a store backed by the given connection pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Close closes the database connection pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

// Labels returns the label.Repository view over this store.
func (s *Store) Labels() *LabelStore {
	return &LabelStore{s: s}
}

// Users returns the user.Repository view over this store.
func (s *Store) Users() *UserStore {
	return &UserStore{s: s}
}

// parseID validates an ID before it is bound into a statement.
func parseID(id string) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrInvalidID, err)
	}
	return parsed.String(), nil
}

// checkRowsAffected validates that an UPDATE/DELETE affected exactly one
// row, mapping zero rows to the entity's not-found sentinel.
func checkRowsAffected(tag pgconn.CommandTag, sentinel error, id string) error {
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", sentinel, id)
	}
	return nil
}

// isForeignKeyViolation checks if an error is a PostgreSQL FK violation,
// optionally scoped to a column.
func isForeignKeyViolation(err error, column string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 23503 is foreign_key_violation
		if pgErr.Code == "23503" {
			if column == "" {
				return true
			}
			return strings.Contains(pgErr.ConstraintName, column) ||
				strings.Contains(pgErr.Message, column)
		}
	}
	return false
}

package user

import (
	"context"

	"github.com/Flip451/t-rust-book-akifumi-sato/internal/domain"
)

// Repository defines storage operations for users.
// Implementations are safe for concurrent use.
type Repository interface {
	// Save inserts or updates a user by ID (upsert semantics).
	Save(ctx context.Context, user *domain.User) error

	// FindByID retrieves a user by its ID.
	// Returns domain.ErrUserNotFound if the user doesn't exist.
	FindByID(ctx context.Context, id string) (*domain.User, error)

	// FindByName retrieves a user by exact name, for the uniqueness
	// check. Returns domain.ErrUserNotFound if no user holds the name.
	FindByName(ctx context.Context, name string) (*domain.User, error)

	// FindAll retrieves every user. Ordering is implementation-defined.
	FindAll(ctx context.Context) ([]*domain.User, error)

	// Delete removes a user by ID.
	// Returns domain.ErrUserNotFound if nothing was deleted.
	Delete(ctx context.Context, id string) error
}

package todo

import (
	"context"

	"github.com/Flip451/t-rust-book-akifumi-sato/internal/domain"
)

// Repository defines storage operations for todos.
// Implementations are safe for concurrent use and serialize mutation of
// their own backing store.
type Repository interface {
	// Save inserts or updates a todo by ID (upsert semantics).
	// The write is atomic: either the row and its label associations are
	// all applied, or nothing is.
	Save(ctx context.Context, todo *domain.Todo) error

	// FindByID retrieves a todo by its ID.
	// Returns domain.ErrTodoNotFound if the todo doesn't exist.
	FindByID(ctx context.Context, id string) (*domain.Todo, error)

	// FindAll retrieves every todo. Ordering is implementation-defined
	// and not part of the contract.
	FindAll(ctx context.Context) ([]*domain.Todo, error)

	// Delete removes a todo by ID.
	// The existence check is atomic with the removal; returns
	// domain.ErrTodoNotFound if nothing was deleted.
	Delete(ctx context.Context, id string) error
}

// LabelFinder is the slice of label storage the todo service needs to
// resolve label IDs into full labels when attaching them to a todo.
type LabelFinder interface {
	// FindByID retrieves a label by its ID.
	// Returns domain.ErrLabelNotFound if the label doesn't exist.
	FindByID(ctx context.Context, id string) (*domain.Label, error)
}

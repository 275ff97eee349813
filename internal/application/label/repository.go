package label

import (
	"context"

	"github.com/Flip451/t-rust-book-akifumi-sato/internal/domain"
)

// Repository defines storage operations for labels.
// Implementations are safe for concurrent use.
type Repository interface {
	// Save inserts or updates a label by ID (upsert semantics).
	Save(ctx context.Context, label *domain.Label) error

	// FindByID retrieves a label by its ID.
	// Returns domain.ErrLabelNotFound if the label doesn't exist.
	FindByID(ctx context.Context, id string) (*domain.Label, error)

	// FindAll retrieves every label. Ordering is implementation-defined.
	FindAll(ctx context.Context) ([]*domain.Label, error)

	// Delete removes a label by ID and cascades removal of its todo
	// associations. Returns domain.ErrLabelNotFound if nothing was deleted.
	Delete(ctx context.Context, id string) error
}

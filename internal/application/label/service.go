package label

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Flip451/t-rust-book-akifumi-sato/internal/domain"
)

// Service implements label use cases on top of the repository abstraction.
type Service struct {
	repo Repository
}

// NewService creates a label service backed by the given repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateLabel validates the name, assigns a fresh ID and persists the
// new label.
func (s *Service) CreateLabel(ctx context.Context, name string) (*domain.Label, error) {
	labelName, err := domain.NewLabelName(name)
	if err != nil {
		return nil, err
	}

	label := &domain.Label{
		ID:   uuid.NewString(),
		Name: labelName.String(),
	}

	if err := s.repo.Save(ctx, label); err != nil {
		return nil, fmt.Errorf("failed to save label: %w", err)
	}

	return label, nil
}

// GetLabel retrieves a single label by ID.
func (s *Service) GetLabel(ctx context.Context, id string) (*domain.Label, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

// ListLabels retrieves all labels.
func (s *Service) ListLabels(ctx context.Context) ([]*domain.Label, error) {
	labels, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list labels: %w", err)
	}
	return labels, nil
}

// UpdateLabel applies a partial update to an existing label.
func (s *Service) UpdateLabel(ctx context.Context, id string, params domain.UpdateLabelParams) (*domain.Label, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	label, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// An empty patch is a read: skip the save entirely.
	if params.IsEmpty() {
		return label, nil
	}

	if params.Name != nil {
		name, err := domain.NewLabelName(*params.Name)
		if err != nil {
			return nil, err
		}
		label.Name = name.String()
	}

	if err := s.repo.Save(ctx, label); err != nil {
		return nil, fmt.Errorf("failed to save label: %w", err)
	}

	return label, nil
}

// DeleteLabel removes a label by ID. Association rows cascade inside the
// repository.
func (s *Service) DeleteLabel(ctx context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func validateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %q", domain.ErrInvalidID, id)
	}
	return nil
}

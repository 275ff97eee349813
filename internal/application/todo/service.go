package todo

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Flip451/t-rust-book-akifumi-sato/internal/domain"
)

// Service implements todo use cases on top of the repository abstraction.
// Validation and ID generation happen here so repositories never see
// invalid data. The repository is injected at construction; there is no
// package-level state.
type Service struct {
	repo   Repository
	labels LabelFinder
}

// NewService creates a todo service backed by the given repository.
func NewService(repo Repository, labels LabelFinder) *Service {
	return &Service{repo: repo, labels: labels}
}

// CreateTodo validates the text, resolves label IDs, assigns a fresh ID
// and persists the new todo. Completed always starts false.
func (s *Service) CreateTodo(ctx context.Context, text string, labelIDs []string) (*domain.Todo, error) {
	todoText, err := domain.NewTodoText(text)
	if err != nil {
		return nil, err
	}

	labels, err := s.resolveLabels(ctx, labelIDs)
	if err != nil {
		return nil, err
	}

	todo := &domain.Todo{
		ID:        uuid.NewString(),
		Text:      todoText.String(),
		Completed: false,
		Labels:    labels,
	}

	if err := s.repo.Save(ctx, todo); err != nil {
		return nil, fmt.Errorf("failed to save todo: %w", err)
	}

	return todo, nil
}

// GetTodo retrieves a single todo by ID.
func (s *Service) GetTodo(ctx context.Context, id string) (*domain.Todo, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

// ListTodos retrieves all todos, optionally filtered to those carrying the
// given label. Filtering happens here over the full result set; the
// repository contract stays a plain FindAll.
func (s *Service) ListTodos(ctx context.Context, labelID *string) ([]*domain.Todo, error) {
	todos, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}

	if labelID == nil {
		return todos, nil
	}

	if err := validateID(*labelID); err != nil {
		return nil, err
	}

	filtered := make([]*domain.Todo, 0, len(todos))
	for _, t := range todos {
		if t.HasLabel(*labelID) {
			filtered = append(filtered, t)
		}
	}
	return filtered, nil
}

// UpdateTodo applies a partial update to an existing todo. Only fields
// present in params change; each one is re-validated before the save.
// The ID never changes.
func (s *Service) UpdateTodo(ctx context.Context, id string, params domain.UpdateTodoParams) (*domain.Todo, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	todo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// An empty patch is a read: skip the save entirely.
	if params.IsEmpty() {
		return todo, nil
	}

	if params.Text != nil {
		text, err := domain.NewTodoText(*params.Text)
		if err != nil {
			return nil, err
		}
		todo.Text = text.String()
	}

	if params.Completed != nil {
		todo.Completed = *params.Completed
	}

	if params.LabelIDs != nil {
		labels, err := s.resolveLabels(ctx, *params.LabelIDs)
		if err != nil {
			return nil, err
		}
		todo.Labels = labels
	}

	if err := s.repo.Save(ctx, todo); err != nil {
		return nil, fmt.Errorf("failed to save todo: %w", err)
	}

	return todo, nil
}

// DeleteTodo removes a todo by ID. The repository checks existence
// atomically with the delete, so a concurrent removal surfaces as
// domain.ErrTodoNotFound rather than a partial failure.
func (s *Service) DeleteTodo(ctx context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// resolveLabels turns a list of label IDs into full labels, rejecting
// duplicates silently and unknown IDs with domain.ErrLabelNotFound.
func (s *Service) resolveLabels(ctx context.Context, labelIDs []string) ([]domain.Label, error) {
	labels := make([]domain.Label, 0, len(labelIDs))
	seen := make(map[string]bool, len(labelIDs))

	for _, id := range labelIDs {
		if seen[id] {
			continue
		}
		seen[id] = true

		if err := validateID(id); err != nil {
			return nil, err
		}

		label, err := s.labels.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		labels = append(labels, *label)
	}

	return labels, nil
}

// validateID checks that an ID is a well-formed UUID before it reaches
// storage, so every backend rejects malformed IDs the same way.
func validateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %q", domain.ErrInvalidID, id)
	}
	return nil
}

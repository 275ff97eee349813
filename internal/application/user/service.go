package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Flip451/t-rust-book-akifumi-sato/internal/domain"
)

// Service implements user use cases on top of the repository abstraction.
// Name uniqueness is enforced here: the stores carry no unique constraint,
// so every create and rename goes through isDuplicated first.
type Service struct {
	repo Repository
}

// NewService creates a user service backed by the given repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateUser validates the name, rejects names already held by another
// user, assigns a fresh ID and persists the new user.
func (s *Service) CreateUser(ctx context.Context, name string) (*domain.User, error) {
	userName, err := domain.NewUserName(name)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:   uuid.NewString(),
		Name: userName.String(),
	}

	dup, err := s.isDuplicated(ctx, user)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, fmt.Errorf("%w: %s", domain.ErrDuplicatedUserName, user.Name)
	}

	if err := s.repo.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	return user, nil
}

// GetUser retrieves a single user by ID.
func (s *Service) GetUser(ctx context.Context, id string) (*domain.User, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

// ListUsers retrieves all users.
func (s *Service) ListUsers(ctx context.Context) ([]*domain.User, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// UpdateUser applies a partial update to an existing user. A rename is
// re-validated and checked for uniqueness against the other users.
func (s *Service) UpdateUser(ctx context.Context, id string, params domain.UpdateUserParams) (*domain.User, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.IsEmpty() {
		return user, nil
	}

	if params.Name != nil {
		name, err := domain.NewUserName(*params.Name)
		if err != nil {
			return nil, err
		}
		user.Name = name.String()
	}

	dup, err := s.isDuplicated(ctx, user)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, fmt.Errorf("%w: %s", domain.ErrDuplicatedUserName, user.Name)
	}

	if err := s.repo.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	return user, nil
}

// DeleteUser removes a user by ID.
func (s *Service) DeleteUser(ctx context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// isDuplicated reports whether a different user already holds the name.
func (s *Service) isDuplicated(ctx context.Context, user *domain.User) (bool, error) {
	found, err := s.repo.FindByName(ctx, user.Name)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check user name: %w", err)
	}
	return found.ID != user.ID, nil
}

func validateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %q", domain.ErrInvalidID, id)
	}
	return nil
}

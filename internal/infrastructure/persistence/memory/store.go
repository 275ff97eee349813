// Package memory provides an in-memory implementation of the todo, label
// and user repositories. It backs tests and the zero-dependency runtime
// mode.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/Flip451/t-rust-book-akifumi-sato/internal/application/label"
	"github.com/Flip451/t-rust-book-akifumi-sato/internal/application/todo"
	"github.com/Flip451/t-rust-book-akifumi-sato/internal/application/user"
	"github.com/Flip451/t-rust-book-akifumi-sato/internal/domain"
)

// Store implements both repository interfaces over plain maps guarded by a
// single reader/writer lock. Values are cloned at the boundary in both
// directions so no caller ever holds a reference into the guarded maps.
//
// FindAll returns entities in insertion order. Callers must not rely on
// this: the repository contract promises no global ordering, and the SQL
// stores order differently.
type Store struct {
	mu sync.RWMutex

	todos     map[string]*domain.Todo
	todoOrder []string

	labels     map[string]*domain.Label
	labelOrder []string

	users     map[string]*domain.User
	userOrder []string
}

// Compile-time verification of the repository interfaces.
var (
	_ todo.Repository  = (*Store)(nil)
	_ label.Repository = (*LabelStore)(nil)
	_ todo.LabelFinder = (*LabelStore)(nil)
	_ user.Repository  = (*UserStore)(nil)
)

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		todos:  make(map[string]*domain.Todo),
		labels: make(map[string]*domain.Label),
		users:  make(map[string]*domain.User),
	}
}

// === todo.Repository ===

// Save inserts or replaces a todo by ID. A replaced todo keeps its
// original insertion position. Every attached label must already exist,
// mirroring the foreign key constraint of the SQL stores.
func (s *Store) Save(ctx context.Context, t *domain.Todo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, l := range t.Labels {
		if _, ok := s.labels[l.ID]; !ok {
			return fmt.Errorf("%w: %s", domain.ErrLabelNotFound, l.ID)
		}
	}

	if _, exists := s.todos[t.ID]; !exists {
		s.todoOrder = append(s.todoOrder, t.ID)
	}
	s.todos[t.ID] = t.Clone()
	return nil
}

// FindByID retrieves a todo by ID.
func (s *Store) FindByID(ctx context.Context, id string) (*domain.Todo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.todos[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrTodoNotFound, id)
	}
	return t.Clone(), nil
}

// FindAll retrieves every todo in insertion order.
func (s *Store) FindAll(ctx context.Context) ([]*domain.Todo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	todos := make([]*domain.Todo, 0, len(s.todoOrder))
	for _, id := range s.todoOrder {
		todos = append(todos, s.todos[id].Clone())
	}
	return todos, nil
}

// Delete removes a todo by ID. Presence is checked under the same lock
// acquisition as the removal, so there is no lookup-then-delete window.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.todos[id]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrTodoNotFound, id)
	}
	delete(s.todos, id)
	s.todoOrder = removeID(s.todoOrder, id)
	return nil
}

// === label.Repository ===

// SaveLabel inserts or replaces a label by ID and refreshes the label's
// name on every todo that carries it.
func (s *Store) SaveLabel(ctx context.Context, l *domain.Label) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.labels[l.ID]; !exists {
		s.labelOrder = append(s.labelOrder, l.ID)
	}
	s.labels[l.ID] = l.Clone()

	for _, t := range s.todos {
		for i := range t.Labels {
			if t.Labels[i].ID == l.ID {
				t.Labels[i].Name = l.Name
			}
		}
	}
	return nil
}

// FindLabelByID retrieves a label by ID.
func (s *Store) FindLabelByID(ctx context.Context, id string) (*domain.Label, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, ok := s.labels[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrLabelNotFound, id)
	}
	return l.Clone(), nil
}

// FindAllLabels retrieves every label in insertion order.
func (s *Store) FindAllLabels(ctx context.Context) ([]*domain.Label, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	labels := make([]*domain.Label, 0, len(s.labelOrder))
	for _, id := range s.labelOrder {
		labels = append(labels, s.labels[id].Clone())
	}
	return labels, nil
}

// DeleteLabel removes a label by ID and detaches it from every todo, the
// in-memory analog of the SQL stores' ON DELETE CASCADE.
func (s *Store) DeleteLabel(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.labels[id]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrLabelNotFound, id)
	}
	delete(s.labels, id)
	s.labelOrder = removeID(s.labelOrder, id)

	for _, t := range s.todos {
		t.DetachLabel(id)
	}
	return nil
}

func removeID(order []string, id string) []string {
	for i, v := range order {
		if v == id {
			return append(order[:i], order[i+1:]...)
		}
	}
	return order
}

// Labels adapts the store to the label-side interfaces. The label methods
// on Store carry distinct names because Go cannot overload FindByID across
// both entity types on one receiver; this view restores the interface's
// method set.
func (s *Store) Labels() *LabelStore {
	return &LabelStore{s: s}
}

// LabelStore is the label.Repository view over a Store.
type LabelStore struct {
	s *Store
}

// Save implements label.Repository.
func (v *LabelStore) Save(ctx context.Context, l *domain.Label) error {
	return v.s.SaveLabel(ctx, l)
}

// FindByID implements label.Repository and todo.LabelFinder.
func (v *LabelStore) FindByID(ctx context.Context, id string) (*domain.Label, error) {
	return v.s.FindLabelByID(ctx, id)
}

// FindAll implements label.Repository.
func (v *LabelStore) FindAll(ctx context.Context) ([]*domain.Label, error) {
	return v.s.FindAllLabels(ctx)
}

// Delete implements label.Repository.
func (v *LabelStore) Delete(ctx context.Context, id string) error {
	return v.s.DeleteLabel(ctx, id)
}

// === user.Repository ===

// SaveUser inserts or replaces a user by ID.
func (s *Store) SaveUser(ctx context.Context, u *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[u.ID]; !exists {
		s.userOrder = append(s.userOrder, u.ID)
	}
	s.users[u.ID] = u.Clone()
	return nil
}

// FindUserByID retrieves a user by ID.
func (s *Store) FindUserByID(ctx context.Context, id string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUserNotFound, id)
	}
	return u.Clone(), nil
}

// FindUserByName retrieves a user by exact name.
func (s *Store) FindUserByName(ctx context.Context, name string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.userOrder {
		if u := s.users[id]; u.Name == name {
			return u.Clone(), nil
		}
	}
	return nil, fmt.Errorf("%w: name %q", domain.ErrUserNotFound, name)
}

// FindAllUsers retrieves every user in insertion order.
func (s *Store) FindAllUsers(ctx context.Context) ([]*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]*domain.User, 0, len(s.userOrder))
	for _, id := range s.userOrder {
		users = append(users, s.users[id].Clone())
	}
	return users, nil
}

// DeleteUser removes a user by ID.
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrUserNotFound, id)
	}
	delete(s.users, id)
	s.userOrder = removeID(s.userOrder, id)
	return nil
}

// Users adapts the store to the user repository interface, same pattern
// as Labels.
func (s *Store) Users() *UserStore {
	return &UserStore{s: s}
}

// UserStore is the user.Repository view over a Store.
type UserStore struct {
	s *Store
}

// Save implements user.Repository.
func (v *UserStore) Save(ctx context.Context, u *domain.User) error {
	return v.s.SaveUser(ctx, u)
}

// FindByID implements user.Repository.
func (v *UserStore) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return v.s.FindUserByID(ctx, id)
}

// FindByName implements user.Repository.
func (v *UserStore) FindByName(ctx context.Context, name string) (*domain.User, error) {
	return v.s.FindUserByName(ctx, name)
}

// FindAll implements user.Repository.
func (v *UserStore) FindAll(ctx context.Context) ([]*domain.User, error) {
	return v.s.FindAllUsers(ctx)
}

// Delete implements user.Repository.
func (v *UserStore) Delete(ctx context.Context, id string) error {
	return v.s.DeleteUser(ctx, id)
}

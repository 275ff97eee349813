package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Flip451/t-rust-book-akifumi-sato/internal/domain"
)

// UserStore is the user.Repository view over a Store.
type UserStore struct {
	s *Store
}

// Save inserts or updates a user by ID.
func (v *UserStore) Save(ctx context.Context, u *domain.User) error {
	id, err := parseID(u.ID)
	if err != nil {
		return err
	}

	_, err = v.s.db.ExecContext(ctx, `
		INSERT INTO users (id, name)
		VALUES (?, ?)
		ON CONFLICT (id)
		DO UPDATE SET name = excluded.name`,
		id, u.Name)
	if err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}

	return nil
}

// FindByID retrieves a user by its ID.
func (v *UserStore) FindByID(ctx context.Context, id string) (*domain.User, error) {
	userID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var u domain.User
	err = v.s.db.QueryRowContext(ctx, `
		SELECT id, name
		FROM users
		WHERE id = ?`,
		userID).Scan(&u.ID, &u.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrUserNotFound, id)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &u, nil
}

// FindByName retrieves a user by exact name.
func (v *UserStore) FindByName(ctx context.Context, name string) (*domain.User, error) {
	var u domain.User
	err := v.s.db.QueryRowContext(ctx, `
		SELECT id, name
		FROM users
		WHERE name = ?`,
		name).Scan(&u.ID, &u.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: name %q", domain.ErrUserNotFound, name)
		}
		return nil, fmt.Errorf("failed to get user by name: %w", err)
	}

	return &u, nil
}

// FindAll retrieves every user ordered by id descending.
func (v *UserStore) FindAll(ctx context.Context) ([]*domain.User, error) {
	rows, err := v.s.db.QueryContext(ctx, `
		SELECT id, name
		FROM users
		ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := make([]*domain.User, 0)
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Name); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read users: %w", err)
	}

	return users, nil
}

// Delete removes a user by ID.
func (v *UserStore) Delete(ctx context.Context, id string) error {
	userID, err := parseID(id)
	if err != nil {
		return err
	}

	res, err := v.s.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return checkRowsAffected(res, domain.ErrUserNotFound, id)
}

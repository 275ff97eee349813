package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

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

	_, err = v.s.pool.Exec(ctx, `
		INSERT INTO users (id, name)
		VALUES ($1, $2)
		ON CONFLICT (id)
		DO UPDATE SET name = EXCLUDED.name`,
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
	err = v.s.pool.QueryRow(ctx, `
		SELECT id::text, name
		FROM users
		WHERE id = $1`,
		userID).Scan(&u.ID, &u.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrUserNotFound, id)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &u, nil
}

// FindByName retrieves a user by exact name.
func (v *UserStore) FindByName(ctx context.Context, name string) (*domain.User, error) {
	var u domain.User
	err := v.s.pool.QueryRow(ctx, `
		SELECT id::text, name
		FROM users
		WHERE name = $1`,
		name).Scan(&u.ID, &u.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: name %q", domain.ErrUserNotFound, name)
		}
		return nil, fmt.Errorf("failed to get user by name: %w", err)
	}

	return &u, nil
}

// FindAll retrieves every user ordered by id descending.
func (v *UserStore) FindAll(ctx context.Context) ([]*domain.User, error) {
	rows, err := v.s.pool.Query(ctx, `
		SELECT id::text, name
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

// Delete removes a user by ID. Existence is checked through the affected
// row count of the delete itself.
func (v *UserStore) Delete(ctx context.Context, id string) error {
	userID, err := parseID(id)
	if err != nil {
		return err
	}

	tag, err := v.s.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return checkRowsAffected(tag, domain.ErrUserNotFound, id)
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Flip451/t-rust-book-akifumi-sato/internal/domain"
)

// LabelStore is the label.Repository view over a Store.
type LabelStore struct {
	s *Store
}

// Save inserts or updates a label by ID.
func (v *LabelStore) Save(ctx context.Context, l *domain.Label) error {
	id, err := parseID(l.ID)
	if err != nil {
		return err
	}

	_, err = v.s.pool.Exec(ctx, `
		INSERT INTO labels (id, name)
		VALUES ($1, $2)
		ON CONFLICT (id)
		DO UPDATE SET name = EXCLUDED.name`,
		id, l.Name)
	if err != nil {
		return fmt.Errorf("failed to upsert label: %w", err)
	}

	return nil
}

// FindByID retrieves a label by its ID.
func (v *LabelStore) FindByID(ctx context.Context, id string) (*domain.Label, error) {
	labelID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var l domain.Label
	err = v.s.pool.QueryRow(ctx, `
		SELECT id::text, name
		FROM labels
		WHERE id = $1`,
		labelID).Scan(&l.ID, &l.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrLabelNotFound, id)
		}
		return nil, fmt.Errorf("failed to get label: %w", err)
	}

	return &l, nil
}

// FindAll retrieves every label ordered by id descending.
func (v *LabelStore) FindAll(ctx context.Context) ([]*domain.Label, error) {
	rows, err := v.s.pool.Query(ctx, `
		SELECT id::text, name
		FROM labels
		ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list labels: %w", err)
	}
	defer rows.Close()

	labels := make([]*domain.Label, 0)
	for rows.Next() {
		var l domain.Label
		if err := rows.Scan(&l.ID, &l.Name); err != nil {
			return nil, fmt.Errorf("failed to scan label: %w", err)
		}
		labels = append(labels, &l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read labels: %w", err)
	}

	return labels, nil
}

// Delete removes a label by ID. Association rows cascade via the
// todo_labels foreign key; existence is checked through the affected row
// count of the delete itself.
func (v *LabelStore) Delete(ctx context.Context, id string) error {
	labelID, err := parseID(id)
	if err != nil {
		return err
	}

	tag, err := v.s.pool.Exec(ctx, `DELETE FROM labels WHERE id = $1`, labelID)
	if err != nil {
		return fmt.Errorf("failed to delete label: %w", err)
	}

	return checkRowsAffected(tag, domain.ErrLabelNotFound, id)
}

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

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

	_, err = v.s.db.ExecContext(ctx, `
		INSERT INTO labels (id, name)
		VALUES (?, ?)
		ON CONFLICT (id)
		DO UPDATE SET name = excluded.name`,
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
	err = v.s.db.QueryRowContext(ctx, `
		SELECT id, name
		FROM labels
		WHERE id = ?`,
		labelID).Scan(&l.ID, &l.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrLabelNotFound, id)
		}
		return nil, fmt.Errorf("failed to get label: %w", err)
	}

	return &l, nil
}

// FindAll retrieves every label ordered by id descending.
func (v *LabelStore) FindAll(ctx context.Context) ([]*domain.Label, error) {
	rows, err := v.s.db.QueryContext(ctx, `
		SELECT id, name
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

// Delete removes a label by ID; association rows cascade via foreign key.
func (v *LabelStore) Delete(ctx context.Context, id string) error {
	labelID, err := parseID(id)
	if err != nil {
		return err
	}

	res, err := v.s.db.ExecContext(ctx, `DELETE FROM labels WHERE id = ?`, labelID)
	if err != nil {
		return fmt.Errorf("failed to delete label: %w", err)
	}

	return checkRowsAffected(res, domain.ErrLabelNotFound, id)
}

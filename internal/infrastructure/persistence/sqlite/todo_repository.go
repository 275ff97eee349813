package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Flip451/t-rust-book-akifumi-sato/internal/domain"
)

// Save inserts or updates a todo and replaces its label associations in
// one transaction, mirroring the PostgreSQL store's upsert semantics.
func (s *Store) Save(ctx context.Context, t *domain.Todo) error {
	id, err := parseID(t.ID)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO todos (id, text, completed)
		VALUES (?, ?, ?)
		ON CONFLICT (id)
		DO UPDATE SET text = excluded.text, completed = excluded.completed`,
		id, t.Text, t.Completed)
	if err != nil {
		return fmt.Errorf("failed to upsert todo: %w", err)
	}

	_, err = tx.ExecContext(ctx, `DELETE FROM todo_labels WHERE todo_id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to clear todo labels: %w", err)
	}

	for _, l := range t.Labels {
		labelID, err := parseID(l.ID)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO todo_labels (todo_id, label_id)
			VALUES (?, ?)`,
			id, labelID)
		if err != nil {
			if isForeignKeyViolation(err) {
				return fmt.Errorf("%w: %s", domain.ErrLabelNotFound, l.ID)
			}
			return fmt.Errorf("failed to attach label: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// FindByID retrieves a todo with its labels.
func (s *Store) FindByID(ctx context.Context, id string) (*domain.Todo, error) {
	todoID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	t := &domain.Todo{Labels: []domain.Label{}}
	err = s.db.QueryRowContext(ctx, `
		SELECT id, text, completed
		FROM todos
		WHERE id = ?`,
		todoID).Scan(&t.ID, &t.Text, &t.Completed)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrTodoNotFound, id)
		}
		return nil, fmt.Errorf("failed to get todo: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT l.id, l.name
		FROM labels l
		JOIN todo_labels tl ON tl.label_id = l.id
		WHERE tl.todo_id = ?
		ORDER BY l.id DESC`,
		todoID)
	if err != nil {
		return nil, fmt.Errorf("failed to get todo labels: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var l domain.Label
		if err := rows.Scan(&l.ID, &l.Name); err != nil {
			return nil, fmt.Errorf("failed to scan label: %w", err)
		}
		t.Labels = append(t.Labels, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read labels: %w", err)
	}

	return t, nil
}

// FindAll retrieves every todo ordered by id descending, labels grouped
// in memory from a second query.
func (s *Store) FindAll(ctx context.Context) ([]*domain.Todo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, text, completed
		FROM todos
		ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	defer rows.Close()

	todos := make([]*domain.Todo, 0)
	byID := make(map[string]*domain.Todo)
	for rows.Next() {
		t := &domain.Todo{Labels: []domain.Label{}}
		if err := rows.Scan(&t.ID, &t.Text, &t.Completed); err != nil {
			return nil, fmt.Errorf("failed to scan todo: %w", err)
		}
		todos = append(todos, t)
		byID[t.ID] = t
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read todos: %w", err)
	}

	labelRows, err := s.db.QueryContext(ctx, `
		SELECT tl.todo_id, l.id, l.name
		FROM todo_labels tl
		JOIN labels l ON l.id = tl.label_id
		ORDER BY l.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list todo labels: %w", err)
	}
	defer labelRows.Close()

	for labelRows.Next() {
		var todoID string
		var l domain.Label
		if err := labelRows.Scan(&todoID, &l.ID, &l.Name); err != nil {
			return nil, fmt.Errorf("failed to scan label: %w", err)
		}
		if t, ok := byID[todoID]; ok {
			t.Labels = append(t.Labels, l)
		}
	}
	if err := labelRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read labels: %w", err)
	}

	return todos, nil
}

// Delete removes a todo by ID; association rows cascade via foreign key.
func (s *Store) Delete(ctx context.Context, id string) error {
	todoID, err := parseID(id)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM todos WHERE id = ?`, todoID)
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}

	return checkRowsAffected(res, domain.ErrTodoNotFound, id)
}

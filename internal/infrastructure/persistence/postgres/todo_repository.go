package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Flip451/t-rust-book-akifumi-sato/internal/domain"
)

// Save inserts or updates a todo: an upsert on the todos row, then a
// replace of its todo_labels rows, in one transaction so create and
// update share a single code path and the write is never partial.
func (s *Store) Save(ctx context.Context, t *domain.Todo) error {
	id, err := parseID(t.ID)
	if err != nil {
		return err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO todos (id, text, completed)
		VALUES ($1, $2, $3)
		ON CONFLICT (id)
		DO UPDATE SET text = EXCLUDED.text, completed = EXCLUDED.completed`,
		id, t.Text, t.Completed)
	if err != nil {
		return fmt.Errorf("failed to upsert todo: %w", err)
	}

	_, err = tx.Exec(ctx, `DELETE FROM todo_labels WHERE todo_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to clear todo labels: %w", err)
	}

	for _, l := range t.Labels {
		labelID, err := parseID(l.ID)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO todo_labels (todo_id, label_id)
			VALUES ($1, $2)`,
			id, labelID)
		if err != nil {
			if isForeignKeyViolation(err, "label_id") {
				return fmt.Errorf("%w: %s", domain.ErrLabelNotFound, l.ID)
			}
			return fmt.Errorf("failed to attach label: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
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
	err = s.pool.QueryRow(ctx, `
		SELECT id::text, text, completed
		FROM todos
		WHERE id = $1`,
		todoID).Scan(&t.ID, &t.Text, &t.Completed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrTodoNotFound, id)
		}
		return nil, fmt.Errorf("failed to get todo: %w", err)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT l.id::text, l.name
		FROM labels l
		JOIN todo_labels tl ON tl.label_id = l.id
		WHERE tl.todo_id = $1
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

// FindAll retrieves every todo ordered by id descending, with labels
// gathered in a second query and grouped in memory to avoid one label
// query per todo.
func (s *Store) FindAll(ctx context.Context) ([]*domain.Todo, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id::text, text, completed
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

	labelRows, err := s.pool.Query(ctx, `
		SELECT tl.todo_id::text, l.id::text, l.name
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

// Delete removes a todo by ID. Existence is checked through the affected
// row count of the delete itself, so a todo removed by a concurrent
// request surfaces as not-found rather than a partial failure.
// Association rows cascade via the todo_labels foreign key.
func (s *Store) Delete(ctx context.Context, id string) error {
	todoID, err := parseID(id)
	if err != nil {
		return err
	}

	tag, err := s.pool.Exec(ctx, `DELETE FROM todos WHERE id = $1`, todoID)
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}

	return checkRowsAffected(tag, domain.ErrTodoNotFound, id)
}

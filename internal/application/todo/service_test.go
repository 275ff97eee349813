package todo_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Flip451/t-rust-book-akifumi-sato/internal/application/label"
	"github.com/Flip451/t-rust-book-akifumi-sato/internal/application/todo"
	"github.com/Flip451/t-rust-book-akifumi-sato/internal/domain"
	"github.com/Flip451/t-rust-book-akifumi-sato/internal/infrastructure/persistence/memory"
	"github.com/Flip451/t-rust-book-akifumi-sato/internal/ptr"
)

func newServices(t *testing.T) (*todo.Service, *label.Service) {
	t.Helper()
	store := memory.NewStore()
	return todo.NewService(store, store.Labels()), label.NewService(store.Labels())
}

func TestCreateTodo(t *testing.T) {
	ctx := context.Background()
	svc, _ := newServices(t)

	created, err := svc.CreateTodo(ctx, "buy milk", nil)
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	require.NoError(t, uuid.Validate(created.ID))
	assert.Equal(t, "buy milk", created.Text)
	assert.False(t, created.Completed)
	assert.Empty(t, created.Labels)

	got, err := svc.GetTodo(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestCreateTodo_FreshIDs(t *testing.T) {
	ctx := context.Background()
	svc, _ := newServices(t)

	first, err := svc.CreateTodo(ctx, "one", nil)
	require.NoError(t, err)
	second, err := svc.CreateTodo(ctx, "two", nil)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
}

func TestCreateTodo_Validation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newServices(t)

	_, err := svc.CreateTodo(ctx, "", nil)
	assert.ErrorIs(t, err, domain.ErrTextRequired)

	_, err = svc.CreateTodo(ctx, strings.Repeat("a", 101), nil)
	assert.ErrorIs(t, err, domain.ErrTextTooLong)
}

func TestCreateTodo_WithLabels(t *testing.T) {
	ctx := context.Background()
	svc, labelSvc := newServices(t)

	home, err := labelSvc.CreateLabel(ctx, "home")
	require.NoError(t, err)

	created, err := svc.CreateTodo(ctx, "water plants", []string{home.ID, home.ID})
	require.NoError(t, err)

	// Duplicate IDs in the request collapse to a single attachment.
	require.Len(t, created.Labels, 1)
	assert.Equal(t, home.ID, created.Labels[0].ID)
	assert.Equal(t, "home", created.Labels[0].Name)
}

func TestCreateTodo_UnknownLabel(t *testing.T) {
	ctx := context.Background()
	svc, _ := newServices(t)

	_, err := svc.CreateTodo(ctx, "water plants", []string{uuid.NewString()})
	assert.ErrorIs(t, err, domain.ErrLabelNotFound)
}

func TestGetTodo_NotFound(t *testing.T) {
	ctx := context.Background()
	svc, _ := newServices(t)

	_, err := svc.GetTodo(ctx, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrTodoNotFound)
}

func TestGetTodo_InvalidID(t *testing.T) {
	ctx := context.Background()
	svc, _ := newServices(t)

	_, err := svc.GetTodo(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}

func TestListTodos(t *testing.T) {
	ctx := context.Background()
	svc, _ := newServices(t)

	todos, err := svc.ListTodos(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, todos)

	first, err := svc.CreateTodo(ctx, "one", nil)
	require.NoError(t, err)
	second, err := svc.CreateTodo(ctx, "two", nil)
	require.NoError(t, err)

	todos, err = svc.ListTodos(ctx, nil)
	require.NoError(t, err)
	require.Len(t, todos, 2)
	assert.Equal(t, first.ID, todos[0].ID)
	assert.Equal(t, second.ID, todos[1].ID)
}

func TestListTodos_FilterByLabel(t *testing.T) {
	ctx := context.Background()
	svc, labelSvc := newServices(t)

	urgent, err := labelSvc.CreateLabel(ctx, "urgent")
	require.NoError(t, err)

	tagged, err := svc.CreateTodo(ctx, "pay rent", []string{urgent.ID})
	require.NoError(t, err)
	_, err = svc.CreateTodo(ctx, "read book", nil)
	require.NoError(t, err)

	todos, err := svc.ListTodos(ctx, &urgent.ID)
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.Equal(t, tagged.ID, todos[0].ID)

	// A valid but unattached label matches nothing.
	other := uuid.NewString()
	todos, err = svc.ListTodos(ctx, &other)
	require.NoError(t, err)
	assert.Empty(t, todos)
}

func TestUpdateTodo_Partial(t *testing.T) {
	ctx := context.Background()
	svc, _ := newServices(t)

	created, err := svc.CreateTodo(ctx, "buy milk", nil)
	require.NoError(t, err)

	updated, err := svc.UpdateTodo(ctx, created.ID, domain.UpdateTodoParams{Completed: ptr.To(true)})
	require.NoError(t, err)

	// Only the completed flag changes.
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "buy milk", updated.Text)
	assert.True(t, updated.Completed)

	updated, err = svc.UpdateTodo(ctx, created.ID, domain.UpdateTodoParams{Text: ptr.To("buy oat milk")})
	require.NoError(t, err)
	assert.Equal(t, "buy oat milk", updated.Text)
	assert.True(t, updated.Completed, "completed must survive a text-only update")

	// Empty params leave the todo unchanged.
	same, err := svc.UpdateTodo(ctx, created.ID, domain.UpdateTodoParams{})
	require.NoError(t, err)
	assert.Equal(t, "buy oat milk", same.Text)
	assert.True(t, same.Completed)
}

func TestUpdateTodo_ReplacesLabels(t *testing.T) {
	ctx := context.Background()
	svc, labelSvc := newServices(t)

	home, err := labelSvc.CreateLabel(ctx, "home")
	require.NoError(t, err)
	work, err := labelSvc.CreateLabel(ctx, "work")
	require.NoError(t, err)

	created, err := svc.CreateTodo(ctx, "send report", []string{home.ID})
	require.NoError(t, err)

	updated, err := svc.UpdateTodo(ctx, created.ID, domain.UpdateTodoParams{LabelIDs: ptr.To([]string{work.ID})})
	require.NoError(t, err)
	require.Len(t, updated.Labels, 1)
	assert.Equal(t, work.ID, updated.Labels[0].ID)

	// An explicit empty list clears all labels.
	updated, err = svc.UpdateTodo(ctx, created.ID, domain.UpdateTodoParams{LabelIDs: ptr.To([]string{})})
	require.NoError(t, err)
	assert.Empty(t, updated.Labels)
}

func TestUpdateTodo_Validation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newServices(t)

	created, err := svc.CreateTodo(ctx, "buy milk", nil)
	require.NoError(t, err)

	_, err = svc.UpdateTodo(ctx, created.ID, domain.UpdateTodoParams{Text: ptr.To("")})
	assert.ErrorIs(t, err, domain.ErrTextRequired)

	_, err = svc.UpdateTodo(ctx, created.ID, domain.UpdateTodoParams{Text: ptr.To(strings.Repeat("a", 101))})
	assert.ErrorIs(t, err, domain.ErrTextTooLong)

	// A rejected update leaves the stored todo untouched.
	got, err := svc.GetTodo(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "buy milk", got.Text)
}

func TestUpdateTodo_NotFound(t *testing.T) {
	ctx := context.Background()
	svc, _ := newServices(t)

	_, err := svc.UpdateTodo(ctx, uuid.NewString(), domain.UpdateTodoParams{Text: ptr.To("anything")})
	assert.ErrorIs(t, err, domain.ErrTodoNotFound)
}

func TestDeleteTodo(t *testing.T) {
	ctx := context.Background()
	svc, _ := newServices(t)

	created, err := svc.CreateTodo(ctx, "buy milk", nil)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTodo(ctx, created.ID))

	_, err = svc.GetTodo(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrTodoNotFound)

	// Deleting again reports not found, not an internal error.
	err = svc.DeleteTodo(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrTodoNotFound)
}

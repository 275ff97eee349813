// Package compliance holds a storage-agnostic test suite that every
// repository implementation must pass. Store packages run it from their
// own tests with a setup function producing a fresh store.
package compliance

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Flip451/t-rust-book-akifumi-sato/internal/application/label"
	"github.com/Flip451/t-rust-book-akifumi-sato/internal/application/todo"
	"github.com/Flip451/t-rust-book-akifumi-sato/internal/application/user"
	"github.com/Flip451/t-rust-book-akifumi-sato/internal/domain"
)

// Stores bundles the repository views of one backing store.
type Stores struct {
	Todos  todo.Repository
	Labels label.Repository
	Users  user.Repository
}

// RunRepositoryComplianceTest runs the standard contract tests against a
// repository implementation. setup returns a fresh (clean) store for each
// subtest and a teardown to release its resources.
func RunRepositoryComplianceTest(t *testing.T, setup func(t *testing.T) (Stores, func())) {
	t.Run("SaveAndFindTodo", func(t *testing.T) {
		stores, teardown := setup(t)
		defer teardown()
		ctx := context.Background()

		saved := &domain.Todo{
			ID:     uuid.NewString(),
			Text:   "buy milk",
			Labels: []domain.Label{},
		}
		require.NoError(t, stores.Todos.Save(ctx, saved))

		found, err := stores.Todos.FindByID(ctx, saved.ID)
		require.NoError(t, err)
		assert.Equal(t, saved.ID, found.ID)
		assert.Equal(t, "buy milk", found.Text)
		assert.False(t, found.Completed)
		assert.Empty(t, found.Labels)
	})

	t.Run("SaveIsUpsert", func(t *testing.T) {
		stores, teardown := setup(t)
		defer teardown()
		ctx := context.Background()

		todoItem := &domain.Todo{ID: uuid.NewString(), Text: "first"}
		require.NoError(t, stores.Todos.Save(ctx, todoItem))

		todoItem.Text = "second"
		todoItem.Completed = true
		require.NoError(t, stores.Todos.Save(ctx, todoItem))

		found, err := stores.Todos.FindByID(ctx, todoItem.ID)
		require.NoError(t, err)
		assert.Equal(t, "second", found.Text)
		assert.True(t, found.Completed)

		all, err := stores.Todos.FindAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1, "upsert must not create a second entity")
	})

	t.Run("FindAllReturnsExactlySavedSet", func(t *testing.T) {
		stores, teardown := setup(t)
		defer teardown()
		ctx := context.Background()

		want := make(map[string]bool)
		for _, text := range []string{"one", "two", "three"} {
			item := &domain.Todo{ID: uuid.NewString(), Text: text}
			require.NoError(t, stores.Todos.Save(ctx, item))
			want[item.ID] = true
		}

		all, err := stores.Todos.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, len(want))

		got := make(map[string]bool)
		for _, item := range all {
			got[item.ID] = true
		}
		assert.Equal(t, want, got)
	})

	t.Run("FindMissingTodo", func(t *testing.T) {
		stores, teardown := setup(t)
		defer teardown()

		_, err := stores.Todos.FindByID(context.Background(), uuid.NewString())
		assert.ErrorIs(t, err, domain.ErrTodoNotFound)
	})

	t.Run("DeleteTodo", func(t *testing.T) {
		stores, teardown := setup(t)
		defer teardown()
		ctx := context.Background()

		item := &domain.Todo{ID: uuid.NewString(), Text: "delete me"}
		require.NoError(t, stores.Todos.Save(ctx, item))

		require.NoError(t, stores.Todos.Delete(ctx, item.ID))

		_, err := stores.Todos.FindByID(ctx, item.ID)
		assert.ErrorIs(t, err, domain.ErrTodoNotFound)

		// Repeated delete behaves like deleting a never-saved entity.
		assert.ErrorIs(t, stores.Todos.Delete(ctx, item.ID), domain.ErrTodoNotFound)
	})

	t.Run("DeleteNeverSavedTodo", func(t *testing.T) {
		stores, teardown := setup(t)
		defer teardown()

		err := stores.Todos.Delete(context.Background(), uuid.NewString())
		assert.ErrorIs(t, err, domain.ErrTodoNotFound)
	})

	t.Run("LabelRoundTrip", func(t *testing.T) {
		stores, teardown := setup(t)
		defer teardown()
		ctx := context.Background()

		l := &domain.Label{ID: uuid.NewString(), Name: "home"}
		require.NoError(t, stores.Labels.Save(ctx, l))

		found, err := stores.Labels.FindByID(ctx, l.ID)
		require.NoError(t, err)
		assert.Equal(t, l.ID, found.ID)
		assert.Equal(t, "home", found.Name)

		l.Name = "work"
		require.NoError(t, stores.Labels.Save(ctx, l))
		found, err = stores.Labels.FindByID(ctx, l.ID)
		require.NoError(t, err)
		assert.Equal(t, "work", found.Name)

		require.NoError(t, stores.Labels.Delete(ctx, l.ID))
		_, err = stores.Labels.FindByID(ctx, l.ID)
		assert.ErrorIs(t, err, domain.ErrLabelNotFound)
		assert.ErrorIs(t, stores.Labels.Delete(ctx, l.ID), domain.ErrLabelNotFound)
	})

	t.Run("TodoCarriesLabels", func(t *testing.T) {
		stores, teardown := setup(t)
		defer teardown()
		ctx := context.Background()

		l := &domain.Label{ID: uuid.NewString(), Name: "urgent"}
		require.NoError(t, stores.Labels.Save(ctx, l))

		item := &domain.Todo{
			ID:     uuid.NewString(),
			Text:   "call the bank",
			Labels: []domain.Label{*l},
		}
		require.NoError(t, stores.Todos.Save(ctx, item))

		found, err := stores.Todos.FindByID(ctx, item.ID)
		require.NoError(t, err)
		require.Len(t, found.Labels, 1)
		assert.Equal(t, l.ID, found.Labels[0].ID)
		assert.Equal(t, "urgent", found.Labels[0].Name)

		// Replacing the association set with empty detaches the label.
		item.Labels = []domain.Label{}
		require.NoError(t, stores.Todos.Save(ctx, item))
		found, err = stores.Todos.FindByID(ctx, item.ID)
		require.NoError(t, err)
		assert.Empty(t, found.Labels)
	})

	t.Run("SaveRejectsUnknownLabel", func(t *testing.T) {
		stores, teardown := setup(t)
		defer teardown()
		ctx := context.Background()

		item := &domain.Todo{
			ID:     uuid.NewString(),
			Text:   "orphan association",
			Labels: []domain.Label{{ID: uuid.NewString(), Name: "ghost"}},
		}
		err := stores.Todos.Save(ctx, item)
		assert.ErrorIs(t, err, domain.ErrLabelNotFound)
	})

	t.Run("DeleteLabelCascades", func(t *testing.T) {
		stores, teardown := setup(t)
		defer teardown()
		ctx := context.Background()

		l := &domain.Label{ID: uuid.NewString(), Name: "transient"}
		require.NoError(t, stores.Labels.Save(ctx, l))

		item := &domain.Todo{
			ID:     uuid.NewString(),
			Text:   "loses its label",
			Labels: []domain.Label{*l},
		}
		require.NoError(t, stores.Todos.Save(ctx, item))

		require.NoError(t, stores.Labels.Delete(ctx, l.ID))

		found, err := stores.Todos.FindByID(ctx, item.ID)
		require.NoError(t, err)
		assert.Empty(t, found.Labels, "deleting a label must cascade to its associations")
	})

	t.Run("DeleteTodoCascades", func(t *testing.T) {
		stores, teardown := setup(t)
		defer teardown()
		ctx := context.Background()

		l := &domain.Label{ID: uuid.NewString(), Name: "survivor"}
		require.NoError(t, stores.Labels.Save(ctx, l))

		item := &domain.Todo{
			ID:     uuid.NewString(),
			Text:   "short lived",
			Labels: []domain.Label{*l},
		}
		require.NoError(t, stores.Todos.Save(ctx, item))
		require.NoError(t, stores.Todos.Delete(ctx, item.ID))

		// The label itself outlives the association.
		found, err := stores.Labels.FindByID(ctx, l.ID)
		require.NoError(t, err)
		assert.Equal(t, "survivor", found.Name)
	})

	t.Run("UserRoundTrip", func(t *testing.T) {
		stores, teardown := setup(t)
		defer teardown()
		ctx := context.Background()

		u := &domain.User{ID: uuid.NewString(), Name: "alice"}
		require.NoError(t, stores.Users.Save(ctx, u))

		found, err := stores.Users.FindByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, u.ID, found.ID)
		assert.Equal(t, "alice", found.Name)

		u.Name = "alice2"
		require.NoError(t, stores.Users.Save(ctx, u))
		found, err = stores.Users.FindByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice2", found.Name)

		all, err := stores.Users.FindAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1, "upsert must not create a second entity")

		require.NoError(t, stores.Users.Delete(ctx, u.ID))
		_, err = stores.Users.FindByID(ctx, u.ID)
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
		assert.ErrorIs(t, stores.Users.Delete(ctx, u.ID), domain.ErrUserNotFound)
	})

	t.Run("FindUserByName", func(t *testing.T) {
		stores, teardown := setup(t)
		defer teardown()
		ctx := context.Background()

		u := &domain.User{ID: uuid.NewString(), Name: "bob"}
		require.NoError(t, stores.Users.Save(ctx, u))

		found, err := stores.Users.FindByName(ctx, "bob")
		require.NoError(t, err)
		assert.Equal(t, u.ID, found.ID)

		// Exact match only.
		_, err = stores.Users.FindByName(ctx, "bo")
		assert.ErrorIs(t, err, domain.ErrUserNotFound)

		_, err = stores.Users.FindByName(ctx, "carol")
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}

package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Flip451/t-rust-book-akifumi-sato/internal/domain"
	"github.com/Flip451/t-rust-book-akifumi-sato/internal/infrastructure/persistence/sqlite"
	"github.com/Flip451/t-rust-book-akifumi-sato/internal/storage/compliance"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	store, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "todo.db"))
	require.NoError(t, err)
	return store
}

func TestStoreCompliance(t *testing.T) {
	compliance.RunRepositoryComplianceTest(t, func(t *testing.T) (compliance.Stores, func()) {
		store := newTestStore(t)
		return compliance.Stores{
			Todos:  store,
			Labels: store.Labels(),
			Users:  store.Users(),
		}, func() { _ = store.Close() }
	})
}

func TestFindAllOrdersByIDDescending(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	defer store.Close()

	// Fixed IDs so the expected ordering is deterministic.
	low := "00000000-0000-0000-0000-000000000001"
	high := "ffffffff-0000-0000-0000-000000000001"

	require.NoError(t, store.Save(ctx, &domain.Todo{ID: low, Text: "low"}))
	require.NoError(t, store.Save(ctx, &domain.Todo{ID: high, Text: "high"}))

	todos, err := store.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, todos, 2)
	assert.Equal(t, high, todos[0].ID)
	assert.Equal(t, low, todos[1].ID)
}

func TestRejectsMalformedID(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	defer store.Close()

	_, err := store.FindByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, domain.ErrInvalidID)

	err = store.Delete(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}

func TestReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "todo.db")

	store, err := sqlite.Open(ctx, path)
	require.NoError(t, err)

	item := &domain.Todo{ID: uuid.NewString(), Text: "persisted"}
	require.NoError(t, store.Save(ctx, item))
	require.NoError(t, store.Close())

	// Reopening runs migrations again; they must be idempotent and the
	// data must survive.
	store, err = sqlite.Open(ctx, path)
	require.NoError(t, err)
	defer store.Close()

	got, err := store.FindByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "persisted", got.Text)
}

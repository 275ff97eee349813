package label_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Flip451/t-rust-book-akifumi-sato/internal/application/label"
	"github.com/Flip451/t-rust-book-akifumi-sato/internal/domain"
	"github.com/Flip451/t-rust-book-akifumi-sato/internal/infrastructure/persistence/memory"
	"github.com/Flip451/t-rust-book-akifumi-sato/internal/ptr"
)

func newService(t *testing.T) *label.Service {
	t.Helper()
	return label.NewService(memory.NewStore().Labels())
}

func TestCreateLabel(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	created, err := svc.CreateLabel(ctx, "urgent")
	require.NoError(t, err)

	require.NoError(t, uuid.Validate(created.ID))
	assert.Equal(t, "urgent", created.Name)

	got, err := svc.GetLabel(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestCreateLabel_Validation(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	_, err := svc.CreateLabel(ctx, "")
	assert.ErrorIs(t, err, domain.ErrNameRequired)

	_, err = svc.CreateLabel(ctx, strings.Repeat("n", 101))
	assert.ErrorIs(t, err, domain.ErrNameTooLong)
}

func TestGetLabel_NotFound(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	_, err := svc.GetLabel(ctx, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrLabelNotFound)

	_, err = svc.GetLabel(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}

func TestListLabels(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	labels, err := svc.ListLabels(ctx)
	require.NoError(t, err)
	assert.Empty(t, labels)

	first, err := svc.CreateLabel(ctx, "home")
	require.NoError(t, err)
	second, err := svc.CreateLabel(ctx, "work")
	require.NoError(t, err)

	labels, err = svc.ListLabels(ctx)
	require.NoError(t, err)
	require.Len(t, labels, 2)
	assert.Equal(t, first.ID, labels[0].ID)
	assert.Equal(t, second.ID, labels[1].ID)
}

func TestUpdateLabel(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	created, err := svc.CreateLabel(ctx, "home")
	require.NoError(t, err)

	updated, err := svc.UpdateLabel(ctx, created.ID, domain.UpdateLabelParams{Name: ptr.To("house")})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "house", updated.Name)

	// Empty params leave the label unchanged.
	same, err := svc.UpdateLabel(ctx, created.ID, domain.UpdateLabelParams{})
	require.NoError(t, err)
	assert.Equal(t, "house", same.Name)
}

func TestUpdateLabel_NotFound(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	_, err := svc.UpdateLabel(ctx, uuid.NewString(), domain.UpdateLabelParams{Name: ptr.To("anything")})
	assert.ErrorIs(t, err, domain.ErrLabelNotFound)
}

func TestDeleteLabel(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	created, err := svc.CreateLabel(ctx, "home")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteLabel(ctx, created.ID))

	_, err = svc.GetLabel(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrLabelNotFound)

	err = svc.DeleteLabel(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrLabelNotFound)
}

package user_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Flip451/t-rust-book-akifumi-sato/internal/application/user"
	"github.com/Flip451/t-rust-book-akifumi-sato/internal/domain"
	"github.com/Flip451/t-rust-book-akifumi-sato/internal/infrastructure/persistence/memory"
	"github.com/Flip451/t-rust-book-akifumi-sato/internal/ptr"
)

func newService(t *testing.T) *user.Service {
	t.Helper()
	return user.NewService(memory.NewStore().Users())
}

func TestCreateUser(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	created, err := svc.CreateUser(ctx, "alice")
	require.NoError(t, err)

	require.NoError(t, uuid.Validate(created.ID))
	assert.Equal(t, "alice", created.Name)

	got, err := svc.GetUser(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestCreateUser_Validation(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	_, err := svc.CreateUser(ctx, "ab")
	assert.ErrorIs(t, err, domain.ErrUserNameTooShort)

	_, err = svc.CreateUser(ctx, strings.Repeat("u", 20))
	assert.ErrorIs(t, err, domain.ErrUserNameTooLong)
}

func TestCreateUser_DuplicateName(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	_, err := svc.CreateUser(ctx, "alice")
	require.NoError(t, err)

	_, err = svc.CreateUser(ctx, "alice")
	assert.ErrorIs(t, err, domain.ErrDuplicatedUserName)
}

func TestGetUser_NotFound(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	_, err := svc.GetUser(ctx, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = svc.GetUser(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}

func TestListUsers(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)

	first, err := svc.CreateUser(ctx, "alice")
	require.NoError(t, err)
	second, err := svc.CreateUser(ctx, "bob")
	require.NoError(t, err)

	users, err = svc.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, first.ID, users[0].ID)
	assert.Equal(t, second.ID, users[1].ID)
}

func TestUpdateUser(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	created, err := svc.CreateUser(ctx, "alice")
	require.NoError(t, err)

	updated, err := svc.UpdateUser(ctx, created.ID, domain.UpdateUserParams{Name: ptr.To("alicia")})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "alicia", updated.Name)

	// Empty params leave the user unchanged.
	same, err := svc.UpdateUser(ctx, created.ID, domain.UpdateUserParams{})
	require.NoError(t, err)
	assert.Equal(t, "alicia", same.Name)
}

func TestUpdateUser_DuplicateName(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	alice, err := svc.CreateUser(ctx, "alice")
	require.NoError(t, err)
	_, err = svc.CreateUser(ctx, "bob")
	require.NoError(t, err)

	// Taking another user's name is rejected.
	_, err = svc.UpdateUser(ctx, alice.ID, domain.UpdateUserParams{Name: ptr.To("bob")})
	assert.ErrorIs(t, err, domain.ErrDuplicatedUserName)

	// Re-submitting one's own name is not a conflict.
	same, err := svc.UpdateUser(ctx, alice.ID, domain.UpdateUserParams{Name: ptr.To("alice")})
	require.NoError(t, err)
	assert.Equal(t, "alice", same.Name)
}

func TestUpdateUser_NotFound(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	_, err := svc.UpdateUser(ctx, uuid.NewString(), domain.UpdateUserParams{Name: ptr.To("anybody")})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestDeleteUser(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	created, err := svc.CreateUser(ctx, "alice")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUser(ctx, created.ID))

	_, err = svc.GetUser(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	err = svc.DeleteUser(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aegisops/aegis-api/internal/repository"
)

func TestUserRepository_CreateAndAuthenticate(t *testing.T) {
	repo := repository.NewUserRepository(newTestDB(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, "admin", "指挥中心管理员", "ADMIN", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.NotEqual(t, "s3cret", created.PasswordHash)

	user, err := repo.Authenticate(ctx, "admin", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
	assert.Equal(t, "指挥中心管理员", user.Name)
}

func TestUserRepository_AuthenticateFailures(t *testing.T) {
	repo := repository.NewUserRepository(newTestDB(t))
	ctx := context.Background()

	_, err := repo.Create(ctx, "admin", "指挥中心管理员", "ADMIN", "s3cret")
	require.NoError(t, err)

	_, err = repo.Authenticate(ctx, "admin", "wrong")
	require.ErrorIs(t, err, repository.ErrNotFound)

	_, err = repo.Authenticate(ctx, "nobody", "s3cret")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserRepository_DuplicateUsername(t *testing.T) {
	repo := repository.NewUserRepository(newTestDB(t))
	ctx := context.Background()

	_, err := repo.Create(ctx, "admin", "a", "ADMIN", "x")
	require.NoError(t, err)
	_, err = repo.Create(ctx, "admin", "b", "OPERATOR", "y")
	require.ErrorIs(t, err, repository.ErrDuplicate)
}

package repository

import (
	"context"
	"testing"

	"kapipost/internal/cache"
	"kapipost/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_GetByEmail(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	created := createTestUser(t, db, "emailed")

	found, err := repo.GetByEmail(ctx, "emailed@example.com")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, created.ID, found.ID)

	// absence is not an error here; callers decide what it means
	missing, err := repo.GetByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserRepository_GetByUsername(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	createTestUser(t, db, "findme")

	found, err := repo.GetByUsername(ctx, "findme")
	require.NoError(t, err)
	assert.Equal(t, "findme", found.Username)

	_, err = repo.GetByUsername(ctx, "ghost")
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestUserRepository_GetByIDUsesCache(t *testing.T) {
	mr := miniredis.RunT(t)
	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { cache.SetClient(nil) })

	db := setupRepoDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "cached")

	first, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "cached", first.Username)
	assert.True(t, mr.Exists(cache.UserKey(user.ID)))

	// a direct DB write is invisible until the cache entry goes away
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", user.ID).
		Update("bio", "changed behind the cache").Error)

	stale, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, stale.Bio)

	// Update through the repository drops the cached entry
	user.Bio = "fresh"
	require.NoError(t, repo.Update(ctx, user))
	assert.False(t, mr.Exists(cache.UserKey(user.ID)))

	fresh, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "fresh", fresh.Bio)
}

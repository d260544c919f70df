package repository

import (
	"context"
	"testing"
	"time"

	"kapipost/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupRepository_ListOrderedByTitle(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewGroupRepository(db)
	ctx := context.Background()

	createTestGroup(t, db, "Zig", "zig")
	createTestGroup(t, db, "Ada", "ada")
	createTestGroup(t, db, "Go", "go")

	groups, err := repo.List(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, groups, 3)
	assert.Equal(t, "Ada", groups[0].Title)
	assert.Equal(t, "Go", groups[1].Title)
	assert.Equal(t, "Zig", groups[2].Title)

	total, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
}

func TestGroupRepository_GetBySlugOldestWins(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewGroupRepository(db)
	ctx := context.Background()

	first := createTestGroup(t, db, "First", "shared")
	createTestGroup(t, db, "Second", "shared")

	got, err := repo.GetBySlug(ctx, "shared")
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)

	_, err = repo.GetBySlug(ctx, "missing")
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestGroupRepository_DeleteDetachesPosts(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewGroupRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "member")
	group := createTestGroup(t, db, "Doomed", "doomed")
	post := createTestPost(t, db, author, group, "survives", time.Now())

	require.NoError(t, repo.Delete(ctx, group.ID))

	_, err := repo.GetByID(ctx, group.ID)
	assert.Error(t, err)

	var kept models.Post
	require.NoError(t, db.First(&kept, post.ID).Error)
	assert.Nil(t, kept.GroupID, "post must be detached, not deleted")
	assert.Equal(t, "survives", kept.Text)
}

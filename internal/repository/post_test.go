package repository

import (
	"context"
	"testing"
	"time"

	"kapipost/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostRepository_ListNewestFirst(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "lister")
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	createTestPost(t, db, author, nil, "oldest", base)
	createTestPost(t, db, author, nil, "middle", base.Add(time.Minute))
	createTestPost(t, db, author, nil, "newest", base.Add(2*time.Minute))

	posts, err := repo.List(ctx, PostFilter{}, 10, 0)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, "newest", posts[0].Text)
	assert.Equal(t, "middle", posts[1].Text)
	assert.Equal(t, "oldest", posts[2].Text)
	assert.Equal(t, author.Username, posts[0].Author.Username)
}

func TestPostRepository_ListPagination(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "paginator")
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 13; i++ {
		createTestPost(t, db, author, nil, "post", base.Add(time.Duration(i)*time.Minute))
	}

	total, err := repo.Count(ctx, PostFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(13), total)

	first, err := repo.List(ctx, PostFilter{}, 10, 0)
	require.NoError(t, err)
	assert.Len(t, first, 10)

	second, err := repo.List(ctx, PostFilter{}, 10, 10)
	require.NoError(t, err)
	assert.Len(t, second, 3)
}

func TestPostRepository_ListFilters(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	group := createTestGroup(t, db, "Gophers", "gophers")
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	createTestPost(t, db, alice, group, "grouped", base)
	createTestPost(t, db, alice, nil, "loose", base.Add(time.Minute))
	createTestPost(t, db, bob, nil, "bobs", base.Add(2*time.Minute))

	byGroup, err := repo.List(ctx, PostFilter{GroupID: &group.ID}, 10, 0)
	require.NoError(t, err)
	require.Len(t, byGroup, 1)
	assert.Equal(t, "grouped", byGroup[0].Text)

	byAuthor, err := repo.List(ctx, PostFilter{AuthorID: &alice.ID}, 10, 0)
	require.NoError(t, err)
	assert.Len(t, byAuthor, 2)

	// bob follows alice; his feed shows only alice's posts
	require.NoError(t, NewFollowRepository(db).Follow(ctx, bob.ID, alice.ID))
	followed, err := repo.List(ctx, PostFilter{FollowerID: &bob.ID}, 10, 0)
	require.NoError(t, err)
	assert.Len(t, followed, 2)
	for _, p := range followed {
		assert.Equal(t, alice.ID, p.AuthorID)
	}

	count, err := repo.Count(ctx, PostFilter{FollowerID: &bob.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestPostRepository_CommentsCount(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "counted")
	post := createTestPost(t, db, author, nil, "with comments", time.Now())
	for i := 0; i < 3; i++ {
		require.NoError(t, db.Create(&models.Comment{
			Text:     "nice",
			AuthorID: author.ID,
			PostID:   &post.ID,
		}).Error)
	}

	got, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.CommentsCount)
}

func TestPostRepository_UpdateKeepsCreatedAt(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "editor")
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	post := createTestPost(t, db, author, nil, "original", created)

	post.Text = "edited"
	post.CreatedAt = created.Add(time.Hour)
	require.NoError(t, repo.Update(ctx, post))

	got, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "edited", got.Text)
	assert.True(t, got.CreatedAt.Equal(created), "created_at must not change on update")
}

func TestPostRepository_DeleteCascadesComments(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "deleter")
	post := createTestPost(t, db, author, nil, "doomed", time.Now())
	require.NoError(t, db.Create(&models.Comment{
		Text:     "gone too",
		AuthorID: author.ID,
		PostID:   &post.ID,
	}).Error)

	require.NoError(t, repo.Delete(ctx, post.ID))

	_, err := repo.GetByID(ctx, post.ID)
	assert.Error(t, err)

	var comments int64
	require.NoError(t, db.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&comments).Error)
	assert.Zero(t, comments)
}

package service

import (
	"context"
	"testing"

	"kapipost/internal/models"
	"kapipost/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn  func(context.Context, *models.Post) error
	getByIDFn func(context.Context, uint) (*models.Post, error)
	listFn    func(context.Context, repository.PostFilter, int, int) ([]*models.Post, error)
	countFn   func(context.Context, repository.PostFilter) (int64, error)
	updateFn  func(context.Context, *models.Post) error
	deleteFn  func(context.Context, uint) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) List(ctx context.Context, filter repository.PostFilter, limit, offset int) ([]*models.Post, error) {
	return s.listFn(ctx, filter, limit, offset)
}
func (s *postRepoStub) Count(ctx context.Context, filter repository.PostFilter) (int64, error) {
	return s.countFn(ctx, filter)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:  func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Post, error) { return &models.Post{ID: id}, nil },
		listFn: func(_ context.Context, _ repository.PostFilter, _, _ int) ([]*models.Post, error) {
			return nil, nil
		},
		countFn:  func(_ context.Context, _ repository.PostFilter) (int64, error) { return 0, nil },
		updateFn: func(_ context.Context, _ *models.Post) error { return nil },
		deleteFn: func(_ context.Context, _ uint) error { return nil },
	}
}

// groupRepoStub is a stub for repository.GroupRepository.
type groupRepoStub struct {
	createFn    func(context.Context, *models.Group) error
	getByIDFn   func(context.Context, uint) (*models.Group, error)
	getBySlugFn func(context.Context, string) (*models.Group, error)
	listFn      func(context.Context, int, int) ([]*models.Group, error)
	countFn     func(context.Context) (int64, error)
	updateFn    func(context.Context, *models.Group) error
	deleteFn    func(context.Context, uint) error
}

func (s *groupRepoStub) Create(ctx context.Context, group *models.Group) error {
	return s.createFn(ctx, group)
}
func (s *groupRepoStub) GetByID(ctx context.Context, id uint) (*models.Group, error) {
	return s.getByIDFn(ctx, id)
}
func (s *groupRepoStub) GetBySlug(ctx context.Context, slug string) (*models.Group, error) {
	return s.getBySlugFn(ctx, slug)
}
func (s *groupRepoStub) List(ctx context.Context, limit, offset int) ([]*models.Group, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *groupRepoStub) Count(ctx context.Context) (int64, error) {
	return s.countFn(ctx)
}
func (s *groupRepoStub) Update(ctx context.Context, group *models.Group) error {
	return s.updateFn(ctx, group)
}
func (s *groupRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopGroupRepo() *groupRepoStub {
	return &groupRepoStub{
		createFn:  func(_ context.Context, _ *models.Group) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Group, error) { return &models.Group{ID: id}, nil },
		getBySlugFn: func(_ context.Context, slug string) (*models.Group, error) {
			return &models.Group{ID: 1, Slug: slug}, nil
		},
		listFn:   func(_ context.Context, _, _ int) ([]*models.Group, error) { return nil, nil },
		countFn:  func(_ context.Context) (int64, error) { return 0, nil },
		updateFn: func(_ context.Context, _ *models.Group) error { return nil },
		deleteFn: func(_ context.Context, _ uint) error { return nil },
	}
}

func appErrCode(t *testing.T, err error) string {
	t.Helper()
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	return appErr.Code
}

func TestCreatePostRequiresText(t *testing.T) {
	svc := NewPostService(noopPostRepo(), noopGroupRepo())

	_, err := svc.CreatePost(context.Background(), CreatePostInput{UserID: 1, Text: "   "})
	assert.Equal(t, "VALIDATION_ERROR", appErrCode(t, err))
}

func TestCreatePostRejectsUnknownGroup(t *testing.T) {
	groups := noopGroupRepo()
	groups.getByIDFn = func(_ context.Context, id uint) (*models.Group, error) {
		return nil, models.NewNotFoundError("Group", id)
	}
	svc := NewPostService(noopPostRepo(), groups)

	groupID := uint(7)
	_, err := svc.CreatePost(context.Background(), CreatePostInput{UserID: 1, Text: "hello", GroupID: &groupID})
	assert.Equal(t, "VALIDATION_ERROR", appErrCode(t, err))
}

func TestCreatePostTrimsText(t *testing.T) {
	var created *models.Post
	posts := noopPostRepo()
	posts.createFn = func(_ context.Context, p *models.Post) error {
		p.ID = 11
		created = p
		return nil
	}
	svc := NewPostService(posts, noopGroupRepo())

	_, err := svc.CreatePost(context.Background(), CreatePostInput{UserID: 3, Text: "  hello world  "})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "hello world", created.Text)
	assert.Equal(t, uint(3), created.AuthorID)
}

func TestUpdatePostMasksForeignPosts(t *testing.T) {
	posts := noopPostRepo()
	posts.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return &models.Post{ID: id, AuthorID: 42, Text: "not yours"}, nil
	}
	svc := NewPostService(posts, noopGroupRepo())

	_, err := svc.UpdatePost(context.Background(), UpdatePostInput{UserID: 1, PostID: 5, Text: "hijack"})
	// an outsider cannot tell a foreign post from a missing one
	assert.Equal(t, "NOT_FOUND", appErrCode(t, err))
}

func TestUpdatePostByAuthor(t *testing.T) {
	var saved *models.Post
	posts := noopPostRepo()
	posts.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return &models.Post{ID: id, AuthorID: 1, Text: "before"}, nil
	}
	posts.updateFn = func(_ context.Context, p *models.Post) error {
		saved = p
		return nil
	}
	svc := NewPostService(posts, noopGroupRepo())

	_, err := svc.UpdatePost(context.Background(), UpdatePostInput{UserID: 1, PostID: 5, Text: "after"})
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "after", saved.Text)
}

func TestDeletePostRequiresOwnership(t *testing.T) {
	posts := noopPostRepo()
	posts.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return &models.Post{ID: id, AuthorID: 42}, nil
	}
	deleted := false
	posts.deleteFn = func(_ context.Context, _ uint) error {
		deleted = true
		return nil
	}
	svc := NewPostService(posts, noopGroupRepo())

	err := svc.DeletePost(context.Background(), DeletePostInput{UserID: 1, PostID: 5})
	assert.Equal(t, "UNAUTHORIZED", appErrCode(t, err))
	assert.False(t, deleted)

	require.NoError(t, svc.DeletePost(context.Background(), DeletePostInput{UserID: 42, PostID: 5}))
	assert.True(t, deleted)
}

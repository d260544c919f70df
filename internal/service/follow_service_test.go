package service

import (
	"context"
	"testing"

	"kapipost/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// followRepoStub is a stub for repository.FollowRepository.
type followRepoStub struct {
	followFn         func(context.Context, uint, uint) error
	unfollowFn       func(context.Context, uint, uint) error
	isFollowingFn    func(context.Context, uint, uint) (bool, error)
	countFollowersFn func(context.Context, uint) (int64, error)
	countFollowingFn func(context.Context, uint) (int64, error)
}

func (s *followRepoStub) Follow(ctx context.Context, followerID, authorID uint) error {
	return s.followFn(ctx, followerID, authorID)
}
func (s *followRepoStub) Unfollow(ctx context.Context, followerID, authorID uint) error {
	return s.unfollowFn(ctx, followerID, authorID)
}
func (s *followRepoStub) IsFollowing(ctx context.Context, followerID, authorID uint) (bool, error) {
	return s.isFollowingFn(ctx, followerID, authorID)
}
func (s *followRepoStub) CountFollowers(ctx context.Context, userID uint) (int64, error) {
	return s.countFollowersFn(ctx, userID)
}
func (s *followRepoStub) CountFollowing(ctx context.Context, userID uint) (int64, error) {
	return s.countFollowingFn(ctx, userID)
}

func noopFollowRepo() *followRepoStub {
	return &followRepoStub{
		followFn:         func(_ context.Context, _, _ uint) error { return nil },
		unfollowFn:       func(_ context.Context, _, _ uint) error { return nil },
		isFollowingFn:    func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		countFollowersFn: func(_ context.Context, _ uint) (int64, error) { return 0, nil },
		countFollowingFn: func(_ context.Context, _ uint) (int64, error) { return 0, nil },
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	createFn        func(context.Context, *models.User) error
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	listFn          func(context.Context, int, int) ([]models.User, error)
	countFn         func(context.Context) (int64, error)
	updateFn        func(context.Context, *models.User) error
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *userRepoStub) Count(ctx context.Context) (int64, error) {
	return s.countFn(ctx)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn: func(_ context.Context, _ *models.User) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id}, nil
		},
		getByEmailFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		getByUsernameFn: func(_ context.Context, username string) (*models.User, error) {
			return nil, models.NewNotFoundError("User", username)
		},
		listFn:   func(_ context.Context, _, _ int) ([]models.User, error) { return nil, nil },
		countFn:  func(_ context.Context) (int64, error) { return 0, nil },
		updateFn: func(_ context.Context, _ *models.User) error { return nil },
	}
}

func TestFollowRejectsSelfFollow(t *testing.T) {
	users := noopUserRepo()
	users.getByUsernameFn = func(_ context.Context, username string) (*models.User, error) {
		return &models.User{ID: 1, Username: username}, nil
	}
	followed := false
	follows := noopFollowRepo()
	follows.followFn = func(_ context.Context, _, _ uint) error {
		followed = true
		return nil
	}
	svc := NewFollowService(follows, users)

	err := svc.Follow(context.Background(), 1, "myself")
	assert.Equal(t, "VALIDATION_ERROR", appErrCode(t, err))
	assert.False(t, followed)
}

func TestFollowUnknownAuthor(t *testing.T) {
	svc := NewFollowService(noopFollowRepo(), noopUserRepo())

	err := svc.Follow(context.Background(), 1, "ghost")
	assert.Equal(t, "NOT_FOUND", appErrCode(t, err))
}

func TestFollowAndUnfollowResolveUsername(t *testing.T) {
	users := noopUserRepo()
	users.getByUsernameFn = func(_ context.Context, username string) (*models.User, error) {
		return &models.User{ID: 7, Username: username}, nil
	}
	var followedAuthor, unfollowedAuthor uint
	follows := noopFollowRepo()
	follows.followFn = func(_ context.Context, _, authorID uint) error {
		followedAuthor = authorID
		return nil
	}
	follows.unfollowFn = func(_ context.Context, _, authorID uint) error {
		unfollowedAuthor = authorID
		return nil
	}
	svc := NewFollowService(follows, users)

	require.NoError(t, svc.Follow(context.Background(), 1, "author"))
	assert.Equal(t, uint(7), followedAuthor)

	require.NoError(t, svc.Unfollow(context.Background(), 1, "author"))
	assert.Equal(t, uint(7), unfollowedAuthor)
}

package service

import (
	"context"

	"kapipost/internal/models"
	"kapipost/internal/repository"
)

type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *FollowService {
	return &FollowService{followRepo: followRepo, userRepo: userRepo}
}

// Follow subscribes followerID to the named author. Following someone twice
// is the same as following them once; following yourself is refused.
func (s *FollowService) Follow(ctx context.Context, followerID uint, authorUsername string) error {
	author, err := s.userRepo.GetByUsername(ctx, authorUsername)
	if err != nil {
		return err
	}
	if author.ID == followerID {
		return models.NewValidationError("You cannot follow yourself")
	}
	return s.followRepo.Follow(ctx, followerID, author.ID)
}

// Unfollow removes the subscription. Unfollowing someone you never followed
// succeeds quietly.
func (s *FollowService) Unfollow(ctx context.Context, followerID uint, authorUsername string) error {
	author, err := s.userRepo.GetByUsername(ctx, authorUsername)
	if err != nil {
		return err
	}
	return s.followRepo.Unfollow(ctx, followerID, author.ID)
}

func (s *FollowService) IsFollowing(ctx context.Context, followerID, authorID uint) (bool, error) {
	return s.followRepo.IsFollowing(ctx, followerID, authorID)
}

package server

import (
	"kapipost/internal/models"
	"kapipost/internal/repository"
	"kapipost/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetProfile handles GET /api/profiles/:username?page=N and returns the
// profile with one page of the author's posts.
func (s *Server) GetProfile(c *fiber.Ctx) error {
	profile, err := s.userService.GetProfile(c.UserContext(), c.Params("username"), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	posts, err := s.feedService.Page(c.UserContext(),
		repository.PostFilter{AuthorID: &profile.User.ID}, parsePage(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"profile": profile,
		"posts":   posts,
	})
}

// GetMyProfile handles GET /api/profiles/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	user, err := s.userService.GetUser(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// UpdateMyProfile handles PUT /api/profiles/me
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	var req struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Bio       string `json:"bio"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.UserContext(), service.UpdateProfileInput{
		UserID:    currentUserID(c),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// FollowProfile handles POST /api/profiles/:username/follow. Following an
// author twice leaves a single follow in place.
func (s *Server) FollowProfile(c *fiber.Ctx) error {
	if err := s.followService.Follow(c.UserContext(), currentUserID(c), c.Params("username")); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UnfollowProfile handles DELETE /api/profiles/:username/follow. Unfollowing
// an author you never followed succeeds quietly.
func (s *Server) UnfollowProfile(c *fiber.Ctx) error {
	if err := s.followService.Unfollow(c.UserContext(), currentUserID(c), c.Params("username")); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

package server

import (
	"kapipost/internal/repository"

	"github.com/gofiber/fiber/v2"
)

// GetFeed handles GET /api/feed?page=N (public).
// The body comes straight from the page cache when the page is warm, so two
// requests within the TTL receive byte-identical responses.
func (s *Server) GetFeed(c *fiber.Ctx) error {
	body, err := s.feedService.GlobalPage(c.UserContext(), parsePage(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(body)
}

// GetFollowingFeed handles GET /api/feed/following?page=N. Only posts by
// authors the requester follows; never cached, every reader sees a
// different feed.
func (s *Server) GetFollowingFeed(c *fiber.Ctx) error {
	userID := currentUserID(c)

	page, err := s.feedService.Page(c.UserContext(),
		repository.PostFilter{FollowerID: &userID}, parsePage(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(page)
}

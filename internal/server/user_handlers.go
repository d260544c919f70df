package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetUsers handles GET /api/users?page=N (public, read-only).
func (s *Server) GetUsers(c *fiber.Ctx) error {
	ctx := c.UserContext()
	page := parsePage(c)
	const perPage = 10

	users, err := s.userRepo.List(ctx, perPage, (page-1)*perPage)
	if err != nil {
		return respondServiceError(c, err)
	}
	total, err := s.userRepo.Count(ctx)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"users":       users,
		"page":        page,
		"total_count": total,
	})
}

// GetUser handles GET /api/users/:id (public, read-only).
func (s *Server) GetUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userService.GetUser(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

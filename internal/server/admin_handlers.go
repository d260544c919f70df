package server

import (
	"strings"

	"kapipost/internal/models"

	"github.com/gofiber/fiber/v2"
)

// isOperator reports whether the authenticated user is on the ADMIN_USERS
// allowlist. An empty allowlist locks the admin routes for everyone.
func (s *Server) isOperator(c *fiber.Ctx) bool {
	if strings.TrimSpace(s.config.AdminUsers) == "" {
		return false
	}
	user, err := s.userService.GetUser(c.UserContext(), currentUserID(c))
	if err != nil {
		return false
	}
	for _, name := range strings.Split(s.config.AdminUsers, ",") {
		if strings.EqualFold(strings.TrimSpace(name), user.Username) {
			return true
		}
	}
	return false
}

// ClearFeedCache handles POST /api/admin/cache/clear. The next feed request
// for any page renders fresh data instead of waiting out the TTL.
func (s *Server) ClearFeedCache(c *fiber.Ctx) error {
	if !s.isOperator(c) {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewUnauthorizedError("Operator access required"))
	}

	if err := s.feedService.ClearPageCache(c.UserContext()); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"status": "cleared",
	})
}

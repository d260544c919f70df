package server

import (
	"kapipost/internal/models"
	"kapipost/internal/repository"
	"kapipost/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetGroups handles GET /api/groups?page=N, ordered by title.
func (s *Server) GetGroups(c *fiber.Ctx) error {
	page, err := s.groupService.ListGroups(c.UserContext(), parsePage(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(page)
}

// GetGroupBySlug handles GET /api/groups/:slug?page=N and returns the group
// with one page of its posts.
func (s *Server) GetGroupBySlug(c *fiber.Ctx) error {
	group, err := s.groupService.GetGroupBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return respondServiceError(c, err)
	}

	posts, err := s.feedService.Page(c.UserContext(),
		repository.PostFilter{GroupID: &group.ID}, parsePage(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"group": group,
		"posts": posts,
	})
}

// CreateGroup handles POST /api/groups
func (s *Server) CreateGroup(c *fiber.Ctx) error {
	var req struct {
		Title       string `json:"title"`
		Slug        string `json:"slug"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	group, err := s.groupService.CreateGroup(c.UserContext(), service.CreateGroupInput{
		Title:       req.Title,
		Slug:        req.Slug,
		Description: req.Description,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(group)
}

// UpdateGroup handles PUT /api/groups/:slug
func (s *Server) UpdateGroup(c *fiber.Ctx) error {
	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	group, err := s.groupService.UpdateGroup(c.UserContext(), service.UpdateGroupInput{
		Slug:        c.Params("slug"),
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(group)
}

// DeleteGroup handles DELETE /api/groups/:slug. Posts in the group stay
// behind without a group.
func (s *Server) DeleteGroup(c *fiber.Ctx) error {
	if err := s.groupService.DeleteGroup(c.UserContext(), c.Params("slug")); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

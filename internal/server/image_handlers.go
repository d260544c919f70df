package server

import (
	"io"

	"kapipost/internal/models"
	"kapipost/internal/service"

	"github.com/gofiber/fiber/v2"
)

// UploadImage handles POST /api/images (multipart). The stored file is a
// re-encoded WebP; the response carries the path to put on a post.
func (s *Server) UploadImage(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("image file is required"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	defer func() { _ = file.Close() }()

	content, err := io.ReadAll(file)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	rel, err := s.imageService.Save(service.SaveImageInput{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get(fiber.HeaderContentType),
		Content:     content,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"image": rel,
		"url":   "/media/" + rel,
	})
}

// ServeMedia handles GET /media/* for stored post images.
func (s *Server) ServeMedia(c *fiber.Ctx) error {
	full, err := s.imageService.Resolve(c.Params("*"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.SendFile(full)
}

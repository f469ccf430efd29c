package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"gymadmin/internal/domain"
	"gymadmin/internal/middleware"
	"gymadmin/internal/service/media"
)

type MediaHandler struct {
	mediaService media.Service
}

func NewMediaHandler(mediaService media.Service) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

func (h *MediaHandler) UploadAvatar(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	file, err := c.FormFile("file")
	if err != nil {
		return middleware.BadRequest("File is required")
	}

	if file.Size > 5*1024*1024 {
		return middleware.BadRequest("File size must be less than 5MB")
	}

	mimeType := file.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	fileReader, err := file.Open()
	if err != nil {
		return middleware.BadRequest("Failed to read file")
	}
	defer fileReader.Close()

	url, err := h.mediaService.UploadAvatar(c.Context(), userID, file.Filename, file.Size, mimeType, fileReader)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return middleware.NotFound("User not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"avatar_url": url})
}

func (h *MediaHandler) RemoveAvatar(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	if err := h.mediaService.RemoveAvatar(c.Context(), userID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return middleware.NotFound("User not found")
		}
		return err
	}

	return c.Status(fiber.StatusNoContent).SendString("")
}

package handlers

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/mypaws/adoption-service/internal/auth"
	"github.com/mypaws/adoption-service/internal/service"
	apperrors "github.com/mypaws/adoption-service/pkg/util"
)

// ImageHandler accepts multipart photo uploads.
type ImageHandler struct {
	service *service.ImageService
}

// NewImageHandler constructs the handler.
func NewImageHandler(imageService *service.ImageService) *ImageHandler {
	return &ImageHandler{service: imageService}
}

// Upload POST /images. Expects a multipart form with a "file" part.
func (h *ImageHandler) Upload(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return apperrors.NewValidationError("multipart field 'file' is required")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return apperrors.NewValidationError("unreadable upload")
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		return apperrors.NewValidationError("unreadable upload")
	}

	result, err := h.service.Upload(c.Context(), principal.User.ID, data)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": fiber.Map{
		"key":  result.Key,
		"url":  result.URL,
		"size": result.Size,
	}})
}

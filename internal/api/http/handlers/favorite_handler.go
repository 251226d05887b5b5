package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mypaws/adoption-service/internal/api/dto"
	"github.com/mypaws/adoption-service/internal/auth"
	"github.com/mypaws/adoption-service/internal/service"
	apperrors "github.com/mypaws/adoption-service/pkg/util"
)

// FavoriteHandler manages saved listings.
type FavoriteHandler struct {
	service *service.FavoriteService
}

// NewFavoriteHandler constructs the handler.
func NewFavoriteHandler(favoriteService *service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{service: favoriteService}
}

// Add POST /favorites/:listing_id.
func (h *FavoriteHandler) Add(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if _, err := h.service.Add(c.Context(), principal.User.ID, c.Params("listing_id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Remove DELETE /favorites/:listing_id.
func (h *FavoriteHandler) Remove(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.service.Remove(c.Context(), principal.User.ID, c.Params("listing_id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// List GET /favorites.
func (h *FavoriteHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	listings, err := h.service.List(c.Context(), principal.User.ID)
	if err != nil {
		return err
	}
	items := make([]dto.AdoptionSummary, 0, len(listings))
	for i := range listings {
		items = append(items, adoptionSummary(&listings[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

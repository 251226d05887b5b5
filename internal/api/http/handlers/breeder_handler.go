package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mypaws/adoption-service/internal/api/dto"
	"github.com/mypaws/adoption-service/internal/auth"
	"github.com/mypaws/adoption-service/internal/domain"
	"github.com/mypaws/adoption-service/internal/service"
	apperrors "github.com/mypaws/adoption-service/pkg/util"
)

// BreederHandler manages breeder applications, profiles and sale listings.
type BreederHandler struct {
	service *service.BreederService
}

// NewBreederHandler constructs the handler.
func NewBreederHandler(breederService *service.BreederService) *BreederHandler {
	return &BreederHandler{service: breederService}
}

// SubmitApplication POST /breeders/applications.
func (h *BreederHandler) SubmitApplication(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.ApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	app, err := h.service.SubmitApplication(c.Context(), principal.User.ID, service.ApplicationInput{
		BusinessName:    req.BusinessName,
		ExperienceYears: req.ExperienceYears,
		DocumentURLs:    req.DocumentURLs,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": applicationResponse(app)})
}

// MyApplication GET /breeders/applications/mine.
func (h *BreederHandler) MyApplication(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	app, err := h.service.MyApplication(c.Context(), principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": applicationResponse(app)})
}

// MyProfile GET /breeders/profile.
func (h *BreederHandler) MyProfile(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	profile, err := h.service.MyProfile(c.Context(), principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": profileResponse(profile)})
}

// UpdateProfile PUT /breeders/profile.
func (h *BreederHandler) UpdateProfile(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.ProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	profile, err := h.service.UpdateProfile(c.Context(), principal.User.ID, service.ProfileInput{
		BusinessName: req.BusinessName,
		Bio:          req.Bio,
		Website:      req.Website,
		CityID:       req.CityID,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": profileResponse(profile)})
}

// PublicProfile GET /breeders/:id. Public.
func (h *BreederHandler) PublicProfile(c *fiber.Ctx) error {
	profile, listings, err := h.service.PublicProfile(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	items := make([]dto.BreederListingSummary, 0, len(listings))
	for i := range listings {
		items = append(items, breederListingSummary(&listings[i]))
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"profile":  profileResponse(profile),
		"listings": items,
	}})
}

// CreateListing POST /breeders/listings.
func (h *BreederHandler) CreateListing(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateBreederListingRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	view, err := h.service.CreateListing(c.Context(), principal.User.ID, service.CreateListingInput{
		Title: req.Title,
		Price: req.Price,
		Pet:   petInput(req.Pet),
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": breederListingDetail(view)})
}

// UpdateListing PUT /breeders/listings/:id.
func (h *BreederHandler) UpdateListing(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateBreederListingRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	view, err := h.service.UpdateListing(c.Context(), principal.User.ID, c.Params("id"), service.UpdateListingInput{
		Title: req.Title,
		Price: req.Price,
		Pet:   petInput(req.Pet),
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": breederListingDetail(view)})
}

// DeleteListing DELETE /breeders/listings/:id.
func (h *BreederHandler) DeleteListing(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.service.DeleteListing(c.Context(), principal.User.ID, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListMine GET /breeders/listings.
func (h *BreederHandler) ListMine(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	limit, offset := pagination(c)
	listings, err := h.service.ListMine(c.Context(), principal.User.ID, limit, offset)
	if err != nil {
		return err
	}
	items := make([]dto.BreederListingSummary, 0, len(listings))
	for i := range listings {
		items = append(items, breederListingSummary(&listings[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetListingBySlug GET /breeders/listings/:slug. Public.
func (h *BreederHandler) GetListingBySlug(c *fiber.Ctx) error {
	view, err := h.service.GetListingBySlug(c.Context(), c.Params("slug"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": breederListingDetail(view)})
}

// MarkSold POST /breeders/listings/:id/sold.
func (h *BreederHandler) MarkSold(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	listing, err := h.service.MarkSold(c.Context(), principal.User.ID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": breederListingSummary(listing)})
}

func applicationResponse(app *domain.BreederApplication) dto.ApplicationResponse {
	notes := make([]dto.ReviewNoteResponse, 0, len(app.ReviewNotes))
	for _, note := range app.ReviewNotes {
		notes = append(notes, dto.ReviewNoteResponse{Note: note.Note, At: note.At})
	}
	return dto.ApplicationResponse{
		ID:              app.ID,
		UserID:          app.UserID,
		BusinessName:    app.BusinessName,
		ExperienceYears: app.ExperienceYears,
		DocumentURLs:    app.DocumentURLs,
		Status:          app.Status,
		ReviewNotes:     notes,
		ReviewedAt:      app.ReviewedAt,
		CreatedAt:       app.CreatedAt,
	}
}

func profileResponse(profile *domain.BreederProfile) dto.ProfileResponse {
	return dto.ProfileResponse{
		ID:                 profile.ID,
		UserID:             profile.UserID,
		BusinessName:       profile.BusinessName,
		Bio:                profile.Bio,
		Website:            profile.Website,
		CityID:             profile.CityID,
		IsVerified:         profile.IsVerified,
		Badge:              profile.Badge,
		ViewCount:          profile.ViewCount,
		ActiveListingCount: profile.ActiveListingCount,
		CreatedAt:          profile.CreatedAt,
	}
}

func breederListingSummary(listing *domain.BreederListing) dto.BreederListingSummary {
	return dto.BreederListingSummary{
		ID:               listing.ID,
		BreederProfileID: listing.BreederProfileID,
		PetID:            listing.PetID,
		Title:            listing.Title,
		Slug:             listing.Slug,
		Price:            listing.Price,
		Status:           listing.Status,
		IsFeatured:       listing.IsFeatured,
		FeaturedUntil:    listing.FeaturedUntil,
		PublishedAt:      listing.PublishedAt,
		SoldAt:           listing.SoldAt,
		CreatedAt:        listing.CreatedAt,
	}
}

func breederListingDetail(view *service.BreederListingView) dto.BreederListingDetail {
	detail := dto.BreederListingDetail{
		BreederListingSummary: breederListingSummary(view.Listing),
	}
	if view.Pet != nil {
		pet := petResponse(view.Pet)
		detail.Pet = &pet
	}
	return detail
}

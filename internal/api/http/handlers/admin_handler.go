package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mypaws/adoption-service/internal/api/dto"
	"github.com/mypaws/adoption-service/internal/auth"
	"github.com/mypaws/adoption-service/internal/domain"
	"github.com/mypaws/adoption-service/internal/service"
	apperrors "github.com/mypaws/adoption-service/pkg/util"
)

// AdminHandler groups moderation and account management endpoints.
type AdminHandler struct {
	adoptions *service.AdoptionService
	breeders  *service.BreederService
	admin     *service.AdminService
}

// NewAdminHandler constructs the handler.
func NewAdminHandler(adoptions *service.AdoptionService, breeders *service.BreederService, admin *service.AdminService) *AdminHandler {
	return &AdminHandler{adoptions: adoptions, breeders: breeders, admin: admin}
}

// PendingListings GET /admin/adoptions/pending.
func (h *AdminHandler) PendingListings(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	listings, err := h.adoptions.ListPendingReview(c.Context(), limit, offset)
	if err != nil {
		return err
	}
	items := make([]dto.AdoptionSummary, 0, len(listings))
	for i := range listings {
		items = append(items, adoptionSummary(&listings[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// ApproveListing POST /admin/adoptions/:id/approve.
func (h *AdminHandler) ApproveListing(c *fiber.Ctx) error {
	listing, err := h.adoptions.Approve(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": adoptionSummary(listing)})
}

// RejectListing POST /admin/adoptions/:id/reject.
func (h *AdminHandler) RejectListing(c *fiber.Ctx) error {
	var req dto.RejectRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	listing, err := h.adoptions.Reject(c.Context(), c.Params("id"), req.Reason)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": adoptionSummary(listing)})
}

// ListApplications GET /admin/applications?status=pending.
func (h *AdminHandler) ListApplications(c *fiber.Ctx) error {
	status := domain.ApplicationStatus(c.Query("status", string(domain.ApplicationStatusPending)))
	limit, offset := pagination(c)
	apps, err := h.breeders.ListApplications(c.Context(), status, limit, offset)
	if err != nil {
		return err
	}
	items := make([]dto.ApplicationResponse, 0, len(apps))
	for i := range apps {
		items = append(items, applicationResponse(&apps[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// ApproveApplication POST /admin/applications/:id/approve.
func (h *AdminHandler) ApproveApplication(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)
	var req dto.ReviewRequest
	_ = c.BodyParser(&req)
	app, err := h.breeders.ApproveApplication(c.Context(), principal.User.ID, c.Params("id"), req.Note)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": applicationResponse(app)})
}

// RejectApplication POST /admin/applications/:id/reject.
func (h *AdminHandler) RejectApplication(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)
	var req dto.ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	app, err := h.breeders.RejectApplication(c.Context(), principal.User.ID, c.Params("id"), req.Note)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": applicationResponse(app)})
}

// RequestApplicationInfo POST /admin/applications/:id/request-info.
func (h *AdminHandler) RequestApplicationInfo(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)
	var req dto.ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	app, err := h.breeders.RequestInfo(c.Context(), principal.User.ID, c.Params("id"), req.Note)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": applicationResponse(app)})
}

// SetUserStatus POST /admin/users/:id/status.
func (h *AdminHandler) SetUserStatus(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)
	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	user, err := h.admin.SetUserStatus(c.Context(), principal.User.ID, c.Params("id"), domain.UserStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": userResponse(user)})
}

// DeleteUser DELETE /admin/users/:id.
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)
	if err := h.admin.DeleteUser(c.Context(), principal.User.ID, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Dashboard GET /admin/dashboard: both moderation queues and their totals.
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	listings, err := h.adoptions.ListPendingReview(c.Context(), 50, 0)
	if err != nil {
		return err
	}
	apps, err := h.breeders.ListApplications(c.Context(), domain.ApplicationStatusPending, 50, 0)
	if err != nil {
		return err
	}
	listingItems := make([]dto.AdoptionSummary, 0, len(listings))
	for i := range listings {
		listingItems = append(listingItems, adoptionSummary(&listings[i]))
	}
	appItems := make([]dto.ApplicationResponse, 0, len(apps))
	for i := range apps {
		appItems = append(appItems, applicationResponse(&apps[i]))
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"pending_listings":     listingItems,
		"pending_applications": appItems,
		"totals": fiber.Map{
			"pending_listings":     len(listingItems),
			"pending_applications": len(appItems),
		},
	}})
}

// ExpireUsages POST /admin/usages/expire. Maintenance endpoint for the
// validity-window sweep.
func (h *AdminHandler) ExpireUsages(c *fiber.Ctx) error {
	count, err := h.admin.ExpireUsages(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"expired": count}})
}

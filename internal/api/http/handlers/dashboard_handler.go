package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mypaws/adoption-service/internal/api/dto"
	"github.com/mypaws/adoption-service/internal/auth"
	"github.com/mypaws/adoption-service/internal/domain"
	"github.com/mypaws/adoption-service/internal/service"
	apperrors "github.com/mypaws/adoption-service/pkg/util"
)

// DashboardHandler serves the account overview.
type DashboardHandler struct {
	service *service.DashboardService
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: dashboardService}
}

// Overview GET /dashboard.
func (h *DashboardHandler) Overview(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	dash, err := h.service.Overview(c.Context(), principal.User)
	if err != nil {
		return err
	}

	adoptions := make([]dto.AdoptionSummary, 0, len(dash.AdoptionListings))
	for i := range dash.AdoptionListings {
		adoptions = append(adoptions, adoptionSummary(&dash.AdoptionListings[i]))
	}
	sales := make([]dto.BreederListingSummary, 0, len(dash.BreederListings))
	for i := range dash.BreederListings {
		sales = append(sales, breederListingSummary(&dash.BreederListings[i]))
	}
	usages := make([]dto.UsageResponse, 0, len(dash.ActiveUsages))
	for _, usage := range dash.ActiveUsages {
		usages = append(usages, usageResponse(usage))
	}
	payments := make([]dto.PaymentResponse, 0, len(dash.RecentPayments))
	for i := range dash.RecentPayments {
		payments = append(payments, paymentResponse(&dash.RecentPayments[i]))
	}

	body := fiber.Map{
		"adoption_listings": adoptions,
		"breeder_listings":  sales,
		"favorite_count":    dash.FavoriteCount,
		"active_usages":     usages,
		"recent_payments":   payments,
	}
	if dash.BreederProfile != nil {
		body["breeder_profile"] = profileResponse(dash.BreederProfile)
	}
	return c.JSON(fiber.Map{"data": body})
}

func usageResponse(usage domain.ListingUsage) dto.UsageResponse {
	return dto.UsageResponse{
		ID:          usage.ID,
		ListingType: usage.ListingType,
		ListingID:   usage.ListingID,
		PricingTier: usage.PricingTier,
		IsFreeTier:  usage.IsFreeTier,
		Status:      usage.Status,
		ValidFrom:   usage.ValidFrom,
		ValidUntil:  usage.ValidUntil,
	}
}

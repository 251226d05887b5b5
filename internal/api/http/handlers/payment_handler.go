package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mypaws/adoption-service/internal/api/dto"
	"github.com/mypaws/adoption-service/internal/auth"
	"github.com/mypaws/adoption-service/internal/domain"
	"github.com/mypaws/adoption-service/internal/service"
	apperrors "github.com/mypaws/adoption-service/pkg/util"
)

// PaymentHandler manages the checkout endpoints.
type PaymentHandler struct {
	service *service.PaymentService
}

// NewPaymentHandler constructs the handler.
func NewPaymentHandler(paymentService *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: paymentService}
}

// Initiate POST /payments/initiate.
func (h *PaymentHandler) Initiate(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.InitiatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if req.ListingID == "" {
		return apperrors.NewValidationError("listing_id is required")
	}
	result, err := h.service.Initiate(c.Context(), principal.User.ID, service.InitiateInput{
		ListingType: domain.ListingType(req.ListingType),
		PricingTier: domain.PricingTier(req.PricingTier),
		ListingID:   req.ListingID,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.InitiatePaymentResponse{
		FreeActivation: result.FreeActivation,
		PaymentID:      result.PaymentID,
		OrderID:        result.OrderID,
		KeyID:          result.KeyID,
		Amount:         result.Amount,
		Currency:       result.Currency,
	}})
}

// Verify POST /payments/verify.
func (h *PaymentHandler) Verify(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.VerifyPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if req.RazorpayOrderID == "" || req.RazorpayPaymentID == "" || req.RazorpaySignature == "" {
		return apperrors.NewValidationError("razorpay_order_id, razorpay_payment_id, razorpay_signature required")
	}
	payment, err := h.service.Verify(c.Context(), principal.User.ID, service.VerifyInput{
		OrderID:   req.RazorpayOrderID,
		PaymentID: req.RazorpayPaymentID,
		Signature: req.RazorpaySignature,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": paymentResponse(payment)})
}

// ListMine GET /payments.
func (h *PaymentHandler) ListMine(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	limit, offset := pagination(c)
	payments, err := h.service.ListUserPayments(c.Context(), principal.User.ID, limit, offset)
	if err != nil {
		return err
	}
	items := make([]dto.PaymentResponse, 0, len(payments))
	for i := range payments {
		items = append(items, paymentResponse(&payments[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

func paymentResponse(payment *domain.Payment) dto.PaymentResponse {
	return dto.PaymentResponse{
		ID:          payment.ID,
		ListingType: payment.ListingType,
		ListingID:   payment.ListingID,
		PricingTier: payment.PricingTier,
		Amount:      payment.Amount,
		Subtotal:    payment.Subtotal,
		Tax:         payment.Tax,
		Currency:    payment.Currency,
		Status:      payment.Status,
		PaidAt:      payment.PaidAt,
		CreatedAt:   payment.CreatedAt,
	}
}

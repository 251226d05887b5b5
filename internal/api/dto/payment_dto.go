package dto

import (
	"time"

	"github.com/mypaws/adoption-service/internal/domain"
)

// InitiatePaymentRequest starts the publish checkout.
type InitiatePaymentRequest struct {
	ListingType string `json:"listing_type"`
	PricingTier string `json:"pricing_tier"`
	ListingID   string `json:"listing_id"`
}

// InitiatePaymentResponse carries either a free activation confirmation or
// the gateway order details for checkout.
type InitiatePaymentResponse struct {
	FreeActivation bool   `json:"free_activation"`
	PaymentID      string `json:"payment_id,omitempty"`
	OrderID        string `json:"order_id,omitempty"`
	KeyID          string `json:"key_id,omitempty"`
	Amount         int64  `json:"amount,omitempty"`
	Currency       string `json:"currency"`
}

// VerifyPaymentRequest carries the Razorpay checkout callback fields.
type VerifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
}

// PaymentResponse is the payment record shape.
type PaymentResponse struct {
	ID          string               `json:"id"`
	ListingType domain.ListingType   `json:"listing_type"`
	ListingID   string               `json:"listing_id"`
	PricingTier domain.PricingTier   `json:"pricing_tier"`
	Amount      int64                `json:"amount"`
	Subtotal    float64              `json:"subtotal"`
	Tax         float64              `json:"tax"`
	Currency    string               `json:"currency"`
	Status      domain.PaymentStatus `json:"status"`
	PaidAt      *time.Time           `json:"paid_at,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
}

// UsageResponse is one usage-ledger entry.
type UsageResponse struct {
	ID          string             `json:"id"`
	ListingType domain.ListingType `json:"listing_type"`
	ListingID   string             `json:"listing_id"`
	PricingTier domain.PricingTier `json:"pricing_tier"`
	IsFreeTier  bool               `json:"is_free_tier"`
	Status      domain.UsageStatus `json:"status"`
	ValidFrom   time.Time          `json:"valid_from"`
	ValidUntil  time.Time          `json:"valid_until"`
}

package domain

import "time"

// ListingType distinguishes the two listing products.
type ListingType string

const (
	ListingTypeAdoption ListingType = "adoption"
	ListingTypeBreeder  ListingType = "breeder"
)

// PricingTier names a pricing level controlling price and post-payment effects.
type PricingTier string

const (
	TierFree     PricingTier = "free"
	TierStandard PricingTier = "standard"
	TierFeatured PricingTier = "featured"
	TierPremium  PricingTier = "premium"
	TierBulk5    PricingTier = "bulk_5"
)

// PaymentStatus enumerates gateway payment lifecycle states.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// Payment tracks one gateway order for a listing purchase. Amounts are in
// whole rupees; Subtotal and Tax reverse an 18% GST-inclusive Amount.
type Payment struct {
	ID               string
	UserID           string
	ListingType      ListingType
	ListingID        string
	PricingTier      PricingTier
	Amount           int64
	Subtotal         float64
	Tax              float64
	Currency         string
	GatewayOrderID   *string
	GatewayPaymentID *string
	GatewaySignature *string
	Status           PaymentStatus
	FailureReason    *string
	PaidAt           *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// UsageStatus enumerates ledger entry states.
type UsageStatus string

const (
	UsageStatusActive  UsageStatus = "active"
	UsageStatusExpired UsageStatus = "expired"
)

// ListingUsage records a validity window per published listing, paid or free.
// At most one active free-tier row may exist per (user, listing type); a
// partial unique index enforces this against concurrent inserts.
type ListingUsage struct {
	ID          string
	UserID      string
	ListingType ListingType
	ListingID   string
	PricingTier PricingTier
	IsFreeTier  bool
	Status      UsageStatus
	ValidFrom   time.Time
	ValidUntil  time.Time
	CreatedAt   time.Time
}

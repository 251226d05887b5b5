package service

import (
	"math"

	"github.com/mypaws/adoption-service/internal/domain"
	apperrors "github.com/mypaws/adoption-service/pkg/util"
)

// Fixed pricing table, amounts in whole rupees (GST inclusive).
var priceTable = map[domain.ListingType]map[domain.PricingTier]int64{
	domain.ListingTypeAdoption: {
		domain.TierStandard: 199,
		domain.TierFeatured: 399,
	},
	domain.ListingTypeBreeder: {
		domain.TierStandard: 499,
		domain.TierPremium:  999,
		domain.TierBulk5:    1999,
	},
}

// PriceFor resolves the amount for a (listing type, tier) pair. The free tier
// is always amount zero. Unknown combinations are rejected rather than
// silently resolving to a free activation.
func PriceFor(listingType domain.ListingType, tier domain.PricingTier) (int64, error) {
	if tier == domain.TierFree {
		return 0, nil
	}
	tiers, ok := priceTable[listingType]
	if !ok {
		return 0, apperrors.NewValidationError("unknown listing type")
	}
	amount, ok := tiers[tier]
	if !ok {
		return 0, apperrors.NewValidationError("unknown pricing tier for listing type")
	}
	return amount, nil
}

const gstRate = 0.18

// SplitGST reverses an 18% GST-inclusive amount into subtotal and tax.
func SplitGST(amount int64) (subtotal, tax float64) {
	subtotal = math.Round(float64(amount)/(1+gstRate)*100) / 100
	tax = math.Round((float64(amount)-subtotal)*100) / 100
	return subtotal, tax
}

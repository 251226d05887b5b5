package service

import (
	"context"

	"github.com/mypaws/adoption-service/internal/domain"
	"github.com/mypaws/adoption-service/internal/repository"
)

// EligibilityService decides whether a user may publish a listing for free:
// one free slot per listing type per user.
type EligibilityService struct {
	adoptions       repository.AdoptionListingRepository
	breederListings repository.BreederListingRepository
	usages          repository.ListingUsageRepository
}

// NewEligibilityService constructs the service.
func NewEligibilityService(
	adoptions repository.AdoptionListingRepository,
	breederListings repository.BreederListingRepository,
	usages repository.ListingUsageRepository,
) *EligibilityService {
	return &EligibilityService{
		adoptions:       adoptions,
		breederListings: breederListings,
		usages:          usages,
	}
}

// FreeTierAvailable reports whether the user still holds their free slot for
// the given listing type. Two independent defenses: an active listing of that
// type denies the free tier (cheap pre-check), and so does an active
// free-tier usage row (authoritative; backed by a partial unique index that
// makes the final insert safe under concurrency).
func (s *EligibilityService) FreeTierAvailable(ctx context.Context, userID string, listingType domain.ListingType) (bool, error) {
	var activeCount int
	var err error
	switch listingType {
	case domain.ListingTypeAdoption:
		activeCount, err = s.adoptions.CountActiveByOwner(ctx, userID)
	case domain.ListingTypeBreeder:
		activeCount, err = s.breederListings.CountActiveByOwner(ctx, userID)
	default:
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if activeCount > 0 {
		return false, nil
	}

	used, err := s.usages.HasActiveFreeTier(ctx, userID, listingType)
	if err != nil {
		return false, err
	}
	return !used, nil
}

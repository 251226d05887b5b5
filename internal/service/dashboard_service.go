package service

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/mypaws/adoption-service/internal/domain"
	"github.com/mypaws/adoption-service/internal/repository"
)

// DashboardService aggregates per-user account overviews.
type DashboardService struct {
	adoptions repository.AdoptionListingRepository
	breeders  repository.BreederListingRepository
	profiles  repository.BreederProfileRepository
	favorites repository.FavoriteRepository
	usages    repository.ListingUsageRepository
	payments  repository.PaymentRepository
}

// DashboardDependencies bundles collaborators for the dashboard service.
type DashboardDependencies struct {
	Adoptions repository.AdoptionListingRepository
	Breeders  repository.BreederListingRepository
	Profiles  repository.BreederProfileRepository
	Favorites repository.FavoriteRepository
	Usages    repository.ListingUsageRepository
	Payments  repository.PaymentRepository
}

// NewDashboardService constructs the service.
func NewDashboardService(deps DashboardDependencies) *DashboardService {
	return &DashboardService{
		adoptions: deps.Adoptions,
		breeders:  deps.Breeders,
		profiles:  deps.Profiles,
		favorites: deps.Favorites,
		usages:    deps.Usages,
		payments:  deps.Payments,
	}
}

// Dashboard is the account overview payload.
type Dashboard struct {
	AdoptionListings []domain.AdoptionListing
	BreederListings  []domain.BreederListing
	BreederProfile   *domain.BreederProfile
	FavoriteCount    int
	ActiveUsages     []domain.ListingUsage
	RecentPayments   []domain.Payment
}

// Overview assembles the caller's dashboard. Breeder sections stay empty for
// non-breeders.
func (s *DashboardService) Overview(ctx context.Context, user *domain.User) (*Dashboard, error) {
	dash := &Dashboard{}

	listings, err := s.adoptions.ListWithFilter(ctx, repository.AdoptionFilter{
		OwnerID: &user.ID,
		Limit:   50,
	})
	if err != nil {
		return nil, err
	}
	dash.AdoptionListings = listings

	if user.IsBreeder {
		profile, err := s.profiles.GetByUserID(ctx, user.ID)
		if err != nil && err != pgx.ErrNoRows {
			return nil, err
		}
		if profile != nil {
			dash.BreederProfile = profile
			sales, err := s.breeders.ListWithFilter(ctx, repository.BreederListingFilter{
				BreederProfileID: &profile.ID,
				Limit:            50,
			})
			if err != nil {
				return nil, err
			}
			dash.BreederListings = sales
		}
	}

	favorites, err := s.favorites.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	dash.FavoriteCount = len(favorites)

	usages, err := s.usages.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	for _, usage := range usages {
		if usage.Status == domain.UsageStatusActive {
			dash.ActiveUsages = append(dash.ActiveUsages, usage)
		}
	}

	payments, err := s.payments.ListByUser(ctx, user.ID, 10, 0)
	if err != nil {
		return nil, err
	}
	dash.RecentPayments = payments

	return dash, nil
}

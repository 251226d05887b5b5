package service

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/mypaws/adoption-service/internal/domain"
	"github.com/mypaws/adoption-service/internal/repository"
	apperrors "github.com/mypaws/adoption-service/pkg/util"
)

// FavoriteService manages a user's saved adoption listings.
type FavoriteService struct {
	favorites repository.FavoriteRepository
	listings  repository.AdoptionListingRepository
}

// NewFavoriteService constructs the service.
func NewFavoriteService(favorites repository.FavoriteRepository, listings repository.AdoptionListingRepository) *FavoriteService {
	return &FavoriteService{favorites: favorites, listings: listings}
}

// Add favorites an active listing. The (user, listing) pair is unique;
// re-adding an existing favorite is a conflict.
func (s *FavoriteService) Add(ctx context.Context, userID, listingID string) (*domain.Favorite, error) {
	listing, err := s.listings.GetByID(ctx, listingID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("listing")
		}
		return nil, err
	}
	if listing.Status != domain.AdoptionStatusActive {
		return nil, apperrors.NewInvalidStatus("only active listings can be favorited")
	}
	favorite := &domain.Favorite{UserID: userID, AdoptionListingID: listingID}
	if err := s.favorites.Create(ctx, favorite); err != nil {
		if err == repository.ErrDuplicateFavorite {
			return nil, apperrors.NewConflict("listing already favorited")
		}
		return nil, err
	}
	return favorite, nil
}

// Remove deletes a favorite.
func (s *FavoriteService) Remove(ctx context.Context, userID, listingID string) error {
	if err := s.favorites.Delete(ctx, userID, listingID); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("favorite")
		}
		return err
	}
	return nil
}

// List returns the user's favorites with each listing resolved. Listings that
// have since been deleted fall out of the result.
func (s *FavoriteService) List(ctx context.Context, userID string) ([]domain.AdoptionListing, error) {
	favorites, err := s.favorites.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	result := make([]domain.AdoptionListing, 0, len(favorites))
	for _, favorite := range favorites {
		listing, err := s.listings.GetByID(ctx, favorite.AdoptionListingID)
		if err != nil {
			if err == pgx.ErrNoRows {
				continue
			}
			return nil, err
		}
		result = append(result, *listing)
	}
	return result, nil
}

package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mypaws/adoption-service/internal/domain"
)

// ErrDuplicateFavorite signals the (user, listing) pair already exists.
var ErrDuplicateFavorite = errors.New("listing already favorited")

// FavoriteRepository manages the user-listing favorites join.
type FavoriteRepository interface {
	Create(ctx context.Context, favorite *domain.Favorite) error
	Delete(ctx context.Context, userID, listingID string) error
	ListByUser(ctx context.Context, userID string) ([]domain.Favorite, error)
}

type favoriteRepository struct {
	db DB
}

// NewFavoriteRepository instantiates the repository.
func NewFavoriteRepository(db DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) Create(ctx context.Context, favorite *domain.Favorite) error {
	const query = `
        INSERT INTO favorites (user_id, adoption_listing_id)
        VALUES ($1,$2)
        RETURNING id, created_at`
	err := r.db.QueryRow(ctx, query,
		favorite.UserID,
		favorite.AdoptionListingID,
	).Scan(&favorite.ID, &favorite.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateFavorite
		}
		return err
	}
	return nil
}

func (r *favoriteRepository) Delete(ctx context.Context, userID, listingID string) error {
	cmd, err := r.db.Exec(ctx,
		`DELETE FROM favorites WHERE user_id=$1 AND adoption_listing_id=$2`,
		userID, listingID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *favoriteRepository) ListByUser(ctx context.Context, userID string) ([]domain.Favorite, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, adoption_listing_id, created_at
         FROM favorites WHERE user_id=$1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Favorite
	for rows.Next() {
		var favorite domain.Favorite
		if err := rows.Scan(&favorite.ID, &favorite.UserID, &favorite.AdoptionListingID, &favorite.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, favorite)
	}
	return result, rows.Err()
}

package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/mypaws/adoption-service/internal/domain"
)

// BreederProfileRepository manages breeder profile persistence.
type BreederProfileRepository interface {
	Create(ctx context.Context, profile *domain.BreederProfile) error
	Update(ctx context.Context, profile *domain.BreederProfile) error
	GetByID(ctx context.Context, id string) (*domain.BreederProfile, error)
	GetByUserID(ctx context.Context, userID string) (*domain.BreederProfile, error)
	IncrementViewCount(ctx context.Context, id string) error
	AdjustActiveListingCount(ctx context.Context, id string, delta int) error
}

type breederProfileRepository struct {
	db DB
}

// NewBreederProfileRepository instantiates the repository.
func NewBreederProfileRepository(db DB) BreederProfileRepository {
	return &breederProfileRepository{db: db}
}

const profileColumns = `id, user_id, business_name, bio, website, city_id, is_verified, badge,
        view_count, active_listing_count, created_at, updated_at`

func (r *breederProfileRepository) Create(ctx context.Context, profile *domain.BreederProfile) error {
	const query = `
        INSERT INTO breeder_profiles (user_id, business_name, bio, website, city_id, is_verified, badge)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		profile.UserID,
		profile.BusinessName,
		profile.Bio,
		profile.Website,
		profile.CityID,
		profile.IsVerified,
		profile.Badge,
	).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
}

func (r *breederProfileRepository) Update(ctx context.Context, profile *domain.BreederProfile) error {
	const query = `
        UPDATE breeder_profiles SET business_name=$1, bio=$2, website=$3, city_id=$4,
            is_verified=$5, badge=$6, updated_at=NOW()
        WHERE id=$7`
	cmd, err := r.db.Exec(ctx, query,
		profile.BusinessName,
		profile.Bio,
		profile.Website,
		profile.CityID,
		profile.IsVerified,
		profile.Badge,
		profile.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *breederProfileRepository) GetByID(ctx context.Context, id string) (*domain.BreederProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM breeder_profiles WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *breederProfileRepository) GetByUserID(ctx context.Context, userID string) (*domain.BreederProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM breeder_profiles WHERE user_id=$1`
	return r.fetchSingle(ctx, query, userID)
}

func (r *breederProfileRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.BreederProfile, error) {
	var profile domain.BreederProfile
	if err := r.db.QueryRow(ctx, query, arg).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.BusinessName,
		&profile.Bio,
		&profile.Website,
		&profile.CityID,
		&profile.IsVerified,
		&profile.Badge,
		&profile.ViewCount,
		&profile.ActiveListingCount,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *breederProfileRepository) IncrementViewCount(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE breeder_profiles SET view_count=view_count+1 WHERE id=$1`, id)
	return err
}

func (r *breederProfileRepository) AdjustActiveListingCount(ctx context.Context, id string, delta int) error {
	_, err := r.db.Exec(ctx,
		`UPDATE breeder_profiles
         SET active_listing_count=GREATEST(active_listing_count+$1, 0), updated_at=NOW()
         WHERE id=$2`, delta, id)
	return err
}

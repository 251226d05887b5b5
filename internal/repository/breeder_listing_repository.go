package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/mypaws/adoption-service/internal/domain"
)

// BreederListingFilter captures breeder listing search parameters.
type BreederListingFilter struct {
	BreederProfileID *string
	Statuses         []domain.BreederStatus
	Limit            int
	Offset           int
}

// BreederListingRepository encapsulates breeder listing persistence.
type BreederListingRepository interface {
	Create(ctx context.Context, listing *domain.BreederListing) error
	Update(ctx context.Context, listing *domain.BreederListing) error
	GetByID(ctx context.Context, id string) (*domain.BreederListing, error)
	GetBySlug(ctx context.Context, slug string) (*domain.BreederListing, error)
	ListWithFilter(ctx context.Context, filter BreederListingFilter) ([]domain.BreederListing, error)
	CountActiveByProfile(ctx context.Context, profileID string) (int, error)
	CountActiveByOwner(ctx context.Context, userID string) (int, error)
	SoftDelete(ctx context.Context, id string) error
}

type breederListingRepository struct {
	db DB
}

// NewBreederListingRepository instantiates the repository.
func NewBreederListingRepository(db DB) BreederListingRepository {
	return &breederListingRepository{db: db}
}

const breederListingColumns = `id, breeder_profile_id, pet_id, title, slug, price, status,
        is_featured, featured_until, published_at, sold_at, is_deleted, deleted_at, created_at, updated_at`

func (r *breederListingRepository) Create(ctx context.Context, listing *domain.BreederListing) error {
	const query = `
        INSERT INTO breeder_listings (breeder_profile_id, pet_id, title, slug, price, status,
            is_featured, featured_until, published_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		listing.BreederProfileID,
		listing.PetID,
		listing.Title,
		listing.Slug,
		listing.Price,
		listing.Status,
		listing.IsFeatured,
		listing.FeaturedUntil,
		listing.PublishedAt,
	).Scan(&listing.ID, &listing.CreatedAt, &listing.UpdatedAt)
}

func (r *breederListingRepository) Update(ctx context.Context, listing *domain.BreederListing) error {
	const query = `
        UPDATE breeder_listings SET title=$1, price=$2, status=$3, is_featured=$4,
            featured_until=$5, published_at=$6, sold_at=$7, updated_at=NOW()
        WHERE id=$8 AND is_deleted=FALSE`
	cmd, err := r.db.Exec(ctx, query,
		listing.Title,
		listing.Price,
		listing.Status,
		listing.IsFeatured,
		listing.FeaturedUntil,
		listing.PublishedAt,
		listing.SoldAt,
		listing.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *breederListingRepository) GetByID(ctx context.Context, id string) (*domain.BreederListing, error) {
	query := `SELECT ` + breederListingColumns + ` FROM breeder_listings WHERE id=$1 AND is_deleted=FALSE`
	return r.fetchSingle(ctx, query, id)
}

func (r *breederListingRepository) GetBySlug(ctx context.Context, slug string) (*domain.BreederListing, error) {
	query := `SELECT ` + breederListingColumns + ` FROM breeder_listings WHERE slug=$1 AND is_deleted=FALSE`
	return r.fetchSingle(ctx, query, slug)
}

func (r *breederListingRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.BreederListing, error) {
	var listing domain.BreederListing
	if err := r.db.QueryRow(ctx, query, arg).Scan(
		&listing.ID,
		&listing.BreederProfileID,
		&listing.PetID,
		&listing.Title,
		&listing.Slug,
		&listing.Price,
		&listing.Status,
		&listing.IsFeatured,
		&listing.FeaturedUntil,
		&listing.PublishedAt,
		&listing.SoldAt,
		&listing.IsDeleted,
		&listing.DeletedAt,
		&listing.CreatedAt,
		&listing.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &listing, nil
}

func (r *breederListingRepository) ListWithFilter(ctx context.Context, filter BreederListingFilter) ([]domain.BreederListing, error) {
	clauses := []string{"is_deleted=FALSE"}
	args := []any{}

	if filter.BreederProfileID != nil {
		args = append(args, *filter.BreederProfileID)
		clauses = append(clauses, fmt.Sprintf("breeder_profile_id=$%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`SELECT %s FROM breeder_listings WHERE %s
        ORDER BY is_featured DESC, published_at DESC NULLS LAST LIMIT %d OFFSET %d`,
		breederListingColumns, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.BreederListing
	for rows.Next() {
		var listing domain.BreederListing
		if err := rows.Scan(
			&listing.ID,
			&listing.BreederProfileID,
			&listing.PetID,
			&listing.Title,
			&listing.Slug,
			&listing.Price,
			&listing.Status,
			&listing.IsFeatured,
			&listing.FeaturedUntil,
			&listing.PublishedAt,
			&listing.SoldAt,
			&listing.IsDeleted,
			&listing.DeletedAt,
			&listing.CreatedAt,
			&listing.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, listing)
	}
	return result, rows.Err()
}

func (r *breederListingRepository) CountActiveByProfile(ctx context.Context, profileID string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM breeder_listings
         WHERE breeder_profile_id=$1 AND status=$2 AND is_deleted=FALSE`,
		profileID, domain.BreederStatusActive,
	).Scan(&count)
	return count, err
}

func (r *breederListingRepository) CountActiveByOwner(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM breeder_listings bl
         JOIN breeder_profiles bp ON bp.id = bl.breeder_profile_id
         WHERE bp.user_id=$1 AND bl.status=$2 AND bl.is_deleted=FALSE`,
		userID, domain.BreederStatusActive,
	).Scan(&count)
	return count, err
}

func (r *breederListingRepository) SoftDelete(ctx context.Context, id string) error {
	cmd, err := r.db.Exec(ctx,
		`UPDATE breeder_listings SET is_deleted=TRUE, deleted_at=NOW(), updated_at=NOW()
         WHERE id=$1 AND is_deleted=FALSE`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

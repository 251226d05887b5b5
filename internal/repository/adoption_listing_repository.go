package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/mypaws/adoption-service/internal/domain"
)

// AdoptionFilter captures public search parameters.
type AdoptionFilter struct {
	PetTypeID *string
	BreedID   *string
	CityID    *string
	Statuses  []domain.AdoptionStatus
	OwnerID   *string
	Limit     int
	Offset    int
}

// AdoptionListingRepository encapsulates adoption listing persistence.
type AdoptionListingRepository interface {
	Create(ctx context.Context, listing *domain.AdoptionListing) error
	Update(ctx context.Context, listing *domain.AdoptionListing) error
	GetByID(ctx context.Context, id string) (*domain.AdoptionListing, error)
	GetBySlug(ctx context.Context, slug string) (*domain.AdoptionListing, error)
	ListWithFilter(ctx context.Context, filter AdoptionFilter) ([]domain.AdoptionListing, error)
	CountActiveByOwner(ctx context.Context, ownerID string) (int, error)
	IncrementViewCount(ctx context.Context, id string) error
	IncrementInquiryCount(ctx context.Context, id string) error
	SoftDelete(ctx context.Context, id string) error
}

type adoptionListingRepository struct {
	db DB
}

// NewAdoptionListingRepository instantiates the repository.
func NewAdoptionListingRepository(db DB) AdoptionListingRepository {
	return &adoptionListingRepository{db: db}
}

const adoptionColumns = `id, pet_id, owner_id, title, slug, fee, status, is_featured, featured_until,
        view_count, inquiry_count, rejection_reason, published_at, adopted_at,
        is_deleted, deleted_at, created_at, updated_at`

func (r *adoptionListingRepository) Create(ctx context.Context, listing *domain.AdoptionListing) error {
	const query = `
        INSERT INTO adoption_listings (pet_id, owner_id, title, slug, fee, status, is_featured,
            featured_until, published_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		listing.PetID,
		listing.OwnerID,
		listing.Title,
		listing.Slug,
		listing.Fee,
		listing.Status,
		listing.IsFeatured,
		listing.FeaturedUntil,
		listing.PublishedAt,
	).Scan(&listing.ID, &listing.CreatedAt, &listing.UpdatedAt)
}

func (r *adoptionListingRepository) Update(ctx context.Context, listing *domain.AdoptionListing) error {
	const query = `
        UPDATE adoption_listings SET title=$1, fee=$2, status=$3, is_featured=$4, featured_until=$5,
            rejection_reason=$6, published_at=$7, adopted_at=$8, updated_at=NOW()
        WHERE id=$9 AND is_deleted=FALSE`
	cmd, err := r.db.Exec(ctx, query,
		listing.Title,
		listing.Fee,
		listing.Status,
		listing.IsFeatured,
		listing.FeaturedUntil,
		listing.RejectionReason,
		listing.PublishedAt,
		listing.AdoptedAt,
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

func (r *adoptionListingRepository) GetByID(ctx context.Context, id string) (*domain.AdoptionListing, error) {
	query := `SELECT ` + adoptionColumns + ` FROM adoption_listings WHERE id=$1 AND is_deleted=FALSE`
	return r.fetchSingle(ctx, query, id)
}

func (r *adoptionListingRepository) GetBySlug(ctx context.Context, slug string) (*domain.AdoptionListing, error) {
	query := `SELECT ` + adoptionColumns + ` FROM adoption_listings WHERE slug=$1 AND is_deleted=FALSE`
	return r.fetchSingle(ctx, query, slug)
}

func (r *adoptionListingRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.AdoptionListing, error) {
	var listing domain.AdoptionListing
	if err := r.db.QueryRow(ctx, query, arg).Scan(
		&listing.ID,
		&listing.PetID,
		&listing.OwnerID,
		&listing.Title,
		&listing.Slug,
		&listing.Fee,
		&listing.Status,
		&listing.IsFeatured,
		&listing.FeaturedUntil,
		&listing.ViewCount,
		&listing.InquiryCount,
		&listing.RejectionReason,
		&listing.PublishedAt,
		&listing.AdoptedAt,
		&listing.IsDeleted,
		&listing.DeletedAt,
		&listing.CreatedAt,
		&listing.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &listing, nil
}

func (r *adoptionListingRepository) ListWithFilter(ctx context.Context, filter AdoptionFilter) ([]domain.AdoptionListing, error) {
	base := `SELECT al.id, al.pet_id, al.owner_id, al.title, al.slug, al.fee, al.status,
            al.is_featured, al.featured_until, al.view_count, al.inquiry_count, al.rejection_reason,
            al.published_at, al.adopted_at, al.is_deleted, al.deleted_at, al.created_at, al.updated_at
        FROM adoption_listings al`
	clauses := []string{"al.is_deleted=FALSE"}
	args := []any{}
	joins := ""

	if filter.OwnerID != nil {
		args = append(args, *filter.OwnerID)
		clauses = append(clauses, fmt.Sprintf("al.owner_id=$%d", len(args)))
	}
	if filter.PetTypeID != nil || filter.BreedID != nil || filter.CityID != nil {
		joins = " JOIN pets p ON p.id = al.pet_id"
	}
	if filter.PetTypeID != nil {
		args = append(args, *filter.PetTypeID)
		clauses = append(clauses, fmt.Sprintf("p.pet_type_id=$%d", len(args)))
	}
	if filter.BreedID != nil {
		args = append(args, *filter.BreedID)
		clauses = append(clauses, fmt.Sprintf("p.breed_id=$%d", len(args)))
	}
	if filter.CityID != nil {
		args = append(args, *filter.CityID)
		clauses = append(clauses, fmt.Sprintf("p.city_id=$%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("al.status IN (%s)", strings.Join(placeholders, ",")))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s%s WHERE %s ORDER BY al.is_featured DESC, al.published_at DESC NULLS LAST LIMIT %d OFFSET %d`,
		base, joins, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.AdoptionListing
	for rows.Next() {
		var listing domain.AdoptionListing
		if err := rows.Scan(
			&listing.ID,
			&listing.PetID,
			&listing.OwnerID,
			&listing.Title,
			&listing.Slug,
			&listing.Fee,
			&listing.Status,
			&listing.IsFeatured,
			&listing.FeaturedUntil,
			&listing.ViewCount,
			&listing.InquiryCount,
			&listing.RejectionReason,
			&listing.PublishedAt,
			&listing.AdoptedAt,
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

func (r *adoptionListingRepository) CountActiveByOwner(ctx context.Context, ownerID string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM adoption_listings
         WHERE owner_id=$1 AND status=$2 AND is_deleted=FALSE`,
		ownerID, domain.AdoptionStatusActive,
	).Scan(&count)
	return count, err
}

func (r *adoptionListingRepository) IncrementViewCount(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE adoption_listings SET view_count=view_count+1 WHERE id=$1`, id)
	return err
}

func (r *adoptionListingRepository) IncrementInquiryCount(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE adoption_listings SET inquiry_count=inquiry_count+1 WHERE id=$1`, id)
	return err
}

func (r *adoptionListingRepository) SoftDelete(ctx context.Context, id string) error {
	cmd, err := r.db.Exec(ctx,
		`UPDATE adoption_listings SET is_deleted=TRUE, deleted_at=NOW(), updated_at=NOW()
         WHERE id=$1 AND is_deleted=FALSE`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

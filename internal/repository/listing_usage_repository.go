package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mypaws/adoption-service/internal/domain"
)

// ErrFreeTierUsed signals the partial unique index rejected a second active
// free-tier row for the same (user, listing type).
var ErrFreeTierUsed = errors.New("free tier already used")

// ListingUsageRepository manages the usage ledger.
type ListingUsageRepository interface {
	Create(ctx context.Context, usage *domain.ListingUsage) error
	HasActiveFreeTier(ctx context.Context, userID string, listingType domain.ListingType) (bool, error)
	ListByUser(ctx context.Context, userID string) ([]domain.ListingUsage, error)
	ExpireOutdated(ctx context.Context) (int64, error)
}

type listingUsageRepository struct {
	db DB
}

// NewListingUsageRepository instantiates the repository.
func NewListingUsageRepository(db DB) ListingUsageRepository {
	return &listingUsageRepository{db: db}
}

func (r *listingUsageRepository) Create(ctx context.Context, usage *domain.ListingUsage) error {
	const query = `
        INSERT INTO listing_usages (user_id, listing_type, listing_id, pricing_tier, is_free_tier,
            status, valid_from, valid_until)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at`
	err := r.db.QueryRow(ctx, query,
		usage.UserID,
		usage.ListingType,
		usage.ListingID,
		usage.PricingTier,
		usage.IsFreeTier,
		usage.Status,
		usage.ValidFrom,
		usage.ValidUntil,
	).Scan(&usage.ID, &usage.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		// 23505: unique_violation from the partial free-tier index.
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrFreeTierUsed
		}
		return err
	}
	return nil
}

func (r *listingUsageRepository) HasActiveFreeTier(ctx context.Context, userID string, listingType domain.ListingType) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (
            SELECT 1 FROM listing_usages
            WHERE user_id=$1 AND listing_type=$2 AND is_free_tier=TRUE AND status=$3
         )`,
		userID, listingType, domain.UsageStatusActive,
	).Scan(&exists)
	return exists, err
}

func (r *listingUsageRepository) ListByUser(ctx context.Context, userID string) ([]domain.ListingUsage, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, listing_type, listing_id, pricing_tier, is_free_tier, status,
                valid_from, valid_until, created_at
         FROM listing_usages WHERE user_id=$1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ListingUsage
	for rows.Next() {
		var usage domain.ListingUsage
		if err := rows.Scan(
			&usage.ID,
			&usage.UserID,
			&usage.ListingType,
			&usage.ListingID,
			&usage.PricingTier,
			&usage.IsFreeTier,
			&usage.Status,
			&usage.ValidFrom,
			&usage.ValidUntil,
			&usage.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, usage)
	}
	return result, rows.Err()
}

// ExpireOutdated flips usages past their validity window to expired. Invoked
// opportunistically; there is no background scheduler.
func (r *listingUsageRepository) ExpireOutdated(ctx context.Context) (int64, error) {
	cmd, err := r.db.Exec(ctx,
		`UPDATE listing_usages SET status=$1
         WHERE status=$2 AND valid_until < NOW()`,
		domain.UsageStatusExpired, domain.UsageStatusActive)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

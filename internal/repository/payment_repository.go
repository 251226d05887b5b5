package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/mypaws/adoption-service/internal/domain"
)

// PaymentRepository manages payment record persistence.
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	Update(ctx context.Context, payment *domain.Payment) error
	GetByID(ctx context.Context, id string) (*domain.Payment, error)
	GetByGatewayOrderID(ctx context.Context, orderID string) (*domain.Payment, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Payment, error)
}

type paymentRepository struct {
	db DB
}

// NewPaymentRepository instantiates the repository.
func NewPaymentRepository(db DB) PaymentRepository {
	return &paymentRepository{db: db}
}

const paymentColumns = `id, user_id, listing_type, listing_id, pricing_tier, amount, subtotal, tax,
        currency, gateway_order_id, gateway_payment_id, gateway_signature, status, failure_reason,
        paid_at, created_at, updated_at`

func (r *paymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	const query = `
        INSERT INTO payments (user_id, listing_type, listing_id, pricing_tier, amount, subtotal,
            tax, currency, gateway_order_id, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING id, created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		payment.UserID,
		payment.ListingType,
		payment.ListingID,
		payment.PricingTier,
		payment.Amount,
		payment.Subtotal,
		payment.Tax,
		payment.Currency,
		payment.GatewayOrderID,
		payment.Status,
	).Scan(&payment.ID, &payment.CreatedAt, &payment.UpdatedAt)
}

func (r *paymentRepository) Update(ctx context.Context, payment *domain.Payment) error {
	const query = `
        UPDATE payments SET gateway_order_id=$1, gateway_payment_id=$2, gateway_signature=$3,
            status=$4, failure_reason=$5, paid_at=$6, updated_at=NOW()
        WHERE id=$7`
	cmd, err := r.db.Exec(ctx, query,
		payment.GatewayOrderID,
		payment.GatewayPaymentID,
		payment.GatewaySignature,
		payment.Status,
		payment.FailureReason,
		payment.PaidAt,
		payment.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *paymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *paymentRepository) GetByGatewayOrderID(ctx context.Context, orderID string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE gateway_order_id=$1`
	return r.fetchSingle(ctx, query, orderID)
}

func (r *paymentRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Payment, error) {
	var payment domain.Payment
	if err := r.db.QueryRow(ctx, query, arg).Scan(
		&payment.ID,
		&payment.UserID,
		&payment.ListingType,
		&payment.ListingID,
		&payment.PricingTier,
		&payment.Amount,
		&payment.Subtotal,
		&payment.Tax,
		&payment.Currency,
		&payment.GatewayOrderID,
		&payment.GatewayPaymentID,
		&payment.GatewaySignature,
		&payment.Status,
		&payment.FailureReason,
		&payment.PaidAt,
		&payment.CreatedAt,
		&payment.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Payment, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	query := `SELECT ` + paymentColumns + ` FROM payments
        WHERE user_id=$1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Payment
	for rows.Next() {
		var payment domain.Payment
		if err := rows.Scan(
			&payment.ID,
			&payment.UserID,
			&payment.ListingType,
			&payment.ListingID,
			&payment.PricingTier,
			&payment.Amount,
			&payment.Subtotal,
			&payment.Tax,
			&payment.Currency,
			&payment.GatewayOrderID,
			&payment.GatewayPaymentID,
			&payment.GatewaySignature,
			&payment.Status,
			&payment.FailureReason,
			&payment.PaidAt,
			&payment.CreatedAt,
			&payment.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, payment)
	}
	return result, rows.Err()
}

package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mypaws/adoption-service/internal/domain"
	"github.com/mypaws/adoption-service/internal/events"
	"github.com/mypaws/adoption-service/internal/gateway"
	"github.com/mypaws/adoption-service/internal/repository"
	apperrors "github.com/mypaws/adoption-service/pkg/util"
)

// PaymentService coordinates the listing monetization workflow: eligibility,
// order creation, signature verification, ledger writes and activation.
type PaymentService struct {
	uow         repository.UnitOfWork
	payments    repository.PaymentRepository
	adoptions   repository.AdoptionListingRepository
	breeders    repository.BreederListingRepository
	profiles    repository.BreederProfileRepository
	eligibility *EligibilityService
	gateway     gateway.PaymentGateway
	dispatcher  events.Dispatcher
	currency    string
	usageWindow time.Duration
	featuredWin time.Duration
	now         func() time.Time
}

// PaymentDependencies bundles collaborators for the payment service.
type PaymentDependencies struct {
	UnitOfWork      repository.UnitOfWork
	PaymentRepo     repository.PaymentRepository
	Adoptions       repository.AdoptionListingRepository
	BreederListings repository.BreederListingRepository
	Profiles        repository.BreederProfileRepository
	Eligibility     *EligibilityService
	Gateway         gateway.PaymentGateway
	Dispatcher      events.Dispatcher
}

// PaymentConfig holds workflow parameters.
type PaymentConfig struct {
	Currency          string
	UsageValidityDays int
	FeaturedDays      int
}

// NewPaymentService constructs the service.
func NewPaymentService(cfg PaymentConfig, deps PaymentDependencies) *PaymentService {
	if cfg.Currency == "" {
		cfg.Currency = "INR"
	}
	if cfg.UsageValidityDays <= 0 {
		cfg.UsageValidityDays = 90
	}
	if cfg.FeaturedDays <= 0 {
		cfg.FeaturedDays = 30
	}
	return &PaymentService{
		uow:         deps.UnitOfWork,
		payments:    deps.PaymentRepo,
		adoptions:   deps.Adoptions,
		breeders:    deps.BreederListings,
		profiles:    deps.Profiles,
		eligibility: deps.Eligibility,
		gateway:     deps.Gateway,
		dispatcher:  deps.Dispatcher,
		currency:    cfg.Currency,
		usageWindow: time.Duration(cfg.UsageValidityDays) * 24 * time.Hour,
		featuredWin: time.Duration(cfg.FeaturedDays) * 24 * time.Hour,
		now:         time.Now,
	}
}

// InitiateInput describes a payment initiation request.
type InitiateInput struct {
	ListingType domain.ListingType
	PricingTier domain.PricingTier
	ListingID   string
}

// InitiateResult is returned to the client. For the free path only
// FreeActivation is set; for the paid path the order fields drive checkout.
type InitiateResult struct {
	FreeActivation bool
	PaymentID      string
	OrderID        string
	KeyID          string
	Amount         int64
	Currency       string
}

// Initiate starts the publish flow for a listing. Eligible free requests
// short-circuit straight to activation; everything else creates a pending
// payment and a gateway order.
func (s *PaymentService) Initiate(ctx context.Context, userID string, input InitiateInput) (*InitiateResult, error) {
	if input.ListingType != domain.ListingTypeAdoption && input.ListingType != domain.ListingTypeBreeder {
		return nil, apperrors.NewValidationError("listing_type must be adoption or breeder")
	}
	amount, err := PriceFor(input.ListingType, input.PricingTier)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeListing(ctx, userID, input); err != nil {
		return nil, err
	}

	// Tier "free" and a computed amount of zero are the same thing: no
	// payment required.
	if amount == 0 {
		eligible, err := s.eligibility.FreeTierAvailable(ctx, userID, input.ListingType)
		if err != nil {
			return nil, err
		}
		if !eligible {
			return nil, apperrors.NewInvalidStatus("free tier already used for this listing type")
		}
		if err := s.activateFree(ctx, userID, input); err != nil {
			return nil, err
		}
		return &InitiateResult{FreeActivation: true, Currency: s.currency}, nil
	}

	subtotal, tax := SplitGST(amount)
	payment := &domain.Payment{
		UserID:      userID,
		ListingType: input.ListingType,
		ListingID:   input.ListingID,
		PricingTier: input.PricingTier,
		Amount:      amount,
		Subtotal:    subtotal,
		Tax:         tax,
		Currency:    s.currency,
		Status:      domain.PaymentStatusPending,
	}
	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, err
	}

	receipt := "rcpt_" + randomSuffix(18)
	order, err := s.gateway.CreateOrder(ctx, amount, s.currency, receipt, map[string]string{
		"payment_id":   payment.ID,
		"listing_type": string(input.ListingType),
		"listing_id":   input.ListingID,
	})
	if err != nil {
		reason := err.Error()
		payment.Status = domain.PaymentStatusFailed
		payment.FailureReason = &reason
		_ = s.payments.Update(ctx, payment)
		s.publish(events.Event{
			Type:    events.EventPaymentFailed,
			UserID:  userID,
			Payload: events.PaymentFailedPayload{PaymentID: payment.ID, Reason: reason},
		})
		return nil, apperrors.NewGatewayError(err)
	}

	payment.GatewayOrderID = &order.OrderID
	if err := s.payments.Update(ctx, payment); err != nil {
		return nil, err
	}

	return &InitiateResult{
		PaymentID: payment.ID,
		OrderID:   order.OrderID,
		KeyID:     order.KeyID,
		Amount:    amount,
		Currency:  s.currency,
	}, nil
}

// authorizeListing loads the target listing and confirms the caller owns it
// and that it still awaits publication. Without this check anyone with a
// fresh free-tier slot could activate somebody else's listing.
func (s *PaymentService) authorizeListing(ctx context.Context, userID string, input InitiateInput) error {
	switch input.ListingType {
	case domain.ListingTypeAdoption:
		listing, err := s.adoptions.GetByID(ctx, input.ListingID)
		if err != nil {
			if err == pgx.ErrNoRows {
				return apperrors.NewNotFound("listing")
			}
			return err
		}
		if listing.OwnerID != userID {
			return apperrors.NewForbidden("listing belongs to another user")
		}
		if listing.Status != domain.AdoptionStatusPendingPayment && listing.Status != domain.AdoptionStatusDraft {
			return apperrors.NewInvalidStatus("listing is not awaiting payment")
		}
	case domain.ListingTypeBreeder:
		listing, err := s.breeders.GetByID(ctx, input.ListingID)
		if err != nil {
			if err == pgx.ErrNoRows {
				return apperrors.NewNotFound("listing")
			}
			return err
		}
		profile, err := s.profiles.GetByID(ctx, listing.BreederProfileID)
		if err != nil {
			return err
		}
		if profile.UserID != userID {
			return apperrors.NewForbidden("listing belongs to another breeder")
		}
		if listing.Status != domain.BreederStatusPendingPayment && listing.Status != domain.BreederStatusDraft {
			return apperrors.NewInvalidStatus("listing is not awaiting payment")
		}
	}
	return nil
}

// VerifyInput carries the checkout callback identifiers.
type VerifyInput struct {
	OrderID   string
	PaymentID string
	Signature string
}

// Verify completes a payment. Idempotent: a payment already completed returns
// success without side effects. On a valid signature the completion, the
// usage-ledger insert and the listing activation commit in one transaction,
// so a failed activation leaves the payment pending and retryable.
func (s *PaymentService) Verify(ctx context.Context, userID string, input VerifyInput) (*domain.Payment, error) {
	payment, err := s.payments.GetByGatewayOrderID(ctx, input.OrderID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("payment")
		}
		return nil, err
	}
	if payment.UserID != userID {
		return nil, apperrors.NewForbidden("payment belongs to another user")
	}
	if payment.Status == domain.PaymentStatusCompleted {
		return payment, nil
	}
	if payment.Status == domain.PaymentStatusRefunded {
		return nil, apperrors.NewInvalidStatus("payment already refunded")
	}

	if !s.gateway.VerifySignature(input.OrderID, input.PaymentID, input.Signature) {
		reason := "signature verification failed"
		payment.Status = domain.PaymentStatusFailed
		payment.FailureReason = &reason
		payment.GatewayPaymentID = &input.PaymentID
		if err := s.payments.Update(ctx, payment); err != nil {
			return nil, err
		}
		s.publish(events.Event{
			Type:    events.EventPaymentFailed,
			UserID:  userID,
			Payload: events.PaymentFailedPayload{PaymentID: payment.ID, Reason: reason},
		})
		return nil, apperrors.NewValidationError("invalid payment signature")
	}

	now := s.now()
	err = s.uow.Do(ctx, func(set repository.Set) error {
		payment.Status = domain.PaymentStatusCompleted
		payment.GatewayPaymentID = &input.PaymentID
		payment.GatewaySignature = &input.Signature
		payment.PaidAt = &now
		if err := set.Payments.Update(ctx, payment); err != nil {
			return err
		}

		usage := &domain.ListingUsage{
			UserID:      payment.UserID,
			ListingType: payment.ListingType,
			ListingID:   payment.ListingID,
			PricingTier: payment.PricingTier,
			IsFreeTier:  false,
			Status:      domain.UsageStatusActive,
			ValidFrom:   now,
			ValidUntil:  now.Add(s.usageWindow),
		}
		if err := set.Usages.Create(ctx, usage); err != nil {
			return err
		}

		return s.activateListing(ctx, set, payment.ListingType, payment.ListingID, payment.PricingTier, now)
	})
	if err != nil {
		return nil, err
	}

	s.publish(events.Event{
		Type:   events.EventPaymentCompleted,
		UserID: userID,
		Payload: events.PaymentCompletedPayload{
			PaymentID:   payment.ID,
			ListingType: payment.ListingType,
			ListingID:   payment.ListingID,
			Amount:      payment.Amount,
		},
	})
	s.publish(events.Event{
		Type:   events.EventListingActivated,
		UserID: userID,
		Payload: events.ListingActivatedPayload{
			ListingType: payment.ListingType,
			ListingID:   payment.ListingID,
			PricingTier: payment.PricingTier,
		},
	})
	return payment, nil
}

// ListUserPayments returns the caller's payment history.
func (s *PaymentService) ListUserPayments(ctx context.Context, userID string, limit, offset int) ([]domain.Payment, error) {
	return s.payments.ListByUser(ctx, userID, limit, offset)
}

// activateFree publishes a listing on the free tier: the usage row and the
// activation commit together, and the partial unique index rejects a
// concurrent second free activation inside the same transaction.
func (s *PaymentService) activateFree(ctx context.Context, userID string, input InitiateInput) error {
	now := s.now()
	err := s.uow.Do(ctx, func(set repository.Set) error {
		usage := &domain.ListingUsage{
			UserID:      userID,
			ListingType: input.ListingType,
			ListingID:   input.ListingID,
			PricingTier: domain.TierFree,
			IsFreeTier:  true,
			Status:      domain.UsageStatusActive,
			ValidFrom:   now,
			ValidUntil:  now.Add(s.usageWindow),
		}
		if err := set.Usages.Create(ctx, usage); err != nil {
			if err == repository.ErrFreeTierUsed {
				return apperrors.NewInvalidStatus("free tier already used for this listing type")
			}
			return err
		}
		return s.activateListing(ctx, set, input.ListingType, input.ListingID, domain.TierFree, now)
	})
	if err != nil {
		return err
	}
	s.publish(events.Event{
		Type:   events.EventListingActivated,
		UserID: userID,
		Payload: events.ListingActivatedPayload{
			ListingType: input.ListingType,
			ListingID:   input.ListingID,
			PricingTier: domain.TierFree,
			FreeTier:    true,
		},
	})
	return nil
}

func (s *PaymentService) activateListing(ctx context.Context, set repository.Set, listingType domain.ListingType, listingID string, tier domain.PricingTier, now time.Time) error {
	switch listingType {
	case domain.ListingTypeAdoption:
		return s.activateAdoption(ctx, set, listingID, tier, now)
	case domain.ListingTypeBreeder:
		return s.activateBreeder(ctx, set, listingID, tier, now)
	default:
		return apperrors.NewValidationError("unknown listing type")
	}
}

func (s *PaymentService) activateAdoption(ctx context.Context, set repository.Set, listingID string, tier domain.PricingTier, now time.Time) error {
	listing, err := set.AdoptionListings.GetByID(ctx, listingID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("listing")
		}
		return err
	}
	listing.Status = domain.AdoptionStatusActive
	if listing.PublishedAt == nil {
		listing.PublishedAt = &now
	}
	if tier == domain.TierFeatured {
		listing.IsFeatured = true
		until := now.Add(s.featuredWin)
		listing.FeaturedUntil = &until
	}
	return set.AdoptionListings.Update(ctx, listing)
}

func (s *PaymentService) activateBreeder(ctx context.Context, set repository.Set, listingID string, tier domain.PricingTier, now time.Time) error {
	listing, err := set.BreederListings.GetByID(ctx, listingID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("listing")
		}
		return err
	}
	wasActive := listing.Status == domain.BreederStatusActive
	listing.Status = domain.BreederStatusActive
	if listing.PublishedAt == nil {
		listing.PublishedAt = &now
	}
	if tier == domain.TierPremium || tier == domain.TierBulk5 {
		listing.IsFeatured = true
		until := now.Add(s.featuredWin)
		listing.FeaturedUntil = &until
	}
	if err := set.BreederListings.Update(ctx, listing); err != nil {
		return err
	}

	profile, err := set.BreederProfiles.GetByID(ctx, listing.BreederProfileID)
	if err != nil {
		return err
	}
	if !wasActive {
		if err := set.BreederProfiles.AdjustActiveListingCount(ctx, profile.ID, 1); err != nil {
			return err
		}
	}
	if !profile.IsVerified && tier != domain.TierFree {
		profile.IsVerified = true
		badge := domain.BadgeTrusted
		profile.Badge = &badge
		if err := set.BreederProfiles.Update(ctx, profile); err != nil {
			return err
		}
		s.publish(events.Event{
			Type:   events.EventProfileVerified,
			UserID: profile.UserID,
			Payload: events.ProfileVerifiedPayload{
				BreederProfileID: profile.ID,
				Badge:            badge,
			},
		})
	}
	return nil
}

func (s *PaymentService) publish(event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(context.Background(), event)
}

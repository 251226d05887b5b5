package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mypaws/adoption-service/internal/domain"
	"github.com/mypaws/adoption-service/internal/events"
	"github.com/mypaws/adoption-service/internal/repository"
	apperrors "github.com/mypaws/adoption-service/pkg/util"
)

// AdoptionService owns the adoption listing lifecycle from creation through
// adoption, including the free-tier publish shortcut.
type AdoptionService struct {
	uow         repository.UnitOfWork
	listings    repository.AdoptionListingRepository
	pets        repository.PetRepository
	refdata     repository.ReferenceRepository
	eligibility *EligibilityService
	dispatcher  events.Dispatcher
	usageWindow time.Duration
	now         func() time.Time
}

// AdoptionDependencies bundles collaborators for the adoption service.
type AdoptionDependencies struct {
	UnitOfWork  repository.UnitOfWork
	Listings    repository.AdoptionListingRepository
	Pets        repository.PetRepository
	Reference   repository.ReferenceRepository
	Eligibility *EligibilityService
	Dispatcher  events.Dispatcher
}

// NewAdoptionService constructs the service.
func NewAdoptionService(usageValidityDays int, deps AdoptionDependencies) *AdoptionService {
	if usageValidityDays <= 0 {
		usageValidityDays = 90
	}
	return &AdoptionService{
		uow:         deps.UnitOfWork,
		listings:    deps.Listings,
		pets:        deps.Pets,
		refdata:     deps.Reference,
		eligibility: deps.Eligibility,
		dispatcher:  deps.Dispatcher,
		usageWindow: time.Duration(usageValidityDays) * 24 * time.Hour,
		now:         time.Now,
	}
}

// PetInput carries pet fields supplied when creating or editing a listing.
type PetInput struct {
	PetTypeID   string
	BreedID     *string
	CityID      string
	Name        string
	Gender      domain.PetGender
	AgeMonths   int
	Size        string
	Color       string
	Temperament domain.Temperament
	Description string
	ImageURLs   []string
	FAQs        []FAQInput
}

// FAQInput is one question/answer pair.
type FAQInput struct {
	Question string
	Answer   string
}

// CreateAdoptionInput describes a new adoption listing.
type CreateAdoptionInput struct {
	Title string
	Fee   int64
	Pet   PetInput
}

// AdoptionView pairs a listing with its pet for API responses.
type AdoptionView struct {
	Listing *domain.AdoptionListing
	Pet     *domain.Pet
}

func (in *CreateAdoptionInput) validate() error {
	switch {
	case in.Title == "":
		return apperrors.NewValidationError("title is required")
	case in.Pet.Name == "":
		return apperrors.NewValidationError("pet name is required")
	case in.Pet.PetTypeID == "":
		return apperrors.NewValidationError("pet_type_id is required")
	case in.Pet.CityID == "":
		return apperrors.NewValidationError("city_id is required")
	case in.Pet.AgeMonths < 0:
		return apperrors.NewValidationError("age_months must not be negative")
	case in.Fee < 0:
		return apperrors.NewValidationError("fee must not be negative")
	}
	switch in.Pet.Gender {
	case domain.PetGenderMale, domain.PetGenderFemale, domain.PetGenderUnknown, "":
	default:
		return apperrors.NewValidationError("gender must be male, female or unknown")
	}
	return nil
}

// Create stores the pet and the listing together. When the owner's free slot
// is available the listing goes straight to active with a free usage entry;
// otherwise it waits in pending_payment for checkout.
func (s *AdoptionService) Create(ctx context.Context, ownerID string, input CreateAdoptionInput) (*AdoptionView, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	city, err := s.refdata.GetCityByID(ctx, input.Pet.CityID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewValidationError("unknown city_id")
		}
		return nil, err
	}
	breedName := ""
	if input.Pet.BreedID != nil {
		breed, err := s.refdata.GetBreedByID(ctx, *input.Pet.BreedID)
		if err != nil {
			if err == pgx.ErrNoRows {
				return nil, apperrors.NewValidationError("unknown breed_id")
			}
			return nil, err
		}
		breedName = breed.Name
	}

	freeTier, err := s.eligibility.FreeTierAvailable(ctx, ownerID, domain.ListingTypeAdoption)
	if err != nil {
		return nil, err
	}

	now := s.now()
	pet := &domain.Pet{
		OwnerID:     ownerID,
		PetTypeID:   input.Pet.PetTypeID,
		BreedID:     input.Pet.BreedID,
		CityID:      input.Pet.CityID,
		Name:        input.Pet.Name,
		Gender:      input.Pet.Gender,
		AgeMonths:   input.Pet.AgeMonths,
		Size:        input.Pet.Size,
		Color:       input.Pet.Color,
		Temperament: input.Pet.Temperament,
		Description: input.Pet.Description,
	}
	if pet.Gender == "" {
		pet.Gender = domain.PetGenderUnknown
	}
	listing := &domain.AdoptionListing{
		OwnerID: ownerID,
		Title:   input.Title,
		Slug:    listingSlug(breedName, city.Name),
		Fee:     input.Fee,
		Status:  domain.AdoptionStatusPendingPayment,
	}
	if freeTier {
		listing.Status = domain.AdoptionStatusActive
		listing.PublishedAt = &now
	}

	err = s.uow.Do(ctx, func(set repository.Set) error {
		if err := set.Pets.Create(ctx, pet); err != nil {
			return err
		}
		if err := set.Pets.ReplaceImages(ctx, pet.ID, imageRows(pet.ID, input.Pet.ImageURLs)); err != nil {
			return err
		}
		if err := set.Pets.ReplaceFAQs(ctx, pet.ID, faqRows(pet.ID, input.Pet.FAQs)); err != nil {
			return err
		}
		listing.PetID = pet.ID
		if err := set.AdoptionListings.Create(ctx, listing); err != nil {
			return err
		}
		if !freeTier {
			return nil
		}
		usage := &domain.ListingUsage{
			UserID:      ownerID,
			ListingType: domain.ListingTypeAdoption,
			ListingID:   listing.ID,
			PricingTier: domain.TierFree,
			IsFreeTier:  true,
			Status:      domain.UsageStatusActive,
			ValidFrom:   now,
			ValidUntil:  now.Add(s.usageWindow),
		}
		if err := set.Usages.Create(ctx, usage); err != nil {
			// Lost the race for the free slot; fall back to paid flow.
			if err == repository.ErrFreeTierUsed {
				listing.Status = domain.AdoptionStatusPendingPayment
				listing.PublishedAt = nil
				return set.AdoptionListings.Update(ctx, listing)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if listing.Status == domain.AdoptionStatusActive {
		s.publish(events.Event{
			Type:   events.EventListingActivated,
			UserID: ownerID,
			Payload: events.ListingActivatedPayload{
				ListingType: domain.ListingTypeAdoption,
				ListingID:   listing.ID,
				PricingTier: domain.TierFree,
				FreeTier:    true,
			},
		})
	}
	full, err := s.pets.GetByID(ctx, pet.ID)
	if err != nil {
		return nil, err
	}
	return &AdoptionView{Listing: listing, Pet: full}, nil
}

// UpdateAdoptionInput carries editable fields. Images and FAQs are replaced
// wholesale with the submitted set.
type UpdateAdoptionInput struct {
	Title string
	Fee   int64
	Pet   PetInput
}

// Update edits a listing the caller owns. Active and adopted listings accept
// content edits but never status changes through this path.
func (s *AdoptionService) Update(ctx context.Context, ownerID, listingID string, input UpdateAdoptionInput) (*AdoptionView, error) {
	listing, err := s.getOwned(ctx, ownerID, listingID)
	if err != nil {
		return nil, err
	}
	if listing.Status == domain.AdoptionStatusAdopted {
		return nil, apperrors.NewInvalidStatus("adopted listings cannot be edited")
	}
	create := CreateAdoptionInput{Title: input.Title, Fee: input.Fee, Pet: input.Pet}
	if err := create.validate(); err != nil {
		return nil, err
	}

	pet, err := s.pets.GetByID(ctx, listing.PetID)
	if err != nil {
		return nil, err
	}
	pet.PetTypeID = input.Pet.PetTypeID
	pet.BreedID = input.Pet.BreedID
	pet.CityID = input.Pet.CityID
	pet.Name = input.Pet.Name
	pet.Gender = input.Pet.Gender
	pet.AgeMonths = input.Pet.AgeMonths
	pet.Size = input.Pet.Size
	pet.Color = input.Pet.Color
	pet.Temperament = input.Pet.Temperament
	pet.Description = input.Pet.Description
	if pet.Gender == "" {
		pet.Gender = domain.PetGenderUnknown
	}
	listing.Title = input.Title
	listing.Fee = input.Fee

	err = s.uow.Do(ctx, func(set repository.Set) error {
		if err := set.Pets.Update(ctx, pet); err != nil {
			return err
		}
		if err := set.Pets.ReplaceImages(ctx, pet.ID, imageRows(pet.ID, input.Pet.ImageURLs)); err != nil {
			return err
		}
		if err := set.Pets.ReplaceFAQs(ctx, pet.ID, faqRows(pet.ID, input.Pet.FAQs)); err != nil {
			return err
		}
		return set.AdoptionListings.Update(ctx, listing)
	})
	if err != nil {
		return nil, err
	}
	full, err := s.pets.GetByID(ctx, pet.ID)
	if err != nil {
		return nil, err
	}
	return &AdoptionView{Listing: listing, Pet: full}, nil
}

// GetBySlug serves the public detail page. Only active and adopted listings
// are visible; each hit bumps the view counter.
func (s *AdoptionService) GetBySlug(ctx context.Context, slug string) (*AdoptionView, error) {
	listing, err := s.listings.GetBySlug(ctx, slug)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("listing")
		}
		return nil, err
	}
	if listing.Status != domain.AdoptionStatusActive && listing.Status != domain.AdoptionStatusAdopted {
		return nil, apperrors.NewNotFound("listing")
	}
	if err := s.listings.IncrementViewCount(ctx, listing.ID); err != nil {
		return nil, err
	}
	listing.ViewCount++
	pet, err := s.pets.GetByID(ctx, listing.PetID)
	if err != nil {
		return nil, err
	}
	return &AdoptionView{Listing: listing, Pet: pet}, nil
}

// GetOwned returns one of the caller's listings regardless of status.
func (s *AdoptionService) GetOwned(ctx context.Context, ownerID, listingID string) (*AdoptionView, error) {
	listing, err := s.getOwned(ctx, ownerID, listingID)
	if err != nil {
		return nil, err
	}
	pet, err := s.pets.GetByID(ctx, listing.PetID)
	if err != nil {
		return nil, err
	}
	return &AdoptionView{Listing: listing, Pet: pet}, nil
}

// SearchFilter is the public search surface.
type SearchFilter struct {
	PetTypeID *string
	BreedID   *string
	CityID    *string
	Limit     int
	Offset    int
}

// Search lists active listings, featured first.
func (s *AdoptionService) Search(ctx context.Context, filter SearchFilter) ([]domain.AdoptionListing, error) {
	return s.listings.ListWithFilter(ctx, repository.AdoptionFilter{
		PetTypeID: filter.PetTypeID,
		BreedID:   filter.BreedID,
		CityID:    filter.CityID,
		Statuses:  []domain.AdoptionStatus{domain.AdoptionStatusActive},
		Limit:     filter.Limit,
		Offset:    filter.Offset,
	})
}

// ListMine returns every non-deleted listing the caller owns.
func (s *AdoptionService) ListMine(ctx context.Context, ownerID string, limit, offset int) ([]domain.AdoptionListing, error) {
	return s.listings.ListWithFilter(ctx, repository.AdoptionFilter{
		OwnerID: &ownerID,
		Limit:   limit,
		Offset:  offset,
	})
}

// SubmitForReview moves a draft or rejected listing into the moderation queue.
func (s *AdoptionService) SubmitForReview(ctx context.Context, ownerID, listingID string) (*domain.AdoptionListing, error) {
	listing, err := s.getOwned(ctx, ownerID, listingID)
	if err != nil {
		return nil, err
	}
	if listing.Status != domain.AdoptionStatusDraft && listing.Status != domain.AdoptionStatusRejected {
		return nil, apperrors.NewInvalidStatus("only draft or rejected listings can be submitted for review")
	}
	listing.Status = domain.AdoptionStatusPendingReview
	listing.RejectionReason = nil
	if err := s.listings.Update(ctx, listing); err != nil {
		return nil, err
	}
	s.publish(events.Event{
		Type:   events.EventListingSubmitted,
		UserID: ownerID,
		Payload: events.ListingSubmittedPayload{
			ListingType: domain.ListingTypeAdoption,
			ListingID:   listing.ID,
		},
	})
	return listing, nil
}

// Approve is the admin moderation pass: pending_review becomes active.
func (s *AdoptionService) Approve(ctx context.Context, listingID string) (*domain.AdoptionListing, error) {
	listing, err := s.getAny(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing.Status != domain.AdoptionStatusPendingReview {
		return nil, apperrors.NewInvalidStatus("only pending_review listings can be approved")
	}
	now := s.now()
	listing.Status = domain.AdoptionStatusActive
	if listing.PublishedAt == nil {
		listing.PublishedAt = &now
	}
	if err := s.listings.Update(ctx, listing); err != nil {
		return nil, err
	}
	s.publish(events.Event{
		Type:   events.EventListingActivated,
		UserID: listing.OwnerID,
		Payload: events.ListingActivatedPayload{
			ListingType: domain.ListingTypeAdoption,
			ListingID:   listing.ID,
		},
	})
	return listing, nil
}

// Reject is the admin moderation fail with a mandatory reason.
func (s *AdoptionService) Reject(ctx context.Context, listingID, reason string) (*domain.AdoptionListing, error) {
	if reason == "" {
		return nil, apperrors.NewValidationError("rejection reason is required")
	}
	listing, err := s.getAny(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing.Status != domain.AdoptionStatusPendingReview {
		return nil, apperrors.NewInvalidStatus("only pending_review listings can be rejected")
	}
	listing.Status = domain.AdoptionStatusRejected
	listing.RejectionReason = &reason
	if err := s.listings.Update(ctx, listing); err != nil {
		return nil, err
	}
	s.publish(events.Event{
		Type:   events.EventListingRejected,
		UserID: listing.OwnerID,
		Payload: events.ListingRejectedPayload{
			ListingType: domain.ListingTypeAdoption,
			ListingID:   listing.ID,
			Reason:      reason,
		},
	})
	return listing, nil
}

// MarkAdopted lets the owner close out an active listing.
func (s *AdoptionService) MarkAdopted(ctx context.Context, ownerID, listingID string) (*domain.AdoptionListing, error) {
	listing, err := s.getOwned(ctx, ownerID, listingID)
	if err != nil {
		return nil, err
	}
	if listing.Status != domain.AdoptionStatusActive {
		return nil, apperrors.NewInvalidStatus("only active listings can be marked adopted")
	}
	now := s.now()
	listing.Status = domain.AdoptionStatusAdopted
	listing.AdoptedAt = &now
	if err := s.listings.Update(ctx, listing); err != nil {
		return nil, err
	}
	s.publish(events.Event{
		Type:    events.EventListingAdopted,
		UserID:  ownerID,
		Payload: events.ListingAdoptedPayload{ListingID: listing.ID},
	})
	return listing, nil
}

// Delete soft-deletes a listing and its pet.
func (s *AdoptionService) Delete(ctx context.Context, ownerID, listingID string) error {
	listing, err := s.getOwned(ctx, ownerID, listingID)
	if err != nil {
		return err
	}
	return s.uow.Do(ctx, func(set repository.Set) error {
		if err := set.AdoptionListings.SoftDelete(ctx, listing.ID); err != nil {
			return err
		}
		return set.Pets.SoftDelete(ctx, listing.PetID)
	})
}

// RecordInquiry bumps the inquiry counter on an active listing.
func (s *AdoptionService) RecordInquiry(ctx context.Context, listingID string) error {
	listing, err := s.getAny(ctx, listingID)
	if err != nil {
		return err
	}
	if listing.Status != domain.AdoptionStatusActive {
		return apperrors.NewInvalidStatus("listing is not active")
	}
	return s.listings.IncrementInquiryCount(ctx, listingID)
}

// ListPendingReview feeds the admin moderation queue.
func (s *AdoptionService) ListPendingReview(ctx context.Context, limit, offset int) ([]domain.AdoptionListing, error) {
	return s.listings.ListWithFilter(ctx, repository.AdoptionFilter{
		Statuses: []domain.AdoptionStatus{domain.AdoptionStatusPendingReview},
		Limit:    limit,
		Offset:   offset,
	})
}

func (s *AdoptionService) getOwned(ctx context.Context, ownerID, listingID string) (*domain.AdoptionListing, error) {
	listing, err := s.getAny(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing.OwnerID != ownerID {
		return nil, apperrors.NewForbidden("listing belongs to another user")
	}
	return listing, nil
}

func (s *AdoptionService) getAny(ctx context.Context, listingID string) (*domain.AdoptionListing, error) {
	listing, err := s.listings.GetByID(ctx, listingID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("listing")
		}
		return nil, err
	}
	return listing, nil
}

func (s *AdoptionService) publish(event events.Event) {
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

func imageRows(petID string, urls []string) []domain.PetImage {
	rows := make([]domain.PetImage, 0, len(urls))
	for i, url := range urls {
		rows = append(rows, domain.PetImage{
			PetID:     petID,
			URL:       url,
			Position:  i,
			IsPrimary: i == 0,
		})
	}
	return rows
}

func faqRows(petID string, faqs []FAQInput) []domain.PetFAQ {
	rows := make([]domain.PetFAQ, 0, len(faqs))
	for i, faq := range faqs {
		rows = append(rows, domain.PetFAQ{
			PetID:    petID,
			Question: faq.Question,
			Answer:   faq.Answer,
			Position: i,
		})
	}
	return rows
}

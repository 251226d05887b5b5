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

// BreederService covers the breeder application workflow, profiles and sale
// listings.
type BreederService struct {
	uow          repository.UnitOfWork
	applications repository.BreederApplicationRepository
	profiles     repository.BreederProfileRepository
	listings     repository.BreederListingRepository
	pets         repository.PetRepository
	refdata      repository.ReferenceRepository
	eligibility  *EligibilityService
	dispatcher   events.Dispatcher
	usageWindow  time.Duration
	now          func() time.Time
}

// BreederDependencies bundles collaborators for the breeder service.
type BreederDependencies struct {
	UnitOfWork   repository.UnitOfWork
	Applications repository.BreederApplicationRepository
	Profiles     repository.BreederProfileRepository
	Listings     repository.BreederListingRepository
	Pets         repository.PetRepository
	Reference    repository.ReferenceRepository
	Eligibility  *EligibilityService
	Dispatcher   events.Dispatcher
}

// NewBreederService constructs the service.
func NewBreederService(usageValidityDays int, deps BreederDependencies) *BreederService {
	if usageValidityDays <= 0 {
		usageValidityDays = 90
	}
	return &BreederService{
		uow:          deps.UnitOfWork,
		applications: deps.Applications,
		profiles:     deps.Profiles,
		listings:     deps.Listings,
		pets:         deps.Pets,
		refdata:      deps.Reference,
		eligibility:  deps.Eligibility,
		dispatcher:   deps.Dispatcher,
		usageWindow:  time.Duration(usageValidityDays) * 24 * time.Hour,
		now:          time.Now,
	}
}

// ApplicationInput carries a breeder application submission.
type ApplicationInput struct {
	BusinessName    string
	ExperienceYears int
	DocumentURLs    []string
}

// SubmitApplication files a new application. A pending or info_requested
// application blocks a second submission; an approved one means the user is
// already a breeder.
func (s *BreederService) SubmitApplication(ctx context.Context, userID string, input ApplicationInput) (*domain.BreederApplication, error) {
	switch {
	case input.BusinessName == "":
		return nil, apperrors.NewValidationError("business_name is required")
	case input.ExperienceYears < 0:
		return nil, apperrors.NewValidationError("experience_years must not be negative")
	case len(input.DocumentURLs) == 0:
		return nil, apperrors.NewValidationError("at least one document is required")
	}

	latest, err := s.applications.GetLatestByUser(ctx, userID)
	if err != nil && err != pgx.ErrNoRows {
		return nil, err
	}
	if latest != nil {
		switch latest.Status {
		case domain.ApplicationStatusPending:
			return nil, apperrors.NewInvalidStatus("an application is already pending review")
		case domain.ApplicationStatusApproved:
			return nil, apperrors.NewInvalidStatus("user is already an approved breeder")
		case domain.ApplicationStatusInfoRequested:
			// Resubmission answers the info request in place.
			latest.BusinessName = input.BusinessName
			latest.ExperienceYears = input.ExperienceYears
			latest.DocumentURLs = input.DocumentURLs
			latest.Status = domain.ApplicationStatusPending
			if err := s.applications.Update(ctx, latest); err != nil {
				return nil, err
			}
			return latest, nil
		}
	}

	app := &domain.BreederApplication{
		UserID:          userID,
		BusinessName:    input.BusinessName,
		ExperienceYears: input.ExperienceYears,
		DocumentURLs:    input.DocumentURLs,
		Status:          domain.ApplicationStatusPending,
	}
	if err := s.applications.Create(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}

// MyApplication returns the caller's latest application.
func (s *BreederService) MyApplication(ctx context.Context, userID string) (*domain.BreederApplication, error) {
	app, err := s.applications.GetLatestByUser(ctx, userID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("application")
		}
		return nil, err
	}
	return app, nil
}

// ListApplications feeds the admin queue, filtered by status.
func (s *BreederService) ListApplications(ctx context.Context, status domain.ApplicationStatus, limit, offset int) ([]domain.BreederApplication, error) {
	return s.applications.ListByStatus(ctx, status, limit, offset)
}

// ApproveApplication promotes the applicant: the application flips to
// approved, a breeder profile is created from it, and the user flag is set.
// All three writes commit together.
func (s *BreederService) ApproveApplication(ctx context.Context, adminID, applicationID string, note string) (*domain.BreederApplication, error) {
	app, err := s.getApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app.Status != domain.ApplicationStatusPending && app.Status != domain.ApplicationStatusInfoRequested {
		return nil, apperrors.NewInvalidStatus("application is not awaiting review")
	}

	now := s.now()
	s.appendReview(app, adminID, note, now)
	app.Status = domain.ApplicationStatusApproved
	app.ReviewedBy = &adminID
	app.ReviewedAt = &now

	err = s.uow.Do(ctx, func(set repository.Set) error {
		if err := set.Users.SetBreeder(ctx, app.UserID, true); err != nil {
			return err
		}
		profile := &domain.BreederProfile{
			UserID:       app.UserID,
			BusinessName: app.BusinessName,
		}
		if err := set.BreederProfiles.Create(ctx, profile); err != nil {
			return err
		}
		return set.Applications.Update(ctx, app)
	})
	if err != nil {
		return nil, err
	}
	s.publishDecision(app)
	return app, nil
}

// RejectApplication closes the application with a mandatory note.
func (s *BreederService) RejectApplication(ctx context.Context, adminID, applicationID, note string) (*domain.BreederApplication, error) {
	if note == "" {
		return nil, apperrors.NewValidationError("a review note is required")
	}
	return s.decide(ctx, adminID, applicationID, note, domain.ApplicationStatusRejected)
}

// RequestInfo sends the application back to the applicant with a question.
func (s *BreederService) RequestInfo(ctx context.Context, adminID, applicationID, note string) (*domain.BreederApplication, error) {
	if note == "" {
		return nil, apperrors.NewValidationError("a review note is required")
	}
	return s.decide(ctx, adminID, applicationID, note, domain.ApplicationStatusInfoRequested)
}

func (s *BreederService) decide(ctx context.Context, adminID, applicationID, note string, decision domain.ApplicationStatus) (*domain.BreederApplication, error) {
	app, err := s.getApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app.Status != domain.ApplicationStatusPending && app.Status != domain.ApplicationStatusInfoRequested {
		return nil, apperrors.NewInvalidStatus("application is not awaiting review")
	}
	now := s.now()
	s.appendReview(app, adminID, note, now)
	app.Status = decision
	app.ReviewedBy = &adminID
	app.ReviewedAt = &now
	if err := s.applications.Update(ctx, app); err != nil {
		return nil, err
	}
	s.publishDecision(app)
	return app, nil
}

// ProfileInput carries editable breeder profile fields.
type ProfileInput struct {
	BusinessName string
	Bio          string
	Website      string
	CityID       *string
}

// MyProfile returns the caller's profile.
func (s *BreederService) MyProfile(ctx context.Context, userID string) (*domain.BreederProfile, error) {
	return s.profileByUser(ctx, userID)
}

// UpdateProfile edits the caller's profile. Verification state and badges are
// payment-driven and not editable here.
func (s *BreederService) UpdateProfile(ctx context.Context, userID string, input ProfileInput) (*domain.BreederProfile, error) {
	if input.BusinessName == "" {
		return nil, apperrors.NewValidationError("business_name is required")
	}
	profile, err := s.profileByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile.BusinessName = input.BusinessName
	profile.Bio = input.Bio
	profile.Website = input.Website
	profile.CityID = input.CityID
	if err := s.profiles.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// PublicProfile serves the public breeder page and bumps the view counter.
func (s *BreederService) PublicProfile(ctx context.Context, profileID string) (*domain.BreederProfile, []domain.BreederListing, error) {
	profile, err := s.profiles.GetByID(ctx, profileID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil, apperrors.NewNotFound("breeder_profile")
		}
		return nil, nil, err
	}
	if err := s.profiles.IncrementViewCount(ctx, profile.ID); err != nil {
		return nil, nil, err
	}
	profile.ViewCount++
	listings, err := s.listings.ListWithFilter(ctx, repository.BreederListingFilter{
		BreederProfileID: &profile.ID,
		Statuses:         []domain.BreederStatus{domain.BreederStatusActive},
	})
	if err != nil {
		return nil, nil, err
	}
	return profile, listings, nil
}

// CreateListingInput describes a new sale listing.
type CreateListingInput struct {
	Title string
	Price int64
	Pet   PetInput
}

// BreederListingView pairs a sale listing with its pet.
type BreederListingView struct {
	Listing *domain.BreederListing
	Pet     *domain.Pet
}

// CreateListing stores the pet and the sale listing. The free slot publishes
// immediately; otherwise the listing waits in pending_payment.
func (s *BreederService) CreateListing(ctx context.Context, userID string, input CreateListingInput) (*BreederListingView, error) {
	switch {
	case input.Title == "":
		return nil, apperrors.NewValidationError("title is required")
	case input.Price <= 0:
		return nil, apperrors.NewValidationError("price must be positive")
	case input.Pet.Name == "":
		return nil, apperrors.NewValidationError("pet name is required")
	case input.Pet.PetTypeID == "":
		return nil, apperrors.NewValidationError("pet_type_id is required")
	case input.Pet.CityID == "":
		return nil, apperrors.NewValidationError("city_id is required")
	}
	profile, err := s.profileByUser(ctx, userID)
	if err != nil {
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

	freeTier, err := s.eligibility.FreeTierAvailable(ctx, userID, domain.ListingTypeBreeder)
	if err != nil {
		return nil, err
	}

	now := s.now()
	pet := &domain.Pet{
		OwnerID:     userID,
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
	listing := &domain.BreederListing{
		BreederProfileID: profile.ID,
		Title:            input.Title,
		Slug:             listingSlug(breedName, city.Name),
		Price:            input.Price,
		Status:           domain.BreederStatusPendingPayment,
	}
	if freeTier {
		listing.Status = domain.BreederStatusActive
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
		if err := set.BreederListings.Create(ctx, listing); err != nil {
			return err
		}
		if !freeTier {
			return nil
		}
		usage := &domain.ListingUsage{
			UserID:      userID,
			ListingType: domain.ListingTypeBreeder,
			ListingID:   listing.ID,
			PricingTier: domain.TierFree,
			IsFreeTier:  true,
			Status:      domain.UsageStatusActive,
			ValidFrom:   now,
			ValidUntil:  now.Add(s.usageWindow),
		}
		if err := set.Usages.Create(ctx, usage); err != nil {
			if err == repository.ErrFreeTierUsed {
				listing.Status = domain.BreederStatusPendingPayment
				listing.PublishedAt = nil
				return set.BreederListings.Update(ctx, listing)
			}
			return err
		}
		return set.BreederProfiles.AdjustActiveListingCount(ctx, profile.ID, 1)
	})
	if err != nil {
		return nil, err
	}

	if listing.Status == domain.BreederStatusActive {
		s.publish(events.Event{
			Type:   events.EventListingActivated,
			UserID: userID,
			Payload: events.ListingActivatedPayload{
				ListingType: domain.ListingTypeBreeder,
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
	return &BreederListingView{Listing: listing, Pet: full}, nil
}

// UpdateListingInput carries editable sale listing fields.
type UpdateListingInput struct {
	Title string
	Price int64
	Pet   PetInput
}

// UpdateListing edits a sale listing the caller owns.
func (s *BreederService) UpdateListing(ctx context.Context, userID, listingID string, input UpdateListingInput) (*BreederListingView, error) {
	listing, _, err := s.getOwnedListing(ctx, userID, listingID)
	if err != nil {
		return nil, err
	}
	if listing.Status == domain.BreederStatusSold {
		return nil, apperrors.NewInvalidStatus("sold listings cannot be edited")
	}
	switch {
	case input.Title == "":
		return nil, apperrors.NewValidationError("title is required")
	case input.Price <= 0:
		return nil, apperrors.NewValidationError("price must be positive")
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
	listing.Price = input.Price

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
		return set.BreederListings.Update(ctx, listing)
	})
	if err != nil {
		return nil, err
	}
	full, err := s.pets.GetByID(ctx, pet.ID)
	if err != nil {
		return nil, err
	}
	return &BreederListingView{Listing: listing, Pet: full}, nil
}

// GetListingBySlug serves the public sale listing page.
func (s *BreederService) GetListingBySlug(ctx context.Context, slug string) (*BreederListingView, error) {
	listing, err := s.listings.GetBySlug(ctx, slug)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("listing")
		}
		return nil, err
	}
	if listing.Status != domain.BreederStatusActive && listing.Status != domain.BreederStatusSold {
		return nil, apperrors.NewNotFound("listing")
	}
	pet, err := s.pets.GetByID(ctx, listing.PetID)
	if err != nil {
		return nil, err
	}
	return &BreederListingView{Listing: listing, Pet: pet}, nil
}

// ListMine returns all of the caller's sale listings.
func (s *BreederService) ListMine(ctx context.Context, userID string, limit, offset int) ([]domain.BreederListing, error) {
	profile, err := s.profileByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.listings.ListWithFilter(ctx, repository.BreederListingFilter{
		BreederProfileID: &profile.ID,
		Limit:            limit,
		Offset:           offset,
	})
}

// MarkSold closes out an active sale listing and decrements the profile's
// active counter.
func (s *BreederService) MarkSold(ctx context.Context, userID, listingID string) (*domain.BreederListing, error) {
	listing, profile, err := s.getOwnedListing(ctx, userID, listingID)
	if err != nil {
		return nil, err
	}
	if listing.Status != domain.BreederStatusActive {
		return nil, apperrors.NewInvalidStatus("only active listings can be marked sold")
	}
	now := s.now()
	listing.Status = domain.BreederStatusSold
	listing.SoldAt = &now
	err = s.uow.Do(ctx, func(set repository.Set) error {
		if err := set.BreederListings.Update(ctx, listing); err != nil {
			return err
		}
		return set.BreederProfiles.AdjustActiveListingCount(ctx, profile.ID, -1)
	})
	if err != nil {
		return nil, err
	}
	return listing, nil
}

// DeleteListing soft-deletes a sale listing and its pet.
func (s *BreederService) DeleteListing(ctx context.Context, userID, listingID string) error {
	listing, profile, err := s.getOwnedListing(ctx, userID, listingID)
	if err != nil {
		return err
	}
	wasActive := listing.Status == domain.BreederStatusActive
	return s.uow.Do(ctx, func(set repository.Set) error {
		if err := set.BreederListings.SoftDelete(ctx, listing.ID); err != nil {
			return err
		}
		if err := set.Pets.SoftDelete(ctx, listing.PetID); err != nil {
			return err
		}
		if wasActive {
			return set.BreederProfiles.AdjustActiveListingCount(ctx, profile.ID, -1)
		}
		return nil
	})
}

func (s *BreederService) profileByUser(ctx context.Context, userID string) (*domain.BreederProfile, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("breeder_profile")
		}
		return nil, err
	}
	return profile, nil
}

func (s *BreederService) getOwnedListing(ctx context.Context, userID, listingID string) (*domain.BreederListing, *domain.BreederProfile, error) {
	listing, err := s.listings.GetByID(ctx, listingID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil, apperrors.NewNotFound("listing")
		}
		return nil, nil, err
	}
	profile, err := s.profiles.GetByID(ctx, listing.BreederProfileID)
	if err != nil {
		return nil, nil, err
	}
	if profile.UserID != userID {
		return nil, nil, apperrors.NewForbidden("listing belongs to another breeder")
	}
	return listing, profile, nil
}

func (s *BreederService) getApplication(ctx context.Context, applicationID string) (*domain.BreederApplication, error) {
	app, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("application")
		}
		return nil, err
	}
	return app, nil
}

func (s *BreederService) appendReview(app *domain.BreederApplication, adminID, note string, at time.Time) {
	if note == "" {
		return
	}
	app.ReviewNotes = append(app.ReviewNotes, domain.ReviewNote{
		AuthorID: adminID,
		Note:     note,
		At:       at,
	})
}

func (s *BreederService) publishDecision(app *domain.BreederApplication) {
	s.publish(events.Event{
		Type:   events.EventApplicationDecided,
		UserID: app.UserID,
		Payload: events.ApplicationDecidedPayload{
			ApplicationID: app.ID,
			Decision:      app.Status,
		},
	})
}

func (s *BreederService) publish(event events.Event) {
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

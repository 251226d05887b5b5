package service

import (
	"context"
	"testing"

	"github.com/mypaws/adoption-service/internal/domain"
)

type breederFixture struct {
	store *fakeStore
	svc   *BreederService
}

func newBreederFixture() *breederFixture {
	store := newFakeStore()
	store.breeds["breed-lab"] = &domain.Breed{ID: "breed-lab", Name: "Labrador"}
	store.cities["city-mumbai"] = &domain.City{ID: "city-mumbai", Name: "Mumbai"}

	set := store.set()
	svc := NewBreederService(0, BreederDependencies{
		UnitOfWork:   &fakeUOW{store: store},
		Applications: set.Applications,
		Profiles:     set.BreederProfiles,
		Listings:     set.BreederListings,
		Pets:         set.Pets,
		Reference:    &fakeReference{store},
		Eligibility:  NewEligibilityService(set.AdoptionListings, set.BreederListings, set.Usages),
	})
	return &breederFixture{store: store, svc: svc}
}

func (f *breederFixture) seedApplicant(t *testing.T) *domain.User {
	t.Helper()
	user := &domain.User{Name: "Meera", Email: "meera@example.com", Status: domain.UserStatusActive}
	if err := (&fakeUsers{f.store}).Create(context.Background(), user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func (f *breederFixture) approvedBreeder(t *testing.T) (*domain.User, *domain.BreederProfile) {
	t.Helper()
	user := f.seedApplicant(t)
	app, err := f.svc.SubmitApplication(context.Background(), user.ID, validApplication())
	if err != nil {
		t.Fatalf("submit application: %v", err)
	}
	if _, err := f.svc.ApproveApplication(context.Background(), "admin-1", app.ID, "looks good"); err != nil {
		t.Fatalf("approve application: %v", err)
	}
	profile, err := f.svc.MyProfile(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("load profile: %v", err)
	}
	return user, profile
}

func validApplication() ApplicationInput {
	return ApplicationInput{
		BusinessName:    "Pawfect Kennels",
		ExperienceYears: 5,
		DocumentURLs:    []string{"https://cdn.example.com/license.pdf"},
	}
}

func validSaleListing() CreateListingInput {
	breedID := "breed-lab"
	return CreateListingInput{
		Title: "Labrador puppies, 8 weeks",
		Price: 15000,
		Pet: PetInput{
			PetTypeID: "type-dog",
			BreedID:   &breedID,
			CityID:    "city-mumbai",
			Name:      "Simba",
			Gender:    domain.PetGenderMale,
			AgeMonths: 2,
		},
	}
}

func TestApplicationApprovalPromotesUser(t *testing.T) {
	t.Parallel()
	f := newBreederFixture()
	user := f.seedApplicant(t)

	app, err := f.svc.SubmitApplication(context.Background(), user.ID, validApplication())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if app.Status != domain.ApplicationStatusPending {
		t.Fatalf("status = %s, want pending", app.Status)
	}

	approved, err := f.svc.ApproveApplication(context.Background(), "admin-1", app.ID, "verified documents")
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if approved.Status != domain.ApplicationStatusApproved {
		t.Fatalf("status = %s, want approved", approved.Status)
	}
	if approved.ReviewedBy == nil || *approved.ReviewedBy != "admin-1" {
		t.Fatalf("reviewed by = %v, want admin-1", approved.ReviewedBy)
	}
	if len(approved.ReviewNotes) != 1 {
		t.Fatalf("review notes = %d, want 1", len(approved.ReviewNotes))
	}

	gotUser, _ := (&fakeUsers{f.store}).GetByID(context.Background(), user.ID)
	if !gotUser.IsBreeder {
		t.Fatal("approval must set the breeder flag")
	}
	profile, err := f.svc.MyProfile(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("profile after approval: %v", err)
	}
	if profile.BusinessName != "Pawfect Kennels" {
		t.Fatalf("business name = %q", profile.BusinessName)
	}
	if profile.IsVerified {
		t.Fatal("new profile must start unverified")
	}
}

func TestApplicationDuplicateSubmissionBlocked(t *testing.T) {
	t.Parallel()
	f := newBreederFixture()
	user := f.seedApplicant(t)

	if _, err := f.svc.SubmitApplication(context.Background(), user.ID, validApplication()); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	_, err := f.svc.SubmitApplication(context.Background(), user.ID, validApplication())
	if code := domainErrCode(t, err); code != "invalid_status" {
		t.Fatalf("error code = %s, want invalid_status", code)
	}
}

func TestApplicationInfoRequestRoundTrip(t *testing.T) {
	t.Parallel()
	f := newBreederFixture()
	user := f.seedApplicant(t)

	app, err := f.svc.SubmitApplication(context.Background(), user.ID, validApplication())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	requested, err := f.svc.RequestInfo(context.Background(), "admin-1", app.ID, "please attach a kennel photo")
	if err != nil {
		t.Fatalf("request info: %v", err)
	}
	if requested.Status != domain.ApplicationStatusInfoRequested {
		t.Fatalf("status = %s, want info_requested", requested.Status)
	}

	// Resubmission answers in place rather than opening a new application.
	input := validApplication()
	input.DocumentURLs = append(input.DocumentURLs, "https://cdn.example.com/kennel.jpg")
	resubmitted, err := f.svc.SubmitApplication(context.Background(), user.ID, input)
	if err != nil {
		t.Fatalf("resubmit: %v", err)
	}
	if resubmitted.ID != app.ID {
		t.Fatalf("resubmission created a new application %s, want %s", resubmitted.ID, app.ID)
	}
	if resubmitted.Status != domain.ApplicationStatusPending {
		t.Fatalf("status = %s, want pending", resubmitted.Status)
	}
	if len(resubmitted.DocumentURLs) != 2 {
		t.Fatalf("documents = %d, want 2", len(resubmitted.DocumentURLs))
	}
}

func TestApplicationRejectRequiresNote(t *testing.T) {
	t.Parallel()
	f := newBreederFixture()

	_, err := f.svc.RejectApplication(context.Background(), "admin-1", "app-1", "")
	if code := domainErrCode(t, err); code != "validation_failed" {
		t.Fatalf("error code = %s, want validation_failed", code)
	}
}

func TestBreederCreateListingFreeTier(t *testing.T) {
	t.Parallel()
	f := newBreederFixture()
	user, profile := f.approvedBreeder(t)

	view, err := f.svc.CreateListing(context.Background(), user.ID, validSaleListing())
	if err != nil {
		t.Fatalf("create listing: %v", err)
	}
	if view.Listing.Status != domain.BreederStatusActive {
		t.Fatalf("status = %s, want active", view.Listing.Status)
	}
	gotProfile, _ := (&fakeProfiles{f.store}).GetByID(context.Background(), profile.ID)
	if gotProfile.ActiveListingCount != 1 {
		t.Fatalf("active listing count = %d, want 1", gotProfile.ActiveListingCount)
	}

	// The free slot is spent; the next listing waits for payment.
	second, err := f.svc.CreateListing(context.Background(), user.ID, validSaleListing())
	if err != nil {
		t.Fatalf("second create: %v", err)
	}
	if second.Listing.Status != domain.BreederStatusPendingPayment {
		t.Fatalf("second status = %s, want pending_payment", second.Listing.Status)
	}
}

func TestBreederCreateListingRequiresProfile(t *testing.T) {
	t.Parallel()
	f := newBreederFixture()
	user := f.seedApplicant(t)

	_, err := f.svc.CreateListing(context.Background(), user.ID, validSaleListing())
	if code := domainErrCode(t, err); code != "breeder_profile_not_found" {
		t.Fatalf("error code = %s, want breeder_profile_not_found", code)
	}
}

func TestBreederMarkSoldAdjustsCounter(t *testing.T) {
	t.Parallel()
	f := newBreederFixture()
	user, profile := f.approvedBreeder(t)

	view, err := f.svc.CreateListing(context.Background(), user.ID, validSaleListing())
	if err != nil {
		t.Fatalf("create listing: %v", err)
	}

	sold, err := f.svc.MarkSold(context.Background(), user.ID, view.Listing.ID)
	if err != nil {
		t.Fatalf("mark sold: %v", err)
	}
	if sold.Status != domain.BreederStatusSold {
		t.Fatalf("status = %s, want sold", sold.Status)
	}
	if sold.SoldAt == nil {
		t.Fatal("expected SoldAt")
	}
	gotProfile, _ := (&fakeProfiles{f.store}).GetByID(context.Background(), profile.ID)
	if gotProfile.ActiveListingCount != 0 {
		t.Fatalf("active listing count = %d, want 0", gotProfile.ActiveListingCount)
	}

	// Sold listings stay publicly visible but cannot be edited.
	if _, err := f.svc.GetListingBySlug(context.Background(), sold.Slug); err != nil {
		t.Fatalf("get sold listing: %v", err)
	}
	_, err = f.svc.UpdateListing(context.Background(), user.ID, view.Listing.ID, UpdateListingInput(validSaleListing()))
	if code := domainErrCode(t, err); code != "invalid_status" {
		t.Fatalf("error code = %s, want invalid_status", code)
	}
}

func TestBreederListingOwnershipEnforced(t *testing.T) {
	t.Parallel()
	f := newBreederFixture()
	owner, _ := f.approvedBreeder(t)
	view, err := f.svc.CreateListing(context.Background(), owner.ID, validSaleListing())
	if err != nil {
		t.Fatalf("create listing: %v", err)
	}

	_, err = f.svc.MarkSold(context.Background(), "user-intruder", view.Listing.ID)
	if code := domainErrCode(t, err); code != "forbidden" {
		t.Fatalf("error code = %s, want forbidden", code)
	}
}

func TestBreederDeleteActiveListingDecrementsCounter(t *testing.T) {
	t.Parallel()
	f := newBreederFixture()
	user, profile := f.approvedBreeder(t)
	view, err := f.svc.CreateListing(context.Background(), user.ID, validSaleListing())
	if err != nil {
		t.Fatalf("create listing: %v", err)
	}

	if err := f.svc.DeleteListing(context.Background(), user.ID, view.Listing.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	gotProfile, _ := (&fakeProfiles{f.store}).GetByID(context.Background(), profile.ID)
	if gotProfile.ActiveListingCount != 0 {
		t.Fatalf("active listing count = %d, want 0", gotProfile.ActiveListingCount)
	}
	if _, err := (&fakeBreederListings{f.store}).GetByID(context.Background(), view.Listing.ID); err == nil {
		t.Fatal("listing should be gone after soft delete")
	}
	if _, err := (&fakePets{f.store}).GetByID(context.Background(), view.Pet.ID); err == nil {
		t.Fatal("pet should be gone after soft delete")
	}
}

func TestBreederPublicProfileListsActiveOnly(t *testing.T) {
	t.Parallel()
	f := newBreederFixture()
	user, profile := f.approvedBreeder(t)
	if _, err := f.svc.CreateListing(context.Background(), user.ID, validSaleListing()); err != nil {
		t.Fatalf("create listing: %v", err)
	}
	// Second listing stays pending and must not appear publicly.
	if _, err := f.svc.CreateListing(context.Background(), user.ID, validSaleListing()); err != nil {
		t.Fatalf("second create: %v", err)
	}

	got, listings, err := f.svc.PublicProfile(context.Background(), profile.ID)
	if err != nil {
		t.Fatalf("public profile: %v", err)
	}
	if got.ViewCount != 1 {
		t.Fatalf("view count = %d, want 1", got.ViewCount)
	}
	if len(listings) != 1 {
		t.Fatalf("public listings = %d, want 1", len(listings))
	}
	if listings[0].Status != domain.BreederStatusActive {
		t.Fatalf("listing status = %s, want active", listings[0].Status)
	}
}

func TestBreederUpdateProfile(t *testing.T) {
	t.Parallel()
	f := newBreederFixture()
	user, _ := f.approvedBreeder(t)

	cityID := "city-mumbai"
	updated, err := f.svc.UpdateProfile(context.Background(), user.ID, ProfileInput{
		BusinessName: "Pawfect Kennels Pvt Ltd",
		Bio:          "Ethical small-scale breeder since 2019.",
		Website:      "https://pawfect.example.com",
		CityID:       &cityID,
	})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if updated.BusinessName != "Pawfect Kennels Pvt Ltd" {
		t.Fatalf("business name = %q", updated.BusinessName)
	}
	if updated.CityID == nil || *updated.CityID != cityID {
		t.Fatalf("city = %v, want %s", updated.CityID, cityID)
	}

	_, err = f.svc.UpdateProfile(context.Background(), user.ID, ProfileInput{})
	if code := domainErrCode(t, err); code != "validation_failed" {
		t.Fatalf("error code = %s, want validation_failed", code)
	}
}

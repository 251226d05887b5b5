package service

import (
	"context"
	"strings"
	"testing"

	"github.com/mypaws/adoption-service/internal/domain"
)

type adoptionFixture struct {
	store *fakeStore
	svc   *AdoptionService
}

func newAdoptionFixture() *adoptionFixture {
	store := newFakeStore()
	store.breeds["breed-golden"] = &domain.Breed{ID: "breed-golden", Name: "Golden Retriever"}
	store.cities["city-pune"] = &domain.City{ID: "city-pune", Name: "Pune"}

	set := store.set()
	svc := NewAdoptionService(0, AdoptionDependencies{
		UnitOfWork:  &fakeUOW{store: store},
		Listings:    set.AdoptionListings,
		Pets:        set.Pets,
		Reference:   &fakeReference{store},
		Eligibility: NewEligibilityService(set.AdoptionListings, set.BreederListings, set.Usages),
	})
	return &adoptionFixture{store: store, svc: svc}
}

func validAdoptionInput() CreateAdoptionInput {
	breedID := "breed-golden"
	return CreateAdoptionInput{
		Title: "Friendly golden looking for a home",
		Fee:   0,
		Pet: PetInput{
			PetTypeID: "type-dog",
			BreedID:   &breedID,
			CityID:    "city-pune",
			Name:      "Bruno",
			Gender:    domain.PetGenderMale,
			AgeMonths: 8,
			ImageURLs: []string{"https://cdn.example.com/bruno-1.webp", "https://cdn.example.com/bruno-2.webp"},
			FAQs:      []FAQInput{{Question: "Vaccinated?", Answer: "Yes, all shots done."}},
		},
	}
}

func TestAdoptionCreateFreeTierPublishesImmediately(t *testing.T) {
	t.Parallel()
	f := newAdoptionFixture()

	view, err := f.svc.Create(context.Background(), "user-1", validAdoptionInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if view.Listing.Status != domain.AdoptionStatusActive {
		t.Fatalf("status = %s, want active", view.Listing.Status)
	}
	if view.Listing.PublishedAt == nil {
		t.Fatal("expected PublishedAt on free activation")
	}
	if !strings.HasPrefix(view.Listing.Slug, "golden-retriever-in-pune-") {
		t.Fatalf("slug = %q, want golden-retriever-in-pune-<suffix>", view.Listing.Slug)
	}
	if len(view.Pet.Images) != 2 {
		t.Fatalf("images = %d, want 2", len(view.Pet.Images))
	}
	if !view.Pet.Images[0].IsPrimary {
		t.Fatal("first image must be primary")
	}
	if len(view.Pet.FAQs) != 1 {
		t.Fatalf("faqs = %d, want 1", len(view.Pet.FAQs))
	}
}

func TestAdoptionCreateSecondListingAwaitsPayment(t *testing.T) {
	t.Parallel()
	f := newAdoptionFixture()

	if _, err := f.svc.Create(context.Background(), "user-1", validAdoptionInput()); err != nil {
		t.Fatalf("first create: %v", err)
	}
	view, err := f.svc.Create(context.Background(), "user-1", validAdoptionInput())
	if err != nil {
		t.Fatalf("second create: %v", err)
	}
	if view.Listing.Status != domain.AdoptionStatusPendingPayment {
		t.Fatalf("status = %s, want pending_payment", view.Listing.Status)
	}
	if view.Listing.PublishedAt != nil {
		t.Fatal("pending listing must not have PublishedAt")
	}
}

func TestAdoptionCreateValidation(t *testing.T) {
	t.Parallel()
	f := newAdoptionFixture()

	cases := []struct {
		name   string
		mutate func(*CreateAdoptionInput)
	}{
		{"missing title", func(in *CreateAdoptionInput) { in.Title = "" }},
		{"missing pet name", func(in *CreateAdoptionInput) { in.Pet.Name = "" }},
		{"missing city", func(in *CreateAdoptionInput) { in.Pet.CityID = "" }},
		{"negative age", func(in *CreateAdoptionInput) { in.Pet.AgeMonths = -1 }},
		{"negative fee", func(in *CreateAdoptionInput) { in.Fee = -50 }},
		{"bad gender", func(in *CreateAdoptionInput) { in.Pet.Gender = "robot" }},
		{"unknown city", func(in *CreateAdoptionInput) { in.Pet.CityID = "city-nowhere" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validAdoptionInput()
			tc.mutate(&input)
			_, err := f.svc.Create(context.Background(), "user-1", input)
			if code := domainErrCode(t, err); code != "validation_failed" {
				t.Fatalf("error code = %s, want validation_failed", code)
			}
		})
	}
}

func TestAdoptionModerationFlow(t *testing.T) {
	t.Parallel()
	f := newAdoptionFixture()
	listing := &domain.AdoptionListing{
		OwnerID: "user-1",
		Title:   "Draft listing",
		Slug:    "draft-listing-aaaaaa",
		Status:  domain.AdoptionStatusDraft,
	}
	if err := (&fakeAdoptions{f.store}).Create(context.Background(), listing); err != nil {
		t.Fatalf("seed: %v", err)
	}

	submitted, err := f.svc.SubmitForReview(context.Background(), "user-1", listing.ID)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if submitted.Status != domain.AdoptionStatusPendingReview {
		t.Fatalf("status = %s, want pending_review", submitted.Status)
	}

	// Double submit is rejected.
	if _, err := f.svc.SubmitForReview(context.Background(), "user-1", listing.ID); err == nil {
		t.Fatal("expected error on re-submit")
	}

	rejected, err := f.svc.Reject(context.Background(), listing.ID, "photos too blurry")
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if rejected.Status != domain.AdoptionStatusRejected {
		t.Fatalf("status = %s, want rejected", rejected.Status)
	}
	if rejected.RejectionReason == nil || *rejected.RejectionReason != "photos too blurry" {
		t.Fatalf("rejection reason = %v", rejected.RejectionReason)
	}

	// Rejected listings may be resubmitted, clearing the reason.
	resubmitted, err := f.svc.SubmitForReview(context.Background(), "user-1", listing.ID)
	if err != nil {
		t.Fatalf("resubmit: %v", err)
	}
	if resubmitted.RejectionReason != nil {
		t.Fatal("resubmit must clear the rejection reason")
	}

	approved, err := f.svc.Approve(context.Background(), listing.ID)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if approved.Status != domain.AdoptionStatusActive {
		t.Fatalf("status = %s, want active", approved.Status)
	}
	if approved.PublishedAt == nil {
		t.Fatal("approval must set PublishedAt")
	}
}

func TestAdoptionRejectRequiresReason(t *testing.T) {
	t.Parallel()
	f := newAdoptionFixture()

	_, err := f.svc.Reject(context.Background(), "adoption-1", "")
	if code := domainErrCode(t, err); code != "validation_failed" {
		t.Fatalf("error code = %s, want validation_failed", code)
	}
}

func TestAdoptionMarkAdopted(t *testing.T) {
	t.Parallel()
	f := newAdoptionFixture()
	view, err := f.svc.Create(context.Background(), "user-1", validAdoptionInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	adopted, err := f.svc.MarkAdopted(context.Background(), "user-1", view.Listing.ID)
	if err != nil {
		t.Fatalf("mark adopted: %v", err)
	}
	if adopted.Status != domain.AdoptionStatusAdopted {
		t.Fatalf("status = %s, want adopted", adopted.Status)
	}
	if adopted.AdoptedAt == nil {
		t.Fatal("expected AdoptedAt")
	}

	// Already adopted; repeat is an invalid transition.
	if _, err := f.svc.MarkAdopted(context.Background(), "user-1", view.Listing.ID); err == nil {
		t.Fatal("expected error on double adoption")
	}

	// Adopted listings cannot be edited.
	_, err = f.svc.Update(context.Background(), "user-1", view.Listing.ID, UpdateAdoptionInput(validAdoptionInput()))
	if code := domainErrCode(t, err); code != "invalid_status" {
		t.Fatalf("error code = %s, want invalid_status", code)
	}
}

func TestAdoptionGetBySlugVisibility(t *testing.T) {
	t.Parallel()
	f := newAdoptionFixture()
	view, err := f.svc.Create(context.Background(), "user-1", validAdoptionInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	public, err := f.svc.GetBySlug(context.Background(), view.Listing.Slug)
	if err != nil {
		t.Fatalf("get by slug: %v", err)
	}
	if public.Listing.ViewCount != 1 {
		t.Fatalf("view count = %d, want 1", public.Listing.ViewCount)
	}

	// A pending listing is invisible on the public surface.
	pending, err := f.svc.Create(context.Background(), "user-1", validAdoptionInput())
	if err != nil {
		t.Fatalf("second create: %v", err)
	}
	_, err = f.svc.GetBySlug(context.Background(), pending.Listing.Slug)
	if code := domainErrCode(t, err); code != "listing_not_found" {
		t.Fatalf("error code = %s, want listing_not_found", code)
	}
}

func TestAdoptionOwnershipEnforced(t *testing.T) {
	t.Parallel()
	f := newAdoptionFixture()
	view, err := f.svc.Create(context.Background(), "user-1", validAdoptionInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = f.svc.MarkAdopted(context.Background(), "user-2", view.Listing.ID)
	if code := domainErrCode(t, err); code != "forbidden" {
		t.Fatalf("error code = %s, want forbidden", code)
	}
	if err := f.svc.Delete(context.Background(), "user-2", view.Listing.ID); err == nil {
		t.Fatal("expected delete by non-owner to fail")
	}
}

func TestAdoptionDeleteSoftDeletesPetToo(t *testing.T) {
	t.Parallel()
	f := newAdoptionFixture()
	view, err := f.svc.Create(context.Background(), "user-1", validAdoptionInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := f.svc.Delete(context.Background(), "user-1", view.Listing.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := (&fakeAdoptions{f.store}).GetByID(context.Background(), view.Listing.ID); err == nil {
		t.Fatal("listing should be gone after soft delete")
	}
	if _, err := (&fakePets{f.store}).GetByID(context.Background(), view.Pet.ID); err == nil {
		t.Fatal("pet should be gone after soft delete")
	}
}

func TestAdoptionRecordInquiry(t *testing.T) {
	t.Parallel()
	f := newAdoptionFixture()
	view, err := f.svc.Create(context.Background(), "user-1", validAdoptionInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := f.svc.RecordInquiry(context.Background(), view.Listing.ID); err != nil {
		t.Fatalf("record inquiry: %v", err)
	}
	got, _ := (&fakeAdoptions{f.store}).GetByID(context.Background(), view.Listing.ID)
	if got.InquiryCount != 1 {
		t.Fatalf("inquiry count = %d, want 1", got.InquiryCount)
	}

	pending, _ := f.svc.Create(context.Background(), "user-1", validAdoptionInput())
	err = f.svc.RecordInquiry(context.Background(), pending.Listing.ID)
	if code := domainErrCode(t, err); code != "invalid_status" {
		t.Fatalf("error code = %s, want invalid_status", code)
	}
}

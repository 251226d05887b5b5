package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/mypaws/adoption-service/internal/domain"
	"github.com/mypaws/adoption-service/internal/gateway"
	"github.com/mypaws/adoption-service/internal/repository"
)

// In-memory repository fakes backing the service tests. They mirror the SQL
// behavior the real repositories rely on, including the partial unique index
// guarding the free tier.

type fakeStore struct {
	mu           sync.Mutex
	seq          int
	users        map[string]*domain.User
	pets         map[string]*domain.Pet
	adoptions    map[string]*domain.AdoptionListing
	profiles     map[string]*domain.BreederProfile
	breederLists map[string]*domain.BreederListing
	applications map[string]*domain.BreederApplication
	payments     map[string]*domain.Payment
	usages       map[string]*domain.ListingUsage
	breeds       map[string]*domain.Breed
	cities       map[string]*domain.City
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:        map[string]*domain.User{},
		pets:         map[string]*domain.Pet{},
		adoptions:    map[string]*domain.AdoptionListing{},
		profiles:     map[string]*domain.BreederProfile{},
		breederLists: map[string]*domain.BreederListing{},
		applications: map[string]*domain.BreederApplication{},
		payments:     map[string]*domain.Payment{},
		usages:       map[string]*domain.ListingUsage{},
		breeds:       map[string]*domain.Breed{},
		cities:       map[string]*domain.City{},
	}
}

func (s *fakeStore) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s-%d", prefix, s.seq)
}

func (s *fakeStore) set() repository.Set {
	return repository.Set{
		Users:            &fakeUsers{s},
		Pets:             &fakePets{s},
		AdoptionListings: &fakeAdoptions{s},
		BreederProfiles:  &fakeProfiles{s},
		BreederListings:  &fakeBreederListings{s},
		Applications:     &fakeApplications{s},
		Payments:         &fakePayments{s},
		Usages:           &fakeUsages{s},
	}
}

// fakeUOW executes the function against the shared store. No rollback; tests
// assert on the committed outcome only.
type fakeUOW struct{ store *fakeStore }

func (u *fakeUOW) Do(_ context.Context, fn func(repository.Set) error) error {
	return fn(u.store.set())
}

type fakeUsers struct{ store *fakeStore }

func (r *fakeUsers) Create(_ context.Context, user *domain.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	user.ID = r.store.nextID("user")
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	r.store.users[user.ID] = &clone
	return nil
}

func (r *fakeUsers) Update(_ context.Context, user *domain.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *user
	r.store.users[user.ID] = &clone
	return nil
}

func (r *fakeUsers) UpdateStatus(_ context.Context, id string, status domain.UserStatus) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	user, ok := r.store.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.Status = status
	return nil
}

func (r *fakeUsers) SetBreeder(_ context.Context, id string, isBreeder bool) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	user, ok := r.store.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.IsBreeder = isBreeder
	return nil
}

func (r *fakeUsers) SoftDelete(_ context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	user, ok := r.store.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.IsDeleted = true
	return nil
}

func (r *fakeUsers) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	user, ok := r.store.users[id]
	if !ok || user.IsDeleted {
		return nil, pgx.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, user := range r.store.users {
		if strings.EqualFold(user.Email, email) && !user.IsDeleted {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type fakePets struct{ store *fakeStore }

func (r *fakePets) Create(_ context.Context, pet *domain.Pet) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	pet.ID = r.store.nextID("pet")
	clone := *pet
	r.store.pets[pet.ID] = &clone
	return nil
}

func (r *fakePets) Update(_ context.Context, pet *domain.Pet) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.pets[pet.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *pet
	r.store.pets[pet.ID] = &clone
	return nil
}

func (r *fakePets) GetByID(_ context.Context, id string) (*domain.Pet, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	pet, ok := r.store.pets[id]
	if !ok || pet.IsDeleted {
		return nil, pgx.ErrNoRows
	}
	clone := *pet
	return &clone, nil
}

func (r *fakePets) SoftDelete(_ context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	pet, ok := r.store.pets[id]
	if !ok {
		return pgx.ErrNoRows
	}
	pet.IsDeleted = true
	return nil
}

func (r *fakePets) ReplaceImages(_ context.Context, petID string, images []domain.PetImage) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	pet, ok := r.store.pets[petID]
	if !ok {
		return pgx.ErrNoRows
	}
	pet.Images = append([]domain.PetImage{}, images...)
	return nil
}

func (r *fakePets) ReplaceFAQs(_ context.Context, petID string, faqs []domain.PetFAQ) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	pet, ok := r.store.pets[petID]
	if !ok {
		return pgx.ErrNoRows
	}
	pet.FAQs = append([]domain.PetFAQ{}, faqs...)
	return nil
}

func (r *fakePets) ListImages(_ context.Context, petID string) ([]domain.PetImage, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	pet, ok := r.store.pets[petID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return append([]domain.PetImage{}, pet.Images...), nil
}

func (r *fakePets) ListFAQs(_ context.Context, petID string) ([]domain.PetFAQ, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	pet, ok := r.store.pets[petID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return append([]domain.PetFAQ{}, pet.FAQs...), nil
}

type fakeAdoptions struct{ store *fakeStore }

func (r *fakeAdoptions) Create(_ context.Context, listing *domain.AdoptionListing) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	listing.ID = r.store.nextID("adoption")
	listing.CreatedAt = time.Now()
	clone := *listing
	r.store.adoptions[listing.ID] = &clone
	return nil
}

func (r *fakeAdoptions) Update(_ context.Context, listing *domain.AdoptionListing) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	existing, ok := r.store.adoptions[listing.ID]
	if !ok || existing.IsDeleted {
		return pgx.ErrNoRows
	}
	clone := *listing
	r.store.adoptions[listing.ID] = &clone
	return nil
}

func (r *fakeAdoptions) GetByID(_ context.Context, id string) (*domain.AdoptionListing, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	listing, ok := r.store.adoptions[id]
	if !ok || listing.IsDeleted {
		return nil, pgx.ErrNoRows
	}
	clone := *listing
	return &clone, nil
}

func (r *fakeAdoptions) GetBySlug(_ context.Context, slug string) (*domain.AdoptionListing, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, listing := range r.store.adoptions {
		if listing.Slug == slug && !listing.IsDeleted {
			clone := *listing
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeAdoptions) ListWithFilter(_ context.Context, filter repository.AdoptionFilter) ([]domain.AdoptionListing, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var result []domain.AdoptionListing
	for _, listing := range r.store.adoptions {
		if listing.IsDeleted {
			continue
		}
		if filter.OwnerID != nil && listing.OwnerID != *filter.OwnerID {
			continue
		}
		if len(filter.Statuses) > 0 && !containsAdoptionStatus(filter.Statuses, listing.Status) {
			continue
		}
		result = append(result, *listing)
	}
	return result, nil
}

func (r *fakeAdoptions) CountActiveByOwner(_ context.Context, ownerID string) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	count := 0
	for _, listing := range r.store.adoptions {
		if listing.OwnerID == ownerID && listing.Status == domain.AdoptionStatusActive && !listing.IsDeleted {
			count++
		}
	}
	return count, nil
}

func (r *fakeAdoptions) IncrementViewCount(_ context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if listing, ok := r.store.adoptions[id]; ok {
		listing.ViewCount++
	}
	return nil
}

func (r *fakeAdoptions) IncrementInquiryCount(_ context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if listing, ok := r.store.adoptions[id]; ok {
		listing.InquiryCount++
	}
	return nil
}

func (r *fakeAdoptions) SoftDelete(_ context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	listing, ok := r.store.adoptions[id]
	if !ok || listing.IsDeleted {
		return pgx.ErrNoRows
	}
	listing.IsDeleted = true
	return nil
}

type fakeProfiles struct{ store *fakeStore }

func (r *fakeProfiles) Create(_ context.Context, profile *domain.BreederProfile) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	profile.ID = r.store.nextID("profile")
	clone := *profile
	r.store.profiles[profile.ID] = &clone
	return nil
}

func (r *fakeProfiles) Update(_ context.Context, profile *domain.BreederProfile) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	existing, ok := r.store.profiles[profile.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	counts := existing.ActiveListingCount
	clone := *profile
	clone.ActiveListingCount = counts
	r.store.profiles[profile.ID] = &clone
	return nil
}

func (r *fakeProfiles) GetByID(_ context.Context, id string) (*domain.BreederProfile, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	profile, ok := r.store.profiles[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *profile
	return &clone, nil
}

func (r *fakeProfiles) GetByUserID(_ context.Context, userID string) (*domain.BreederProfile, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, profile := range r.store.profiles {
		if profile.UserID == userID {
			clone := *profile
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeProfiles) IncrementViewCount(_ context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if profile, ok := r.store.profiles[id]; ok {
		profile.ViewCount++
	}
	return nil
}

func (r *fakeProfiles) AdjustActiveListingCount(_ context.Context, id string, delta int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	profile, ok := r.store.profiles[id]
	if !ok {
		return pgx.ErrNoRows
	}
	profile.ActiveListingCount += delta
	if profile.ActiveListingCount < 0 {
		profile.ActiveListingCount = 0
	}
	return nil
}

type fakeBreederListings struct{ store *fakeStore }

func (r *fakeBreederListings) Create(_ context.Context, listing *domain.BreederListing) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	listing.ID = r.store.nextID("sale")
	listing.CreatedAt = time.Now()
	clone := *listing
	r.store.breederLists[listing.ID] = &clone
	return nil
}

func (r *fakeBreederListings) Update(_ context.Context, listing *domain.BreederListing) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	existing, ok := r.store.breederLists[listing.ID]
	if !ok || existing.IsDeleted {
		return pgx.ErrNoRows
	}
	clone := *listing
	r.store.breederLists[listing.ID] = &clone
	return nil
}

func (r *fakeBreederListings) GetByID(_ context.Context, id string) (*domain.BreederListing, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	listing, ok := r.store.breederLists[id]
	if !ok || listing.IsDeleted {
		return nil, pgx.ErrNoRows
	}
	clone := *listing
	return &clone, nil
}

func (r *fakeBreederListings) GetBySlug(_ context.Context, slug string) (*domain.BreederListing, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, listing := range r.store.breederLists {
		if listing.Slug == slug && !listing.IsDeleted {
			clone := *listing
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeBreederListings) ListWithFilter(_ context.Context, filter repository.BreederListingFilter) ([]domain.BreederListing, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var result []domain.BreederListing
	for _, listing := range r.store.breederLists {
		if listing.IsDeleted {
			continue
		}
		if filter.BreederProfileID != nil && listing.BreederProfileID != *filter.BreederProfileID {
			continue
		}
		if len(filter.Statuses) > 0 && !containsBreederStatus(filter.Statuses, listing.Status) {
			continue
		}
		result = append(result, *listing)
	}
	return result, nil
}

func (r *fakeBreederListings) CountActiveByProfile(_ context.Context, profileID string) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	count := 0
	for _, listing := range r.store.breederLists {
		if listing.BreederProfileID == profileID && listing.Status == domain.BreederStatusActive && !listing.IsDeleted {
			count++
		}
	}
	return count, nil
}

func (r *fakeBreederListings) CountActiveByOwner(_ context.Context, userID string) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	count := 0
	for _, listing := range r.store.breederLists {
		if listing.IsDeleted || listing.Status != domain.BreederStatusActive {
			continue
		}
		profile, ok := r.store.profiles[listing.BreederProfileID]
		if ok && profile.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (r *fakeBreederListings) SoftDelete(_ context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	listing, ok := r.store.breederLists[id]
	if !ok || listing.IsDeleted {
		return pgx.ErrNoRows
	}
	listing.IsDeleted = true
	return nil
}

type fakeApplications struct{ store *fakeStore }

func (r *fakeApplications) Create(_ context.Context, app *domain.BreederApplication) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	app.ID = r.store.nextID("app")
	app.CreatedAt = time.Now()
	clone := *app
	r.store.applications[app.ID] = &clone
	return nil
}

func (r *fakeApplications) Update(_ context.Context, app *domain.BreederApplication) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.applications[app.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *app
	r.store.applications[app.ID] = &clone
	return nil
}

func (r *fakeApplications) GetByID(_ context.Context, id string) (*domain.BreederApplication, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	app, ok := r.store.applications[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *app
	return &clone, nil
}

func (r *fakeApplications) GetLatestByUser(_ context.Context, userID string) (*domain.BreederApplication, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var latest *domain.BreederApplication
	for _, app := range r.store.applications {
		if app.UserID != userID {
			continue
		}
		if latest == nil || app.CreatedAt.After(latest.CreatedAt) {
			latest = app
		}
	}
	if latest == nil {
		return nil, pgx.ErrNoRows
	}
	clone := *latest
	return &clone, nil
}

func (r *fakeApplications) ListByStatus(_ context.Context, status domain.ApplicationStatus, _, _ int) ([]domain.BreederApplication, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var result []domain.BreederApplication
	for _, app := range r.store.applications {
		if app.Status == status {
			result = append(result, *app)
		}
	}
	return result, nil
}

type fakePayments struct{ store *fakeStore }

func (r *fakePayments) Create(_ context.Context, payment *domain.Payment) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	payment.ID = r.store.nextID("payment")
	payment.CreatedAt = time.Now()
	clone := *payment
	r.store.payments[payment.ID] = &clone
	return nil
}

func (r *fakePayments) Update(_ context.Context, payment *domain.Payment) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.payments[payment.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *payment
	r.store.payments[payment.ID] = &clone
	return nil
}

func (r *fakePayments) GetByID(_ context.Context, id string) (*domain.Payment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	payment, ok := r.store.payments[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *payment
	return &clone, nil
}

func (r *fakePayments) GetByGatewayOrderID(_ context.Context, orderID string) (*domain.Payment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, payment := range r.store.payments {
		if payment.GatewayOrderID != nil && *payment.GatewayOrderID == orderID {
			clone := *payment
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakePayments) ListByUser(_ context.Context, userID string, _, _ int) ([]domain.Payment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var result []domain.Payment
	for _, payment := range r.store.payments {
		if payment.UserID == userID {
			result = append(result, *payment)
		}
	}
	return result, nil
}

type fakeUsages struct{ store *fakeStore }

func (r *fakeUsages) Create(_ context.Context, usage *domain.ListingUsage) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if usage.IsFreeTier {
		for _, existing := range r.store.usages {
			if existing.UserID == usage.UserID &&
				existing.ListingType == usage.ListingType &&
				existing.IsFreeTier &&
				existing.Status == domain.UsageStatusActive {
				return repository.ErrFreeTierUsed
			}
		}
	}
	usage.ID = r.store.nextID("usage")
	usage.CreatedAt = time.Now()
	clone := *usage
	r.store.usages[usage.ID] = &clone
	return nil
}

func (r *fakeUsages) HasActiveFreeTier(_ context.Context, userID string, listingType domain.ListingType) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, usage := range r.store.usages {
		if usage.UserID == userID && usage.ListingType == listingType &&
			usage.IsFreeTier && usage.Status == domain.UsageStatusActive {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUsages) ListByUser(_ context.Context, userID string) ([]domain.ListingUsage, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var result []domain.ListingUsage
	for _, usage := range r.store.usages {
		if usage.UserID == userID {
			result = append(result, *usage)
		}
	}
	return result, nil
}

func (r *fakeUsages) ExpireOutdated(_ context.Context) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var count int64
	now := time.Now()
	for _, usage := range r.store.usages {
		if usage.Status == domain.UsageStatusActive && usage.ValidUntil.Before(now) {
			usage.Status = domain.UsageStatusExpired
			count++
		}
	}
	return count, nil
}

type fakeReference struct{ store *fakeStore }

func (r *fakeReference) ListPetTypes(_ context.Context) ([]domain.PetType, error) { return nil, nil }
func (r *fakeReference) ListBreedsByType(_ context.Context, _ string) ([]domain.Breed, error) {
	return nil, nil
}
func (r *fakeReference) ListCities(_ context.Context) ([]domain.City, error)       { return nil, nil }
func (r *fakeReference) ListStates(_ context.Context) ([]domain.State, error)      { return nil, nil }
func (r *fakeReference) ListCountries(_ context.Context) ([]domain.Country, error) { return nil, nil }

func (r *fakeReference) GetBreedByID(_ context.Context, id string) (*domain.Breed, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	breed, ok := r.store.breeds[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *breed
	return &clone, nil
}

func (r *fakeReference) GetCityByID(_ context.Context, id string) (*domain.City, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	city, ok := r.store.cities[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *city
	return &clone, nil
}

// fakeGateway records orders and validates against a fixed signature.
type fakeGateway struct {
	mu          sync.Mutex
	orderSeq    int
	failNext    bool
	goodSig     string
	orders      map[string]int64
	lastNotes   map[string]string
	lastReceipt string
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{goodSig: "valid-signature", orders: map[string]int64{}}
}

func (g *fakeGateway) CreateOrder(_ context.Context, amount int64, _ string, receipt string, notes map[string]string) (*gateway.Order, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failNext {
		g.failNext = false
		return nil, fmt.Errorf("gateway unavailable")
	}
	g.orderSeq++
	orderID := fmt.Sprintf("order_%d", g.orderSeq)
	g.orders[orderID] = amount
	g.lastNotes = notes
	g.lastReceipt = receipt
	return &gateway.Order{OrderID: orderID, KeyID: "rzp_test_key"}, nil
}

func (g *fakeGateway) VerifySignature(_, _, signature string) bool {
	return signature == g.goodSig
}

func containsAdoptionStatus(statuses []domain.AdoptionStatus, status domain.AdoptionStatus) bool {
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}

func containsBreederStatus(statuses []domain.BreederStatus, status domain.BreederStatus) bool {
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}

package domain

import "time"

// ApplicationStatus enumerates breeder application workflow states.
type ApplicationStatus string

const (
	ApplicationStatusDraft         ApplicationStatus = "draft"
	ApplicationStatusPending       ApplicationStatus = "pending"
	ApplicationStatusApproved      ApplicationStatus = "approved"
	ApplicationStatusRejected      ApplicationStatus = "rejected"
	ApplicationStatusInfoRequested ApplicationStatus = "info_requested"
)

// ReviewNote is one admin annotation on a breeder application. Stored as a
// typed jsonb array, never as a free-form string.
type ReviewNote struct {
	AuthorID string    `json:"author_id"`
	Note     string    `json:"note"`
	At       time.Time `json:"at"`
}

// BreederApplication is the workflow entity gating breeder access.
// Approval creates a BreederProfile and promotes the user.
type BreederApplication struct {
	ID              string
	UserID          string
	BusinessName    string
	ExperienceYears int
	DocumentURLs    []string
	Status          ApplicationStatus
	ReviewNotes     []ReviewNote
	ReviewedBy      *string
	ReviewedAt      *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// BadgeTrusted is granted when an unverified profile completes a paid
// premium-level purchase.
const BadgeTrusted = "Trusted"

// BreederProfile holds business identity for an approved breeder, 1:1 with a
// User. Stats are denormalized counters.
type BreederProfile struct {
	ID                 string
	UserID             string
	BusinessName       string
	Bio                string
	Website            string
	CityID             *string
	IsVerified         bool
	Badge              *string
	ViewCount          int64
	ActiveListingCount int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// BreederStatus enumerates lifecycle states for breeder listings.
type BreederStatus string

const (
	BreederStatusDraft          BreederStatus = "draft"
	BreederStatusPendingPayment BreederStatus = "pending_payment"
	BreederStatusActive         BreederStatus = "active"
	BreederStatusSold           BreederStatus = "sold"
	BreederStatusExpired        BreederStatus = "expired"
	BreederStatusRejected       BreederStatus = "rejected"
)

// BreederListing is a sale offer belonging to a BreederProfile, referencing an
// existing or newly created Pet.
type BreederListing struct {
	ID               string
	BreederProfileID string
	PetID            string
	Title            string
	Slug             string
	Price            int64
	Status           BreederStatus
	IsFeatured       bool
	FeaturedUntil    *time.Time
	PublishedAt      *time.Time
	SoldAt           *time.Time
	IsDeleted        bool
	DeletedAt        *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

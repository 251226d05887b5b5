package domain

import "time"

// AdoptionStatus enumerates lifecycle states for adoption listings.
// One canonical casing; all comparisons and writes go through these constants.
type AdoptionStatus string

const (
	AdoptionStatusDraft          AdoptionStatus = "draft"
	AdoptionStatusPendingPayment AdoptionStatus = "pending_payment"
	AdoptionStatusPendingReview  AdoptionStatus = "pending_review"
	AdoptionStatusActive         AdoptionStatus = "active"
	AdoptionStatusRejected       AdoptionStatus = "rejected"
	AdoptionStatusAdopted        AdoptionStatus = "adopted"
)

// AdoptionListing is a published adoption offer, 1:1 with a Pet.
type AdoptionListing struct {
	ID              string
	PetID           string
	OwnerID         string
	Title           string
	Slug            string
	Fee             int64
	Status          AdoptionStatus
	IsFeatured      bool
	FeaturedUntil   *time.Time
	ViewCount       int64
	InquiryCount    int64
	RejectionReason *string
	PublishedAt     *time.Time
	AdoptedAt       *time.Time
	IsDeleted       bool
	DeletedAt       *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

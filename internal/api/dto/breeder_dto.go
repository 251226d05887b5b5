package dto

import (
	"time"

	"github.com/mypaws/adoption-service/internal/domain"
)

// ApplicationRequest files a breeder application.
type ApplicationRequest struct {
	BusinessName    string   `json:"business_name"`
	ExperienceYears int      `json:"experience_years"`
	DocumentURLs    []string `json:"document_urls"`
}

// ReviewRequest carries an admin review note.
type ReviewRequest struct {
	Note string `json:"note"`
}

// ApplicationResponse is the application shape.
type ApplicationResponse struct {
	ID              string                   `json:"id"`
	UserID          string                   `json:"user_id"`
	BusinessName    string                   `json:"business_name"`
	ExperienceYears int                      `json:"experience_years"`
	DocumentURLs    []string                 `json:"document_urls"`
	Status          domain.ApplicationStatus `json:"status"`
	ReviewNotes     []ReviewNoteResponse     `json:"review_notes,omitempty"`
	ReviewedAt      *time.Time               `json:"reviewed_at,omitempty"`
	CreatedAt       time.Time                `json:"created_at"`
}

// ReviewNoteResponse is one admin annotation.
type ReviewNoteResponse struct {
	Note string    `json:"note"`
	At   time.Time `json:"at"`
}

// ProfileRequest edits a breeder profile.
type ProfileRequest struct {
	BusinessName string  `json:"business_name"`
	Bio          string  `json:"bio"`
	Website      string  `json:"website"`
	CityID       *string `json:"city_id,omitempty"`
}

// ProfileResponse is the breeder profile shape.
type ProfileResponse struct {
	ID                 string    `json:"id"`
	UserID             string    `json:"user_id"`
	BusinessName       string    `json:"business_name"`
	Bio                string    `json:"bio,omitempty"`
	Website            string    `json:"website,omitempty"`
	CityID             *string   `json:"city_id,omitempty"`
	IsVerified         bool      `json:"is_verified"`
	Badge              *string   `json:"badge,omitempty"`
	ViewCount          int64     `json:"view_count"`
	ActiveListingCount int       `json:"active_listing_count"`
	CreatedAt          time.Time `json:"created_at"`
}

// CreateBreederListingRequest creates a sale listing.
type CreateBreederListingRequest struct {
	Title string     `json:"title"`
	Price int64      `json:"price"`
	Pet   PetRequest `json:"pet"`
}

// UpdateBreederListingRequest edits a sale listing.
type UpdateBreederListingRequest = CreateBreederListingRequest

// BreederListingSummary is the sale listing shape.
type BreederListingSummary struct {
	ID               string               `json:"id"`
	BreederProfileID string               `json:"breeder_profile_id"`
	PetID            string               `json:"pet_id"`
	Title            string               `json:"title"`
	Slug             string               `json:"slug"`
	Price            int64                `json:"price"`
	Status           domain.BreederStatus `json:"status"`
	IsFeatured       bool                 `json:"is_featured"`
	FeaturedUntil    *time.Time           `json:"featured_until,omitempty"`
	PublishedAt      *time.Time           `json:"published_at,omitempty"`
	SoldAt           *time.Time           `json:"sold_at,omitempty"`
	CreatedAt        time.Time            `json:"created_at"`
}

// BreederListingDetail pairs a sale listing with its pet.
type BreederListingDetail struct {
	BreederListingSummary
	Pet *PetResponse `json:"pet,omitempty"`
}

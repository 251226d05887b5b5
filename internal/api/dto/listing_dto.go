package dto

import (
	"time"

	"github.com/mypaws/adoption-service/internal/domain"
)

// PetRequest carries pet fields shared by adoption and breeder listings.
type PetRequest struct {
	PetTypeID   string             `json:"pet_type_id"`
	BreedID     *string            `json:"breed_id,omitempty"`
	CityID      string             `json:"city_id"`
	Name        string             `json:"name"`
	Gender      string             `json:"gender"`
	AgeMonths   int                `json:"age_months"`
	Size        string             `json:"size,omitempty"`
	Color       string             `json:"color,omitempty"`
	Temperament domain.Temperament `json:"temperament"`
	Description string             `json:"description"`
	ImageURLs   []string           `json:"image_urls"`
	FAQs        []FAQRequest       `json:"faqs,omitempty"`
}

// FAQRequest is one question/answer pair.
type FAQRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// CreateAdoptionRequest creates an adoption listing.
type CreateAdoptionRequest struct {
	Title string     `json:"title"`
	Fee   int64      `json:"fee"`
	Pet   PetRequest `json:"pet"`
}

// UpdateAdoptionRequest edits an adoption listing.
type UpdateAdoptionRequest = CreateAdoptionRequest

// RejectRequest carries a moderation reason.
type RejectRequest struct {
	Reason string `json:"reason"`
}

// PetResponse is the pet shape embedded in listing detail.
type PetResponse struct {
	ID          string             `json:"id"`
	PetTypeID   string             `json:"pet_type_id"`
	BreedID     *string            `json:"breed_id,omitempty"`
	CityID      string             `json:"city_id"`
	Name        string             `json:"name"`
	Gender      domain.PetGender   `json:"gender"`
	AgeMonths   int                `json:"age_months"`
	Size        string             `json:"size,omitempty"`
	Color       string             `json:"color,omitempty"`
	Temperament domain.Temperament `json:"temperament"`
	Description string             `json:"description"`
	Images      []PetImageResponse `json:"images"`
	FAQs        []PetFAQResponse   `json:"faqs"`
}

// PetImageResponse is one stored photo.
type PetImageResponse struct {
	ID        string `json:"id"`
	URL       string `json:"url"`
	Position  int    `json:"position"`
	IsPrimary bool   `json:"is_primary"`
}

// PetFAQResponse is one listing FAQ entry.
type PetFAQResponse struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Position int    `json:"position"`
}

// AdoptionSummary is the search-result shape.
type AdoptionSummary struct {
	ID            string                `json:"id"`
	PetID         string                `json:"pet_id"`
	Title         string                `json:"title"`
	Slug          string                `json:"slug"`
	Fee           int64                 `json:"fee"`
	Status        domain.AdoptionStatus `json:"status"`
	IsFeatured    bool                  `json:"is_featured"`
	FeaturedUntil *time.Time            `json:"featured_until,omitempty"`
	ViewCount     int64                 `json:"view_count"`
	InquiryCount  int64                 `json:"inquiry_count"`
	PublishedAt   *time.Time            `json:"published_at,omitempty"`
	CreatedAt     time.Time             `json:"created_at"`
}

// AdoptionDetail is the full listing shape with its pet.
type AdoptionDetail struct {
	AdoptionSummary
	RejectionReason *string      `json:"rejection_reason,omitempty"`
	AdoptedAt       *time.Time   `json:"adopted_at,omitempty"`
	Pet             *PetResponse `json:"pet,omitempty"`
}

package events

import (
	"time"

	"github.com/mypaws/adoption-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventListingActivated    EventType = "listing_activated"
	EventListingSubmitted    EventType = "listing_submitted"
	EventListingAdopted      EventType = "listing_adopted"
	EventListingRejected     EventType = "listing_rejected"
	EventPaymentCompleted    EventType = "payment_completed"
	EventPaymentFailed       EventType = "payment_failed"
	EventApplicationDecided  EventType = "application_decided"
	EventProfileVerified     EventType = "profile_verified"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UserID    string      `json:"user_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ListingActivatedPayload payload.
type ListingActivatedPayload struct {
	ListingType domain.ListingType `json:"listing_type"`
	ListingID   string             `json:"listing_id"`
	PricingTier domain.PricingTier `json:"pricing_tier"`
	FreeTier    bool               `json:"free_tier"`
}

// ListingSubmittedPayload payload.
type ListingSubmittedPayload struct {
	ListingType domain.ListingType `json:"listing_type"`
	ListingID   string             `json:"listing_id"`
}

// ListingAdoptedPayload payload.
type ListingAdoptedPayload struct {
	ListingID string `json:"listing_id"`
}

// ListingRejectedPayload payload.
type ListingRejectedPayload struct {
	ListingType domain.ListingType `json:"listing_type"`
	ListingID   string             `json:"listing_id"`
	Reason      string             `json:"reason,omitempty"`
}

// PaymentCompletedPayload payload.
type PaymentCompletedPayload struct {
	PaymentID   string             `json:"payment_id"`
	ListingType domain.ListingType `json:"listing_type"`
	ListingID   string             `json:"listing_id"`
	Amount      int64              `json:"amount"`
}

// PaymentFailedPayload payload.
type PaymentFailedPayload struct {
	PaymentID string `json:"payment_id"`
	Reason    string `json:"reason,omitempty"`
}

// ApplicationDecidedPayload payload.
type ApplicationDecidedPayload struct {
	ApplicationID string                   `json:"application_id"`
	Decision      domain.ApplicationStatus `json:"decision"`
}

// ProfileVerifiedPayload payload.
type ProfileVerifiedPayload struct {
	BreederProfileID string `json:"breeder_profile_id"`
	Badge            string `json:"badge"`
}

package domain

import "time"

// Favorite joins a user to an adoption listing. The (user, listing) pair is
// unique at the database level.
type Favorite struct {
	ID                string
	UserID            string
	AdoptionListingID string
	CreatedAt         time.Time
}

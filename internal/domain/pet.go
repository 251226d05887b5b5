package domain

import "time"

// PetGender enumerates pet sexes.
type PetGender string

const (
	PetGenderMale    PetGender = "male"
	PetGenderFemale  PetGender = "female"
	PetGenderUnknown PetGender = "unknown"
)

// Temperament is structured behavioural info for a pet. Stored as jsonb and
// validated at the API boundary rather than deserialized ad hoc at read time.
type Temperament struct {
	Traits      []string `json:"traits,omitempty"`
	EnergyLevel string   `json:"energy_level,omitempty"`
	GoodWith    []string `json:"good_with,omitempty"`
	Notes       string   `json:"notes,omitempty"`
}

// Pet is the animal behind a listing. Created alongside a listing, mutated by
// listing edits, soft-deleted only.
type Pet struct {
	ID          string
	OwnerID     string
	PetTypeID   string
	BreedID     *string // nil for mixed/unknown breed
	CityID      string
	Name        string
	Gender      PetGender
	AgeMonths   int
	Size        string
	Color       string
	Temperament Temperament
	Description string
	Images      []PetImage
	FAQs        []PetFAQ
	IsDeleted   bool
	DeletedAt   *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PetImage is an uploaded photo reference.
type PetImage struct {
	ID        string
	PetID     string
	URL       string
	Position  int
	IsPrimary bool
	CreatedAt time.Time
}

// PetFAQ is an owner-authored question/answer shown on the listing page.
type PetFAQ struct {
	ID        string
	PetID     string
	Question  string
	Answer    string
	Position  int
	CreatedAt time.Time
}

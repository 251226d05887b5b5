package domain

import "time"

// Reference data is seeded at startup and read-only at runtime.

// Country lookup row.
type Country struct {
	ID   string
	Name string
	Code string
}

// State lookup row.
type State struct {
	ID        string
	CountryID string
	Name      string
}

// City lookup row.
type City struct {
	ID      string
	StateID string
	Name    string
}

// PetType lookup row (dog, cat, ...).
type PetType struct {
	ID   string
	Name string
	Slug string
}

// Breed lookup row, scoped to a pet type.
type Breed struct {
	ID        string
	PetTypeID string
	Name      string
	Slug      string
	IsDeleted bool
	DeletedAt *time.Time
}

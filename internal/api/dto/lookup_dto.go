package dto

// PetTypeResponse is a pet type lookup row.
type PetTypeResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// BreedResponse is a breed lookup row.
type BreedResponse struct {
	ID        string `json:"id"`
	PetTypeID string `json:"pet_type_id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
}

// CountryResponse is a country lookup row.
type CountryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// StateResponse is a state lookup row.
type StateResponse struct {
	ID        string `json:"id"`
	CountryID string `json:"country_id"`
	Name      string `json:"name"`
}

// CityResponse is a city lookup row.
type CityResponse struct {
	ID      string `json:"id"`
	StateID string `json:"state_id"`
	Name    string `json:"name"`
}

package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mypaws/adoption-service/internal/api/dto"
	"github.com/mypaws/adoption-service/internal/repository"
	apperrors "github.com/mypaws/adoption-service/pkg/util"
)

// LookupHandler serves seeded reference data: pet types, breeds, geography.
type LookupHandler struct {
	refdata repository.ReferenceRepository
}

// NewLookupHandler constructs the handler.
func NewLookupHandler(refdata repository.ReferenceRepository) *LookupHandler {
	return &LookupHandler{refdata: refdata}
}

// PetTypes GET /lookups/pet-types.
func (h *LookupHandler) PetTypes(c *fiber.Ctx) error {
	types, err := h.refdata.ListPetTypes(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.PetTypeResponse, 0, len(types))
	for _, t := range types {
		items = append(items, dto.PetTypeResponse{ID: t.ID, Name: t.Name, Slug: t.Slug})
	}
	return c.JSON(fiber.Map{"data": items})
}

// Breeds GET /lookups/pet-types/:id/breeds.
func (h *LookupHandler) Breeds(c *fiber.Ctx) error {
	petTypeID := c.Params("id")
	if petTypeID == "" {
		return apperrors.NewValidationError("pet type id required")
	}
	breeds, err := h.refdata.ListBreedsByType(c.Context(), petTypeID)
	if err != nil {
		return err
	}
	items := make([]dto.BreedResponse, 0, len(breeds))
	for _, b := range breeds {
		items = append(items, dto.BreedResponse{ID: b.ID, PetTypeID: b.PetTypeID, Name: b.Name, Slug: b.Slug})
	}
	return c.JSON(fiber.Map{"data": items})
}

// Countries GET /lookups/countries.
func (h *LookupHandler) Countries(c *fiber.Ctx) error {
	countries, err := h.refdata.ListCountries(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.CountryResponse, 0, len(countries))
	for _, country := range countries {
		items = append(items, dto.CountryResponse{ID: country.ID, Name: country.Name, Code: country.Code})
	}
	return c.JSON(fiber.Map{"data": items})
}

// States GET /lookups/states.
func (h *LookupHandler) States(c *fiber.Ctx) error {
	states, err := h.refdata.ListStates(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.StateResponse, 0, len(states))
	for _, state := range states {
		items = append(items, dto.StateResponse{ID: state.ID, CountryID: state.CountryID, Name: state.Name})
	}
	return c.JSON(fiber.Map{"data": items})
}

// Cities GET /lookups/cities.
func (h *LookupHandler) Cities(c *fiber.Ctx) error {
	cities, err := h.refdata.ListCities(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.CityResponse, 0, len(cities))
	for _, city := range cities {
		items = append(items, dto.CityResponse{ID: city.ID, StateID: city.StateID, Name: city.Name})
	}
	return c.JSON(fiber.Map{"data": items})
}

package repository

import (
	"context"

	"github.com/mypaws/adoption-service/internal/domain"
)

// ReferenceRepository reads the static lookup tables.
type ReferenceRepository interface {
	ListPetTypes(ctx context.Context) ([]domain.PetType, error)
	ListBreedsByType(ctx context.Context, petTypeID string) ([]domain.Breed, error)
	ListCities(ctx context.Context) ([]domain.City, error)
	ListStates(ctx context.Context) ([]domain.State, error)
	ListCountries(ctx context.Context) ([]domain.Country, error)
	GetBreedByID(ctx context.Context, id string) (*domain.Breed, error)
	GetCityByID(ctx context.Context, id string) (*domain.City, error)
}

type referenceRepository struct {
	db DB
}

// NewReferenceRepository instantiates the repository.
func NewReferenceRepository(db DB) ReferenceRepository {
	return &referenceRepository{db: db}
}

func (r *referenceRepository) ListPetTypes(ctx context.Context) ([]domain.PetType, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, slug FROM pet_types ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.PetType
	for rows.Next() {
		var pt domain.PetType
		if err := rows.Scan(&pt.ID, &pt.Name, &pt.Slug); err != nil {
			return nil, err
		}
		result = append(result, pt)
	}
	return result, rows.Err()
}

func (r *referenceRepository) ListBreedsByType(ctx context.Context, petTypeID string) ([]domain.Breed, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, pet_type_id, name, slug, is_deleted, deleted_at
         FROM breeds WHERE pet_type_id=$1 AND is_deleted=FALSE ORDER BY name`, petTypeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Breed
	for rows.Next() {
		var breed domain.Breed
		if err := rows.Scan(&breed.ID, &breed.PetTypeID, &breed.Name, &breed.Slug, &breed.IsDeleted, &breed.DeletedAt); err != nil {
			return nil, err
		}
		result = append(result, breed)
	}
	return result, rows.Err()
}

func (r *referenceRepository) ListCities(ctx context.Context) ([]domain.City, error) {
	rows, err := r.db.Query(ctx, `SELECT id, state_id, name FROM cities ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.City
	for rows.Next() {
		var city domain.City
		if err := rows.Scan(&city.ID, &city.StateID, &city.Name); err != nil {
			return nil, err
		}
		result = append(result, city)
	}
	return result, rows.Err()
}

func (r *referenceRepository) ListStates(ctx context.Context) ([]domain.State, error) {
	rows, err := r.db.Query(ctx, `SELECT id, country_id, name FROM states ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.State
	for rows.Next() {
		var state domain.State
		if err := rows.Scan(&state.ID, &state.CountryID, &state.Name); err != nil {
			return nil, err
		}
		result = append(result, state)
	}
	return result, rows.Err()
}

func (r *referenceRepository) ListCountries(ctx context.Context) ([]domain.Country, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, code FROM countries ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Country
	for rows.Next() {
		var country domain.Country
		if err := rows.Scan(&country.ID, &country.Name, &country.Code); err != nil {
			return nil, err
		}
		result = append(result, country)
	}
	return result, rows.Err()
}

func (r *referenceRepository) GetBreedByID(ctx context.Context, id string) (*domain.Breed, error) {
	var breed domain.Breed
	if err := r.db.QueryRow(ctx,
		`SELECT id, pet_type_id, name, slug, is_deleted, deleted_at
         FROM breeds WHERE id=$1 AND is_deleted=FALSE`, id).Scan(
		&breed.ID, &breed.PetTypeID, &breed.Name, &breed.Slug, &breed.IsDeleted, &breed.DeletedAt,
	); err != nil {
		return nil, err
	}
	return &breed, nil
}

func (r *referenceRepository) GetCityByID(ctx context.Context, id string) (*domain.City, error) {
	var city domain.City
	if err := r.db.QueryRow(ctx,
		`SELECT id, state_id, name FROM cities WHERE id=$1`, id).Scan(
		&city.ID, &city.StateID, &city.Name,
	); err != nil {
		return nil, err
	}
	return &city, nil
}

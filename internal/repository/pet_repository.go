package repository

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"

	"github.com/mypaws/adoption-service/internal/domain"
)

// PetRepository encapsulates pet persistence including images and FAQs.
type PetRepository interface {
	Create(ctx context.Context, pet *domain.Pet) error
	Update(ctx context.Context, pet *domain.Pet) error
	GetByID(ctx context.Context, id string) (*domain.Pet, error)
	SoftDelete(ctx context.Context, id string) error
	ReplaceImages(ctx context.Context, petID string, images []domain.PetImage) error
	ReplaceFAQs(ctx context.Context, petID string, faqs []domain.PetFAQ) error
	ListImages(ctx context.Context, petID string) ([]domain.PetImage, error)
	ListFAQs(ctx context.Context, petID string) ([]domain.PetFAQ, error)
}

type petRepository struct {
	db DB
}

// NewPetRepository instantiates the repository.
func NewPetRepository(db DB) PetRepository {
	return &petRepository{db: db}
}

func (r *petRepository) Create(ctx context.Context, pet *domain.Pet) error {
	temperament, err := json.Marshal(pet.Temperament)
	if err != nil {
		return err
	}
	const query = `
        INSERT INTO pets (owner_id, pet_type_id, breed_id, city_id, name, gender, age_months,
            size, color, temperament, description)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        RETURNING id, created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		pet.OwnerID,
		pet.PetTypeID,
		pet.BreedID,
		pet.CityID,
		pet.Name,
		pet.Gender,
		pet.AgeMonths,
		pet.Size,
		pet.Color,
		temperament,
		pet.Description,
	).Scan(&pet.ID, &pet.CreatedAt, &pet.UpdatedAt)
}

func (r *petRepository) Update(ctx context.Context, pet *domain.Pet) error {
	temperament, err := json.Marshal(pet.Temperament)
	if err != nil {
		return err
	}
	const query = `
        UPDATE pets SET pet_type_id=$1, breed_id=$2, city_id=$3, name=$4, gender=$5,
            age_months=$6, size=$7, color=$8, temperament=$9, description=$10, updated_at=NOW()
        WHERE id=$11 AND is_deleted=FALSE`
	cmd, err := r.db.Exec(ctx, query,
		pet.PetTypeID,
		pet.BreedID,
		pet.CityID,
		pet.Name,
		pet.Gender,
		pet.AgeMonths,
		pet.Size,
		pet.Color,
		temperament,
		pet.Description,
		pet.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *petRepository) GetByID(ctx context.Context, id string) (*domain.Pet, error) {
	const query = `
        SELECT id, owner_id, pet_type_id, breed_id, city_id, name, gender, age_months,
               size, color, temperament, description, is_deleted, deleted_at, created_at, updated_at
        FROM pets WHERE id=$1 AND is_deleted=FALSE`

	var pet domain.Pet
	var temperament []byte
	if err := r.db.QueryRow(ctx, query, id).Scan(
		&pet.ID,
		&pet.OwnerID,
		&pet.PetTypeID,
		&pet.BreedID,
		&pet.CityID,
		&pet.Name,
		&pet.Gender,
		&pet.AgeMonths,
		&pet.Size,
		&pet.Color,
		&temperament,
		&pet.Description,
		&pet.IsDeleted,
		&pet.DeletedAt,
		&pet.CreatedAt,
		&pet.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if len(temperament) > 0 {
		if err := json.Unmarshal(temperament, &pet.Temperament); err != nil {
			return nil, err
		}
	}

	images, err := r.ListImages(ctx, pet.ID)
	if err != nil {
		return nil, err
	}
	pet.Images = images

	faqs, err := r.ListFAQs(ctx, pet.ID)
	if err != nil {
		return nil, err
	}
	pet.FAQs = faqs
	return &pet, nil
}

func (r *petRepository) SoftDelete(ctx context.Context, id string) error {
	cmd, err := r.db.Exec(ctx,
		`UPDATE pets SET is_deleted=TRUE, deleted_at=NOW(), updated_at=NOW()
         WHERE id=$1 AND is_deleted=FALSE`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// ReplaceImages removes existing rows and inserts the given set. Listing
// updates always send the full image list.
func (r *petRepository) ReplaceImages(ctx context.Context, petID string, images []domain.PetImage) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM pet_images WHERE pet_id=$1`, petID); err != nil {
		return err
	}
	for i := range images {
		img := &images[i]
		img.PetID = petID
		img.Position = i
		if err := r.db.QueryRow(ctx,
			`INSERT INTO pet_images (pet_id, url, position, is_primary)
             VALUES ($1,$2,$3,$4) RETURNING id, created_at`,
			img.PetID, img.URL, img.Position, img.IsPrimary,
		).Scan(&img.ID, &img.CreatedAt); err != nil {
			return err
		}
	}
	return nil
}

func (r *petRepository) ReplaceFAQs(ctx context.Context, petID string, faqs []domain.PetFAQ) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM pet_faqs WHERE pet_id=$1`, petID); err != nil {
		return err
	}
	for i := range faqs {
		faq := &faqs[i]
		faq.PetID = petID
		faq.Position = i
		if err := r.db.QueryRow(ctx,
			`INSERT INTO pet_faqs (pet_id, question, answer, position)
             VALUES ($1,$2,$3,$4) RETURNING id, created_at`,
			faq.PetID, faq.Question, faq.Answer, faq.Position,
		).Scan(&faq.ID, &faq.CreatedAt); err != nil {
			return err
		}
	}
	return nil
}

func (r *petRepository) ListImages(ctx context.Context, petID string) ([]domain.PetImage, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, pet_id, url, position, is_primary, created_at
         FROM pet_images WHERE pet_id=$1 ORDER BY position`, petID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.PetImage
	for rows.Next() {
		var img domain.PetImage
		if err := rows.Scan(&img.ID, &img.PetID, &img.URL, &img.Position, &img.IsPrimary, &img.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, img)
	}
	return result, rows.Err()
}

func (r *petRepository) ListFAQs(ctx context.Context, petID string) ([]domain.PetFAQ, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, pet_id, question, answer, position, created_at
         FROM pet_faqs WHERE pet_id=$1 ORDER BY position`, petID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.PetFAQ
	for rows.Next() {
		var faq domain.PetFAQ
		if err := rows.Scan(&faq.ID, &faq.PetID, &faq.Question, &faq.Answer, &faq.Position, &faq.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, faq)
	}
	return result, rows.Err()
}

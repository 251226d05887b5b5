package repository

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"

	"github.com/mypaws/adoption-service/internal/domain"
)

// BreederApplicationRepository manages breeder application persistence.
type BreederApplicationRepository interface {
	Create(ctx context.Context, app *domain.BreederApplication) error
	Update(ctx context.Context, app *domain.BreederApplication) error
	GetByID(ctx context.Context, id string) (*domain.BreederApplication, error)
	GetLatestByUser(ctx context.Context, userID string) (*domain.BreederApplication, error)
	ListByStatus(ctx context.Context, status domain.ApplicationStatus, limit, offset int) ([]domain.BreederApplication, error)
}

type breederApplicationRepository struct {
	db DB
}

// NewBreederApplicationRepository instantiates the repository.
func NewBreederApplicationRepository(db DB) BreederApplicationRepository {
	return &breederApplicationRepository{db: db}
}

const applicationColumns = `id, user_id, business_name, experience_years, document_urls, status,
        review_notes, reviewed_by, reviewed_at, created_at, updated_at`

func (r *breederApplicationRepository) Create(ctx context.Context, app *domain.BreederApplication) error {
	docs, notes, err := marshalApplicationJSON(app)
	if err != nil {
		return err
	}
	const query = `
        INSERT INTO breeder_applications (user_id, business_name, experience_years, document_urls, status, review_notes)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		app.UserID,
		app.BusinessName,
		app.ExperienceYears,
		docs,
		app.Status,
		notes,
	).Scan(&app.ID, &app.CreatedAt, &app.UpdatedAt)
}

func (r *breederApplicationRepository) Update(ctx context.Context, app *domain.BreederApplication) error {
	docs, notes, err := marshalApplicationJSON(app)
	if err != nil {
		return err
	}
	const query = `
        UPDATE breeder_applications SET business_name=$1, experience_years=$2, document_urls=$3,
            status=$4, review_notes=$5, reviewed_by=$6, reviewed_at=$7, updated_at=NOW()
        WHERE id=$8`
	cmd, err := r.db.Exec(ctx, query,
		app.BusinessName,
		app.ExperienceYears,
		docs,
		app.Status,
		notes,
		app.ReviewedBy,
		app.ReviewedAt,
		app.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *breederApplicationRepository) GetByID(ctx context.Context, id string) (*domain.BreederApplication, error) {
	query := `SELECT ` + applicationColumns + ` FROM breeder_applications WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *breederApplicationRepository) GetLatestByUser(ctx context.Context, userID string) (*domain.BreederApplication, error) {
	query := `SELECT ` + applicationColumns + ` FROM breeder_applications
        WHERE user_id=$1 ORDER BY created_at DESC LIMIT 1`
	return r.fetchSingle(ctx, query, userID)
}

func (r *breederApplicationRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.BreederApplication, error) {
	var app domain.BreederApplication
	var docs, notes []byte
	if err := r.db.QueryRow(ctx, query, arg).Scan(
		&app.ID,
		&app.UserID,
		&app.BusinessName,
		&app.ExperienceYears,
		&docs,
		&app.Status,
		&notes,
		&app.ReviewedBy,
		&app.ReviewedAt,
		&app.CreatedAt,
		&app.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if err := unmarshalApplicationJSON(&app, docs, notes); err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *breederApplicationRepository) ListByStatus(ctx context.Context, status domain.ApplicationStatus, limit, offset int) ([]domain.BreederApplication, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	query := `SELECT ` + applicationColumns + ` FROM breeder_applications
        WHERE status=$1 ORDER BY created_at ASC LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(ctx, query, status, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.BreederApplication
	for rows.Next() {
		var app domain.BreederApplication
		var docs, notes []byte
		if err := rows.Scan(
			&app.ID,
			&app.UserID,
			&app.BusinessName,
			&app.ExperienceYears,
			&docs,
			&app.Status,
			&notes,
			&app.ReviewedBy,
			&app.ReviewedAt,
			&app.CreatedAt,
			&app.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if err := unmarshalApplicationJSON(&app, docs, notes); err != nil {
			return nil, err
		}
		result = append(result, app)
	}
	return result, rows.Err()
}

func marshalApplicationJSON(app *domain.BreederApplication) ([]byte, []byte, error) {
	if app.DocumentURLs == nil {
		app.DocumentURLs = []string{}
	}
	if app.ReviewNotes == nil {
		app.ReviewNotes = []domain.ReviewNote{}
	}
	docs, err := json.Marshal(app.DocumentURLs)
	if err != nil {
		return nil, nil, err
	}
	notes, err := json.Marshal(app.ReviewNotes)
	if err != nil {
		return nil, nil, err
	}
	return docs, notes, nil
}

func unmarshalApplicationJSON(app *domain.BreederApplication, docs, notes []byte) error {
	if len(docs) > 0 {
		if err := json.Unmarshal(docs, &app.DocumentURLs); err != nil {
			return err
		}
	}
	if len(notes) > 0 {
		if err := json.Unmarshal(notes, &app.ReviewNotes); err != nil {
			return err
		}
	}
	return nil
}

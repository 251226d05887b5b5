package persistence

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Reference data seeded once at startup; the application treats these tables
// as read-only afterwards.
var seedPetTypes = map[string]string{
	"Dog":    "dog",
	"Cat":    "cat",
	"Bird":   "bird",
	"Rabbit": "rabbit",
}

var seedBreeds = map[string][]string{
	"dog": {"Labrador Retriever", "German Shepherd", "Golden Retriever", "Beagle", "Indie", "Pug", "Rottweiler", "Shih Tzu"},
	"cat": {"Persian", "Siamese", "Maine Coon", "Bombay", "Himalayan"},
}

var seedGeography = map[string]map[string][]string{
	"India": {
		"Maharashtra": {"Mumbai", "Pune", "Nagpur"},
		"Karnataka":   {"Bengaluru", "Mysuru"},
		"Delhi":       {"New Delhi"},
		"Tamil Nadu":  {"Chennai", "Coimbatore"},
		"Telangana":   {"Hyderabad"},
	},
}

// SeedReferenceData inserts lookup rows idempotently.
func SeedReferenceData(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) error {
	if pool == nil {
		logger.Warn("no postgres pool available; skipping reference seed")
		return nil
	}

	for name, slug := range seedPetTypes {
		if _, err := pool.Exec(ctx,
			`INSERT INTO pet_types (name, slug) VALUES ($1, $2) ON CONFLICT (slug) DO NOTHING`,
			name, slug,
		); err != nil {
			return fmt.Errorf("seed pet type %s: %w", slug, err)
		}
	}

	for typeSlug, breeds := range seedBreeds {
		for _, breed := range breeds {
			if _, err := pool.Exec(ctx,
				`INSERT INTO breeds (pet_type_id, name, slug)
                 SELECT id, $2, $3 FROM pet_types WHERE slug = $1
                 ON CONFLICT (pet_type_id, slug) DO NOTHING`,
				typeSlug, breed, slugify(breed),
			); err != nil {
				return fmt.Errorf("seed breed %s: %w", breed, err)
			}
		}
	}

	for country, states := range seedGeography {
		if _, err := pool.Exec(ctx,
			`INSERT INTO countries (name, code) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING`,
			country, countryCode(country),
		); err != nil {
			return fmt.Errorf("seed country %s: %w", country, err)
		}
		for state, cities := range states {
			if _, err := pool.Exec(ctx,
				`INSERT INTO states (country_id, name)
                 SELECT id, $2 FROM countries WHERE name = $1
                 ON CONFLICT (country_id, name) DO NOTHING`,
				country, state,
			); err != nil {
				return fmt.Errorf("seed state %s: %w", state, err)
			}
			for _, city := range cities {
				if _, err := pool.Exec(ctx,
					`INSERT INTO cities (state_id, name)
                     SELECT s.id, $3 FROM states s JOIN countries c ON c.id = s.country_id
                     WHERE c.name = $1 AND s.name = $2
                     ON CONFLICT (state_id, name) DO NOTHING`,
					country, state, city,
				); err != nil {
					return fmt.Errorf("seed city %s: %w", city, err)
				}
			}
		}
	}

	logger.Info("reference data seeded")
	return nil
}

func slugify(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			out = append(out, r)
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		case r == ' ' || r == '-' || r == '_':
			if len(out) > 0 && out[len(out)-1] != '-' {
				out = append(out, '-')
			}
		}
	}
	for len(out) > 0 && out[len(out)-1] == '-' {
		out = out[:len(out)-1]
	}
	return string(out)
}

func countryCode(name string) string {
	if name == "India" {
		return "IN"
	}
	if len(name) >= 2 {
		return slugify(name[:2])
	}
	return name
}

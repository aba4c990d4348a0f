package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// defaultCategories are created on first startup so the forum is usable
// before anyone with database access adds their own.
var defaultCategories = []struct {
	Name        string
	Description string
}{
	{"General", "General campus discussion"},
	{"Academics", "Courses, exams and study questions"},
	{"Campus Life", "Events, clubs and everything around campus"},
	{"Marketplace", "Buy, sell and trade with other students"},
	{"Housing", "Dorms, apartments and roommate search"},
}

// CreateDefaultData inserts the default forum categories if they don't
// exist yet. Errors are collected so one failing row does not stop the
// rest of the seed.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default forum categories...")

	var finalErr error
	for _, cat := range defaultCategories {
		_, err := dbPool.Exec(ctx, `
			INSERT INTO forum_categories (name, description)
			VALUES ($1, $2)
			ON CONFLICT (name) DO NOTHING
		`, cat.Name, cat.Description)
		if err != nil {
			lgr.Error().Err(err).Str("category", cat.Name).Msg("Error creating default forum category")
			finalErr = errors.Join(finalErr, err)
		}
	}

	if finalErr == nil {
		lgr.Info().Msg("Default forum categories present")
	}
	return finalErr
}

package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Seeded catalog defaults, created on first run.
var (
	defaultLocations = []string{"Pantry", "Fridge", "Freezer"}
	defaultTags      = []string{"Prepared Meals", "Snacks"}
)

// Seed ensures the default storage locations and tags exist. It is
// idempotent: repeated runs never duplicate entries. Uses INSERT OR
// IGNORE so concurrent startups cannot race each other.
func Seed(ctx context.Context, db *sql.DB) error {
	for _, name := range defaultLocations {
		_, err := db.ExecContext(ctx,
			`INSERT OR IGNORE INTO storage_locations (name) VALUES (?)`, name,
		)
		if err != nil {
			return fmt.Errorf("seeding location %q: %w", name, err)
		}
	}

	for _, name := range defaultTags {
		_, err := db.ExecContext(ctx,
			`INSERT OR IGNORE INTO tags (name, is_default) VALUES (?, 1)`, name,
		)
		if err != nil {
			return fmt.Errorf("seeding tag %q: %w", name, err)
		}
	}

	return nil
}

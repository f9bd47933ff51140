package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/erazemk/shramba/internal/model"
)

// AddLocation adds a storage location to the catalog. Names collide
// case-sensitively on the exact name.
func AddLocation(ctx context.Context, db *sql.DB, name string) (*model.StorageLocation, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, model.Validationf("location name is required")
	}

	var one int
	err := db.QueryRowContext(ctx,
		`SELECT 1 FROM storage_locations WHERE name = ?`, name,
	).Scan(&one)
	if err == nil {
		return nil, fmt.Errorf("location %q: %w", name, model.ErrDuplicate)
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("checking location: %w", err)
	}

	result, err := db.ExecContext(ctx,
		`INSERT INTO storage_locations (name) VALUES (?)`, name,
	)
	if err != nil {
		return nil, fmt.Errorf("creating location: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting location id: %w", err)
	}

	loc := &model.StorageLocation{}
	err = db.QueryRowContext(ctx,
		`SELECT id, name, created_at FROM storage_locations WHERE id = ?`, id,
	).Scan(&loc.ID, &loc.Name, &loc.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("getting location: %w", err)
	}
	return loc, nil
}

// ListLocations returns the full location catalog.
func ListLocations(ctx context.Context, db *sql.DB) ([]model.StorageLocation, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, name, created_at FROM storage_locations ORDER BY name, created_at`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing locations: %w", err)
	}
	defer rows.Close()

	var locations []model.StorageLocation
	for rows.Next() {
		var loc model.StorageLocation
		if err := rows.Scan(&loc.ID, &loc.Name, &loc.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning location: %w", err)
		}
		locations = append(locations, loc)
	}
	return locations, rows.Err()
}

// locationExistsTx rejects references to unknown storage locations.
func locationExistsTx(ctx context.Context, tx *sql.Tx, id int64) error {
	var one int
	err := tx.QueryRowContext(ctx,
		`SELECT 1 FROM storage_locations WHERE id = ?`, id,
	).Scan(&one)
	if err == sql.ErrNoRows {
		return model.Validationf("unknown storage location id %d", id)
	}
	if err != nil {
		return fmt.Errorf("checking location: %w", err)
	}
	return nil
}

// AddTag adds a tag to the catalog. Names collide case-sensitively on the
// exact name.
func AddTag(ctx context.Context, db *sql.DB, name string) (*model.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, model.Validationf("tag name is required")
	}

	var one int
	err := db.QueryRowContext(ctx,
		`SELECT 1 FROM tags WHERE name = ?`, name,
	).Scan(&one)
	if err == nil {
		return nil, fmt.Errorf("tag %q: %w", name, model.ErrDuplicate)
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("checking tag: %w", err)
	}

	result, err := db.ExecContext(ctx,
		`INSERT INTO tags (name) VALUES (?)`, name,
	)
	if err != nil {
		return nil, fmt.Errorf("creating tag: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting tag id: %w", err)
	}

	tag := &model.Tag{}
	err = db.QueryRowContext(ctx,
		`SELECT id, name, is_default, created_at FROM tags WHERE id = ?`, id,
	).Scan(&tag.ID, &tag.Name, &tag.IsDefault, &tag.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("getting tag: %w", err)
	}
	return tag, nil
}

// ListTags returns the full tag catalog.
func ListTags(ctx context.Context, db *sql.DB) ([]model.Tag, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, name, is_default, created_at FROM tags ORDER BY name, created_at`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	defer rows.Close()

	var tags []model.Tag
	for rows.Next() {
		var tag model.Tag
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.IsDefault, &tag.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning tag: %w", err)
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

// TagItem attaches a tag to an item. Tags are attached to the item
// itself, not versioned per revision. Tagging twice is a no-op.
func TagItem(ctx context.Context, db *sql.DB, publicID, tagName string) error {
	itemID, err := itemIDByPublicID(ctx, db, publicID)
	if err != nil {
		return err
	}

	tagID, err := tagIDByName(ctx, db, tagName)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx,
		`INSERT OR IGNORE INTO item_tags (item_id, tag_id) VALUES (?, ?)`,
		itemID, tagID,
	)
	if err != nil {
		return fmt.Errorf("tagging item: %w", err)
	}
	return nil
}

// UntagItem detaches a tag from an item.
func UntagItem(ctx context.Context, db *sql.DB, publicID, tagName string) error {
	itemID, err := itemIDByPublicID(ctx, db, publicID)
	if err != nil {
		return err
	}

	tagID, err := tagIDByName(ctx, db, tagName)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx,
		`DELETE FROM item_tags WHERE item_id = ? AND tag_id = ?`,
		itemID, tagID,
	)
	if err != nil {
		return fmt.Errorf("untagging item: %w", err)
	}
	return nil
}

// ItemTags returns the tags attached to an item.
func ItemTags(ctx context.Context, db *sql.DB, publicID string) ([]model.Tag, error) {
	itemID, err := itemIDByPublicID(ctx, db, publicID)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx,
		`SELECT t.id, t.name, t.is_default, t.created_at
		 FROM tags t
		 JOIN item_tags it ON it.tag_id = t.id
		 WHERE it.item_id = ?
		 ORDER BY t.name`, itemID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing item tags: %w", err)
	}
	defer rows.Close()

	var tags []model.Tag
	for rows.Next() {
		var tag model.Tag
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.IsDefault, &tag.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning tag: %w", err)
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

func tagIDByName(ctx context.Context, db *sql.DB, name string) (int64, error) {
	var id int64
	err := db.QueryRowContext(ctx,
		`SELECT id FROM tags WHERE name = ?`, strings.TrimSpace(name),
	).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, model.Validationf("unknown tag: %s", name)
	}
	if err != nil {
		return 0, fmt.Errorf("getting tag: %w", err)
	}
	return id, nil
}

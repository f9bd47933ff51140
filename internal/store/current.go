package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erazemk/shramba/internal/model"
)

// GetCurrentState returns an item's visible current state: its latest
// revision with links attached. Raw revision rows are never handed out
// any other way.
func GetCurrentState(ctx context.Context, db *sql.DB, publicID string) (*model.Revision, error) {
	itemID, err := itemIDByPublicID(ctx, db, publicID)
	if err != nil {
		return nil, err
	}
	return Latest(ctx, db, itemID)
}

// ListCurrentStates returns the latest revision of every item matching
// the filter, ordered by expiration date. Deleted items are excluded
// unless the filter asks for them.
func ListCurrentStates(ctx context.Context, db *sql.DB, filter model.Filter) ([]model.Revision, error) {
	query := `SELECT ` + revisionColumns + `
	          FROM item_revisions r
	          JOIN items i ON i.id = r.item_id
	          JOIN storage_locations l ON l.id = r.storage_location_id
	          JOIN (SELECT item_id, MAX(revision_num) AS max_rev
	                FROM item_revisions GROUP BY item_id) m
	            ON m.item_id = r.item_id AND m.max_rev = r.revision_num
	          WHERE 1=1`
	var args []any

	if !filter.IncludeDeleted {
		query += ` AND r.is_deleted = 0`
	}
	if filter.Query != "" {
		query += ` AND r.name LIKE '%' || ? || '%'`
		args = append(args, filter.Query)
	}
	if filter.LocationID > 0 {
		query += ` AND r.storage_location_id = ?`
		args = append(args, filter.LocationID)
	}

	query += ` ORDER BY r.expiration_date, r.name`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing current states: %w", err)
	}
	defer rows.Close()

	return scanRevisions(rows)
}

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erazemk/shramba/internal/model"
)

// revisionColumns are the columns selected for every revision scan, joined
// with the location name.
const revisionColumns = `r.id, r.item_id, i.public_id, r.revision_num, r.name,
	        r.date_prepared, r.expiration_date, r.storage_location_id, l.name,
	        r.photo_ref, r.notes, r.amount, r.amount_unit, r.is_deleted, r.created_at`

// insertRevision appends a new revision row for an item inside a
// transaction. Existing rows are never touched.
func insertRevision(ctx context.Context, tx *sql.Tx, itemID int64, num int, snap model.Snapshot) (int64, error) {
	var exp, photo, notes, unit sql.NullString
	if snap.ExpirationDate != "" {
		exp = sql.NullString{String: snap.ExpirationDate, Valid: true}
	}
	if snap.PhotoRef != "" {
		photo = sql.NullString{String: snap.PhotoRef, Valid: true}
	}
	if snap.Notes != "" {
		notes = sql.NullString{String: snap.Notes, Valid: true}
	}
	if snap.AmountUnit != "" {
		unit = sql.NullString{String: snap.AmountUnit, Valid: true}
	}

	result, err := tx.ExecContext(ctx,
		`INSERT INTO item_revisions
		 (item_id, revision_num, name, date_prepared, expiration_date,
		  storage_location_id, photo_ref, notes, amount, amount_unit, is_deleted)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		itemID, num, snap.Name, snap.DatePrepared, exp,
		snap.LocationID, photo, notes, snap.Amount, unit, snap.Deleted,
	)
	if err != nil {
		return 0, fmt.Errorf("appending revision: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting revision id: %w", err)
	}
	return id, nil
}

// latestTx returns an item's latest revision by revision number, within a
// transaction. An item with no revisions is a consistency violation and
// reported as ErrNotFound.
func latestTx(ctx context.Context, tx *sql.Tx, itemID int64) (*model.Revision, error) {
	row := tx.QueryRowContext(ctx,
		`SELECT `+revisionColumns+`
		 FROM item_revisions r
		 JOIN items i ON i.id = r.item_id
		 JOIN storage_locations l ON l.id = r.storage_location_id
		 WHERE r.item_id = ?
		 ORDER BY r.revision_num DESC LIMIT 1`, itemID,
	)
	rev, err := scanRevision(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("item %d has no revisions: %w", itemID, model.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting latest revision: %w", err)
	}
	return rev, nil
}

// latestActiveTx returns the item's most recent non-deleted revision, or
// nil if every revision is a delete tombstone.
func latestActiveTx(ctx context.Context, tx *sql.Tx, itemID int64) (*model.Revision, error) {
	row := tx.QueryRowContext(ctx,
		`SELECT `+revisionColumns+`
		 FROM item_revisions r
		 JOIN items i ON i.id = r.item_id
		 JOIN storage_locations l ON l.id = r.storage_location_id
		 WHERE r.item_id = ? AND r.is_deleted = 0
		 ORDER BY r.revision_num DESC LIMIT 1`, itemID,
	)
	rev, err := scanRevision(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting latest active revision: %w", err)
	}
	return rev, nil
}

// Latest returns an item's latest revision, with links attached.
func Latest(ctx context.Context, db *sql.DB, itemID int64) (*model.Revision, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+revisionColumns+`
		 FROM item_revisions r
		 JOIN items i ON i.id = r.item_id
		 JOIN storage_locations l ON l.id = r.storage_location_id
		 WHERE r.item_id = ?
		 ORDER BY r.revision_num DESC LIMIT 1`, itemID,
	)
	rev, err := scanRevision(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("item %d has no revisions: %w", itemID, model.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting latest revision: %w", err)
	}

	links, err := linksForRevision(ctx, db, rev.ID)
	if err != nil {
		return nil, err
	}
	rev.Links = links
	return rev, nil
}

// History returns all revisions of an item, oldest first, with links.
func History(ctx context.Context, db *sql.DB, publicID string) ([]model.Revision, error) {
	itemID, err := itemIDByPublicID(ctx, db, publicID)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx,
		`SELECT `+revisionColumns+`
		 FROM item_revisions r
		 JOIN items i ON i.id = r.item_id
		 JOIN storage_locations l ON l.id = r.storage_location_id
		 WHERE r.item_id = ?
		 ORDER BY r.revision_num`, itemID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing revisions: %w", err)
	}
	defer rows.Close()

	revisions, err := scanRevisions(rows)
	if err != nil {
		return nil, err
	}

	for i := range revisions {
		links, err := linksForRevision(ctx, db, revisions[i].ID)
		if err != nil {
			return nil, err
		}
		revisions[i].Links = links
	}
	return revisions, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRevision(row rowScanner) (*model.Revision, error) {
	rev := &model.Revision{}
	var exp, photo, notes, unit sql.NullString
	var amount sql.NullFloat64
	err := row.Scan(&rev.ID, &rev.ItemID, &rev.PublicID, &rev.RevisionNum, &rev.Name,
		&rev.DatePrepared, &exp, &rev.LocationID, &rev.LocationName,
		&photo, &notes, &amount, &unit, &rev.Deleted, &rev.CreatedAt)
	if err != nil {
		return nil, err
	}
	rev.ExpirationDate = exp.String
	rev.PhotoRef = photo.String
	rev.Notes = notes.String
	rev.AmountUnit = unit.String
	if amount.Valid {
		rev.Amount = &amount.Float64
	}
	return rev, nil
}

func scanRevisions(rows *sql.Rows) ([]model.Revision, error) {
	var revisions []model.Revision
	for rows.Next() {
		rev, err := scanRevision(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning revision: %w", err)
		}
		revisions = append(revisions, *rev)
	}
	return revisions, rows.Err()
}

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/erazemk/shramba/internal/ident"
	"github.com/erazemk/shramba/internal/model"
)

// defaultShelfLife is added to the prepared date when no expiration date
// is supplied.
const defaultShelfLife = 7 // days

// CreateItem creates a new item with its first revision. Identity
// assignment, the revision and its links are written in one transaction.
func CreateItem(ctx context.Context, db *sql.DB, snap model.Snapshot) (*model.Item, error) {
	snap.Deleted = false
	if err := normalizeSnapshot(&snap); err != nil {
		return nil, err
	}
	if err := validateLinks(snap.Links); err != nil {
		return nil, err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := locationExistsTx(ctx, tx, snap.LocationID); err != nil {
		return nil, err
	}

	publicID, err := ident.NewUnique(func(id string) (bool, error) {
		var one int
		err := tx.QueryRowContext(ctx,
			`SELECT 1 FROM items WHERE public_id = ?`, id,
		).Scan(&one)
		if err == sql.ErrNoRows {
			return false, nil
		}
		return err == nil, err
	})
	if err != nil {
		return nil, err
	}

	result, err := tx.ExecContext(ctx,
		`INSERT INTO items (public_id) VALUES (?)`, publicID,
	)
	if err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}
	itemID, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting item id: %w", err)
	}

	revID, err := insertRevision(ctx, tx, itemID, 1, snap)
	if err != nil {
		return nil, err
	}
	if err := insertLinks(ctx, tx, revID, snap.Links); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing item creation: %w", err)
	}

	return GetItem(ctx, db, publicID)
}

// EditItem appends a new revision with the supplied fields merged over the
// item's latest revision. Fields the caller leaves nil are carried forward
// unchanged. Editing a deleted item is rejected; it must be restored first.
func EditItem(ctx context.Context, db *sql.DB, publicID string, upd model.ItemUpdate) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	itemID, err := itemIDTx(ctx, tx, publicID)
	if err != nil {
		return err
	}

	prev, err := latestTx(ctx, tx, itemID)
	if err != nil {
		return err
	}
	if prev.Deleted {
		return fmt.Errorf("editing deleted item %s: %w", publicID, model.ErrInvalidState)
	}

	snap := snapshotOf(prev)
	applyUpdate(&snap, upd)
	if !upd.ReplaceLinks {
		links, err := linksForRevisionTx(ctx, tx, prev.ID)
		if err != nil {
			return err
		}
		snap.Links = links
	}

	// Validation runs on the merged field set, not just the supplied ones.
	if err := normalizeSnapshot(&snap); err != nil {
		return err
	}
	if err := validateLinks(snap.Links); err != nil {
		return err
	}
	if err := locationExistsTx(ctx, tx, snap.LocationID); err != nil {
		return err
	}

	revID, err := insertRevision(ctx, tx, itemID, prev.RevisionNum+1, snap)
	if err != nil {
		return err
	}
	if err := insertLinks(ctx, tx, revID, snap.Links); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing edit: %w", err)
	}
	return nil
}

// DeleteItem soft-deletes an item by appending a tombstone revision that
// carries the descriptive fields forward with the deleted flag set. No
// row is ever removed; the item stays restorable indefinitely.
func DeleteItem(ctx context.Context, db *sql.DB, publicID string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	itemID, err := itemIDTx(ctx, tx, publicID)
	if err != nil {
		return err
	}

	prev, err := latestTx(ctx, tx, itemID)
	if err != nil {
		return err
	}
	if prev.Deleted {
		return fmt.Errorf("item %s is already deleted: %w", publicID, model.ErrInvalidState)
	}

	snap := snapshotOf(prev)
	snap.Deleted = true
	snap.Links = nil // tombstones carry no links

	if _, err := insertRevision(ctx, tx, itemID, prev.RevisionNum+1, snap); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing delete: %w", err)
	}
	return nil
}

// RestoreItem brings a deleted item back by appending a revision copied
// from its most recent active revision (links included). Restore is only
// ever explicit; reads never restore as a side effect.
func RestoreItem(ctx context.Context, db *sql.DB, publicID string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	itemID, err := itemIDTx(ctx, tx, publicID)
	if err != nil {
		return err
	}

	prev, err := latestTx(ctx, tx, itemID)
	if err != nil {
		return err
	}
	if !prev.Deleted {
		return fmt.Errorf("item %s is not deleted: %w", publicID, model.ErrInvalidState)
	}

	source, err := latestActiveTx(ctx, tx, itemID)
	if err != nil {
		return err
	}
	if source == nil {
		source = prev
	}

	snap := snapshotOf(source)
	snap.Deleted = false
	links, err := linksForRevisionTx(ctx, tx, source.ID)
	if err != nil {
		return err
	}

	revID, err := insertRevision(ctx, tx, itemID, prev.RevisionNum+1, snap)
	if err != nil {
		return err
	}
	if err := insertLinks(ctx, tx, revID, links); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing restore: %w", err)
	}
	return nil
}

// GetItem returns an item by public id.
func GetItem(ctx context.Context, db *sql.DB, publicID string) (*model.Item, error) {
	item := &model.Item{}
	err := db.QueryRowContext(ctx,
		`SELECT id, public_id, created_at FROM items WHERE public_id = ?`, publicID,
	).Scan(&item.ID, &item.PublicID, &item.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("item %s: %w", publicID, model.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	return item, nil
}

func itemIDByPublicID(ctx context.Context, db *sql.DB, publicID string) (int64, error) {
	var id int64
	err := db.QueryRowContext(ctx,
		`SELECT id FROM items WHERE public_id = ?`, publicID,
	).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("item %s: %w", publicID, model.ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("getting item: %w", err)
	}
	return id, nil
}

func itemIDTx(ctx context.Context, tx *sql.Tx, publicID string) (int64, error) {
	var id int64
	err := tx.QueryRowContext(ctx,
		`SELECT id FROM items WHERE public_id = ?`, publicID,
	).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("item %s: %w", publicID, model.ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("getting item: %w", err)
	}
	return id, nil
}

// snapshotOf copies a revision's descriptive fields into a snapshot for
// the next append.
func snapshotOf(rev *model.Revision) model.Snapshot {
	return model.Snapshot{
		Name:           rev.Name,
		DatePrepared:   rev.DatePrepared,
		ExpirationDate: rev.ExpirationDate,
		LocationID:     rev.LocationID,
		PhotoRef:       rev.PhotoRef,
		Notes:          rev.Notes,
		Amount:         rev.Amount,
		AmountUnit:     rev.AmountUnit,
		Deleted:        rev.Deleted,
	}
}

// applyUpdate merges supplied fields over a carried-forward snapshot.
func applyUpdate(snap *model.Snapshot, upd model.ItemUpdate) {
	if upd.Name != nil {
		snap.Name = *upd.Name
	}
	if upd.DatePrepared != nil {
		snap.DatePrepared = *upd.DatePrepared
	}
	if upd.ExpirationDate != nil {
		snap.ExpirationDate = *upd.ExpirationDate
	}
	if upd.LocationID != nil {
		snap.LocationID = *upd.LocationID
	}
	if upd.PhotoRef != nil {
		snap.PhotoRef = *upd.PhotoRef
	}
	if upd.Notes != nil {
		snap.Notes = *upd.Notes
	}
	if upd.Amount != nil {
		snap.Amount = upd.Amount
	}
	if upd.AmountUnit != nil {
		snap.AmountUnit = *upd.AmountUnit
	}
	if upd.ReplaceLinks {
		snap.Links = upd.Links
	}
}

// normalizeSnapshot trims and validates the merged snapshot, filling the
// default expiration date (prepared + 7 days) when none is given.
func normalizeSnapshot(snap *model.Snapshot) error {
	var problems []string

	snap.Name = strings.TrimSpace(snap.Name)
	if snap.Name == "" {
		problems = append(problems, "name is required")
	}

	prepared, err := time.Parse(model.DateLayout, snap.DatePrepared)
	if err != nil {
		problems = append(problems, fmt.Sprintf("invalid date prepared: %s", snap.DatePrepared))
	}

	if snap.ExpirationDate == "" && err == nil {
		snap.ExpirationDate = prepared.AddDate(0, 0, defaultShelfLife).Format(model.DateLayout)
	}
	if snap.ExpirationDate != "" {
		if _, expErr := time.Parse(model.DateLayout, snap.ExpirationDate); expErr != nil {
			problems = append(problems, fmt.Sprintf("invalid expiration date: %s", snap.ExpirationDate))
		} else if err == nil && snap.ExpirationDate < snap.DatePrepared {
			// ISO dates compare lexicographically.
			problems = append(problems, "expiration date must be on or after date prepared")
		}
	}

	if len(problems) > 0 {
		return &model.ValidationError{Problems: problems}
	}
	return nil
}

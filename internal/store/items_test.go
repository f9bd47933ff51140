package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/erazemk/shramba/internal/db"
	"github.com/erazemk/shramba/internal/model"
)

// testDB returns a fresh in-memory database with seeded catalogs
// (Pantry gets location id 1).
func testDB(t *testing.T) *sql.DB {
	t.Helper()
	database := db.NewTestDB(t)
	if err := Seed(context.Background(), database); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	return database
}

func testSnapshot(name string) model.Snapshot {
	return model.Snapshot{
		Name:           name,
		DatePrepared:   "2024-01-01",
		ExpirationDate: "2024-01-08",
		LocationID:     1,
	}
}

func TestCreateItemRoundTrip(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()

	item, err := CreateItem(ctx, database, testSnapshot("Chili"))
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if len(item.PublicID) != 12 {
		t.Errorf("expected 12-char public id, got %q", item.PublicID)
	}

	rev, err := GetCurrentState(ctx, database, item.PublicID)
	if err != nil {
		t.Fatalf("GetCurrentState: %v", err)
	}
	if rev.Name != "Chili" {
		t.Errorf("expected name 'Chili', got %q", rev.Name)
	}
	if rev.DatePrepared != "2024-01-01" {
		t.Errorf("expected prepared 2024-01-01, got %q", rev.DatePrepared)
	}
	if rev.ExpirationDate != "2024-01-08" {
		t.Errorf("expected expiration 2024-01-08, got %q", rev.ExpirationDate)
	}
	if rev.LocationName != "Pantry" {
		t.Errorf("expected location Pantry, got %q", rev.LocationName)
	}
	if rev.Deleted {
		t.Error("new item must not be deleted")
	}
	if rev.RevisionNum != 1 {
		t.Errorf("expected revision 1, got %d", rev.RevisionNum)
	}
}

func TestCreateItemDefaultExpiration(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()

	snap := testSnapshot("Soup")
	snap.ExpirationDate = ""
	item, err := CreateItem(ctx, database, snap)
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}

	rev, err := GetCurrentState(ctx, database, item.PublicID)
	if err != nil {
		t.Fatalf("GetCurrentState: %v", err)
	}
	if rev.ExpirationDate != "2024-01-08" {
		t.Errorf("expected default expiration 2024-01-08, got %q", rev.ExpirationDate)
	}
}

func TestCreateItemValidation(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()

	// Expiration before prepared.
	snap := model.Snapshot{
		Name:           "Backwards",
		DatePrepared:   "2024-01-10",
		ExpirationDate: "2024-01-01",
		LocationID:     1,
	}
	_, err := CreateItem(ctx, database, snap)
	var verr *model.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	// Missing name.
	snap = testSnapshot("  ")
	if _, err := CreateItem(ctx, database, snap); !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError for empty name, got %v", err)
	}

	// Unknown location.
	snap = testSnapshot("Lost")
	snap.LocationID = 999
	if _, err := CreateItem(ctx, database, snap); !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError for unknown location, got %v", err)
	}

	// Nothing was persisted by the rejected operations.
	var count int
	if err := database.QueryRow(`SELECT COUNT(*) FROM items`).Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("expected no items after failed creates, got %d", count)
	}
}

func TestCreateItemBadLinkIsAllOrNothing(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()

	snap := testSnapshot("Linked")
	snap.Links = []model.Link{
		{URL: "https://example.com/recipe", Label: "Recipe"},
		{URL: "not a url"},
	}
	_, err := CreateItem(ctx, database, snap)
	var verr *model.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	var count int
	if err := database.QueryRow(`SELECT COUNT(*) FROM revision_links`).Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("expected no links persisted, got %d", count)
	}
}

func TestEditCarriesFieldsForward(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()

	snap := testSnapshot("Chili")
	snap.PhotoRef = "photos/abc123.jpg"
	snap.Notes = "extra spicy"
	snap.Links = []model.Link{{URL: "https://example.com/chili", Label: "Recipe"}}
	item, err := CreateItem(ctx, database, snap)
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}

	name := "Chili v2"
	if err := EditItem(ctx, database, item.PublicID, model.ItemUpdate{Name: &name}); err != nil {
		t.Fatalf("EditItem: %v", err)
	}

	rev, err := GetCurrentState(ctx, database, item.PublicID)
	if err != nil {
		t.Fatalf("GetCurrentState: %v", err)
	}
	if rev.Name != "Chili v2" {
		t.Errorf("expected updated name, got %q", rev.Name)
	}
	if rev.PhotoRef != "photos/abc123.jpg" {
		t.Errorf("photo not carried forward, got %q", rev.PhotoRef)
	}
	if rev.Notes != "extra spicy" {
		t.Errorf("notes not carried forward, got %q", rev.Notes)
	}
	if len(rev.Links) != 1 || rev.Links[0].URL != "https://example.com/chili" {
		t.Errorf("links not carried forward, got %v", rev.Links)
	}
	if rev.RevisionNum != 2 {
		t.Errorf("expected revision 2, got %d", rev.RevisionNum)
	}
}

func TestEditValidatesMergedFields(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()

	item, err := CreateItem(ctx, database, testSnapshot("Stew"))
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}

	// Moving prepared past the carried-forward expiration must fail even
	// though the expiration itself was not supplied.
	prepared := "2024-02-01"
	err = EditItem(ctx, database, item.PublicID, model.ItemUpdate{DatePrepared: &prepared})
	var verr *model.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestEditReplacesLinkSet(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()

	snap := testSnapshot("Pasta")
	snap.Links = []model.Link{{URL: "https://example.com/old"}}
	item, err := CreateItem(ctx, database, snap)
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}

	err = EditItem(ctx, database, item.PublicID, model.ItemUpdate{
		ReplaceLinks: true,
		Links:        []model.Link{{URL: "https://example.com/new", Label: "New"}},
	})
	if err != nil {
		t.Fatalf("EditItem: %v", err)
	}

	rev, err := GetCurrentState(ctx, database, item.PublicID)
	if err != nil {
		t.Fatalf("GetCurrentState: %v", err)
	}
	if len(rev.Links) != 1 || rev.Links[0].URL != "https://example.com/new" {
		t.Errorf("expected replaced link set, got %v", rev.Links)
	}

	// The old revision still has its original links.
	history, err := History(ctx, database, item.PublicID)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history[0].Links) != 1 || history[0].Links[0].URL != "https://example.com/old" {
		t.Errorf("expected first revision to keep old link, got %v", history[0].Links)
	}
}

func TestDeleteThenEditRejected(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()

	item, err := CreateItem(ctx, database, testSnapshot("Curry"))
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}

	if err := DeleteItem(ctx, database, item.PublicID); err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}

	name := "Curry v2"
	err = EditItem(ctx, database, item.PublicID, model.ItemUpdate{Name: &name})
	if !errors.Is(err, model.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}

	// After restore the same edit succeeds.
	if err := RestoreItem(ctx, database, item.PublicID); err != nil {
		t.Fatalf("RestoreItem: %v", err)
	}
	if err := EditItem(ctx, database, item.PublicID, model.ItemUpdate{Name: &name}); err != nil {
		t.Fatalf("EditItem after restore: %v", err)
	}

	rev, err := GetCurrentState(ctx, database, item.PublicID)
	if err != nil {
		t.Fatalf("GetCurrentState: %v", err)
	}
	if rev.Name != "Curry v2" || rev.Deleted {
		t.Errorf("unexpected state after restore+edit: %+v", rev)
	}
}

func TestDeleteIsSoft(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()

	item, err := CreateItem(ctx, database, testSnapshot("Leftovers"))
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}

	if err := DeleteItem(ctx, database, item.PublicID); err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}

	rev, err := GetCurrentState(ctx, database, item.PublicID)
	if err != nil {
		t.Fatalf("GetCurrentState: %v", err)
	}
	if !rev.Deleted {
		t.Error("expected deleted current state")
	}
	if rev.Name != "Leftovers" {
		t.Errorf("tombstone must carry fields forward, got %q", rev.Name)
	}

	// Double delete is rejected.
	if err := DeleteItem(ctx, database, item.PublicID); !errors.Is(err, model.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState on double delete, got %v", err)
	}
}

func TestRestoreCopiesFromLatestActive(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()

	snap := testSnapshot("Dumplings")
	snap.Links = []model.Link{{URL: "https://example.com/dumplings"}}
	item, err := CreateItem(ctx, database, snap)
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}

	if err := DeleteItem(ctx, database, item.PublicID); err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}
	if err := RestoreItem(ctx, database, item.PublicID); err != nil {
		t.Fatalf("RestoreItem: %v", err)
	}

	rev, err := GetCurrentState(ctx, database, item.PublicID)
	if err != nil {
		t.Fatalf("GetCurrentState: %v", err)
	}
	if rev.Deleted {
		t.Error("expected active state after restore")
	}
	// Links come back from the pre-delete revision even though the
	// tombstone had none.
	if len(rev.Links) != 1 || rev.Links[0].URL != "https://example.com/dumplings" {
		t.Errorf("expected restored links, got %v", rev.Links)
	}

	// Restore of an active item is rejected.
	if err := RestoreItem(ctx, database, item.PublicID); !errors.Is(err, model.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState on double restore, got %v", err)
	}
}

func TestUnknownItemNotFound(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()

	if _, err := GetCurrentState(ctx, database, "nope12345678"); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	name := "x"
	if err := EditItem(ctx, database, "nope12345678", model.ItemUpdate{Name: &name}); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := DeleteItem(ctx, database, "nope12345678"); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

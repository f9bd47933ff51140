package store

import (
	"context"
	"testing"

	"github.com/erazemk/shramba/internal/model"
)

func TestListExcludesDeletedByDefault(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()

	kept, err := CreateItem(ctx, database, testSnapshot("Kept"))
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	gone, err := CreateItem(ctx, database, testSnapshot("Gone"))
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if err := DeleteItem(ctx, database, gone.PublicID); err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}

	visible, err := ListCurrentStates(ctx, database, model.Filter{})
	if err != nil {
		t.Fatalf("ListCurrentStates: %v", err)
	}
	if len(visible) != 1 || visible[0].PublicID != kept.PublicID {
		t.Fatalf("expected only %s visible, got %v", kept.PublicID, visible)
	}

	all, err := ListCurrentStates(ctx, database, model.Filter{IncludeDeleted: true})
	if err != nil {
		t.Fatalf("ListCurrentStates: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 items with deleted included, got %d", len(all))
	}
	for _, rev := range all {
		if rev.PublicID == gone.PublicID && !rev.Deleted {
			t.Error("deleted item listed without deleted flag")
		}
	}
}

func TestListSearchIsCaseInsensitive(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()

	if _, err := CreateItem(ctx, database, testSnapshot("Chicken Soup")); err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if _, err := CreateItem(ctx, database, testSnapshot("Beef Stew")); err != nil {
		t.Fatalf("CreateItem: %v", err)
	}

	matches, err := ListCurrentStates(ctx, database, model.Filter{Query: "chicken"})
	if err != nil {
		t.Fatalf("ListCurrentStates: %v", err)
	}
	if len(matches) != 1 || matches[0].Name != "Chicken Soup" {
		t.Fatalf("expected Chicken Soup, got %v", matches)
	}
}

func TestListFiltersByLocation(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()

	pantry := testSnapshot("In Pantry")
	if _, err := CreateItem(ctx, database, pantry); err != nil {
		t.Fatalf("CreateItem: %v", err)
	}

	frozen := testSnapshot("In Freezer")
	frozen.LocationID = 3
	if _, err := CreateItem(ctx, database, frozen); err != nil {
		t.Fatalf("CreateItem: %v", err)
	}

	matches, err := ListCurrentStates(ctx, database, model.Filter{LocationID: 3})
	if err != nil {
		t.Fatalf("ListCurrentStates: %v", err)
	}
	if len(matches) != 1 || matches[0].Name != "In Freezer" {
		t.Fatalf("expected only freezer item, got %v", matches)
	}
	if matches[0].LocationName != "Freezer" {
		t.Errorf("expected location name Freezer, got %q", matches[0].LocationName)
	}
}

func TestListShowsLatestRevisionOnly(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()

	item, err := CreateItem(ctx, database, testSnapshot("First Name"))
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	name := "Second Name"
	if err := EditItem(ctx, database, item.PublicID, model.ItemUpdate{Name: &name}); err != nil {
		t.Fatalf("EditItem: %v", err)
	}

	revisions, err := ListCurrentStates(ctx, database, model.Filter{})
	if err != nil {
		t.Fatalf("ListCurrentStates: %v", err)
	}
	if len(revisions) != 1 {
		t.Fatalf("expected one row per item, got %d", len(revisions))
	}
	if revisions[0].Name != "Second Name" {
		t.Errorf("expected latest revision, got %q", revisions[0].Name)
	}
}

func TestListOrdersByExpiration(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()

	later := testSnapshot("Later")
	later.ExpirationDate = "2024-03-01"
	if _, err := CreateItem(ctx, database, later); err != nil {
		t.Fatalf("CreateItem: %v", err)
	}

	sooner := testSnapshot("Sooner")
	sooner.ExpirationDate = "2024-01-05"
	if _, err := CreateItem(ctx, database, sooner); err != nil {
		t.Fatalf("CreateItem: %v", err)
	}

	revisions, err := ListCurrentStates(ctx, database, model.Filter{})
	if err != nil {
		t.Fatalf("ListCurrentStates: %v", err)
	}
	if len(revisions) != 2 || revisions[0].Name != "Sooner" {
		t.Fatalf("expected soonest expiration first, got %v", revisions)
	}
}

package model

import "time"

// Revision is one immutable snapshot of an item's descriptive state.
// Revisions are only ever appended; the latest one by RevisionNum is the
// item's current state.
type Revision struct {
	ID             int64     `json:"id"`
	ItemID         int64     `json:"item_id"`
	PublicID       string    `json:"public_id,omitempty"`
	RevisionNum    int       `json:"revision_num"`
	Name           string    `json:"name"`
	DatePrepared   string    `json:"date_prepared"`
	ExpirationDate string    `json:"expiration_date,omitempty"`
	LocationID     int64     `json:"storage_location_id"`
	LocationName   string    `json:"storage_location,omitempty"`
	PhotoRef       string    `json:"photo_ref,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	Amount         *float64  `json:"amount,omitempty"`
	AmountUnit     string    `json:"amount_unit,omitempty"`
	Deleted        bool      `json:"deleted"`
	CreatedAt      time.Time `json:"created_at"`
	Links          []Link    `json:"links,omitempty"`
}

// Link is a URL attached to one specific revision. Link sets are part of
// the snapshot, so history reconstructs exactly what links existed when.
type Link struct {
	ID         int64  `json:"id"`
	RevisionID int64  `json:"revision_id"`
	URL        string `json:"url"`
	Label      string `json:"label,omitempty"`
}

// Snapshot holds the descriptive fields of a revision to be appended.
type Snapshot struct {
	Name           string
	DatePrepared   string
	ExpirationDate string
	LocationID     int64
	PhotoRef       string
	Notes          string
	Amount         *float64
	AmountUnit     string
	Deleted        bool
	Links          []Link
}

// ItemUpdate is a partial edit. Nil fields are carried forward unchanged
// from the item's latest revision. Links are only replaced when
// ReplaceLinks is set, otherwise the previous revision's links are kept.
type ItemUpdate struct {
	Name           *string
	DatePrepared   *string
	ExpirationDate *string
	LocationID     *int64
	PhotoRef       *string
	Notes          *string
	Amount         *float64
	AmountUnit     *string
	Links          []Link
	ReplaceLinks   bool
}

// DateLayout is the wire format for the date-only fields
// (date_prepared, expiration_date).
const DateLayout = "2006-01-02"

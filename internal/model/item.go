package model

import "time"

// Item is the stable identity of a physical container. All descriptive
// state lives in its revisions; the item row only carries identity.
type Item struct {
	ID        int64     `json:"id"`
	PublicID  string    `json:"public_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Filter narrows a current-state listing.
type Filter struct {
	Query          string `json:"query,omitempty"`
	LocationID     int64  `json:"location_id,omitempty"`
	IncludeDeleted bool   `json:"include_deleted,omitempty"`
}

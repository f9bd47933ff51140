package model

import "time"

// StorageLocation is a catalog entry referenced by revisions.
// Locations are only ever added, never removed.
type StorageLocation struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Tag is a label attached to items (not to revisions).
type Tag struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	IsDefault bool      `json:"is_default"`
	CreatedAt time.Time `json:"created_at"`
}

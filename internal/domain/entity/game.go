package entity

import "time"

// Game is a locally cached snapshot of a RAWG catalog record. A row is
// created the first time any user adds the game and is never mutated
// afterwards; it is reclaimed when the last association referencing it
// is removed.
type Game struct {
	ID              int64
	RAWGID          int64
	Name            string
	BackgroundImage string
	Platforms       string // denormalized display string, e.g. "PC, PlayStation 4"
	Released        string
	CreatedAt       time.Time
}

// LibraryEntry is the merged, user-facing view of a Game joined with the
// per-user association fields.
type LibraryEntry struct {
	GameID          int64  `json:"id"`
	Name            string `json:"name"`
	RAWGID          int64  `json:"rawg_id"`
	BackgroundImage string `json:"background_image"`
	Platforms       string `json:"platforms"`
	Released        string `json:"released"`
	Comment         string `json:"comment"`
	Rating          *int32 `json:"rating"`
	Progress        string `json:"progress"`
	Status          string `json:"status"`
}

// EntryUpdate carries the association fields of an add-or-edit call.
// Nil fields are "not supplied" and keep their previous values.
type EntryUpdate struct {
	Comment  *string
	Rating   *int32
	Progress *string
	Status   *string
}

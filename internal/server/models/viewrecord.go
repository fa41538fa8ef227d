package models

import "time"

// ViewRecord marks that a visitor has already been counted for a subject
// user. Rows are append-only and unique on (UserID, Visitor); existence is
// the only fact ever read.
type ViewRecord struct {
	UserID    int64     `json:"userId"`
	Visitor   string    `json:"visitor"`
	CreatedAt time.Time `json:"createdAt"`
}

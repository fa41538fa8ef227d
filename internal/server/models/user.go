// Package models holds the plain data structures persisted by the server.
package models

import "time"

// Account roles. Anything above RoleUser may manage other accounts.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
	RoleOwner = "owner"
)

// User is the account record. Views is monotonic non-decreasing and is
// mutated only by the view attribution ledger.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Role      string    `json:"role"`
	Views     int64     `json:"views"`
	Badges    []string  `json:"badges"`
	MaxLinks  int       `json:"maxLinks"`
	CreatedAt time.Time `json:"createdAt"`
}

// Package views contains the repository for the append-only view attribution
// ledger. The primary key on (user_id, visitor) is the sole concurrency
// mechanism: the first writer wins, everyone else becomes a no-op.
package views

import "context"

type Repository interface {
	// Insert records that visitor has viewed the subject user's page.
	// inserted is false when a record for the pair already exists.
	Insert(ctx context.Context, userID int64, visitor string) (inserted bool, err error)
}

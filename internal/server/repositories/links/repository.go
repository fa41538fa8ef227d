// Package links contains the repository for outbound link rows.
package links

import (
	"context"

	"github.com/dmitrijs2005/linkhub/internal/server/models"
)

// Position carries a new ordering slot for a link during reorder.
type Position struct {
	ID       int64 `json:"id"`
	Position int   `json:"position"`
}

type Repository interface {
	// ListByUser returns the user's links ordered by position ascending with
	// ties broken by id ascending. With onlyEnabled, disabled links are
	// filtered out.
	ListByUser(ctx context.Context, userID int64, onlyEnabled bool) ([]*models.Link, error)

	Create(ctx context.Context, link *models.Link) (*models.Link, error)
	Delete(ctx context.Context, userID, id int64) error
	CountByUser(ctx context.Context, userID int64) (int, error)
	SetPosition(ctx context.Context, userID, id int64, position int) error
}

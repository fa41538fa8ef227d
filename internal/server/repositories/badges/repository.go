// Package badges contains the read side of the badge catalogue.
// Administrative badge management lives outside this service.
package badges

import (
	"context"

	"github.com/dmitrijs2005/linkhub/internal/server/models"
)

type Repository interface {
	List(ctx context.Context) ([]*models.Badge, error)
}

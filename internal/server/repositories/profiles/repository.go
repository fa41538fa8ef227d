// Package profiles contains the repository for profile rows. Every user owns
// exactly one profile, enforced by a unique constraint on user_id.
package profiles

import (
	"context"

	"github.com/dmitrijs2005/linkhub/internal/server/models"
)

type Repository interface {
	GetByUserID(ctx context.Context, userID int64) (*models.Profile, error)

	// CreateDefault inserts an all-default profile row for the user. When a
	// concurrent writer has already created the row, the insert is a no-op
	// and created is false; callers re-read instead of treating it as an
	// error.
	CreateDefault(ctx context.Context, userID int64) (created bool, err error)

	Update(ctx context.Context, profile *models.Profile) (*models.Profile, error)
}

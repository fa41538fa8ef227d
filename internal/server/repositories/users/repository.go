// Package users contains the repository for user account rows.
package users

import (
	"context"

	"github.com/dmitrijs2005/linkhub/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)

	// UpdateAccess overwrites the administrative fields of an account: its
	// role, badge set, and link cap.
	UpdateAccess(ctx context.Context, id int64, role string, badges []string, maxLinks int) (*models.User, error)

	// IncrementViews bumps the view counter by one and returns the new value.
	// Only the view attribution ledger may call this.
	IncrementViews(ctx context.Context, id int64) (int64, error)
}

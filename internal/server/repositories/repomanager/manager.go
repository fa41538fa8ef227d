package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/linkhub/internal/dbx"
	"github.com/dmitrijs2005/linkhub/internal/server/repositories/badges"
	"github.com/dmitrijs2005/linkhub/internal/server/repositories/links"
	"github.com/dmitrijs2005/linkhub/internal/server/repositories/profiles"
	"github.com/dmitrijs2005/linkhub/internal/server/repositories/users"
	"github.com/dmitrijs2005/linkhub/internal/server/repositories/views"
)

// RepositoryManager vends repository instances bound to an arbitrary DBTX,
// which lets services run several repositories inside one transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Profiles(db dbx.DBTX) profiles.Repository
	Links(db dbx.DBTX) links.Repository
	Views(db dbx.DBTX) views.Repository
	Badges(db dbx.DBTX) badges.Repository
}

package repomanager

import (
	"context"
	"database/sql"

	"github.com/knothost/siteapi/internal/dbx"
	"github.com/knothost/siteapi/internal/server/repositories/messages"
	"github.com/knothost/siteapi/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Messages(db dbx.DBTX) messages.Repository
}

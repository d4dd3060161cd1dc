// Package repomanager vends the repositories the services depend on, backed
// either by PostgreSQL or by process memory.
package repomanager

import (
	"context"

	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/tasks"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	Accounts() accounts.Repository
	RefreshTokens() refreshtokens.Repository
	Tasks() tasks.Repository
	Close() error
}

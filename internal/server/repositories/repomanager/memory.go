package repomanager

import (
	"context"

	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/tasks"
)

// InMemoryRepositoryManager keeps everything in process memory. Data is lost
// on restart. The account store also serves the refresh-token set.
type InMemoryRepositoryManager struct {
	accounts *accounts.MemoryRepository
	tasks    *tasks.MemoryRepository
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{
		accounts: accounts.NewMemoryRepository(),
		tasks:    tasks.NewMemoryRepository(),
	}
}

func (m *InMemoryRepositoryManager) RunMigrations(ctx context.Context) error {
	return nil
}

func (m *InMemoryRepositoryManager) Accounts() accounts.Repository {
	return m.accounts
}

func (m *InMemoryRepositoryManager) RefreshTokens() refreshtokens.Repository {
	return m.accounts
}

func (m *InMemoryRepositoryManager) Tasks() tasks.Repository {
	return m.tasks
}

func (m *InMemoryRepositoryManager) Close() error {
	return nil
}

package accounts

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/google/uuid"
)

// MemoryRepository keeps accounts in process memory. It also implements
// refreshtokens.Repository over the same records. Returned accounts are
// copies.
type MemoryRepository struct {
	mu     sync.RWMutex
	byID   map[string]*models.Account
	byName map[string]string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:   make(map[string]*models.Account),
		byName: make(map[string]string),
	}
}

func (r *MemoryRepository) Create(ctx context.Context, account *models.Account) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byName[account.UserName]; ok {
		return nil, common.ErrorAlreadyExists
	}

	stored := &models.Account{
		ID:            uuid.NewString(),
		UserName:      account.UserName,
		PasswordHash:  slices.Clone(account.PasswordHash),
		RefreshTokens: []string{},
		CreatedAt:     time.Now().UTC(),
	}
	r.byID[stored.ID] = stored
	r.byName[stored.UserName] = stored.ID

	account.ID = stored.ID
	account.CreatedAt = stored.CreatedAt
	account.RefreshTokens = []string{}
	return account, nil
}

func (r *MemoryRepository) GetByUserName(ctx context.Context, userName string) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byName[userName]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return cloneAccount(r.byID[id]), nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return cloneAccount(a), nil
}

func (r *MemoryRepository) AppendRefreshToken(ctx context.Context, accountID string, tokenHash string) error {
	return r.mutate(accountID, func(a *models.Account) {
		a.RefreshTokens = append(a.RefreshTokens, tokenHash)
	})
}

func (r *MemoryRepository) RemoveRefreshToken(ctx context.Context, accountID string, tokenHash string) error {
	return r.mutate(accountID, func(a *models.Account) {
		a.RefreshTokens = slices.DeleteFunc(a.RefreshTokens, func(h string) bool { return h == tokenHash })
	})
}

func (r *MemoryRepository) ClearRefreshTokens(ctx context.Context, accountID string) error {
	return r.mutate(accountID, func(a *models.Account) {
		a.RefreshTokens = []string{}
	})
}

func (r *MemoryRepository) mutate(accountID string, fn func(a *models.Account)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[accountID]
	if !ok {
		return common.ErrorNotFound
	}
	fn(a)
	return nil
}

func cloneAccount(a *models.Account) *models.Account {
	c := *a
	c.PasswordHash = slices.Clone(a.PasswordHash)
	c.RefreshTokens = slices.Clone(a.RefreshTokens)
	if c.RefreshTokens == nil {
		c.RefreshTokens = []string{}
	}
	return &c
}

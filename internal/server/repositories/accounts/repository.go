// Package accounts declares the account repository contract and its
// PostgreSQL and in-memory implementations.
package accounts

import (
	"context"

	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

// Repository persists accounts. Lookups return common.ErrorNotFound when the
// account is absent, and Create returns common.ErrorAlreadyExists when the
// username is taken.
type Repository interface {
	Create(ctx context.Context, account *models.Account) (*models.Account, error)
	GetByUserName(ctx context.Context, userName string) (*models.Account, error)
	GetByID(ctx context.Context, id string) (*models.Account, error)
}

// Package services contains server-side business logic: the credential
// store, refresh-token sessions, the auth flows built on them and
// owner-scoped task management.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/auth"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/accounts"
	"github.com/google/uuid"
)

// Validation messages returned to clients.
const (
	MsgCredentialsRequired = "Username and password are required"
	MsgPasswordTooLong     = "Password must be at most 72 bytes"
)

// AccountService is the credential store. Every call goes to the
// repository; nothing is cached.
type AccountService struct {
	repo     accounts.Repository
	hashCost int
}

// NewAccountService constructs an AccountService hashing passwords with the
// given bcrypt cost.
func NewAccountService(repo accounts.Repository, hashCost int) *AccountService {
	return &AccountService{repo: repo, hashCost: hashCost}
}

// CreateAccount stores a new account and returns its id. Empty credentials
// or passwords longer than bcrypt accepts yield a *common.ValidationError; a
// taken username yields common.ErrorAlreadyExists.
func (s *AccountService) CreateAccount(ctx context.Context, userName string, password string) (string, error) {
	if userName == "" || password == "" {
		return "", common.NewValidationError(MsgCredentialsRequired)
	}
	if len(password) > auth.MaxPasswordLength {
		return "", common.NewValidationError(MsgPasswordTooLong)
	}

	hash, err := auth.HashPassword(password, s.hashCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	account, err := s.repo.Create(ctx, &models.Account{UserName: userName, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return "", common.ErrorAlreadyExists
		}
		return "", fmt.Errorf("error creating account: %w", err)
	}
	return account.ID, nil
}

func (s *AccountService) FindByUsername(ctx context.Context, userName string) (*models.Account, error) {
	return s.repo.GetByUserName(ctx, userName)
}

// FindByID resolves an account id. Ids that are not UUIDs cannot exist and
// are reported as common.ErrorNotFound without a storage round-trip.
func (s *AccountService) FindByID(ctx context.Context, id string) (*models.Account, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, common.ErrorNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// VerifyPassword compares password with the stored bcrypt hash in constant time.
func (s *AccountService) VerifyPassword(account *models.Account, password string) bool {
	return auth.CheckPassword(account.PasswordHash, password)
}

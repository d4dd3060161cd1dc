package services

import (
	"context"
	"slices"

	"github.com/dmitrijs2005/taskkeeper/internal/server/auth"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/refreshtokens"
)

// SessionService manages the set of live refresh tokens of an account.
// Tokens are stored as SHA-256 digests; storage mutations are atomic, and
// the in-hand account is kept in step so callers can keep using it.
type SessionService struct {
	repo refreshtokens.Repository
}

func NewSessionService(repo refreshtokens.Repository) *SessionService {
	return &SessionService{repo: repo}
}

func (s *SessionService) RecordRefreshToken(ctx context.Context, account *models.Account, token string) error {
	h := auth.HashToken(token)
	if err := s.repo.AppendRefreshToken(ctx, account.ID, h); err != nil {
		return err
	}
	account.RefreshTokens = append(account.RefreshTokens, h)
	return nil
}

// IsRefreshTokenValid reports whether token is in the account's set. It does
// not check the token's signature or expiry.
func (s *SessionService) IsRefreshTokenValid(account *models.Account, token string) bool {
	return auth.ContainsTokenHash(account.RefreshTokens, token)
}

// RevokeOne removes token from the set. Revoking an absent token is a no-op.
func (s *SessionService) RevokeOne(ctx context.Context, account *models.Account, token string) error {
	h := auth.HashToken(token)
	if err := s.repo.RemoveRefreshToken(ctx, account.ID, h); err != nil {
		return err
	}
	account.RefreshTokens = slices.DeleteFunc(account.RefreshTokens, func(v string) bool { return v == h })
	return nil
}

func (s *SessionService) RevokeAll(ctx context.Context, account *models.Account) error {
	if err := s.repo.ClearRefreshTokens(ctx, account.ID); err != nil {
		return err
	}
	account.RefreshTokens = []string{}
	return nil
}

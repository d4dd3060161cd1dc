package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/auth"
	"github.com/dmitrijs2005/taskkeeper/internal/server/config"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AuthService implements the session flows:
// signup, login, refresh, logout and revoke-all.
type AuthService struct {
	accounts                     *AccountService
	sessions                     *SessionService
	tokens                       *auth.TokenService
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
}

// NewAuthService wires the flows to their collaborators using token
// lifetimes from cfg.
func NewAuthService(accounts *AccountService, sessions *SessionService, tokens *auth.TokenService, cfg *config.Config) *AuthService {
	return &AuthService{
		accounts:                     accounts,
		sessions:                     sessions,
		tokens:                       tokens,
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
	}
}

func (s *AuthService) Signup(ctx context.Context, userName string, password string) (string, error) {
	return s.accounts.CreateAccount(ctx, userName, password)
}

// Login checks credentials and issues a token pair, recording the refresh
// token. Unknown users and wrong passwords both yield
// common.ErrorUnauthorized.
func (s *AuthService) Login(ctx context.Context, userName string, password string) (*TokenPair, error) {
	account, err := s.accounts.FindByUsername(ctx, userName)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error finding account: %w", err)
	}
	if !s.accounts.VerifyPassword(account, password) {
		return nil, common.ErrorUnauthorized
	}

	access, err := s.tokens.Issue(account.ID, models.AccessToken, s.accessTokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}
	refresh, err := s.tokens.Issue(account.ID, models.RefreshToken, s.refreshTokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("issue refresh token: %w", err)
	}
	if err := s.sessions.RecordRefreshToken(ctx, account, refresh); err != nil {
		return nil, fmt.Errorf("record refresh token: %w", err)
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh exchanges a live refresh token for a new access token. The
// refresh token itself is not rotated.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	account, err := s.resolveRefreshToken(ctx, refreshToken)
	if err != nil {
		return "", err
	}
	access, err := s.tokens.Issue(account.ID, models.AccessToken, s.accessTokenValidityDuration)
	if err != nil {
		return "", fmt.Errorf("issue access token: %w", err)
	}
	return access, nil
}

// Logout revokes a single refresh token.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	account, err := s.resolveRefreshToken(ctx, refreshToken)
	if err != nil {
		return err
	}
	if err := s.sessions.RevokeOne(ctx, account, refreshToken); err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	return nil
}

// RevokeAll drops every refresh token of an account that already passed
// the guard.
func (s *AuthService) RevokeAll(ctx context.Context, account *models.Account) error {
	if err := s.sessions.RevokeAll(ctx, account); err != nil {
		return fmt.Errorf("revoke refresh tokens: %w", err)
	}
	return nil
}

// resolveRefreshToken verifies token as a refresh token and checks it is
// still in its account's set. Any failure other than storage errors is
// common.ErrorUnauthorized.
func (s *AuthService) resolveRefreshToken(ctx context.Context, token string) (*models.Account, error) {
	subject, err := s.tokens.Verify(token, models.RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrorUnauthorized, err)
	}
	account, err := s.accounts.FindByID(ctx, subject)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error finding account: %w", err)
	}
	if !s.sessions.IsRefreshTokenValid(account, token) {
		return nil, common.ErrorUnauthorized
	}
	return account, nil
}

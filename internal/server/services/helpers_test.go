package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/server/auth"
	"github.com/dmitrijs2005/taskkeeper/internal/server/config"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/accounts"
	"golang.org/x/crypto/bcrypt"
)

var errStorage = errors.New("storage down")

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

type testEnv struct {
	repo     *accounts.MemoryRepository
	accounts *AccountService
	sessions *SessionService
	tokens   *auth.TokenService
	auth     *AuthService
	clock    *fakeClock
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	clock := &fakeClock{now: time.Date(2024, 9, 6, 12, 0, 0, 0, time.UTC)}
	repo := accounts.NewMemoryRepository()
	cfg := &config.Config{
		AccessTokenValidityDuration:  time.Hour,
		RefreshTokenValidityDuration: 7 * 24 * time.Hour,
	}
	env := &testEnv{
		repo:     repo,
		accounts: NewAccountService(repo, bcrypt.MinCost),
		sessions: NewSessionService(repo),
		tokens:   auth.NewTokenService([]byte("test-secret"), auth.WithClock(clock.Now)),
		clock:    clock,
	}
	env.auth = NewAuthService(env.accounts, env.sessions, env.tokens, cfg)
	return env
}

// fakeAccountsRepo fails every call with err.
type fakeAccountsRepo struct{ err error }

func (f *fakeAccountsRepo) Create(context.Context, *models.Account) (*models.Account, error) {
	return nil, f.err
}
func (f *fakeAccountsRepo) GetByUserName(context.Context, string) (*models.Account, error) {
	return nil, f.err
}
func (f *fakeAccountsRepo) GetByID(context.Context, string) (*models.Account, error) {
	return nil, f.err
}

// fakeRefreshRepo fails every call with err.
type fakeRefreshRepo struct{ err error }

func (f *fakeRefreshRepo) AppendRefreshToken(context.Context, string, string) error { return f.err }
func (f *fakeRefreshRepo) RemoveRefreshToken(context.Context, string, string) error { return f.err }
func (f *fakeRefreshRepo) ClearRefreshTokens(context.Context, string) error         { return f.err }

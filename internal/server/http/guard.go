package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

// Guard rejection messages.
const (
	MsgTokenMissing    = "Token is missing"
	MsgTokenInvalid    = "Token is invalid or expired"
	MsgAccountNotFound = "Account not found"
)

type ctxKey string

const accountKey ctxKey = "account"

// TokenVerifier checks a signed token of the given kind and returns its subject.
type TokenVerifier interface {
	Verify(token string, kind models.TokenKind) (string, error)
}

// AccountFinder resolves an account id.
type AccountFinder interface {
	FindByID(ctx context.Context, id string) (*models.Account, error)
}

// Guard admits requests carrying a valid access token for an existing
// account and exposes that account to downstream handlers.
type Guard struct {
	tokens   TokenVerifier
	accounts AccountFinder
	logger   logging.Logger
}

func NewGuard(tokens TokenVerifier, accounts AccountFinder, logger logging.Logger) *Guard {
	return &Guard{tokens: tokens, accounts: accounts, logger: logger.With("module", "guard")}
}

// Require wraps next so it only runs for authenticated requests.
func (g *Guard) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := common.BearerToken(r.Header.Get(common.AuthorizationHeaderName))
		if !ok {
			writeMessage(w, http.StatusUnauthorized, MsgTokenMissing)
			return
		}

		subject, err := g.tokens.Verify(token, models.AccessToken)
		if err != nil {
			g.logger.Debug(r.Context(), "access token rejected", "error", err)
			writeMessage(w, http.StatusUnauthorized, MsgTokenInvalid)
			return
		}

		account, err := g.accounts.FindByID(r.Context(), subject)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				writeMessage(w, http.StatusUnauthorized, MsgAccountNotFound)
				return
			}
			g.logger.Error(r.Context(), "account lookup failed", "error", err)
			writeMessage(w, http.StatusInternalServerError, MsgInternal)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), accountKey, account)))
	})
}

// AccountFromContext returns the account stored by Guard.Require.
func AccountFromContext(ctx context.Context) (*models.Account, bool) {
	a, ok := ctx.Value(accountKey).(*models.Account)
	return a, ok && a != nil
}

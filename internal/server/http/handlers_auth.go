package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/services"
)

// Auth endpoint messages.
const (
	MsgUserCreated          = "User created successfully"
	MsgUserExists           = "Username already exists"
	MsgInvalidCredentials   = "Invalid username or password"
	MsgRefreshTokenMissing  = "Refresh token is missing"
	MsgRefreshTokenInvalid  = "Invalid refresh token"
	MsgAllRefreshTokensGone = "All refresh tokens revoked"
)

// AuthService is the session workflow the auth handlers drive.
type AuthService interface {
	Signup(ctx context.Context, userName string, password string) (string, error)
	Login(ctx context.Context, userName string, password string) (*services.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	Logout(ctx context.Context, refreshToken string) error
	RevokeAll(ctx context.Context, account *models.Account) error
}

// Handler serves the API endpoints.
type Handler struct {
	auth   AuthService
	tasks  TaskService
	logger logging.Logger
}

func NewHandler(auth AuthService, tasks TaskService, logger logging.Logger) *Handler {
	return &Handler{auth: auth, tasks: tasks, logger: logger.With("module", "http")}
}

type credentialsRequest struct {
	UserName string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         string `json:"user"`
}

type refreshResponse struct {
	AccessToken string `json:"access_token"`
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, MsgInvalidBody)
		return
	}

	if _, err := h.auth.Signup(r.Context(), req.UserName, req.Password); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			writeMessage(w, http.StatusConflict, MsgUserExists)
			return
		}
		h.fail(w, r, err)
		return
	}

	writeMessage(w, http.StatusCreated, MsgUserCreated)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, MsgInvalidBody)
		return
	}

	pair, err := h.auth.Login(r.Context(), req.UserName, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			writeMessage(w, http.StatusUnauthorized, MsgInvalidCredentials)
			return
		}
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         req.UserName,
	})
}

// Refresh expects the refresh token as the bearer credential.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	token, ok := common.BearerToken(r.Header.Get(common.AuthorizationHeaderName))
	if !ok {
		writeMessage(w, http.StatusUnauthorized, MsgRefreshTokenMissing)
		return
	}

	access, err := h.auth.Refresh(r.Context(), token)
	if err != nil {
		h.failRefresh(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, refreshResponse{AccessToken: access})
}

// Logout expects the refresh token to revoke as the bearer credential.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	token, ok := common.BearerToken(r.Header.Get(common.AuthorizationHeaderName))
	if !ok {
		writeMessage(w, http.StatusUnauthorized, MsgRefreshTokenMissing)
		return
	}

	if err := h.auth.Logout(r.Context(), token); err != nil {
		h.failRefresh(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, struct{}{})
}

// RevokeAll runs behind the guard.
func (h *Handler) RevokeAll(w http.ResponseWriter, r *http.Request) {
	account, ok := AccountFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, MsgTokenMissing)
		return
	}

	if err := h.auth.RevokeAll(r.Context(), account); err != nil {
		h.fail(w, r, err)
		return
	}

	writeMessage(w, http.StatusOK, MsgAllRefreshTokensGone)
}

// Protected echoes the caller's account id.
func (h *Handler) Protected(w http.ResponseWriter, r *http.Request) {
	account, ok := AccountFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, MsgTokenMissing)
		return
	}
	writeMessage(w, http.StatusOK, account.ID)
}

func (h *Handler) failRefresh(w http.ResponseWriter, r *http.Request, err error) {
	if statusFor(err) == http.StatusUnauthorized {
		writeMessage(w, http.StatusUnauthorized, MsgRefreshTokenInvalid)
		return
	}
	h.fail(w, r, err)
}

// fail writes the generic response for err. Server-side failures are logged
// and never described to the client.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	var ve *common.ValidationError
	if errors.As(err, &ve) {
		writeMessage(w, http.StatusBadRequest, ve.Message)
		return
	}

	status := statusFor(err)
	switch status {
	case http.StatusInternalServerError:
		h.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		writeMessage(w, status, MsgInternal)
	case http.StatusNotFound:
		writeMessage(w, status, MsgNotFound)
	default:
		writeMessage(w, status, http.StatusText(status))
	}
}

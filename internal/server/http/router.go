package http

import (
	"net/http"

	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/dmitrijs2005/taskkeeper/internal/ratelimit"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter mounts the API under /api.
//
// Routes:
//
//	POST   /api/auth/signup      rate limited
//	POST   /api/auth/login       rate limited
//	POST   /api/auth/refresh     refresh token as bearer
//	POST   /api/auth/logout      refresh token as bearer
//	POST   /api/auth/revoke_all  guard
//	GET    /api/protected        rate limited, guard
//	*      /api/tasks[/{id}]     rate limited, guard
//
// A nil limiter disables rate limiting.
func NewRouter(h *Handler, guard *Guard, limiter *ratelimit.Limiter, logger logging.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Recoverer)
	r.Use(WithRequestLogging(logger))
	// bodyless requests pass regardless of Content-Type
	r.Use(chiMiddleware.AllowContentType("application/json"))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusNotFound, MsgNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusMethodNotAllowed, MsgMethodNotAllowed)
	})

	limit := func(next http.Handler) http.Handler { return next }
	if limiter != nil {
		limit = WithRateLimit(limiter, logger)
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(limit).Post("/signup", h.Signup)
			r.With(limit).Post("/login", h.Login)
			r.Post("/refresh", h.Refresh)
			r.Post("/logout", h.Logout)
			r.With(guard.Require).Post("/revoke_all", h.RevokeAll)
		})

		r.Group(func(r chi.Router) {
			r.Use(limit, guard.Require)

			r.Get("/protected", h.Protected)

			r.Route("/tasks", func(r chi.Router) {
				r.Post("/", h.CreateTask)
				r.Get("/", h.ListTasks)
				r.Get("/{id}", h.GetTask)
				r.Put("/{id}", h.UpdateTask)
				r.Delete("/{id}", h.DeleteTask)
			})
		})
	})

	return r
}

package middleware

import (
	"net/http"

	"github.com/upb/talent-portal/internal/observability"
	"github.com/upb/talent-portal/session"
	"go.uber.org/zap"
)

// SessionMiddleware attaches the browser's session to each request
type SessionMiddleware struct {
	manager *session.Manager
	logger  *zap.Logger
}

// NewSessionMiddleware creates a new SessionMiddleware
func NewSessionMiddleware(manager *session.Manager, logger *zap.Logger) *SessionMiddleware {
	return &SessionMiddleware{
		manager: manager,
		logger:  logger,
	}
}

// LoadSession resolves the session cookie and stores the handle in the context.
// It never rejects a request; an unknown or missing cookie yields an empty session.
func (m *SessionMiddleware) LoadSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		h := m.manager.Load(r)

		observability.WithRequest(ctx, m.logger).Debug("session loaded",
			zap.Bool("fresh", h.Fresh),
			zap.Bool("logged_in", h.State.LoggedIn()))

		next.ServeHTTP(w, r.WithContext(WithSession(ctx, h)))
	})
}

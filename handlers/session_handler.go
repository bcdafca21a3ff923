package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/upb/talent-portal/identity"
	"github.com/upb/talent-portal/internal/auth"
	"github.com/upb/talent-portal/middleware"
	"github.com/upb/talent-portal/navigation"
	"github.com/upb/talent-portal/session"
	"github.com/upb/talent-portal/utils"
	"go.uber.org/zap"
)

// TokenVerifier turns a login hand-off token into a user record
type TokenVerifier interface {
	Verify(token string) (*auth.User, error)
}

// LoginRequest is the body of POST /session
type LoginRequest struct {
	Token string `json:"token" validate:"required"`
}

// LogoutResponse tells an in-app client where to go after logout
type LogoutResponse struct {
	Redirect string `json:"redirect"`
}

// SessionHandler handles login hand-off, session lookup and logout
type SessionHandler struct {
	manager  *session.Manager
	verifier TokenVerifier
	logouter *session.Logouter
	table    *navigation.Table
	logger   *zap.Logger
}

// NewSessionHandler creates a new SessionHandler.
// table backs in-app navigation after logout; without it every logout is a full redirect.
func NewSessionHandler(manager *session.Manager, verifier TokenVerifier, logouter *session.Logouter, table *navigation.Table, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{
		manager:  manager,
		verifier: verifier,
		logouter: logouter,
		table:    table,
		logger:   logger,
	}
}

// HandleLogin handles POST /session
// Verifies the identity backend's token and stores the user in the session.
func (h *SessionHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestIDFromContext(ctx)

	handle := middleware.GetSessionFromContext(ctx)
	if handle == nil {
		h.logger.Error("session middleware not mounted", zap.String("request_id", requestID))
		_ = utils.WriteInternalServerError(w, "Session unavailable")
		return
	}

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		_ = utils.WriteBadRequest(w, "Validation failed", validationDetails(err))
		return
	}

	user, err := h.verifier.Verify(req.Token)
	if err != nil {
		switch {
		case errors.Is(err, identity.ErrNotConfigured):
			h.logger.Error("login token verification not configured", zap.String("request_id", requestID))
			_ = utils.WriteInternalServerError(w, "Authentication not configured")
		case errors.Is(err, identity.ErrTokenExpired):
			_ = utils.WriteUnauthorized(w, "Token expired")
		default:
			h.logger.Warn("login token rejected",
				zap.String("request_id", requestID),
				zap.Error(err))
			_ = utils.WriteUnauthorized(w, "Invalid token")
		}
		return
	}

	// A login always gets a new session ID.
	h.manager.Renew(ctx, handle)
	handle.State.SetUser(user)
	if err := handle.SyncErr(); err != nil {
		h.logger.Error("failed to persist session",
			zap.String("request_id", requestID),
			zap.Error(err))
		_ = utils.WriteInternalServerError(w, "Failed to persist session")
		return
	}
	h.manager.Issue(w, handle)

	h.logger.Info("user logged in",
		zap.String("request_id", requestID),
		zap.String("user_id", user.ID),
		zap.String("role", user.Role.String()))

	_ = utils.WriteOK(w, user)
}

// HandleCurrent handles GET /session
func (h *SessionHandler) HandleCurrent(w http.ResponseWriter, r *http.Request) {
	handle := middleware.GetSessionFromContext(r.Context())
	if handle == nil {
		_ = utils.WriteUnauthorized(w, "")
		return
	}
	user, ok := handle.State.User()
	if !ok {
		_ = utils.WriteUnauthorized(w, "")
		return
	}
	_ = utils.WriteOK(w, user)
}

// HandleLogout handles POST /logout
// htmx clients navigate in-app via Hx-Location; everyone else gets a full redirect.
func (h *SessionHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := session.WithCredentials(r.Context(), r.Cookies())
	requestID := middleware.GetRequestIDFromContext(ctx)

	handle := middleware.GetSessionFromContext(ctx)
	var (
		st     *session.State
		reader navigation.SessionReader
	)
	if handle != nil {
		st = handle.State
		reader = handle.State
	}

	var nav session.Navigator
	if utils.IsHTMX(r) && h.table != nil {
		router := navigation.NewRouter(h.table, h.logger)
		router.BeforeEach(navigation.NewGuard(reader).BeforeEach)
		nav = &hxNavigator{w: w, router: router}
	}

	res := h.logouter.Logout(ctx, st, nav)
	h.manager.Expire(w)

	if handle != nil {
		if err := handle.SyncErr(); err != nil {
			h.logger.Error("session record not removed on logout",
				zap.String("request_id", requestID),
				zap.String("session_id", handle.ID),
				zap.Error(err))
		}
	}

	if res.Reload {
		http.Redirect(w, r, res.Target, http.StatusSeeOther)
		return
	}
	_ = utils.WriteOK(w, LogoutResponse{Redirect: res.Target})
}

// hxNavigator resolves the target through the guarded router and hands the
// landing path to htmx via Hx-Location.
type hxNavigator struct {
	w      http.ResponseWriter
	router *navigation.Router
}

func (n *hxNavigator) Navigate(ctx context.Context, path string) error {
	loc, err := n.router.Push(ctx, path)
	if err != nil {
		return err
	}
	utils.SetHXLocation(n.w, loc.Path)
	return nil
}

func validationDetails(err error) map[string]interface{} {
	fields := utils.GetValidationFields(err)
	if fields == nil {
		return nil
	}
	details := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		details[k] = v
	}
	return details
}

package session

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/upb/talent-portal/internal/auth"
	"go.uber.org/zap"
)

// DefaultCookieName is the browser cookie carrying the session ID.
const DefaultCookieName = "portal_session"

// Options configures the session cookie and record lifetime.
type Options struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
}

// Manager binds browser sessions (cookie) to stored records and keeps the
// store in sync with each request's State.
type Manager struct {
	store  Store
	opts   Options
	logger *zap.Logger
}

// NewManager creates a manager. Zero options fall back to sane defaults.
func NewManager(store Store, opts Options, logger *zap.Logger) *Manager {
	if opts.CookieName == "" {
		opts.CookieName = DefaultCookieName
	}
	if opts.TTL <= 0 {
		opts.TTL = 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{store: store, opts: opts, logger: logger}
}

// Store returns the backing store.
func (m *Manager) Store() Store { return m.store }

// Handle is one browser session as seen by a single request.
type Handle struct {
	ID    string
	State *State
	// Fresh is true when the browser presented no usable session cookie.
	Fresh bool

	mu      sync.Mutex
	syncErr error
}

// SyncErr returns the last error hit while persisting a state change.
func (h *Handle) SyncErr() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.syncErr
}

func (h *Handle) sessionID() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.ID
}

func (h *Handle) setSyncErr(err error) {
	h.mu.Lock()
	h.syncErr = err
	h.mu.Unlock()
}

// Load resolves the request's session. Store failures degrade to an empty
// session; they never fail the request.
func (m *Manager) Load(r *http.Request) *Handle {
	ctx := r.Context()
	h := &Handle{State: NewState()}

	// Only an ID backed by a stored record is adopted.
	if c, err := r.Cookie(m.opts.CookieName); err == nil && isSessionID(c.Value) {
		user, err := m.store.Get(ctx, c.Value)
		switch {
		case err == nil:
			h.ID = c.Value
			h.State.SetUser(user)
		case errors.Is(err, ErrNotFound):
		default:
			m.logger.Warn("session load failed",
				zap.String("session_id", c.Value),
				zap.Error(err))
		}
	}
	if h.ID == "" {
		h.ID = uuid.NewString()
		h.Fresh = true
	}

	// Persist every transition made while serving this request.
	persistCtx := context.WithoutCancel(ctx)
	h.State.Subscribe(func(u *auth.User) {
		h.setSyncErr(m.persist(persistCtx, h.sessionID(), u))
	})
	return h
}

// Renew moves h to a new session ID and drops the record stored under the
// old one. Call it before a login so the issued cookie is never one the
// browser presented.
func (m *Manager) Renew(ctx context.Context, h *Handle) {
	h.mu.Lock()
	old, fresh := h.ID, h.Fresh
	h.ID = uuid.NewString()
	h.Fresh = true
	h.mu.Unlock()

	if fresh {
		return
	}
	if err := m.store.Delete(ctx, old); err != nil {
		m.logger.Warn("old session delete failed", zap.String("session_id", old), zap.Error(err))
	}
}

func (m *Manager) persist(ctx context.Context, id string, u *auth.User) error {
	if u == nil {
		if err := m.store.Delete(ctx, id); err != nil {
			m.logger.Warn("session delete failed", zap.String("session_id", id), zap.Error(err))
			return err
		}
		return nil
	}
	if err := m.store.Save(ctx, id, u, m.opts.TTL); err != nil {
		m.logger.Error("session save failed", zap.String("session_id", id), zap.Error(err))
		return err
	}
	return nil
}

// Issue writes the session cookie for h.
func (m *Manager) Issue(w http.ResponseWriter, h *Handle) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.opts.CookieName,
		Value:    h.sessionID(),
		Path:     "/",
		MaxAge:   int(m.opts.TTL.Seconds()),
		HttpOnly: true,
		Secure:   m.opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Expire removes the session cookie from the browser.
func (m *Manager) Expire(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.opts.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func isSessionID(v string) bool {
	_, err := uuid.Parse(v)
	return err == nil
}

package app

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/upb/talent-portal/config"
	"github.com/upb/talent-portal/handlers"
	"github.com/upb/talent-portal/identity"
	"github.com/upb/talent-portal/internal/observability"
	"github.com/upb/talent-portal/middleware"
	"github.com/upb/talent-portal/navigation"
	"github.com/upb/talent-portal/session"
	"go.uber.org/zap"
)

// Dependencies holds all application dependencies.
// This is the central wiring point for dependency injection.
type Dependencies struct {
	// Infrastructure
	Config  *config.Config
	Logger  *zap.Logger
	Metrics *observability.Metrics
	Redis   *redis.Client

	// Sessions
	SessionStore   session.Store
	SessionManager *session.Manager
	Logouter       *session.Logouter

	// Navigation
	Table *navigation.Table

	// Middleware
	SessionMiddleware *middleware.SessionMiddleware
	GuardMiddleware   *middleware.GuardMiddleware

	// Handlers
	SessionHandler *handlers.SessionHandler
	HealthHandler  *handlers.HealthHandler
}

// NewDependencies creates and wires up all application dependencies.
func NewDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config:  cfg,
		Logger:  logger,
		Metrics: observability.NewMetrics(),
	}

	// Initialize session store
	if err := deps.initStore(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to initialize session store: %w", err)
	}

	deps.initSessions(cfg)
	deps.initNavigation()
	deps.initHandlers(cfg)

	logger.Info("all dependencies initialized successfully",
		zap.String("session_store", cfg.Session.Store),
		zap.Int("routes", len(deps.Table.Locations())))
	return deps, nil
}

// initStore selects the session backend and checks it is reachable
func (d *Dependencies) initStore(ctx context.Context, cfg *config.Config) error {
	switch cfg.Session.Store {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		store := session.NewRedisStore(client)
		if err := store.Ping(ctx); err != nil {
			_ = client.Close()
			return fmt.Errorf("redis ping failed: %w", err)
		}
		d.Redis = client
		d.SessionStore = store
		d.Logger.Info("redis session store connected", zap.String("addr", cfg.Redis.Addr))
	case "memory", "":
		d.SessionStore = session.NewMemoryStore()
		d.Logger.Info("in-memory session store initialized")
	default:
		return fmt.Errorf("unknown session store %q", cfg.Session.Store)
	}
	return nil
}

func (d *Dependencies) initSessions(cfg *config.Config) {
	d.SessionManager = session.NewManager(d.SessionStore, session.Options{
		CookieName: cfg.Session.CookieName,
		TTL:        cfg.Session.TTL,
		Secure:     cfg.Session.CookieSecure,
	}, d.Logger)

	var remote session.RemoteTerminator
	if cfg.Auth.LogoutURL != "" {
		remote = session.NewHTTPTerminator(cfg.Auth.LogoutURL, cfg.Auth.LogoutTimeout)
	} else {
		d.Logger.Warn("auth logout URL not configured, remote sessions will not be terminated")
	}
	d.Logouter = session.NewLogouter(remote, d.Metrics, d.Logger)
	d.SessionMiddleware = middleware.NewSessionMiddleware(d.SessionManager, d.Logger)
}

func (d *Dependencies) initNavigation() {
	d.Table = navigation.DefaultTable(handlers.Views())
	d.GuardMiddleware = middleware.NewGuardMiddleware(d.Table, d.Metrics, d.Logger)
}

func (d *Dependencies) initHandlers(cfg *config.Config) {
	if cfg.Auth.TokenSecret == "" {
		d.Logger.Warn("auth token secret not configured, login hand-off disabled")
	}
	verifier := identity.NewVerifier(cfg.Auth.TokenSecret, cfg.Auth.TokenIssuer)
	d.SessionHandler = handlers.NewSessionHandler(d.SessionManager, verifier, d.Logouter, d.Table, d.Logger)
	d.HealthHandler = handlers.NewHealthHandler(d.SessionStore, d.Logger)
}

// Close gracefully shuts down all dependencies
func (d *Dependencies) Close(ctx context.Context) error {
	d.Logger.Info("shutting down dependencies")

	var errs []error

	if d.Redis != nil {
		if err := d.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close redis: %w", err))
		} else {
			d.Logger.Info("redis connection closed")
		}
	}

	// Sync logger
	if d.Logger != nil {
		_ = d.Logger.Sync()
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors during shutdown: %v", errs)
	}

	return nil
}

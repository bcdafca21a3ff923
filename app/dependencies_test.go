package app

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/upb/talent-portal/config"
	"github.com/upb/talent-portal/session"
	"go.uber.org/zap/zaptest"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Environment: "test",
		Session: config.SessionConfig{
			Store:      "memory",
			CookieName: "portal_session",
			TTL:        time.Hour,
		},
		Auth: config.AuthConfig{
			LogoutURL:     "http://localhost:5002/logout",
			LogoutTimeout: time.Second,
			TokenSecret:   "test-secret",
			TokenIssuer:   "recruitment-backend",
		},
	}
}

func TestNewDependencies(t *testing.T) {
	t.Run("memory store", func(t *testing.T) {
		ctx := context.Background()
		deps, err := NewDependencies(ctx, testConfig(t), zaptest.NewLogger(t))
		require.NoError(t, err)
		require.NotNil(t, deps)

		assert.IsType(t, &session.MemoryStore{}, deps.SessionStore)
		assert.Nil(t, deps.Redis)
		assert.NotNil(t, deps.SessionManager)
		assert.NotNil(t, deps.Logouter)
		assert.NotNil(t, deps.Table)
		assert.NotNil(t, deps.SessionMiddleware)
		assert.NotNil(t, deps.GuardMiddleware)
		assert.NotNil(t, deps.SessionHandler)
		assert.NotNil(t, deps.HealthHandler)
		assert.NotNil(t, deps.Metrics)
		assert.Len(t, deps.Table.Locations(), 11)

		assert.NoError(t, deps.Close(ctx))
	})

	t.Run("redis store", func(t *testing.T) {
		ctx := context.Background()
		mr := miniredis.RunT(t)
		cfg := testConfig(t)
		cfg.Session.Store = "redis"
		cfg.Redis.Addr = mr.Addr()

		deps, err := NewDependencies(ctx, cfg, zaptest.NewLogger(t))
		require.NoError(t, err)

		assert.IsType(t, &session.RedisStore{}, deps.SessionStore)
		require.NotNil(t, deps.Redis)
		assert.NoError(t, deps.SessionStore.Ping(ctx))

		assert.NoError(t, deps.Close(ctx))
	})

	t.Run("redis unreachable", func(t *testing.T) {
		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()

		cfg := testConfig(t)
		cfg.Session.Store = "redis"
		cfg.Redis.Addr = addr

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		deps, err := NewDependencies(ctx, cfg, zaptest.NewLogger(t))
		assert.Error(t, err)
		assert.Nil(t, deps)
		assert.Contains(t, err.Error(), "failed to initialize session store")
	})

	t.Run("unknown store", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Session.Store = "etcd"

		deps, err := NewDependencies(context.Background(), cfg, zaptest.NewLogger(t))
		assert.Error(t, err)
		assert.Nil(t, deps)
	})

	t.Run("no logout URL", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Auth.LogoutURL = ""

		deps, err := NewDependencies(context.Background(), cfg, zaptest.NewLogger(t))
		require.NoError(t, err)
		assert.NotNil(t, deps.Logouter)
	})
}

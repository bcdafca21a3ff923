package navigation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/upb/talent-portal/internal/auth"
	"go.uber.org/zap"
)

func newGuardedRouter(user *auth.User) *Router {
	r := NewRouter(DefaultTable(nopView), zap.NewNop())
	r.BeforeEach(NewGuard(fakeSession{user: user}).BeforeEach)
	return r
}

func TestRouterPush(t *testing.T) {
	ctx := context.Background()

	t.Run("public route commits", func(t *testing.T) {
		r := newGuardedRouter(nil)
		loc, err := r.Push(ctx, "/career-page")
		require.NoError(t, err)
		assert.Equal(t, RouteCareerPage, loc.Name)
		assert.Equal(t, loc, r.Current())
	})

	t.Run("anonymous is redirected to employees", func(t *testing.T) {
		r := newGuardedRouter(nil)
		loc, err := r.Push(ctx, "/dashboard")
		require.NoError(t, err)
		assert.Equal(t, RouteEmployees, loc.Name)
	})

	t.Run("applicant follows redirect to employee dashboard", func(t *testing.T) {
		r := newGuardedRouter(&auth.User{Role: auth.RoleApplicant})
		loc, err := r.Push(ctx, RouteDashboard)
		require.NoError(t, err)
		assert.Equal(t, RouteEmployeeDashboard, loc.Name)
	})

	t.Run("employee bounces from job list through dashboard", func(t *testing.T) {
		// job-list -> Dashboard (role not allowed) -> EmployeeDashboard (not HRMgr)
		r := newGuardedRouter(&auth.User{Role: auth.RoleEmployee})
		loc, err := r.Push(ctx, "/job-list")
		require.NoError(t, err)
		assert.Equal(t, RouteEmployeeDashboard, loc.Name)
	})

	t.Run("unknown target", func(t *testing.T) {
		r := newGuardedRouter(nil)
		_, err := r.Push(ctx, "/missing")
		assert.ErrorIs(t, err, ErrRouteNotFound)
		assert.Nil(t, r.Current())
	})

	t.Run("cancelled context", func(t *testing.T) {
		r := newGuardedRouter(nil)
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := r.Push(cctx, "/")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestRouterRedirectTargetMissing(t *testing.T) {
	table := MustTable(Route{Path: "/secret", Name: "Secret", Meta: Meta{RequiresAuth: true}})
	r := NewRouter(table, nil)
	r.BeforeEach(NewGuard(fakeSession{}).BeforeEach)

	_, err := r.Push(context.Background(), "/secret")
	assert.ErrorIs(t, err, ErrRouteNotFound)
}

func TestRouterRedirectLoop(t *testing.T) {
	table := MustTable(
		Route{Path: "/a", Name: "A"},
		Route{Path: "/b", Name: "B"},
	)
	r := NewRouter(table, zap.NewNop())
	r.BeforeEach(func(to, _ *Location, next Resolver) {
		if to.Name == "A" {
			next(RedirectTo("B"))
			return
		}
		next(RedirectTo("A"))
	})

	_, err := r.Push(context.Background(), "/a")
	assert.ErrorIs(t, err, ErrRedirectLoop)
}

func TestRouterHookContract(t *testing.T) {
	table := MustTable(Route{Path: "/a", Name: "A"}, Route{Path: "/b", Name: "B"})

	t.Run("unresolved hook aborts", func(t *testing.T) {
		r := NewRouter(table, zap.NewNop())
		r.BeforeEach(func(_, _ *Location, _ Resolver) {})
		_, err := r.Push(context.Background(), "/a")
		assert.ErrorIs(t, err, ErrNavigationAborted)
	})

	t.Run("second resolve is ignored", func(t *testing.T) {
		r := NewRouter(table, zap.NewNop())
		r.BeforeEach(func(_, _ *Location, next Resolver) {
			next(Proceed())
			next(RedirectTo("B"))
		})
		loc, err := r.Push(context.Background(), "/a")
		require.NoError(t, err)
		assert.Equal(t, "A", loc.Name)
	})

	t.Run("hooks see previous location", func(t *testing.T) {
		r := NewRouter(table, zap.NewNop())
		var froms []string
		r.BeforeEach(func(_, from *Location, next Resolver) {
			if from == nil {
				froms = append(froms, "")
			} else {
				froms = append(froms, from.Name)
			}
			next(Proceed())
		})
		_, err := r.Push(context.Background(), "/a")
		require.NoError(t, err)
		_, err = r.Push(context.Background(), "/b")
		require.NoError(t, err)
		assert.Equal(t, []string{"", "A"}, froms)
	})
}

func TestRouterNavigate(t *testing.T) {
	r := newGuardedRouter(nil)
	require.NoError(t, r.Navigate(context.Background(), CareerPagePath))
	assert.Equal(t, RouteCareerPage, r.Current().Name)
}

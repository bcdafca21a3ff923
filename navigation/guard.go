package navigation

import (
	"github.com/upb/talent-portal/internal/auth"
)

// SessionReader exposes the logged-in user, if any.
type SessionReader interface {
	User() (*auth.User, bool)
}

// Decision is the outcome of one guard evaluation: proceed, or redirect by route name.
type Decision struct {
	Redirect string
}

// Proceed lets the navigation through.
func Proceed() Decision { return Decision{} }

// RedirectTo substitutes the named route for the requested one.
func RedirectTo(name string) Decision { return Decision{Redirect: name} }

// IsProceed reports whether the decision lets the navigation through.
func (d Decision) IsProceed() bool { return d.Redirect == "" }

func (d Decision) String() string {
	if d.IsProceed() {
		return "proceed"
	}
	return "redirect:" + d.Redirect
}

// Resolver receives the decision of a before-navigation hook.
// Hooks must call it exactly once.
type Resolver func(Decision)

// BeforeHook intercepts a navigation before it is committed.
type BeforeHook func(to, from *Location, next Resolver)

// Guard gates navigation by authentication and role.
type Guard struct {
	session SessionReader
}

// NewGuard returns a guard bound to the given session.
func NewGuard(session SessionReader) *Guard {
	return &Guard{session: session}
}

// Decide evaluates the access rules against the target; first match wins.
func (g *Guard) Decide(to *Location) Decision {
	if !to.RequiresAuth() {
		return Proceed()
	}

	user, ok := g.user()
	if !ok {
		return RedirectTo(RouteEmployees)
	}

	if to.Meta.RequiredRole != auth.RoleUnknown && user.Role != to.Meta.RequiredRole {
		return RedirectTo(RouteEmployeeDashboard)
	}

	if to.Meta.AllowedRoles != nil && !to.Meta.AllowedRoles.Has(user.Role) {
		return RedirectTo(RouteDashboard)
	}

	return Proceed()
}

// BeforeEach adapts Decide to the BeforeHook contract.
func (g *Guard) BeforeEach(to, _ *Location, next Resolver) {
	next(g.Decide(to))
}

// user returns the session user; a record with a role outside the enumeration
// counts as no user at all.
func (g *Guard) user() (*auth.User, bool) {
	if g.session == nil {
		return nil, false
	}
	u, ok := g.session.User()
	if !ok || u == nil || !u.Role.Known() {
		return nil, false
	}
	return u, true
}

package navigation

import (
	"net/http"

	"github.com/upb/talent-portal/internal/auth"
)

// Route names the guard and logout redirect to. They must exist in the table;
// a missing one shows up as ErrRouteNotFound when a navigation is redirected there.
const (
	RouteEmployees         = "Employees"
	RouteEmployeeDashboard = "EmployeeDashboard"
	RouteDashboard         = "Dashboard"
	RouteCareerPage        = "CareerPage"

	// CareerPagePath is where logout always lands.
	CareerPagePath = "/career-page"
)

// Meta is the access metadata a route may declare.
// RequiredRole and AllowedRoles are not expected together; when both are set
// RequiredRole is checked first and short-circuits.
type Meta struct {
	RequiresAuth bool
	RequiredRole auth.Role
	AllowedRoles auth.RoleSet
}

// Route is a named, navigable view.
type Route struct {
	Path     string
	Name     string
	View     http.Handler
	Meta     Meta
	Children []Route
}

// Location is a resolved navigation target: the leaf route plus every
// route record matched on the way down, parent first.
type Location struct {
	Path    string
	Name    string
	Matched []*Route
	Meta    Meta
}

// Route returns the leaf route of the location.
func (l *Location) Route() *Route {
	if l == nil || len(l.Matched) == 0 {
		return nil
	}
	return l.Matched[len(l.Matched)-1]
}

// RequiresAuth reports whether any matched segment is protected.
func (l *Location) RequiresAuth() bool {
	if l == nil {
		return false
	}
	for _, r := range l.Matched {
		if r.Meta.RequiresAuth {
			return true
		}
	}
	return false
}

// mergeMeta folds meta from parent to leaf; set fields on a child win.
func mergeMeta(chain []*Route) Meta {
	var m Meta
	for _, r := range chain {
		if r.Meta.RequiresAuth {
			m.RequiresAuth = true
		}
		if r.Meta.RequiredRole != auth.RoleUnknown {
			m.RequiredRole = r.Meta.RequiredRole
		}
		if r.Meta.AllowedRoles != nil {
			m.AllowedRoles = r.Meta.AllowedRoles
		}
	}
	return m
}

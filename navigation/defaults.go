package navigation

import (
	"net/http"

	"github.com/upb/talent-portal/internal/auth"
)

// ViewFactory builds the handler that renders a named view.
type ViewFactory func(name string) http.Handler

// DefaultRoutes is the job-board route table.
func DefaultRoutes(view ViewFactory) []Route {
	return []Route{
		{
			Path: "/job-list",
			Name: "JobList",
			View: view("JobList"),
			Meta: Meta{RequiresAuth: true, AllowedRoles: auth.NewRoleSet(auth.RoleApplicant, auth.RoleHRMgr)},
		},
		{
			Path: "/create",
			Name: "CreateJob",
			View: view("CreateJob"),
			Meta: Meta{RequiresAuth: true, RequiredRole: auth.RoleHRMgr},
		},
		{Path: "/", Name: "Home", View: view("Home")},
		{Path: "/employees", Name: RouteEmployees, View: view(RouteEmployees)},
		{Path: CareerPagePath, Name: RouteCareerPage, View: view(RouteCareerPage)},
		{Path: "/contact-us", Name: "ContactUs", View: view("ContactUs")},
		{
			Path: "/dashboard",
			Name: RouteDashboard,
			View: view(RouteDashboard),
			Meta: Meta{RequiresAuth: true, RequiredRole: auth.RoleHRMgr},
		},
		{
			Path: "/employee-dashboard",
			Name: RouteEmployeeDashboard,
			View: view(RouteEmployeeDashboard),
			Meta: Meta{RequiresAuth: true},
		},
		{
			Path: "/queries",
			Name: "Queries",
			View: view("Queries"),
			Meta: Meta{RequiresAuth: true},
		},
		{Path: "/setup-2fa", Name: "Setup2FA", View: view("Setup2FA")},
		{Path: "/verify-2fa", Name: "Verify2FA", View: view("Verify2FA")},
	}
}

// DefaultTable builds the job-board table.
func DefaultTable(view ViewFactory) *Table {
	return MustTable(DefaultRoutes(view)...)
}

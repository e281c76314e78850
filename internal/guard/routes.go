// ABOUTME: Console route table with per-view role requirements
// ABOUTME: Routes are built at startup; an unknown role panics

package guard

import (
	"fmt"

	"github.com/eventdesk/console/internal/auth"
)

const (
	PathLogin      = "/login"
	PathDashboard  = "/dashboard"
	PathEvents     = "/events"
	PathStalls     = "/stalls"
	PathSchedules  = "/schedules"
	PathProfile    = "/profile"
	PathUsers      = "/users"
	PathExhibitors = "/exhibitors"
	PathVisitors   = "/visitors"
	PathFAQs       = "/faqs"
)

// Route is one navigable view.
// Role is empty for views any authenticated user may open.
type Route struct {
	Path   string
	Title  string
	Public bool
	Role   auth.Role
}

// NewRoute returns a protected route. An empty role admits any authenticated user.
// Panics if role is not canonical (catches table errors at startup).
func NewRoute(path, title string, role auth.Role) Route {
	if role != "" && !role.Valid() {
		panic(fmt.Sprintf("NewRoute: unknown role %q for %s; valid roles: %v",
			role, path, []auth.Role{auth.RoleSuperAdmin, auth.RoleSubAdmin}))
	}
	return Route{Path: path, Title: title, Role: role}
}

// PublicRoute returns a route that needs no session
func PublicRoute(path, title string) Route {
	return Route{Path: path, Title: title, Public: true}
}

// Routes is the console's route table in menu order
var Routes = []Route{
	PublicRoute(PathLogin, "Login"),
	NewRoute(PathDashboard, "Dashboard", ""),
	NewRoute(PathEvents, "Events", ""),
	NewRoute(PathStalls, "Stalls", ""),
	NewRoute(PathSchedules, "Schedules", ""),
	NewRoute(PathExhibitors, "Exhibitors", auth.RoleSuperAdmin),
	NewRoute(PathVisitors, "Visitors", auth.RoleSuperAdmin),
	NewRoute(PathFAQs, "FAQs", auth.RoleSuperAdmin),
	NewRoute(PathUsers, "Users", auth.RoleSuperAdmin),
	NewRoute(PathProfile, "Profile", ""),
}

// Lookup finds a route by path
func Lookup(path string) (Route, bool) {
	for _, r := range Routes {
		if r.Path == path {
			return r, true
		}
	}
	return Route{}, false
}

// Admitted lists the protected routes the given state may open, in menu order
func Admitted(state auth.State) []Route {
	var out []Route
	for _, r := range Routes {
		if r.Public {
			continue
		}
		if Decide(state, r).Kind == Admit {
			out = append(out, r)
		}
	}
	return out
}

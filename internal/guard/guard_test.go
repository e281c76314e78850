// ABOUTME: Tests for guard decisions and route table construction
// ABOUTME: Covers every status/role combination

package guard

import (
	"testing"

	"github.com/eventdesk/console/internal/auth"
)

var (
	resolving = auth.State{Status: auth.StatusResolving}
	anonymous = auth.State{Status: auth.StatusUnauthenticated}
	superUser = auth.State{Status: auth.StatusAuthenticated, User: &auth.User{ID: "1", Role: auth.RoleSuperAdmin}}
	subUser   = auth.State{Status: auth.StatusAuthenticated, User: &auth.User{ID: "2", Role: auth.RoleSubAdmin}}
)

func mustLookup(t *testing.T, path string) Route {
	t.Helper()
	r, ok := Lookup(path)
	if !ok {
		t.Fatalf("route %s missing from table", path)
	}
	return r
}

func TestDecide(t *testing.T) {
	tests := []struct {
		name  string
		state auth.State
		path  string
		want  Decision
	}{
		{"resolving protected", resolving, PathUsers, Decision{Kind: Pending}},
		{"resolving public", resolving, PathLogin, Decision{Kind: Pending}},
		{"anonymous protected", anonymous, PathEvents, Decision{Kind: Redirect, Target: PathLogin, Replace: true}},
		{"anonymous role-gated", anonymous, PathUsers, Decision{Kind: Redirect, Target: PathLogin, Replace: true}},
		{"anonymous login", anonymous, PathLogin, Decision{Kind: Admit}},
		{"sub-admin open route", subUser, PathEvents, Decision{Kind: Admit}},
		{"sub-admin super route", subUser, PathUsers, Decision{Kind: Redirect, Target: PathDashboard, Replace: true}},
		{"super-admin super route", superUser, PathFAQs, Decision{Kind: Admit}},
		{"super-admin open route", superUser, PathProfile, Decision{Kind: Admit}},
		{"authenticated login", superUser, PathLogin, Decision{Kind: Redirect, Target: PathDashboard, Replace: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decide(tt.state, mustLookup(t, tt.path))
			if got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestDecide_RoleMismatchIsStable(t *testing.T) {
	users := mustLookup(t, PathUsers)
	want := Decision{Kind: Redirect, Target: PathDashboard, Replace: true}

	for i := 0; i < 50; i++ {
		// interleave unrelated decisions
		Decide(superUser, users)
		Decide(anonymous, users)
		if got := Decide(subUser, users); got != want {
			t.Fatalf("call %d: expected %+v, got %+v", i, want, got)
		}
	}
}

func TestDecide_AuthenticatedWithoutUserRedirects(t *testing.T) {
	broken := auth.State{Status: auth.StatusAuthenticated}
	got := Decide(broken, mustLookup(t, PathDashboard))
	if got.Kind != Redirect || got.Target != PathLogin {
		t.Errorf("expected redirect to login, got %+v", got)
	}
}

func TestNewRoute_PanicsOnUnknownRole(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for unknown role")
		}
	}()
	NewRoute("/x", "X", auth.Role("superadmin"))
}

func TestAdmitted(t *testing.T) {
	sub := Admitted(subUser)
	for _, r := range sub {
		if r.Role == auth.RoleSuperAdmin {
			t.Errorf("sub-admin menu must not list %s", r.Path)
		}
	}
	if len(sub) != 5 {
		t.Errorf("expected 5 routes for sub-admin, got %d", len(sub))
	}

	if got := len(Admitted(superUser)); got != len(Routes)-1 {
		t.Errorf("expected %d routes for super-admin, got %d", len(Routes)-1, got)
	}
	if got := len(Admitted(anonymous)); got != 0 {
		t.Errorf("expected no routes when logged out, got %d", got)
	}
}

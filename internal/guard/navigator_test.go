// ABOUTME: Tests for guarded navigation history
// ABOUTME: Redirects must never leave a refused view reachable through Back

package guard

import (
	"errors"
	"testing"
)

func TestNavigator_AnonymousCannotGoBackIntoProtectedView(t *testing.T) {
	nav := NewNavigator()

	d, err := nav.Navigate(anonymous, PathEvents)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Target != PathLogin {
		t.Fatalf("expected redirect to login, got %+v", d)
	}
	if nav.Current() != PathLogin {
		t.Errorf("expected current %s, got %s", PathLogin, nav.Current())
	}
	if _, ok := nav.Back(anonymous); ok {
		t.Error("expected no history to go back to")
	}

	nav.Navigate(anonymous, PathEvents)
	if nav.Current() != PathLogin {
		t.Errorf("expected to stay on login, got %s", nav.Current())
	}
	if nav.Depth() != 1 {
		t.Errorf("expected depth 1, got %d", nav.Depth())
	}
}

func TestNavigator_RoleRedirectKeepsHistory(t *testing.T) {
	nav := NewNavigator()
	nav.Navigate(subUser, PathDashboard)
	nav.Navigate(subUser, PathEvents)

	d, _ := nav.Navigate(subUser, PathUsers)
	if d.Kind != Redirect || d.Target != PathDashboard {
		t.Fatalf("expected redirect to dashboard, got %+v", d)
	}
	if nav.Current() != PathDashboard {
		t.Errorf("expected current dashboard, got %s", nav.Current())
	}
	if nav.Depth() != 3 {
		t.Errorf("expected depth 3, got %d", nav.Depth())
	}

	if _, ok := nav.Back(subUser); !ok {
		t.Fatal("expected back to move")
	}
	if nav.Current() != PathEvents {
		t.Errorf("expected back to return to events, got %s", nav.Current())
	}
	nav.Back(subUser)
	if nav.Current() != PathDashboard {
		t.Errorf("expected dashboard at the bottom, got %s", nav.Current())
	}
}

func TestNavigator_RedirectToCurrentNotDuplicated(t *testing.T) {
	nav := NewNavigator()
	nav.Navigate(subUser, PathDashboard)

	nav.Navigate(subUser, PathUsers)
	if nav.Depth() != 1 || nav.Current() != PathDashboard {
		t.Errorf("expected [dashboard], got depth %d at %s", nav.Depth(), nav.Current())
	}
}

func TestNavigator_BackRechecksAfterLogout(t *testing.T) {
	nav := NewNavigator()
	nav.Navigate(superUser, PathDashboard)
	nav.Navigate(superUser, PathUsers)
	nav.Navigate(superUser, PathFAQs)

	d, ok := nav.Back(anonymous)
	if !ok {
		t.Fatal("expected back to move")
	}
	if d.Kind != Redirect || d.Target != PathLogin {
		t.Errorf("expected redirect to login, got %+v", d)
	}
	if nav.Current() != PathLogin {
		t.Errorf("expected current login, got %s", nav.Current())
	}
}

func TestNavigator_PendingLeavesHistory(t *testing.T) {
	nav := NewNavigator()
	d, _ := nav.Navigate(resolving, PathDashboard)
	if d.Kind != Pending {
		t.Errorf("expected pending, got %s", d.Kind)
	}
	if nav.Depth() != 0 {
		t.Errorf("expected empty history, got %d", nav.Depth())
	}
}

func TestNavigator_UnknownRoute(t *testing.T) {
	_, err := NewNavigator().Navigate(superUser, "/nowhere")
	if !errors.Is(err, ErrUnknownRoute) {
		t.Errorf("expected ErrUnknownRoute, got %v", err)
	}
}

func TestNavigator_SamePathNotDuplicated(t *testing.T) {
	nav := NewNavigator()
	nav.Navigate(superUser, PathEvents)
	nav.Navigate(superUser, PathEvents)
	if nav.Depth() != 1 {
		t.Errorf("expected depth 1, got %d", nav.Depth())
	}
}

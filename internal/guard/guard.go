// ABOUTME: Route guard: admits or redirects a navigation from auth state alone
// ABOUTME: Decide is pure; identical inputs always give identical decisions

package guard

import "github.com/eventdesk/console/internal/auth"

// Kind is the outcome of a navigation attempt
type Kind int

const (
	// Pending means auth state is still resolving; render a placeholder
	Pending Kind = iota
	Admit
	Redirect
)

func (k Kind) String() string {
	switch k {
	case Pending:
		return "pending"
	case Admit:
		return "admit"
	case Redirect:
		return "redirect"
	default:
		return "unknown"
	}
}

// Decision is the guard's answer for one navigation attempt.
// Target and Replace are set only for redirects.
type Decision struct {
	Kind    Kind
	Target  string
	Replace bool
}

func redirect(target string) Decision {
	return Decision{Kind: Redirect, Target: target, Replace: true}
}

// Decide evaluates a navigation to route under state
func Decide(state auth.State, route Route) Decision {
	if state.Status == auth.StatusResolving {
		return Decision{Kind: Pending}
	}

	authenticated := state.Status == auth.StatusAuthenticated && state.User != nil

	if route.Public {
		if authenticated {
			return redirect(PathDashboard)
		}
		return Decision{Kind: Admit}
	}

	if !authenticated {
		return redirect(PathLogin)
	}
	if route.Role != "" && state.User.Role != route.Role {
		return redirect(PathDashboard)
	}
	return Decision{Kind: Admit}
}

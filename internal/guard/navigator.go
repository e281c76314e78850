// ABOUTME: Navigation history that runs every move through the guard
// ABOUTME: Refused views are never recorded so Back cannot return to one

package guard

import (
	"errors"
	"fmt"

	"github.com/eventdesk/console/internal/auth"
)

// ErrUnknownRoute is returned when navigating to a path not in the route table
var ErrUnknownRoute = errors.New("unknown route")

// Navigator holds the history stack of one console. Not safe for concurrent use.
type Navigator struct {
	history []string
}

// NewNavigator creates an empty history
func NewNavigator() *Navigator {
	return &Navigator{}
}

// Current returns the path on top of the history, or empty when nothing was admitted yet
func (n *Navigator) Current() string {
	if len(n.history) == 0 {
		return ""
	}
	return n.history[len(n.history)-1]
}

// Depth returns the number of history entries
func (n *Navigator) Depth() int {
	return len(n.history)
}

// Navigate attempts to open path. Admitted paths are pushed; a redirect pushes
// its target instead. Pending leaves history untouched.
func (n *Navigator) Navigate(state auth.State, path string) (Decision, error) {
	route, ok := Lookup(path)
	if !ok {
		return Decision{}, fmt.Errorf("%w: %s", ErrUnknownRoute, path)
	}

	d := Decide(state, route)
	switch d.Kind {
	case Admit:
		n.push(path)
	case Redirect:
		n.push(d.Target)
	}
	return d, nil
}

// Back pops the current entry and re-checks the one beneath it against state.
// Returns false when there is nothing to go back to.
func (n *Navigator) Back(state auth.State) (Decision, bool) {
	if len(n.history) < 2 {
		return Decision{}, false
	}
	n.history = n.history[:len(n.history)-1]

	route, ok := Lookup(n.Current())
	if !ok {
		return Decision{}, false
	}
	d := Decide(state, route)
	if d.Kind == Redirect {
		n.replace(d.Target)
	}
	return d, true
}

// Reset drops all history, used when the session changes
func (n *Navigator) Reset() {
	n.history = n.history[:0]
}

func (n *Navigator) push(path string) {
	if n.Current() != path {
		n.history = append(n.history, path)
	}
}

func (n *Navigator) replace(target string) {
	if len(n.history) == 0 {
		n.history = append(n.history, target)
		return
	}
	n.history[len(n.history)-1] = target
	// collapse a duplicate left behind by the replacement
	if len(n.history) >= 2 && n.history[len(n.history)-2] == target {
		n.history = n.history[:len(n.history)-1]
	}
}

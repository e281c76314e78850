// ABOUTME: Dashboard summary assembled from the panel list endpoints
// ABOUTME: Fetches collections concurrently and skips panels outside the caller's scope

package client

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"
)

// upcomingLimit caps the events listed on the dashboard
const upcomingLimit = 5

// SummaryScope selects which collections the dashboard may read.
// Events and stalls are visible to every admin.
type SummaryScope struct {
	Exhibitors bool
	Visitors   bool
	Now        time.Time
}

// Summary is the dashboard view of the platform.
// Counts of collections outside the scope are -1.
type Summary struct {
	Events     int     `json:"events"`
	Stalls     int     `json:"stalls"`
	Exhibitors int     `json:"exhibitors"`
	Visitors   int     `json:"visitors"`
	Pending    int     `json:"pending_exhibitors"`
	Upcoming   []Event `json:"upcoming"`
}

// Summary fetches the dashboard collections in parallel
func (c *Client) Summary(ctx context.Context, scope SummaryScope) (*Summary, error) {
	if scope.Now.IsZero() {
		scope.Now = time.Now()
	}

	var (
		events     []Event
		stalls     []Stall
		exhibitors []Exhibitor
		visitors   []Visitor
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		events, err = c.ListEvents(gctx, ListOptions{})
		return err
	})
	g.Go(func() (err error) {
		stalls, err = c.ListStalls(gctx, ListOptions{})
		return err
	})
	if scope.Exhibitors {
		g.Go(func() (err error) {
			exhibitors, err = c.ListExhibitors(gctx, ListOptions{})
			return err
		})
	}
	if scope.Visitors {
		g.Go(func() (err error) {
			visitors, err = c.ListVisitors(gctx, ListOptions{})
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s := &Summary{
		Events:     len(events),
		Stalls:     len(stalls),
		Exhibitors: -1,
		Visitors:   -1,
		Pending:    -1,
		Upcoming:   upcoming(events, scope.Now),
	}
	if scope.Exhibitors {
		s.Exhibitors = len(exhibitors)
		s.Pending = 0
		for _, e := range exhibitors {
			if e.Status == ExhibitorPending {
				s.Pending++
			}
		}
	}
	if scope.Visitors {
		s.Visitors = len(visitors)
	}
	return s, nil
}

// upcoming returns the next events that have not ended, soonest first
func upcoming(events []Event, now time.Time) []Event {
	var out []Event
	for _, e := range events {
		if e.EndDate.IsZero() || e.EndDate.After(now) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartDate.Before(out[j].StartDate)
	})
	if len(out) > upcomingLimit {
		out = out[:upcomingLimit]
	}
	return out
}

// ABOUTME: CRUD calls backing each entity panel
// ABOUTME: Thin typed wrappers over the shared request/decode path

package client

import (
	"context"
	"net/http"
	"net/url"
)

func (o ListOptions) values() url.Values {
	q := url.Values{}
	if o.EventID != "" {
		q.Set("eventId", o.EventID)
	}
	if o.Search != "" {
		q.Set("search", o.Search)
	}
	if o.Status != "" {
		q.Set("status", o.Status)
	}
	return q
}

func list[T any](ctx context.Context, c *Client, path string, opts ListOptions) ([]T, error) {
	var items []T
	_, err := c.do(ctx, request{method: http.MethodGet, path: path, query: opts.values(), authed: true}, &items)
	if err != nil {
		return nil, err
	}
	return items, nil
}

func get[T any](ctx context.Context, c *Client, path string) (*T, error) {
	var item T
	if _, err := c.do(ctx, request{method: http.MethodGet, path: path, authed: true}, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func send[T any](ctx context.Context, c *Client, method, path string, payload any) (*T, error) {
	req, err := jsonRequest(method, path, payload)
	if err != nil {
		return nil, err
	}
	var item T
	if _, err := c.do(ctx, req, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) remove(ctx context.Context, path string) error {
	_, err := c.do(ctx, request{method: http.MethodDelete, path: path, authed: true}, nil)
	return err
}

func itemPath(collection, id string) string {
	return collection + "/" + url.PathEscape(id)
}

// ListEvents calls GET /admin/events
func (c *Client) ListEvents(ctx context.Context, opts ListOptions) ([]Event, error) {
	return list[Event](ctx, c, "/admin/events", opts)
}

// GetEvent calls GET /admin/events/{id}
func (c *Client) GetEvent(ctx context.Context, id string) (*Event, error) {
	return get[Event](ctx, c, itemPath("/admin/events", id))
}

// CreateEvent calls POST /admin/events
func (c *Client) CreateEvent(ctx context.Context, ev *Event) (*Event, error) {
	return send[Event](ctx, c, http.MethodPost, "/admin/events", ev)
}

// UpdateEvent calls PUT /admin/events/{id}
func (c *Client) UpdateEvent(ctx context.Context, id string, ev *Event) (*Event, error) {
	return send[Event](ctx, c, http.MethodPut, itemPath("/admin/events", id), ev)
}

// DeleteEvent calls DELETE /admin/events/{id}
func (c *Client) DeleteEvent(ctx context.Context, id string) error {
	return c.remove(ctx, itemPath("/admin/events", id))
}

// ListExhibitors calls GET /admin/exhibitors
func (c *Client) ListExhibitors(ctx context.Context, opts ListOptions) ([]Exhibitor, error) {
	return list[Exhibitor](ctx, c, "/admin/exhibitors", opts)
}

// SetExhibitorStatus calls PATCH /admin/exhibitors/{id}/status
func (c *Client) SetExhibitorStatus(ctx context.Context, id, status string) (*Exhibitor, error) {
	return send[Exhibitor](ctx, c, http.MethodPatch, itemPath("/admin/exhibitors", id)+"/status", map[string]string{"status": status})
}

// DeleteExhibitor calls DELETE /admin/exhibitors/{id}
func (c *Client) DeleteExhibitor(ctx context.Context, id string) error {
	return c.remove(ctx, itemPath("/admin/exhibitors", id))
}

// ListVisitors calls GET /admin/visitors
func (c *Client) ListVisitors(ctx context.Context, opts ListOptions) ([]Visitor, error) {
	return list[Visitor](ctx, c, "/admin/visitors", opts)
}

// DeleteVisitor calls DELETE /admin/visitors/{id}
func (c *Client) DeleteVisitor(ctx context.Context, id string) error {
	return c.remove(ctx, itemPath("/admin/visitors", id))
}

// ListStalls calls GET /admin/stalls
func (c *Client) ListStalls(ctx context.Context, opts ListOptions) ([]Stall, error) {
	return list[Stall](ctx, c, "/admin/stalls", opts)
}

// CreateStall calls POST /admin/stalls
func (c *Client) CreateStall(ctx context.Context, s *Stall) (*Stall, error) {
	return send[Stall](ctx, c, http.MethodPost, "/admin/stalls", s)
}

// UpdateStall calls PUT /admin/stalls/{id}
func (c *Client) UpdateStall(ctx context.Context, id string, s *Stall) (*Stall, error) {
	return send[Stall](ctx, c, http.MethodPut, itemPath("/admin/stalls", id), s)
}

// DeleteStall calls DELETE /admin/stalls/{id}
func (c *Client) DeleteStall(ctx context.Context, id string) error {
	return c.remove(ctx, itemPath("/admin/stalls", id))
}

// ListFAQs calls GET /admin/faqs
func (c *Client) ListFAQs(ctx context.Context) ([]FAQ, error) {
	return list[FAQ](ctx, c, "/admin/faqs", ListOptions{})
}

// ReplaceFAQs calls PUT /admin/faqs with the full batch and returns the stored set
func (c *Client) ReplaceFAQs(ctx context.Context, faqs []FAQ) ([]FAQ, error) {
	req, err := jsonRequest(http.MethodPut, "/admin/faqs", map[string][]FAQ{"faqs": faqs})
	if err != nil {
		return nil, err
	}
	var stored []FAQ
	if _, err := c.do(ctx, req, &stored); err != nil {
		return nil, err
	}
	return stored, nil
}

// DeleteFAQ calls DELETE /admin/faqs/{id}
func (c *Client) DeleteFAQ(ctx context.Context, id string) error {
	return c.remove(ctx, itemPath("/admin/faqs", id))
}

// ListSchedules calls GET /admin/schedules
func (c *Client) ListSchedules(ctx context.Context, opts ListOptions) ([]Schedule, error) {
	return list[Schedule](ctx, c, "/admin/schedules", opts)
}

// CreateSchedule calls POST /admin/schedules
func (c *Client) CreateSchedule(ctx context.Context, s *Schedule) (*Schedule, error) {
	return send[Schedule](ctx, c, http.MethodPost, "/admin/schedules", s)
}

// UpdateSchedule calls PUT /admin/schedules/{id}
func (c *Client) UpdateSchedule(ctx context.Context, id string, s *Schedule) (*Schedule, error) {
	return send[Schedule](ctx, c, http.MethodPut, itemPath("/admin/schedules", id), s)
}

// DeleteSchedule calls DELETE /admin/schedules/{id}
func (c *Client) DeleteSchedule(ctx context.Context, id string) error {
	return c.remove(ctx, itemPath("/admin/schedules", id))
}

// ListAdmins calls GET /admin/users
func (c *Client) ListAdmins(ctx context.Context, opts ListOptions) ([]Admin, error) {
	return list[Admin](ctx, c, "/admin/users", opts)
}

// CreateAdmin calls POST /admin/users
func (c *Client) CreateAdmin(ctx context.Context, input AdminInput) (*Admin, error) {
	return send[Admin](ctx, c, http.MethodPost, "/admin/users", input)
}

// UpdateAdmin calls PUT /admin/users/{id}
func (c *Client) UpdateAdmin(ctx context.Context, id string, input AdminInput) (*Admin, error) {
	return send[Admin](ctx, c, http.MethodPut, itemPath("/admin/users", id), input)
}

// DeleteAdmin calls DELETE /admin/users/{id}
func (c *Client) DeleteAdmin(ctx context.Context, id string) error {
	return c.remove(ctx, itemPath("/admin/users", id))
}

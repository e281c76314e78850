// ABOUTME: Tests for the admin API client transport and error handling
// ABOUTME: Uses httptest to mock backend responses

package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func writeData(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{"data": data})
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": msg})
}

func TestDo_AttachesBearerAndRequestID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("expected bearer header, got %q", got)
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("expected X-Request-ID header")
		}
		writeData(w, http.StatusOK, []Event{})
	}))
	defer server.Close()

	c := New(server.URL, WithTokenSource(func() string { return "tok" }))
	if _, err := c.ListEvents(context.Background(), ListOptions{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDo_NoTokenNoHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "" {
			t.Errorf("expected no Authorization header, got %q", got)
		}
		writeData(w, http.StatusOK, []Event{})
	}))
	defer server.Close()

	c := New(server.URL)
	if _, err := c.ListEvents(context.Background(), ListOptions{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDo_ServerMessagePreferred(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusBadRequest, "Event title already exists")
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.CreateEvent(context.Background(), &Event{Title: "x"})

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Message != "Event title already exists" {
		t.Errorf("expected server message, got %q", apiErr.Message)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", apiErr.StatusCode)
	}
}

func TestDo_StatusFallbackMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.ListVisitors(context.Background(), ListOptions{})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "502") {
		t.Errorf("expected status code in message, got %q", err.Error())
	}
}

func TestDo_ShapeMismatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeData(w, http.StatusOK, map[string]string{"not": "a list"})
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.ListEvents(context.Background(), ListOptions{})

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError for shape mismatch, got %v", err)
	}
	if !strings.Contains(apiErr.Message, "invalid response") {
		t.Errorf("expected invalid response message, got %q", apiErr.Message)
	}
}

func TestDo_MissingData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusOK, "ok")
	}))
	defer server.Close()

	c := New(server.URL)
	if _, err := c.GetEvent(context.Background(), "1"); err == nil {
		t.Error("expected error for missing data, got nil")
	}
}

func TestDo_UnauthorizedHook(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusUnauthorized, "jwt expired")
	}))
	defer server.Close()

	calls := 0
	var rejected string
	c := New(server.URL,
		WithTokenSource(func() string { return "tok" }),
		WithUnauthorizedHandler(func(token string) {
			calls++
			rejected = token
		}),
	)

	_, err := c.ListStalls(context.Background(), ListOptions{})
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
	if calls != 1 {
		t.Errorf("expected unauthorized hook to run once, got %d", calls)
	}
	if rejected != "tok" {
		t.Errorf("expected hook to receive the sent token, got %q", rejected)
	}
}

func TestLogin_UnauthorizedDoesNotTriggerHook(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusUnauthorized, "Invalid credentials")
	}))
	defer server.Close()

	calls := 0
	c := New(server.URL, WithUnauthorizedHandler(func(string) { calls++ }))

	_, err := c.Login(context.Background(), "a@b.com", "wrong")
	if err == nil || err.Error() != "Invalid credentials" {
		t.Errorf("expected server message, got %v", err)
	}
	if calls != 0 {
		t.Errorf("expected login 401 not to run the hook, got %d calls", calls)
	}
}

func TestDo_ConnectionError(t *testing.T) {
	c := New("http://localhost:99999")
	_, err := c.ListEvents(context.Background(), ListOptions{})
	if err == nil {
		t.Error("expected connection error, got nil")
	}
}

func TestDo_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		writeData(w, http.StatusOK, []Event{})
	}))
	defer server.Close()

	c := New(server.URL)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ListEvents(ctx, ListOptions{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestDo_ContextTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		writeData(w, http.StatusOK, []Event{})
	}))
	defer server.Close()

	c := New(server.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if _, err := c.ListEvents(ctx, ListOptions{}); err == nil {
		t.Error("expected error for timed out context, got nil")
	}
}

func TestNew_TrimsTrailingSlash(t *testing.T) {
	c := New("http://localhost:5000/api/")
	if c.BaseURL() != "http://localhost:5000/api" {
		t.Errorf("expected trimmed base URL, got %s", c.BaseURL())
	}
}

// ABOUTME: Tests for the dashboard and entity commands
// ABOUTME: Runs each command against a fake admin API and checks requests, output and exit codes

package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/eventdesk/console/internal/client"
	"github.com/eventdesk/console/internal/forms"
)

var fixedNow = time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

func sampleEvents() []client.Event {
	return []client.Event{
		{
			ID: "e1", Title: "Build Expo", Venue: "Hall 4",
			StartDate: time.Date(2026, 11, 3, 9, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, 11, 5, 18, 0, 0, 0, time.UTC),
			Status:    "published",
		},
		{
			ID: "e0", Title: "Spring Fair", Venue: "Annex",
			StartDate: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC),
		},
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestRunDashboard_SuperAdmin(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /admin/events", func(w http.ResponseWriter, r *http.Request) {
		writeData(w, http.StatusOK, sampleEvents())
	})
	mux.HandleFunc("GET /admin/stalls", func(w http.ResponseWriter, r *http.Request) {
		writeData(w, http.StatusOK, []client.Stall{{ID: "s1"}, {ID: "s2"}, {ID: "s3"}})
	})
	mux.HandleFunc("GET /admin/exhibitors", func(w http.ResponseWriter, r *http.Request) {
		writeData(w, http.StatusOK, []client.Exhibitor{
			{ID: "x1", Status: client.ExhibitorPending},
			{ID: "x2", Status: client.ExhibitorApproved},
		})
	})
	mux.HandleFunc("GET /admin/visitors", func(w http.ResponseWriter, r *http.Request) {
		writeData(w, http.StatusOK, []client.Visitor{{ID: "v1"}})
	})
	testEnv(t, mux, superUser)

	var buf bytes.Buffer
	if code := runDashboard(t.Context(), &buf, fixedNow); code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}
	for _, want := range []string{"Events:      2", "Stalls:      3", "(1 pending review)", "Visitors:    1", "Build Expo", "Nov 3, 2026 - Nov 5, 2026"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, buf.String())
		}
	}
	if strings.Contains(buf.String(), "Spring Fair") {
		t.Error("expected past event left out of upcoming list")
	}
}

func TestRunDashboard_SubAdminSkipsRestrictedCollections(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /admin/events", func(w http.ResponseWriter, r *http.Request) {
		writeData(w, http.StatusOK, []client.Event{})
	})
	mux.HandleFunc("GET /admin/stalls", func(w http.ResponseWriter, r *http.Request) {
		writeData(w, http.StatusOK, []client.Stall{})
	})
	restricted := func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusForbidden, "forbidden")
	}
	mux.HandleFunc("GET /admin/exhibitors", restricted)
	mux.HandleFunc("GET /admin/visitors", restricted)
	testEnv(t, mux, subUser)

	jsonOutput = true
	var buf bytes.Buffer
	if code := runDashboard(t.Context(), &buf, fixedNow); code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}
	var parsed client.Summary
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if parsed.Exhibitors != -1 || parsed.Visitors != -1 {
		t.Errorf("expected hidden counts, got %+v", parsed)
	}
}

func TestFormatDashboardHuman_HiddenCounts(t *testing.T) {
	output := formatDashboardHuman(&client.Summary{Events: 1, Stalls: 0, Exhibitors: -1, Visitors: -1, Pending: -1})

	if strings.Contains(output, "Exhibitors") || strings.Contains(output, "Visitors") {
		t.Errorf("expected restricted counts omitted, got %q", output)
	}
	if !strings.Contains(output, "No upcoming events") {
		t.Error("expected empty upcoming message")
	}
}

func TestRunEventsList(t *testing.T) {
	testEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/admin/events" || r.URL.Query().Get("search") != "expo" {
			writeMessage(w, http.StatusBadRequest, "unexpected query "+r.URL.RawQuery)
			return
		}
		writeData(w, http.StatusOK, sampleEvents()[:1])
	}), subUser)

	var buf bytes.Buffer
	if code := runEventsList(t.Context(), &buf, client.ListOptions{Search: "expo"}); code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}
	for _, want := range []string{"e1", "Build Expo", "Hall 4", "published"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("expected table to contain %q, got:\n%s", want, buf.String())
		}
	}
}

func TestRunEventsList_ServerError(t *testing.T) {
	testEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusInternalServerError, "database unavailable")
	}), subUser)

	var buf bytes.Buffer
	if code := runEventsList(t.Context(), &buf, client.ListOptions{}); code != 2 {
		t.Errorf("expected exit code 2, got %d", code)
	}
	if !strings.Contains(buf.String(), "database unavailable") {
		t.Errorf("expected server message, got %q", buf.String())
	}
}

func TestFormatEventsHuman_Empty(t *testing.T) {
	if got := formatEventsHuman(nil); got != "No events found." {
		t.Errorf("expected empty placeholder, got %q", got)
	}
}

const eventYAML = `title: Build Expo
venue: Hall 4
startDate: 2026-11-03T09:00:00Z
endDate: 2026-11-05T18:00:00Z
sponsors:
  - name: Acme
    tier: gold
`

func TestRunEventsApply_Create(t *testing.T) {
	testEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/admin/events" {
			writeMessage(w, http.StatusBadRequest, "unexpected "+r.Method+" "+r.URL.Path)
			return
		}
		var ev client.Event
		json.NewDecoder(r.Body).Decode(&ev)
		if len(ev.Sponsors) != 1 || ev.Speakers == nil {
			writeMessage(w, http.StatusBadRequest, "lists not sent")
			return
		}
		ev.ID = "e9"
		writeData(w, http.StatusCreated, ev)
	}), subUser)

	var buf bytes.Buffer
	if code := runEventsApply(t.Context(), &buf, writeFile(t, "event.yaml", eventYAML)); code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}
	if !strings.Contains(buf.String(), "Event created: Build Expo (e9)") {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestRunEventsApply_UpdateWhenDraftHasID(t *testing.T) {
	testEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/admin/events/e1" {
			writeMessage(w, http.StatusBadRequest, "unexpected "+r.Method+" "+r.URL.Path)
			return
		}
		var ev client.Event
		json.NewDecoder(r.Body).Decode(&ev)
		writeData(w, http.StatusOK, ev)
	}), subUser)

	var buf bytes.Buffer
	if code := runEventsApply(t.Context(), &buf, writeFile(t, "event.yaml", "id: e1\n"+eventYAML)); code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}
	if !strings.Contains(buf.String(), "Event updated") {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestRunEventsApply_InvalidDraftNotSent(t *testing.T) {
	var hits atomic.Int32
	testEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}), subUser)

	draft := `title: Build Expo
venue: Hall 4
startDate: 2026-11-05T09:00:00Z
endDate: 2026-11-03T18:00:00Z
`
	var buf bytes.Buffer
	if code := runEventsApply(t.Context(), &buf, writeFile(t, "event.yaml", draft)); code != 1 {
		t.Errorf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(buf.String(), "Invalid input") {
		t.Errorf("unexpected output: %q", buf.String())
	}
	if n := hits.Load(); n != 0 {
		t.Errorf("expected no request, got %d", n)
	}
}

func TestRunEventsTemplate_Blank(t *testing.T) {
	var buf bytes.Buffer
	if code := runEventsTemplate(t.Context(), &buf, ""); code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	for _, want := range []string{"title:", "venue:", "sponsors:", "speakers:"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("expected template to contain %q, got:\n%s", want, buf.String())
		}
	}
}

func TestRunEventsTemplate_FromExistingEvent(t *testing.T) {
	testEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeData(w, http.StatusOK, sampleEvents()[0])
	}), subUser)

	var buf bytes.Buffer
	if code := runEventsTemplate(t.Context(), &buf, "e1"); code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}
	path := writeFile(t, "event.yaml", buf.String())
	draft, err := forms.LoadEventDraft(path)
	if err != nil {
		t.Fatalf("load template: %v", err)
	}
	if draft.ID != "e1" || draft.Title != "Build Expo" {
		t.Errorf("expected draft of e1, got %+v", draft)
	}
}

func TestRunExhibitorReview(t *testing.T) {
	testEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if r.Method != http.MethodPatch || r.URL.Path != "/admin/exhibitors/x1/status" || body["status"] != "approved" {
			writeMessage(w, http.StatusBadRequest, "unexpected request")
			return
		}
		writeData(w, http.StatusOK, client.Exhibitor{ID: "x1", CompanyName: "Acme", Status: "approved"})
	}), superUser)

	var buf bytes.Buffer
	if code := runExhibitorReview(t.Context(), &buf, "x1", client.ExhibitorApproved); code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}
	if !strings.Contains(buf.String(), "Exhibitor Acme approved") {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestRunVisitorsList(t *testing.T) {
	testEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeData(w, http.StatusOK, []client.Visitor{
			{ID: "v1", Name: "Ada", Email: "ada@example.com", CheckedIn: true},
		})
	}), superUser)

	var buf bytes.Buffer
	if code := runVisitorsList(t.Context(), &buf, client.ListOptions{}); code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	for _, want := range []string{"Ada", "ada@example.com", "yes"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("expected table to contain %q, got:\n%s", want, buf.String())
		}
	}
}

func TestRunStallsToggle(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /admin/stalls", func(w http.ResponseWriter, r *http.Request) {
		writeData(w, http.StatusOK, []client.Stall{{
			ID: "s1", EventID: "e1", Number: "A1", Size: "small", Price: 100, Status: "booked",
			Features: []client.StallFeature{{Name: "electricity", Enabled: true}, {Name: "projector", Enabled: true}},
		}})
	})
	mux.HandleFunc("PUT /admin/stalls/s1", func(w http.ResponseWriter, r *http.Request) {
		var s client.Stall
		json.NewDecoder(r.Body).Decode(&s)
		enabled := map[string]bool{}
		for _, f := range s.Features {
			enabled[f.Name] = f.Enabled
		}
		if !enabled["wifi"] || !enabled["electricity"] || !enabled["projector"] || len(s.Features) != len(forms.DefaultFeatures)+1 {
			writeMessage(w, http.StatusBadRequest, "unexpected features")
			return
		}
		if s.Status != "booked" {
			writeMessage(w, http.StatusBadRequest, "status dropped")
			return
		}
		writeData(w, http.StatusOK, s)
	})
	testEnv(t, mux, subUser)

	var buf bytes.Buffer
	if code := runStallsToggle(t.Context(), &buf, "s1", "WiFi"); code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}
	if !strings.Contains(buf.String(), "Stall A1: wifi on") {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestRunStallsToggle_UnknownFeature(t *testing.T) {
	testEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeData(w, http.StatusOK, []client.Stall{{ID: "s1", EventID: "e1", Number: "A1"}})
	}), subUser)

	var buf bytes.Buffer
	if code := runStallsToggle(t.Context(), &buf, "s1", "jacuzzi"); code != 1 {
		t.Errorf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(buf.String(), "unknown stall feature") {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestRunStallsCreate_Validation(t *testing.T) {
	testEnv(t, http.NotFoundHandler(), subUser)

	var buf bytes.Buffer
	draft := &forms.StallDraft{EventID: "e1", Number: "A1", Size: "huge"}
	if code := runStallsCreate(t.Context(), &buf, draft); code != 1 {
		t.Errorf("expected exit code 1, got %d", code)
	}
}

func TestRunSchedulesCreate(t *testing.T) {
	testEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var s client.Schedule
		json.NewDecoder(r.Body).Decode(&s)
		if r.Method != http.MethodPost || s.EventID != "e1" || !s.EndTime.After(s.StartTime) {
			writeMessage(w, http.StatusBadRequest, "unexpected request")
			return
		}
		s.ID = "sc1"
		writeData(w, http.StatusCreated, s)
	}), subUser)

	tests := []struct {
		name       string
		start, end string
		wantCode   int
	}{
		{"valid", "2026-11-03 09:00", "2026-11-03 10:00", 0},
		{"end before start", "2026-11-03 10:00", "2026-11-03 09:00", 1},
		{"same time", "2026-11-03 10:00", "2026-11-03 10:00", 1},
		{"bad format", "Nov 3 9am", "2026-11-03 10:00", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			draft := &forms.ScheduleDraft{EventID: "e1", Title: "Keynote"}
			if code := runSchedulesCreate(t.Context(), &buf, draft, tt.start, tt.end); code != tt.wantCode {
				t.Errorf("expected exit code %d, got %d: %s", tt.wantCode, code, buf.String())
			}
		})
	}
}

func TestRunFAQsApply(t *testing.T) {
	testEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			FAQs []client.FAQ `json:"faqs"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		if r.Method != http.MethodPut || len(body.FAQs) != 1 || body.FAQs[0].ID != "f1" {
			writeMessage(w, http.StatusBadRequest, "unexpected request")
			return
		}
		writeData(w, http.StatusOK, body.FAQs)
	}), superUser)

	content := `faqs:
  - id: f1
    question: When does it open?
    answer: " 9am "
  - question: ""
    answer: ""
`
	var buf bytes.Buffer
	if code := runFAQsApply(t.Context(), &buf, writeFile(t, "faqs.yaml", content)); code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}
	if !strings.Contains(buf.String(), "FAQs saved (1)") {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestRunFAQsApply_HalfFilledRow(t *testing.T) {
	testEnv(t, http.NotFoundHandler(), superUser)

	content := `faqs:
  - question: When does it open?
    answer: ""
`
	var buf bytes.Buffer
	if code := runFAQsApply(t.Context(), &buf, writeFile(t, "faqs.yaml", content)); code != 1 {
		t.Errorf("expected exit code 1, got %d", code)
	}
}

func TestRunFAQsExport(t *testing.T) {
	testEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeData(w, http.StatusOK, []client.FAQ{{ID: "f1", Question: "Parking?", Answer: "Lot B"}})
	}), superUser)

	var buf bytes.Buffer
	if code := runFAQsExport(t.Context(), &buf); code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	batch, err := forms.LoadFAQBatch(writeFile(t, "faqs.yaml", buf.String()))
	if err != nil {
		t.Fatalf("load export: %v", err)
	}
	if len(batch.Rows) != 1 || batch.Rows[0].ID != "f1" {
		t.Errorf("expected exported row to keep its id, got %+v", batch.Rows)
	}
}

func TestRunUsersCreate_TranslatesRole(t *testing.T) {
	testEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var input client.AdminInput
		json.NewDecoder(r.Body).Decode(&input)
		if input.Role != "subadmin" {
			writeMessage(w, http.StatusBadRequest, "unexpected role "+input.Role)
			return
		}
		writeData(w, http.StatusCreated, client.Admin{ID: "a9", Email: input.Email, Role: input.Role})
	}), superUser)

	var buf bytes.Buffer
	draft := &forms.AdminDraft{Email: "new@example.com", Password: "long-enough", Role: "sub-admin"}
	if code := runUsersCreate(t.Context(), &buf, draft); code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}
	if !strings.Contains(buf.String(), "Admin new@example.com created (a9)") {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestRunUsersDelete_RefusesSelf(t *testing.T) {
	var hits atomic.Int32
	testEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}), superUser)

	var buf bytes.Buffer
	if code := runUsersDelete(t.Context(), &buf, "a1"); code != 1 {
		t.Errorf("expected exit code 1, got %d", code)
	}
	if n := hits.Load(); n != 0 {
		t.Errorf("expected no request, got %d", n)
	}
}

func TestFormatUsersHuman_RoleLabels(t *testing.T) {
	output := formatUsersHuman([]client.Admin{
		{ID: "a1", Email: "root@example.com", Role: "superadmin"},
		{ID: "a3", Email: "odd@example.com", Role: "editor"},
	})
	if !strings.Contains(output, "Super Admin") {
		t.Error("expected console role label")
	}
	if !strings.Contains(output, "editor") {
		t.Error("expected unknown role shown as sent")
	}
}

func TestConsolePath(t *testing.T) {
	tests := []struct {
		view    string
		want    string
		wantErr bool
	}{
		{"dashboard", "/dashboard", false},
		{" Events ", "/events", false},
		{"/users", "/users", false},
		{"reports", "", true},
	}
	for _, tt := range tests {
		got, err := consolePath(tt.view)
		if (err != nil) != tt.wantErr {
			t.Errorf("consolePath(%q): expected error %v, got %v", tt.view, tt.wantErr, err)
		}
		if got != tt.want {
			t.Errorf("consolePath(%q): expected %q, got %q", tt.view, tt.want, got)
		}
	}
}

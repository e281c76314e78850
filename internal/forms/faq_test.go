// ABOUTME: Tests for FAQ batch editing and submission
// ABOUTME: Blank rows vanish, half-filled rows are errors

package forms

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/eventdesk/console/internal/client"
	"github.com/eventdesk/console/internal/validate"
)

func TestFAQBatch_DropsBlankRows(t *testing.T) {
	b := NewFAQBatch([]client.FAQ{{ID: "f1", Question: "When?", Answer: "May"}})
	b.Add()
	i := b.Add()
	if err := b.Edit(i, "  Where? ", " Hall 4 "); err != nil {
		t.Fatalf("edit: %v", err)
	}
	b.Add()

	rows, err := b.Submit()
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d: %+v", len(rows), rows)
	}
	if rows[0].ID != "f1" {
		t.Errorf("expected existing ID kept, got %q", rows[0].ID)
	}
	if rows[1].Question != "Where?" || rows[1].Answer != "Hall 4" {
		t.Errorf("expected trimmed row, got %+v", rows[1])
	}
}

func TestFAQBatch_HalfFilledRow(t *testing.T) {
	b := NewFAQBatch(nil)
	b.Add()
	i := b.Add()
	b.Edit(i, "Question only", "")

	_, err := b.Submit()
	fields := validate.Fields(err)
	if fields["faqs[0].answer"] == "" {
		t.Errorf("expected answer error on first submitted row, got %v", err)
	}
}

func TestFAQBatch_Remove(t *testing.T) {
	b := NewFAQBatch([]client.FAQ{{Question: "a", Answer: "1"}, {Question: "b", Answer: "2"}})
	if err := b.Remove(0); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(b.Rows) != 1 || b.Rows[0].Question != "b" {
		t.Errorf("unexpected rows %+v", b.Rows)
	}
	if err := b.Edit(3, "x", "y"); !errors.Is(err, ErrIndex) {
		t.Errorf("expected ErrIndex, got %v", err)
	}
}

func TestFAQBatch_DoesNotAliasSource(t *testing.T) {
	src := []client.FAQ{{Question: "a", Answer: "1"}}
	b := NewFAQBatch(src)
	b.Edit(0, "changed", "1")
	if src[0].Question != "a" {
		t.Error("editing the batch must not change the source list")
	}
}

func TestLoadFAQBatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "faqs.yaml")
	content := `faqs:
  - question: When does it open?
    answer: 9am
  - question: ""
    answer: ""
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	b, err := LoadFAQBatch(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	rows, err := b.Submit()
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("expected 1 row, got %d", len(rows))
	}
}

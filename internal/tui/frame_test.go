// ABOUTME: Test to verify header/footer width alignment
// ABOUTME: Ensures frame renders at correct terminal width

package tui

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/eventdesk/console/internal/guard"
)

func TestFrameAlignment(t *testing.T) {
	widths := []int{60, 80, 100, 120}

	for _, targetWidth := range widths {
		t.Run(fmt.Sprintf("width_%d", targetWidth), func(t *testing.T) {
			h := newHarness(t, superRecord, guard.PathDashboard)
			h.resolve()
			h.app.Update(tea.WindowSizeMsg{Width: targetWidth, Height: 30})

			expectedWidth := max(minTerminalWidth, targetWidth)
			headerFound, footerFound := false, false

			for _, line := range strings.Split(h.app.View(), "\n") {
				if strings.HasPrefix(line, "╭─") && strings.Contains(line, "EventDesk Console") {
					headerFound = true
					if w := lipgloss.Width(line); w != expectedWidth {
						t.Errorf("header width mismatch: expected %d, got %d", expectedWidth, w)
					}
				}
				if idx := strings.Index(line, "╰─"); idx >= 0 && strings.Contains(line, "Quit") {
					footerFound = true
					if w := lipgloss.Width(line[idx:]); w != expectedWidth {
						t.Errorf("footer width mismatch: expected %d, got %d", expectedWidth, w)
					}
				}
			}

			if !headerFound {
				t.Error("header not found in output")
			}
			if !footerFound {
				t.Error("footer not found in output")
			}
		})
	}
}

func TestHeaderShowsSession(t *testing.T) {
	h := newHarness(t, superRecord, guard.PathDashboard)
	h.resolve()

	header := h.app.renderHeader()
	if !strings.Contains(header, "root@example.com") {
		t.Error("expected admin email in header")
	}
	if !strings.Contains(header, "Super Admin") {
		t.Error("expected role badge in header")
	}
	if !strings.Contains(header, "Dashboard") {
		t.Error("expected route title in header")
	}
}

func TestFooterShortcuts(t *testing.T) {
	h := newHarness(t, "", guard.PathDashboard)
	h.resolve()

	if footer := h.app.renderFooter(); !strings.Contains(footer, "Sign in") {
		t.Errorf("expected login shortcuts, got %q", footer)
	}
}

func TestFooterOffersBackOnlyWithHistory(t *testing.T) {
	h := newHarness(t, superRecord, guard.PathDashboard)
	h.resolve()

	if keys := strings.Join(h.app.shortcuts(), " "); strings.Contains(keys, "Back") {
		t.Errorf("expected no back shortcut on the first view, got %q", keys)
	}

	h.app.navigate(guard.PathEvents)
	if keys := strings.Join(h.app.shortcuts(), " "); !strings.Contains(keys, "b Back") {
		t.Errorf("expected back shortcut after navigating, got %q", keys)
	}
}

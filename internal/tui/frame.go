// ABOUTME: Screen rendering and the header/footer frame around it
// ABOUTME: Header shows the signed-in admin; footer lists the keys of the current screen

package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/eventdesk/console/internal/auth"
	"github.com/eventdesk/console/internal/guard"
	"github.com/eventdesk/console/internal/tui/icons"
	"github.com/eventdesk/console/internal/tui/styles"
	"github.com/eventdesk/console/internal/tui/widgets"
)

// View implements tea.Model
func (a *App) View() string {
	return a.wrapWithFrame(a.viewContent())
}

func (a *App) viewContent() string {
	switch {
	case a.route == "":
		return styles.Panel.Width(a.contentWidth()).Render(
			fmt.Sprintf("%s Checking session...", a.spinner.View()))
	case a.menu != nil:
		return styles.ActivePanel.Width(a.contentWidth()).Render(a.menu.View())
	case a.wizard != nil:
		return a.wizard.View()
	case a.modal != nil:
		return styles.ActivePanel.Width(a.contentWidth()).Render(a.modal.view())
	}

	var body string
	switch {
	case a.route == guard.PathLogin && a.login != nil:
		body = styles.Title.Render(icons.Lock.String()+" Sign in") + "\n" + a.login.View()
	case a.route == guard.PathDashboard && a.dashboard != nil:
		body = a.dashboard.View()
	case a.route == guard.PathProfile && a.profile != nil:
		body = a.profile.View()
	case a.panel != nil:
		body = a.panel.View()
	}
	return styles.ActivePanel.Width(a.contentWidth()).Render(body)
}

// contentWidth is the width available inside the frame
func (a *App) contentWidth() int {
	return max(minTerminalWidth, a.width) - panelPadding
}

// contentHeight calculates the height available for screen content
func (a *App) contentHeight() int {
	// header, footer, the two newlines between them and the frame, and the
	// panel's border and padding
	return max(10, a.height-8)
}

// renderHeader creates the header bar with app branding and session context
func (a *App) renderHeader() string {
	width := max(minTerminalWidth, a.width)

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	contextStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	leftRendered := fmt.Sprintf(" %s %s", icons.App.String(), titleStyle.Render("EventDesk Console"))
	if route, ok := guard.Lookup(a.route); ok && !route.Public {
		leftRendered += contextStyle.Render(" · " + route.Title)
	}

	rightRendered := ""
	if a.state.Status == auth.StatusAuthenticated && a.state.User != nil {
		name := a.state.User.Username
		if name == "" {
			name = a.state.User.Email
		}
		rightRendered = contextStyle.Render(name) + " " + widgets.RoleBadge(a.state.User.Role) + " "
	}

	fillWidth := max(0, width-4-lipgloss.Width(leftRendered)-lipgloss.Width(rightRendered)) // -4 for ╭─ and ─╮
	header := "╭─" + leftRendered + strings.Repeat("─", fillWidth) + rightRendered + "─╮"

	return borderStyle.Render(header)
}

// shortcuts lists the keys of the current screen
func (a *App) shortcuts() []string {
	switch {
	case a.route == "":
		return []string{"ctrl+c Quit"}
	case a.menu != nil:
		return []string{"↑↓ Navigate", "Enter Open", "Esc Close"}
	case a.wizard != nil:
		return []string{"Tab Next", "Enter Confirm", "Esc Cancel"}
	case a.modal != nil:
		return []string{"Enter Save", "Esc Cancel"}
	case a.route == guard.PathLogin:
		return []string{"Enter Sign in", "ctrl+c Quit"}
	case a.route == guard.PathProfile && a.profile != nil && a.profile.Editing():
		return []string{"Enter Save", "Esc Cancel"}
	}

	keys := []string{"m Menu", "↑↓ Select"}
	if a.route == guard.PathDashboard {
		keys = []string{"m Menu", "r Refresh"}
	}
	if a.nav.Depth() > 1 {
		keys = append(keys, "b Back")
	}
	return append(keys, "q Quit")
}

// renderFooter creates the footer with keyboard shortcuts and status
func (a *App) renderFooter() string {
	width := max(minTerminalWidth, a.width)

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	keyStyle := lipgloss.NewStyle().Foreground(styles.Primary)
	labelStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	statusStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	shortcuts := a.shortcuts()
	styled := make([]string, 0, len(shortcuts))
	for _, s := range shortcuts {
		parts := strings.SplitN(s, " ", 2)
		if len(parts) == 2 {
			styled = append(styled, keyStyle.Render(parts[0])+" "+labelStyle.Render(parts[1]))
		} else {
			styled = append(styled, s)
		}
	}

	leftText := " " + strings.Join(styled, "  ")
	leftPlainText := " " + strings.Join(shortcuts, "  ")

	rightText, rightPlainText := "", ""
	if !a.lastUpdate.IsZero() && a.route != guard.PathLogin && a.route != "" {
		elapsed := formatTimeSince(a.lastUpdate)
		rightText = statusStyle.Render("Updated "+elapsed) + " "
		rightPlainText = "Updated " + elapsed + " "
	}

	fillWidth := max(0, width-4-lipgloss.Width(leftPlainText)-lipgloss.Width(rightPlainText)) // -4 for ╰─ and ─╯
	footer := "╰─" + leftText + strings.Repeat("─", fillWidth) + rightText + "─╯"

	return borderStyle.Render(footer)
}

// formatTimeSince formats a duration since the given time in human-readable form
func formatTimeSince(t time.Time) string {
	d := time.Since(t)

	if d < time.Minute {
		secs := int(d.Seconds())
		if secs < 5 {
			return "just now"
		}
		return fmt.Sprintf("%ds ago", secs)
	}

	if d < time.Hour {
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	}

	return fmt.Sprintf("%dh ago", int(d.Hours()))
}

// wrapWithFrame wraps content with header and footer
func (a *App) wrapWithFrame(content string) string {
	var sb strings.Builder

	sb.WriteString(a.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(content)
	sb.WriteString("\n")
	sb.WriteString(a.renderFooter())

	return sb.String()
}

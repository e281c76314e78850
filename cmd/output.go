// ABOUTME: Output helpers shared by the list and detail commands
// ABOUTME: Renders rows as a lipgloss table or any value as indented JSON

package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/eventdesk/console/internal/tui/styles"
)

const dateLayout = "Jan 2, 2006"

// formatTable renders rows under headers, or a placeholder when empty
func formatTable(headers []string, rows [][]string, empty string) string {
	if len(rows) == 0 {
		return empty
	}
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(styles.Primary).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(styles.Muted)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	return t.Render()
}

// formatJSON formats v as indented JSON
func formatJSON(v any) string {
	data, _ := json.MarshalIndent(v, "", "  ")
	return string(data)
}

// emit writes v as JSON when requested, otherwise the human rendering
func emit(w io.Writer, v any, human func() string) {
	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(v))
		return
	}
	fmt.Fprintln(w, human())
}

// emitDone reports a completed mutation
func emitDone(w io.Writer, message string, v any) {
	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(map[string]any{"message": message, "data": v}))
		return
	}
	fmt.Fprintln(w, message)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// ABOUTME: Icon system with Nerd Font detection and Unicode fallback
// ABOUTME: Provides consistent iconography across different terminal capabilities

package icons

import (
	"os"
	"strings"
	"sync"
)

var (
	useNerdFonts     bool
	nerdFontDetected sync.Once
)

// detectNerdFonts checks if Nerd Fonts should be used
func detectNerdFonts() bool {
	if env := os.Getenv("EVENTDESK_NERD_FONTS"); env != "" {
		return env == "1" || strings.ToLower(env) == "true"
	}

	term := os.Getenv("TERM")
	termProgram := os.Getenv("TERM_PROGRAM")

	nerdFontTerminals := []string{
		"iTerm.app",
		"alacritty",
		"WezTerm",
		"kitty",
		"ghostty",
	}

	for _, t := range nerdFontTerminals {
		if strings.Contains(termProgram, t) || strings.Contains(term, strings.ToLower(t)) {
			return true
		}
	}

	return os.Getenv("NERD_FONTS") == "1"
}

// HasNerdFonts returns true if Nerd Fonts are available
func HasNerdFonts() bool {
	nerdFontDetected.Do(func() {
		useNerdFonts = detectNerdFonts()
	})
	return useNerdFonts
}

// Icon represents an icon with Nerd Font and Unicode fallback variants
type Icon struct {
	NerdFont string
	Fallback string
}

// String returns the appropriate icon based on font availability
func (i Icon) String() string {
	if HasNerdFonts() {
		return i.NerdFont
	}
	return i.Fallback
}

// Icon definitions - Nerd Font codepoints with Unicode fallbacks
var (
	// Panels
	Dashboard = Icon{"󰕮", "▦"} // nf-md-view_dashboard
	Event     = Icon{"󰃭", "◷"} // nf-md-calendar
	Stall     = Icon{"󰓏", "▣"} // nf-md-store
	Schedule  = Icon{"󰔛", "◔"} // nf-md-timer
	Exhibitor = Icon{"󰒋", "◆"} // nf-md-domain
	Visitor   = Icon{"󰀉", "●"} // nf-md-account
	FAQ       = Icon{"󰘥", "?"} // nf-md-help_circle
	Users     = Icon{"󰡉", "◎"} // nf-md-account_group
	Profile   = Icon{"󰀄", "☺"} // nf-md-account_circle

	// Status indicators
	CheckOK  = Icon{"", "✓"} // nf-oct-check_circle
	Warning  = Icon{"", "⚠"} // nf-oct-alert
	Critical = Icon{"", "✗"} // nf-oct-x_circle
	Info     = Icon{"", "ℹ"} // nf-oct-info

	// Actions
	Refresh = Icon{"󰑓", "↻"} // nf-md-refresh
	Wizard  = Icon{"󰂓", "★"} // nf-md-auto_fix
	Back    = Icon{"󰁍", "←"} // nf-md-arrow_left
	Quit    = Icon{"󰗼", "×"} // nf-md-exit_to_app
	Delete  = Icon{"󰆴", "⌫"} // nf-md-delete
	Lock    = Icon{"󰌾", "⚿"} // nf-md-lock

	// Application
	App      = Icon{"󰃰", "◈"} // nf-md-calendar_star
	Settings = Icon{"󰒓", "⚙"} // nf-md-cog
)

// ForRoute returns the icon shown next to a console route
func ForRoute(path string) Icon {
	switch path {
	case "/dashboard":
		return Dashboard
	case "/events":
		return Event
	case "/stalls":
		return Stall
	case "/schedules":
		return Schedule
	case "/exhibitors":
		return Exhibitor
	case "/visitors":
		return Visitor
	case "/faqs":
		return FAQ
	case "/users":
		return Users
	case "/profile":
		return Profile
	default:
		return Info
	}
}

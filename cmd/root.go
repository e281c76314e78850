// ABOUTME: Root command for the eventdesk CLI
// ABOUTME: Handles global flags and configuration

package cmd

import (
	"github.com/spf13/cobra"
)

var (
	apiURL     string
	jsonOutput bool
	logLevel   string
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "eventdesk",
	Short: "Admin console for the EventDesk platform",
	Long: `eventdesk manages events, exhibitors, visitors, stalls, schedules, FAQs and
admin users of an EventDesk backend.

Run "eventdesk console" for the interactive console, or use the subcommands
for scripting. Sign in once with "eventdesk login"; the session is kept in the
config directory until "eventdesk logout" or until the server rejects it.

Environment Variables:
  EVENTDESK_API_URL     Backend API URL (default: http://localhost:5000/api)
  EVENTDESK_CONFIG_DIR  Session and log directory (default: $XDG_CONFIG_HOME/eventdesk)
  EVENTDESK_LOG_LEVEL   debug, info, warn, error or off (default: info)
  EVENTDESK_TIMEOUT     Request timeout (default: 30s)
  EVENTDESK_CACHE_TTL   How long console lists are reused (default: 30s)

Exit codes:
  0 - Success
  1 - Invalid input, not signed in, or not permitted
  2 - Error (connectivity, server error)`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides EVENTDESK_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Debug log level (overrides EVENTDESK_LOG_LEVEL)")
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

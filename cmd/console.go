// ABOUTME: Console command that starts the interactive TUI
// ABOUTME: Opens at the dashboard or at the view named by --view

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/eventdesk/console/internal/guard"
	"github.com/eventdesk/console/internal/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var consoleView string

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Start the interactive console",
	Long: `Start the interactive admin console. Views you are not allowed to open
redirect to the dashboard; without a session the console opens the sign-in
screen and continues to the requested view afterwards.`,
	Args: cobra.NoArgs,
	Run: run(func(ctx context.Context, w io.Writer, _ []string) int {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return fail(w, errors.New("the console needs an interactive terminal"))
		}
		return runConsole(ctx, w, consoleView)
	}),
}

func init() {
	rootCmd.AddCommand(consoleCmd)
	consoleCmd.Flags().StringVar(&consoleView, "view", "dashboard", "View to open first (e.g. events, stalls, users)")
}

// consolePath turns a view name into a route path
func consolePath(view string) (string, error) {
	path := "/" + strings.Trim(strings.ToLower(strings.TrimSpace(view)), "/")
	if _, ok := guard.Lookup(path); !ok {
		names := make([]string, 0, len(guard.Routes))
		for _, r := range guard.Routes {
			names = append(names, strings.TrimPrefix(r.Path, "/"))
		}
		return "", fmt.Errorf("unknown view %q (available: %s)", view, strings.Join(names, ", "))
	}
	return path, nil
}

// runConsole runs the TUI until the user quits and returns exit code
func runConsole(ctx context.Context, w io.Writer, view string) int {
	start, err := consolePath(view)
	if err != nil {
		return invalid(w, err)
	}
	return withApp(ctx, w, func(a *app) int {
		a.logger.Info().Str("view", start).Str("api_url", a.client.BaseURL()).Msg("console starting")
		err := tui.Run(ctx, tui.Deps{
			Resolver: a.resolver,
			Client:   a.client,
			Cache:    a.cache,
			Logger:   a.logger,
		}, start)
		if err != nil && !errors.Is(err, context.Canceled) {
			return fail(w, err)
		}
		return 0
	})
}

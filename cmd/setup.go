// ABOUTME: Wiring shared by every command: config, debug log, session, client and cache
// ABOUTME: Also maps errors to exit codes and checks a command's route against the session

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/eventdesk/console/internal/auth"
	"github.com/eventdesk/console/internal/cache"
	"github.com/eventdesk/console/internal/client"
	"github.com/eventdesk/console/internal/config"
	"github.com/eventdesk/console/internal/guard"
	"github.com/eventdesk/console/internal/logger"
	"github.com/eventdesk/console/internal/session"
	"github.com/eventdesk/console/internal/validate"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	errNotLoggedIn = errors.New("not signed in; run 'eventdesk login' first")
	errForbidden   = errors.New("your role does not permit this command")
)

// app holds the collaborators of one command invocation
type app struct {
	cfg      *config.Config
	logger   zerolog.Logger
	closer   io.Closer
	store    session.Store
	client   *client.Client
	resolver *auth.Resolver
	cache    *cache.Cache
}

// setup loads configuration and builds the session-aware API client.
// A 401 on any authenticated request ends the stored session.
func setup(ctx context.Context) (*app, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}
	if err := cfg.Override(apiURL, logLevel); err != nil {
		return nil, err
	}

	log, closer, err := logger.New(cfg.ConfigDir, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("open debug log: %w", err)
	}

	a := &app{
		cfg:    cfg,
		logger: log,
		closer: closer,
		store:  session.NewFileStore(cfg.ConfigDir),
	}
	a.client = client.New(cfg.APIURL,
		client.WithTokenSource(func() string { return a.resolver.Token() }),
		client.WithUnauthorizedHandler(func(token string) { a.resolver.Expire(token) }),
		client.WithLogger(log),
		client.WithTimeout(cfg.Timeout),
	)
	a.resolver = auth.NewResolver(a.store, a.client, auth.WithLogger(log))
	a.cache = cache.New(cfg.CacheTTL, log)
	return a, nil
}

// Close releases the cache janitor and the debug log
func (a *app) Close() {
	a.cache.Stop()
	a.closer.Close()
}

// require resolves the stored session and checks it against the route
// the command acts on
func (a *app) require(path string) (auth.State, error) {
	route, ok := guard.Lookup(path)
	if !ok {
		return auth.State{}, fmt.Errorf("unknown route %s", path)
	}
	state := a.resolver.Resolve()
	d := guard.Decide(state, route)
	switch d.Kind {
	case guard.Admit:
		return state, nil
	case guard.Redirect:
		if d.Target == guard.PathLogin {
			return state, errNotLoggedIn
		}
		return state, errForbidden
	}
	return state, fmt.Errorf("session not resolved")
}

// sessionContext ties ctx to the current session
func (a *app) sessionContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return a.resolver.SessionContext(ctx)
}

// fail prints err and returns the exit code for it
func fail(w io.Writer, err error) int {
	var fields validate.FieldErrors
	switch {
	case errors.As(err, &fields):
		fmt.Fprintf(w, "Invalid input: %v\n", err)
		return 1
	case errors.Is(err, errNotLoggedIn), errors.Is(err, errForbidden):
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	case errors.Is(err, client.ErrUnauthorized):
		fmt.Fprintf(w, "Error: %v\nYour session has expired. Run 'eventdesk login' to sign in again.\n", err)
		return 1
	}
	fmt.Fprintf(w, "Error: %v\n", err)
	return 2
}

// invalid reports input rejected before any request was sent
func invalid(w io.Writer, err error) int {
	fmt.Fprintf(w, "Invalid input: %v\n", err)
	return 1
}

// withApp runs fn with a fresh app, returning fn's exit code
func withApp(ctx context.Context, w io.Writer, fn func(a *app) int) int {
	a, err := setup(ctx)
	if err != nil {
		return fail(w, err)
	}
	defer a.Close()
	return fn(a)
}

// withSession runs fn once the stored session is admitted to path.
// ctx passed to fn ends with the session, so a 401 cancels sibling requests.
func withSession(ctx context.Context, w io.Writer, path string, fn func(ctx context.Context, a *app, state auth.State) int) int {
	return withApp(ctx, w, func(a *app) int {
		state, err := a.require(path)
		if err != nil {
			return fail(w, err)
		}
		sctx, cancel := a.sessionContext(ctx)
		defer cancel()
		return fn(sctx, a, state)
	})
}

// run adapts a runX function to a cobra Run with signal handling
func run(fn func(ctx context.Context, w io.Writer, args []string) int) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := fn(ctx, os.Stdout, args)
		if exitCode != 0 {
			cancel()
			os.Exit(exitCode)
		}
	}
}

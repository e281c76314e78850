// ABOUTME: Auth resolver: single source of truth for who is logged in
// ABOUTME: Resolves the stored session once at startup, then changes only via login/logout

package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/eventdesk/console/internal/client"
	"github.com/eventdesk/console/internal/session"
	"github.com/rs/zerolog"
)

// ErrStaleSession is returned when a profile update lands after its session ended
var ErrStaleSession = errors.New("session changed while the request was in flight")

// Status is the authentication status
type Status int

const (
	StatusResolving Status = iota
	StatusAuthenticated
	StatusUnauthenticated
)

func (s Status) String() string {
	switch s {
	case StatusResolving:
		return "resolving"
	case StatusAuthenticated:
		return "authenticated"
	case StatusUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// State is the in-memory authentication state. User is nil unless authenticated.
type State struct {
	Status Status
	User   *User
}

// Generation identifies one session lifetime. It changes on every login and logout.
type Generation uint64

// Authenticator performs the credential exchange
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*client.LoginResult, error)
}

// Resolver owns authentication state backed by a session store
type Resolver struct {
	store  session.Store
	authn  Authenticator
	logger zerolog.Logger
	now    func() time.Time

	once sync.Once

	mu         sync.RWMutex
	state      State
	token      string
	gen        Generation
	sessionCtx context.Context
	endSession context.CancelFunc
}

// Option configures a Resolver
type Option func(*Resolver)

// WithLogger sets the debug logger
func WithLogger(l zerolog.Logger) Option {
	return func(r *Resolver) { r.logger = l }
}

// WithClock overrides the time source used for token expiry checks
func WithClock(now func() time.Time) Option {
	return func(r *Resolver) { r.now = now }
}

// NewResolver creates a resolver in the resolving state
func NewResolver(store session.Store, authn Authenticator, opts ...Option) *Resolver {
	r := &Resolver{
		store:  store,
		authn:  authn,
		logger: zerolog.Nop(),
		now:    time.Now,
		state:  State{Status: StatusResolving},
	}
	r.sessionCtx, r.endSession = context.WithCancel(context.Background())
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve reads the stored session once and settles the initial state.
// Later calls return the current state without touching the store.
func (r *Resolver) Resolve() State {
	r.once.Do(r.resolve)
	return r.State()
}

func (r *Resolver) resolve() {
	user, token := r.loadStored()

	r.mu.Lock()
	defer r.mu.Unlock()
	if user == nil {
		r.state = State{Status: StatusUnauthenticated}
		r.logger.Debug().Msg("no usable session, starting unauthenticated")
		return
	}
	r.token = token
	r.state = State{Status: StatusAuthenticated, User: user}
	r.logger.Debug().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("session restored")
}

// loadStored returns the stored user and token, clearing the store when the
// record cannot be trusted
func (r *Resolver) loadStored() (*User, string) {
	rec, err := r.store.Load()
	if errors.Is(err, session.ErrCorrupt) {
		r.discard("unreadable session record")
		return nil, ""
	}
	if err != nil {
		r.logger.Warn().Err(err).Msg("could not read session store")
		return nil, ""
	}
	if rec == nil {
		return nil, ""
	}

	user, err := decodeUser(rec.User)
	if err != nil {
		r.discard(err.Error())
		return nil, ""
	}
	if exp, ok := session.TokenExpiry(rec.Token); ok && !exp.After(r.now()) {
		r.discard("token expired")
		return nil, ""
	}
	return user, rec.Token
}

func (r *Resolver) discard(reason string) {
	r.logger.Info().Str("reason", reason).Msg("discarding stored session")
	if err := r.store.Clear(); err != nil {
		r.logger.Warn().Err(err).Msg("could not clear session store")
	}
}

// Login exchanges credentials and persists the new session.
// On failure neither the store nor the in-memory state changes.
func (r *Resolver) Login(ctx context.Context, identifier, secret string) (*User, error) {
	r.Resolve()

	res, err := r.authn.Login(ctx, identifier, secret)
	if err != nil {
		return nil, err
	}
	user, err := UserFromAdmin(res.Admin)
	if err != nil {
		return nil, fmt.Errorf("login rejected: %w", err)
	}
	raw, err := encodeUser(user)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.store.Save(session.Record{Token: res.AccessToken, User: raw}); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	r.rotate()
	r.token = res.AccessToken
	r.state = State{Status: StatusAuthenticated, User: user}
	r.logger.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("logged in")

	out := *user
	return &out, nil
}

// Logout clears the session. It always succeeds and is idempotent.
func (r *Resolver) Logout() {
	r.Resolve()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.clear()
}

// Expire logs out because the server rejected token. A token from a session
// that already ended is ignored so a late 401 cannot end a newer session.
func (r *Resolver) Expire(token string) bool {
	r.Resolve()

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state.Status != StatusAuthenticated || token != r.token {
		r.logger.Debug().Msg("ignoring 401 for an ended session")
		return false
	}
	r.clear()
	return true
}

// clear drops the stored and in-memory session. Caller holds mu.
func (r *Resolver) clear() {
	if err := r.store.Clear(); err != nil {
		r.logger.Warn().Err(err).Msg("could not clear session store")
	}
	if r.state.Status == StatusAuthenticated {
		r.logger.Info().Str("user_id", r.state.User.ID).Msg("logged out")
	}
	r.rotate()
	r.token = ""
	r.state = State{Status: StatusUnauthenticated}
}

// ReplaceUser installs the server's canonical record for the current user.
// The update is rejected if the session changed since gen was taken.
func (r *Resolver) ReplaceUser(gen Generation, admin client.Admin) (*User, error) {
	user, err := UserFromAdmin(admin)
	if err != nil {
		return nil, err
	}
	raw, err := encodeUser(user)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if gen != r.gen || r.state.Status != StatusAuthenticated {
		return nil, ErrStaleSession
	}
	if err := r.store.Save(session.Record{Token: r.token, User: raw}); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	r.state = State{Status: StatusAuthenticated, User: user}

	out := *user
	return &out, nil
}

// rotate ends the current session lifetime. Caller holds mu.
func (r *Resolver) rotate() {
	r.endSession()
	r.gen++
	r.sessionCtx, r.endSession = context.WithCancel(context.Background())
}

// State returns a snapshot of the authentication state
func (r *Resolver) State() State {
	r.mu.RLock()
	defer r.mu.RUnlock()
	st := r.state
	if st.User != nil {
		u := *st.User
		st.User = &u
	}
	return st
}

// CurrentUser returns the logged-in user or nil
func (r *Resolver) CurrentUser() *User {
	return r.State().User
}

// Token returns the bearer token of the current session, empty when logged out
func (r *Resolver) Token() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.token
}

// Generation returns the current session generation
func (r *Resolver) Generation() Generation {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.gen
}

// SessionContext derives a context that is also cancelled when the current
// session ends, so requests issued under it die with a logout.
func (r *Resolver) SessionContext(parent context.Context) (context.Context, context.CancelFunc) {
	r.mu.RLock()
	sctx := r.sessionCtx
	r.mu.RUnlock()

	ctx, cancel := context.WithCancel(parent)
	stop := context.AfterFunc(sctx, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

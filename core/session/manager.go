package session

import (
	"context"
	"sync"
	"time"

	"github.com/jogaaurora/aurora/core"
	"github.com/jogaaurora/aurora/core/user"
)

type State int

const (
	Booting State = iota
	CheckingAuth
	Authenticated
	Anonymous
)

func (s State) String() string {
	switch s {
	case Booting:
		return "booting"
	case CheckingAuth:
		return "checking-auth"
	case Authenticated:
		return "authenticated"
	default:
		return "anonymous"
	}
}

const (
	LoginPath = "/login"
	HomePath  = "/"

	DefaultHealthRetries = 6
	DefaultHealthDelay   = time.Second
	// maxBackoffFactor caps the linear backoff at 5 times the base delay.
	maxBackoffFactor = 5
)

type (
	Authenticator interface {
		Login(ctx context.Context, creds user.Credentials) (user.User, error)
		Logout(ctx context.Context) error
		Me(ctx context.Context) (user.User, error)
	}

	HealthChecker interface {
		Healthy(ctx context.Context) bool
	}

	HealthOptions struct {
		Retries int
		Delay   time.Duration
	}

	// SleepFunc waits for d or until ctx is done.
	SleepFunc func(ctx context.Context, d time.Duration) error

	Deps struct {
		Users    Authenticator
		Health   HealthChecker
		Logger   core.Logger
		Navigate func(path string)
		Sleep    SleepFunc
		HealthOptions
	}
)

// Manager owns the session lifecycle: booting -> checking-auth -> {authenticated, anonymous}.
type Manager struct {
	users    Authenticator
	health   HealthChecker
	logger   core.Logger
	navigate func(path string)
	sleep    SleepFunc
	healthOp HealthOptions

	mu          sync.RWMutex
	state       State
	usr         *user.User
	subscribers map[int]func(State)
	nextSubID   int
}

func NewManager(deps Deps) *Manager {
	m := &Manager{
		users:       deps.Users,
		health:      deps.Health,
		logger:      deps.Logger,
		navigate:    deps.Navigate,
		sleep:       deps.Sleep,
		healthOp:    deps.HealthOptions,
		state:       Booting,
		subscribers: make(map[int]func(State)),
	}
	if m.navigate == nil {
		m.navigate = func(string) {}
	}
	if m.sleep == nil {
		m.sleep = sleepCtx
	}
	return m
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// User returns the logged in user, if any.
func (m *Manager) User() (user.User, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.usr == nil {
		return user.User{}, false
	}
	return *m.usr, true
}

func (m *Manager) IsAuthenticated() bool {
	return m.State() == Authenticated
}

// Subscribe registers fn to be called on every state change. The returned func unregisters it.
func (m *Manager) Subscribe(fn func(State)) (unsubscribe func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextSubID
	m.nextSubID++
	m.subscribers[id] = fn
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.subscribers, id)
	}
}

func (m *Manager) setState(state State, usr *user.User) {
	m.mu.Lock()
	changed := m.state != state
	m.state = state
	m.usr = usr
	subs := make([]func(State), 0, len(m.subscribers))
	for _, fn := range m.subscribers {
		subs = append(subs, fn)
	}
	m.mu.Unlock()

	if changed {
		for _, fn := range subs {
			fn(state)
		}
	}
}

// WaitUntilHealthy polls the health check up to Retries times, sleeping Delay*min(1+attempt, 5)
// between attempts. It gives up silently after the last attempt and reports whether the backend
// answered.
func (m *Manager) WaitUntilHealthy(ctx context.Context, opts HealthOptions) bool {
	if opts.Retries <= 0 {
		opts.Retries = DefaultHealthRetries
	}
	if opts.Delay <= 0 {
		opts.Delay = DefaultHealthDelay
	}
	for attempt := 0; attempt < opts.Retries; attempt++ {
		if m.health.Healthy(ctx) {
			return true
		}
		if attempt == opts.Retries-1 {
			break
		}
		factor := 1 + attempt
		if factor > maxBackoffFactor {
			factor = maxBackoffFactor
		}
		if err := m.sleep(ctx, opts.Delay*time.Duration(factor)); err != nil {
			return false
		}
	}
	m.debug("backend not healthy, giving up", map[string]interface{}{"retries": opts.Retries})
	return false
}

// Bootstrap waits for the backend then resolves the current identity from the session cookie.
// Any failure leaves the session anonymous.
func (m *Manager) Bootstrap(ctx context.Context) State {
	m.setState(Booting, nil)
	m.WaitUntilHealthy(ctx, m.healthOp)

	m.setState(CheckingAuth, nil)
	usr, err := m.users.Me(ctx)
	if err != nil {
		m.debug("no active session", err)
		m.setState(Anonymous, nil)
		return Anonymous
	}
	m.setState(Authenticated, &usr)
	return Authenticated
}

// Login never panics nor returns anything but a *LoginError on failure.
func (m *Manager) Login(ctx context.Context, username, password string) (user.User, error) {
	usr, err := m.users.Login(ctx, user.Credentials{Username: username, Password: password})
	if err != nil {
		m.setState(Anonymous, nil)
		return user.User{}, newLoginError(err)
	}
	m.setState(Authenticated, &usr)
	return usr, nil
}

// Logout invalidates the server session on a best-effort basis, then always clears the local one.
func (m *Manager) Logout(ctx context.Context) {
	if err := m.users.Logout(ctx); err != nil {
		m.debug("logout failed", err)
	}
	m.setState(Anonymous, nil)
	m.navigate(LoginPath)
}

// Invalidate handles the HTTP layer's unauthorized callback.
func (m *Manager) Invalidate() {
	if m.State() != Authenticated {
		return
	}
	m.setState(Anonymous, nil)
	m.navigate(LoginPath)
}

func (m *Manager) debug(msg string, args ...interface{}) {
	if m.logger != nil && m.logger.IsDebug() {
		m.logger.Debug(msg, args...)
	}
}

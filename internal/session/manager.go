package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"inkhub/internal/logging"

	"github.com/golang-jwt/jwt/v5"
)

const (
	DefaultLookAhead       = 10 * time.Minute
	DefaultRefreshInterval = 25 * time.Minute
)

// ErrUnauthenticated means there is no usable session; the caller must log in.
var ErrUnauthenticated = errors.New("not authenticated")

// State is the client-observed token lifecycle.
type State int

const (
	Absent State = iota
	Valid
	NearExpiry
	Expired
)

func (s State) String() string {
	switch s {
	case Absent:
		return "absent"
	case Valid:
		return "valid"
	case NearExpiry:
		return "near-expiry"
	case Expired:
		return "expired"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Refresher talks to the server. It is implemented by client.Client.
type Refresher interface {
	Login(ctx context.Context, password string) (string, error)
	Refresh(ctx context.Context, token string) (string, error)
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithLookAhead sets how close to expiry a token must be before Authorize refreshes it.
func WithLookAhead(d time.Duration) Option {
	return func(m *Manager) { m.lookAhead = d }
}

// WithRefreshInterval sets the period of the Run loop.
func WithRefreshInterval(d time.Duration) Option {
	return func(m *Manager) { m.interval = d }
}

// Manager is the single source of truth for the client's token.
type Manager struct {
	store     Store
	refresher Refresher
	now       func() time.Time
	lookAhead time.Duration
	interval  time.Duration

	// mu serializes token transitions so a refresh and a logout cannot interleave.
	mu sync.Mutex

	subMu     sync.Mutex
	subs      map[int]chan State
	nextSub   int
	lastState State
}

func NewManager(store Store, refresher Refresher, opts ...Option) *Manager {
	m := &Manager{
		store:     store,
		refresher: refresher,
		now:       time.Now,
		lookAhead: DefaultLookAhead,
		interval:  DefaultRefreshInterval,
		subs:      make(map[int]chan State),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.lastState = m.State()
	return m
}

// tokenExpiry reads exp without verifying the signature; only the server can do that.
func tokenExpiry(token string) (time.Time, error) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, err
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, errors.New("token has no expiry")
	}
	return claims.ExpiresAt.Time, nil
}

func (m *Manager) stateOf(token string) State {
	if token == "" {
		return Absent
	}
	exp, err := tokenExpiry(token)
	if err != nil {
		return Expired
	}
	remaining := exp.Sub(m.now())
	switch {
	case remaining <= 0:
		return Expired
	case remaining <= m.lookAhead:
		return NearExpiry
	default:
		return Valid
	}
}

func (m *Manager) load() string {
	token, err := m.store.Load()
	if err != nil {
		logging.Log.Warnf("session: failed to load token: %v", err)
		return ""
	}
	return token
}

// State reports the lifecycle state of the stored token.
func (m *Manager) State() State {
	return m.stateOf(m.load())
}

// IsAuthenticated reports whether a token is present and not yet expired.
func (m *Manager) IsAuthenticated() bool {
	s := m.State()
	return s == Valid || s == NearExpiry
}

// Token returns the stored token as is.
func (m *Manager) Token() string {
	return m.load()
}

// Authorize is the gate in front of every protected call. It never contacts
// the server unless the token is close to expiry.
func (m *Manager) Authorize(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	token := m.load()
	switch m.stateOf(token) {
	case Absent:
		return "", ErrUnauthenticated
	case Expired:
		m.clearLocked("token expired or malformed")
		return "", ErrUnauthenticated
	case NearExpiry:
		fresh, err := m.refreshLocked(ctx, token)
		if err != nil {
			if isCancellation(ctx, err) {
				return "", err
			}
			return "", ErrUnauthenticated
		}
		return fresh, nil
	default:
		return token, nil
	}
}

// Login exchanges the password for a token and stores it.
func (m *Manager) Login(ctx context.Context, password string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	token, err := m.refresher.Login(ctx, password)
	if err != nil {
		return err
	}
	if err := m.store.Save(token); err != nil {
		return err
	}
	m.notify()
	return nil
}

// Logout discards the stored token.
func (m *Manager) Logout() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Clear(); err != nil {
		return err
	}
	m.notify()
	return nil
}

// Refresh renews the stored token now. Any failure other than ctx being
// cancelled ends the session.
func (m *Manager) Refresh(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	token := m.load()
	if s := m.stateOf(token); s == Absent || s == Expired {
		if s == Expired {
			m.clearLocked("token expired or malformed")
		}
		return ErrUnauthenticated
	}
	_, err := m.refreshLocked(ctx, token)
	return err
}

func (m *Manager) refreshLocked(ctx context.Context, token string) (string, error) {
	fresh, err := m.refresher.Refresh(ctx, token)
	if err == nil {
		err = m.store.Save(fresh)
	}
	if err != nil {
		// The caller going away is not a verdict on the token.
		if isCancellation(ctx, err) {
			return "", err
		}
		m.clearLocked(fmt.Sprintf("refresh failed: %v", err))
		return "", err
	}
	m.notify()
	return fresh, nil
}

func isCancellation(ctx context.Context, err error) bool {
	return ctx.Err() != nil && errors.Is(err, ctx.Err())
}

func (m *Manager) clearLocked(reason string) {
	logging.Log.Warnf("session: signing out, %s", reason)
	if err := m.store.Clear(); err != nil {
		logging.Log.Errorf("session: failed to clear token: %v", err)
	}
	m.notify()
}

// Run refreshes the session every interval until ctx is done. Refresh failures
// are logged and end the session; cancelling ctx does not.
func (m *Manager) Run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if m.State() == Absent {
				continue
			}
			if err := m.Refresh(ctx); err != nil {
				logging.Log.Warnf("session: background refresh failed: %v", err)
			}
		}
	}
}

// Subscribe returns a channel receiving each state change and a func that
// unsubscribes. Slow readers miss intermediate states.
func (m *Manager) Subscribe() (<-chan State, func()) {
	m.subMu.Lock()
	defer m.subMu.Unlock()

	id := m.nextSub
	m.nextSub++
	ch := make(chan State, 1)
	m.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			m.subMu.Lock()
			defer m.subMu.Unlock()
			delete(m.subs, id)
			close(ch)
		})
	}
}

// notify publishes the current state when it differs from the last one.
func (m *Manager) notify() {
	state := m.State()

	m.subMu.Lock()
	defer m.subMu.Unlock()

	if state == m.lastState {
		return
	}
	m.lastState = state
	for _, ch := range m.subs {
		// Replace a pending unread state with the newest one.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- state:
		default:
		}
	}
}

package session

import (
	"context"
	"sync"

	"github.com/ekodina/vetdesk/internal/client/models"
	"github.com/ekodina/vetdesk/internal/client/tokenstore"
	"github.com/ekodina/vetdesk/internal/logging"
	"github.com/google/uuid"
)

// Manager drives the authentication state machine of one kind:
//
//	Initializing → {Authenticated, Unauthenticated}   on boot
//	Unauthenticated → Authenticated                   via Login
//	Authenticated → Unauthenticated                   via Logout or failed revalidation
//
// Token and principal are set and cleared together under one mutex; outside
// the boot window a session is never observed with one but not the other.
//
// Every lifecycle boundary (successful login, teardown) mints a new epoch.
// Async completions capture the epoch they started under and write state only
// if it is still current, so a completion that lands after a logout cannot
// resurrect the torn-down session.
type Manager struct {
	kind  Kind
	store tokenstore.Repository
	log   logging.Logger

	mu           sync.Mutex
	token        string
	principal    models.Principal
	status       Status
	lastError    string
	epoch        uuid.UUID
	initialized  bool
	onTransition func(from, to Status)
}

// NewManager builds a manager in StatusInitializing. Initialize must be
// called once at boot before the kind's login surface becomes reachable.
func NewManager(kind Kind, store tokenstore.Repository, log logging.Logger) *Manager {
	return &Manager{
		kind:   kind,
		store:  store,
		log:    log.With("kind", kind.Name),
		status: StatusInitializing,
		epoch:  uuid.New(),
	}
}

// OnTransition registers a hook fired after every status change, outside the
// state lock. The shell uses it to drive the scoped-animal context off the
// clinic session. Must be set before Initialize.
func (m *Manager) OnTransition(fn func(from, to Status)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onTransition = fn
}

// Initialize restores the session from the stored token, if any. With no
// stored token it settles to Unauthenticated without touching the network.
// With one, it validates the token via a profile fetch; any failure — network
// error, 401, malformed body — clears the stored token and settles to
// Unauthenticated. Initialize never returns an error: every outcome is a
// terminal session state, not an exception. Repeat calls are no-ops.
func (m *Manager) Initialize(ctx context.Context) {
	m.mu.Lock()
	if m.initialized {
		m.mu.Unlock()
		return
	}
	m.initialized = true
	epoch := m.epoch
	m.mu.Unlock()

	token, err := m.store.Get(ctx, m.kind.StorageKey)
	if err != nil {
		m.log.Warn(ctx, "failed to read stored token", "error", err)
		m.settle(ctx, epoch, "", nil, "")
		return
	}
	if token == "" {
		m.settle(ctx, epoch, "", nil, "")
		return
	}

	principal, err := m.kind.Endpoints.Profile(ctx, token)
	if err != nil {
		m.log.Info(ctx, "stored token rejected, clearing session", "error", err)
		if !m.stillCurrent(epoch) {
			return
		}
		if derr := m.store.Delete(ctx, m.kind.StorageKey); derr != nil {
			m.log.Error(ctx, "failed to clear stored token", "error", derr)
		}
		m.settle(ctx, epoch, "", nil, userMessage(err))
		return
	}

	m.settle(ctx, epoch, token, principal, "")
}

// Login exchanges credentials for a token and principal in one response.
// On success the token is persisted and the session becomes Authenticated.
// On failure lastError is set to a user-presentable message, a typed
// *AuthError is returned, and token/principal stay untouched. Concurrent
// calls are not coalesced; the caller disables re-entry while one is in
// flight.
func (m *Manager) Login(ctx context.Context, identifier, secret string) (models.Principal, error) {
	token, principal, err := m.kind.Endpoints.Login(ctx, identifier, secret)
	if err != nil {
		msg := userMessage(err)
		m.mu.Lock()
		m.lastError = msg
		m.mu.Unlock()
		return nil, &AuthError{Message: msg, Err: err}
	}

	if err := m.store.Set(ctx, m.kind.StorageKey, token); err != nil {
		// The session is still valid for this run; it just won't survive a
		// restart.
		m.log.Error(ctx, "failed to persist token", "error", err)
	}

	m.mu.Lock()
	from := m.status
	m.token = token
	m.principal = principal
	m.status = StatusAuthenticated
	m.lastError = ""
	m.epoch = uuid.New()
	hook := m.onTransition
	m.mu.Unlock()

	if hook != nil && from != StatusAuthenticated {
		hook(from, StatusAuthenticated)
	}
	return principal, nil
}

// Logout notifies the backend, best effort, then performs local teardown.
// A notification failure is logged and swallowed; it never blocks teardown.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	token := m.token
	m.mu.Unlock()

	if token != "" {
		if err := m.kind.Endpoints.Logout(ctx, token); err != nil {
			m.log.Warn(ctx, "logout notification failed", "error", err)
		}
	}
	m.teardown(ctx)
}

// UpdatePrincipal merges a partial profile update into the in-memory
// principal without touching the token. Used after profile edits so the UI
// reflects the change without a re-fetch. A no-op when unauthenticated.
func (m *Manager) UpdatePrincipal(patch models.ProfilePatch) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.principal == nil {
		return
	}
	m.principal = m.principal.Merge(patch)
}

// Status returns the current session status.
func (m *Manager) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

// Principal returns the authenticated identity, or nil.
func (m *Manager) Principal() models.Principal {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.principal
}

// Token returns the active bearer token, or "". Callers pass it explicitly
// into each request; there is no shared default credential to read instead.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// LastError returns the last login/validation failure message, or "".
func (m *Manager) LastError() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastError
}

// KindName returns the kind this manager was built for.
func (m *Manager) KindName() string { return m.kind.Name }

// teardown clears the stored token, the in-memory pair and mints a new
// epoch, invalidating every in-flight completion. Unconditional: a logout
// always wins over whatever is still in flight.
func (m *Manager) teardown(ctx context.Context) {
	if err := m.store.Delete(ctx, m.kind.StorageKey); err != nil {
		m.log.Error(ctx, "failed to clear stored token", "error", err)
	}

	m.mu.Lock()
	from := m.status
	m.token = ""
	m.principal = nil
	m.status = StatusUnauthenticated
	m.epoch = uuid.New()
	hook := m.onTransition
	m.mu.Unlock()

	if hook != nil && from != StatusUnauthenticated {
		hook(from, StatusUnauthenticated)
	}
}

// settle writes the outcome of an async lifecycle operation, but only if the
// captured epoch is still current. Stale completions are discarded.
func (m *Manager) settle(ctx context.Context, epoch uuid.UUID, token string, principal models.Principal, lastError string) {
	m.mu.Lock()
	if m.epoch != epoch {
		m.mu.Unlock()
		m.log.Info(ctx, "discarding stale session completion")
		return
	}
	from := m.status
	m.token = token
	m.principal = principal
	m.lastError = lastError
	if token != "" && principal != nil {
		m.status = StatusAuthenticated
	} else {
		m.status = StatusUnauthenticated
	}
	to := m.status
	hook := m.onTransition
	m.mu.Unlock()

	if hook != nil && from != to {
		hook(from, to)
	}
}

// stillCurrent reports whether the captured epoch is still the active one.
func (m *Manager) stillCurrent(epoch uuid.UUID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.epoch == epoch
}

package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/rechat/internal/logging"
	"github.com/aretw0/rechat/pkg/domain"
	"github.com/aretw0/rechat/pkg/ports"
)

// DefaultLockTTL bounds how long a distributed lock survives a crashed holder.
const DefaultLockTTL = 30 * time.Second

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager runs turns against persisted sessions, one turn at a time per session.
// Local mutexes are reference counted so idle sessions do not leak entries.
type Manager struct {
	store  ports.StateStore
	engine ports.Interpreter

	mu    sync.Mutex            // guards locks
	locks map[string]*lockEntry // active per-session locks

	locker  ports.DistributedLocker // optional, for multiple replicas
	lockTTL time.Duration
	logger  *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL overrides DefaultLockTTL.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.lockTTL = ttl
		}
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a Session Manager that interprets lines with engine and
// persists the results in store.
func NewManager(store ports.StateStore, engine ports.Interpreter, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		engine:  engine,
		locks:   make(map[string]*lockEntry),
		lockTTL: DefaultLockTTL,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(sessionID) after unlocking.
func (m *Manager) acquire(sessionID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		entry = &lockEntry{}
		m.locks[sessionID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, sessionID)
	}
}

// Turn interprets line for sessionID: it loads the stored state (a missing
// session counts as new), runs the engine and stores the successor.
func (m *Manager) Turn(ctx context.Context, sessionID, line string) (domain.Action, domain.ConversationState, error) {
	var (
		act  domain.Action
		next domain.ConversationState
	)
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		var prev domain.Record
		state, err := m.store.Load(ctx, sessionID)
		switch {
		case err == nil:
			prev = state.Record()
		case errors.Is(err, domain.ErrSessionNotFound):
			m.logger.Debug("new session", "session_id", sessionID)
		default:
			return fmt.Errorf("failed to load session: %w", err)
		}

		var rec domain.Record
		act, rec = m.engine.HandleTurn(ctx, prev, line)
		next = domain.StateFromRecord(rec)

		if err := m.store.Save(ctx, sessionID, next); err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, domain.ConversationState{}, err
	}

	m.logger.Debug("turn", "session_id", sessionID, "action", act.Kind(), "state", next)
	return act, next, nil
}

// Load retrieves an existing session from the store.
func (m *Manager) Load(ctx context.Context, sessionID string) (domain.ConversationState, error) {
	var state domain.ConversationState
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		var err error
		state, err = m.store.Load(ctx, sessionID)
		return err
	})
	return state, err
}

// Save persists the session state.
func (m *Manager) Save(ctx context.Context, sessionID string, state domain.ConversationState) error {
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		return m.store.Save(ctx, sessionID, state)
	})
}

// Delete removes the session from the store.
func (m *Manager) Delete(ctx context.Context, sessionID string) error {
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		return m.store.Delete(ctx, sessionID)
	})
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// WithLock executes fn while holding the local lock and, if configured, the
// distributed lock for the session.
func (m *Manager) WithLock(ctx context.Context, sessionID string, fn func(context.Context) error) error {
	entry := m.acquire(sessionID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(sessionID)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, sessionID, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"session_id", sessionID,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}

package study

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/taiwoajasa245/verbum-dei-api/internal/commentary"
	"github.com/taiwoajasa245/verbum-dei-api/internal/library"
	"github.com/taiwoajasa245/verbum-dei-api/internal/oracle"
	"github.com/taiwoajasa245/verbum-dei-api/internal/search"
	"github.com/taiwoajasa245/verbum-dei-api/internal/storage"
	"github.com/taiwoajasa245/verbum-dei-api/pkg/util"
)

var ErrInvalidToken = errors.New("invalid or expired session token")

type ManagerConfig struct {
	Secret             string
	TTL                time.Duration
	OracleTimeout      time.Duration
	DefaultTranslation string
}

// Manager issues session tokens and keeps the live sessions in memory. A
// session's library lives in the shared store under "sessions/{id}", so an
// evicted session is restored on its next request.
type Manager struct {
	store    storage.Store
	oracle   oracle.Oracle
	searcher *search.Service
	cfg      ManagerConfig
	logger   *zap.Logger
	now      func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager(store storage.Store, o oracle.Oracle, cfg ManagerConfig, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		store:    store,
		oracle:   o,
		searcher: search.NewService(o, cfg.DefaultTranslation, logger),
		cfg:      cfg,
		logger:   logger.Named("sessions"),
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// Create starts a new session and returns it with its signed token.
func (m *Manager) Create(ctx context.Context) (*Session, SessionToken, error) {
	id := uuid.NewString()
	token, err := util.GenerateJWT(id, m.cfg.Secret, m.cfg.TTL)
	if err != nil {
		return nil, SessionToken{}, fmt.Errorf("failed to sign session token: %w", err)
	}

	s := m.session(ctx, id)
	m.logger.Info("session created", zap.String("session_id", id))
	return s, SessionToken{
		Token:     token,
		SessionID: id,
		ExpiresAt: m.now().Add(m.cfg.TTL).UTC().Format(time.RFC3339),
	}, nil
}

// Resolve validates token and returns its session, reopening it if it was evicted.
func (m *Manager) Resolve(ctx context.Context, token string) (*Session, error) {
	claims, err := util.ValidateJWT(token, m.cfg.Secret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return m.session(ctx, claims.SessionID), nil
}

// Acquire is Resolve for a request: the session is marked active until the
// caller calls end, and Sweep leaves it alone meanwhile.
func (m *Manager) Acquire(ctx context.Context, token string) (*Session, error) {
	claims, err := util.ValidateJWT(token, m.cfg.Secret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.sessionLocked(ctx, claims.SessionID)
	s.begin()
	return s, nil
}

func (m *Manager) session(ctx context.Context, id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessionLocked(ctx, id)
}

func (m *Manager) sessionLocked(ctx context.Context, id string) *Session {
	if s, ok := m.sessions[id]; ok {
		return s
	}

	lib := library.Open(ctx, storage.Prefixed(m.store, "sessions/"+id), m.logger)
	orc := commentary.New(m.oracle,
		commentary.WithTimeout(m.cfg.OracleTimeout),
		commentary.WithLogger(m.logger))
	s := NewSession(id, lib, m.searcher, orc, m.logger)
	s.now = m.now
	s.lastSeen = m.now()
	m.sessions[id] = s
	return s
}

// Len reports how many sessions are held in memory.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Sweep drops sessions idle for longer than idle. Sessions with a request in
// progress or commentary still loading are kept. Persisted records stay.
func (m *Manager) Sweep(idle time.Duration) int {
	cutoff := m.now().Add(-idle)

	m.mu.Lock()
	defer m.mu.Unlock()

	evicted := 0
	for id, s := range m.sessions {
		if s.LastSeen().Before(cutoff) && !s.busy() {
			delete(m.sessions, id)
			evicted++
		}
	}
	return evicted
}

// StartJanitor sweeps idle sessions every interval until ctx is cancelled.
func (m *Manager) StartJanitor(ctx context.Context, interval, idle time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	m.logger.Info("session janitor started", zap.Duration("interval", interval), zap.Duration("idle", idle))

	for {
		select {
		case <-ctx.Done():
			m.logger.Info("session janitor stopped")
			return
		case <-ticker.C:
			if n := m.Sweep(idle); n > 0 {
				m.logger.Info("evicted idle sessions", zap.Int("count", n), zap.Int("remaining", m.Len()))
			}
		}
	}
}

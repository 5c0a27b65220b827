package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/portfolio-backend/internal/auth"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/github"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/metrics"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/projects/repository"
)

// DefaultIdleTTL is how long an unused session is kept in memory.
const DefaultIdleTTL = 30 * time.Minute

// DefaultLoadTimeout bounds the shared first load of a session.
const DefaultLoadTimeout = 30 * time.Second

type session struct {
	coord    *Coordinator
	lastUsed time.Time
	ready    chan struct{}
	err      error
}

// Registry keeps one Coordinator per owner for the server.
type Registry struct {
	store   repository.Store
	source  github.Source
	logger  *zap.Logger
	idleTTL time.Duration
	now     func() time.Time

	loadTimeout time.Duration

	mu       sync.Mutex
	sessions map[string]*session
}

// RegistryOption customizes a Registry.
type RegistryOption func(*Registry)

func WithRegistrySource(src github.Source) RegistryOption {
	return func(r *Registry) { r.source = src }
}

func WithRegistryLogger(l *zap.Logger) RegistryOption {
	return func(r *Registry) { r.logger = l }
}

// WithIdleTTL sets the idle eviction window. Non-positive keeps the default.
func WithIdleTTL(ttl time.Duration) RegistryOption {
	return func(r *Registry) {
		if ttl > 0 {
			r.idleTTL = ttl
		}
	}
}

// WithLoadTimeout bounds each session's first load. Non-positive keeps the default.
func WithLoadTimeout(d time.Duration) RegistryOption {
	return func(r *Registry) {
		if d > 0 {
			r.loadTimeout = d
		}
	}
}

func WithRegistryClock(now func() time.Time) RegistryOption {
	return func(r *Registry) { r.now = now }
}

// NewRegistry creates an empty registry.
func NewRegistry(store repository.Store, opts ...RegistryOption) *Registry {
	r := &Registry{
		store:    store,
		logger:   zap.NewNop(),
		idleTTL:  DefaultIdleTTL,
		now:      time.Now,
		sessions: make(map[string]*session),

		loadTimeout: DefaultLoadTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Session returns the owner's coordinator, creating and loading it on first
// use. Concurrent first calls share one load. The load is detached from the
// caller's cancellation; each caller only stops waiting when its own ctx ends.
func (r *Registry) Session(ctx context.Context, id auth.Identity) (*Coordinator, error) {
	if id.UserID == "" {
		return nil, ErrNoSession
	}

	r.mu.Lock()
	s, ok := r.sessions[id.UserID]
	if ok {
		s.lastUsed = r.now()
		r.mu.Unlock()
		return r.wait(ctx, s)
	}

	s = &session{
		coord: NewCoordinator(r.store,
			WithSource(r.source),
			WithLogger(r.logger),
			WithClock(r.now),
		),
		lastUsed: r.now(),
		ready:    make(chan struct{}),
	}
	r.sessions[id.UserID] = s
	r.mu.Unlock()

	go r.load(context.WithoutCancel(ctx), id, s)
	return r.wait(ctx, s)
}

func (r *Registry) load(ctx context.Context, id auth.Identity, s *session) {
	ctx, cancel := context.WithTimeout(ctx, r.loadTimeout)
	defer cancel()

	err := s.coord.Load(ctx, id)
	if err != nil {
		r.mu.Lock()
		if r.sessions[id.UserID] == s {
			delete(r.sessions, id.UserID)
		}
		r.mu.Unlock()
	} else {
		metrics.ActiveSessions.Inc()
		r.logger.Info("session started", zap.String("owner.id", id.UserID))
	}
	s.err = err
	close(s.ready)
}

func (r *Registry) wait(ctx context.Context, s *session) (*Coordinator, error) {
	select {
	case <-s.ready:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.coord, nil
}

// Peek returns the live coordinator without loading or touching it.
func (r *Registry) Peek(ownerID string) (*Coordinator, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[ownerID]
	if !ok || !isReady(s) || s.err != nil {
		return nil, false
	}
	return s.coord, true
}

// End clears and drops the owner's session. It reports whether one existed.
func (r *Registry) End(ownerID string) bool {
	r.mu.Lock()
	s, ok := r.sessions[ownerID]
	if ok && isReady(s) {
		delete(r.sessions, ownerID)
	}
	r.mu.Unlock()

	if !ok || !isReady(s) {
		return false
	}
	s.coord.Clear()
	if s.err == nil {
		metrics.ActiveSessions.Dec()
	}
	return true
}

// Drop ends the owner's session only if it is still served by c, so a
// session reloaded by another request is left alone.
func (r *Registry) Drop(ownerID string, c *Coordinator) bool {
	r.mu.Lock()
	s, ok := r.sessions[ownerID]
	ok = ok && isReady(s) && s.coord == c
	r.mu.Unlock()
	if !ok {
		return false
	}
	return r.End(ownerID)
}

// Invalidate drops the owner's session after its list was replaced outside
// the coordinator. The next Session call reloads from the store.
func (r *Registry) Invalidate(ownerID string) {
	if r.End(ownerID) {
		r.logger.Debug("session invalidated", zap.String("owner.id", ownerID))
	}
}

// Sweep ends every session idle for longer than the TTL and returns how
// many were removed.
func (r *Registry) Sweep() int {
	now := r.now()
	var idle []string

	r.mu.Lock()
	for owner, s := range r.sessions {
		if isReady(s) && now.Sub(s.lastUsed) > r.idleTTL {
			idle = append(idle, owner)
		}
	}
	r.mu.Unlock()

	removed := 0
	for _, owner := range idle {
		if r.End(owner) {
			removed++
		}
	}
	return removed
}

// Len is the number of sessions held, including ones still loading.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func isReady(s *session) bool {
	select {
	case <-s.ready:
		return true
	default:
		return false
	}
}

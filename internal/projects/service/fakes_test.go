package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/GoSim-25-26J-441/portfolio-backend/internal/github"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/projects/domain"
)

var errDiskFull = errors.New("disk full")

// memStore is an in-memory Store that can fail writes and record overlap.
type memStore struct {
	mu        sync.Mutex
	lists     map[string][]domain.Project
	failWrite bool
	failList  bool
	delay     time.Duration

	// listGate, when set, holds List until closed or ctx ends.
	listGate  chan struct{}
	listCalls atomic.Int32

	inflight   atomic.Int32
	overlapped atomic.Bool
	writes     atomic.Int32
}

func newMemStore() *memStore {
	return &memStore{lists: map[string][]domain.Project{}}
}

func (m *memStore) List(ctx context.Context, owner string) ([]domain.Project, error) {
	m.listCalls.Add(1)
	if m.listGate != nil {
		select {
		case <-m.listGate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failList {
		return nil, errors.New("store offline")
	}
	return domain.Clone(m.lists[owner]), nil
}

func (m *memStore) Replace(_ context.Context, owner string, list []domain.Project) error {
	if m.inflight.Add(1) > 1 {
		m.overlapped.Store(true)
	}
	defer m.inflight.Add(-1)
	m.writes.Add(1)

	if m.delay > 0 {
		time.Sleep(m.delay)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrite {
		return errDiskFull
	}
	m.lists[owner] = domain.Clone(list)
	return nil
}

func (m *memStore) setFailWrite(v bool) {
	m.mu.Lock()
	m.failWrite = v
	m.mu.Unlock()
}

func (m *memStore) stored(owner string) []domain.Project {
	m.mu.Lock()
	defer m.mu.Unlock()
	return domain.Clone(m.lists[owner])
}

// gatedSource returns canned results; calls for a gated username block
// until release is closed.
type gatedSource struct {
	repos   map[string][]github.RepositorySummary
	gate    map[string]chan struct{}
	entered chan string
	calls   atomic.Int32
}

func (s *gatedSource) Repositories(ctx context.Context, username string) ([]github.RepositorySummary, error) {
	s.calls.Add(1)
	if s.entered != nil {
		s.entered <- username
	}
	if g, ok := s.gate[username]; ok {
		select {
		case <-g:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	repos, ok := s.repos[username]
	if !ok {
		return nil, github.ErrNotFound
	}
	return repos, nil
}

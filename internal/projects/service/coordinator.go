// Package service holds the per-owner project session: the in-memory list,
// the mutations that persist it, and the repository import flow.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/portfolio-backend/internal/auth"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/github"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/logging"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/metrics"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/projects/domain"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/projects/filter"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/projects/reconcile"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/projects/repository"
)

// State is the coordinator's activity as seen by callers.
type State string

const (
	StateIdle       State = "Idle"
	StateLoading    State = "Loading"
	StateValidating State = "Validating"
	StatePersisting State = "Persisting"
)

type searchResult struct {
	seq      uint64
	username string
	repos    []github.RepositorySummary
}

// Coordinator is the single source of truth for one owner's project list.
//
// Mutations build the next list from the committed one, persist the whole
// list, and only then swap it in. They are serialized by writeMu, so a
// second mutation waits for the first to finish. Loads take the same lock.
type Coordinator struct {
	store  repository.Store
	source github.Source
	logger *zap.Logger
	now    func() time.Time
	newID  func() string

	writeMu sync.Mutex

	mu       sync.RWMutex
	owner    *auth.Identity
	projects []domain.Project
	state    State

	searchMu   sync.Mutex
	searchSeq  uint64
	searchName string // username of the latest issued search
	searchGen  uint64 // bumped when the session changes
	lastSearch *searchResult
}

// Option customizes a Coordinator.
type Option func(*Coordinator)

// WithSource sets the repository source used by Search. Pass a
// *github.CachedSource to get the freshness window.
func WithSource(src github.Source) Option {
	return func(c *Coordinator) { c.source = src }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Coordinator) { c.logger = l }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) { c.now = now }
}

// WithIDGenerator replaces the id generator used for manual adds.
func WithIDGenerator(fn func() string) Option {
	return func(c *Coordinator) { c.newID = fn }
}

// NewCoordinator returns a coordinator with no session.
func NewCoordinator(store repository.Store, opts ...Option) *Coordinator {
	c := &Coordinator{
		store:  store,
		logger: zap.NewNop(),
		now:    time.Now,
		newID:  func() string { return uuid.NewString() },
		state:  StateIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load starts a session for id and fetches its full list. If the fetch fails
// for the owner already loaded, the previous list is kept; for a different
// owner the session is left empty.
func (c *Coordinator) Load(ctx context.Context, id auth.Identity) error {
	if id.UserID == "" {
		return ErrNoSession
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	c.setState(StateLoading)
	defer c.setState(StateIdle)

	list, err := c.store.List(ctx, id.UserID)
	if err != nil {
		c.mu.Lock()
		if c.owner == nil || c.owner.UserID != id.UserID {
			c.owner = nil
			c.projects = nil
		}
		c.mu.Unlock()
		return fmt.Errorf("load projects: %w", err)
	}

	c.mu.Lock()
	if c.owner == nil || c.owner.UserID != id.UserID {
		c.resetSearch()
	}
	owner := id
	c.owner = &owner
	c.projects = domain.Clone(list)
	c.mu.Unlock()

	c.log(ctx).Info("session loaded", zap.Int("projects", len(list)))
	return nil
}

// Clear ends the session. Nothing is persisted; a pending mutation finishes first.
func (c *Coordinator) Clear() {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	c.mu.Lock()
	c.owner = nil
	c.projects = nil
	c.resetSearch()
	c.mu.Unlock()
}

// Watch follows a session stream: a login loads the owner, a logout clears.
// It returns nil when events is closed.
func (c *Coordinator) Watch(ctx context.Context, events <-chan auth.Event) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !ev.LoggedIn() {
				c.Clear()
				continue
			}
			if err := c.Load(ctx, *ev.Identity); err != nil {
				c.logger.Warn("session load failed",
					zap.String("owner.id", ev.Identity.UserID), zap.Error(err))
			}
		}
	}
}

// Owner returns the session identity.
func (c *Coordinator) Owner() (auth.Identity, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.owner == nil {
		return auth.Identity{}, false
	}
	return *c.owner, true
}

func (c *Coordinator) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Records returns a copy of the committed list.
func (c *Coordinator) Records() []domain.Project {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return domain.Clone(c.projects)
}

// View returns the committed records passing crit, in list order.
func (c *Coordinator) View(crit filter.Criteria) []domain.Project {
	return filter.Apply(c.Records(), crit)
}

// Technologies lists the distinct technologies across the unfiltered list.
func (c *Coordinator) Technologies() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return filter.Technologies(c.projects)
}

// Add validates draft and appends it as a new record.
func (c *Coordinator) Add(ctx context.Context, draft domain.Draft) (domain.Project, error) {
	var added domain.Project
	err := c.mutate(ctx, "add", func(owner string, current []domain.Project) ([]domain.Project, error) {
		if errs := domain.Validate(draft); errs != nil {
			return nil, errs
		}
		added = draft.Normalize().Apply(domain.Project{
			ID:        c.newID(),
			OwnerID:   owner,
			CreatedAt: c.now().UTC(),
		})
		return append(current, added), nil
	})
	if err != nil {
		return domain.Project{}, err
	}
	return added, nil
}

// Edit replaces the record with id in place, keeping its id, owner and
// creation time.
func (c *Coordinator) Edit(ctx context.Context, id string, draft domain.Draft) (domain.Project, error) {
	var edited domain.Project
	err := c.mutate(ctx, "edit", func(_ string, current []domain.Project) ([]domain.Project, error) {
		idx := indexOf(current, id)
		if idx < 0 {
			return nil, domain.ErrNotFound
		}
		if errs := domain.Validate(draft); errs != nil {
			return nil, errs
		}
		edited = draft.Normalize().Apply(current[idx])
		current[idx] = edited
		return current, nil
	})
	if err != nil {
		return domain.Project{}, err
	}
	return edited, nil
}

// Delete removes the record with id, leaving the others in order.
func (c *Coordinator) Delete(ctx context.Context, id string) error {
	return c.mutate(ctx, "delete", func(_ string, current []domain.Project) ([]domain.Project, error) {
		idx := indexOf(current, id)
		if idx < 0 {
			return nil, domain.ErrNotFound
		}
		return append(current[:idx], current[idx+1:]...), nil
	})
}

// Import appends records in one batch and persists the list once.
// Records without an owner are stamped with the session owner.
func (c *Coordinator) Import(ctx context.Context, records []domain.Project) ([]domain.Project, error) {
	var imported []domain.Project
	err := c.mutate(ctx, "import", func(owner string, current []domain.Project) ([]domain.Project, error) {
		seen := make(map[string]struct{}, len(current)+len(records))
		for _, p := range current {
			seen[p.ID] = struct{}{}
		}
		imported = domain.Clone(records)
		for i := range imported {
			if imported[i].OwnerID == "" {
				imported[i].OwnerID = owner
			}
			if _, dup := seen[imported[i].ID]; dup || imported[i].ID == "" {
				return nil, fmt.Errorf("%w: %q", ErrDuplicateID, imported[i].ID)
			}
			seen[imported[i].ID] = struct{}{}
		}
		return append(current, imported...), nil
	})
	if err != nil {
		return nil, err
	}
	metrics.ImportedRecords.Add(float64(len(imported)))
	return domain.Clone(imported), nil
}

// ImportRepositories reconciles summaries against the current list and
// imports the result.
func (c *Coordinator) ImportRepositories(ctx context.Context, summaries []github.RepositorySummary) ([]domain.Project, error) {
	var imported []domain.Project
	err := c.mutate(ctx, "import", func(owner string, current []domain.Project) ([]domain.Project, error) {
		if len(summaries) == 0 {
			return nil, ErrNothingSelected
		}
		imported = reconcile.Reconcile(summaries, owner, current, c.now().UTC())
		return append(current, imported...), nil
	})
	if err != nil {
		return nil, err
	}
	metrics.ImportedRecords.Add(float64(len(imported)))
	return domain.Clone(imported), nil
}

// Search lists username's repositories. A pasted profile URL is reduced to
// its last path segment. When a newer search is issued before this one
// returns for a different username, the result is discarded with
// ErrSearchSuperseded. Overlapping searches for the same username all succeed.
func (c *Coordinator) Search(ctx context.Context, username string) ([]github.RepositorySummary, error) {
	if c.source == nil {
		return nil, ErrImportUnavailable
	}
	if _, ok := c.Owner(); !ok {
		return nil, ErrNoSession
	}
	name, err := github.NormalizeUsername(username)
	if err != nil {
		return nil, err
	}

	c.searchMu.Lock()
	c.searchSeq++
	seq, gen := c.searchSeq, c.searchGen
	c.searchName = name
	c.searchMu.Unlock()

	repos, err := c.source.Repositories(ctx, name)

	c.searchMu.Lock()
	defer c.searchMu.Unlock()
	if c.searchGen != gen || (c.searchSeq != seq && c.searchName != name) {
		return nil, ErrSearchSuperseded
	}
	if err != nil {
		return nil, err
	}
	if c.lastSearch == nil || c.lastSearch.seq < seq {
		c.lastSearch = &searchResult{seq: seq, username: name, repos: repos}
	}
	return append([]github.RepositorySummary(nil), repos...), nil
}

// LastSearch returns the username and results of the last accepted search.
func (c *Coordinator) LastSearch() (string, []github.RepositorySummary, bool) {
	c.searchMu.Lock()
	defer c.searchMu.Unlock()
	if c.lastSearch == nil {
		return "", nil, false
	}
	return c.lastSearch.username, append([]github.RepositorySummary(nil), c.lastSearch.repos...), true
}

// ImportSelected imports the repositories with the given ids from the last
// accepted search. No ids selects every result.
func (c *Coordinator) ImportSelected(ctx context.Context, repoIDs []int64) ([]domain.Project, error) {
	_, repos, ok := c.LastSearch()
	if !ok {
		return nil, ErrNoSearch
	}
	selected := reconcile.Select(repos, repoIDs)
	if len(selected) == 0 {
		return nil, ErrNothingSelected
	}
	return c.ImportRepositories(ctx, selected)
}

// mutate runs one list-replacing write. build receives a private copy of the
// committed list and returns the next one.
func (c *Coordinator) mutate(ctx context.Context, op string, build func(owner string, current []domain.Project) ([]domain.Project, error)) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	c.mu.RLock()
	owner := c.owner
	current := domain.Clone(c.projects)
	c.mu.RUnlock()
	if owner == nil {
		return ErrNoSession
	}

	c.setState(StateValidating)
	defer c.setState(StateIdle)

	next, err := build(owner.UserID, current)
	if err != nil {
		metrics.Mutations.WithLabelValues(op, "rejected").Inc()
		return err
	}

	c.setState(StatePersisting)
	if err := c.store.Replace(ctx, owner.UserID, next); err != nil {
		metrics.Mutations.WithLabelValues(op, "failed").Inc()
		c.log(ctx).Warn("project list write failed", zap.String("op", op), zap.Error(err))
		return fmt.Errorf("%w: %v", domain.ErrStoreWrite, err)
	}

	c.mu.Lock()
	c.projects = next
	c.mu.Unlock()

	metrics.Mutations.WithLabelValues(op, "applied").Inc()
	c.log(ctx).Debug("project list written", zap.String("op", op), zap.Int("projects", len(next)))
	return nil
}

func (c *Coordinator) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

// resetSearch drops search state and invalidates in-flight searches.
func (c *Coordinator) resetSearch() {
	c.searchMu.Lock()
	c.searchSeq++
	c.searchGen++
	c.searchName = ""
	c.lastSearch = nil
	c.searchMu.Unlock()
}

func (c *Coordinator) log(ctx context.Context) *zap.Logger {
	if owner, ok := c.Owner(); ok {
		ctx = logging.WithOwner(ctx, owner.UserID)
	}
	return logging.From(ctx, c.logger)
}

func indexOf(list []domain.Project, id string) int {
	for i, p := range list {
		if p.ID == id {
			return i
		}
	}
	return -1
}

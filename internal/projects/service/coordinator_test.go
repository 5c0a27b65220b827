package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/portfolio-backend/internal/auth"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/github"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/projects/domain"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/projects/filter"
)

var (
	alice    = auth.Identity{UserID: "alice", DisplayName: "Alice"}
	fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
)

func draft(title, techs string) domain.Draft {
	return domain.Draft{
		Title:          title,
		Description:    title + " description",
		Technologies:   techs,
		RepositoryLink: "https://github.com/alice/" + title,
		Status:         string(domain.StatusFinished),
	}
}

func newTestCoordinator(t *testing.T, store *memStore, opts ...Option) *Coordinator {
	t.Helper()
	n := 0
	var mu sync.Mutex
	base := []Option{
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(func() string {
			mu.Lock()
			defer mu.Unlock()
			n++
			return fmt.Sprintf("id-%d", n)
		}),
	}
	c := NewCoordinator(store, append(base, opts...)...)
	require.NoError(t, c.Load(context.Background(), alice))
	return c
}

func TestLoadAndClear(t *testing.T) {
	store := newMemStore()
	store.lists["alice"] = []domain.Project{{ID: "x", OwnerID: "alice", Title: "Existing"}}

	c := newTestCoordinator(t, store)
	owner, ok := c.Owner()
	require.True(t, ok)
	assert.Equal(t, "alice", owner.UserID)
	require.Len(t, c.Records(), 1)
	assert.Equal(t, StateIdle, c.State())

	c.Clear()
	_, ok = c.Owner()
	assert.False(t, ok)
	assert.Empty(t, c.Records())
	assert.Len(t, store.stored("alice"), 1, "clearing never writes")

	_, err := c.Add(context.Background(), draft("a", "Go"))
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestLoadFailure(t *testing.T) {
	store := newMemStore()
	store.lists["alice"] = []domain.Project{{ID: "x"}}
	c := newTestCoordinator(t, store)

	store.failList = true
	t.Run("same owner keeps the loaded list", func(t *testing.T) {
		assert.Error(t, c.Load(context.Background(), alice))
		assert.Len(t, c.Records(), 1)
		_, ok := c.Owner()
		assert.True(t, ok)
	})

	t.Run("another owner leaves no session", func(t *testing.T) {
		assert.Error(t, c.Load(context.Background(), auth.Identity{UserID: "bob"}))
		assert.Empty(t, c.Records())
		_, ok := c.Owner()
		assert.False(t, ok)
	})

	assert.ErrorIs(t, c.Load(context.Background(), auth.Identity{}), ErrNoSession)
}

func TestAddThenLoadRoundTrip(t *testing.T) {
	store := newMemStore()
	c := newTestCoordinator(t, store)

	added, err := c.Add(context.Background(), draft("todo", "React, CSS"))
	require.NoError(t, err)
	assert.Equal(t, "alice", added.OwnerID)
	assert.Equal(t, fixedNow, added.CreatedAt)

	fresh := NewCoordinator(store)
	require.NoError(t, fresh.Load(context.Background(), alice))
	records := fresh.Records()
	require.Len(t, records, 1)
	assert.Equal(t, added.ID, records[0].ID)
	assert.Equal(t, added.Title, records[0].Title)
	assert.Equal(t, domain.Technologies{"React", "CSS"}, records[0].Technologies)
	assert.Equal(t, added.RepositoryLink, records[0].RepositoryLink)
	assert.Equal(t, domain.StatusFinished, records[0].Status)
}

func TestAddRejectsInvalidDraft(t *testing.T) {
	store := newMemStore()
	c := newTestCoordinator(t, store)

	d := draft("", "Go, Go")
	_, err := c.Add(context.Background(), d)

	var verrs domain.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.True(t, verrs.Has(domain.CodeTitleRequired))
	assert.True(t, verrs.Has(domain.CodeTechnologiesDuplicate))
	assert.Zero(t, store.writes.Load())
	assert.Empty(t, c.Records())
}

func TestEditPreservesIdentityFields(t *testing.T) {
	store := newMemStore()
	c := newTestCoordinator(t, store)
	orig, err := c.Add(context.Background(), draft("first", "Go"))
	require.NoError(t, err)

	d := draft("renamed", "Rust, WASM")
	d.Status = "En Proceso"
	edited, err := c.Edit(context.Background(), orig.ID, d)
	require.NoError(t, err)

	assert.Equal(t, orig.ID, edited.ID)
	assert.Equal(t, orig.OwnerID, edited.OwnerID)
	assert.Equal(t, orig.CreatedAt, edited.CreatedAt)
	assert.Equal(t, "renamed", edited.Title)
	assert.Equal(t, domain.Technologies{"Rust", "WASM"}, edited.Technologies)
	assert.Equal(t, domain.StatusInProgress, edited.Status)
	assert.Equal(t, edited, store.stored("alice")[0])

	_, err = c.Edit(context.Background(), "missing", d)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteKeepsOrder(t *testing.T) {
	store := newMemStore()
	c := newTestCoordinator(t, store)
	for _, title := range []string{"a", "b", "c", "d"} {
		_, err := c.Add(context.Background(), draft(title, "Go"))
		require.NoError(t, err)
	}

	require.NoError(t, c.Delete(context.Background(), "id-2"))

	var titles []string
	for _, p := range c.Records() {
		titles = append(titles, p.Title)
	}
	assert.Equal(t, []string{"a", "c", "d"}, titles)
	assert.Len(t, store.stored("alice"), 3)

	assert.ErrorIs(t, c.Delete(context.Background(), "id-2"), domain.ErrNotFound)
}

func TestFailedWriteLeavesListUntouched(t *testing.T) {
	store := newMemStore()
	c := newTestCoordinator(t, store)
	_, err := c.Add(context.Background(), draft("kept", "Go"))
	require.NoError(t, err)
	before := c.Records()

	store.setFailWrite(true)

	_, err = c.Add(context.Background(), draft("lost", "Go"))
	assert.ErrorIs(t, err, domain.ErrStoreWrite)
	assert.Equal(t, before, c.Records())

	_, err = c.Edit(context.Background(), before[0].ID, draft("changed", "Go"))
	assert.ErrorIs(t, err, domain.ErrStoreWrite)
	assert.Equal(t, before, c.Records())

	assert.ErrorIs(t, c.Delete(context.Background(), before[0].ID), domain.ErrStoreWrite)
	assert.Equal(t, before, c.Records())
	assert.Equal(t, StateIdle, c.State())

	t.Run("retry succeeds once the store recovers", func(t *testing.T) {
		store.setFailWrite(false)
		_, err := c.Add(context.Background(), draft("lost", "Go"))
		require.NoError(t, err)
		assert.Len(t, c.Records(), 2)
	})
}

func TestConcurrentMutationsAreSerialized(t *testing.T) {
	store := newMemStore()
	store.delay = 10 * time.Millisecond
	c := newTestCoordinator(t, store)

	const n = 8
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := c.Add(context.Background(), draft(fmt.Sprintf("p%d", i), "Go"))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	assert.False(t, store.overlapped.Load(), "writes overlapped")
	stored := store.stored("alice")
	assert.Len(t, stored, n, "no write dropped another's record")
	assert.Equal(t, c.Records(), stored)
}

func TestViewAndTechnologies(t *testing.T) {
	store := newMemStore()
	c := newTestCoordinator(t, store)

	d := draft("web", "React, CSS")
	_, err := c.Add(context.Background(), d)
	require.NoError(t, err)
	d = draft("api", "Go, React")
	d.Status = string(domain.StatusInProgress)
	_, err = c.Add(context.Background(), d)
	require.NoError(t, err)

	assert.Equal(t, []string{"React", "CSS", "Go"}, c.Technologies())
	assert.Len(t, c.View(filter.Criteria{}), 2)

	crit, err := filter.ParseCriteria("InProgress", []string{"React"})
	require.NoError(t, err)
	got := c.View(crit)
	require.Len(t, got, 1)
	assert.Equal(t, "api", got[0].Title)
}

func TestImportBatch(t *testing.T) {
	store := newMemStore()
	c := newTestCoordinator(t, store)

	records := []domain.Project{{ID: "r1", Title: "one"}, {ID: "r2", Title: "two"}}
	imported, err := c.Import(context.Background(), records)
	require.NoError(t, err)
	assert.Equal(t, "alice", imported[0].OwnerID)
	assert.Equal(t, int32(1), store.writes.Load(), "one write per batch")
	assert.Len(t, c.Records(), 2)

	_, err = c.Import(context.Background(), []domain.Project{{ID: "r1"}})
	assert.ErrorIs(t, err, ErrDuplicateID)
	assert.Len(t, c.Records(), 2)
}

func TestImportRepositories(t *testing.T) {
	store := newMemStore()
	c := newTestCoordinator(t, store)

	summaries := []github.RepositorySummary{
		{ID: 7, Name: "my-repo", Language: "Go", Topics: []string{"cli", "app"}, URL: "https://github.com/alice/my-repo"},
		{ID: 8, Name: "x"},
	}
	imported, err := c.ImportRepositories(context.Background(), summaries)
	require.NoError(t, err)
	require.Len(t, imported, 2)
	assert.Equal(t, "my repo", imported[0].Title)
	assert.Equal(t, domain.Technologies{"Go", "cli"}, imported[0].Technologies)
	assert.Equal(t, domain.Technologies{"GitHub"}, imported[1].Technologies)
	assert.Equal(t, int32(1), store.writes.Load())

	again, err := c.ImportRepositories(context.Background(), summaries[:1])
	require.NoError(t, err)
	assert.NotEqual(t, imported[0].ID, again[0].ID)
	assert.Len(t, c.Records(), 3, "re-import duplicates")

	_, err = c.ImportRepositories(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNothingSelected)
}

func TestSearchAndImportSelected(t *testing.T) {
	src := &gatedSource{repos: map[string][]github.RepositorySummary{
		"octo": {{ID: 1, Name: "one"}, {ID: 2, Name: "two"}, {ID: 3, Name: "three"}},
	}}
	store := newMemStore()
	c := newTestCoordinator(t, store, WithSource(src))

	_, err := c.ImportSelected(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoSearch)

	repos, err := c.Search(context.Background(), "https://github.com/octo/")
	require.NoError(t, err)
	assert.Len(t, repos, 3)

	user, _, ok := c.LastSearch()
	require.True(t, ok)
	assert.Equal(t, "octo", user)

	imported, err := c.ImportSelected(context.Background(), []int64{3, 1})
	require.NoError(t, err)
	require.Len(t, imported, 2)
	assert.Equal(t, "one", imported[0].Title)
	assert.Equal(t, "three", imported[1].Title)

	_, err = c.ImportSelected(context.Background(), []int64{99})
	assert.ErrorIs(t, err, ErrNothingSelected)

	all, err := c.ImportSelected(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = c.Search(context.Background(), "ghost")
	assert.ErrorIs(t, err, github.ErrNotFound)

	_, err = c.Search(context.Background(), "  ")
	assert.ErrorIs(t, err, github.ErrUsernameRequired)
}

func TestStaleSearchIsDiscarded(t *testing.T) {
	src := &gatedSource{
		repos: map[string][]github.RepositorySummary{
			"slow": {{ID: 1, Name: "old"}},
			"fast": {{ID: 2, Name: "new"}},
		},
		gate:    map[string]chan struct{}{"slow": make(chan struct{})},
		entered: make(chan string, 2),
	}
	c := newTestCoordinator(t, newMemStore(), WithSource(src))

	slowErr := make(chan error, 1)
	go func() {
		_, err := c.Search(context.Background(), "slow")
		slowErr <- err
	}()
	require.Equal(t, "slow", <-src.entered)

	repos, err := c.Search(context.Background(), "fast")
	require.NoError(t, err)
	<-src.entered
	assert.Equal(t, "new", repos[0].Name)

	close(src.gate["slow"])
	assert.ErrorIs(t, <-slowErr, ErrSearchSuperseded)

	user, last, ok := c.LastSearch()
	require.True(t, ok)
	assert.Equal(t, "fast", user)
	assert.Equal(t, int64(2), last[0].ID)
}

func TestOverlappingSearchesForSameUserBothSucceed(t *testing.T) {
	src := &gatedSource{
		repos:   map[string][]github.RepositorySummary{"octo": {{ID: 7, Name: "spoon"}}},
		gate:    map[string]chan struct{}{"octo": make(chan struct{})},
		entered: make(chan string, 2),
	}
	c := newTestCoordinator(t, newMemStore(), WithSource(src))

	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			_, err := c.Search(context.Background(), "octo")
			errs <- err
		}()
	}
	<-src.entered
	<-src.entered
	close(src.gate["octo"])

	assert.NoError(t, <-errs)
	assert.NoError(t, <-errs)
	user, last, ok := c.LastSearch()
	require.True(t, ok)
	assert.Equal(t, "octo", user)
	assert.Equal(t, int64(7), last[0].ID)
}

func TestSearchDiscardedWhenSessionChanges(t *testing.T) {
	src := &gatedSource{
		repos:   map[string][]github.RepositorySummary{"octo": {{ID: 7, Name: "spoon"}}},
		gate:    map[string]chan struct{}{"octo": make(chan struct{})},
		entered: make(chan string, 1),
	}
	c := newTestCoordinator(t, newMemStore(), WithSource(src))

	errCh := make(chan error, 1)
	go func() {
		_, err := c.Search(context.Background(), "octo")
		errCh <- err
	}()
	<-src.entered
	c.Clear()
	close(src.gate["octo"])

	assert.ErrorIs(t, <-errCh, ErrSearchSuperseded)
	_, _, ok := c.LastSearch()
	assert.False(t, ok)
}

func TestSearchRequiresSessionAndSource(t *testing.T) {
	c := NewCoordinator(newMemStore())
	_, err := c.Search(context.Background(), "octo")
	assert.ErrorIs(t, err, ErrImportUnavailable)

	c = NewCoordinator(newMemStore(), WithSource(&gatedSource{}))
	_, err = c.Search(context.Background(), "octo")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestWatchFollowsSessionStream(t *testing.T) {
	store := newMemStore()
	store.lists["alice"] = []domain.Project{{ID: "1"}}
	c := NewCoordinator(store)

	events := make(chan auth.Event)
	done := make(chan error, 1)
	go func() { done <- c.Watch(context.Background(), events) }()

	events <- auth.Login(alice)
	assert.Eventually(t, func() bool { return len(c.Records()) == 1 }, time.Second, 5*time.Millisecond)

	events <- auth.Logout()
	assert.Eventually(t, func() bool { _, ok := c.Owner(); return !ok }, time.Second, 5*time.Millisecond)
	assert.Empty(t, c.Records())

	close(events)
	assert.NoError(t, <-done)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := c.Watch(ctx, make(chan auth.Event))
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestWatchStaticProvider(t *testing.T) {
	store := newMemStore()
	store.lists["alice"] = []domain.Project{{ID: "1"}, {ID: "2"}}
	c := NewCoordinator(store)

	require.NoError(t, c.Watch(context.Background(), auth.NewStaticProvider(alice).Events()))
	assert.Len(t, c.Records(), 2)
}

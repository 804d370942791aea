package app

import (
	"context"
	"sync"
	"testing"

	"moviebase/internal/tmdb"
	"moviebase/pkg/domain"
	"moviebase/pkg/store"
	"moviebase/pkg/token"
)

type fakeScheduler struct {
	mu  sync.Mutex
	ids []string
}

func (f *fakeScheduler) Schedule(movieID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ids = append(f.ids, movieID)
}

func (f *fakeScheduler) scheduled() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.ids...)
}

type fakeSearcher struct {
	mu     sync.Mutex
	result tmdb.MovieResult
	found  bool
	err    error
	calls  int
}

func (f *fakeSearcher) SearchMovie(_ context.Context, _, _ string) (tmdb.MovieResult, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.result, f.found, f.err
}

type testEnv struct {
	app       *App
	store     *store.MemoryStore
	scheduler *fakeScheduler
	searcher  *fakeSearcher
}

func newTestApp(t *testing.T) *testEnv {
	t.Helper()
	mem := store.NewMemoryStore()
	scheduler := &fakeScheduler{}
	searcher := &fakeSearcher{found: true, result: tmdb.MovieResult{ID: 42, OriginalTitle: "X"}}
	a, err := New(Config{
		Store:     mem,
		Tokens:    token.NewIssuer("test-secret"),
		TMDB:      searcher,
		Scheduler: scheduler,
	})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	return &testEnv{app: a, store: mem, scheduler: scheduler, searcher: searcher}
}

func (e *testEnv) addUser(t *testing.T, email string) domain.Account {
	t.Helper()
	acct, err := e.app.AddAccount(context.Background(), domain.RoleUser, AccountInput{
		Name: "User", Email: email, Password: "secret1",
	})
	if err != nil {
		t.Fatalf("add user: %v", err)
	}
	return acct
}

func (e *testEnv) addMovie(t *testing.T, title string) domain.Movie {
	t.Helper()
	m, err := e.app.AddMovie(context.Background(), MovieInput{Title: title, Year: "1999"})
	if err != nil {
		t.Fatalf("add movie: %v", err)
	}
	return m
}

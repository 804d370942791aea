package app

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"moviebase/pkg/cache"
	"moviebase/pkg/domain"
	"moviebase/pkg/store"
	"moviebase/pkg/token"
)

func newCachedApp(t *testing.T) (*App, *store.MemoryStore, *cache.Cache) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	c := cache.New(client)
	mem := store.NewMemoryStore()
	a, err := New(Config{
		Store:  mem,
		Cache:  c,
		Tokens: token.NewIssuer("test-secret"),
	})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	return a, mem, c
}

func TestMoviesFilter(t *testing.T) {
	env := newTestApp(t)
	ctx := context.Background()
	if _, err := env.app.AddMovie(ctx, MovieInput{Title: "Alien", Director: "Ridley Scott", Year: "1979", Length: 117}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := env.app.AddMovie(ctx, MovieInput{Title: "Blade Runner", Director: "Ridley Scott", Year: "1982"}); err != nil {
		t.Fatalf("add: %v", err)
	}

	got, err := env.app.Movies(ctx, MovieFilter{Director: "ridley scott"})
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("director filter matched %d", len(got))
	}

	// partial terms match anywhere in the field, regardless of case
	got, err = env.app.Movies(ctx, MovieFilter{Title: "runner"})
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Blade Runner" {
		t.Fatalf("substring filter = %+v", got)
	}

	got, err = env.app.Movies(ctx, MovieFilter{Director: "Ridley Scott", Year: "1979"})
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Alien" {
		t.Fatalf("combined filter = %+v", got)
	}

	got, err = env.app.Movies(ctx, MovieFilter{Length: "117"})
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Alien" {
		t.Fatalf("length filter = %+v", got)
	}
}

func TestMoviesPageNewestFirst(t *testing.T) {
	env := newTestApp(t)
	ctx := context.Background()
	titles := []string{"First", "Second", "Third"}
	for _, title := range titles {
		env.addMovie(t, title)
	}
	page, total, err := env.app.MoviesPage(ctx, MovieFilter{}, 1, 2)
	if err != nil {
		t.Fatalf("page: %v", err)
	}
	if total != 3 || len(page) != 2 {
		t.Fatalf("total=%d len=%d", total, len(page))
	}
	if page[0].Title != "Third" || page[1].Title != "Second" {
		t.Fatalf("page order = %s, %s", page[0].Title, page[1].Title)
	}
	page, _, err = env.app.MoviesPage(ctx, MovieFilter{}, 2, 2)
	if err != nil {
		t.Fatalf("page: %v", err)
	}
	if len(page) != 1 || page[0].Title != "First" {
		t.Fatalf("last page = %+v", page)
	}
}

func TestMoviesPageAppliesFilter(t *testing.T) {
	env := newTestApp(t)
	ctx := context.Background()
	for _, title := range []string{"Alien", "Aliens", "Stalker"} {
		env.addMovie(t, title)
	}
	page, total, err := env.app.MoviesPage(ctx, MovieFilter{Title: "alien"}, 1, 1)
	if err != nil {
		t.Fatalf("page: %v", err)
	}
	// the count reflects the filter, not the whole collection
	if total != 2 {
		t.Fatalf("total = %d", total)
	}
	if len(page) != 1 || page[0].Title != "Aliens" {
		t.Fatalf("page = %+v", page)
	}
}

func TestMovieByIDReadsCachedCollection(t *testing.T) {
	a, mem, _ := newCachedApp(t)
	ctx := context.Background()

	m, err := a.AddMovie(ctx, MovieInput{Title: "Solaris", Year: "1972"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	// warm the cache, then change the store underneath it
	if _, err := a.Movies(ctx, MovieFilter{}); err != nil {
		t.Fatalf("list: %v", err)
	}
	changed := m
	changed.Year = "1968"
	if err := mem.SaveMovie(changed); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := a.MovieByID(ctx, m.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Year != "1972" {
		t.Fatalf("got year %q, want the cached snapshot", got.Year)
	}
}

func TestMovieWritesInvalidateCache(t *testing.T) {
	a, _, c := newCachedApp(t)
	ctx := context.Background()

	m, err := a.AddMovie(ctx, MovieInput{Title: "Solaris"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	// prime the cache through the read path
	if _, err := a.Movies(ctx, MovieFilter{}); err != nil {
		t.Fatalf("list: %v", err)
	}

	if _, err := a.UpdateMovie(ctx, m.ID, MovieInput{Title: "Solaris", Year: "1972"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := a.Movies(ctx, MovieFilter{})
	if err != nil {
		t.Fatalf("list after update: %v", err)
	}
	if len(got) != 1 || got[0].Year != "1972" {
		t.Fatalf("stale read after update: %+v", got)
	}

	if err := a.DeleteMovie(ctx, m.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, err = a.Movies(ctx, MovieFilter{})
	if err != nil {
		t.Fatalf("list after delete: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("stale read after delete: %+v", got)
	}

	// cache still serves reads when warm
	var cached []domain.Movie
	if _, err := c.Get(ctx, MoviesCacheKey, &cached); err != nil {
		t.Fatalf("cache get: %v", err)
	}
}

func TestMovieCRUDErrors(t *testing.T) {
	env := newTestApp(t)
	ctx := context.Background()

	if _, err := env.app.AddMovie(ctx, MovieInput{}); err == nil {
		t.Fatal("empty title should fail validation")
	}
	if _, err := env.app.MovieByID(ctx, "nope"); !errors.Is(err, ErrInvalidMovieID) {
		t.Fatalf("invalid id: %v", err)
	}
	if _, err := env.app.MovieByID(ctx, "d9b2d63d-a233-4123-847a-717d33639046"); !errors.Is(err, ErrMovieNotFound) {
		t.Fatalf("missing movie: %v", err)
	}
	if err := env.app.DeleteMovie(ctx, "d9b2d63d-a233-4123-847a-717d33639046"); !errors.Is(err, ErrMovieNotFound) {
		t.Fatalf("delete missing: %v", err)
	}

	env.addMovie(t, "Unique")
	if _, err := env.app.AddMovie(ctx, MovieInput{Title: "Unique"}); !errors.Is(err, ErrTitleExists) {
		t.Fatalf("duplicate title: %v", err)
	}
}

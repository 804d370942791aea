package tmdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearchMovie(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/movie" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("query"); got != "Stalker" {
			t.Fatalf("query = %q", got)
		}
		if got := r.URL.Query().Get("year"); got != "1979" {
			t.Fatalf("year = %q", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Fatalf("authorization = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[{"id":901,"original_title":"Сталкер","original_language":"ru","overview":"zone","popularity":14.2,"vote_average":8.1,"vote_count":1500,"adult":false,"video":false,"backdrop_path":"/x.jpg"}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok")
	got, found, err := c.SearchMovie(context.Background(), "Stalker", "1979")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if !found {
		t.Fatal("expected a match")
	}
	if got.ID != 901 || got.OriginalTitle != "Сталкер" || got.VoteCount != 1500 {
		t.Fatalf("result = %+v", got)
	}
}

func TestSearchMovieNoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	_, found, err := NewClient(srv.URL, "").SearchMovie(context.Background(), "nope", "")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if found {
		t.Fatal("expected no match")
	}
}

func TestSearchMovieUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	if _, _, err := NewClient(srv.URL, "").SearchMovie(context.Background(), "x", ""); err == nil {
		t.Fatal("expected error on non-200 status")
	}
}

// Package app holds the movie catalog business logic: accounts and
// sessions, the cached movie collection, favorites, TMDB enrichment, and
// spreadsheet imports.
package app

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"moviebase/internal/tmdb"
	"moviebase/pkg/cache"
	"moviebase/pkg/store"
	"moviebase/pkg/token"
)

// EnrichScheduler queues a movie for background TMDB enrichment.
type EnrichScheduler interface {
	Schedule(movieID string)
}

// MovieSearcher is the TMDB lookup used during enrichment.
type MovieSearcher interface {
	SearchMovie(ctx context.Context, title, year string) (tmdb.MovieResult, bool, error)
}

type Config struct {
	Store     store.Store
	Cache     *cache.Cache // optional; nil disables the movie list cache
	Tokens    *token.Issuer
	TMDB      MovieSearcher   // optional; nil disables enrichment
	Scheduler EnrichScheduler // optional; nil skips scheduling
	Logger    *slog.Logger
}

type App struct {
	store     store.Store
	cache     *cache.Cache
	tokens    *token.Issuer
	tmdb      MovieSearcher
	scheduler EnrichScheduler
	logger    *slog.Logger
	refill    singleflight.Group
}

func New(cfg Config) (*App, error) {
	if cfg.Store == nil {
		return nil, errors.New("store is required")
	}
	if cfg.Tokens == nil {
		return nil, errors.New("token issuer is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &App{
		store:     cfg.Store,
		cache:     cfg.Cache,
		tokens:    cfg.Tokens,
		tmdb:      cfg.TMDB,
		scheduler: cfg.Scheduler,
		logger:    logger,
	}, nil
}

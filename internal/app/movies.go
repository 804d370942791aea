package app

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"moviebase/internal/util"
	"moviebase/pkg/domain"
	"moviebase/pkg/store"
)

// MoviesCacheKey holds the JSON snapshot of the full movie collection.
const MoviesCacheKey = "moviebase:movies:all"

// MovieInput carries movie fields from create and update requests.
type MovieInput struct {
	Title          string
	Director       string
	Year           string
	Country        string
	Length         int
	Genre          string
	Colour         string
	AdditionalInfo []domain.InfoPair
}

// MovieFilter matches movies field by field. Empty fields are ignored; each
// set field is a case-insensitive substring match, and all set fields must
// match.
type MovieFilter struct {
	Title    string
	Director string
	Year     string
	Country  string
	Length   string
	Genre    string
	Colour   string
}

func (f MovieFilter) empty() bool {
	return f == MovieFilter{}
}

func (f MovieFilter) matches(m domain.Movie) bool {
	match := func(want, got string) bool {
		return want == "" || strings.Contains(strings.ToLower(got), strings.ToLower(want))
	}
	if !match(f.Title, m.Title) || !match(f.Director, m.Director) ||
		!match(f.Year, m.Year) || !match(f.Country, m.Country) ||
		!match(f.Genre, m.Genre) || !match(f.Colour, m.Colour) {
		return false
	}
	if f.Length != "" && f.Length != strconv.Itoa(m.Length) {
		return false
	}
	return true
}

// allMovies returns the full collection, preferring the cached snapshot.
// Concurrent cache misses collapse into one store read.
func (a *App) allMovies(ctx context.Context) ([]domain.Movie, error) {
	if a.cache != nil {
		var movies []domain.Movie
		hit, err := a.cache.Get(ctx, MoviesCacheKey, &movies)
		if err != nil {
			a.logger.Warn("movie cache read", "error", err)
		} else if hit {
			return movies, nil
		}
	}
	v, err, _ := a.refill.Do(MoviesCacheKey, func() (any, error) {
		movies, err := a.store.ListMovies()
		if err != nil {
			return nil, err
		}
		if a.cache != nil {
			if err := a.cache.Set(ctx, MoviesCacheKey, movies, 0); err != nil {
				a.logger.Warn("movie cache write", "error", err)
			}
		}
		return movies, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Movie), nil
}

// invalidateMovies drops the cached snapshot after a write. The next read
// repopulates it. Re-warming here instead would race a concurrent write and
// could reinstall a snapshot taken before that write committed.
func (a *App) invalidateMovies(ctx context.Context) {
	if a.cache == nil {
		return
	}
	if err := a.cache.Delete(ctx, MoviesCacheKey); err != nil {
		a.logger.Warn("movie cache invalidate", "error", err)
	}
}

// Movies returns movies matching the filter, in insertion order.
func (a *App) Movies(ctx context.Context, filter MovieFilter) ([]domain.Movie, error) {
	movies, err := a.allMovies(ctx)
	if err != nil {
		return nil, err
	}
	if filter.empty() {
		return movies, nil
	}
	filtered := make([]domain.Movie, 0, len(movies))
	for _, m := range movies {
		if filter.matches(m) {
			filtered = append(filtered, m)
		}
	}
	return filtered, nil
}

// MoviesPage returns one page of the filtered collection, newest first. The
// count reflects the filter, so page numbers stay consistent with the rows.
func (a *App) MoviesPage(ctx context.Context, filter MovieFilter, page, limit int) ([]domain.Movie, int, error) {
	movies, err := a.Movies(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	page, limit = normalizePage(page, limit)
	total := len(movies)
	// insertion order is oldest first; pages run newest first
	reversed := make([]domain.Movie, total)
	for i, m := range movies {
		reversed[total-1-i] = m
	}
	offset := (page - 1) * limit
	if offset >= total {
		return []domain.Movie{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return reversed[offset:end], total, nil
}

// MovieByID fetches a single movie, scanning the cached collection before
// touching the store.
func (a *App) MovieByID(ctx context.Context, id string) (domain.Movie, error) {
	if !util.IsValidID(id) {
		return domain.Movie{}, ErrInvalidMovieID
	}
	movies, err := a.allMovies(ctx)
	if err != nil {
		return domain.Movie{}, err
	}
	for _, m := range movies {
		if m.ID == id {
			return m, nil
		}
	}
	return domain.Movie{}, ErrMovieNotFound
}

// AddMovie creates a movie.
func (a *App) AddMovie(ctx context.Context, in MovieInput) (domain.Movie, error) {
	if strings.TrimSpace(in.Title) == "" {
		return domain.Movie{}, validationf("title is required")
	}
	now := time.Now().UTC()
	m := domain.Movie{
		ID:             util.NewID(),
		Title:          strings.TrimSpace(in.Title),
		Director:       in.Director,
		Year:           in.Year,
		Country:        in.Country,
		Length:         in.Length,
		Genre:          in.Genre,
		Colour:         in.Colour,
		AdditionalInfo: in.AdditionalInfo,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := a.store.SaveMovie(m); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return domain.Movie{}, ErrTitleExists
		}
		return domain.Movie{}, err
	}
	a.invalidateMovies(ctx)
	return m, nil
}

// UpdateMovie overwrites a movie's catalog fields. Enrichment info is kept.
func (a *App) UpdateMovie(ctx context.Context, id string, in MovieInput) (domain.Movie, error) {
	if !util.IsValidID(id) {
		return domain.Movie{}, ErrInvalidMovieID
	}
	if strings.TrimSpace(in.Title) == "" {
		return domain.Movie{}, validationf("title is required")
	}
	m, found, err := a.store.GetMovieByID(id)
	if err != nil {
		return domain.Movie{}, err
	}
	if !found {
		return domain.Movie{}, ErrMovieNotFound
	}
	m.Title = strings.TrimSpace(in.Title)
	m.Director = in.Director
	m.Year = in.Year
	m.Country = in.Country
	m.Length = in.Length
	m.Genre = in.Genre
	m.Colour = in.Colour
	m.AdditionalInfo = in.AdditionalInfo
	m.UpdatedAt = time.Now().UTC()
	if err := a.store.SaveMovie(m); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return domain.Movie{}, ErrTitleExists
		}
		return domain.Movie{}, err
	}
	a.invalidateMovies(ctx)
	return m, nil
}

// DeleteMovie removes a movie and everyone's favorites of it.
func (a *App) DeleteMovie(ctx context.Context, id string) error {
	if !util.IsValidID(id) {
		return ErrInvalidMovieID
	}
	_, found, err := a.store.GetMovieByID(id)
	if err != nil {
		return err
	}
	if !found {
		return ErrMovieNotFound
	}
	if err := a.store.DeleteMovie(id); err != nil {
		return err
	}
	a.invalidateMovies(ctx)
	return nil
}

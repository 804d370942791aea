package app

import (
	"context"

	"moviebase/internal/util"
	"moviebase/pkg/domain"
)

// ToggleFavorite flips a movie's membership in the user's favorites set and
// reports whether the movie ended up added. Adding schedules TMDB
// enrichment the first time a movie is ever favorited.
//
// Add and remove are conditional writes in the store, so two concurrent
// toggles of the same pair cannot double-add or double-remove.
func (a *App) ToggleFavorite(ctx context.Context, userID, movieID string) (bool, error) {
	if !util.IsValidID(movieID) {
		return false, ErrInvalidMovieID
	}
	movie, found, err := a.store.GetMovieByID(movieID)
	if err != nil {
		return false, err
	}
	if !found {
		return false, ErrMovieNotFound
	}

	isFav, err := a.store.IsFavorite(userID, movieID)
	if err != nil {
		return false, err
	}
	if isFav {
		if _, err := a.store.RemoveFavorite(userID, movieID); err != nil {
			return false, err
		}
		return false, nil
	}

	added, err := a.store.AddFavorite(userID, movieID)
	if err != nil {
		return false, err
	}
	if added && len(movie.TMDBAdditionalInfo) == 0 && a.scheduler != nil {
		a.scheduler.Schedule(movieID)
	}
	return true, nil
}

// FavoriteMovies lists the user's favorited movies in favoriting order.
func (a *App) FavoriteMovies(ctx context.Context, userID string) ([]domain.Movie, error) {
	return a.store.ListFavoriteMovies(userID)
}

// FavoriteMoviesPage returns one page of the user's favorites, in
// favoriting order, plus the total count.
func (a *App) FavoriteMoviesPage(ctx context.Context, userID string, page, limit int) ([]domain.Movie, int, error) {
	movies, err := a.store.ListFavoriteMovies(userID)
	if err != nil {
		return nil, 0, err
	}
	page, limit = normalizePage(page, limit)
	total := len(movies)
	offset := (page - 1) * limit
	if offset >= total {
		return []domain.Movie{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return movies[offset:end], total, nil
}

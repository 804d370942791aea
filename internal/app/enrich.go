package app

import (
	"context"
	"strconv"

	"moviebase/internal/tmdb"
	"moviebase/pkg/domain"
)

// EnrichMovie looks the movie up on TMDB and stores the result. It is
// idempotent: a movie that is already enriched, or that no longer exists,
// is left alone. A title with no TMDB match counts as done, not failed.
func (a *App) EnrichMovie(ctx context.Context, movieID string) error {
	if a.tmdb == nil {
		return nil
	}
	movie, found, err := a.store.GetMovieByID(movieID)
	if err != nil {
		return err
	}
	if !found || len(movie.TMDBAdditionalInfo) > 0 {
		return nil
	}

	result, matched, err := a.tmdb.SearchMovie(ctx, movie.Title, movie.Year)
	if err != nil {
		return err
	}
	if !matched {
		a.logger.Info("no tmdb match", "movie_id", movieID, "title", movie.Title)
		return nil
	}

	if err := a.store.SetMovieTMDBInfo(movieID, tmdbInfoPairs(result)); err != nil {
		return err
	}
	a.invalidateMovies(ctx)
	return nil
}

func tmdbInfoPairs(r tmdb.MovieResult) []domain.InfoPair {
	return []domain.InfoPair{
		{Type: "adult", Value: strconv.FormatBool(r.Adult)},
		{Type: "backdrop_path", Value: r.BackdropPath},
		{Type: "id", Value: strconv.FormatInt(r.ID, 10)},
		{Type: "original_language", Value: r.OriginalLanguage},
		{Type: "original_title", Value: r.OriginalTitle},
		{Type: "overview", Value: r.Overview},
		{Type: "popularity", Value: strconv.FormatFloat(r.Popularity, 'f', -1, 64)},
		{Type: "video", Value: strconv.FormatBool(r.Video)},
		{Type: "vote_average", Value: strconv.FormatFloat(r.VoteAverage, 'f', -1, 64)},
		{Type: "vote_count", Value: strconv.FormatInt(r.VoteCount, 10)},
	}
}

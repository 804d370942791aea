package store

import (
	"errors"

	"moviebase/pkg/domain"
)

// ErrDuplicate reports a uniqueness violation (email or movie title).
var ErrDuplicate = errors.New("duplicate key")

// Store defines persistence operations for accounts, favorites, and movies.
// Account operations take a role that selects the admin or user collection.
type Store interface {
	// accounts
	SaveAccount(a domain.Account) error
	GetAccountByID(role domain.Role, id string) (domain.Account, bool, error)
	GetAccountByEmail(role domain.Role, email string) (domain.Account, bool, error)
	GetAccountByToken(role domain.Role, token string) (domain.Account, bool, error)
	SetSessionToken(role domain.Role, id, token string) error
	ListAccounts(role domain.Role) ([]domain.Account, error)
	ListAccountsPage(role domain.Role, offset, limit int) ([]domain.Account, error)
	CountAccounts(role domain.Role) (int, error)
	DeleteAccount(role domain.Role, id string) error

	// favorites
	IsFavorite(userID, movieID string) (bool, error)
	AddFavorite(userID, movieID string) (bool, error)
	RemoveFavorite(userID, movieID string) (bool, error)
	ListFavoriteMovies(userID string) ([]domain.Movie, error)

	// movies
	SaveMovie(m domain.Movie) error
	SaveMovies(movies []domain.Movie) error
	GetMovieByID(id string) (domain.Movie, bool, error)
	ListMovies() ([]domain.Movie, error)
	DeleteMovie(id string) error
	SetMovieTMDBInfo(id string, info []domain.InfoPair) error
}

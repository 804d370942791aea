package store

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"moviebase/pkg/domain"
)

type favoriteKey struct {
	userID  string
	movieID string
}

// MemoryStore is an in-memory Store used by tests and local development.
type MemoryStore struct {
	mu        sync.RWMutex
	users     map[string]domain.Account
	admins    map[string]domain.Account
	movies    map[string]domain.Movie
	favorites map[favoriteKey]time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:     make(map[string]domain.Account),
		admins:    make(map[string]domain.Account),
		movies:    make(map[string]domain.Movie),
		favorites: make(map[favoriteKey]time.Time),
	}
}

func (s *MemoryStore) accounts(role domain.Role) map[string]domain.Account {
	if role == domain.RoleAdmin {
		return s.admins
	}
	return s.users
}

func (s *MemoryStore) SaveAccount(a domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	accs := s.accounts(a.Role)
	for _, other := range accs {
		if other.Email == a.Email && other.ID != a.ID {
			return fmt.Errorf("%w: email %q", ErrDuplicate, a.Email)
		}
	}
	accs[a.ID] = a
	return nil
}

func (s *MemoryStore) GetAccountByID(role domain.Role, id string) (domain.Account, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.accounts(role)[id]
	return a, ok, nil
}

func (s *MemoryStore) GetAccountByEmail(role domain.Role, email string) (domain.Account, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.accounts(role) {
		if a.Email == email {
			return a, true, nil
		}
	}
	return domain.Account{}, false, nil
}

func (s *MemoryStore) GetAccountByToken(role domain.Role, token string) (domain.Account, bool, error) {
	if token == "" {
		return domain.Account{}, false, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.accounts(role) {
		if a.SessionToken == token {
			return a, true, nil
		}
	}
	return domain.Account{}, false, nil
}

func (s *MemoryStore) SetSessionToken(role domain.Role, id, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	accs := s.accounts(role)
	a, ok := accs[id]
	if !ok {
		return nil
	}
	a.SessionToken = token
	a.UpdatedAt = time.Now().UTC()
	accs[id] = a
	return nil
}

func (s *MemoryStore) ListAccounts(role domain.Role) ([]domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := make([]domain.Account, 0, len(s.accounts(role)))
	for _, a := range s.accounts(role) {
		res = append(res, a)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].CreatedAt.Before(res[j].CreatedAt) })
	return res, nil
}

func (s *MemoryStore) ListAccountsPage(role domain.Role, offset, limit int) ([]domain.Account, error) {
	all, _ := s.ListAccounts(role)
	// newest first for pagination
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	if offset >= len(all) {
		return []domain.Account{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (s *MemoryStore) CountAccounts(role domain.Role) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.accounts(role)), nil
}

func (s *MemoryStore) DeleteAccount(role domain.Role, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.accounts(role), id)
	if role == domain.RoleUser {
		for k := range s.favorites {
			if k.userID == id {
				delete(s.favorites, k)
			}
		}
	}
	return nil
}

func (s *MemoryStore) IsFavorite(userID, movieID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.favorites[favoriteKey{userID, movieID}]
	return ok, nil
}

func (s *MemoryStore) AddFavorite(userID, movieID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := favoriteKey{userID, movieID}
	if _, ok := s.favorites[k]; ok {
		return false, nil
	}
	s.favorites[k] = time.Now().UTC()
	return true, nil
}

func (s *MemoryStore) RemoveFavorite(userID, movieID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := favoriteKey{userID, movieID}
	if _, ok := s.favorites[k]; !ok {
		return false, nil
	}
	delete(s.favorites, k)
	return true, nil
}

func (s *MemoryStore) ListFavoriteMovies(userID string) ([]domain.Movie, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	type entry struct {
		movie domain.Movie
		at    time.Time
	}
	var entries []entry
	for k, at := range s.favorites {
		if k.userID != userID {
			continue
		}
		if m, ok := s.movies[k.movieID]; ok {
			entries = append(entries, entry{m, at})
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].at.Before(entries[j].at) })
	res := make([]domain.Movie, 0, len(entries))
	for _, e := range entries {
		res = append(res, e.movie)
	}
	return res, nil
}

func (s *MemoryStore) SaveMovie(m domain.Movie) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveMovieLocked(m)
}

func (s *MemoryStore) saveMovieLocked(m domain.Movie) error {
	for _, other := range s.movies {
		if other.Title == m.Title && other.ID != m.ID {
			return fmt.Errorf("%w: title %q", ErrDuplicate, m.Title)
		}
	}
	s.movies[m.ID] = m
	return nil
}

func (s *MemoryStore) SaveMovies(movies []domain.Movie) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range movies {
		if err := s.saveMovieLocked(m); err != nil {
			return err
		}
	}
	return nil
}

func (s *MemoryStore) GetMovieByID(id string) (domain.Movie, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.movies[id]
	return m, ok, nil
}

func (s *MemoryStore) ListMovies() ([]domain.Movie, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := make([]domain.Movie, 0, len(s.movies))
	for _, m := range s.movies {
		res = append(res, m)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].CreatedAt.Before(res[j].CreatedAt) })
	return res, nil
}

func (s *MemoryStore) DeleteMovie(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.movies, id)
	for k := range s.favorites {
		if k.movieID == id {
			delete(s.favorites, k)
		}
	}
	return nil
}

func (s *MemoryStore) SetMovieTMDBInfo(id string, info []domain.InfoPair) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.movies[id]
	if !ok {
		return nil
	}
	m.TMDBAdditionalInfo = info
	m.UpdatedAt = time.Now().UTC()
	s.movies[id] = m
	return nil
}

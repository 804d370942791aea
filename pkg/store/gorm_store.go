package store

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"moviebase/pkg/domain"
)

const (
	userTable      = "user_models"
	adminUserTable = "admin_user_models"
)

// GormStore implements Store using GORM + Postgres.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore opens the DB and runs auto-migrations.
func NewGormStore(dsn string) (*GormStore, error) {
	gormLog := gormlogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         gormLog,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.AutoMigrate(&UserModel{}, &AdminUserModel{}, &MovieModel{}, &FavoriteModel{}); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	return &GormStore{db: db}, nil
}

func accountTable(role domain.Role) string {
	if role == domain.RoleAdmin {
		return adminUserTable
	}
	return userTable
}

// SaveAccount registers or updates an account in its role's table.
func (s *GormStore) SaveAccount(a domain.Account) error {
	row := accountToRow(a)
	err := s.db.Table(accountTable(a.Role)).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "email", "password_hash", "session_token", "updated_at"}),
	}).Create(&row).Error
	return translateErr(err)
}

// GetAccountByID returns an account by ID from the role's table.
func (s *GormStore) GetAccountByID(role domain.Role, id string) (domain.Account, bool, error) {
	return s.findAccount(role, "id = ?", id)
}

// GetAccountByEmail looks up an account by email.
func (s *GormStore) GetAccountByEmail(role domain.Role, email string) (domain.Account, bool, error) {
	return s.findAccount(role, "email = ?", email)
}

// GetAccountByToken looks up the account whose current session token equals
// the given value. Session validation re-checks presented tokens this way.
func (s *GormStore) GetAccountByToken(role domain.Role, token string) (domain.Account, bool, error) {
	if token == "" {
		return domain.Account{}, false, nil
	}
	return s.findAccount(role, "session_token = ?", token)
}

func (s *GormStore) findAccount(role domain.Role, cond string, arg any) (domain.Account, bool, error) {
	var row accountRow
	err := s.db.Table(accountTable(role)).Where(cond, arg).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Account{}, false, nil
		}
		return domain.Account{}, false, err
	}
	return accountFromRow(row, role), true, nil
}

// SetSessionToken overwrites the account's current session token, revoking
// any previously issued one.
func (s *GormStore) SetSessionToken(role domain.Role, id, token string) error {
	return s.db.Table(accountTable(role)).Where("id = ?", id).Updates(map[string]any{
		"session_token": token,
		"updated_at":    time.Now().UTC(),
	}).Error
}

// ListAccounts returns all accounts of a role ordered by created_at.
func (s *GormStore) ListAccounts(role domain.Role) ([]domain.Account, error) {
	var rows []accountRow
	if err := s.db.Table(accountTable(role)).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	res := make([]domain.Account, 0, len(rows))
	for _, row := range rows {
		res = append(res, accountFromRow(row, role))
	}
	return res, nil
}

// ListAccountsPage returns one page of accounts, newest first.
func (s *GormStore) ListAccountsPage(role domain.Role, offset, limit int) ([]domain.Account, error) {
	var rows []accountRow
	if err := s.db.Table(accountTable(role)).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	res := make([]domain.Account, 0, len(rows))
	for _, row := range rows {
		res = append(res, accountFromRow(row, role))
	}
	return res, nil
}

// CountAccounts returns the number of accounts of a role.
func (s *GormStore) CountAccounts(role domain.Role) (int, error) {
	var count int64
	if err := s.db.Table(accountTable(role)).Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}

// DeleteAccount removes an account and, for users, its favorites.
func (s *GormStore) DeleteAccount(role domain.Role, id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if role == domain.RoleUser {
			if err := tx.Delete(&FavoriteModel{}, "user_id = ?", id).Error; err != nil {
				return err
			}
		}
		return tx.Table(accountTable(role)).Where("id = ?", id).Delete(&accountRow{}).Error
	})
}

// IsFavorite reports membership of a movie in the user's favorites set.
func (s *GormStore) IsFavorite(userID, movieID string) (bool, error) {
	var count int64
	err := s.db.Model(&FavoriteModel{}).
		Where("user_id = ? AND movie_id = ?", userID, movieID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// AddFavorite inserts the favorite if absent. Returns whether a row was
// actually inserted, so concurrent toggles cannot double-add.
func (s *GormStore) AddFavorite(userID, movieID string) (bool, error) {
	fav := FavoriteModel{UserID: userID, MovieID: movieID, CreatedAt: time.Now().UTC()}
	tx := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&fav)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

// RemoveFavorite deletes the favorite if present. Returns whether a row was
// actually removed.
func (s *GormStore) RemoveFavorite(userID, movieID string) (bool, error) {
	tx := s.db.Where("user_id = ? AND movie_id = ?", userID, movieID).Delete(&FavoriteModel{})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

// ListFavoriteMovies returns the user's favorited movies in the order they
// were favorited.
func (s *GormStore) ListFavoriteMovies(userID string) ([]domain.Movie, error) {
	var models []MovieModel
	err := s.db.Model(&MovieModel{}).
		Joins("JOIN favorite_models ON favorite_models.movie_id = movie_models.id").
		Where("favorite_models.user_id = ?", userID).
		Order("favorite_models.created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	res := make([]domain.Movie, 0, len(models))
	for _, m := range models {
		res = append(res, movieFromModel(m))
	}
	return res, nil
}

// SaveMovie stores or updates a movie.
func (s *GormStore) SaveMovie(m domain.Movie) error {
	model := movieToModel(m)
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"title", "director", "year", "country", "length", "genre", "colour", "additional_info", "tmdb_additional_info", "updated_at"}),
	}).Create(&model).Error
	return translateErr(err)
}

// SaveMovies bulk-inserts movies.
func (s *GormStore) SaveMovies(movies []domain.Movie) error {
	if len(movies) == 0 {
		return nil
	}
	models := make([]MovieModel, 0, len(movies))
	for _, m := range movies {
		models = append(models, movieToModel(m))
	}
	return translateErr(s.db.CreateInBatches(&models, 100).Error)
}

// GetMovieByID retrieves a movie.
func (s *GormStore) GetMovieByID(id string) (domain.Movie, bool, error) {
	var model MovieModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Movie{}, false, nil
		}
		return domain.Movie{}, false, err
	}
	return movieFromModel(model), true, nil
}

// ListMovies returns the full movie collection ordered by created_at.
func (s *GormStore) ListMovies() ([]domain.Movie, error) {
	var models []MovieModel
	if err := s.db.Order("created_at ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.Movie, 0, len(models))
	for _, m := range models {
		res = append(res, movieFromModel(m))
	}
	return res, nil
}

// DeleteMovie removes a movie and any favorites pointing at it.
func (s *GormStore) DeleteMovie(id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&FavoriteModel{}, "movie_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&MovieModel{}, "id = ?", id).Error
	})
}

// SetMovieTMDBInfo writes the enrichment info list for a movie.
func (s *GormStore) SetMovieTMDBInfo(id string, info []domain.InfoPair) error {
	return s.db.Model(&MovieModel{}).Where("id = ?", id).Updates(map[string]any{
		"tmdb_additional_info": marshalInfo(info),
		"updated_at":           time.Now().UTC(),
	}).Error
}

func translateErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	return err
}

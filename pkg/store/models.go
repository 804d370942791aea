package store

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"moviebase/pkg/domain"
)

// GORM models used for persistence. Admin and user accounts are kept in
// separate tables so email uniqueness is scoped per collection.
type UserModel struct {
	ID           string    `gorm:"primaryKey"`
	Name         string    `gorm:"not null"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	SessionToken string    `gorm:"index"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time
}

type AdminUserModel struct {
	ID           string    `gorm:"primaryKey"`
	Name         string    `gorm:"not null"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	SessionToken string    `gorm:"index"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time
}

type MovieModel struct {
	ID                 string         `gorm:"primaryKey"`
	Title              string         `gorm:"uniqueIndex;not null"`
	Director           string
	Year               string
	Country            string
	Length             int
	Genre              string
	Colour             string
	AdditionalInfo     datatypes.JSON `gorm:"type:jsonb"`
	TMDBAdditionalInfo datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt          time.Time      `gorm:"not null;index"`
	UpdatedAt          time.Time
}

// FavoriteModel is the user->movie favorites set. The composite primary key
// makes add-if-absent and remove-if-present single atomic statements.
type FavoriteModel struct {
	UserID    string    `gorm:"primaryKey"`
	MovieID   string    `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"not null;index"`
}

// accountRow is the shared row shape scanned from either account table.
type accountRow struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	SessionToken string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func accountFromRow(row accountRow, role domain.Role) domain.Account {
	return domain.Account{
		ID:           row.ID,
		Name:         row.Name,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		Role:         role,
		SessionToken: row.SessionToken,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}

func accountToRow(a domain.Account) accountRow {
	return accountRow{
		ID:           a.ID,
		Name:         a.Name,
		Email:        a.Email,
		PasswordHash: a.PasswordHash,
		SessionToken: a.SessionToken,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

func movieToModel(m domain.Movie) MovieModel {
	return MovieModel{
		ID:                 m.ID,
		Title:              m.Title,
		Director:           m.Director,
		Year:               m.Year,
		Country:            m.Country,
		Length:             m.Length,
		Genre:              m.Genre,
		Colour:             m.Colour,
		AdditionalInfo:     marshalInfo(m.AdditionalInfo),
		TMDBAdditionalInfo: marshalInfo(m.TMDBAdditionalInfo),
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

func movieFromModel(m MovieModel) domain.Movie {
	return domain.Movie{
		ID:                 m.ID,
		Title:              m.Title,
		Director:           m.Director,
		Year:               m.Year,
		Country:            m.Country,
		Length:             m.Length,
		Genre:              m.Genre,
		Colour:             m.Colour,
		AdditionalInfo:     unmarshalInfo(m.AdditionalInfo),
		TMDBAdditionalInfo: unmarshalInfo(m.TMDBAdditionalInfo),
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

func marshalInfo(info []domain.InfoPair) datatypes.JSON {
	if len(info) == 0 {
		return datatypes.JSON("[]")
	}
	data, err := json.Marshal(info)
	if err != nil {
		return datatypes.JSON("[]")
	}
	return datatypes.JSON(data)
}

func unmarshalInfo(data datatypes.JSON) []domain.InfoPair {
	if len(data) == 0 {
		return nil
	}
	var info []domain.InfoPair
	if err := json.Unmarshal(data, &info); err != nil {
		return nil
	}
	if len(info) == 0 {
		return nil
	}
	return info
}

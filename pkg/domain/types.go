package domain

import "time"

// Role selects which account collection an identity belongs to.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Account is an admin or user identity. Admin and user accounts live in
// separate collections; Role records which one this account came from.
// The session token rotates on every login and is the sole revocation
// mechanism: only the most recently issued token validates.
type Account struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"-"`
	SessionToken string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// InfoPair is one ordered {type, value} entry of a movie's info list.
type InfoPair struct {
	Type  string `json:"info_type"`
	Value string `json:"info_value"`
}

// Movie is a catalog entry. Title is unique: two import records with the
// same title are the same logical movie. TMDBAdditionalInfo is populated
// lazily, at most once, when the movie is first favorited.
type Movie struct {
	ID                 string     `json:"id"`
	Title              string     `json:"title"`
	Director           string     `json:"director"`
	Year               string     `json:"year"`
	Country            string     `json:"country"`
	Length             int        `json:"length"`
	Genre              string     `json:"genre"`
	Colour             string     `json:"colour"`
	AdditionalInfo     []InfoPair `json:"additional_info"`
	TMDBAdditionalInfo []InfoPair `json:"tmdb_additional_info"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

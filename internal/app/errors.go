package app

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors carry the exact messages returned to API clients.
var (
	ErrEmailNotFound       = errors.New("Email doesn't Exist")
	ErrWrongCredentials    = errors.New("Wrong Credentials")
	ErrUserNotFound        = errors.New("User Id is wrong")
	ErrAdminNotFound       = errors.New("Admin User Id is wrong")
	ErrMovieNotFound       = errors.New("Movie Id is wrong")
	ErrInvalidUserID       = errors.New("User Id is not valid")
	ErrInvalidMovieID      = errors.New("Movie Id is not valid")
	ErrSelfDelete          = errors.New("Admin User Can't Delete Itself")
	ErrEmailExists         = errors.New("Email Already Exists")
	ErrTitleExists         = errors.New("Movie With This Title Already Exists")
	ErrTokenExpired        = errors.New("This Token Is Expired")
	ErrFileRequired        = errors.New("File is required.")
	ErrUnsupportedFileType = errors.New("Unsupported file type")
)

// ValidationError collects per-field input problems.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Problems, ", ")
}

func validationf(format string, args ...any) *ValidationError {
	return &ValidationError{Problems: []string{fmt.Sprintf(format, args...)}}
}

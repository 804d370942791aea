package util

import "github.com/google/uuid"

// NewID returns a new UUIDv4 string. All entity IDs use this format.
func NewID() string {
	return uuid.NewString()
}

// IsValidID reports whether s is a well-formed UUID.
func IsValidID(s string) bool {
	return uuid.Validate(s) == nil
}

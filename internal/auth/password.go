// Package auth provides password hashing and bearer token issuance for
// the API surface. The store only ever sees the hashes produced here.
package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/en-arthur/initflow-be/pkg/types"
)

// maxPasswordLength caps input before hashing; bcrypt silently truncates
// at 72 bytes, so longer inputs are rejected instead.
const maxPasswordLength = 72

// minPasswordLength is the shortest password accepted at signup.
const minPasswordLength = 8

// HashPassword returns the bcrypt hash of password at the default cost.
func HashPassword(password string) (string, error) {
	if len(password) < minPasswordLength {
		return "", fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}
	if len(password) > maxPasswordLength {
		return "", fmt.Errorf("password must be at most %d characters", maxPasswordLength)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword compares a candidate password against a stored hash.
// A mismatch returns ErrUnauthenticated; the caller must not distinguish
// it from an unknown account.
func CheckPassword(hash, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return types.ErrUnauthenticated
		}
		return fmt.Errorf("comparing password: %w", err)
	}
	return nil
}

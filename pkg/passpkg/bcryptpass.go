// Package passpkg provides password hashing functionality.
package passpkg

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MaxLength is the longest password in bytes that bcrypt accepts.
const MaxLength = 72

// Hash returns the bcrypt hash of the password.
//
// Every call uses a fresh random salt, so hashing the same password twice
// gives different results.
func Hash(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hashedPassword), nil
}

// Check checks if the provided password is correct.
func Check(password, hashedPassword string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// Verify reports whether hashedPassword was produced from password.
// Malformed hashes are reported as a mismatch.
func Verify(password, hashedPassword string) bool {
	return Check(password, hashedPassword) == nil
}

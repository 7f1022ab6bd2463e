package helpers

import (
	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes the plain text password using bcrypt
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CompareHashAndPassword compares a bcrypt hash with a plain password
func CompareHashAndPassword(hash string, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// MeetsStrengthPolicy reports whether the password has at least 8
// characters, one uppercase letter and one character outside [A-Za-z0-9].
func MeetsStrengthPolicy(password string) bool {
	if len(password) < 8 {
		return false
	}
	hasUpper := false
	hasSpecial := false
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			// alphanumeric, not special
		default:
			hasSpecial = true
		}
	}
	return hasUpper && hasSpecial
}

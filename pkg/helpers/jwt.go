package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for malformed, forged or expired tokens.
var ErrInvalidToken = errors.New("invalid token")

// TokenManager issues and validates signed, time-bound bearer tokens.
// The subject claim carries the user's email. Tokens are valid until
// expiry; there is no revocation list.
type TokenManager struct {
	Secret     []byte
	AccessTTL  time.Duration
	ConfirmTTL time.Duration
	ResetTTL   time.Duration
}

func NewTokenManager(secret string, accessTTL, confirmTTL, resetTTL time.Duration) *TokenManager {
	return &TokenManager{
		Secret:     []byte(secret),
		AccessTTL:  accessTTL,
		ConfirmTTL: confirmTTL,
		ResetTTL:   resetTTL,
	}
}

// Issue produces a signed token encoding {sub, exp, iat}. A zero ttl
// falls back to AccessTTL.
func (m *TokenManager) Issue(subject string, ttl time.Duration) (string, time.Time, error) {
	if ttl <= 0 {
		ttl = m.AccessTTL
	}
	exp := time.Now().Add(ttl)
	claims := &jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(exp),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(m.Secret)
	return s, exp, err
}

// Validate parses the token and returns its subject. It fails when the
// signature is invalid, the token is malformed, or it has expired.
func (m *TokenManager) Validate(tokenStr string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.Secret, nil
	})
	if err != nil || !tkn.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

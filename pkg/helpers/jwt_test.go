package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenManager() *TokenManager {
	return NewTokenManager("testsecret", time.Hour, 24*time.Hour, 30*time.Minute)
}

func TestTokenIssueAndValidate(t *testing.T) {
	m := newTestTokenManager()

	token, exp, err := m.Issue("a@x.com", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	subject, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", subject)
}

func TestTokenIssueDefaultTTL(t *testing.T) {
	m := newTestTokenManager()

	_, exp, err := m.Issue("a@x.com", 0)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(m.AccessTTL), exp, 5*time.Second)
}

func TestTokenValidateExpired(t *testing.T) {
	m := newTestTokenManager()

	token, _, err := m.Issue("a@x.com", -time.Minute)
	require.NoError(t, err)

	_, err = m.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenValidateWrongSecret(t *testing.T) {
	m := newTestTokenManager()
	other := NewTokenManager("othersecret", time.Hour, 24*time.Hour, 30*time.Minute)

	token, _, err := other.Issue("a@x.com", time.Hour)
	require.NoError(t, err)

	_, err = m.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenValidateMalformed(t *testing.T) {
	m := newTestTokenManager()

	for _, tok := range []string{"", "garbage", "a.b.c"} {
		_, err := m.Validate(tok)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}

package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJWTer(ttl time.Duration) *JWTer {
	return &JWTer{Secret: []byte("unit-test-secret"), Issuer: "skyshop-test", TTL: ttl}
}

func TestIssueAndParse(t *testing.T) {
	j := newJWTer(time.Hour)
	tok, err := j.Issue("user-1", "user")
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := j.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UID)
	assert.Equal(t, "user", claims.Role)
}

func TestParseExpired(t *testing.T) {
	// TTL beyond the 60s leeway in the past
	j := newJWTer(-5 * time.Minute)
	tok, err := j.Issue("user-1", "user")
	require.NoError(t, err)

	_, err = j.Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseWrongSecret(t *testing.T) {
	j := newJWTer(time.Hour)
	tok, err := j.Issue("user-1", "user")
	require.NoError(t, err)

	other := &JWTer{Secret: []byte("different-secret"), Issuer: "skyshop-test", TTL: time.Hour}
	_, err = other.Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseWrongIssuer(t *testing.T) {
	j := newJWTer(time.Hour)
	tok, err := j.Issue("user-1", "user")
	require.NoError(t, err)

	other := &JWTer{Secret: []byte("unit-test-secret"), Issuer: "someone-else", TTL: time.Hour}
	_, err = other.Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseGarbage(t *testing.T) {
	j := newJWTer(time.Hour)
	_, err := j.Parse("not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

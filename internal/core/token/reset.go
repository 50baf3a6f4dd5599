// Package token implements single-use password-reset tokens. Only the
// sha256 of a token is ever persisted; the plaintext goes out by email and
// is never stored, so a database leak does not yield usable reset tokens.
package token

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"time"
)

const rawLen = 20 // bytes of entropy before hex encoding

// Reset is a freshly issued token. Plain is delivered to the user, Hash and
// ExpiresAt are what gets persisted.
type Reset struct {
	Plain     string
	Hash      string
	ExpiresAt time.Time
}

func NewReset(ttl time.Duration) (Reset, error) {
	b := make([]byte, rawLen)
	if _, err := rand.Read(b); err != nil {
		return Reset{}, err
	}
	plain := hex.EncodeToString(b)
	return Reset{
		Plain:     plain,
		Hash:      Hash(plain),
		ExpiresAt: time.Now().Add(ttl),
	}, nil
}

// Hash maps a plaintext token to its stored form.
func Hash(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}

func Matches(plain, storedHash string) bool {
	h := Hash(plain)
	return subtle.ConstantTimeCompare([]byte(h), []byte(storedHash)) == 1
}

// Valid reports whether a token issued with expiry is still usable at now.
// now == expiry counts as expired.
func Valid(expiry, now time.Time) bool {
	return now.Before(expiry)
}

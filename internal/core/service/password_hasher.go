package service

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltLength        = 64
	digestLength      = 64
	defaultIterations = 210_000
)

// PasswordHasher derives PBKDF2-SHA512 password digests. The stored encoding
// is "base64(salt).base64(digest)" so the salt travels with the digest and
// verification needs no extra state.
type PasswordHasher struct {
	iterations int
}

// NewPasswordHasher returns a hasher with the production iteration count.
func NewPasswordHasher() *PasswordHasher {
	return &PasswordHasher{iterations: defaultIterations}
}

// NewPasswordHasherWithIterations allows a lower cost, e.g. in tests.
func NewPasswordHasherWithIterations(iterations int) *PasswordHasher {
	if iterations <= 0 {
		iterations = defaultIterations
	}
	return &PasswordHasher{iterations: iterations}
}

// Hash derives a digest of password under a fresh 64-byte random salt.
func (h *PasswordHasher) Hash(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("hash password: read salt: %w", err)
	}
	digest := pbkdf2.Key([]byte(password), salt, h.iterations, digestLength, sha512.New)
	return base64.StdEncoding.EncodeToString(salt) + "." + base64.StdEncoding.EncodeToString(digest), nil
}

// Verify recomputes the digest of password under the salt extracted from
// stored and compares in constant time. Any malformed encoding fails closed.
func (h *PasswordHasher) Verify(password, stored string) bool {
	parts := strings.Split(stored, ".")
	if len(parts) != 2 {
		return false
	}
	salt, err := base64.StdEncoding.DecodeString(parts[0])
	if err != nil {
		return false
	}
	want, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return false
	}
	got := pbkdf2.Key([]byte(password), salt, h.iterations, len(want), sha512.New)
	return subtle.ConstantTimeCompare(got, want) == 1
}

package ports

// PasswordHasher turns plaintext passwords into salted one-way encodings and
// verifies candidates against them. Implementations must never log or store
// the plaintext.
type PasswordHasher interface {
	// Hash returns an opaque encoding combining a fresh random salt and the
	// derived digest.
	Hash(password string) (string, error)
	// Verify reports whether password matches the stored encoding. Malformed
	// encodings fail closed.
	Verify(password, stored string) bool
}

package ports

// PasswordHasher is a one-way, salted, deliberately slow hash.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	// Verify reports whether plaintext matches hash. A non-nil error means the
	// stored hash itself is malformed.
	Verify(plaintext, hash string) (bool, error)
}

package model

// PasswordHasher hashes and verifies passwords with a per-identity salt.
type PasswordHasher interface {
	GenerateSalt() ([]byte, error)
	Hash(password string, salt []byte) ([]byte, error)
	Verify(password string, salt, hash []byte) bool
}

// Package password implements credential hashing with argon2id and an
// explicit per-identity salt.
package password

import (
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"

	"github.com/idforge/identity-server/internal/model"
)

// OWASP-recommended argon2id parameters.
const (
	argonTime    = 1         // iterations
	argonMemory  = 64 * 1024 // 64 MB
	argonThreads = 4         // parallelism
	saltLength   = 16        // salt length in bytes
	keyLength    = 32        // output length in bytes
)

var _ model.PasswordHasher = (*Argon2Hasher)(nil)

// Argon2Hasher implements model.PasswordHasher.
type Argon2Hasher struct{}

// NewArgon2Hasher creates a new Argon2Hasher.
func NewArgon2Hasher() *Argon2Hasher {
	return &Argon2Hasher{}
}

// GenerateSalt returns a fresh random salt. A salt belongs to exactly one
// identity and is never reused.
func (h *Argon2Hasher) GenerateSalt() ([]byte, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	return salt, nil
}

// Hash derives the stored hash for a password. Deterministic for a given
// (password, salt) pair.
func (h *Argon2Hasher) Hash(password string, salt []byte) ([]byte, error) {
	if password == "" {
		return nil, errors.New("password is empty")
	}
	if len(salt) == 0 {
		return nil, errors.New("salt is empty")
	}

	return argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, keyLength), nil
}

// Verify reports whether password hashes to hash under salt. The comparison
// runs in constant time.
func (h *Argon2Hasher) Verify(password string, salt, hash []byte) bool {
	computed := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, keyLength)
	return subtle.ConstantTimeCompare(computed, hash) == 1
}

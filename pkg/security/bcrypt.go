// Package security contains everything related to the security of user data
package security

import (
	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor used when no other value
// is configured
const DefaultCost = 12

type BcryptHasher struct {
	Cost int
}

func New(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}

	return &BcryptHasher{Cost: cost}
}

// Hash produces a salted one-way hash of p. Two calls with the same
// input yield different outputs
func (b *BcryptHasher) Hash(p string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(p), b.Cost)
	if err != nil {
		return "", err
	}

	return string(h), nil
}

// Verify reports whether p matches the stored hash e. Malformed
// hashes simply verify as false
func (b *BcryptHasher) Verify(p, e string) bool {
	return bcrypt.CompareHashAndPassword([]byte(e), []byte(p)) == nil
}

// Package auth implements password hashing, session tokens and the role
// policy guarding business operations.
package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"job-board/internal/domain"
)

// DefaultCost is the bcrypt cost used when none is configured.
const DefaultCost = 10

// Credentials hashes and verifies user passwords.
type Credentials struct {
	cost int
}

// NewCredentials returns a Credentials using the given bcrypt cost. Costs
// outside bcrypt's accepted range fall back to DefaultCost.
func NewCredentials(cost int) *Credentials {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Credentials{cost: cost}
}

// Cost returns the bcrypt cost factor in use.
func (c *Credentials) Cost() int {
	return c.cost
}

// Hash derives a salted bcrypt hash from plaintext.
func (c *Credentials) Hash(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), c.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether plaintext matches hashed. Any mismatch or
// malformed hash yields false.
func (c *Credentials) Verify(plaintext, hashed string) bool {
	if hashed == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext)) == nil
}

// Apply hashes the user's pending plaintext password, if any, into
// PasswordHash and clears the plaintext. Users without a pending password
// are left untouched so an existing hash is never hashed again.
func (c *Credentials) Apply(u *domain.User) error {
	if u == nil || u.Password == "" {
		return nil
	}
	hash, err := c.Hash(u.Password)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	u.Password = ""
	return nil
}

// IsPasswordTooLong reports whether err came from bcrypt's 72 byte limit.
func IsPasswordTooLong(err error) bool {
	return errors.Is(err, bcrypt.ErrPasswordTooLong)
}

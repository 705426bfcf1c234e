// Package auth holds the password hashing used by the user service.
package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"fixdesk/internal/shared/config"
)

type BcryptPasswordHasher struct {
	cost int
}

// NewBcryptPasswordHasher builds a hasher from the auth config, clamping an
// out-of-range cost to the bcrypt default.
func NewBcryptPasswordHasher(cfg config.PasswordConfig) *BcryptPasswordHasher {
	cost := cfg.BcryptCost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptPasswordHasher{cost: cost}
}

func (h *BcryptPasswordHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to generate password hash: %w", err)
	}
	return string(hash), nil
}

// Verify reports a generic failure whatever the cause, so callers cannot
// distinguish a wrong password from a malformed hash.
func (h *BcryptPasswordHasher) Verify(password, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return fmt.Errorf("password verification failed")
	}
	return nil
}

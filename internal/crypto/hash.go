package crypto

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidHash indicates a stored hash that bcrypt cannot parse. A mismatch
// between password and hash is not an error; this is reserved for corrupted
// records so callers can tell data corruption apart from user error.
var ErrInvalidHash = errors.New("invalid password hash")

// DefaultHashCost is the bcrypt work factor used when none is configured.
const DefaultHashCost = 10

// HashPassword hashes a password using bcrypt with the given cost. bcrypt
// generates a fresh random salt per call, so hashing the same password twice
// yields different outputs. A cost below bcrypt's minimum falls back to
// DefaultHashCost.
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost {
		cost = DefaultHashCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword checks whether a password matches the given bcrypt hash.
// A mismatch returns (false, nil); a hash bcrypt cannot parse returns
// ErrInvalidHash.
func VerifyPassword(password, encodedHash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, fmt.Errorf("%w: %v", ErrInvalidHash, err)
}

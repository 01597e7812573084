package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"strings"

	"golang.org/x/crypto/scrypt"
)

const (
	scryptN       = 16384
	scryptR       = 8
	scryptP       = 1
	scryptSaltLen = 16
	scryptKeyLen  = 64
)

var (
	ErrEmptyPassword = errors.New("password cannot be empty")
	ErrMalformedHash = errors.New("malformed password hash")
)

// Hasher derives and verifies salted password hashes.
type Hasher interface {
	Hash(password string) (string, error)

	// Verify returns (true, nil) on match, (false, nil) on mismatch and
	// (false, err) when the stored hash is malformed. It never panics.
	Verify(password, encoded string) (bool, error)
}

// ScryptHasher implements Hasher using scrypt with a random per-call salt.
// Encoded form is hex(derivedKey) + "." + hex(salt).
type ScryptHasher struct{}

func NewScryptHasher() *ScryptHasher {
	return &ScryptHasher{}
}

func (h *ScryptHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}

	salt := make([]byte, scryptSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	key, err := scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return "", err
	}

	return hex.EncodeToString(key) + "." + hex.EncodeToString(salt), nil
}

func (h *ScryptHasher) Verify(password, encoded string) (bool, error) {
	keyHex, saltHex, ok := strings.Cut(encoded, ".")
	if !ok {
		return false, ErrMalformedHash
	}

	storedKey, err := hex.DecodeString(keyHex)
	if err != nil {
		return false, ErrMalformedHash
	}
	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return false, ErrMalformedHash
	}
	if len(storedKey) == 0 || len(salt) == 0 {
		return false, ErrMalformedHash
	}

	key, err := scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, len(storedKey))
	if err != nil {
		return false, err
	}

	return subtle.ConstantTimeCompare(key, storedKey) == 1, nil
}

package utils

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/crypto/scrypt"
)

// ErrUnsupportedHash is returned for stored hashes in an unknown encoding
var ErrUnsupportedHash = errors.New("unsupported password hash format")

const (
	defaultPBKDF2Iterations = 600000
	scryptKeyLen            = 64
)

// HashPassword hashes a password with bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckPassword verifies password against a stored hash.
// Besides bcrypt it accepts the werkzeug "pbkdf2:<digest>[:<iterations>]$salt$hex" and
// "scrypt[:<n>:<r>:<p>]$salt$hex" encodings; legacy is true when one of those matched
// so the caller can re-hash with bcrypt.
func CheckPassword(stored, password string) (ok bool, legacy bool, err error) {
	switch {
	case isBcrypt(stored):
		err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(password))
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, false, nil
		}
		if err != nil {
			return false, false, fmt.Errorf("%w: %v", ErrUnsupportedHash, err)
		}
		return true, false, nil
	case strings.HasPrefix(stored, "pbkdf2:"), strings.HasPrefix(stored, "scrypt"):
		ok, err := checkWerkzeug(stored, password)
		return ok, ok, err
	default:
		return false, false, ErrUnsupportedHash
	}
}

func isBcrypt(stored string) bool {
	return strings.HasPrefix(stored, "$2a$") ||
		strings.HasPrefix(stored, "$2b$") ||
		strings.HasPrefix(stored, "$2y$")
}

func checkWerkzeug(stored, password string) (bool, error) {
	parts := strings.SplitN(stored, "$", 3)
	if len(parts) != 3 {
		return false, ErrUnsupportedHash
	}
	method, salt, expected := parts[0], parts[1], parts[2]

	want, err := hex.DecodeString(expected)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrUnsupportedHash, err)
	}

	got, err := werkzeugDigest(method, salt, password, len(want))
	if err != nil {
		return false, err
	}
	return subtle.ConstantTimeCompare(got, want) == 1, nil
}

func werkzeugDigest(method, salt, password string, keyLen int) ([]byte, error) {
	fields := strings.Split(method, ":")

	switch fields[0] {
	case "pbkdf2":
		if len(fields) < 2 || len(fields) > 3 {
			return nil, ErrUnsupportedHash
		}
		newHash, size, err := digestFor(fields[1])
		if err != nil {
			return nil, err
		}
		iterations := defaultPBKDF2Iterations
		if len(fields) == 3 {
			if iterations, err = strconv.Atoi(fields[2]); err != nil || iterations <= 0 {
				return nil, ErrUnsupportedHash
			}
		}
		return pbkdf2.Key([]byte(password), []byte(salt), iterations, size, newHash), nil

	case "scrypt":
		n, r, p := 1<<15, 8, 1
		if len(fields) == 4 {
			var err error
			if n, err = strconv.Atoi(fields[1]); err != nil {
				return nil, ErrUnsupportedHash
			}
			if r, err = strconv.Atoi(fields[2]); err != nil {
				return nil, ErrUnsupportedHash
			}
			if p, err = strconv.Atoi(fields[3]); err != nil {
				return nil, ErrUnsupportedHash
			}
		} else if len(fields) != 1 {
			return nil, ErrUnsupportedHash
		}
		if keyLen == 0 {
			keyLen = scryptKeyLen
		}
		key, err := scrypt.Key([]byte(password), []byte(salt), n, r, p, keyLen)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnsupportedHash, err)
		}
		return key, nil
	}
	return nil, ErrUnsupportedHash
}

func digestFor(name string) (func() hash.Hash, int, error) {
	switch name {
	case "sha1":
		return sha1.New, sha1.Size, nil
	case "sha256":
		return sha256.New, sha256.Size, nil
	case "sha512":
		return sha512.New, sha512.Size, nil
	}
	return nil, 0, ErrUnsupportedHash
}

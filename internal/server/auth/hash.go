package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordLength is the longest password bcrypt accepts, in bytes.
const MaxPasswordLength = 72

// HashPassword returns a salted bcrypt hash of password.
func HashPassword(password string, cost int) ([]byte, error) {
	pw := []byte(password)
	defer common.WipeByteArray(pw)
	return bcrypt.GenerateFromPassword(pw, cost)
}

// CheckPassword compares password with a bcrypt hash in constant time.
func CheckPassword(hash []byte, password string) bool {
	pw := []byte(password)
	defer common.WipeByteArray(pw)
	return bcrypt.CompareHashAndPassword(hash, pw) == nil
}

// HashToken returns the hex SHA-256 digest under which a refresh token is
// stored.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// ContainsTokenHash reports whether token's digest is in hashes. Every entry
// is compared in constant time.
func ContainsTokenHash(hashes []string, token string) bool {
	candidate := []byte(HashToken(token))
	found := 0
	for _, h := range hashes {
		found |= subtle.ConstantTimeCompare([]byte(h), candidate)
	}
	return found == 1
}

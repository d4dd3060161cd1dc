package common

import (
	"crypto/rand"
	"strings"
)

// GenerateRandByteArray returns n random bytes. crypto/rand.Read never
// fails on supported platforms, so the error is ignored.
func GenerateRandByteArray(n int) []byte {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return b
}

// WipeByteArray zeroes b in place. A nil slice is ignored.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header value. ok is false when the scheme is wrong or the token is empty.
func BearerToken(header string) (token string, ok bool) {
	scheme, rest, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, BearerScheme) {
		return "", false
	}
	token = strings.TrimSpace(rest)
	return token, token != ""
}

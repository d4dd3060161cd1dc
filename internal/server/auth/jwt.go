// Package auth implements token issuing and verification plus the one-way
// hashing used for passwords and stored refresh tokens.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// secretKeySize is the length of a generated signing secret.
const secretKeySize = 32

// Claims are the registered JWT claims plus the token kind. The kind keeps a
// refresh token from being accepted where an access token is expected.
type Claims struct {
	jwt.RegisteredClaims
	Kind models.TokenKind `json:"kind"`
}

// TokenService issues and verifies HS256 tokens with a secret held for the
// lifetime of the process.
type TokenService struct {
	secret []byte
	now    func() time.Time
}

// Option configures a TokenService.
type Option func(*TokenService)

// WithClock replaces the wall clock used for iat/exp.
func WithClock(now func() time.Time) Option {
	return func(s *TokenService) {
		s.now = now
	}
}

// NewTokenService returns a TokenService signing with secret. An empty secret
// is replaced by a random one, so tokens do not survive a restart.
func NewTokenService(secret []byte, opts ...Option) *TokenService {
	if len(secret) == 0 {
		secret = GenerateSecretKey()
	}
	s := &TokenService{secret: secret, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GenerateSecretKey returns a fresh random signing secret.
func GenerateSecretKey() []byte {
	return common.GenerateRandByteArray(secretKeySize)
}

// Issue mints a token of the given kind for subjectID valid for ttl.
func (s *TokenService) Issue(subjectID string, kind models.TokenKind, ttl time.Duration) (string, error) {
	return generateToken(subjectID, kind, s.secret, ttl, s.now())
}

// Verify checks signature, expiry and kind, and returns the subject.
// Errors are common.ErrMalformedToken, common.ErrTokenExpired or
// common.ErrInvalidToken.
func (s *TokenService) Verify(tokenString string, kind models.TokenKind) (string, error) {
	return parseToken(tokenString, kind, s.secret, s.now)
}

// GenerateToken mints a token using the wall clock.
func GenerateToken(subjectID string, kind models.TokenKind, secretKey []byte, validityDuration time.Duration) (string, error) {
	return generateToken(subjectID, kind, secretKey, validityDuration, time.Now())
}

// ParseToken verifies a token using the wall clock and returns its subject.
func ParseToken(tokenString string, kind models.TokenKind, secretKey []byte) (string, error) {
	return parseToken(tokenString, kind, secretKey, time.Now)
}

func generateToken(subjectID string, kind models.TokenKind, secretKey []byte, validity time.Duration, now time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
			ID:        uuid.NewString(),
		},
		Kind: kind,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func parseToken(tokenString string, kind models.TokenKind, secretKey []byte, now func() time.Time) (string, error) {
	claims := &Claims{}

	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) {
			return secretKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(now),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return "", common.ErrMalformedToken
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", common.ErrTokenExpired
		default:
			return "", common.ErrInvalidToken
		}
	}

	if claims.Kind != kind || claims.Subject == "" {
		return "", common.ErrInvalidToken
	}

	return claims.Subject, nil
}

// Package models defines server-side data models persisted in the store.
package models

import "time"

// Account is a registered user.
type Account struct {
	// ID is assigned at creation and never changes.
	ID string
	// UserName is unique and case-sensitive.
	UserName string
	// PasswordHash is a bcrypt hash of the password.
	PasswordHash []byte
	// RefreshTokens holds SHA-256 hex digests of the refresh tokens
	// currently valid for this account, in issue order.
	RefreshTokens []string
	CreatedAt     time.Time
}

// TokenKind distinguishes access tokens from refresh tokens.
type TokenKind string

const (
	AccessToken  TokenKind = "access"
	RefreshToken TokenKind = "refresh"
)

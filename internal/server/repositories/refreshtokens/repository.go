// Package refreshtokens declares the server-side repository contract for the
// set of hashed refresh tokens attached to an account.
package refreshtokens

import "context"

// Repository mutates an account's refresh-token set. Each call is a single
// atomic update, so concurrent logins cannot lose an append. Unknown
// accounts yield common.ErrorNotFound.
type Repository interface {
	// AppendRefreshToken adds tokenHash to the end of the set.
	AppendRefreshToken(ctx context.Context, accountID string, tokenHash string) error

	// RemoveRefreshToken drops tokenHash from the set. Removing an absent
	// hash is not an error.
	RemoveRefreshToken(ctx context.Context, accountID string, tokenHash string) error

	// ClearRefreshTokens empties the set.
	ClearRefreshTokens(ctx context.Context, accountID string) error
}

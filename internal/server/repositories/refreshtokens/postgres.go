// Package refreshtokens provides a PostgreSQL-backed repository for the
// refresh-token set stored as a JSONB array on each account row.
package refreshtokens

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
)

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) AppendRefreshToken(ctx context.Context, accountID string, tokenHash string) error {
	query := `
		UPDATE accounts
		SET refresh_tokens = refresh_tokens || to_jsonb($2::text)
		WHERE id = $1
	`
	return r.exec(ctx, query, accountID, tokenHash)
}

func (r *PostgresRepository) RemoveRefreshToken(ctx context.Context, accountID string, tokenHash string) error {
	query := `
		UPDATE accounts
		SET refresh_tokens = refresh_tokens - $2::text
		WHERE id = $1
	`
	return r.exec(ctx, query, accountID, tokenHash)
}

func (r *PostgresRepository) ClearRefreshTokens(ctx context.Context, accountID string) error {
	query := `
		UPDATE accounts
		SET refresh_tokens = '[]'::jsonb
		WHERE id = $1
	`
	return r.exec(ctx, query, accountID)
}

func (r *PostgresRepository) exec(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if err := dbx.ExpectOneRow(res, common.ErrorNotFound); err != nil {
		return err
	}
	return nil
}

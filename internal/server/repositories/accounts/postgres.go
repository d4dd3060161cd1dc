package accounts

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgresRepository stores accounts as rows of the accounts table. The
// refresh-token set is a JSONB array on the same row.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, account *models.Account) (*models.Account, error) {
	query := `
		INSERT INTO accounts (username, password_hash)
		VALUES ($1, $2)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query, account.UserName, account.PasswordHash).
		Scan(&account.ID, &account.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	account.RefreshTokens = []string{}
	return account, nil
}

func (r *PostgresRepository) GetByUserName(ctx context.Context, userName string) (*models.Account, error) {
	query := `
		SELECT id, username, password_hash, refresh_tokens, created_at
		FROM accounts
		WHERE username = $1
	`
	return r.getOne(ctx, query, userName)
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Account, error) {
	query := `
		SELECT id, username, password_hash, refresh_tokens, created_at
		FROM accounts
		WHERE id = $1
	`
	return r.getOne(ctx, query, id)
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, arg string) (*models.Account, error) {
	account := &models.Account{}
	var tokens []byte

	err := r.db.QueryRowContext(ctx, query, arg).
		Scan(&account.ID, &account.UserName, &account.PasswordHash, &tokens, &account.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	account.RefreshTokens, err = decodeTokenHashes(tokens)
	if err != nil {
		return nil, err
	}
	return account, nil
}

func decodeTokenHashes(raw []byte) ([]string, error) {
	hashes := []string{}
	if len(raw) == 0 {
		return hashes, nil
	}
	if err := json.Unmarshal(raw, &hashes); err != nil {
		return nil, fmt.Errorf("decode refresh tokens: %w", err)
	}
	return hashes, nil
}

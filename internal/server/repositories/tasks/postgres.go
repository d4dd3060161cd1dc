package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgresRepository implements task storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a task and fills in the generated id and creation time.
func (r *PostgresRepository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	query := `
		INSERT INTO tasks (owner_id, title, description, due_date, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		task.OwnerID, task.Title, task.Description, nullDate(task.DueDate), string(task.Status)).
		Scan(&task.ID, &task.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return task, nil
}

// ListByOwner returns the owner's tasks in creation order. The result is
// never nil.
func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Task, error) {
	query := `
		SELECT id, owner_id, title, description, due_date, status, created_at
		FROM tasks
		WHERE owner_id = $1
		ORDER BY created_at, id
	`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Get(ctx context.Context, ownerID string, id string) (*models.Task, error) {
	query := `
		SELECT id, owner_id, title, description, due_date, status, created_at
		FROM tasks
		WHERE id = $1 AND owner_id = $2
	`
	t, err := scanTask(r.db.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		return nil, mapLookupError(err)
	}
	return t, nil
}

// Update overwrites the mutable fields of a task owned by task.OwnerID.
func (r *PostgresRepository) Update(ctx context.Context, task *models.Task) error {
	query := `
		UPDATE tasks
		SET title = $3, description = $4, due_date = $5, status = $6
		WHERE id = $1 AND owner_id = $2
	`
	res, err := r.db.ExecContext(ctx, query,
		task.ID, task.OwnerID, task.Title, task.Description, nullDate(task.DueDate), string(task.Status))
	if err != nil {
		return mapLookupError(err)
	}
	return dbx.ExpectOneRow(res, common.ErrorNotFound)
}

func (r *PostgresRepository) Delete(ctx context.Context, ownerID string, id string) error {
	query := `
		DELETE FROM tasks
		WHERE id = $1 AND owner_id = $2
	`
	res, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return mapLookupError(err)
	}
	return dbx.ExpectOneRow(res, common.ErrorNotFound)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(s rowScanner) (*models.Task, error) {
	var (
		t      models.Task
		due    sql.NullTime
		status string
	)
	if err := s.Scan(&t.ID, &t.OwnerID, &t.Title, &t.Description, &due, &status, &t.CreatedAt); err != nil {
		return nil, err
	}
	t.Status = models.TaskStatus(status)
	if due.Valid {
		d := due.Time.UTC()
		t.DueDate = &d
	}
	return &t, nil
}

// mapLookupError turns "no such row" and ids that are not UUIDs into
// common.ErrorNotFound.
func mapLookupError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return common.ErrorNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.InvalidTextRepresentation {
		return common.ErrorNotFound
	}
	return fmt.Errorf("db error: %w", err)
}

func nullDate(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

// Package tasks declares the server-side repository contract for tasks and
// provides PostgreSQL and in-memory implementations.
package tasks

import (
	"context"

	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

// Repository persists tasks. Every lookup is scoped by owner: a task that
// exists but belongs to someone else is reported as common.ErrorNotFound.
type Repository interface {
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*models.Task, error)
	Get(ctx context.Context, ownerID string, id string) (*models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, ownerID string, id string) error
}

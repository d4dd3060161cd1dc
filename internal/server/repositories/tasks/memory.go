package tasks

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/google/uuid"
)

// MemoryRepository keeps tasks in process memory in insertion order.
type MemoryRepository struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]*models.Task
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byID: make(map[string]*models.Task)}
}

func (r *MemoryRepository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task.ID = uuid.NewString()
	task.CreatedAt = time.Now().UTC()

	r.byID[task.ID] = cloneTask(task)
	r.order = append(r.order, task.ID)
	return task, nil
}

func (r *MemoryRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []*models.Task{}
	for _, id := range r.order {
		if t := r.byID[id]; t.OwnerID == ownerID {
			result = append(result, cloneTask(t))
		}
	}
	return result, nil
}

func (r *MemoryRepository) Get(ctx context.Context, ownerID string, id string) (*models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.byID[id]
	if !ok || t.OwnerID != ownerID {
		return nil, common.ErrorNotFound
	}
	return cloneTask(t), nil
}

func (r *MemoryRepository) Update(ctx context.Context, task *models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.byID[task.ID]
	if !ok || t.OwnerID != task.OwnerID {
		return common.ErrorNotFound
	}
	updated := cloneTask(task)
	updated.CreatedAt = t.CreatedAt
	r.byID[task.ID] = updated
	return nil
}

func (r *MemoryRepository) Delete(ctx context.Context, ownerID string, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.byID[id]
	if !ok || t.OwnerID != ownerID {
		return common.ErrorNotFound
	}
	delete(r.byID, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func cloneTask(t *models.Task) *models.Task {
	c := *t
	if t.DueDate != nil {
		d := *t.DueDate
		c.DueDate = &d
	}
	return &c
}

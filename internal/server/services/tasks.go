package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/tasks"
	"github.com/google/uuid"
)

// Validation messages returned to clients.
const (
	MsgTitleRequired  = "Task title is required"
	MsgInvalidDueDate = "Invalid due date format. Use YYYY-MM-DD."
	MsgInvalidStatus  = "Invalid task status. Use pending, in_progress or completed."
)

// TaskInput carries client-supplied task fields. A nil field was absent
// from the request.
type TaskInput struct {
	Title       *string
	Description *string
	DueDate     *string
	Status      *string
}

// TaskService provides task CRUD scoped to the calling account. Tasks that
// belong to somebody else are indistinguishable from missing ones.
type TaskService struct {
	repo tasks.Repository
}

func NewTaskService(repo tasks.Repository) *TaskService {
	return &TaskService{repo: repo}
}

// Create stores a new pending task owned by ownerID.
func (s *TaskService) Create(ctx context.Context, ownerID string, in TaskInput) (*models.Task, error) {
	if in.Title == nil || *in.Title == "" {
		return nil, common.NewValidationError(MsgTitleRequired)
	}
	due, err := parseDueDate(in.DueDate)
	if err != nil {
		return nil, err
	}

	task := &models.Task{
		OwnerID: ownerID,
		Title:   *in.Title,
		DueDate: due,
		Status:  models.TaskPending,
	}
	if in.Description != nil {
		task.Description = *in.Description
	}

	created, err := s.repo.Create(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("error creating task: %w", err)
	}
	return created, nil
}

// List returns the owner's tasks in creation order.
func (s *TaskService) List(ctx context.Context, ownerID string) ([]*models.Task, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *TaskService) Get(ctx context.Context, ownerID string, taskID string) (*models.Task, error) {
	if !isTaskID(taskID) {
		return nil, common.ErrorNotFound
	}
	return s.repo.Get(ctx, ownerID, taskID)
}

// Update applies in to an owned task. Title and status, when present, must
// be valid; an absent due date clears the stored one.
func (s *TaskService) Update(ctx context.Context, ownerID string, taskID string, in TaskInput) (*models.Task, error) {
	task, err := s.Get(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		if *in.Title == "" {
			return nil, common.NewValidationError(MsgTitleRequired)
		}
		task.Title = *in.Title
	}
	if in.Description != nil {
		task.Description = *in.Description
	}
	if in.Status != nil {
		status := models.TaskStatus(*in.Status)
		if !status.Valid() {
			return nil, common.NewValidationError(MsgInvalidStatus)
		}
		task.Status = status
	}
	task.DueDate, err = parseDueDate(in.DueDate)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, ownerID string, taskID string) error {
	if !isTaskID(taskID) {
		return common.ErrorNotFound
	}
	return s.repo.Delete(ctx, ownerID, taskID)
}

func isTaskID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// parseDueDate treats nil and "" as "no due date".
func parseDueDate(v *string) (*time.Time, error) {
	if v == nil || *v == "" {
		return nil, nil
	}
	d, err := time.Parse(common.DateLayout, *v)
	if err != nil {
		return nil, common.NewValidationError(MsgInvalidDueDate)
	}
	return &d, nil
}

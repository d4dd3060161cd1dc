package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/services"
	"github.com/go-chi/chi/v5"
)

// Task endpoint messages.
const (
	MsgTaskCreated  = "Task created"
	MsgTaskUpdated  = "Task updated"
	MsgTaskDeleted  = "Task deleted"
	MsgTaskNotFound = "Task not found"
)

// TaskService is the owner-scoped task store the task handlers drive.
type TaskService interface {
	Create(ctx context.Context, ownerID string, in services.TaskInput) (*models.Task, error)
	List(ctx context.Context, ownerID string) ([]*models.Task, error)
	Get(ctx context.Context, ownerID string, taskID string) (*models.Task, error)
	Update(ctx context.Context, ownerID string, taskID string, in services.TaskInput) (*models.Task, error)
	Delete(ctx context.Context, ownerID string, taskID string) error
}

type taskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	DueDate     *string `json:"dueDate"`
	Status      *string `json:"status"`
}

func (t taskRequest) input() services.TaskInput {
	return services.TaskInput{
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		Status:      t.Status,
	}
}

type taskResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	DueDate     string `json:"dueDate,omitempty"`
}

type taskCreatedResponse struct {
	Message string `json:"message"`
	TaskID  string `json:"task_id"`
}

func toTaskResponse(t *models.Task) taskResponse {
	resp := taskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
	}
	if t.DueDate != nil {
		resp.DueDate = t.DueDate.Format(common.DateLayout)
	}
	return resp
}

func (h *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	account, ok := AccountFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, MsgTokenMissing)
		return
	}

	var req taskRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, MsgInvalidBody)
		return
	}

	task, err := h.tasks.Create(r.Context(), account.ID, req.input())
	if err != nil {
		h.failTask(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, taskCreatedResponse{Message: MsgTaskCreated, TaskID: task.ID})
}

func (h *Handler) ListTasks(w http.ResponseWriter, r *http.Request) {
	account, ok := AccountFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, MsgTokenMissing)
		return
	}

	tasks, err := h.tasks.List(r.Context(), account.ID)
	if err != nil {
		h.failTask(w, r, err)
		return
	}

	resp := make([]taskResponse, 0, len(tasks))
	for _, t := range tasks {
		resp = append(resp, toTaskResponse(t))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) GetTask(w http.ResponseWriter, r *http.Request) {
	account, ok := AccountFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, MsgTokenMissing)
		return
	}

	task, err := h.tasks.Get(r.Context(), account.ID, chi.URLParam(r, "id"))
	if err != nil {
		h.failTask(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toTaskResponse(task))
}

func (h *Handler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	account, ok := AccountFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, MsgTokenMissing)
		return
	}

	var req taskRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, MsgInvalidBody)
		return
	}

	if _, err := h.tasks.Update(r.Context(), account.ID, chi.URLParam(r, "id"), req.input()); err != nil {
		h.failTask(w, r, err)
		return
	}

	writeMessage(w, http.StatusOK, MsgTaskUpdated)
}

func (h *Handler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	account, ok := AccountFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, MsgTokenMissing)
		return
	}

	if err := h.tasks.Delete(r.Context(), account.ID, chi.URLParam(r, "id")); err != nil {
		h.failTask(w, r, err)
		return
	}

	writeMessage(w, http.StatusOK, MsgTaskDeleted)
}

func (h *Handler) failTask(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, common.ErrorNotFound) {
		writeMessage(w, http.StatusNotFound, MsgTaskNotFound)
		return
	}
	h.fail(w, r, err)
}

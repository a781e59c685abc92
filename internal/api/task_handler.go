package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"calcapi/internal/models"
	"calcapi/internal/tasks"
)

const maxBodyBytes = 1 << 20

type TaskHandler struct {
	store  *tasks.Store
	logger *slog.Logger
}

func NewTaskHandler(store *tasks.Store, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{store: store, logger: logger}
}

// Create обрабатывает POST /tasks
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTaskRequest
	if !decodeBody(w, r, &req) {
		return
	}

	task, err := h.store.Create(req.Title)
	if err != nil {
		h.sendStoreError(w, err)
		return
	}

	h.logger.Info("task created", "id", task.ID)
	SendSuccessResponse(w, http.StatusCreated, task)
}

// List обрабатывает GET /tasks
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	SendSuccessResponse(w, http.StatusOK, h.store.List())
}

func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	task, err := h.store.Get(chi.URLParam(r, "id"))
	if err != nil {
		h.sendStoreError(w, err)
		return
	}
	SendSuccessResponse(w, http.StatusOK, task)
}

// Update обрабатывает PUT /tasks/{id}: меняются только переданные поля
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch models.TaskPatch
	if !decodeBody(w, r, &patch) {
		return
	}

	task, err := h.store.Update(chi.URLParam(r, "id"), patch)
	if err != nil {
		h.sendStoreError(w, err)
		return
	}

	h.logger.Info("task updated", "id", task.ID, "done", task.Done)
	SendSuccessResponse(w, http.StatusOK, task)
}

// Delete обрабатывает DELETE /tasks/{id}
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.store.Delete(id); err != nil {
		h.sendStoreError(w, err)
		return
	}

	h.logger.Info("task deleted", "id", id)
	SendSuccessResponse(w, http.StatusOK, models.DeleteResult{ID: id, Deleted: true})
}

// Stats обрабатывает GET /stats
func (h *TaskHandler) Stats(w http.ResponseWriter, r *http.Request) {
	SendSuccessResponse(w, http.StatusOK, h.store.Stats())
}

func (h *TaskHandler) sendStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, tasks.ErrValidation):
		SendErrorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, tasks.ErrNotFound):
		SendErrorResponse(w, http.StatusNotFound, err.Error())
	default:
		h.logger.Error("task store failure", "error", err)
		SendErrorResponse(w, http.StatusInternalServerError, "Internal server error")
	}
}

// decodeBody разбирает JSON-тело запроса; при ошибке сам отвечает 400
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		SendErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

package web

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/eleven-am/taskdeck/internal/task"
)

// Handler exposes the orchestrator over HTTP. Rendering stays with the
// client; every endpoint returns the JSON response model.
type Handler struct {
	orch *Orchestrator
	log  *slog.Logger
}

func NewHandler(orch *Orchestrator, log *slog.Logger) *Handler {
	return &Handler{orch: orch, log: log}
}

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/view", h.GetView)
	r.Post("/actions", h.PostAction)
	r.Get("/tasks", h.ListTasks)
	r.Get("/tasks/{id}", h.GetTask)
	r.Get("/search", h.SearchTasks)
	r.Get("/stats", h.GetStatistics)
	r.Get("/categories", h.ListCategories)

	return r
}

// GetView returns the full view model: filtered listing, categories,
// statistics, enums, and the edit-mode task when ?edit= is present.
func (h *Handler) GetView(w http.ResponseWriter, r *http.Request) {
	statusFilter := r.URL.Query().Get("status")
	editID, _ := strconv.ParseInt(r.URL.Query().Get("edit"), 10, 64)

	view := h.orch.View(r.Context(), statusFilter, editID)
	respondJSON(w, http.StatusOK, view)
}

// PostAction accepts a mutation submission as form data or JSON.
func (h *Handler) PostAction(w http.ResponseWriter, r *http.Request) {
	sub, err := decodeSubmission(r)
	if err != nil {
		h.log.Warn("invalid submission", slog.Any("error", err))
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result := h.orch.Do(r.Context(), sub)
	respondJSON(w, http.StatusOK, result)
}

func (h *Handler) ListTasks(w http.ResponseWriter, r *http.Request) {
	statusFilter := task.Status(r.URL.Query().Get("status"))

	tasks, err := h.orch.store.GetAll(r.Context(), statusFilter)
	if err != nil {
		h.log.Error("failed to list tasks", slog.Any("error", err))
		respondError(w, http.StatusInternalServerError, "failed to list tasks")
		return
	}
	respondJSON(w, http.StatusOK, taskMaps(tasks))
}

func (h *Handler) GetTask(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid task id")
		return
	}

	t, err := h.orch.store.FindByID(r.Context(), id)
	if err != nil {
		h.log.Error("failed to get task", slog.Int64("id", id), slog.Any("error", err))
		respondError(w, http.StatusInternalServerError, "failed to get task")
		return
	}
	if t == nil {
		respondError(w, http.StatusNotFound, "task not found")
		return
	}
	respondJSON(w, http.StatusOK, t.ToMap())
}

func (h *Handler) SearchTasks(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")

	tasks, err := h.orch.store.Search(r.Context(), term)
	if err != nil {
		h.log.Error("search failed", slog.Any("error", err))
		respondError(w, http.StatusInternalServerError, "search failed")
		return
	}
	respondJSON(w, http.StatusOK, taskMaps(tasks))
}

func (h *Handler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.orch.store.Statistics(r.Context())
	if err != nil {
		h.log.Error("failed to load statistics", slog.Any("error", err))
		respondError(w, http.StatusInternalServerError, "failed to load statistics")
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.orch.store.Categories(r.Context())
	if err != nil {
		h.log.Error("failed to load categories", slog.Any("error", err))
		respondError(w, http.StatusInternalServerError, "failed to load categories")
		return
	}
	respondJSON(w, http.StatusOK, categories)
}

// Health returns a health check response.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func decodeSubmission(r *http.Request) (Submission, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var body struct {
			Action      string  `json:"action"`
			ID          int64   `json:"id"`
			Title       *string `json:"title"`
			Description *string `json:"description"`
			Status      *string `json:"status"`
			Priority    *string `json:"priority"`
			DueDate     *string `json:"due_date"`
			CategoryID  *string `json:"category_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			return Submission{}, err
		}
		return Submission{
			Action:      body.Action,
			ID:          body.ID,
			Title:       body.Title,
			Description: body.Description,
			Status:      body.Status,
			Priority:    body.Priority,
			DueDate:     body.DueDate,
			CategoryID:  body.CategoryID,
		}, nil
	}

	if err := r.ParseForm(); err != nil {
		return Submission{}, err
	}
	id, _ := strconv.ParseInt(r.PostForm.Get("id"), 10, 64)
	return Submission{
		Action:      r.PostForm.Get("action"),
		ID:          id,
		Title:       formValue(r.PostForm, "title"),
		Description: formValue(r.PostForm, "description"),
		Status:      formValue(r.PostForm, "status"),
		Priority:    formValue(r.PostForm, "priority"),
		DueDate:     formValue(r.PostForm, "due_date"),
		CategoryID:  formValue(r.PostForm, "category_id"),
	}, nil
}

// formValue preserves the sent/absent distinction the update path
// relies on.
func formValue(form url.Values, key string) *string {
	if !form.Has(key) {
		return nil
	}
	v := form.Get(key)
	return &v
}

func taskMaps(tasks []*task.Task) []map[string]interface{} {
	maps := make([]map[string]interface{}, 0, len(tasks))
	for _, t := range tasks {
		maps = append(maps, t.ToMap())
	}
	return maps
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

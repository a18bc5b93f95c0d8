package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"taskdeck/internal/models"
)

type dashboardPage struct {
	User   models.UserProfile
	Tasks  []models.Task
	Filter string
}

type taskFormPage struct {
	Task  *models.Task
	Error string
	//zero value renders an empty suggestions block inside the dialog
	Suggestions suggestionsPage
}

// filterTasks is a pure predicate over the fetched list; changing the filter
// never re-queries the store.
func filterTasks(tasks []models.Task, filter string) []models.Task {
	if filter == "" || filter == "all" {
		return tasks
	}
	filtered := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if string(t.Status) == filter {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

// Dashboard renders the task list for the signed-in owner. HTMX requests
// get only the task-list block so filter changes swap in place.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.claims(r)
	if !ok {
		HomeRedirect(w, r)
		return
	}

	filter := r.URL.Query().Get("filter")

	tasks, err := h.tasks.List(r.Context(), claims.UID)
	if err != nil {
		slog.Error("task_list_failed", "error", err, "uid", claims.UID)
		http.Error(w, "Failed to load tasks", http.StatusInternalServerError)
		return
	}

	data := dashboardPage{
		User:   claims.Profile(),
		Tasks:  filterTasks(tasks, filter),
		Filter: filter,
	}

	if isHTMX(r) {
		h.render(w, "dashboard.html", "task-list", data)
		return
	}
	h.render(w, "dashboard.html", "dashboard.html", data)
}

// NewTaskForm opens the editor dialog in create mode.
func (h *Handler) NewTaskForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, "dashboard.html", "task-form", taskFormPage{})
}

// EditTaskForm opens the editor dialog in edit mode, pre-filled with the
// task being edited.
func (h *Handler) EditTaskForm(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.claims(r)
	if !ok {
		HomeRedirect(w, r)
		return
	}

	taskID := chi.URLParam(r, "id")
	tasks, err := h.tasks.List(r.Context(), claims.UID)
	if err != nil {
		slog.Error("task_list_failed", "error", err, "uid", claims.UID)
		http.Error(w, "Failed to load task", http.StatusInternalServerError)
		return
	}

	for i := range tasks {
		if tasks[i].ID == taskID {
			h.render(w, "dashboard.html", "task-form", taskFormPage{Task: &tasks[i]})
			return
		}
	}
	http.Error(w, "Task not found", http.StatusNotFound)
}

// parseTaskFields validates the editor form. A validation failure here means
// the store is never called for this submission.
func parseTaskFields(r *http.Request) (models.TaskFields, error) {
	title := strings.TrimSpace(r.FormValue("title"))
	if title == "" {
		return models.TaskFields{}, fmt.Errorf("Title is required")
	}

	dueDate, err := time.Parse("2006-01-02", r.FormValue("dueDate"))
	if err != nil {
		return models.TaskFields{}, fmt.Errorf("A due date is required")
	}

	status := models.Status(r.FormValue("status"))
	if status == "" {
		status = models.StatusTodo
	}
	if !status.Valid() {
		return models.TaskFields{}, fmt.Errorf("Unknown status")
	}

	return models.TaskFields{
		Title:       title,
		Description: strings.TrimSpace(r.FormValue("description")),
		DueDate:     dueDate,
		Status:      status,
	}, nil
}

func (h *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.claims(r)
	if !ok {
		HomeRedirect(w, r)
		return
	}

	fields, err := parseTaskFields(r)
	if err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		h.render(w, "dashboard.html", "task-form", taskFormPage{Error: err.Error()})
		return
	}

	if _, err := h.tasks.Create(r.Context(), claims.UID, fields); err != nil {
		slog.Error("task_create_failed", "error", err, "uid", claims.UID)
		w.WriteHeader(http.StatusUnprocessableEntity)
		h.render(w, "dashboard.html", "task-form", taskFormPage{Error: "Failed to create task."})
		return
	}

	h.refreshTaskList(w, r, claims.UID)
}

func (h *Handler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.claims(r)
	if !ok {
		HomeRedirect(w, r)
		return
	}

	taskID := chi.URLParam(r, "id")
	fields, err := parseTaskFields(r)
	if err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		h.render(w, "dashboard.html", "task-form", taskFormPage{Error: err.Error()})
		return
	}

	//last write wins: no conflict detection against concurrent edits
	if err := h.tasks.Update(r.Context(), taskID, claims.UID, fields); err != nil {
		slog.Error("task_update_failed", "error", err, "uid", claims.UID, "task_id", taskID)
		w.WriteHeader(http.StatusUnprocessableEntity)
		h.render(w, "dashboard.html", "task-form", taskFormPage{Error: "Failed to update task."})
		return
	}

	h.refreshTaskList(w, r, claims.UID)
}

func (h *Handler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.claims(r)
	if !ok {
		HomeRedirect(w, r)
		return
	}

	taskID := chi.URLParam(r, "id")
	if err := h.tasks.Delete(r.Context(), taskID, claims.UID); err != nil {
		slog.Error("task_delete_failed", "error", err, "uid", claims.UID, "task_id", taskID)
		http.Error(w, "Failed to delete task", http.StatusInternalServerError)
		return
	}

	h.refreshTaskList(w, r, claims.UID)
}

// refreshTaskList re-renders from a fresh authoritative list after a
// mutation; there is no optimistic local patch to keep consistent. The
// mutation forms submit the active filter so it survives the swap.
func (h *Handler) refreshTaskList(w http.ResponseWriter, r *http.Request, uid string) {
	if !isHTMX(r) {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	tasks, err := h.tasks.List(r.Context(), uid)
	if err != nil {
		slog.Error("task_list_failed", "error", err, "uid", uid)
		http.Error(w, "Failed to load tasks", http.StatusInternalServerError)
		return
	}

	filter := r.FormValue("filter")
	h.render(w, "dashboard.html", "task-list", dashboardPage{
		Tasks:  filterTasks(tasks, filter),
		Filter: filter,
	})
}

package handler

import (
	"context"
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"

	"taskdeck/internal/auth"
	"taskdeck/internal/models"
)

// TaskStore is the owner-scoped task persistence boundary.
type TaskStore interface {
	List(ctx context.Context, ownerID string) ([]models.Task, error)
	Create(ctx context.Context, ownerID string, fields models.TaskFields) (models.Task, error)
	Update(ctx context.Context, taskID, ownerID string, fields models.TaskFields) error
	Delete(ctx context.Context, taskID, ownerID string) error
}

// UserStore is the profile persistence boundary.
type UserStore interface {
	Create(ctx context.Context, email, displayName, passwordHash string) (models.UserProfile, error)
	GetByEmail(ctx context.Context, email string) (models.UserProfile, string, error)
	GetByUID(ctx context.Context, uid string) (models.UserProfile, error)
	UpsertOAuth(ctx context.Context, email, displayName, photoURL string) (models.UserProfile, error)
	UpdateDisplayName(ctx context.Context, uid, displayName string) error
}

// TitleSuggester proposes task titles for a description.
type TitleSuggester interface {
	SuggestTitles(ctx context.Context, description string) ([]string, error)
}

// Handler carries the injected collaborators for every page and action.
type Handler struct {
	tasks        TaskStore
	users        UserStore
	suggester    TitleSuggester
	tokens       *auth.TokenManager
	templatesDir string
}

func New(tasks TaskStore, users UserStore, suggester TitleSuggester, tokens *auth.TokenManager, templatesDir string) *Handler {
	return &Handler{
		tasks:        tasks,
		users:        users,
		suggester:    suggester,
		tokens:       tokens,
		templatesDir: templatesDir,
	}
}

var templateFuncs = template.FuncMap{
	"reltime": func(t time.Time) string {
		return humanize.Time(t)
	},
	"duedate": func(t time.Time) string {
		return t.Format("Jan 2, 2006")
	},
	"dateinput": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("2006-01-02")
	},
}

// render executes the named template from the given file. name is either the
// file's base name for a full page or a {{block}} name for an HTMX partial.
func (h *Handler) render(w http.ResponseWriter, file, name string, data any) {
	tmpl, err := template.New(file).Funcs(templateFuncs).ParseFiles(filepath.Join(h.templatesDir, file))
	if err != nil {
		slog.Error("template_parse_failed", "file", file, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if err := tmpl.ExecuteTemplate(w, name, data); err != nil {
		slog.Error("template_render_failed", "file", file, "name", name, "error", err)
	}
}

func HomeRedirect(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// DashboardRedirect sends the root path to the dashboard; the access gate
// bounces unauthenticated visitors on to login from there.
func DashboardRedirect(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// claims pulls the verified identity the gate placed on the context.
func (h *Handler) claims(r *http.Request) (*models.Claims, bool) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		slog.Error("missing_session_claims", "path", r.URL.Path)
	}
	return claims, ok
}

func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

package handler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"taskdeck/internal/auth"
	"taskdeck/internal/config"
	"taskdeck/internal/models"
	"taskdeck/internal/repository"
)

const testUID = "uid-123"

type fakeTaskStore struct {
	tasks     []models.Task
	created   []models.TaskFields
	updated   map[string]models.TaskFields
	deleted   []string
	listCalls int
}

func (f *fakeTaskStore) List(ctx context.Context, ownerID string) ([]models.Task, error) {
	f.listCalls++
	var owned []models.Task
	for _, t := range f.tasks {
		if t.UserID == ownerID {
			owned = append(owned, t)
		}
	}
	return owned, nil
}

func (f *fakeTaskStore) Create(ctx context.Context, ownerID string, fields models.TaskFields) (models.Task, error) {
	f.created = append(f.created, fields)
	task := models.Task{
		ID:          fmt.Sprintf("task-%d", len(f.created)),
		UserID:      ownerID,
		Title:       fields.Title,
		Description: fields.Description,
		DueDate:     fields.DueDate,
		Status:      fields.Status,
		CreatedAt:   time.Now(),
	}
	f.tasks = append(f.tasks, task)
	return task, nil
}

func (f *fakeTaskStore) Update(ctx context.Context, taskID, ownerID string, fields models.TaskFields) error {
	if f.updated == nil {
		f.updated = map[string]models.TaskFields{}
	}
	for i, t := range f.tasks {
		if t.ID == taskID && t.UserID == ownerID {
			f.updated[taskID] = fields
			f.tasks[i].Title = fields.Title
			f.tasks[i].Description = fields.Description
			f.tasks[i].DueDate = fields.DueDate
			f.tasks[i].Status = fields.Status
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeTaskStore) Delete(ctx context.Context, taskID, ownerID string) error {
	f.deleted = append(f.deleted, taskID)
	kept := f.tasks[:0]
	for _, t := range f.tasks {
		if t.ID != taskID || t.UserID != ownerID {
			kept = append(kept, t)
		}
	}
	f.tasks = kept
	return nil
}

type fakeUserStore struct {
	users       map[string]models.UserProfile
	hashes      map[string]string
	nameUpdates []string
	createErr   error
}

func (f *fakeUserStore) Create(ctx context.Context, email, displayName, passwordHash string) (models.UserProfile, error) {
	if f.createErr != nil {
		return models.UserProfile{}, f.createErr
	}
	if f.users == nil {
		f.users = map[string]models.UserProfile{}
		f.hashes = map[string]string{}
	}
	if _, exists := f.users[email]; exists {
		return models.UserProfile{}, repository.ErrDuplicateEmail
	}
	user := models.UserProfile{UID: "uid-" + email, Email: email, DisplayName: displayName, Role: models.RoleUser}
	f.users[email] = user
	f.hashes[email] = passwordHash
	return user, nil
}

func (f *fakeUserStore) GetByEmail(ctx context.Context, email string) (models.UserProfile, string, error) {
	user, ok := f.users[email]
	if !ok {
		return models.UserProfile{}, "", repository.ErrNotFound
	}
	return user, f.hashes[email], nil
}

func (f *fakeUserStore) GetByUID(ctx context.Context, uid string) (models.UserProfile, error) {
	for _, u := range f.users {
		if u.UID == uid {
			return u, nil
		}
	}
	return models.UserProfile{}, repository.ErrNotFound
}

func (f *fakeUserStore) UpsertOAuth(ctx context.Context, email, displayName, photoURL string) (models.UserProfile, error) {
	if f.users == nil {
		f.users = map[string]models.UserProfile{}
		f.hashes = map[string]string{}
	}
	user := models.UserProfile{UID: "uid-" + email, Email: email, DisplayName: displayName, PhotoURL: photoURL, Role: models.RoleUser}
	f.users[email] = user
	return user, nil
}

func (f *fakeUserStore) UpdateDisplayName(ctx context.Context, uid, displayName string) error {
	f.nameUpdates = append(f.nameUpdates, displayName)
	for email, u := range f.users {
		if u.UID == uid {
			u.DisplayName = displayName
			f.users[email] = u
		}
	}
	return nil
}

type fakeSuggester struct {
	titles []string
	err    error
	calls  int
}

func (f *fakeSuggester) SuggestTitles(ctx context.Context, description string) ([]string, error) {
	f.calls++
	return f.titles, f.err
}

type testEnv struct {
	handler   *Handler
	router    http.Handler
	tokens    *auth.TokenManager
	tasks     *fakeTaskStore
	users     *fakeUserStore
	suggester *fakeSuggester
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	tokens := auth.NewTokenManager(config.SessionConfig{
		Secret:   "test-secret",
		Issuer:   "taskdeck",
		Audience: "taskdeck",
		TTL:      time.Hour,
	})
	gate := auth.NewGate(tokens)

	tasks := &fakeTaskStore{}
	users := &fakeUserStore{}
	suggester := &fakeSuggester{}
	h := New(tasks, users, suggester, tokens, "../../templates")

	r := chi.NewRouter()
	r.Use(gate.Middleware)
	r.Get("/login", h.LoginPage)
	r.Post("/login", h.LoginSubmit)
	r.Get("/signup", h.SignupPage)
	r.Post("/signup", h.SignupSubmit)
	r.Get("/dashboard", h.Dashboard)
	r.Get("/dashboard/tasks/new", h.NewTaskForm)
	r.Post("/dashboard/tasks", h.CreateTask)
	r.Get("/dashboard/tasks/{id}/edit", h.EditTaskForm)
	r.Post("/dashboard/tasks/{id}", h.UpdateTask)
	r.Post("/dashboard/tasks/{id}/delete", h.DeleteTask)
	r.Post("/dashboard/suggest-titles", h.SuggestTitles)
	r.Get("/profile", h.ProfilePage)
	r.Post("/profile", h.ProfileSubmit)

	return &testEnv{handler: h, router: r, tokens: tokens, tasks: tasks, users: users, suggester: suggester}
}

// authedForm posts form values with a valid session cookie for testUID.
func (e *testEnv) authedForm(t *testing.T, method, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	req.Header.Set("HX-Request", "true")

	token, err := e.tokens.Issue(models.UserProfile{UID: testUID, Email: "ada@example.com", DisplayName: "Ada"})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: token})

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

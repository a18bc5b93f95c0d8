package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/markbates/goth/gothic"
	"golang.org/x/crypto/bcrypt"

	"taskdeck/internal/auth"
	"taskdeck/internal/models"
	"taskdeck/internal/repository"
)

const (
	minDisplayNameLen = 2
	minPasswordLen    = 6
)

type loginPage struct {
	Email string
	Error string
}

type signupPage struct {
	DisplayName string
	Email       string
	Error       string
}

func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, "login.html", "login.html", loginPage{})
}

func (h *Handler) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")

	fail := func() {
		//one message for unknown email and wrong password alike
		h.render(w, "login.html", "login.html", loginPage{
			Email: email,
			Error: "Invalid email or password.",
		})
	}

	if email == "" || password == "" {
		fail()
		return
	}

	user, hash, err := h.users.GetByEmail(r.Context(), email)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			slog.Error("login_lookup_failed", "error", err)
		}
		fail()
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		fail()
		return
	}

	h.startSession(w, r, user)
}

func (h *Handler) SignupPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, "signup.html", "signup.html", signupPage{})
}

func (h *Handler) SignupSubmit(w http.ResponseWriter, r *http.Request) {
	displayName := strings.TrimSpace(r.FormValue("displayName"))
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")

	fail := func(msg string) {
		h.render(w, "signup.html", "signup.html", signupPage{
			DisplayName: displayName,
			Email:       email,
			Error:       msg,
		})
	}

	//validation blocks the store call entirely
	if len(displayName) < minDisplayNameLen {
		fail("Name must be at least 2 characters.")
		return
	}
	if !strings.Contains(email, "@") {
		fail("Please enter a valid email address.")
		return
	}
	if len(password) < minPasswordLen {
		fail("Password must be at least 6 characters.")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		slog.Error("password_hash_failed", "error", err)
		fail("An unexpected error occurred during sign-up.")
		return
	}

	user, err := h.users.Create(r.Context(), email, displayName, string(hash))
	if errors.Is(err, repository.ErrDuplicateEmail) {
		fail("This email address is already in use.")
		return
	}
	if err != nil {
		slog.Error("signup_create_failed", "error", err)
		fail("An unexpected error occurred during sign-up.")
		return
	}

	h.startSession(w, r, user)
}

// BeginGoogleAuth hands the request to gothic, forcing the google provider.
func BeginGoogleAuth(w http.ResponseWriter, r *http.Request) {
	//gothic looks for a provider query by default
	q := r.URL.Query()
	q.Add("provider", "google")
	r.URL.RawQuery = q.Encode()

	gothic.BeginAuthHandler(w, r)
}

// GoogleCallback completes the provider flow, then funnels into the same
// session issuance as password login.
func (h *Handler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	gothUser, err := gothic.CompleteUserAuth(w, r)
	if err != nil {
		slog.Error("oauth_callback_failed", "error", err)
		HomeRedirect(w, r)
		return
	}

	name := gothUser.Name
	if name == "" {
		name = gothUser.NickName
	}

	user, err := h.users.UpsertOAuth(r.Context(), gothUser.Email, name, gothUser.AvatarURL)
	if err != nil {
		slog.Error("oauth_upsert_failed", "error", err)
		HomeRedirect(w, r)
		return
	}

	h.startSession(w, r, user)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	//clear session cookie
	auth.ClearSessionCookie(w)

	//clear gothic session; harmless when the user never used oauth
	if err := gothic.Logout(w, r); err != nil {
		slog.Debug("gothic_logout_failed", "error", err)
	}

	HomeRedirect(w, r)
}

// startSession mints the session token - role claim included - sets the
// cookie and lands the user on the dashboard.
func (h *Handler) startSession(w http.ResponseWriter, r *http.Request, user models.UserProfile) {
	token, err := h.tokens.Issue(user)
	if err != nil {
		slog.Error("session_token_issue_failed", "error", err)
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	auth.SetSessionCookie(w, token)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

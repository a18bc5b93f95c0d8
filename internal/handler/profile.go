package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"taskdeck/internal/auth"
	"taskdeck/internal/models"
)

type profilePage struct {
	User    models.UserProfile
	Error   string
	Message string
}

func (h *Handler) ProfilePage(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.claims(r)
	if !ok {
		HomeRedirect(w, r)
		return
	}

	//prefer the stored profile; fall back to what the token carries
	user, err := h.users.GetByUID(r.Context(), claims.UID)
	if err != nil {
		user = claims.Profile()
	}

	h.render(w, "profile.html", "profile.html", profilePage{User: user})
}

// ProfileSubmit updates the display name, the one editable profile field,
// and re-issues the session cookie so the token claim matches the store.
func (h *Handler) ProfileSubmit(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.claims(r)
	if !ok {
		HomeRedirect(w, r)
		return
	}

	user, err := h.users.GetByUID(r.Context(), claims.UID)
	if err != nil {
		user = claims.Profile()
	}

	displayName := strings.TrimSpace(r.FormValue("displayName"))
	if len(displayName) < minDisplayNameLen {
		h.render(w, "profile.html", "profile.html", profilePage{
			User:  user,
			Error: "Name must be at least 2 characters.",
		})
		return
	}

	if err := h.users.UpdateDisplayName(r.Context(), claims.UID, displayName); err != nil {
		slog.Error("profile_update_failed", "error", err, "uid", claims.UID)
		h.render(w, "profile.html", "profile.html", profilePage{
			User:  user,
			Error: "Failed to update profile.",
		})
		return
	}

	user.DisplayName = displayName
	if token, err := h.tokens.Issue(user); err == nil {
		auth.SetSessionCookie(w, token)
	} else {
		slog.Error("session_token_issue_failed", "error", err, "uid", claims.UID)
	}

	h.render(w, "profile.html", "profile.html", profilePage{
		User:    user,
		Message: "Profile updated successfully!",
	})
}

package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"taskdeck/internal/suggest"
)

type suggestionsPage struct {
	Titles []string
	Error  string
}

// SuggestTitles asks the model for title candidates. A too-short description
// is rejected here, before any network call, and a model failure leaves the
// caller's current suggestions untouched.
func (h *Handler) SuggestTitles(w http.ResponseWriter, r *http.Request) {
	description := strings.TrimSpace(r.FormValue("description"))
	if len(description) < suggest.MinDescriptionLen {
		w.WriteHeader(http.StatusUnprocessableEntity)
		h.render(w, "dashboard.html", "suggestions", suggestionsPage{
			Error: "Please enter a longer description (at least 10 characters).",
		})
		return
	}

	titles, err := h.suggester.SuggestTitles(r.Context(), description)
	if err != nil {
		slog.Error("title_suggestion_failed", "error", err)
		w.WriteHeader(http.StatusBadGateway)
		h.render(w, "dashboard.html", "suggestions", suggestionsPage{
			Error: "Failed to suggest titles.",
		})
		return
	}

	h.render(w, "dashboard.html", "suggestions", suggestionsPage{Titles: titles})
}

package handler

import (
	"net/http"

	"taskdeck/internal/models"
)

type adminPage struct {
	User models.UserProfile
}

// AdminPage is the admin-only landing page. The role check happened in the
// gate; by the time this runs the token already asserted the admin role.
func (h *Handler) AdminPage(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.claims(r)
	if !ok {
		HomeRedirect(w, r)
		return
	}

	h.render(w, "admin.html", "admin.html", adminPage{User: claims.Profile()})
}

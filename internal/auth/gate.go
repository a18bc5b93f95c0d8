package auth

import (
	"context"
	"net/http"
	"strings"

	"taskdeck/internal/models"
)

// PathClass is the access class of a request path. The gate's behavior is a
// pure function of (path class, token validity, role), re-evaluated per
// request with no persisted state.
type PathClass int

const (
	PathPublic PathClass = iota
	PathAuthOnly
	PathProtected
	PathAdmin
)

const (
	loginPath     = "/login"
	dashboardPath = "/dashboard"
)

// ClassifyPath maps a request path onto its access class. Admin paths are a
// subset of protected paths with an extra role requirement.
func ClassifyPath(path string) PathClass {
	switch {
	case strings.HasPrefix(path, "/admin"):
		return PathAdmin
	case strings.HasPrefix(path, "/dashboard"), strings.HasPrefix(path, "/profile"):
		return PathProtected
	case strings.HasPrefix(path, "/login"), strings.HasPrefix(path, "/signup"):
		return PathAuthOnly
	}
	return PathPublic
}

// we are doing this to avoid collision with other libraries' context keys
type contextKey string

const claimsKey contextKey = "sessionClaims"

// ClaimsFromContext returns the verified claims placed on the context by the
// gate middleware.
func ClaimsFromContext(ctx context.Context) (*models.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*models.Claims)
	return claims, ok
}

// Gate is the request-level access filter. It never fails a request with an
// error response: every verification failure degrades to a redirect, and any
// residual cookie holding a bad token is cleared on the way out.
type Gate struct {
	tokens *TokenManager
}

func NewGate(tokens *TokenManager) *Gate {
	return &Gate{tokens: tokens}
}

// verify pulls the session cookie and validates it. A missing cookie, a
// malformed token and an expired token are all the same "no session" answer.
// hadCookie reports whether a cookie was present at all, valid or not, so
// the caller can clear a stale one.
func (g *Gate) verify(r *http.Request) (claims *models.Claims, ok, hadCookie bool) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return nil, false, false
	}
	claims, err = g.tokens.Verify(cookie.Value)
	if err != nil {
		return nil, false, true
	}
	return claims, true, true
}

// Middleware enforces the access rules for every request. Protected paths
// without a valid session bounce to login (clearing any residual cookie),
// the login/signup pages bounce an authenticated visitor to the dashboard,
// and admin paths additionally require the role claim. Public paths pass
// through untouched.
func (g *Gate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok, hadCookie := g.verify(r)
		// A cookie that failed verification is dead weight on any path.
		if hadCookie && !ok {
			ClearSessionCookie(w)
		}

		class := ClassifyPath(r.URL.Path)
		switch class {
		case PathAuthOnly:
			if ok {
				http.Redirect(w, r, dashboardPath, http.StatusSeeOther)
				return
			}

		case PathProtected, PathAdmin:
			if !ok {
				http.Redirect(w, r, loginPath, http.StatusSeeOther)
				return
			}
			if class == PathAdmin && !claims.IsAdmin() {
				http.Redirect(w, r, dashboardPath, http.StatusSeeOther)
				return
			}
			ctx := context.WithValue(r.Context(), claimsKey, claims)
			r = r.WithContext(ctx)
		}

		next.ServeHTTP(w, r)
	})
}

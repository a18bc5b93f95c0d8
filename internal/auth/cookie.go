package auth

import "net/http"

// SessionCookieName is the single cookie carrying the session token.
const SessionCookieName = "session_token"

func SetSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true, //not visible to JS [IMP for security]
		SameSite: http.SameSiteLaxMode,
		//Secure: true,//enable it for HTTPS in production
	})
}

func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

package middleware

import (
	"net/http"

	"github.com/google/uuid"
)

const SessionCookie = "dealflow_sid"

// Session makes sure every request carries a session ID, issuing a new
// cookie when the browser has none or sends a malformed one.
//
// The cookie lasts for the browser session. Idle expiry is up to the session
// store.
func Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sid := ""
		if c, err := r.Cookie(SessionCookie); err == nil {
			if _, err := uuid.Parse(c.Value); err == nil {
				sid = c.Value
			}
		}
		if sid == "" {
			sid = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookie,
				Value:    sid,
				Path:     "/",
				HttpOnly: true,
				Secure:   r.TLS != nil,
				SameSite: http.SameSiteLaxMode,
			})
		}
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sid)))
	})
}

package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/xavierca1/dealflow/internal/entity"
)

type ctxKey int

const (
	userKey ctxKey = iota
	tokenKey
	sessionKey
)

// UserFrom returns the verified user set by Auth.
func UserFrom(ctx context.Context) *entity.User {
	u, _ := ctx.Value(userKey).(*entity.User)
	return u
}

// TokenFrom returns the bearer token set by Auth.
func TokenFrom(ctx context.Context) string {
	t, _ := ctx.Value(tokenKey).(string)
	return t
}

// SessionFrom returns the session ID set by Session.
func SessionFrom(ctx context.Context) string {
	s, _ := ctx.Value(sessionKey).(string)
	return s
}

func WithUser(ctx context.Context, u *entity.User, token string) context.Context {
	ctx = context.WithValue(ctx, userKey, u)
	return context.WithValue(ctx, tokenKey, token)
}

func WithSession(ctx context.Context, sid string) context.Context {
	return context.WithValue(ctx, sessionKey, sid)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code, "message": message})
}

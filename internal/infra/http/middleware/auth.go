package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"

	"github.com/xavierca1/dealflow/internal/entity"
	"github.com/xavierca1/dealflow/internal/infra/integration/supabase"
)

const (
	verifiedTokenTTL   = time.Minute
	verifiedTokenCache = 1024
)

type UserVerifier interface {
	GetUser(ctx context.Context, accessToken string) (*entity.User, error)
}

// Authenticator checks the bearer token against the auth provider and
// remembers verified tokens for a minute.
type Authenticator struct {
	verifier UserVerifier
	verified *expirable.LRU[string, *entity.User]
	logger   *zap.Logger
}

func NewAuthenticator(verifier UserVerifier, logger *zap.Logger) *Authenticator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Authenticator{
		verifier: verifier,
		verified: expirable.NewLRU[string, *entity.User](verifiedTokenCache, nil, verifiedTokenTTL),
		logger:   logger,
	}
}

func (a *Authenticator) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing bearer token")
			return
		}

		key := tokenDigest(token)
		user, ok := a.verified.Get(key)
		if !ok {
			var err error
			user, err = a.verifier.GetUser(r.Context(), token)
			switch {
			case errors.Is(err, supabase.ErrUnauthorized):
				writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid or expired token")
				return
			case err != nil:
				RecordIntegrationError("supabase")
				a.logger.Error("token verification failed", zap.Error(err))
				writeError(w, http.StatusBadGateway, "UPSTREAM_ERROR", "could not verify token")
				return
			}
			a.verified.Add(key, user)
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user, token)))
	})
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func tokenDigest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

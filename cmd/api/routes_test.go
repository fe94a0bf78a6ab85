package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/xavierca1/dealflow/internal/config"
	"github.com/xavierca1/dealflow/internal/entity"
	"github.com/xavierca1/dealflow/internal/infra/http/handlers"
	"github.com/xavierca1/dealflow/internal/infra/integration/supabase"
	"github.com/xavierca1/dealflow/internal/infra/session"
	"github.com/xavierca1/dealflow/internal/usecase"
)

type rejectAll struct{}

func (rejectAll) GetUser(context.Context, string) (*entity.User, error) {
	return nil, supabase.ErrUnauthorized
}

func testRouter() http.Handler {
	cfg := config.Config{
		CORSOrigins:      []string{"http://localhost:5173"},
		ClientRatePerSec: 100,
		ClientRateBurst:  100,
		WebhookSecret:    "s3cret",
	}
	uc := useCases{
		drafts: usecase.NewLeadDraftUseCase(session.NewStore(0, 10), nil),
	}
	return newRouter(cfg, zap.NewNop(), uc, routerDeps{
		verifier: rejectAll{},
		health:   handlers.NewHealthHandler(nil, nil, nil, "test"),
	})
}

func TestPublicRoutes(t *testing.T) {
	r := testRouter()

	for _, path := range []string{"/health", "/metrics"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/webhooks/crm", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "unsigned webhook")
	assert.Contains(t, rec.Body.String(), "INVALID_SIGNATURE")
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	r := testRouter()

	for _, tt := range []struct{ method, path string }{
		{http.MethodGet, "/pipeline/counts"},
		{http.MethodGet, "/pipeline/leads"},
		{http.MethodPut, "/pipeline/filters"},
		{http.MethodGet, "/leads/individual/draft"},
		{http.MethodGet, "/leads/42/details"},
		{http.MethodGet, "/interventions/reminders"},
		{http.MethodGet, "/vocabulary/sectors"},
		{http.MethodGet, "/auth/user"},
	} {
		req := httptest.NewRequest(tt.method, tt.path, nil)
		req.Header.Set("Authorization", "Bearer expired")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, tt.path)
	}
}

func TestCORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/pipeline/counts", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()

	testRouter().ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}

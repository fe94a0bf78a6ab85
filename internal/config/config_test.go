package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "CRM_API_URL", "CRM_RATE_PER_SEC", "SESSION_TTL", "CORS_ORIGINS", "MAIL_PORT"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "http://localhost:5000", cfg.CRMAPIURL)
	assert.Equal(t, 10.0, cfg.CRMRatePerSec)
	assert.Equal(t, 587, cfg.MailPort)
	assert.Equal(t, 12*time.Hour, cfg.SessionTTL)
	assert.Equal(t, time.Second, cfg.LeadCacheTTL)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORSOrigins)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("CRM_API_URL", "https://crm.internal/")
	t.Setenv("CORS_ORIGINS", "https://a.app, https://b.app,")
	t.Setenv("REMINDER_INTERVAL", "30s")
	t.Setenv("CRM_RATE_BURST", "5")
	t.Setenv("APP_URL", "https://deals.example/")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Addr())
	assert.Equal(t, "https://crm.internal", cfg.CRMAPIURL)
	assert.Equal(t, []string{"https://a.app", "https://b.app"}, cfg.CORSOrigins)
	assert.Equal(t, 30*time.Second, cfg.ReminderInterval)
	assert.Equal(t, 5, cfg.CRMRateBurst)
	assert.Equal(t, "https://deals.example", cfg.AppURL)
}

func TestLoadMalformed(t *testing.T) {
	t.Setenv("MAIL_PORT", "smtp")
	t.Setenv("SESSION_TTL", "a day")

	cfg, err := Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAIL_PORT")
	assert.Contains(t, err.Error(), "SESSION_TTL")
	assert.Equal(t, 587, cfg.MailPort)
}

func TestValidate(t *testing.T) {
	err := Config{}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
	assert.Contains(t, err.Error(), "CRM_WEBHOOK_SECRET")

	ok := Config{
		DatabaseURL:     "postgres://localhost/dealflow",
		SupabaseURL:     "https://x.supabase.co",
		SupabaseAnonKey: "anon",
		WebhookSecret:   "s3cret",
	}
	assert.NoError(t, ok.Validate())
	assert.False(t, ok.MailEnabled())
}

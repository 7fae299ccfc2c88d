package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("OAUTH_CLIENT_ID", "client-id")
	t.Setenv("OAUTH_CLIENT_SECRET", "client-secret")
	t.Setenv("SMTP_USER", "owner@example.com")
	t.Setenv("SMTP_PASS", "app-password")
}

func TestLoadConfigDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "smtp.gmail.com", cfg.SMTPHost)
	assert.Equal(t, 587, cfg.SMTPPort)
	assert.Equal(t, "owner@example.com", cfg.SMTPTo, "SMTP_TO falls back to SMTP_USER")
	assert.Equal(t, "client-secret", cfg.OAuthStateSecret, "state secret falls back to the client secret")
	assert.Equal(t, "repo,user", cfg.OAuthScope)
	assert.Equal(t, 5, cfg.RateLimitContactThreshold)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SMTP_PORT", "465")
	t.Setenv("SMTP_TO", "reservas@example.com")
	t.Setenv("SITE_URL", "https://www.example.com/")
	t.Setenv("CMS_ALLOWED_ORIGINS", "https://www.example.com/, ,https://cms.example.com")
	t.Setenv("GIN_MODE", "release")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 465, cfg.SMTPPort)
	assert.Equal(t, "reservas@example.com", cfg.SMTPTo)
	assert.Equal(t, "https://www.example.com", cfg.SiteURL)
	assert.Equal(t, []string{"https://www.example.com", "https://cms.example.com"}, cfg.CMSAllowedOrigins)
	assert.True(t, cfg.IsRelease())
}

func TestValidateReportsEveryMissingVariable(t *testing.T) {
	t.Setenv("OAUTH_CLIENT_ID", "")
	t.Setenv("OAUTH_CLIENT_SECRET", "")
	t.Setenv("SMTP_USER", "")
	t.Setenv("SMTP_PASS", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	err = cfg.Validate()
	require.Error(t, err)
	for _, name := range []string{"OAUTH_CLIENT_ID", "OAUTH_CLIENT_SECRET", "SMTP_USER", "SMTP_PASS", "SMTP_TO"} {
		assert.Contains(t, err.Error(), name)
	}
}

func TestValidateRejectsMalformedValues(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SMTP_TO", "not-an-email")
	t.Setenv("OAUTH_TOKEN_URL", "::")
	t.Setenv("RATE_LIMIT_CONTACT_THRESHOLD", "0")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SMTP_TO (email)")
	assert.Contains(t, err.Error(), "OAUTH_TOKEN_URL (url)")
	assert.Contains(t, err.Error(), "RATE_LIMIT_CONTACT_THRESHOLD (min)")
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/clinic")
	t.Setenv("ENVIRONMENT", "development")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, time.UTC, cfg.ReportLocation)
	assert.Equal(t, 10*time.Second, cfg.ReportTimeout)
	assert.Equal(t, "0 2 * * *", cfg.RecurringExpenseCron)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.NotEmpty(t, cfg.JWTSecret)
	assert.False(t, cfg.IsProduction())
}

func TestLoadReportSettings(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/clinic")
	t.Setenv("REPORT_TIMEZONE", "Asia/Kolkata")
	t.Setenv("REPORT_TIMEOUT_SECONDS", "3")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "Asia/Kolkata", cfg.ReportLocation.String())
	assert.Equal(t, 3*time.Second, cfg.ReportTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing database url", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("invalid timezone", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://localhost/clinic")
		t.Setenv("REPORT_TIMEZONE", "Mars/Olympus")
		_, err := Load()
		assert.ErrorContains(t, err, "REPORT_TIMEZONE")
	})

	t.Run("production without secret", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://localhost/clinic")
		t.Setenv("ENVIRONMENT", "production")
		t.Setenv("JWT_SECRET", "")
		_, err := Load()
		assert.ErrorContains(t, err, "JWT_SECRET")
	})
}

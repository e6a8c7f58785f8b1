package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "5001", cfg.Port)
	assert.Equal(t, "5002", cfg.ToolsPort)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "openai", cfg.ExtractionProvider)
	assert.Equal(t, "gpt-4o-2024-08-06", cfg.OpenAIVisionModel)
	assert.Equal(t, "credentials.json", cfg.AppointmentsCredentials)
	assert.Equal(t, "reports_credentials.json", cfg.ReportsCredentials)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, int64(16<<20), cfg.MaxUploadBytes)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("TOOLS_PORT", "9001")
	t.Setenv("EXTRACTION_PROVIDER", " Gemini ")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("ANALYZE_RATE_LIMIT", "7.5")
	t.Setenv("ANALYZE_RATE_BURST", "12")
	t.Setenv("REDIS_TLS", "true")
	t.Setenv("MAX_UPLOAD_BYTES", "1024")
	t.Setenv("SHUTDOWN_TIMEOUT", "5s")

	cfg := Load()

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "9001", cfg.ToolsPort)
	assert.Equal(t, "gemini", cfg.ExtractionProvider)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 7.5, cfg.AnalyzeRateLimit)
	assert.Equal(t, 12, cfg.AnalyzeRateBurst)
	assert.True(t, cfg.RedisTLS)
	assert.Equal(t, int64(1024), cfg.MaxUploadBytes)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
}

func TestInvalidNumericFallsBack(t *testing.T) {
	t.Setenv("ANALYZE_RATE_BURST", "not-a-number")
	t.Setenv("REDIS_TLS", "not-a-bool")

	cfg := Load()

	assert.Equal(t, 5, cfg.AnalyzeRateBurst)
	assert.False(t, cfg.RedisTLS)
}

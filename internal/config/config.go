package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration.
type Config struct {
	Port      string
	ToolsPort string
	Env       string
	LogLevel  string

	CORSAllowedOrigins []string

	// Structured-extraction provider for report analysis.
	ExtractionProvider string // "openai" or "gemini"
	OpenAIAPIKey       string
	OpenAIVisionModel  string
	GeminiAPIKey       string
	GeminiModelID      string

	// Google Sheets row stores. Appointments and lab reports live in
	// separate spreadsheets with separate service-account credentials.
	AppointmentsSheetID     string
	AppointmentsCredentials string
	ReportsSheetID          string
	ReportsCredentials      string

	RedisAddr     string
	RedisPassword string
	RedisTLS      bool

	SendGridAPIKey    string
	SendGridFromEmail string
	SendGridFromName  string

	AnalyzeRateLimit float64
	AnalyzeRateBurst int
	MaxUploadBytes   int64

	ShutdownTimeout time.Duration
}

// Load reads configuration from environment variables.
func Load() *Config {
	return &Config{
		Port:      getEnv("PORT", "5001"),
		ToolsPort: getEnv("TOOLS_PORT", "5002"),
		Env:       getEnv("ENV", "development"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),

		CORSAllowedOrigins: splitAndTrim(getEnv("CORS_ALLOWED_ORIGINS", "*")),

		ExtractionProvider: strings.ToLower(strings.TrimSpace(getEnv("EXTRACTION_PROVIDER", "openai"))),
		OpenAIAPIKey:       getEnv("OPENAI_API_KEY", ""),
		OpenAIVisionModel:  getEnv("OPENAI_VISION_MODEL", "gpt-4o-2024-08-06"),
		GeminiAPIKey:       getEnv("GEMINI_API_KEY", ""),
		GeminiModelID:      getEnv("GEMINI_MODEL_ID", "gemini-2.5-flash"),

		AppointmentsSheetID:     getEnv("GOOGLE_SHEET_ID", ""),
		AppointmentsCredentials: getEnv("GOOGLE_CREDENTIALS_FILE", "credentials.json"),
		ReportsSheetID:          getEnv("REPORTS_SHEET_ID", ""),
		ReportsCredentials:      getEnv("REPORTS_CREDENTIALS_FILE", "reports_credentials.json"),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisTLS:      getEnvAsBool("REDIS_TLS", false),

		SendGridAPIKey:    getEnv("SENDGRID_API_KEY", ""),
		SendGridFromEmail: getEnv("SENDGRID_FROM_EMAIL", ""),
		SendGridFromName:  getEnv("SENDGRID_FROM_NAME", "Luna Hospital Assistant"),

		AnalyzeRateLimit: getEnvAsFloat("ANALYZE_RATE_LIMIT", 2),
		AnalyzeRateBurst: getEnvAsInt("ANALYZE_RATE_BURST", 5),
		MaxUploadBytes:   getEnvAsInt64("MAX_UPLOAD_BYTES", 16<<20),

		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func splitAndTrim(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

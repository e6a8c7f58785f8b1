package main

import (
	"context"
	"crypto/tls"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	openai "github.com/sashabaranov/go-openai"

	"github.com/lunahealth/hospital-assistant/internal/analysis"
	"github.com/lunahealth/hospital-assistant/internal/api/router"
	"github.com/lunahealth/hospital-assistant/internal/appointments"
	appconfig "github.com/lunahealth/hospital-assistant/internal/config"
	"github.com/lunahealth/hospital-assistant/internal/notify"
	"github.com/lunahealth/hospital-assistant/internal/observability/metrics"
	"github.com/lunahealth/hospital-assistant/internal/reports"
	"github.com/lunahealth/hospital-assistant/internal/sheets"
	"github.com/lunahealth/hospital-assistant/internal/tools"
	"github.com/lunahealth/hospital-assistant/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting hospital assistant",
		"env", cfg.Env,
		"analysis_port", cfg.Port,
		"tools_port", cfg.ToolsPort,
		"extraction_provider", cfg.ExtractionProvider,
	)

	ctx := context.Background()

	registry := prometheus.NewRegistry()
	bookingMetrics := metrics.NewBookingMetrics(registry)
	analysisMetrics := metrics.NewAnalysisMetrics(registry)
	metricsHandler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	// Row stores. Without spreadsheet ids the service runs on in-memory
	// stores, which is the development mode.
	appointmentRows := newRowStore(ctx, cfg.AppointmentsCredentials, cfg.AppointmentsSheetID, appointments.Header, logger.Named("appointments-sheet"))
	reportRows := newRowStore(ctx, cfg.ReportsCredentials, cfg.ReportsSheetID, nil, logger.Named("reports-sheet"))

	var emailSender notify.EmailSender
	if sg := notify.NewSendGridSender(notify.SendGridConfig{
		APIKey:    cfg.SendGridAPIKey,
		FromEmail: cfg.SendGridFromEmail,
		FromName:  cfg.SendGridFromName,
	}, logger.Named("sendgrid")); sg != nil {
		emailSender = sg
	} else {
		logger.Info("sendgrid not configured, using stub email sender")
		emailSender = notify.NewStubEmailSender(logger)
	}

	extractor, cleanup, err := newExtractor(ctx, cfg, analysisMetrics, logger)
	if err != nil {
		logger.Error("failed to initialize extraction provider", "error", err, "provider", cfg.ExtractionProvider)
		os.Exit(1)
	}
	defer cleanup()

	reportStore := reports.NewStore(reportRows, logger.Named("reports"))
	bookingService := appointments.NewService(appointmentRows, emailSender, bookingMetrics, logger.Named("appointments"))

	var transcriptStore *tools.TranscriptStore
	if cfg.RedisAddr != "" {
		opts := &redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword}
		if cfg.RedisTLS {
			opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Error("redis unreachable, transcripts disabled", "error", err, "addr", cfg.RedisAddr)
		} else {
			transcriptStore = tools.NewTranscriptStore(client)
		}
	}

	analysisHandler := analysis.NewHandler(extractor, reportStore, cfg.ExtractionProvider, cfg.MaxUploadBytes, analysisMetrics, logger.Named("analysis"))
	toolsHandler := tools.NewHandler(bookingService, reportStore, transcriptStore, analysisMetrics, logger.Named("tools"))

	analysisSrv := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: router.NewAnalysis(&router.AnalysisConfig{
			Logger:             logger.Named("analysis-api"),
			Analysis:           analysisHandler,
			MetricsHandler:     metricsHandler,
			CORSAllowedOrigins: cfg.CORSAllowedOrigins,
			AnalyzeRateLimit:   cfg.AnalyzeRateLimit,
			AnalyzeRateBurst:   cfg.AnalyzeRateBurst,
		}),
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	toolsSrv := &http.Server{
		Addr: ":" + cfg.ToolsPort,
		Handler: router.NewTools(&router.ToolsConfig{
			Logger:             logger.Named("tools-api"),
			Tools:              toolsHandler,
			CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		}),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 2)
	go func() {
		logger.Info("analysis server listening", "addr", analysisSrv.Addr)
		if err := analysisSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()
	go func() {
		logger.Info("tools server listening", "addr", toolsSrv.Addr)
		if err := toolsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		logger.Error("server error", "error", err)
		os.Exit(1)
	case sig := <-quit:
		logger.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := analysisSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("analysis server forced to shutdown", "error", err)
	}
	if err := toolsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("tools server forced to shutdown", "error", err)
	}

	logger.Info("servers stopped")
}

// newRowStore opens the configured spreadsheet, or falls back to an
// in-memory store seeded with the given header when no id is set.
func newRowStore(ctx context.Context, credentialsFile, spreadsheetID string, header []string, logger *logging.Logger) sheets.RowStore {
	if spreadsheetID == "" {
		logger.Info("no spreadsheet configured, using in-memory row store")
		if header != nil {
			return sheets.NewMemoryWithRows([][]string{header})
		}
		return sheets.NewMemory()
	}
	client, err := sheets.NewClient(ctx, credentialsFile, spreadsheetID)
	if err != nil {
		logger.Error("failed to open spreadsheet, falling back to in-memory store", "error", err, "spreadsheet_id", spreadsheetID)
		if header != nil {
			return sheets.NewMemoryWithRows([][]string{header})
		}
		return sheets.NewMemory()
	}
	return client
}

func newExtractor(ctx context.Context, cfg *appconfig.Config, m *metrics.AnalysisMetrics, logger *logging.Logger) (reports.Extractor, func(), error) {
	switch cfg.ExtractionProvider {
	case "gemini":
		extractor, err := reports.NewGeminiExtractor(ctx, cfg.GeminiAPIKey, cfg.GeminiModelID, m)
		if err != nil {
			return nil, nil, err
		}
		return extractor, func() { _ = extractor.Close() }, nil
	default:
		client := openai.NewClient(cfg.OpenAIAPIKey)
		extractor := reports.NewOpenAIExtractor(client, cfg.OpenAIVisionModel, m, logger.Named("openai"))
		return extractor, func() {}, nil
	}
}

package reports

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"go.opentelemetry.io/otel"
	"google.golang.org/api/option"

	"github.com/lunahealth/hospital-assistant/internal/observability/metrics"
)

var geminiTracer = otel.Tracer("luna.internal.reports.gemini")

const defaultGeminiModel = "gemini-2.5-flash"

// GeminiExtractor extracts structured analyses using Google's Gemini API.
type GeminiExtractor struct {
	client  *genai.Client
	modelID string
	metrics *metrics.AnalysisMetrics
}

// NewGeminiExtractor creates a Gemini-backed Extractor. m may be nil.
func NewGeminiExtractor(ctx context.Context, apiKey, modelID string, m *metrics.AnalysisMetrics) (*GeminiExtractor, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("reports: gemini api key is required")
	}
	if strings.TrimSpace(modelID) == "" {
		modelID = defaultGeminiModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("reports: failed to create gemini client: %w", err)
	}

	return &GeminiExtractor{
		client:  client,
		modelID: modelID,
		metrics: m,
	}, nil
}

// Extract sends the image to Gemini and parses the JSON response.
func (e *GeminiExtractor) Extract(ctx context.Context, image []byte, filename string) (*Analysis, error) {
	ctx, span := geminiTracer.Start(ctx, "reports.extract_gemini")
	defer span.End()

	model := e.client.GenerativeModel(e.modelID)
	model.SetTemperature(0.3)
	model.ResponseMIMEType = "application/json"
	model.SystemInstruction = genai.NewUserContent(genai.Text(extractionSystemPrompt))

	start := time.Now()
	resp, err := model.GenerateContent(ctx,
		genai.ImageData(imageFormat(filename), image),
		genai.Text(extractionUserPrompt),
	)
	e.metrics.ObserveExtractionLatency("gemini", time.Since(start).Seconds())
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("reports: gemini extraction failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("reports: gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}

	analysis, err := parseAnalysis(sb.String())
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return analysis, nil
}

// Close releases the underlying API client.
func (e *GeminiExtractor) Close() error {
	return e.client.Close()
}

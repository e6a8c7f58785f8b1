package reports

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"

	"github.com/lunahealth/hospital-assistant/internal/observability/metrics"
	"github.com/lunahealth/hospital-assistant/pkg/logging"
)

var openaiTracer = otel.Tracer("luna.internal.reports.openai")

const defaultVisionModel = "gpt-4o-2024-08-06"

type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIExtractor extracts structured analyses using an OpenAI
// vision-capable chat model.
type OpenAIExtractor struct {
	client  chatCompleter
	model   string
	metrics *metrics.AnalysisMetrics
	logger  *logging.Logger
}

// NewOpenAIExtractor returns an OpenAI-backed Extractor. m may be nil.
func NewOpenAIExtractor(client chatCompleter, model string, m *metrics.AnalysisMetrics, logger *logging.Logger) *OpenAIExtractor {
	if client == nil {
		panic("reports: chat client cannot be nil")
	}
	if model == "" {
		model = defaultVisionModel
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &OpenAIExtractor{
		client:  client,
		model:   model,
		metrics: m,
		logger:  logger,
	}
}

// Extract sends the image with the fixed instruction template and parses
// the structured response.
func (e *OpenAIExtractor) Extract(ctx context.Context, image []byte, filename string) (*Analysis, error) {
	ctx, span := openaiTracer.Start(ctx, "reports.extract_openai")
	defer span.End()

	req := openai.ChatCompletionRequest{
		Model:       e.model,
		Temperature: 0.3,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: extractionSystemPrompt,
			},
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: extractionUserPrompt,
					},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL: dataURI(image, filename),
						},
					},
				},
			},
		},
	}

	start := time.Now()
	resp, err := e.client.CreateChatCompletion(ctx, req)
	e.metrics.ObserveExtractionLatency("openai", time.Since(start).Seconds())
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("reports: extraction request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("reports: provider returned no choices")
	}

	analysis, err := parseAnalysis(resp.Choices[0].Message.Content)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return analysis, nil
}

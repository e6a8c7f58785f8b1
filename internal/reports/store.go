package reports

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/lunahealth/hospital-assistant/internal/sheets"
	"github.com/lunahealth/hospital-assistant/pkg/logging"
)

var storeTracer = otel.Tracer("luna.internal.reports.store")

// Header is the reports sheet header, written lazily on first use when
// the sheet is empty or its first row is malformed.
var Header = []string{
	"id", "timestamp", "test_type", "parameter_name", "value",
	"reference_range", "what_it_is", "your_level_means",
	"why_it_matters", "possible_causes", "concerns_summary",
}

const (
	// Multi-parameter fields collapse into one delimited cell per row:
	// plain lists use listSeparator, name-prefixed explanation lists use
	// explanationSeparator.
	listSeparator        = ", "
	explanationSeparator = " || "
	concernsSeparator    = " | "
)

// StoredReport is one persisted report row as read back from the sheet.
type StoredReport struct {
	ID              string
	Timestamp       string
	TestType        string
	ParameterNames  string
	Values          string
	ReferenceRanges string
	WhatItIs        string
	YourLevelMeans  string
	WhyItMatters    string
	PossibleCauses  string
	ConcernsSummary string
}

// Store persists and retrieves lab report rows.
type Store struct {
	rows   sheets.RowStore
	logger *logging.Logger
	now    func() time.Time
}

// NewStore creates a report store over the given row store.
func NewStore(rows sheets.RowStore, logger *logging.Logger) *Store {
	if rows == nil {
		panic("reports: row store cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Store{
		rows:   rows,
		logger: logger,
		now:    time.Now,
	}
}

// Save appends the analysis as a single row under the given id, writing
// the header row first if the sheet is empty or malformed.
func (s *Store) Save(ctx context.Context, id string, analysis *Analysis) error {
	ctx, span := storeTracer.Start(ctx, "reports.save")
	defer span.End()

	if err := s.ensureHeader(ctx); err != nil {
		span.RecordError(err)
		return err
	}

	row := encodeRow(id, s.now().Format("2006-01-02 15:04:05"), analysis)
	if err := s.rows.Append(ctx, row); err != nil {
		span.RecordError(err)
		return fmt.Errorf("reports: failed to save report: %w", err)
	}

	s.logger.Info("report saved", "report_id", id, "test_type", analysis.Type, "parameters", len(analysis.Levels))
	return nil
}

// FindByID linear-scans the sheet and returns every row whose id equals
// the query. Ids are low entropy, so multiple matches are expected
// behavior, not an error.
func (s *Store) FindByID(ctx context.Context, id string) ([]StoredReport, error) {
	ctx, span := storeTracer.Start(ctx, "reports.find_by_id")
	defer span.End()

	records, err := sheets.Records(ctx, s.rows)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("reports: failed to read reports: %w", err)
	}

	var matches []StoredReport
	for _, record := range records {
		if record["id"] != id {
			continue
		}
		matches = append(matches, StoredReport{
			ID:              record["id"],
			Timestamp:       record["timestamp"],
			TestType:        record["test_type"],
			ParameterNames:  record["parameter_name"],
			Values:          record["value"],
			ReferenceRanges: record["reference_range"],
			WhatItIs:        record["what_it_is"],
			YourLevelMeans:  record["your_level_means"],
			WhyItMatters:    record["why_it_matters"],
			PossibleCauses:  record["possible_causes"],
			ConcernsSummary: record["concerns_summary"],
		})
	}
	return matches, nil
}

func (s *Store) ensureHeader(ctx context.Context) error {
	rows, err := s.rows.Rows(ctx)
	if err != nil {
		return fmt.Errorf("reports: failed to read header: %w", err)
	}
	if len(rows) > 0 && len(rows[0]) > 0 && rows[0][0] == "id" {
		return nil
	}
	if err := s.rows.InsertHeader(ctx, Header); err != nil {
		return fmt.Errorf("reports: failed to write header: %w", err)
	}
	return nil
}

func encodeRow(id, timestamp string, analysis *Analysis) []string {
	names := make([]string, 0, len(analysis.Levels))
	values := make([]string, 0, len(analysis.Levels))
	refRanges := make([]string, 0, len(analysis.Levels))
	whatItIs := make([]string, 0, len(analysis.Levels))
	levelMeans := make([]string, 0, len(analysis.Levels))
	whyMatters := make([]string, 0, len(analysis.Levels))
	causes := make([]string, 0, len(analysis.Levels))

	for _, level := range analysis.Levels {
		names = append(names, level.Name)
		values = append(values, level.Value)
		refRange := level.ReferenceRange
		if refRange == "" {
			refRange = "N/A"
		}
		refRanges = append(refRanges, refRange)
		whatItIs = append(whatItIs, fmt.Sprintf("%s: %s", level.Name, level.WhatItIs))
		levelMeans = append(levelMeans, fmt.Sprintf("%s: %s", level.Name, level.YourLevelMeans))
		whyMatters = append(whyMatters, fmt.Sprintf("%s: %s", level.Name, level.WhyItMatters))
		cause := level.PossibleCauses
		if cause == "" {
			cause = "N/A"
		}
		causes = append(causes, fmt.Sprintf("%s: %s", level.Name, cause))
	}

	concerns := "None"
	if len(analysis.Concerns) > 0 {
		concerns = strings.Join(analysis.Concerns, concernsSeparator)
	}

	return []string{
		id,
		timestamp,
		string(analysis.Type),
		strings.Join(names, listSeparator),
		strings.Join(values, listSeparator),
		strings.Join(refRanges, listSeparator),
		strings.Join(whatItIs, explanationSeparator),
		strings.Join(levelMeans, explanationSeparator),
		strings.Join(whyMatters, explanationSeparator),
		strings.Join(causes, explanationSeparator),
		concerns,
	}
}

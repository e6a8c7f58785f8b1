package metrics

import "github.com/prometheus/client_golang/prometheus"

// BookingMetrics exposes counters/histograms for the appointment tools.
type BookingMetrics struct {
	checksTotal   *prometheus.CounterVec
	bookingsTotal *prometheus.CounterVec
	storeLatency  *prometheus.HistogramVec
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		checksTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "luna",
			Subsystem: "booking",
			Name:      "availability_checks_total",
			Help:      "Total availability checks by result",
		}, []string{"result"}),
		bookingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "luna",
			Subsystem: "booking",
			Name:      "bookings_total",
			Help:      "Total booking attempts by status",
		}, []string{"status"}),
		storeLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "luna",
			Subsystem: "booking",
			Name:      "row_store_latency_seconds",
			Help:      "Latency of row-store round trips",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.checksTotal, m.bookingsTotal, m.storeLatency)
	return m
}

func (m *BookingMetrics) ObserveCheck(result string) {
	if m == nil {
		return
	}
	m.checksTotal.WithLabelValues(result).Inc()
}

func (m *BookingMetrics) ObserveBooking(status string) {
	if m == nil {
		return
	}
	m.bookingsTotal.WithLabelValues(status).Inc()
}

func (m *BookingMetrics) ObserveStoreLatency(operation string, seconds float64) {
	if m == nil {
		return
	}
	m.storeLatency.WithLabelValues(operation).Observe(seconds)
}

// AnalysisMetrics exposes counters/histograms for report analysis.
type AnalysisMetrics struct {
	uploadsTotal      *prometheus.CounterVec
	extractionLatency *prometheus.HistogramVec
	lookupsTotal      *prometheus.CounterVec
}

func NewAnalysisMetrics(reg prometheus.Registerer) *AnalysisMetrics {
	m := &AnalysisMetrics{
		uploadsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "luna",
			Subsystem: "analysis",
			Name:      "uploads_total",
			Help:      "Total report uploads by outcome",
		}, []string{"outcome"}),
		extractionLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "luna",
			Subsystem: "analysis",
			Name:      "extraction_latency_seconds",
			Help:      "Latency of structured-extraction provider calls",
			Buckets:   prometheus.DefBuckets,
		}, []string{"provider"}),
		lookupsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "luna",
			Subsystem: "analysis",
			Name:      "report_lookups_total",
			Help:      "Total report lookups by result",
		}, []string{"result"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.uploadsTotal, m.extractionLatency, m.lookupsTotal)
	return m
}

func (m *AnalysisMetrics) ObserveUpload(outcome string) {
	if m == nil {
		return
	}
	m.uploadsTotal.WithLabelValues(outcome).Inc()
}

func (m *AnalysisMetrics) ObserveExtractionLatency(provider string, seconds float64) {
	if m == nil {
		return
	}
	m.extractionLatency.WithLabelValues(provider).Observe(seconds)
}

func (m *AnalysisMetrics) ObserveLookup(result string) {
	if m == nil {
		return
	}
	m.lookupsTotal.WithLabelValues(result).Inc()
}

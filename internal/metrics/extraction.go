package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Extraction holds the pipeline-level Prometheus collectors.
// A nil *Extraction is valid and records nothing.
type Extraction struct {
	outcomes      *prometheus.CounterVec
	sheetFailures *prometheus.CounterVec
	duration      *prometheus.HistogramVec
}

// NewExtraction creates the collectors and registers them on reg.
func NewExtraction(reg prometheus.Registerer) (*Extraction, error) {
	m := &Extraction{
		outcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "spreadsheet_extractions_total",
				Help: "Total number of spreadsheet extractions by file type, method and outcome.",
			},
			[]string{"file_type", "method", "success"},
		),
		sheetFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "spreadsheet_sheet_failures_total",
				Help: "Total number of sheets skipped because they could not be read.",
			},
			[]string{"format"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "spreadsheet_extraction_duration_seconds",
				Help:    "Time spent extracting a single payload.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"file_type"},
		),
	}

	for _, c := range []prometheus.Collector{m.outcomes, m.sheetFailures, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Observe records one finished extraction.
func (m *Extraction) Observe(fileType, method string, success bool, elapsed time.Duration) {
	if m == nil {
		return
	}
	if fileType == "" {
		fileType = "unknown"
	}
	m.outcomes.WithLabelValues(fileType, method, strconv.FormatBool(success)).Inc()
	m.duration.WithLabelValues(fileType).Observe(elapsed.Seconds())
}

// SheetFailed records n skipped sheets for a workbook format.
func (m *Extraction) SheetFailed(format string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.sheetFailures.WithLabelValues(format).Add(float64(n))
}

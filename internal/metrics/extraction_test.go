package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtraction(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewExtraction(reg)
	require.NoError(t, err)

	m.Observe("xlsx", "EXCEL_PARSING_XLSX", true, 10*time.Millisecond)
	m.Observe("", "UNSUPPORTED_FORMAT", false, time.Millisecond)
	m.SheetFailed("xlsx", 2)
	m.SheetFailed("xlsx", 0)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.outcomes.WithLabelValues("xlsx", "EXCEL_PARSING_XLSX", "true")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.outcomes.WithLabelValues("unknown", "UNSUPPORTED_FORMAT", "false")))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.sheetFailures.WithLabelValues("xlsx")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.duration))
}

func TestExtraction_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewExtraction(reg)
	require.NoError(t, err)

	_, err = NewExtraction(reg)
	assert.Error(t, err)
}

func TestExtraction_Nil(t *testing.T) {
	var m *Extraction
	assert.NotPanics(t, func() {
		m.Observe("csv", "CSV_PARSING", true, time.Millisecond)
		m.SheetFailed("xls", 1)
	})
}

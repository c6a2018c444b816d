package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsExposure(t *testing.T) {
	AnalysisRuns.Inc()
	AnalysisErrors.Inc()
	AlertsRaised.Inc()
	RecordSource("directory", 12, 1)
	RecordStats(2, 37.5)
	ObserveAnalysisDuration(time.Now().Add(-1500 * time.Millisecond))

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	for _, m := range []string{
		"insights_analysis_runs_total",
		"insights_analysis_errors_total",
		"insights_analysis_duration_seconds",
		`insights_publications_loaded_total{source="directory"}`,
		`insights_skipped_files_total{source="directory"}`,
		"insights_threat_publications 2",
		"insights_negative_sentiment_percent 37.5",
		"insights_threat_alerts_total",
	} {
		assert.Contains(t, body, m)
	}
}

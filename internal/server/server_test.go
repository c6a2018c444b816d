package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fanwatch/publication-insights/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockMonitor struct {
	mock.Mock
}

func (m *MockMonitor) GetMetrics() string {
	return m.Called().String(0)
}

func (m *MockMonitor) LatestReport() *models.Report {
	report, _ := m.Called().Get(0).(*models.Report)
	return report
}

func (m *MockMonitor) RunAnalysis() error {
	return m.Called().Error(0)
}

func (m *MockMonitor) RunThreatCheck() error {
	return m.Called().Error(0)
}

func serve(t *testing.T, monitor Monitor, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	NewRouter(monitor).ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestHealth(t *testing.T) {
	rec := serve(t, &MockMonitor{}, http.MethodGet, "/health")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `"status":"healthy"`)
}

func TestStats(t *testing.T) {
	t.Run("No report yet", func(t *testing.T) {
		monitor := &MockMonitor{}
		monitor.On("LatestReport").Return(nil)

		rec := serve(t, monitor, http.MethodGet, "/stats")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Latest report", func(t *testing.T) {
		monitor := &MockMonitor{}
		monitor.On("LatestReport").Return(&models.Report{
			Period: "daily",
			Stats:  models.DashboardStats{TotalPublications: 7, ThreatCount: 2},
		})

		rec := serve(t, monitor, http.MethodGet, "/stats")
		require.Equal(t, http.StatusOK, rec.Code)

		var report models.Report
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
		assert.Equal(t, 7, report.Stats.TotalPublications)
		assert.Equal(t, 2, report.Stats.ThreatCount)
	})
}

func TestStatus(t *testing.T) {
	monitor := &MockMonitor{}
	monitor.On("GetMetrics").Return(`{"total_publications": 3}`)

	rec := serve(t, monitor, http.MethodGet, "/status")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"total_publications": 3}`, rec.Body.String())
}

func TestMetrics(t *testing.T) {
	rec := serve(t, &MockMonitor{}, http.MethodGet, "/metrics")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "insights_analysis_runs_total")
}

func TestTrigger(t *testing.T) {
	tests := []struct {
		name   string
		target string
		method string
	}{
		{name: "Default runs analysis", target: "/trigger", method: "RunAnalysis"},
		{name: "Explicit analysis", target: "/trigger?run=analysis", method: "RunAnalysis"},
		{name: "Threat check", target: "/trigger?run=threats", method: "RunThreatCheck"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := make(chan struct{})
			monitor := &MockMonitor{}
			monitor.On(tt.method).Return(nil).Run(func(mock.Arguments) { close(called) })

			rec := serve(t, monitor, http.MethodPost, tt.target)
			assert.Equal(t, http.StatusAccepted, rec.Code)

			select {
			case <-called:
			case <-time.After(2 * time.Second):
				t.Fatalf("%s was not called", tt.method)
			}
		})
	}
}

func TestTrigger_Rejects(t *testing.T) {
	rec := serve(t, &MockMonitor{}, http.MethodPost, "/trigger?run=everything")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(t, &MockMonitor{}, http.MethodGet, "/trigger")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

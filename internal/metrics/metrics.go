package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	AnalysisRuns = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "insights_analysis_runs_total",
		Help: "Total dashboard analysis runs",
	})
	AnalysisErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "insights_analysis_errors_total",
		Help: "Total failed analysis runs",
	})
	AnalysisDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "insights_analysis_duration_seconds",
		Help:    "Analysis run duration seconds",
		Buckets: prometheus.DefBuckets,
	})
	PublicationsLoaded = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "insights_publications_loaded_total",
		Help: "Publications read per source",
	}, []string{"source"})
	SkippedFiles = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "insights_skipped_files_total",
		Help: "Batch files skipped because they could not be read or parsed",
	}, []string{"source"})
	ThreatPublications = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "insights_threat_publications",
		Help: "Publications whose main topic is threats in the latest run",
	})
	NegativeSentimentPercent = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "insights_negative_sentiment_percent",
		Help: "Share of negative text units in the latest run",
	})
	AlertsRaised = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "insights_threat_alerts_total",
		Help: "Threat alerts raised",
	})
)

func init() {
	prometheus.MustRegister(
		AnalysisRuns,
		AnalysisErrors,
		AnalysisDuration,
		PublicationsLoaded,
		SkippedFiles,
		ThreatPublications,
		NegativeSentimentPercent,
		AlertsRaised,
	)
}

// Handler exposes the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveAnalysisDuration records a run duration
func ObserveAnalysisDuration(start time.Time) {
	AnalysisDuration.Observe(time.Since(start).Seconds())
}

// RecordSource adds the outcome of one source fetch
func RecordSource(source string, publications, skipped int) {
	PublicationsLoaded.WithLabelValues(source).Add(float64(publications))
	SkippedFiles.WithLabelValues(source).Add(float64(skipped))
}

// RecordStats publishes the headline numbers of the latest run
func RecordStats(threatPublications int, negativePercent float64) {
	ThreatPublications.Set(float64(threatPublications))
	NegativeSentimentPercent.Set(negativePercent)
}

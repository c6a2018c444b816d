package monitoring

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fanwatch/publication-insights/internal/analysis"
	"github.com/fanwatch/publication-insights/internal/config"
	"github.com/fanwatch/publication-insights/internal/metrics"
	"github.com/fanwatch/publication-insights/internal/models"
	"github.com/fanwatch/publication-insights/internal/notifications"
	"github.com/fanwatch/publication-insights/internal/sources"
	"github.com/fanwatch/publication-insights/internal/storage"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	reportPrefix   = "reports/"
	topThreatLimit = 10
)

// Service loads publication batches, builds dashboard reports and raises threat alerts
type Service struct {
	config              *config.Config
	storage             storage.StorageInterface
	notificationService notifications.NotificationInterface
	sources             []sources.Source
	aggregator          *analysis.Aggregator
	now                 func() time.Time
	metrics             *Metrics
	latest              *models.Report
	alerted             map[int]bool // publication numbers already alerted on
	mu                  sync.RWMutex
	runMu               sync.Mutex
	threatMu            sync.Mutex
}

// Metrics holds the outcome of the latest runs
type Metrics struct {
	TotalPublications        int            `json:"total_publications"`
	TotalComments            int            `json:"total_comments"`
	ThreatPublications       int            `json:"threat_publications"`
	NegativeSentimentPercent float64        `json:"negative_sentiment_percent"`
	LastRun                  time.Time      `json:"last_run"`
	LastRunDuration          string         `json:"last_run_duration"`
	LastThreatCheck          time.Time      `json:"last_threat_check"`
	SourceMetrics            map[string]int `json:"source_metrics"`
	SkippedFiles             int            `json:"skipped_files"`
	AlertsSent               int            `json:"alerts_sent"`
	ErrorCount               int            `json:"error_count"`
}

// sourceResult is what one source goroutine reports back
type sourceResult struct {
	name   string
	result sources.LoadResult
	err    error
}

// collection is the merged outcome of fetching every enabled source
type collection struct {
	loaded     sources.LoadResult
	perSource  map[string]int
	errorCount int
}

// NewService creates a new monitoring service reading from the sources named in cfg
func NewService(cfg *config.Config, storage storage.StorageInterface, notificationService notifications.NotificationInterface) *Service {
	service := &Service{
		config:              cfg,
		storage:             storage,
		notificationService: notificationService,
		now:                 time.Now,
		alerted:             make(map[int]bool),
		metrics: &Metrics{
			SourceMetrics: make(map[string]int),
		},
	}
	service.aggregator = analysis.NewAggregator(analysis.NewAnalyzer(analysis.WithClock(service.clock)))

	// Initialize data sources
	service.initializeSources()

	return service
}

func (s *Service) initializeSources() {
	s.sources = []sources.Source{
		sources.NewDirectorySource(s.config.DataDir),
		sources.NewExportSource(s.config.ExportURL),
		sources.NewStorageSource(s.storage, s.config.BlobSourcePrefix),
	}
}

func (s *Service) clock() time.Time {
	return s.now()
}

// RunAnalysis builds a dashboard report over every configured source,
// archives it and sends it through the notification channels
func (s *Service) RunAnalysis() error {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	start := time.Now()
	logrus.Info("Starting analysis run")
	metrics.AnalysisRuns.Inc()
	defer metrics.ObserveAnalysisDuration(start)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	collected, err := s.collect(ctx)
	if err != nil {
		metrics.AnalysisErrors.Inc()
		s.recordFailure(collected.errorCount)
		return err
	}

	publications := sources.Deduplicate(collected.loaded.Publications)
	logrus.Infof("Loaded %d unique publications from %d records", len(publications), collected.loaded.Records)

	stats, analyzed := s.aggregator.Run(publications, analysis.Filter{Tags: s.config.FilterTags})
	report := s.generateReport(stats, analyzed, collected, len(publications))

	// Store report
	if err := s.storeReport(report); err != nil {
		metrics.AnalysisErrors.Inc()
		logrus.Errorf("Failed to store report: %v", err)
		return err
	}

	// Update metrics
	s.updateMetrics(report, collected, time.Since(start))

	// Send report
	if err := s.notificationService.SendReport(report); err != nil {
		metrics.AnalysisErrors.Inc()
		logrus.Errorf("Failed to send report: %v", err)
		return err
	}

	logrus.Infof("Analysis run completed in %v", time.Since(start))
	return nil
}

// collect fetches every enabled source concurrently. It fails only when every
// enabled source failed; partial failures are counted and logged.
func (s *Service) collect(ctx context.Context) (collection, error) {
	var enabled []sources.Source
	for _, source := range s.sources {
		if source.IsEnabled() {
			enabled = append(enabled, source)
		}
	}
	if len(enabled) == 0 {
		return collection{}, fmt.Errorf("no publication source is enabled")
	}

	var wg sync.WaitGroup
	resultsChan := make(chan sourceResult, len(enabled))

	for _, source := range enabled {
		wg.Add(1)
		go func(src sources.Source) {
			defer wg.Done()

			logrus.Infof("Fetching publications from %s", src.GetName())
			result, err := src.FetchPublications(ctx)
			resultsChan <- sourceResult{name: src.GetName(), result: result, err: err}
		}(source)
	}

	// Close channel when all goroutines complete
	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	collected := collection{
		loaded:    sources.LoadResult{Publications: []models.Publication{}},
		perSource: make(map[string]int),
	}
	var errors []string
	for res := range resultsChan {
		if res.err != nil {
			logrus.Errorf("Error fetching from %s: %v", res.name, res.err)
			errors = append(errors, fmt.Sprintf("%s: %v", res.name, res.err))
			continue
		}

		logrus.WithFields(logrus.Fields{
			"source":        res.name,
			"files":         res.result.Files,
			"skipped_files": res.result.SkippedFiles,
		}).Infof("Found %d publications", len(res.result.Publications))
		metrics.RecordSource(res.name, len(res.result.Publications), res.result.SkippedFiles)
		collected.perSource[res.name] = len(res.result.Publications)
		collected.loaded.Merge(res.result)
	}

	collected.errorCount = len(errors)
	if len(errors) == len(enabled) {
		return collected, fmt.Errorf("all sources failed: %s", strings.Join(errors, "; "))
	}

	return collected, nil
}

func (s *Service) generateReport(stats models.DashboardStats, analyzed []models.AnalyzedPublication, collected collection, unique int) *models.Report {
	loaded := collected.loaded
	report := &models.Report{
		GeneratedAt: s.now(),
		Period:      s.config.ReportSchedule,
		Stats:       stats,
		TopThreats:  analysis.TopThreats(analyzed, topThreatLimit),
		Summary:     make(map[string]interface{}),
	}

	report.Summary["sources"] = collected.perSource
	report.Summary["files"] = loaded.Files
	report.Summary["skipped_files"] = loaded.SkippedFiles
	report.Summary["records"] = loaded.Records
	report.Summary["duplicates_removed"] = loaded.Records - unique
	if len(s.config.FilterTags) > 0 {
		report.Summary["filter_tags"] = s.config.FilterTags
	}

	return report
}

func (s *Service) storeReport(report *models.Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	filename := fmt.Sprintf("%sdashboard-%s.json", reportPrefix, report.GeneratedAt.Format("2006-01-02-15-04-05"))
	return s.storage.Store(filename, data)
}

func (s *Service) updateMetrics(report *models.Report, collected collection, duration time.Duration) {
	metrics.RecordStats(report.Stats.ThreatPublications, report.Stats.NegativeSentimentPercent)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.latest = report
	s.metrics.TotalPublications = report.Stats.TotalPublications
	s.metrics.TotalComments = report.Stats.TotalComments
	s.metrics.ThreatPublications = report.Stats.ThreatPublications
	s.metrics.NegativeSentimentPercent = report.Stats.NegativeSentimentPercent
	s.metrics.LastRun = report.GeneratedAt
	s.metrics.LastRunDuration = duration.String()
	s.metrics.SkippedFiles = collected.loaded.SkippedFiles
	s.metrics.ErrorCount = collected.errorCount
	s.metrics.SourceMetrics = collected.perSource
}

func (s *Service) recordFailure(errorCount int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.metrics.ErrorCount = errorCount
}

// GetMetrics returns current metrics as JSON
func (s *Service) GetMetrics() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, _ := json.MarshalIndent(s.metrics, "", "  ")
	return string(data)
}

// LatestReport returns the report of the last successful analysis run, or nil
func (s *Service) LatestReport() *models.Report {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.latest
}

// RunThreatCheck alerts on recent publications whose comment threads are dominated
// by threats. Publications with an unknown date are never recent. Checks run one at
// a time and each publication is alerted on at most once per process.
func (s *Service) RunThreatCheck() error {
	s.threatMu.Lock()
	defer s.threatMu.Unlock()

	start := time.Now()
	logrus.Info("Starting threat check")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	collected, err := s.collect(ctx)
	if err != nil {
		return err
	}

	cutoff := s.now().Add(-s.config.ThreatLookback)
	filter := analysis.Filter{Start: &cutoff, Tags: s.config.FilterTags, Dated: true}
	_, analyzed := s.aggregator.Run(sources.Deduplicate(collected.loaded.Publications), filter)

	logrus.Infof("Checking %d publications since %s for threats", len(analyzed), cutoff.Format(time.RFC3339))

	alerts := s.filterThreats(analyzed)
	if len(alerts) == 0 {
		logrus.Info("No threat alerts raised")
		s.markThreatCheck()
		return nil
	}

	var errors []string
	for _, alert := range alerts {
		if err := s.notificationService.SendAlert(alert); err != nil {
			logrus.Errorf("Failed to send alert for publication #%d: %v", alert.Publication.Number, err)
			errors = append(errors, fmt.Sprintf("#%d: %v", alert.Publication.Number, err))
			continue
		}

		metrics.AlertsRaised.Inc()
		s.mu.Lock()
		s.alerted[alert.Publication.Number] = true
		s.metrics.AlertsSent++
		s.mu.Unlock()
	}
	s.markThreatCheck()

	if len(errors) > 0 {
		return fmt.Errorf("failed to send %d alerts: %s", len(errors), strings.Join(errors, "; "))
	}

	logrus.Infof("Threat check completed in %v, sent %d alerts", time.Since(start), len(alerts))
	return nil
}

// filterThreats builds one alert per publication over the threshold that has not
// been alerted on yet
func (s *Service) filterThreats(analyzed []models.AnalyzedPublication) []*models.Alert {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var alerts []*models.Alert
	for _, result := range analyzed {
		summary := result.Summary()
		if summary.MainTopic != models.TopicThreatsAndRisks || summary.ThreatTexts < s.config.ThreatAlertThreshold {
			continue
		}
		if s.alerted[summary.Number] {
			logrus.Debugf("Publication #%d already alerted", summary.Number)
			continue
		}

		alerts = append(alerts, &models.Alert{
			ID:    uuid.NewString(),
			Type:  "urgent",
			Title: fmt.Sprintf("Threat activity on publication #%d", summary.Number),
			Message: fmt.Sprintf("%d of %d texts on publication #%d mention threats or risks",
				summary.ThreatTexts, len(result.Texts), summary.Number),
			Publication: &summary,
			CreatedAt:   s.now(),
		})
	}

	return alerts
}

func (s *Service) markThreatCheck() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.metrics.LastThreatCheck = s.now()
}

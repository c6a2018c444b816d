package scheduler

import (
	"fmt"
	"time"

	"github.com/fanwatch/publication-insights/internal/config"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const threatCheckSchedule = "0 0 */4 * * *"

// Runner is the work the scheduler triggers
type Runner interface {
	RunAnalysis() error
	RunThreatCheck() error
}

// Service handles scheduling of analysis runs and threat checks
type Service struct {
	config *config.Config
	runner Runner
	cron   *cron.Cron
}

// NewService creates a new scheduler service running in the configured time zone
func NewService(cfg *config.Config, runner Runner) (*Service, error) {
	location, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("failed to load time zone %q: %w", cfg.TimeZone, err)
	}

	return &Service{
		config: cfg,
		runner: runner,
		cron:   cron.New(cron.WithSeconds(), cron.WithLocation(location)),
	}, nil
}

// reportSchedule returns the cron expression for the report period
func reportSchedule(period string) string {
	switch period {
	case "daily":
		// Run daily at 9 AM
		return "0 0 9 * * *"
	default:
		// Run weekly on Monday at 9 AM
		return "0 0 9 * * MON"
	}
}

// Start begins the scheduled runs
func (s *Service) Start() error {
	_, err := s.cron.AddFunc(reportSchedule(s.config.ReportSchedule), func() {
		logrus.Info("Starting scheduled analysis run")
		if err := s.runner.RunAnalysis(); err != nil {
			logrus.Errorf("Scheduled analysis run failed: %v", err)
		}
	})
	if err != nil {
		return err
	}

	// Threat check every 4 hours
	_, err = s.cron.AddFunc(threatCheckSchedule, func() {
		logrus.Info("Starting threat check (4-hour frequency)")
		if err := s.runner.RunThreatCheck(); err != nil {
			logrus.Errorf("Threat check failed: %v", err)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	logrus.Infof("Scheduler started with %s schedule in %s (plus threat checks every 4 hours)",
		s.config.ReportSchedule, s.config.TimeZone)
	return nil
}

// Stop stops the scheduler and waits for running jobs
func (s *Service) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
		logrus.Info("Scheduler stopped")
	}
}

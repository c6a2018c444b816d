package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/fanwatch/publication-insights/internal/analysis"
	"github.com/fanwatch/publication-insights/internal/models"
	"github.com/fanwatch/publication-insights/internal/storage"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type dashboardOptions struct {
	out    string
	top    int
	asJSON bool
}

func newDashboardCommand(opts *options) *cobra.Command {
	dashOpts := &dashboardOptions{}

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Print the dashboard statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := opts.filter()
			if err != nil {
				return err
			}
			publications, loaded, err := opts.load()
			if err != nil {
				return err
			}

			stats, analyzed := analysis.NewAggregator(nil).Run(publications, filter)
			report := &models.Report{
				GeneratedAt: time.Now(),
				Period:      "manual",
				Stats:       stats,
				TopThreats:  analysis.TopThreats(analyzed, dashOpts.top),
				Summary: map[string]interface{}{
					"files":         loaded.Files,
					"skipped_files": loaded.SkippedFiles,
					"records":       loaded.Records,
				},
			}

			if dashOpts.out != "" {
				if err := archiveReport(dashOpts.out, report); err != nil {
					return err
				}
			}

			if dashOpts.asJSON {
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(report)
			}

			renderDashboard(cmd.OutOrStdout(), report)
			return nil
		},
	}

	cmd.Flags().StringVar(&dashOpts.out, "out", "", "also write the report JSON below this directory")
	cmd.Flags().IntVar(&dashOpts.top, "top", 10, "number of top threat publications to list")
	cmd.Flags().BoolVar(&dashOpts.asJSON, "json", false, "print the report as JSON")

	return cmd
}

func archiveReport(dir string, report *models.Report) error {
	store, err := storage.NewFileStorage(dir)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	filename := fmt.Sprintf("dashboard-%s.json", report.GeneratedAt.Format("2006-01-02-15-04-05"))
	if err := store.Store(filename, data); err != nil {
		return err
	}

	logrus.Infof("Report written to %s/%s", dir, filename)
	return nil
}

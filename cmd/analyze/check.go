package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fanwatch/publication-insights/internal/sources"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newCheckCommand(opts *options) *cobra.Command {
	var exportURL string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Fetch every configured source once and report what it returned",
		RunE: func(cmd *cobra.Command, args []string) error {
			candidates := []sources.Source{
				sources.NewDirectorySource(opts.dir),
				sources.NewExportSource(exportURL),
			}

			t := newTable(cmd.OutOrStdout(), "Sources")
			t.AppendHeader(table.Row{"Source", "Status", "Files", "Skipped", "Publications", "Took"})

			failed := 0
			for _, source := range candidates {
				if !source.IsEnabled() {
					t.AppendRow(table.Row{source.GetName(), "disabled", "-", "-", "-", "-"})
					continue
				}

				start := time.Now()
				result, err := source.FetchPublications(cmd.Context())
				took := time.Since(start).Round(time.Millisecond)
				if err != nil {
					failed++
					t.AppendRow(table.Row{source.GetName(), fmt.Sprintf("error: %v", err), "-", "-", "-", took})
					continue
				}

				status := "ok"
				if result.SkippedFiles > 0 {
					status = "partial"
				}
				unique := len(sources.Deduplicate(result.Publications))
				t.AppendRow(table.Row{source.GetName(), status, result.Files, result.SkippedFiles, unique, took})
			}
			t.Render()

			if failed > 0 {
				return fmt.Errorf("%d sources failed", failed)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&exportURL, "export-url", os.Getenv("EXPORT_URL"), "scraper export endpoint (default $EXPORT_URL)")

	return cmd
}

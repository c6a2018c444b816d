package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fanwatch/publication-insights/internal/analysis"
	"github.com/fanwatch/publication-insights/internal/models"
	"github.com/fanwatch/publication-insights/internal/sources"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const dateLayout = "2006-01-02"

// options are the flags shared by every command
type options struct {
	dir   string
	tags  []string
	start string
	end   string
	debug bool
}

// Execute runs the root command
func Execute() error {
	// Load .env file early so DATA_DIR is available as a default
	_ = godotenv.Load()

	return newRootCommand().ExecuteContext(context.Background())
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze scraped publication batches",
		Long: `Loads every JSON batch in a directory, deduplicates publications by number
and prints the sentiment, emotion and topic dashboard.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logrus.SetOutput(cmd.ErrOrStderr())
			logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
			logrus.SetLevel(logrus.WarnLevel)
			if opts.debug {
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.dir, "dir", os.Getenv("DATA_DIR"), "directory holding the scraper JSON batches (default $DATA_DIR)")
	rootCmd.PersistentFlags().StringSliceVar(&opts.tags, "tags", nil, "only publications carrying every one of these tags")
	rootCmd.PersistentFlags().StringVar(&opts.start, "start", "", "first publication date to include (YYYY-MM-DD)")
	rootCmd.PersistentFlags().StringVar(&opts.end, "end", "", "last publication date to include (YYYY-MM-DD)")
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")

	dashboard := newDashboardCommand(opts)
	rootCmd.RunE = dashboard.RunE
	rootCmd.Flags().AddFlagSet(dashboard.Flags())

	rootCmd.AddCommand(dashboard)
	rootCmd.AddCommand(newSearchCommand(opts))
	rootCmd.AddCommand(newShowCommand(opts))
	rootCmd.AddCommand(newCheckCommand(opts))

	return rootCmd
}

// load reads and deduplicates the batch directory
func (o *options) load() ([]models.Publication, sources.LoadResult, error) {
	if o.dir == "" {
		return nil, sources.LoadResult{}, fmt.Errorf("no data directory: pass --dir or set DATA_DIR")
	}

	result, err := sources.LoadDirectory(o.dir)
	if err != nil {
		return nil, result, fmt.Errorf("failed to load %s: %w", o.dir, err)
	}
	if result.SkippedFiles > 0 {
		logrus.Warnf("Skipped %d of %d files in %s", result.SkippedFiles, result.Files, o.dir)
	}

	return result.Publications, result, nil
}

// filter builds the publication filter from the shared flags
func (o *options) filter() (analysis.Filter, error) {
	filter := analysis.Filter{}
	for _, tag := range o.tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			filter.Tags = append(filter.Tags, tag)
		}
	}

	if o.start != "" {
		start, err := time.Parse(dateLayout, o.start)
		if err != nil {
			return filter, fmt.Errorf("invalid --start %q: %w", o.start, err)
		}
		filter.Start = &start
	}
	if o.end != "" {
		end, err := time.Parse(dateLayout, o.end)
		if err != nil {
			return filter, fmt.Errorf("invalid --end %q: %w", o.end, err)
		}
		filter.End = &end
	}
	if filter.Start != nil && filter.End != nil && filter.End.Before(*filter.Start) {
		return filter, fmt.Errorf("--end %s is before --start %s", o.end, o.start)
	}

	return filter, nil
}

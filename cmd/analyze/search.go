package main

import (
	"fmt"
	"strconv"

	"github.com/fanwatch/publication-insights/internal/analysis"
	"github.com/spf13/cobra"
)

func newSearchCommand(opts *options) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Find publications by description text or number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := opts.filter()
			if err != nil {
				return err
			}
			publications, _, err := opts.load()
			if err != nil {
				return err
			}

			matches := analysis.Search(filter.Apply(publications), args[0], limit)
			if len(matches) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No publications match %q\n", args[0])
				return nil
			}

			renderPublications(cmd.OutOrStdout(), analysis.NewAnalyzer().AnalyzeAll(matches))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of results (0 for all)")

	return cmd
}

func newShowCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "show <number>",
		Short: "Show the classification of every text of one publication",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("publication number must be an integer: %w", err)
			}
			publications, _, err := opts.load()
			if err != nil {
				return err
			}

			pub, ok := analysis.FindByNumber(publications, number)
			if !ok {
				return fmt.Errorf("publication #%d not found", number)
			}

			renderPublication(cmd.OutOrStdout(), analysis.NewAnalyzer().Analyze(pub))
			return nil
		},
	}
}

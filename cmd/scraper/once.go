package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/williampepple1/cricket-scorecard-scraper/internal/scraper"
	"github.com/williampepple1/cricket-scorecard-scraper/internal/worker"
	"github.com/williampepple1/cricket-scorecard-scraper/pkg/models"
)

var (
	oncePrint    bool
	onceNoSubmit bool
)

func init() {
	onceCmd.Flags().BoolVar(&oncePrint, "print", false, "Print the batch as a table")
	onceCmd.Flags().BoolVar(&onceNoSubmit, "no-submit", false, "Do not send the batch to any sink")
	rootCmd.AddCommand(onceCmd)
}

var onceCmd = &cobra.Command{
	Use:   "once [--print] [--no-submit]",
	Short: "Runs a single scrape cycle and exits.",
	RunE: func(cmd *cobra.Command, args []string) error {
		fetcher, err := scraper.New(appConfig, logger)
		if err != nil {
			return err
		}
		out, err := buildSinks(appConfig, nil, logger)
		if err != nil {
			return err
		}
		poller, err := worker.NewPoller(appConfig, fetcher, out, logger)
		if err != nil {
			return err
		}

		report := poller.RunCycle(cmd.Context(), !onceNoSubmit)
		if oncePrint {
			renderBatch(os.Stdout, report.Batch)
		}

		if report.ListingErr != nil {
			return fmt.Errorf("listing unavailable: %w", report.ListingErr)
		}
		return report.SubmitErr
	},
}

func renderBatch(w io.Writer, batch models.Batch) {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)

	t.AppendHeader(table.Row{"#", "Status", "Team 1", "Score 1", "Team 2", "Score 2", "Result", "Innings"})
	for i, r := range batch.Wire() {
		innings := 0
		if r.Inning1.Batting != nil {
			innings++
		}
		if r.Inning2.Batting != nil {
			innings++
		}
		t.AppendRow(table.Row{i, r.Status, r.Team1, r.Score1, r.Team2, r.Score2, r.MatchResult, innings})
	}
	t.AppendFooter(table.Row{"", "", "", "", "", "", "Matches", len(batch)})
	t.Render()
}

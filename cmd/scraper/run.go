package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/williampepple1/cricket-scorecard-scraper/internal/scraper"
	"github.com/williampepple1/cricket-scorecard-scraper/internal/status"
	"github.com/williampepple1/cricket-scorecard-scraper/internal/worker"
)

func init() {
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Polls the live-scores listing until interrupted.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fetcher, err := scraper.New(appConfig, logger)
		if err != nil {
			return err
		}

		var store *status.Store
		var server *status.Server
		if appConfig.Status.Addr != "" {
			hub := status.NewHub(logger)
			go hub.Run(ctx)

			store = status.NewStore(hub)
			server = status.NewServer(appConfig.Status, store, hub, logger)
			go func() {
				if err := server.Start(); err != nil {
					logger.Error("status api stopped", "err", err)
				}
			}()
		}

		out, err := buildSinks(appConfig, store, logger)
		if err != nil {
			return err
		}

		poller, err := worker.NewPoller(appConfig, fetcher, out, logger)
		if err != nil {
			return err
		}

		err = poller.Run(ctx)

		if server != nil {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				logger.Error("status api shutdown", "err", err)
			}
		}

		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}

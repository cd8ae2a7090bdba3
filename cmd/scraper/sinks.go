package main

import (
	"fmt"
	"log/slog"

	"github.com/williampepple1/cricket-scorecard-scraper/internal/config"
	"github.com/williampepple1/cricket-scorecard-scraper/internal/sink"
	"github.com/williampepple1/cricket-scorecard-scraper/internal/status"
)

// buildSinks assembles the ingestion endpoint plus every optional sink that is
// configured. store may be nil.
func buildSinks(cfg *config.AppConfig, store *status.Store, logger *slog.Logger) (sink.Sink, error) {
	sinks := sink.Multi{sink.NewIngest(cfg.Ingest, logger)}

	if cfg.IO.OutputFile != "" {
		sinks = append(sinks, sink.NewFile(cfg.IO.OutputFile))
	}
	if cfg.Notify.DiscordWebhookURL != "" {
		d, err := sink.NewDiscord(cfg.Notify.DiscordWebhookURL)
		if err != nil {
			return nil, fmt.Errorf("discord sink: %w", err)
		}
		sinks = append(sinks, d)
	}
	if cfg.AMQP.URL != "" {
		sinks = append(sinks, sink.NewAMQP(cfg.AMQP))
	}
	if store != nil {
		sinks = append(sinks, store)
	}

	if len(sinks) == 1 {
		return sinks[0], nil
	}
	return sinks, nil
}

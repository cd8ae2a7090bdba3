package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/williampepple1/cricket-scorecard-scraper/internal/config"
	"github.com/williampepple1/cricket-scorecard-scraper/internal/extraction"
	"github.com/williampepple1/cricket-scorecard-scraper/internal/scraper"
	"github.com/williampepple1/cricket-scorecard-scraper/internal/sink"
	"github.com/williampepple1/cricket-scorecard-scraper/pkg/models"
)

// Poller runs the scrape cycle: listing, cards, match pages, scorecards,
// then one submission of the merged batch.
type Poller struct {
	fetcher    scraper.Fetcher
	sink       sink.Sink
	logger     *slog.Logger
	base       *url.URL
	listingURL string
	cardLimit  int
	interval   time.Duration
	sleep      scraper.SleepFunc
}

// Option configures a Poller
type Option func(*Poller)

// WithSleep replaces the wall-clock sleep between cycles
func WithSleep(sleep scraper.SleepFunc) Option {
	return func(p *Poller) {
		p.sleep = sleep
	}
}

// NewPoller creates a poller for the configured site
func NewPoller(cfg *config.AppConfig, fetcher scraper.Fetcher, s sink.Sink, logger *slog.Logger, opts ...Option) (*Poller, error) {
	base, err := url.Parse(cfg.Scraper.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}

	p := &Poller{
		fetcher:    fetcher,
		sink:       s,
		logger:     logger,
		base:       base,
		listingURL: cfg.Scraper.ListingURL(),
		cardLimit:  cfg.Scraper.CardLimit,
		interval:   cfg.Scraper.PollInterval,
		sleep:      scraper.Sleep,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// CardResult is the outcome of one listing card: a record or the reason
// there is none.
type CardResult struct {
	Index  int
	Record models.MatchRecord
	Err    error
}

// CycleReport summarises one polling cycle
type CycleReport struct {
	Cards      int
	Batch      models.Batch
	Skipped    []CardResult
	ListingErr error
	SubmitErr  error
	// Sent is set once the batch has been handed to the sink
	Sent bool
}

// Submitted reports whether a batch was handed to the sink and accepted
func (r CycleReport) Submitted() bool {
	return r.Sent && r.SubmitErr == nil
}

// Run polls until ctx is cancelled. Nothing inside a cycle stops the loop.
func (p *Poller) Run(ctx context.Context) error {
	p.logger.Info("poller started",
		"listing_url", p.listingURL,
		"card_limit", p.cardLimit,
		"interval", p.interval,
	)

	for {
		p.RunCycle(ctx, true)

		if err := p.sleep(ctx, p.interval); err != nil {
			p.logger.Info("poller stopped", "reason", err)
			return err
		}
	}
}

// RunCycle performs one cycle. The batch goes to the sink only when submit
// is set and at least one record was produced.
func (p *Poller) RunCycle(ctx context.Context, submit bool) CycleReport {
	start := time.Now()
	var report CycleReport

	doc, err := p.fetcher.Fetch(ctx, p.listingURL)
	if err != nil {
		p.logger.Error("listing fetch failed", "url", p.listingURL, "err", err)
		report.ListingErr = err
		return report
	}

	cards := extraction.ListingCards(extraction.FromDocument(doc), p.cardLimit)
	report.Cards = len(cards)

	for i, card := range cards {
		if ctx.Err() != nil {
			break
		}

		result := p.processCard(ctx, i, card)
		if result.Err != nil {
			p.logger.Warn("card skipped", "card", i, "err", result.Err)
			report.Skipped = append(report.Skipped, result)
			continue
		}
		report.Batch = append(report.Batch, result.Record)
	}

	if len(report.Batch) == 0 {
		p.logger.Warn("no matches processed", "cards", report.Cards, "took", time.Since(start))
		return report
	}

	if submit {
		report.Sent = true
		if err := p.sink.Submit(ctx, report.Batch); err != nil {
			p.logger.Error("batch submission failed", "records", len(report.Batch), "err", err)
			report.SubmitErr = err
		}
	}

	p.logger.Info("cycle complete",
		"cards", report.Cards,
		"records", len(report.Batch),
		"skipped", len(report.Skipped),
		"took", time.Since(start),
	)
	return report
}

func (p *Poller) processCard(ctx context.Context, index int, card extraction.Element) (result CardResult) {
	result.Index = index
	defer func() {
		if r := recover(); r != nil {
			result = CardResult{
				Index: index,
				Err:   &CardError{Index: index, Stage: StagePanic, Err: fmt.Errorf("%v", r)},
			}
		}
	}()

	listing := extraction.ExtractCard(card, p.base)
	if !listing.HasDetailURL() {
		result.Err = &CardError{Index: index, Stage: StageCard, Err: ErrNoDetailLink}
		return result
	}

	scorecardURL, err := p.FindScorecardURL(ctx, listing.DetailURL)
	if err != nil {
		result.Err = &CardError{Index: index, Stage: StageDetail, Err: err}
		return result
	}

	info, innings := p.ExtractScorecard(ctx, scorecardURL)
	result.Record = models.MatchRecord{
		Card:         listing,
		Scorecard:    info,
		ScorecardURL: scorecardURL,
		Innings:      innings,
	}
	return result
}

// FindScorecardURL fetches a match page and resolves its scorecard link
func (p *Poller) FindScorecardURL(ctx context.Context, detailURL string) (string, error) {
	doc, err := p.fetcher.Fetch(ctx, detailURL)
	if err != nil {
		return "", err
	}

	scorecardURL, ok := extraction.FindScorecardURL(extraction.FromDocument(doc), p.base)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNoScorecardLink, detailURL)
	}
	return scorecardURL, nil
}

// ExtractScorecard fetches and reads a scorecard page. A page that cannot be
// fetched yields empty results rather than an error.
func (p *Poller) ExtractScorecard(ctx context.Context, scorecardURL string) (models.ScorecardInfo, []models.InningsEntry) {
	doc, err := p.fetcher.Fetch(ctx, scorecardURL)
	if err != nil {
		var fetchErr *scraper.FetchError
		if errors.As(err, &fetchErr) {
			p.logger.Warn("scorecard unavailable", "url", scorecardURL, "attempts", fetchErr.Attempts, "err", fetchErr.Err)
		} else {
			p.logger.Warn("scorecard unavailable", "url", scorecardURL, "err", err)
		}
		return models.ScorecardInfo{}, nil
	}

	page := extraction.FromDocument(doc)
	return extraction.ExtractScorecardInfo(page), extraction.ExtractInnings(page)
}

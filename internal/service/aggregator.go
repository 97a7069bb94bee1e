package service

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"rate_relay/internal/domain"
	"rate_relay/internal/infra/privat"
)

// Fetcher is the upstream boundary the aggregator fans out over.
type Fetcher interface {
	DateURLs(days int) []privat.DateURL
	Fetch(ctx context.Context, url string, currencies domain.CurrencySet) (string, error)
}

// QueryRecorder receives the outcome of every aggregate query.
type QueryRecorder interface {
	RecordQuery(days int, dur time.Duration)
}

// DayResult is one slot of an aggregate: the report block for its date,
// or the error that prevented it. Exactly one of Report/Err is set.
type DayResult struct {
	Date   string
	Report string
	Err    error
}

// Block renders the slot for the reply: the fetched report, or a
// visible placeholder when the fetch failed.
func (r DayResult) Block() string {
	if r.Err != nil {
		return domain.UnavailableReport(r.Date)
	}
	return r.Report
}

// Aggregator runs the fan-out/fan-in over per-day fetches.
type Aggregator struct {
	fetcher  Fetcher
	recorder QueryRecorder
	logger   *slog.Logger
}

// NewAggregator creates an aggregator over the given fetcher.
func NewAggregator(fetcher Fetcher) *Aggregator {
	return &Aggregator{
		fetcher: fetcher,
		logger:  slog.Default().With("module", "aggregator"),
	}
}

// SetRecorder attaches a query journal.
func (a *Aggregator) SetRecorder(r QueryRecorder) {
	a.recorder = r
}

// Aggregate fetches rates for days calendar days concurrently and
// returns exactly days results in request order (most recent date
// first), regardless of completion order. A failed fetch occupies its
// slot instead of discarding the batch.
func (a *Aggregator) Aggregate(ctx context.Context, days int, currencies domain.CurrencySet) []DayResult {
	start := time.Now()
	urls := a.fetcher.DateURLs(days)
	results := make([]DayResult, len(urls))

	var wg sync.WaitGroup
	for i, du := range urls {
		wg.Add(1)
		go func(i int, du privat.DateURL) {
			defer wg.Done()
			report, err := a.fetcher.Fetch(ctx, du.URL, currencies)
			results[i] = DayResult{Date: du.Date, Report: report, Err: err}
		}(i, du)
	}
	wg.Wait()

	if a.recorder != nil {
		a.recorder.RecordQuery(days, time.Since(start))
	}
	for _, r := range results {
		if r.Err != nil {
			a.logger.Warn("Day fetch failed", slog.String("date", r.Date), slog.Any("error", r.Err))
		}
	}

	return results
}

// FormatResults joins per-day blocks into one reply string.
func FormatResults(results []DayResult) string {
	blocks := make([]string, 0, len(results))
	for _, r := range results {
		blocks = append(blocks, r.Block())
	}
	return strings.Join(blocks, "\n")
}

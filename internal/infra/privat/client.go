package privat

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"rate_relay/internal/domain"
	"rate_relay/internal/infra"
)

// Recorder receives the outcome of every completed upstream fetch.
// A nil recorder disables journaling.
type Recorder interface {
	RecordFetch(url string, status int, dur time.Duration, fetchErr string)
}

// Client fetches archive exchange rates from the bank API (Boundary Layer).
// It is safe for concurrent use; all fetches of one aggregate share its
// connection pool.
type Client struct {
	baseURL    string
	httpClient *http.Client
	recorder   Recorder
	metrics    *infra.Metrics
	logger     *slog.Logger
}

// NewClient creates a rate API client with the configured base URL and timeout.
func NewClient(cfg *infra.Config) *Client {
	return &Client{
		baseURL: cfg.API.BaseURL,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.API.TimeoutSec) * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:    10,
				IdleConnTimeout: 30 * time.Second,
			},
		},
		logger: slog.Default().With("module", "privat_client"),
	}
}

// SetRecorder attaches a fetch journal.
func (c *Client) SetRecorder(r Recorder) {
	c.recorder = r
}

// SetMetrics attaches fetch latency/error metrics.
func (c *Client) SetMetrics(m *infra.Metrics) {
	c.metrics = m
}

// DateURLs builds the request list for days calendar days back from today.
func (c *Client) DateURLs(days int) []DateURL {
	return DateURLs(c.baseURL, days, time.Now())
}

// Fetch performs one GET against url and returns the formatted report
// block for that day. Non-200 statuses and transport failures come back
// as *domain.UpstreamError; a response without rate data is not an
// error and yields the not-found block.
func (c *Client) Fetch(ctx context.Context, url string, currencies domain.CurrencySet) (string, error) {
	start := time.Now()
	report, status, err := c.doFetch(ctx, url, currencies)
	dur := time.Since(start)

	if c.metrics != nil {
		c.metrics.RecordFetch(dur, err != nil)
	}
	if c.recorder != nil {
		errMsg := ""
		if err != nil {
			errMsg = err.Error()
		}
		c.recorder.RecordFetch(url, status, dur, errMsg)
	}

	return report, err
}

func (c *Client) doFetch(ctx context.Context, url string, currencies domain.CurrencySet) (string, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", 0, domain.NewConnectError(url, err)
	}
	req.Header.Set("User-Agent", infra.DefaultUserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Connection error", slog.String("url", url), slog.Any("error", err))
		return "", 0, domain.NewConnectError(url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("Error status", slog.Int("status", resp.StatusCode), slog.String("url", url))
		return "", resp.StatusCode, domain.NewStatusError(url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", resp.StatusCode, domain.NewConnectError(url, err)
	}

	var day domain.DayRates
	if err := json.Unmarshal(body, &day); err != nil {
		c.logger.Error("Malformed response body", slog.String("url", url), slog.Any("error", err))
		return "", resp.StatusCode, domain.NewConnectError(url, err)
	}

	return day.Report(currencies), resp.StatusCode, nil
}

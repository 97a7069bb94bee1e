package privat

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"rate_relay/internal/domain"
	"rate_relay/internal/infra"
)

func newTestClient(baseURL string) *Client {
	cfg := infra.DefaultConfig()
	cfg.API.BaseURL = baseURL
	cfg.API.TimeoutSec = 2
	return NewClient(cfg)
}

type fakeRecorder struct {
	mu      sync.Mutex
	fetches []string
	errors  []string
}

func (r *fakeRecorder) RecordFetch(url string, status int, dur time.Duration, fetchErr string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fetches = append(r.fetches, url)
	r.errors = append(r.errors, fetchErr)
}

func TestClient_Fetch(t *testing.T) {
	t.Run("200 with rates", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"date":"01.12.2023","exchangeRate":[{"currency":"USD","saleRateNB":27.1,"purchaseRateNB":26.8}]}`))
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		report, err := client.Fetch(context.Background(), server.URL, domain.NewCurrencySet("USD"))
		if err != nil {
			t.Fatalf("Fetch failed: %v", err)
		}

		want := "Date: 01.12.2023\nUSD: sale: 27.1 purchase: 26.8\n"
		if report != want {
			t.Errorf("Expected %q, got %q", want, report)
		}
	})

	t.Run("200 without rate data", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"date":"01.12.2023"}`))
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		report, err := client.Fetch(context.Background(), server.URL, domain.DefaultCurrencies())
		if err != nil {
			t.Fatalf("Fetch failed: %v", err)
		}
		want := "Date: 01.12.2023\nNot founded exchange rate\n"
		if report != want {
			t.Errorf("Expected %q, got %q", want, report)
		}
	})

	t.Run("non-200 status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		_, err := client.Fetch(context.Background(), server.URL, domain.DefaultCurrencies())
		if err == nil {
			t.Fatal("Expected error for non-200 status")
		}
		ue, ok := domain.AsUpstreamError(err)
		if !ok {
			t.Fatalf("Expected UpstreamError, got %T", err)
		}
		if ue.Status != http.StatusServiceUnavailable {
			t.Errorf("Expected status 503, got %d", ue.Status)
		}
	})

	t.Run("connection refused", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := server.URL
		server.Close()

		client := newTestClient(url)
		_, err := client.Fetch(context.Background(), url, domain.DefaultCurrencies())
		if err == nil {
			t.Fatal("Expected error for unreachable upstream")
		}
		ue, ok := domain.AsUpstreamError(err)
		if !ok {
			t.Fatalf("Expected UpstreamError, got %T", err)
		}
		if ue.IsStatusError() {
			t.Error("Expected connect error, not status error")
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`not json`))
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		if _, err := client.Fetch(context.Background(), server.URL, domain.DefaultCurrencies()); err == nil {
			t.Fatal("Expected error for malformed body")
		}
	})

	t.Run("recorder sees every outcome", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		rec := &fakeRecorder{}
		client.SetRecorder(rec)

		client.Fetch(context.Background(), server.URL, domain.DefaultCurrencies())

		rec.mu.Lock()
		defer rec.mu.Unlock()
		if len(rec.fetches) != 1 {
			t.Fatalf("Expected 1 recorded fetch, got %d", len(rec.fetches))
		}
		if rec.errors[0] == "" {
			t.Error("Expected recorded fetch error message")
		}
	})
}

func TestClient_DateURLs(t *testing.T) {
	client := newTestClient("http://base")
	urls := client.DateURLs(3)
	if len(urls) != 3 {
		t.Fatalf("Expected 3 urls, got %d", len(urls))
	}
	if urls[0].URL != "http://base?json&date="+urls[0].Date {
		t.Errorf("URL does not embed its date: %+v", urls[0])
	}
}

// Command console performs a one-shot exchange-rate fetch:
//
//	console [days] [currency ...]
//
// days defaults to 1 and is clamped to the configured maximum; extra
// currency codes are merged with the EUR/USD defaults.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"rate_relay/internal/domain"
	"rate_relay/internal/infra"
	"rate_relay/internal/infra/privat"
	"rate_relay/internal/service"
)

func main() {
	cfg, err := infra.LoadConfig("configs/config.yaml")
	if err != nil {
		// A missing config file is fine for the console tool.
		cfg = infra.DefaultConfig()
	}

	days, currencies := parseArgs(os.Args[1:], cfg.API.MaxDays)

	client := privat.NewClient(cfg)
	agg := service.NewAggregator(client)

	results := agg.Aggregate(context.Background(), days, currencies)
	for _, r := range results {
		fmt.Println(r.Block())
	}

	for _, r := range results {
		if r.Err != nil {
			slog.Error("Fetch failed", slog.String("date", r.Date), slog.Any("error", r.Err))
		}
	}
}

// parseArgs reads the day count from the first argument and treats the
// rest as extra currency codes. An unparseable first argument counts as
// a currency code and leaves days at the default.
func parseArgs(args []string, maxDays int) (int, domain.CurrencySet) {
	days := domain.DefaultDays
	currencies := domain.DefaultCurrencies()

	rest := args
	if len(args) > 0 {
		if d, err := strconv.Atoi(strings.ReplaceAll(args[0], ",", "")); err == nil {
			days = d
			rest = args[1:]
		}
	}

	return domain.ClampDays(days, maxDays), currencies.Merge(domain.NewCurrencySet(rest...))
}

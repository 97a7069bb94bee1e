package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ExchangeRate is one currency entry from the bank archive API.
type ExchangeRate struct {
	Currency       string          `json:"currency"`
	SaleRateNB     decimal.Decimal `json:"saleRateNB"`
	PurchaseRateNB decimal.Decimal `json:"purchaseRateNB"`
}

// DayRates is the upstream response body for a single archive date.
// ExchangeRate stays nil when the field is absent from the body, which
// is distinct from a present-but-empty array.
type DayRates struct {
	Date         string         `json:"date"`
	ExchangeRate []ExchangeRate `json:"exchangeRate"`
}

// Report formats one day's rates as a text block:
//
//	Date: <date>
//	<CODE>: sale: <rate> purchase: <rate>
//	...
//
// Only currencies in requested are listed; matching is case-insensitive.
// A body without an exchangeRate field yields the single literal
// "Not founded exchange rate" line. The block always ends with a newline.
func (d *DayRates) Report(requested CurrencySet) string {
	lines := []string{"Date: " + d.Date}

	if d.ExchangeRate == nil {
		lines = append(lines, "Not founded exchange rate")
	} else {
		for _, r := range d.ExchangeRate {
			code := strings.ToUpper(r.Currency)
			if requested.Contains(code) {
				lines = append(lines, fmt.Sprintf("%s: sale: %s purchase: %s",
					code, r.SaleRateNB, r.PurchaseRateNB))
			}
		}
	}

	return strings.Join(lines, "\n") + "\n"
}

// UnavailableReport is the placeholder block for a date whose fetch
// failed. It keeps the batch shape intact so the requester always sees
// one block per requested day.
func UnavailableReport(date string) string {
	return "Date: " + date + "\nFailed to fetch exchange rate\n"
}

package domain

import (
	"strconv"
	"strings"
)

// DefaultDays is used when a message carries no parseable day count.
const DefaultDays = 1

// ExchangeKeyword marks an inbound message as an exchange-rate request.
const ExchangeKeyword = "exchange"

// CurrencySet holds requested currency codes, upper-cased.
type CurrencySet map[string]struct{}

// NewCurrencySet builds a set from raw codes. Codes are trimmed,
// comma-stripped and upper-cased; empty results are skipped.
func NewCurrencySet(codes ...string) CurrencySet {
	s := make(CurrencySet, len(codes))
	for _, c := range codes {
		c = normalizeToken(c)
		if c != "" {
			s[strings.ToUpper(c)] = struct{}{}
		}
	}
	return s
}

// DefaultCurrencies are always part of a chat query.
func DefaultCurrencies() CurrencySet {
	return NewCurrencySet("EUR", "USD")
}

// Contains reports whether the upper-cased code is in the set.
func (s CurrencySet) Contains(code string) bool {
	_, ok := s[strings.ToUpper(code)]
	return ok
}

// Merge adds every code of other into s and returns s.
func (s CurrencySet) Merge(other CurrencySet) CurrencySet {
	for c := range other {
		s[c] = struct{}{}
	}
	return s
}

// IsExchangeCommand reports whether msg requests exchange rates.
func IsExchangeCommand(msg string) bool {
	return strings.Contains(msg, ExchangeKeyword)
}

// DaysFromMessage extracts the requested day count from a chat message.
// The second whitespace-separated token is the count; a missing or
// unparseable token falls back to DefaultDays.
func DaysFromMessage(msg string) int {
	fields := strings.Fields(msg)
	if len(fields) < 2 {
		return DefaultDays
	}
	days, err := strconv.Atoi(normalizeToken(fields[1]))
	if err != nil || days < 1 {
		return DefaultDays
	}
	return days
}

// ClampDays bounds days to [1, max]. Both the chat and the console
// entry points apply the same bound.
func ClampDays(days, max int) int {
	if days < 1 {
		return DefaultDays
	}
	if max > 0 && days > max {
		return max
	}
	return days
}

func normalizeToken(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), ",", "")
}

package main

import "testing"

func TestParseArgs(t *testing.T) {
	t.Run("days and extra currencies", func(t *testing.T) {
		days, currencies := parseArgs([]string{"3", "pln", "gbp"}, 10)
		if days != 3 {
			t.Errorf("Expected 3 days, got %d", days)
		}
		for _, code := range []string{"EUR", "USD", "PLN", "GBP"} {
			if !currencies.Contains(code) {
				t.Errorf("Expected %s in set", code)
			}
		}
	})

	t.Run("no arguments", func(t *testing.T) {
		days, currencies := parseArgs(nil, 10)
		if days != 1 {
			t.Errorf("Expected default 1 day, got %d", days)
		}
		if len(currencies) != 2 {
			t.Errorf("Expected only defaults, got %v", currencies)
		}
	})

	t.Run("clamped to max", func(t *testing.T) {
		days, _ := parseArgs([]string{"50"}, 10)
		if days != 10 {
			t.Errorf("Expected clamp to 10, got %d", days)
		}
	})

	t.Run("non-numeric first arg is a currency", func(t *testing.T) {
		days, currencies := parseArgs([]string{"chf"}, 10)
		if days != 1 {
			t.Errorf("Expected default days, got %d", days)
		}
		if !currencies.Contains("CHF") {
			t.Error("Expected CHF in set")
		}
	})
}

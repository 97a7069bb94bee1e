package privat

import "time"

// DateFormat is the archive API date layout (DD.MM.YYYY).
const DateFormat = "02.01.2006"

// DateURL binds one request URL to its calendar date.
type DateURL struct {
	Date string
	URL  string
}

// DateURLs builds the request list for days calendar days counting back
// from now: index 0 is today, index days-1 the oldest. Regenerating
// with the same day count on the same calendar day is idempotent.
func DateURLs(baseURL string, days int, now time.Time) []DateURL {
	urls := make([]DateURL, 0, days)
	for k := 0; k < days; k++ {
		date := now.AddDate(0, 0, -k).Format(DateFormat)
		urls = append(urls, DateURL{
			Date: date,
			URL:  baseURL + "?json&date=" + date,
		})
	}
	return urls
}

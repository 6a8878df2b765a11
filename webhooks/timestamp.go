package webhooks

import (
	"fmt"
	"time"
)

const timestampLayout = "2006-01-02T15:04:05Z"

// FormatTimestamp renders a GitHub ISO-8601 UTC timestamp, for example
// "2021-04-01T21:30:00Z", as "1st April 2021 - 09:30 PM UTC". The input must
// match the layout exactly; no timezone conversion happens, the value is
// already UTC.
func FormatTimestamp(iso string) (string, error) {
	parsed, err := time.Parse(timestampLayout, iso)
	if err != nil {
		return "", wrapMalformedPayload(err, fmt.Sprintf("webhooks: invalid timestamp %q", iso))
	}
	day := parsed.Day()
	return fmt.Sprintf(
		"%d%s %s %d - %s",
		day,
		ordinalSuffix(day),
		parsed.Month().String(),
		parsed.Year(),
		parsed.Format("03:04 PM")+" UTC",
	), nil
}

// ordinalSuffix follows English day-of-month rules: 11, 12, and 13 always
// take "th" despite their final digit.
func ordinalSuffix(day int) string {
	if day >= 11 && day <= 13 {
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}

package webhooks

import (
	"strings"
	"testing"
)

func TestFormatTimestamp_RendersOrdinalDayAndTwelveHourClock(t *testing.T) {
	got, err := FormatTimestamp("2021-04-01T21:30:00Z")
	if err != nil {
		t.Fatalf("format timestamp: %v", err)
	}
	if got != "1st April 2021 - 09:30 PM UTC" {
		t.Fatalf("unexpected rendering %q", got)
	}
}

func TestFormatTimestamp_TeensAlwaysTakeTh(t *testing.T) {
	for input, want := range map[string]string{
		"2021-04-11T00:05:00Z": "11th April 2021 - 12:05 AM UTC",
		"2021-04-12T00:05:00Z": "12th April 2021 - 12:05 AM UTC",
		"2021-04-13T00:05:00Z": "13th April 2021 - 12:05 AM UTC",
	} {
		got, err := FormatTimestamp(input)
		if err != nil {
			t.Fatalf("format %q: %v", input, err)
		}
		if got != want {
			t.Fatalf("format %q: got %q, want %q", input, got, want)
		}
	}
}

func TestFormatTimestamp_SecondAndThirdSuffixes(t *testing.T) {
	got, err := FormatTimestamp("2021-04-22T13:00:00Z")
	if err != nil {
		t.Fatalf("format timestamp: %v", err)
	}
	if !strings.Contains(got, "22nd") || !strings.Contains(got, "01:00 PM UTC") {
		t.Fatalf("unexpected rendering %q", got)
	}

	got, err = FormatTimestamp("2021-04-03T06:07:00Z")
	if err != nil {
		t.Fatalf("format timestamp: %v", err)
	}
	if got != "3rd April 2021 - 06:07 AM UTC" {
		t.Fatalf("unexpected rendering %q", got)
	}
}

func TestFormatTimestamp_RejectsNonMatchingInputs(t *testing.T) {
	for _, input := range []string{
		"",
		"2021-04-01 21:30:00",
		"2021-04-01T21:30:00+02:00",
		"01-04-2021T21:30:00Z",
		"not a timestamp",
	} {
		if _, err := FormatTimestamp(input); err == nil {
			t.Fatalf("expected parse failure for %q", input)
		}
	}
}

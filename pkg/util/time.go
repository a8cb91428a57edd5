package util

import (
	"fmt"
	"math"
	"time"
)

// UpstreamTimeFormat is ISO-8601 in UTC with microseconds and a literal trailing Z
const UpstreamTimeFormat = "2006-01-02T15:04:05.000000Z"

func FormatUpstreamTime(t time.Time) string {
	return t.UTC().Format(UpstreamTimeFormat)
}

// ParseUpstreamTime parses an RFC3339 timestamp and normalises it to UTC.
// Blank or malformed values return nil.
func ParseUpstreamTime(value string) *time.Time {
	if value == "" {
		return nil
	}

	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil
	}

	parsed = parsed.UTC()
	return &parsed
}

// RoundMinutes converts a duration into minutes rounded to one decimal place
func RoundMinutes(d time.Duration) float64 {
	return math.Round(d.Minutes()*10) / 10
}

func HumaniseDuration(d time.Duration) string {
	if d >= time.Hour && d%time.Hour == 0 {
		hours := int(d / time.Hour)
		if hours == 1 {
			return "1 hour"
		}
		return fmt.Sprintf("%d hours", hours)
	}

	minutes := int(math.Round(d.Minutes()))
	if minutes == 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", minutes)
}

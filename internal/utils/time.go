package utils

import (
	"strings"
	"time"
)

const (
	layoutDate     = "2006-01-02"
	layoutDateTime = "2006-01-02 15:04:05"
)

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// ParseDate parses YYYY-MM-DD in local timezone.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(layoutDate, strings.TrimSpace(s), time.Local)
}

// ParseDateTime parses "YYYY-MM-DD HH:MM:SS" in local timezone.
func ParseDateTime(s string) (time.Time, error) {
	return time.ParseInLocation(layoutDateTime, strings.TrimSpace(s), time.Local)
}

// FormatDate formats time to YYYY-MM-DD in local timezone.
func FormatDate(t time.Time) string {
	return t.In(time.Local).Format(layoutDate)
}

// FormatDateTime formats time to "YYYY-MM-DD HH:MM:SS" in local timezone.
func FormatDateTime(t time.Time) string {
	return t.In(time.Local).Format(layoutDateTime)
}

// ServiceTime combines a booking's date and time columns into one instant.
// A missing time component defaults to midnight.
func ServiceTime(date, clock string) (time.Time, error) {
	date = strings.TrimSpace(date)
	if i := strings.Index(date, "T"); i > 0 {
		date = date[:i]
	}
	clock = strings.TrimSpace(clock)
	if clock == "" {
		return ParseDate(date)
	}
	if len(clock) == 5 {
		clock += ":00"
	}
	return ParseDateTime(date + " " + clock)
}

package models

import (
	"fmt"
	"time"
)

const (
	// MonthLayout is the canonical YYYY-MM key used across collections.
	MonthLayout = "2006-01"
	// DateLayout is the canonical YYYY-MM-DD key for daily records.
	DateLayout = "2006-01-02"
)

// ParseMonth validates a YYYY-MM month key.
func ParseMonth(month string) (time.Time, error) {
	t, err := time.Parse(MonthLayout, month)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q: %w", month, err)
	}
	return t, nil
}

// ParseDate validates a YYYY-MM-DD date key.
func ParseDate(date string) (time.Time, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return t, nil
}

// DaysInMonth returns the number of calendar days in the given YYYY-MM month.
func DaysInMonth(month string) (int, error) {
	t, err := ParseMonth(month)
	if err != nil {
		return 0, err
	}
	return t.AddDate(0, 1, -1).Day(), nil
}

// MonthOfDate extracts the YYYY-MM month key from a YYYY-MM-DD date key.
func MonthOfDate(date string) (string, error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return t.Format(MonthLayout), nil
}

// DayKey builds the YYYY-MM-DD key for a day number inside a month.
func DayKey(month string, day int) string {
	return fmt.Sprintf("%s-%02d", month, day)
}

// PreviousMonth returns the YYYY-MM key of the month before the given time.
func PreviousMonth(now time.Time) string {
	return now.AddDate(0, -1, 0).Format(MonthLayout)
}

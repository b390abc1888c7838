package domain

import "time"

// DateLayout is the canonical calendar-date format used everywhere
// (storage, CLI flags, report output).
const DateLayout = "2006-01-02"

// Day truncates t to UTC midnight so that date arithmetic is immune
// to time-of-day and timezone noise.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the whole number of days from a to b (negative
// when b precedes a).
func DaysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)).Hours() / 24)
}

// AddDays shifts a date by n calendar days.
func AddDays(t time.Time, n int) time.Time {
	return Day(t).AddDate(0, 0, n)
}

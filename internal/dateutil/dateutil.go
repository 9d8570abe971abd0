// Package dateutil provides calendar-day arithmetic and date parsing utilities.
//
// Every date handled by the board is a calendar day: a time.Time at UTC
// midnight. Day arithmetic goes through the (year, month, day) components so
// daylight-saving transitions in the caller's location never shift a day.
package dateutil

import (
	"errors"
	"fmt"
	"iter"
	"time"
)

// Date layouts.
const (
	DateLayout = "2006-01-02" // config, CLI flags, roster files
	BusyLayout = "2006.01.02" // external busy schedules
)

// Validation errors.
var (
	ErrInvalidDateFormat  = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidBusyFormat  = errors.New("date must be in YYYY.MM.DD format")
	ErrEndDateBeforeStart = errors.New("end date must be on or after start date")
)

const secondsPerDay = 24 * 60 * 60

// Day is a calendar day broken into its components.
type Day struct {
	Year  int
	Month time.Month
	Day   int
}

// DayOf returns the calendar day of t in t's location.
func DayOf(t time.Time) Day {
	return Day{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// Time returns the day as a UTC midnight timestamp.
func (d Day) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// String formats the day as YYYY-MM-DD.
func (d Day) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// TruncateToDay returns the calendar day of t as UTC midnight.
// The zero time stays zero so it can keep meaning "unset".
func TruncateToDay(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return DayOf(t).Time()
}

// AddDays returns the calendar day n days after t (n may be negative).
func AddDays(t time.Time, n int) time.Time {
	return TruncateToDay(t).AddDate(0, 0, n)
}

// DaysBetween returns the signed number of calendar days from a to b.
// It works on UTC midnights in Unix seconds, so ranges longer than a
// time.Duration can hold are still exact.
func DaysBetween(a, b time.Time) int {
	return int((TruncateToDay(b).Unix() - TruncateToDay(a).Unix()) / secondsPerDay)
}

// CountDaysInclusive returns the number of calendar days spanning
// [start, end]. It returns 0 when either bound is unset or end < start.
func CountDaysInclusive(start, end time.Time) int {
	if start.IsZero() || end.IsZero() {
		return 0
	}
	n := DaysBetween(start, end)
	if n < 0 {
		return 0
	}
	return n + 1
}

// DaysInRange yields every calendar day from start to end inclusive.
// The sequence is empty when either bound is unset or end < start, and it
// can be ranged over any number of times.
func DaysInRange(start, end time.Time) iter.Seq[Day] {
	count := CountDaysInclusive(start, end)
	first := TruncateToDay(start)
	return func(yield func(Day) bool) {
		for i := range count {
			if !yield(DayOf(first.AddDate(0, 0, i))) {
				return
			}
		}
	}
}

// DateRange represents a validated inclusive range of calendar days.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange creates a new DateRange with validation.
// startDate can be empty (defaults to today) or in YYYY-MM-DD format.
// endDate can be empty (defaults to startDate) or in YYYY-MM-DD format.
// Returns an error if endDate is before startDate.
func NewDateRange(startDate, endDate string) (*DateRange, error) {
	start, err := ParseDate(startDate)
	if err != nil {
		return nil, err
	}

	var end time.Time
	if endDate == "" {
		end = start
	} else {
		end, err = ParseDate(endDate)
		if err != nil {
			return nil, err
		}
	}

	if end.Before(start) {
		return nil, ErrEndDateBeforeStart
	}

	return &DateRange{Start: start, End: end}, nil
}

// MonthRange returns the range from the first to the last day of t's month.
func MonthRange(t time.Time) DateRange {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return DateRange{Start: first, End: first.AddDate(0, 1, -1)}
}

// Len returns the number of days in the range.
func (r DateRange) Len() int {
	return CountDaysInclusive(r.Start, r.End)
}

// Days yields every day of the range.
func (r DateRange) Days() iter.Seq[Day] {
	return DaysInRange(r.Start, r.End)
}

// Contains reports whether t falls on a day inside the range.
func (r DateRange) Contains(t time.Time) bool {
	d := TruncateToDay(t)
	return !d.Before(TruncateToDay(r.Start)) && !d.After(TruncateToDay(r.End))
}

// Column returns the zero-based day offset of t from the range start.
func (r DateRange) Column(t time.Time) int {
	return DaysBetween(r.Start, t)
}

// ParseDate parses a date string in YYYY-MM-DD format.
// If the string is empty, returns today's date.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return TruncateToDay(time.Now()), nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return t, nil
}

// ParseBusyDate parses a date string in the literal YYYY.MM.DD format used
// by external busy schedules.
func ParseBusyDate(s string) (time.Time, error) {
	t, err := time.Parse(BusyLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidBusyFormat
	}
	return t, nil
}

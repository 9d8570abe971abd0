package dateutil

import (
	"errors"
	"slices"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseDate(t *testing.T) {
	t.Run("valid date", func(t *testing.T) {
		got, err := ParseDate("2025-01-15")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := date(2025, 1, 15)
		if !got.Equal(want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("empty defaults to today", func(t *testing.T) {
		got, err := ParseDate("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		today := TruncateToDay(time.Now())
		if !got.Equal(today) {
			t.Errorf("got %v, want %v", got, today)
		}
	})

	t.Run("invalid format", func(t *testing.T) {
		_, err := ParseDate("01-15-2025")
		if !errors.Is(err, ErrInvalidDateFormat) {
			t.Errorf("got error %v, want %v", err, ErrInvalidDateFormat)
		}
	})
}

func TestParseBusyDate(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Time
		wantErr bool
	}{
		{input: "2025.12.10", want: date(2025, 12, 10)},
		{input: "2025.01.01", want: date(2025, 1, 1)},
		{input: "2025-12-10", wantErr: true},
		{input: "2025.13.01", wantErr: true},
		{input: "2025.02.30", wantErr: true},
		{input: "", wantErr: true},
		{input: "next week", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBusyDate(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidBusyFormat) {
					t.Fatalf("expected ErrInvalidBusyFormat, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewDateRange(t *testing.T) {
	t.Run("valid date range", func(t *testing.T) {
		dr, err := NewDateRange("2025-01-15", "2025-01-20")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !dr.Start.Equal(date(2025, 1, 15)) {
			t.Errorf("got start %v", dr.Start)
		}
		if !dr.End.Equal(date(2025, 1, 20)) {
			t.Errorf("got end %v", dr.End)
		}
		if dr.Len() != 6 {
			t.Errorf("got len %d, want 6", dr.Len())
		}
	})

	t.Run("empty end defaults to start", func(t *testing.T) {
		dr, err := NewDateRange("2025-01-15", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !dr.Start.Equal(dr.End) {
			t.Errorf("expected start and end to be equal, got %v and %v", dr.Start, dr.End)
		}
	})

	t.Run("end before start", func(t *testing.T) {
		_, err := NewDateRange("2025-01-20", "2025-01-15")
		if !errors.Is(err, ErrEndDateBeforeStart) {
			t.Errorf("got error %v, want %v", err, ErrEndDateBeforeStart)
		}
	})

	t.Run("invalid end", func(t *testing.T) {
		_, err := NewDateRange("2025-01-20", "20-01-2025")
		if !errors.Is(err, ErrInvalidDateFormat) {
			t.Errorf("got error %v, want %v", err, ErrInvalidDateFormat)
		}
	})
}

func TestCountDaysInclusive(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{"same day", date(2025, 3, 1), date(2025, 3, 1), 1},
		{"week", date(2025, 3, 1), date(2025, 3, 7), 7},
		{"across month", date(2025, 1, 30), date(2025, 2, 2), 4},
		{"leap day", date(2024, 2, 28), date(2024, 3, 1), 3},
		{"across year", date(2024, 12, 31), date(2025, 1, 1), 2},
		{"inverted", date(2025, 3, 7), date(2025, 3, 1), 0},
		{"zero start", time.Time{}, date(2025, 3, 1), 0},
		{"zero end", date(2025, 3, 1), time.Time{}, 0},
		{"ignores time of day", time.Date(2025, 3, 1, 23, 59, 0, 0, time.UTC), time.Date(2025, 3, 2, 0, 1, 0, 0, time.UTC), 2},
		{"four centuries", date(1700, 1, 1), date(2100, 1, 1), 146098},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CountDaysInclusive(tt.start, tt.end); got != tt.want {
				t.Errorf("CountDaysInclusive() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCountDaysInclusive_DaylightSaving(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Madrid")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}
	// DST starts on 2025-03-30 in Europe/Madrid; the day has 23 hours.
	start := time.Date(2025, 3, 29, 0, 0, 0, 0, loc)
	end := time.Date(2025, 3, 31, 0, 0, 0, 0, loc)
	if got := CountDaysInclusive(start, end); got != 3 {
		t.Errorf("CountDaysInclusive() across DST = %d, want 3", got)
	}
}

func TestDaysInRange(t *testing.T) {
	t.Run("matches count for valid bounds", func(t *testing.T) {
		ranges := [][2]time.Time{
			{date(2025, 3, 1), date(2025, 3, 1)},
			{date(2025, 1, 25), date(2025, 2, 3)},
			{date(2024, 2, 27), date(2024, 3, 2)},
			{date(2024, 12, 20), date(2025, 1, 10)},
			{date(1700, 1, 1), date(2100, 1, 1)},
		}
		for _, r := range ranges {
			days := slices.Collect(DaysInRange(r[0], r[1]))
			if len(days) != CountDaysInclusive(r[0], r[1]) {
				t.Errorf("%v..%v: got %d days, want %d", r[0], r[1], len(days), CountDaysInclusive(r[0], r[1]))
			}
		}
	})

	t.Run("yields components in order", func(t *testing.T) {
		got := slices.Collect(DaysInRange(date(2024, 2, 28), date(2024, 3, 1)))
		want := []Day{
			{Year: 2024, Month: time.February, Day: 28},
			{Year: 2024, Month: time.February, Day: 29},
			{Year: 2024, Month: time.March, Day: 1},
		}
		if !slices.Equal(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("empty for invalid bounds", func(t *testing.T) {
		if n := len(slices.Collect(DaysInRange(date(2025, 3, 2), date(2025, 3, 1)))); n != 0 {
			t.Errorf("inverted range yielded %d days", n)
		}
		if n := len(slices.Collect(DaysInRange(time.Time{}, date(2025, 3, 1)))); n != 0 {
			t.Errorf("zero start yielded %d days", n)
		}
	})

	t.Run("restartable", func(t *testing.T) {
		seq := DaysInRange(date(2025, 5, 1), date(2025, 5, 4))
		first := slices.Collect(seq)
		second := slices.Collect(seq)
		if !slices.Equal(first, second) {
			t.Errorf("second pass differs: %v vs %v", first, second)
		}
	})

	t.Run("early stop", func(t *testing.T) {
		n := 0
		for range DaysInRange(date(2025, 5, 1), date(2025, 5, 31)) {
			n++
			if n == 3 {
				break
			}
		}
		if n != 3 {
			t.Errorf("expected to stop after 3 days, got %d", n)
		}
	})
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name string
		a, b time.Time
		want int
	}{
		{"same day", date(2025, 3, 1), date(2025, 3, 1), 0},
		{"backwards", date(2025, 3, 7), date(2025, 3, 1), -6},
		{"beyond duration range", date(1700, 1, 1), date(2100, 1, 1), 146097},
		{"beyond duration range backwards", date(2100, 1, 1), date(1700, 1, 1), -146097},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysBetween(tt.a, tt.b); got != tt.want {
				t.Errorf("DaysBetween() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMonthRange(t *testing.T) {
	r := MonthRange(time.Date(2024, 2, 17, 15, 0, 0, 0, time.UTC))
	if !r.Start.Equal(date(2024, 2, 1)) || !r.End.Equal(date(2024, 2, 29)) {
		t.Errorf("got %v..%v", r.Start, r.End)
	}
	if r.Len() != 29 {
		t.Errorf("got len %d, want 29", r.Len())
	}
	if !r.Contains(date(2024, 2, 29)) || r.Contains(date(2024, 3, 1)) {
		t.Error("Contains boundary mismatch")
	}
	if got := r.Column(date(2024, 2, 10)); got != 9 {
		t.Errorf("Column() = %d, want 9", got)
	}
}

func TestAddDays(t *testing.T) {
	if got := AddDays(date(2025, 1, 30), 3); !got.Equal(date(2025, 2, 2)) {
		t.Errorf("AddDays forward = %v", got)
	}
	if got := AddDays(date(2025, 3, 1), -1); !got.Equal(date(2025, 2, 28)) {
		t.Errorf("AddDays backward = %v", got)
	}
	if got := DaysBetween(date(2025, 3, 10), date(2025, 3, 1)); got != -9 {
		t.Errorf("DaysBetween = %d, want -9", got)
	}
}

func TestDayString(t *testing.T) {
	d := DayOf(date(2025, 7, 4))
	if d.String() != "2025-07-04" {
		t.Errorf("got %q", d.String())
	}
	if !d.Time().Equal(date(2025, 7, 4)) {
		t.Errorf("Time() = %v", d.Time())
	}
}

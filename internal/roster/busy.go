package roster

import (
	"github.com/javiermolinar/classboard/internal/dateutil"
	"github.com/javiermolinar/classboard/internal/schedule"
)

// RawBusy is a busy window as it appears in roster sources, with both
// bounds in the "YYYY.MM.DD" layout.
type RawBusy struct {
	Start string `toml:"start"`
	End   string `toml:"end"`
}

// ParseBusy converts raw windows into busy windows. Windows that fail to
// parse or end before they start are dropped; the number of dropped
// windows is returned alongside.
func ParseBusy(raw []RawBusy) ([]schedule.BusyWindow, int) {
	var (
		windows []schedule.BusyWindow
		dropped int
	)
	for _, r := range raw {
		start, err := dateutil.ParseBusyDate(r.Start)
		if err != nil {
			dropped++
			continue
		}
		end, err := dateutil.ParseBusyDate(r.End)
		if err != nil || end.Before(start) {
			dropped++
			continue
		}
		windows = append(windows, schedule.BusyWindow{Start: start, End: end})
	}
	return windows, dropped
}

// FormatBusy is the inverse of ParseBusy.
func FormatBusy(windows []schedule.BusyWindow) []RawBusy {
	if len(windows) == 0 {
		return nil
	}
	raw := make([]RawBusy, 0, len(windows))
	for _, w := range windows {
		raw = append(raw, RawBusy{
			Start: w.Start.Format(dateutil.BusyLayout),
			End:   w.End.Format(dateutil.BusyLayout),
		})
	}
	return raw
}

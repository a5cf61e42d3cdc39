package dates

import (
	"strconv"
	"strings"
	"time"
)

// Layout is the only format dates are written in: unambiguous on round trip
// regardless of the reader's locale.
const Layout = "2006-01-02"

// Spreadsheet serial day 1 maps to 1900-01-01, so the epoch sits at
// 1899-12-30 (accounting for the fictitious 1900-02-29).
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// stringLayouts are tried in order. Day-first forms come after ISO so that
// "2024-01-02" is never read month-first.
var stringLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006/01/02",
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2-1-2006",
	"02.01.2006",
	"2.1.2006",
	"02/01/06",
	"2/1/06",
}

// Normalize parses a heterogeneous date representation into a day-resolution
// UTC time. Unparseable input yields nil ("unknown"), never an error: import
// files are uncontrolled and a bad cell must not abort the row. Callers treat
// nil as "no date information": sorted last, excluded from expiry windows.
func Normalize(raw string) *time.Time {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}

	for _, layout := range stringLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return truncate(t)
		}
	}

	// Spreadsheet serials arrive as bare numbers when cells are read raw.
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		return fromSerial(serial)
	}

	return nil
}

// fromSerial converts a spreadsheet serial day count. Small numbers would be
// 1900-era dates no lab file means, so anything below 1000 (mid-1902) and
// anything past year 9999 is treated as noise, not a date.
func fromSerial(serial float64) *time.Time {
	if serial < 1000 || serial > 2958465 {
		return nil
	}
	t := serialEpoch.AddDate(0, 0, int(serial))
	return &t
}

// Format writes a normalized date, or the empty string for unknown.
func Format(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(Layout)
}

// Equal compares two date-or-unknown values at day resolution.
func Equal(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Format(Layout) == b.Format(Layout)
}

func truncate(t time.Time) *time.Time {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &d
}

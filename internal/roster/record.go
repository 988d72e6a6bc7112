// Package roster turns a spreadsheet roster grid into typed shift records and
// answers "who is on shift" questions about them.
//
// The package is split across a few files:
//   - record.go: Clock, Record, Schedule and the active-window check
//   - parser.go: header detection and the per-column row walk
//   - loader.go: fetch + parse against a GridSource, rebuilt on every call
package roster

import (
	"strings"
	"time"
)

// dateKeyLayout renders dates as DD-MM-YYYY in labels and filters.
const dateKeyLayout = "02-01-2006"

// clockLayout is the 12-hour time format used by the shift-type table.
const clockLayout = "3:04 PM"

// Clock is a time of day with minute precision.
type Clock struct {
	Hour   int
	Minute int
}

// ParseClock parses a 12-hour clock string such as "07:00 AM" or "9:30 pm".
// Any other form, including the "00:00:00" sentinel, reports false.
func ParseClock(s string) (Clock, bool) {
	t, err := time.Parse(clockLayout, strings.ToUpper(strings.TrimSpace(s)))
	if err != nil {
		return Clock{}, false
	}
	return Clock{Hour: t.Hour(), Minute: t.Minute()}, true
}

// On returns the instant at which c occurs on the calendar day of date, in loc.
func (c Clock) On(date time.Time, loc *time.Location) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, c.Hour, c.Minute, 0, 0, loc)
}

// Record is one person's shift on one roster date.
type Record struct {
	// Date is midnight of the roster day in the roster's location.
	Date time.Time

	// Person is the staff name. Never empty.
	Person string

	// Shift is the raw shift code from the grid; it may be unknown to the table.
	Shift string

	// StartText and EndText are the window texts from the shift-type table,
	// or the sentinel for unknown codes.
	StartText string
	EndText   string

	// Start and End are nil when the corresponding text is not a clock time.
	Start *Clock
	End   *Clock
}

// DateKey returns the record date as DD-MM-YYYY.
func (r Record) DateKey() string {
	return DateKey(r.Date)
}

// Window returns the zoned start and end instants of the shift. When the end
// clock is earlier than the start clock the shift runs overnight and the end
// falls on the following day. ok is false when the date or either clock is missing.
func (r Record) Window(loc *time.Location) (start, end time.Time, ok bool) {
	if r.Date.IsZero() || r.Start == nil || r.End == nil {
		return time.Time{}, time.Time{}, false
	}
	if loc == nil {
		loc = r.Date.Location()
	}
	start = r.Start.On(r.Date, loc)
	end = r.End.On(r.Date, loc)
	if end.Before(start) {
		end = end.AddDate(0, 0, 1)
	}
	return start, end, true
}

// ActiveAt reports whether now falls inside the shift window. Both ends are
// inclusive.
func (r Record) ActiveAt(now time.Time) bool {
	start, end, ok := r.Window(r.Date.Location())
	if !ok {
		return false
	}
	return !now.Before(start) && !now.After(end)
}

// Schedule is an ordered list of records.
type Schedule []Record

// OnDate returns the records whose date is the same calendar day as day,
// comparing DD-MM-YYYY keys.
func (s Schedule) OnDate(day time.Time) Schedule {
	key := DateKey(day)
	var out Schedule
	for _, r := range s {
		if r.DateKey() == key {
			out = append(out, r)
		}
	}
	return out
}

// ActiveAt returns the records whose window contains now.
func (s Schedule) ActiveAt(now time.Time) Schedule {
	var out Schedule
	for _, r := range s {
		if r.ActiveAt(now) {
			out = append(out, r)
		}
	}
	return out
}

// DateKey formats t as DD-MM-YYYY.
func DateKey(t time.Time) string {
	return t.Format(dateKeyLayout)
}

// Package shifttype loads the shift-code table that maps a roster shift code
// (e.g., "M", "N") to its clock-in and clock-out times.
package shifttype

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// Sentinel is the time text used when a shift code has no known window or a
// table cell is empty. It never parses as a clock time.
const Sentinel = "00:00:00"

// Required CSV header columns.
const (
	colCode  = "shift_type"
	colBegin = "begin"
	colEnd   = "end"
)

// Window is the begin/end time text for a shift code, as written in the table
// (e.g., "07:00 AM", "03:00 PM").
type Window struct {
	Begin string
	End   string
}

// Table is an immutable shift-code lookup. The zero value is an empty table.
type Table struct {
	windows map[string]Window
}

// New builds a table from a code → window map. The map is copied.
func New(windows map[string]Window) Table {
	m := make(map[string]Window, len(windows))
	for code, w := range windows {
		m[code] = w
	}
	return Table{windows: m}
}

// Load reads the table from a CSV file on disk.
func Load(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return Table{}, fmt.Errorf("opening shift types: %w", err)
	}
	defer f.Close()

	t, err := Parse(f)
	if err != nil {
		return Table{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return t, nil
}

// Parse reads a CSV with a header row containing shift_type, begin and end
// columns. Column order is free and extra columns are ignored. When a code
// appears more than once the last row wins.
func Parse(r io.Reader) (Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return Table{}, errors.New("empty shift type table")
	}
	if err != nil {
		return Table{}, fmt.Errorf("reading header: %w", err)
	}

	idx := map[string]int{colCode: -1, colBegin: -1, colEnd: -1}
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, ok := idx[name]; ok {
			idx[name] = i
		}
	}
	for _, name := range []string{colCode, colBegin, colEnd} {
		if idx[name] < 0 {
			return Table{}, fmt.Errorf("missing column %q", name)
		}
	}

	windows := make(map[string]Window)
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Table{}, fmt.Errorf("reading row: %w", err)
		}
		code := field(rec, idx[colCode])
		if code == "" {
			continue
		}
		windows[code] = Window{
			Begin: orSentinel(field(rec, idx[colBegin])),
			End:   orSentinel(field(rec, idx[colEnd])),
		}
	}
	return Table{windows: windows}, nil
}

// Lookup returns the window for code and whether the code is known.
func (t Table) Lookup(code string) (Window, bool) {
	w, ok := t.windows[code]
	return w, ok
}

// Resolve returns the window for code, or the sentinel window for unknown codes.
func (t Table) Resolve(code string) Window {
	if w, ok := t.windows[code]; ok {
		return w
	}
	return Window{Begin: Sentinel, End: Sentinel}
}

// Len returns the number of known codes.
func (t Table) Len() int {
	return len(t.windows)
}

// Codes returns the known codes in sorted order.
func (t Table) Codes() []string {
	codes := make([]string, 0, len(t.windows))
	for code := range t.windows {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

func field(rec []string, i int) string {
	if i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func orSentinel(s string) string {
	if s == "" {
		return Sentinel
	}
	return s
}

// Package sheets provides read-only roster grid sources: Google Sheets, local
// XLSX workbooks and in-memory grids. Every source returns all cell values of
// one worksheet as text, with rows right-padded to a common width.
package sheets

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
)

// DefaultSheetName is the worksheet the roster lives on. The trailing space is
// part of the real sheet title.
const DefaultSheetName = "New Shift 24/7 "

// StaticSource serves a fixed grid, such as a CSV export of the roster sheet.
type StaticSource struct {
	Grid [][]string
}

// LoadCSV reads a CSV export of the roster worksheet into a StaticSource.
func LoadCSV(path string) (StaticSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return StaticSource{}, fmt.Errorf("opening roster export: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	grid, err := r.ReadAll()
	if err != nil {
		return StaticSource{}, fmt.Errorf("reading roster export %s: %w", path, err)
	}
	return StaticSource{Grid: grid}, nil
}

// Rows returns a padded copy of the grid.
func (s StaticSource) Rows(_ context.Context) ([][]string, error) {
	out := make([][]string, len(s.Grid))
	for i, r := range s.Grid {
		out[i] = append([]string(nil), r...)
	}
	return pad(out), nil
}

// pad right-pads every row with empty cells to the width of the widest row.
// The Sheets API drops trailing empty cells; padding restores the rectangular
// shape the parser sees from a full-range fetch.
func pad(rows [][]string) [][]string {
	width := 0
	for _, r := range rows {
		if len(r) > width {
			width = len(r)
		}
	}
	for i, r := range rows {
		if len(r) < width {
			rows[i] = append(r, make([]string, width-len(r))...)
		}
	}
	return rows
}

// stringify converts an API cell value to text.
func stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}

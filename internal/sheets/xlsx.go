package sheets

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// dateLayout is how date cells are rendered, matching the Sheets API text for
// a US-locale date.
const dateLayout = "01/02/2006"

// XLSXSource reads a worksheet from a workbook on disk. The file is reopened
// on every call so edits show up without a restart.
type XLSXSource struct {
	Path string

	// SheetName selects the worksheet. Empty means the first sheet.
	SheetName string
}

// Rows returns the formatted cell values of the worksheet. Cells holding a
// date serial with a date number format are rendered as MM/DD/YYYY whatever
// their display format.
func (x XLSXSource) Rows(_ context.Context) ([][]string, error) {
	f, err := excelize.OpenFile(x.Path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	name := x.SheetName
	if name == "" {
		list := f.GetSheetList()
		if len(list) == 0 {
			return nil, errors.New("workbook has no sheets")
		}
		name = list[0]
	}

	rows, err := f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", name, err)
	}
	raw, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("reading raw values of sheet %q: %w", name, err)
	}

	for r, row := range rows {
		for c, formatted := range row {
			if r >= len(raw) || c >= len(raw[r]) || raw[r][c] == formatted {
				continue
			}
			if text, ok := dateCell(f, name, c, r, raw[r][c]); ok {
				row[c] = text
			}
		}
	}
	return pad(rows), nil
}

// dateCell renders the cell at zero-based (col, row) as a date when its raw
// value is a serial number and its style carries a date format.
func dateCell(f *excelize.File, sheet string, col, row int, raw string) (string, bool) {
	serial, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return "", false
	}
	ref, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return "", false
	}
	styleID, err := f.GetCellStyle(sheet, ref)
	if err != nil || styleID == 0 {
		return "", false
	}
	style, err := f.GetStyle(styleID)
	if err != nil || !isDateFormat(style) {
		return "", false
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return "", false
	}
	return t.Format(dateLayout), true
}

// isDateFormat reports whether the style's number format shows a calendar date.
func isDateFormat(style *excelize.Style) bool {
	if style.CustomNumFmt != nil {
		return customHasDate(*style.CustomNumFmt)
	}
	switch id := style.NumFmt; {
	case id >= 14 && id <= 17, id == 22:
		return true
	case id >= 27 && id <= 36, id >= 50 && id <= 58:
		// East Asian built-in date formats.
		return true
	}
	return false
}

// customHasDate looks for day or year tokens outside quoted literals and
// bracketed sections such as colors and locales.
func customHasDate(format string) bool {
	var quoted, bracket bool
	for _, ch := range strings.ToLower(format) {
		switch {
		case ch == '"':
			quoted = !quoted
		case quoted:
		case ch == '[':
			bracket = true
		case ch == ']':
			bracket = false
		case bracket:
		case ch == 'd', ch == 'y':
			return true
		}
	}
	return false
}

package roster

import (
	"strings"
	"time"

	"shiftbot/internal/shifttype"
)

// headerDateLayout matches MM/DD/YYYY header cells; leading zeros are optional.
const headerDateLayout = "1/2/2006"

// nameColumn is the grid column that carries staff names.
const nameColumn = 1

// MonthYear identifies a calendar month.
type MonthYear struct {
	Month time.Month
	Year  int
}

// TargetMonths returns the current month of today and the month after it.
// The next month is taken from day 28 plus four days, which always lands in
// the following month.
func TargetMonths(today time.Time) [2]MonthYear {
	y, m, _ := today.Date()
	next := time.Date(y, m, 28, 0, 0, 0, 0, today.Location()).AddDate(0, 0, 4)
	return [2]MonthYear{
		{Month: m, Year: y},
		{Month: next.Month(), Year: next.Year()},
	}
}

// dateColumn is a header cell holding a target-month date.
type dateColumn struct {
	row  int
	col  int
	date time.Time
}

// Parse extracts the schedule for today's month and the next one from a roster
// grid. Only the first row that contains a target-month date is used as the
// header; every matching date column in it yields its own block of records.
func Parse(grid [][]string, today time.Time, types shifttype.Table) Schedule {
	loc := today.Location()
	columns := findDateColumns(grid, TargetMonths(today), loc)

	var sched Schedule
	for _, dc := range columns {
		sched = append(sched, walkColumn(grid, dc, types)...)
	}
	return sched
}

// findDateColumns scans rows top-to-bottom and returns the target-month date
// cells of the first row that has any. Cells that are not dates are skipped.
func findDateColumns(grid [][]string, targets [2]MonthYear, loc *time.Location) []dateColumn {
	var found []dateColumn
	for i, row := range grid {
		for j, cell := range row {
			d, err := time.ParseInLocation(headerDateLayout, strings.TrimSpace(cell), loc)
			if err != nil {
				continue
			}
			if !inTargets(d, targets) {
				continue
			}
			found = append(found, dateColumn{row: i, col: j, date: d})
		}
		if len(found) > 0 {
			break
		}
	}
	return found
}

func inTargets(d time.Time, targets [2]MonthYear) bool {
	for _, t := range targets {
		if d.Month() == t.Month && d.Year() == t.Year {
			return true
		}
	}
	return false
}

// walkColumn reads the rows below the header for one date column. The current
// person carries forward across rows with a blank name cell and resets for
// each column. The walk ends at the first all-blank row.
func walkColumn(grid [][]string, dc dateColumn, types shifttype.Table) Schedule {
	var (
		out    Schedule
		person string
	)
	for _, row := range grid[dc.row+1:] {
		if len(row) <= dc.col {
			continue
		}
		if blankRow(row) {
			break
		}

		if name := cellAt(row, nameColumn); name != "" {
			person = name
		}
		shift := strings.TrimSpace(row[dc.col])
		if person == "" || shift == "" {
			continue
		}
		out = append(out, newRecord(dc.date, person, shift, types))
	}
	return out
}

func newRecord(date time.Time, person, shift string, types shifttype.Table) Record {
	w := types.Resolve(shift)
	r := Record{
		Date:      date,
		Person:    person,
		Shift:     shift,
		StartText: w.Begin,
		EndText:   w.End,
	}
	if c, ok := ParseClock(w.Begin); ok {
		r.Start = &c
	}
	if c, ok := ParseClock(w.End); ok {
		r.End = &c
	}
	return r
}

func cellAt(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

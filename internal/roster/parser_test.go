package roster

import (
	"context"
	"errors"
	"testing"
	"time"

	"shiftbot/internal/shifttype"

	"github.com/google/go-cmp/cmp"
)

func testTypes() shifttype.Table {
	return shifttype.New(map[string]shifttype.Window{
		"M": {Begin: "07:00 AM", End: "03:00 PM"},
		"S": {Begin: "03:00 PM", End: "11:00 PM"},
		"N": {Begin: "11:00 PM", End: "07:00 AM"},
	})
}

// row builds a grid row of width n with the given column → value cells.
func row(n int, cells map[int]string) []string {
	r := make([]string, n)
	for i, v := range cells {
		r[i] = v
	}
	return r
}

// summary is the comparable projection of a record used in table assertions.
type summary struct {
	Date   string
	Person string
	Shift  string
	Start  string
	End    string
}

func summarize(s Schedule) []summary {
	out := make([]summary, 0, len(s))
	for _, r := range s {
		out = append(out, summary{r.DateKey(), r.Person, r.Shift, r.StartText, r.EndText})
	}
	return out
}

func TestTargetMonths(t *testing.T) {
	tests := []struct {
		today time.Time
		want  [2]MonthYear
	}{
		{
			time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC),
			[2]MonthYear{{time.June, 2024}, {time.July, 2024}},
		},
		{
			time.Date(2024, 12, 31, 23, 0, 0, 0, time.UTC),
			[2]MonthYear{{time.December, 2024}, {time.January, 2025}},
		},
		{
			time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			[2]MonthYear{{time.February, 2024}, {time.March, 2024}},
		},
		{
			time.Date(2023, 1, 31, 0, 0, 0, 0, time.UTC),
			[2]MonthYear{{time.January, 2023}, {time.February, 2023}},
		},
	}
	for _, tt := range tests {
		if got := TargetMonths(tt.today); got != tt.want {
			t.Errorf("TargetMonths(%s) = %v, want %v", tt.today.Format("2006-01-02"), got, tt.want)
		}
	}
}

func TestParse_EndToEndScenario(t *testing.T) {
	loc := mustLoc(t)
	today := time.Date(2024, 6, 1, 8, 0, 0, 0, loc)
	grid := [][]string{
		row(6, nil),
		row(6, map[int]string{1: "Roster"}),
		row(6, map[int]string{1: "Name", 5: "06/01/2024"}),
		row(6, map[int]string{1: "Alice", 5: "M"}),
		row(6, map[int]string{5: "M"}),
		row(6, map[int]string{5: "M"}),
		row(6, nil),
		row(6, map[int]string{1: "Bob", 5: "N"}),
	}

	got := Parse(grid, today, testTypes())

	want := []summary{
		{"01-06-2024", "Alice", "M", "07:00 AM", "03:00 PM"},
		{"01-06-2024", "Alice", "M", "07:00 AM", "03:00 PM"},
		{"01-06-2024", "Alice", "M", "07:00 AM", "03:00 PM"},
	}
	if diff := cmp.Diff(want, summarize(got)); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
	for _, r := range got {
		if r.Start == nil || *r.Start != (Clock{Hour: 7}) {
			t.Errorf("start clock = %v, want 07:00", r.Start)
		}
		if r.End == nil || *r.End != (Clock{Hour: 15}) {
			t.Errorf("end clock = %v, want 15:00", r.End)
		}
		if r.Date.Location() != loc {
			t.Errorf("record date location = %v, want %v", r.Date.Location(), loc)
		}
	}
}

func TestParse_NoHeaderInTargetMonths(t *testing.T) {
	today := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	grid := [][]string{
		{"", "Name", "03/01/2024", "08/01/2024", "06/01/2023"},
		{"", "Alice", "M", "M", "M"},
	}
	if got := Parse(grid, today, testTypes()); len(got) != 0 {
		t.Errorf("expected empty schedule, got %d records", len(got))
	}
}

func TestParse_EmptyGrid(t *testing.T) {
	if got := Parse(nil, time.Now(), testTypes()); len(got) != 0 {
		t.Errorf("expected empty schedule, got %d records", len(got))
	}
}

func TestParse_MalformedDatesSkipped(t *testing.T) {
	today := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	grid := [][]string{
		{"", "Name", "13/45/2024", "June 2", " 6/2/2024 ", "2024-06-03"},
		{"", "Alice", "M", "M", "S", "M"},
		{"", "", "", "", "", ""},
	}
	want := []summary{{"02-06-2024", "Alice", "S", "03:00 PM", "11:00 PM"}}
	if diff := cmp.Diff(want, summarize(Parse(grid, today, testTypes()))); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_BlankRowTerminatesBlock(t *testing.T) {
	today := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	grid := [][]string{
		{"", "Name", "06/10/2024"},
		{"", "Alice", "M"},
		{" ", "  ", ""},
		{"", "Bob", "S"},
		{"", "Cara", "N"},
	}
	got := Parse(grid, today, testTypes())
	if len(got) != 1 || got[0].Person != "Alice" {
		t.Errorf("expected only Alice before the blank row, got %+v", summarize(got))
	}
}

func TestParse_NameCarriesForwardAndResetsPerColumn(t *testing.T) {
	today := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	grid := [][]string{
		{"", "Name", "06/10/2024", "06/11/2024"},
		{"", "", "S", ""},
		{"", "Alice", "M", ""},
		{"", "", "N", "M"},
		{"", "Bob", "", "S"},
		{"", "", "M", "N"},
	}
	want := []summary{
		// Column 2: first row has a shift but no person yet, so it is dropped.
		{"10-06-2024", "Alice", "M", "07:00 AM", "03:00 PM"},
		{"10-06-2024", "Alice", "N", "11:00 PM", "07:00 AM"},
		{"10-06-2024", "Bob", "M", "07:00 AM", "03:00 PM"},
		// Column 3.
		{"11-06-2024", "Alice", "M", "07:00 AM", "03:00 PM"},
		{"11-06-2024", "Bob", "S", "03:00 PM", "11:00 PM"},
		{"11-06-2024", "Bob", "N", "11:00 PM", "07:00 AM"},
	}
	if diff := cmp.Diff(want, summarize(Parse(grid, today, testTypes()))); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_OnlyFirstHeaderRowUsed(t *testing.T) {
	today := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	grid := [][]string{
		{"", "Name", "06/30/2024"},
		{"", "Alice", "M"},
		{"", "", ""},
		{"", "Name", "07/01/2024"},
		{"", "Bob", "N"},
	}
	got := Parse(grid, today, testTypes())
	if len(got) != 1 || got[0].Person != "Alice" || got[0].DateKey() != "30-06-2024" {
		t.Errorf("expected only the first header block, got %+v", summarize(got))
	}
}

func TestParse_BothTargetMonthsInOneRow(t *testing.T) {
	today := time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC)
	grid := [][]string{
		{"", "Name", "12/31/2024", "01/01/2025", "01/01/2024", "02/01/2025"},
		{"", "Alice", "M", "N", "M", "M"},
	}
	want := []summary{
		{"31-12-2024", "Alice", "M", "07:00 AM", "03:00 PM"},
		{"01-01-2025", "Alice", "N", "11:00 PM", "07:00 AM"},
	}
	if diff := cmp.Diff(want, summarize(Parse(grid, today, testTypes()))); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_ShortRowsSkipped(t *testing.T) {
	today := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	grid := [][]string{
		{"", "Name", "", "06/10/2024"},
		{"", "Alice", "", "M"},
		{"", "Bob"},
		{},
		{"", "", "", "S"},
	}
	// The short row with Bob is skipped entirely, so Alice carries on.
	// The empty row is short too and does not end the block.
	want := []summary{
		{"10-06-2024", "Alice", "M", "07:00 AM", "03:00 PM"},
		{"10-06-2024", "Alice", "S", "03:00 PM", "11:00 PM"},
	}
	if diff := cmp.Diff(want, summarize(Parse(grid, today, testTypes()))); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_DateInColumnZero(t *testing.T) {
	today := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	grid := [][]string{
		{"06/10/2024"},
		{"M"},
		{"M", "Alice"},
	}
	got := Parse(grid, today, testTypes())
	if len(got) != 1 || got[0].Person != "Alice" {
		t.Errorf("got %+v, want one record for Alice", summarize(got))
	}
}

func TestParse_UnknownShiftCode(t *testing.T) {
	today := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	grid := [][]string{
		{"", "Name", "06/10/2024"},
		{"", "Alice", "X"},
	}
	got := Parse(grid, today, testTypes())
	if len(got) != 1 {
		t.Fatalf("expected 1 record, got %d", len(got))
	}
	r := got[0]
	if r.StartText != "00:00:00" || r.EndText != "00:00:00" {
		t.Errorf("unknown code window = %s/%s, want 00:00:00/00:00:00", r.StartText, r.EndText)
	}
	if r.Start != nil || r.End != nil {
		t.Error("unknown code should have unparseable clocks")
	}
	if r.ActiveAt(time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)) {
		t.Error("record with sentinel window should never be active")
	}
}

func TestParse_TrimsCells(t *testing.T) {
	today := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	grid := [][]string{
		{"", "Name", " 06/10/2024 "},
		{"", "  Alice ", " M "},
	}
	want := []summary{{"10-06-2024", "Alice", "M", "07:00 AM", "03:00 PM"}}
	if diff := cmp.Diff(want, summarize(Parse(grid, today, testTypes()))); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

type fakeSource struct {
	rows  [][]string
	err   error
	calls int
}

func (f *fakeSource) Rows(context.Context) ([][]string, error) {
	f.calls++
	return f.rows, f.err
}

func TestLoader_LoadRebuildsEachCall(t *testing.T) {
	loc := mustLoc(t)
	src := &fakeSource{rows: [][]string{
		{"", "Name", "06/10/2024"},
		{"", "Alice", "M"},
	}}
	l := &Loader{
		Source:   src,
		Types:    testTypes(),
		Location: loc,
		Now:      func() time.Time { return time.Date(2024, 6, 9, 20, 0, 0, 0, time.UTC) },
	}

	s, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(s) != 1 {
		t.Fatalf("expected 1 record, got %d", len(s))
	}

	src.rows = append(src.rows, []string{"", "Bob", "S"})
	s, err = l.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(s) != 2 || src.calls != 2 {
		t.Errorf("expected a fresh fetch per call: records=%d calls=%d", len(s), src.calls)
	}
}

func TestLoader_TodayUsesLocation(t *testing.T) {
	loc := mustLoc(t)
	l := &Loader{
		Location: loc,
		Now:      func() time.Time { return time.Date(2024, 6, 30, 18, 0, 0, 0, time.UTC) },
	}
	// 18:00 UTC on June 30 is already July 1 in Jakarta.
	if got := DateKey(l.Today()); got != "01-07-2024" {
		t.Errorf("Today = %s, want 01-07-2024", got)
	}
}

func TestLoader_SourceError(t *testing.T) {
	boom := errors.New("sheet unavailable")
	l := &Loader{Source: &fakeSource{err: boom}, Types: testTypes(), Location: time.UTC}
	if _, err := l.Load(context.Background()); !errors.Is(err, boom) {
		t.Errorf("expected wrapped source error, got %v", err)
	}
}

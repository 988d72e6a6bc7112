package main

import (
	"encoding/json"
	"fmt"
	"io"

	"shiftbot/internal/roster"
	"shiftbot/internal/shifttype"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	colorHeader = lipgloss.Color("12") // blue
	colorMuted  = lipgloss.Color("242")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorHeader)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().Padding(0, 1)
)

// recordView is the JSON shape of a roster record.
type recordView struct {
	Date   string `json:"date"`
	Person string `json:"person"`
	Shift  string `json:"shift"`
	Start  string `json:"start"`
	End    string `json:"end"`
}

func recordViews(s roster.Schedule) []recordView {
	out := make([]recordView, 0, len(s))
	for _, r := range s {
		out = append(out, recordView{
			Date:   r.DateKey(),
			Person: r.Person,
			Shift:  r.Shift,
			Start:  r.StartText,
			End:    r.EndText,
		})
	}
	return out
}

// typeView is the JSON shape of a shift-type table entry.
type typeView struct {
	Code  string `json:"shift_type"`
	Begin string `json:"begin"`
	End   string `json:"end"`
}

func typeViews(t shifttype.Table) []typeView {
	codes := t.Codes()
	out := make([]typeView, 0, len(codes))
	for _, code := range codes {
		w := t.Resolve(code)
		out = append(out, typeView{Code: code, Begin: w.Begin, End: w.End})
	}
	return out
}

// renderRecords renders records as a bordered table.
func renderRecords(s roster.Schedule) string {
	t := newTable("Date", "Person", "Shift", "Start", "End")
	for _, v := range recordViews(s) {
		t.Row(v.Date, v.Person, v.Shift, v.Start, v.End)
	}
	return t.Render()
}

// renderTypes renders the shift-type table sorted by code.
func renderTypes(tt shifttype.Table) string {
	t := newTable("Code", "Begin", "End")
	for _, v := range typeViews(tt) {
		t.Row(v.Code, v.Begin, v.End)
	}
	return t.Render()
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorMuted)).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

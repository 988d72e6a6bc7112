package bridge

import (
	"fmt"
	"strings"

	"shiftbot/internal/roster"
)

// FormatSchedule renders the shift listing for one day. label is the day as
// shown to users (DD-MM-YYYY).
func FormatSchedule(records roster.Schedule, label string) string {
	if len(records) == 0 {
		return fmt.Sprintf("📅 Tidak ada jadwal shift untuk %s.", label)
	}
	lines := make([]string, 0, len(records)+1)
	lines = append(lines, fmt.Sprintf("📅 Jadwal Shift (%s):", label))
	for _, r := range records {
		lines = append(lines, formatLine(r))
	}
	return strings.Join(lines, "\n")
}

// FormatActive renders the people whose shift window contains the current instant.
func FormatActive(records roster.Schedule) string {
	if len(records) == 0 {
		return "🔍 Tidak ada yang sedang aktif saat ini."
	}
	lines := make([]string, 0, len(records)+1)
	lines = append(lines, "🟢 Yang sedang aktif sekarang:")
	for _, r := range records {
		lines = append(lines, formatLine(r))
	}
	return strings.Join(lines, "\n")
}

func formatLine(r roster.Record) string {
	return fmt.Sprintf("• %s (%s) — %s s/d %s", r.Person, r.Shift, r.StartText, r.EndText)
}

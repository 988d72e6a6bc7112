package bridge

import (
	"context"
	"errors"
	"sync"
	"time"

	"shiftbot/internal/roster"
	"shiftbot/internal/shifttype"
)

// mockLoader implements ScheduleLoader over a fixed grid.
type mockLoader struct {
	mu    sync.Mutex
	grid  [][]string
	types shifttype.Table
	now   time.Time
	err   error
	loads int
}

func (m *mockLoader) Load(_ context.Context) (roster.Schedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loads++
	if m.err != nil {
		return nil, m.err
	}
	return roster.Parse(m.grid, m.now, m.types), nil
}

func (m *mockLoader) Today() time.Time {
	return m.now
}

func (m *mockLoader) getLoads() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loads
}

type sentMessage struct {
	ChatID string
	Text   string
}

// mockNotifier records sends and optionally fails them.
type mockNotifier struct {
	mu   sync.Mutex
	sent []sentMessage
	err  error
}

func (m *mockNotifier) Send(_ context.Context, chatID, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMessage{ChatID: chatID, Text: text})
	return nil
}

func (m *mockNotifier) getSent() []sentMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]sentMessage(nil), m.sent...)
}

var errSendFailed = errors.New("send failed")

func testTypes() shifttype.Table {
	return shifttype.New(map[string]shifttype.Window{
		"M": {Begin: "07:00 AM", End: "03:00 PM"},
		"S": {Begin: "03:00 PM", End: "11:00 PM"},
		"N": {Begin: "11:00 PM", End: "07:00 AM"},
	})
}

// testGrid has a header for June 10 and June 11 2024.
func testGrid() [][]string {
	return [][]string{
		{"", "Roster June", "", ""},
		{"", "Name", "06/10/2024", "06/11/2024"},
		{"", "Alice", "M", "N"},
		{"", "", "S", ""},
		{"", "Bob", "N", "M"},
		{"", "", "", ""},
		{"", "Old", "M", "M"},
	}
}

func newTestLoader(now time.Time) *mockLoader {
	return &mockLoader{grid: testGrid(), types: testTypes(), now: now}
}

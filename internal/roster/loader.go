package roster

import (
	"context"
	"fmt"
	"time"

	"shiftbot/internal/shifttype"
)

// GridSource fetches all cell values of the roster sheet as rows of text.
type GridSource interface {
	Rows(ctx context.Context) ([][]string, error)
}

// Loader rebuilds the schedule from its source on every call. Nothing is cached,
// so each result reflects the sheet at request time.
type Loader struct {
	Source   GridSource
	Types    shifttype.Table
	Location *time.Location

	// Now returns the current instant. Defaults to time.Now.
	Now func() time.Time
}

// Today returns the current instant in the loader's location.
func (l *Loader) Today() time.Time {
	now := time.Now
	if l.Now != nil {
		now = l.Now
	}
	loc := l.Location
	if loc == nil {
		loc = time.UTC
	}
	return now().In(loc)
}

// Load fetches the grid and parses it relative to Today.
func (l *Loader) Load(ctx context.Context) (Schedule, error) {
	rows, err := l.Source.Rows(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching roster grid: %w", err)
	}
	return Parse(rows, l.Today(), l.Types), nil
}

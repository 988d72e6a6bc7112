package sheets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

// GoogleConfig configures a Google Sheets source.
type GoogleConfig struct {
	// CredentialsJSON is the service-account key bundle.
	CredentialsJSON []byte

	// SpreadsheetID is the key from the spreadsheet URL.
	SpreadsheetID string

	// SheetName is the worksheet title. Defaults to DefaultSheetName.
	SheetName string

	// Endpoint overrides the API base URL (tests).
	Endpoint string
}

// GoogleSource reads a worksheet through the Sheets v4 API with a read-only scope.
type GoogleSource struct {
	svc           *gsheets.Service
	spreadsheetID string
	sheetName     string
}

// NewGoogleSource creates a Sheets client authorized with the service account.
func NewGoogleSource(ctx context.Context, cfg GoogleConfig) (*GoogleSource, error) {
	if cfg.SpreadsheetID == "" {
		return nil, errors.New("spreadsheet ID is required")
	}
	opts := []option.ClientOption{option.WithScopes(gsheets.SpreadsheetsReadonlyScope)}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint), option.WithoutAuthentication())
	} else {
		if len(cfg.CredentialsJSON) == 0 {
			return nil, errors.New("service account credentials are required")
		}
		opts = append(opts, option.WithCredentialsJSON(cfg.CredentialsJSON))
	}

	svc, err := gsheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating sheets service: %w", err)
	}

	name := cfg.SheetName
	if name == "" {
		name = DefaultSheetName
	}
	return &GoogleSource{svc: svc, spreadsheetID: cfg.SpreadsheetID, sheetName: name}, nil
}

// Rows fetches every value on the worksheet.
func (g *GoogleSource) Rows(ctx context.Context) ([][]string, error) {
	resp, err := g.svc.Spreadsheets.Values.Get(g.spreadsheetID, quoteSheet(g.sheetName)).
		ValueRenderOption("FORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", g.sheetName, err)
	}

	rows := make([][]string, len(resp.Values))
	for i, vals := range resp.Values {
		r := make([]string, len(vals))
		for j, v := range vals {
			r[j] = stringify(v)
		}
		rows[i] = r
	}
	return pad(rows), nil
}

// quoteSheet renders a sheet title as an A1 range covering the whole sheet.
func quoteSheet(name string) string {
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}

// Package app assembles the schedule loader from configuration. Both the
// shiftbot service and the shiftctl CLI build their loader here.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"shiftbot/internal/config"
	"shiftbot/internal/roster"
	"shiftbot/internal/sheets"
	"shiftbot/internal/shifttype"
)

// NewLoader builds a roster loader for cfg. A local workbook is used when
// ROSTER_XLSX_PATH is set, otherwise the Google Sheets worksheet.
func NewLoader(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*roster.Loader, error) {
	if err := cfg.ValidateSource(); err != nil {
		return nil, err
	}
	source, err := newSource(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewLoaderFrom(cfg, source, logger)
}

// NewLoaderFrom builds a roster loader that reads from source instead of the
// configured spreadsheet. The shift types and time zone still come from cfg.
func NewLoaderFrom(cfg *config.Config, source roster.GridSource, logger *slog.Logger) (*roster.Loader, error) {
	if logger == nil {
		logger = slog.Default()
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	types, err := shifttype.Load(cfg.ShiftTypesPath)
	if err != nil {
		return nil, err
	}
	logger.Info("shift types loaded", "path", cfg.ShiftTypesPath, "codes", types.Len())

	return &roster.Loader{Source: source, Types: types, Location: loc}, nil
}

func newSource(ctx context.Context, cfg *config.Config) (roster.GridSource, error) {
	if cfg.RosterXLSXPath != "" {
		return sheets.XLSXSource{Path: cfg.RosterXLSXPath, SheetName: cfg.SheetName}, nil
	}
	creds, err := cfg.CredentialsJSON()
	if err != nil {
		return nil, err
	}
	src, err := sheets.NewGoogleSource(ctx, sheets.GoogleConfig{
		CredentialsJSON: creds,
		SpreadsheetID:   cfg.SheetID,
		SheetName:       cfg.SheetName,
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to Google Sheets: %w", err)
	}
	return src, nil
}

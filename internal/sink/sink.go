// Package sink persists simulation results as CSV, JSON lines or a sqlite table.
package sink

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"minion-profit/internal/model"
)

// Format is an output file format.
type Format string

const (
	FormatCSV    Format = "csv"
	FormatJSONL  Format = "jsonl"
	FormatSQLite Format = "sqlite"
)

// Options control what is persisted.
type Options struct {
	// OmitBulk drops the per-item maps of every result.
	OmitBulk bool
	// RunID tags sqlite rows.
	RunID string
}

func (o Options) apply(r model.Result) model.Result {
	if o.OmitBulk {
		return r.WithoutBulk()
	}
	return r
}

// ParseFormat accepts a format name; empty means "guess from the path".
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatCSV, FormatJSONL, FormatSQLite, "":
		return f, nil
	}
	return "", fmt.Errorf("unknown output format %q (want csv, jsonl or sqlite)", s)
}

// FormatFromPath guesses the format from the file extension, defaulting to JSON lines.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite
	}
	return FormatJSONL
}

// Write persists results to path in the given format.
func Write(ctx context.Context, path string, format Format, results []model.Result, opts Options) error {
	if format == "" {
		format = FormatFromPath(path)
	}
	switch format {
	case FormatCSV:
		return WriteCSV(path, results, opts)
	case FormatJSONL:
		return WriteJSONL(path, results, opts)
	case FormatSQLite:
		return WriteSQLite(ctx, path, results, opts)
	}
	return fmt.Errorf("unknown output format %q", format)
}

// Read loads results from a JSON lines file or a sqlite database. CSV is write-only.
func Read(ctx context.Context, path string, format Format) ([]model.Result, error) {
	if format == "" {
		format = FormatFromPath(path)
	}
	switch format {
	case FormatJSONL:
		return ReadJSONL(path)
	case FormatSQLite:
		return ReadSQLite(ctx, path)
	}
	return nil, fmt.Errorf("cannot read results from %s files", format)
}

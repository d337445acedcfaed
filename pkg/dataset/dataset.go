// Package dataset loads tables from files and databases and writes them
// back out.
package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/wdm0006/edachain/pkg/config"
	"github.com/wdm0006/edachain/pkg/eda"
)

// ErrUnknownFormat is returned when a path's format cannot be determined.
var ErrUnknownFormat = errors.New("unknown dataset format")

// Format resolves the dataset format of in: the explicit Format, sql when a
// DSN is given, otherwise the file extension (ignoring a trailing .gz).
func Format(in config.InputConfig) (string, error) {
	if in.Format != "" {
		return in.Format, nil
	}
	if in.DSN != "" {
		return "sql", nil
	}
	ext := strings.ToLower(filepath.Ext(strings.TrimSuffix(in.Path, ".gz")))
	switch ext {
	case ".csv", ".tsv", ".txt":
		return "csv", nil
	case ".jsonl", ".ndjson", ".json":
		return "jsonl", nil
	case ".parquet":
		return "parquet", nil
	case ".xlsx":
		return "xlsx", nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownFormat, in.Path)
}

// Load reads the table described by in.
func Load(ctx context.Context, in config.InputConfig) (*eda.Frame, error) {
	format, err := Format(in)
	if err != nil {
		return nil, err
	}
	switch format {
	case "csv":
		return ReadCSV(in.Path, CSVOptions{HasHeader: true})
	case "jsonl":
		return ReadJSONL(in.Path)
	case "parquet":
		return ReadParquet(in.Path)
	case "xlsx":
		return ReadXLSX(in.Path, in.Sheet)
	case "sql":
		return ReadSQL(ctx, in.Driver, in.DSN, in.Query)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
}

// Write saves f in the format implied by the path extension.
func Write(path string, f *eda.Frame) error {
	switch strings.ToLower(filepath.Ext(strings.TrimSuffix(path, ".gz"))) {
	case ".csv":
		return WriteCSV(path, f)
	case ".jsonl", ".ndjson":
		return WriteJSONL(path, f)
	case ".parquet":
		return WriteParquet(path, f)
	}
	return fmt.Errorf("%w: %s", ErrUnknownFormat, path)
}

// WriteHead renders the first n rows as a text table with a leading row
// index. Missing cells read NaN.
func WriteHead(w io.Writer, f *eda.Frame, n int) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(append([]string{""}, f.ColumnNames()...))
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	for i, row := range f.Head(n) {
		table.Append(append([]string{fmt.Sprint(i)}, row...))
	}
	table.Render()
}

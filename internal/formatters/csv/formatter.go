// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package csv

import (
	"io"
	"strings"

	"charter-scan/internal/detector"
	"charter-scan/internal/formatters"
)

// Formatter implements CSV output formatting. Every field is quoted so that
// spreadsheet imports never reinterpret keyword or snippet text.
type Formatter struct{}

// NewFormatter creates a new CSV formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "csv"
}

func (f *Formatter) Description() string {
	return "Comma-separated values with every field quoted, for spreadsheet import"
}

func (f *Formatter) FileExtension() string {
	return ".csv"
}

func (f *Formatter) FormatHits(w io.Writer, hits []detector.Hit, options formatters.FormatterOptions) error {
	if err := f.writeRow(w, detector.HitColumns, options); err != nil {
		return err
	}
	for _, hit := range hits {
		if err := f.writeRow(w, hit.Record(), options); err != nil {
			return err
		}
	}
	return nil
}

func (f *Formatter) FormatSummaries(w io.Writer, summaries []detector.DocumentSummary, options formatters.FormatterOptions) error {
	if err := f.writeRow(w, detector.SummaryColumns, options); err != nil {
		return err
	}
	for _, summary := range summaries {
		if err := f.writeRow(w, summary.Record(), options); err != nil {
			return err
		}
	}
	return nil
}

func (f *Formatter) writeRow(w io.Writer, fields []string, options formatters.FormatterOptions) error {
	row := make([]string, len(fields))
	for i, field := range fields {
		row[i] = f.escapeCSVField(field, options)
	}
	_, err := io.WriteString(w, strings.Join(row, ",")+"\n")
	return err
}

// escapeCSVField quotes a field and doubles its internal quotes
func (f *Formatter) escapeCSVField(field string, options formatters.FormatterOptions) string {
	if options.SanitizeFormulas {
		field = f.sanitizeFormulaInjection(field)
	}
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

// sanitizeFormulaInjection prevents CSV injection attacks by sanitizing formula characters
func (f *Formatter) sanitizeFormulaInjection(field string) string {
	if len(field) == 0 {
		return field
	}

	firstChar := field[0]
	if firstChar == '=' || firstChar == '+' || firstChar == '-' || firstChar == '@' {
		// Prefix with single quote to prevent formula execution
		return "'" + field
	}

	return field
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}

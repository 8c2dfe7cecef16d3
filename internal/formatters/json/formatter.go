// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package json

import (
	"encoding/json"
	"io"

	"charter-scan/internal/detector"
	"charter-scan/internal/formatters"
)

// Formatter implements JSON output formatting
type Formatter struct{}

// NewFormatter creates a new JSON formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "json"
}

func (f *Formatter) Description() string {
	return "Structured JSON arrays for programmatic consumption"
}

func (f *Formatter) FileExtension() string {
	return ".json"
}

func (f *Formatter) FormatHits(w io.Writer, hits []detector.Hit, _ formatters.FormatterOptions) error {
	if hits == nil {
		hits = []detector.Hit{}
	}
	return f.encode(w, hits)
}

func (f *Formatter) FormatSummaries(w io.Writer, summaries []detector.DocumentSummary, _ formatters.FormatterOptions) error {
	rows := make([]detector.DocumentSummary, len(summaries))
	for i, s := range summaries {
		// lists render as [] rather than null
		if s.ExpertiseTags == nil {
			s.ExpertiseTags = []string{}
		}
		if s.Authorities == nil {
			s.Authorities = []string{}
		}
		rows[i] = s
	}
	return f.encode(w, rows)
}

func (f *Formatter) encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}

// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package yaml

import (
	"fmt"
	"io"

	"charter-scan/internal/detector"
	"charter-scan/internal/formatters"

	"gopkg.in/yaml.v3"
)

// Formatter implements YAML output formatting, with the same structure as the
// JSON formatter
type Formatter struct{}

// NewFormatter creates a new YAML formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "yaml"
}

func (f *Formatter) Description() string {
	return "YAML sequences, structurally identical to the JSON output"
}

func (f *Formatter) FileExtension() string {
	return ".yaml"
}

func (f *Formatter) FormatHits(w io.Writer, hits []detector.Hit, _ formatters.FormatterOptions) error {
	if len(hits) == 0 {
		_, err := io.WriteString(w, "[]\n")
		return err
	}
	return f.encode(w, hits)
}

func (f *Formatter) FormatSummaries(w io.Writer, summaries []detector.DocumentSummary, _ formatters.FormatterOptions) error {
	if len(summaries) == 0 {
		_, err := io.WriteString(w, "[]\n")
		return err
	}
	return f.encode(w, summaries)
}

func (f *Formatter) encode(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("error formatting YAML: %w", err)
	}
	return enc.Close()
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}

// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package markdown

import (
	"fmt"
	"io"
	"strings"

	"charter-scan/internal/detector"
	"charter-scan/internal/formatters"
	"charter-scan/internal/orientation"

	"github.com/nao1215/markdown"
)

// Formatter implements Markdown report output
type Formatter struct{}

// NewFormatter creates a new Markdown formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "markdown"
}

func (f *Formatter) Description() string {
	return "GitHub-flavored Markdown tables for reports and sharing"
}

func (f *Formatter) FileExtension() string {
	return ".md"
}

func (f *Formatter) FormatHits(w io.Writer, hits []detector.Hit, _ formatters.FormatterOptions) error {
	md := markdown.NewMarkdown(w)
	md.H1("Keyword Hits")
	md.PlainText("")

	if len(hits) == 0 {
		md.PlainText("No keyword hits found.")
		return md.Build()
	}

	rows := make([][]string, len(hits))
	for i, hit := range hits {
		rows[i] = escapeRow(hit.Record())
	}
	md.Table(markdown.TableSet{
		Header: detector.HitColumns,
		Rows:   rows,
	})
	return md.Build()
}

func (f *Formatter) FormatSummaries(w io.Writer, summaries []detector.DocumentSummary, _ formatters.FormatterOptions) error {
	md := markdown.NewMarkdown(w)
	md.H1("Charter Summary")
	md.PlainText("")

	if len(summaries) == 0 {
		md.PlainText("No documents scanned.")
		return md.Build()
	}

	md.H2("Orientation")
	md.PlainText("")
	md.BulletList(orientationCounts(summaries)...)
	md.PlainText("")

	md.H2("Documents")
	md.PlainText("")
	rows := make([][]string, len(summaries))
	for i, s := range summaries {
		rows[i] = escapeRow(s.Record())
	}
	md.Table(markdown.TableSet{
		Header: detector.SummaryColumns,
		Rows:   rows,
	})
	return md.Build()
}

// orientationCounts lists every label with its document count, in label order
func orientationCounts(summaries []detector.DocumentSummary) []string {
	counts := make(map[string]int)
	for _, s := range summaries {
		counts[s.Orientation]++
	}
	items := make([]string, 0, len(orientation.All()))
	for _, label := range orientation.All() {
		items = append(items, fmt.Sprintf("%s: %d", label, counts[label.String()]))
	}
	return items
}

// escapeRow makes cell text safe inside a pipe table
func escapeRow(cells []string) []string {
	out := make([]string, len(cells))
	for i, cell := range cells {
		out[i] = strings.ReplaceAll(cell, "|", `\|`)
	}
	return out
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}

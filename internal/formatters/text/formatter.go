// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package text

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"charter-scan/internal/detector"
	"charter-scan/internal/formatters"
	"charter-scan/internal/orientation"
	"charter-scan/internal/taxonomy"

	"github.com/fatih/color"
)

const (
	snippetWidth  = 60
	keywordWidth  = 24
	categoryWidth = 36
)

// Formatter implements text-based output formatting
type Formatter struct {
	colors map[string]*color.Color
}

// NewFormatter creates a new text formatter
func NewFormatter() *Formatter {
	return &Formatter{
		colors: map[string]*color.Color{
			"green":   color.New(color.FgGreen),
			"yellow":  color.New(color.FgYellow),
			"red":     color.New(color.FgRed),
			"cyan":    color.New(color.FgCyan),
			"magenta": color.New(color.FgMagenta),
			"blue":    color.New(color.FgBlue),
			"white":   color.New(color.FgWhite, color.Bold),
		},
	}
}

func (f *Formatter) Name() string {
	return "text"
}

func (f *Formatter) Description() string {
	return "Human-readable text output with colors and tables"
}

func (f *Formatter) FileExtension() string {
	return ".txt"
}

func (f *Formatter) FormatHits(w io.Writer, hits []detector.Hit, options formatters.FormatterOptions) error {
	if len(hits) == 0 {
		_, err := io.WriteString(w, "No keyword hits found.\n")
		return err
	}

	var builder strings.Builder
	header := fmt.Sprintf("%-*s %-*s %-6s %-*s %s\n",
		categoryWidth, "CATEGORY", keywordWidth, "KEYWORD", "PAGE", snippetWidth, "SNIPPET", "FILE")
	builder.WriteString(f.paint("white", options, "%s", header))
	builder.WriteString(f.paint("white", options, "%s\n", strings.Repeat("-", len(header)-1)))

	for _, hit := range hits {
		category := f.paint(f.categoryColor(hit.Category), options, "%-*s", categoryWidth, truncate(hit.Category, categoryWidth))
		keyword := f.paint("cyan", options, "%-*s", keywordWidth, truncate(hit.Keyword, keywordWidth))
		page := f.paint("magenta", options, "%-6d", hit.Page)
		snippet := pad(truncate(hit.Snippet, snippetWidth), snippetWidth)
		fmt.Fprintf(&builder, "%s %s %s %s %s\n", category, keyword, page, snippet, hit.File)
	}

	_, err := io.WriteString(w, builder.String())
	return err
}

func (f *Formatter) FormatSummaries(w io.Writer, summaries []detector.DocumentSummary, options formatters.FormatterOptions) error {
	if len(summaries) == 0 {
		_, err := io.WriteString(w, "No documents scanned.\n")
		return err
	}

	var builder strings.Builder
	for i, s := range summaries {
		if i > 0 {
			builder.WriteString("\n")
		}
		builder.WriteString(f.paint("white", options, "=== %s ===\n", s.File))

		members := "unknown"
		if s.MembersCount != nil {
			members = strconv.Itoa(*s.MembersCount)
		}

		f.field(&builder, options, "Pages", strconv.Itoa(s.NumPages))
		f.field(&builder, options, "Words", strconv.Itoa(s.WordCount))
		f.field(&builder, options, "Listed functions", strconv.Itoa(s.ListedFunctions))
		f.field(&builder, options, "Members", members)
		f.field(&builder, options, "Expertise", orNone(strings.Join(s.ExpertiseTags, ", ")))
		f.field(&builder, options, "Executive participation", detector.FormatBool(s.CEOParticipation))
		f.field(&builder, options, "Meeting frequency", orNone(s.MeetingFrequency))
		f.field(&builder, options, "Reports to", orNone(s.ReportingLine))
		f.field(&builder, options, "Last review", orNone(s.LastReviewDate))
		f.field(&builder, options, "Authorities", orNone(strings.Join(s.Authorities, ", ")))
		f.field(&builder, options, "Self evaluation", detector.FormatBool(s.SelfEvaluation))
		f.field(&builder, options, "Control / Collaboration", fmt.Sprintf("%d / %d", s.ControlCount, s.CollabCount))

		builder.WriteString(f.paint("cyan", options, "%-25s", "Orientation:"))
		builder.WriteString(f.paint(f.orientationColor(s.Orientation), options, "%s\n", s.Orientation))

		f.field(&builder, options, "Top functions", orNone(s.TopFunctions))
	}

	_, err := io.WriteString(w, builder.String())
	return err
}

func (f *Formatter) field(builder *strings.Builder, options formatters.FormatterOptions, label, value string) {
	builder.WriteString(f.paint("cyan", options, "%-25s", label+":"))
	builder.WriteString(value)
	builder.WriteString("\n")
}

// paint formats with the named color unless colors are disabled
func (f *Formatter) paint(name string, options formatters.FormatterOptions, format string, args ...any) string {
	if options.NoColor {
		return fmt.Sprintf(format, args...)
	}
	return f.colors[name].Sprintf(format, args...)
}

func (f *Formatter) categoryColor(category string) string {
	switch category {
	case taxonomy.CategoryControl:
		return "red"
	case taxonomy.CategoryCollaboration:
		return "green"
	default:
		return "blue"
	}
}

func (f *Formatter) orientationColor(label string) string {
	switch label {
	case orientation.Control.String():
		return "red"
	case orientation.Collaboration.String():
		return "green"
	case orientation.MixedEqual.String():
		return "yellow"
	default:
		return "magenta"
	}
}

// truncate shortens s to width runes, marking the cut with "..."
func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}

// pad right-pads s with spaces to width runes
func pad(s string, width int) string {
	if n := len([]rune(s)); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

func orNone(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}

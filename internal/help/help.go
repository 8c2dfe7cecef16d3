// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package help

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"charter-scan/internal/formatters"
	"charter-scan/internal/heuristics"
	"charter-scan/internal/orientation"
	"charter-scan/internal/taxonomy"

	"github.com/fatih/color"
)

// System renders the listing commands
type System struct {
	out     io.Writer
	noColor bool
	colors  map[string]*color.Color
}

// NewSystem creates a new help system writing to out
func NewSystem(out io.Writer, noColor bool) *System {
	return &System{
		out:     out,
		noColor: noColor,
		colors: map[string]*color.Color{
			"title":    color.New(color.FgWhite, color.Bold),
			"header":   color.New(color.FgBlue, color.Bold),
			"item":     color.New(color.FgCyan),
			"positive": color.New(color.FgGreen),
			"negative": color.New(color.FgRed),
			"warning":  color.New(color.FgYellow),
		},
	}
}

func (h *System) paint(name, format string, args ...any) string {
	if h.noColor {
		return fmt.Sprintf(format, args...)
	}
	return h.colors[name].Sprintf(format, args...)
}

func (h *System) println(name, text string) {
	fmt.Fprintln(h.out, h.paint(name, "%s", text))
}

// ShowTaxonomy lists the keyword taxonomy in precedence order, the auxiliary
// vocabularies and any function-category terms shadowed by an orientation axis
func (h *System) ShowTaxonomy(tax *taxonomy.Taxonomy) {
	h.println("title", "Charter Keyword Taxonomy")
	fmt.Fprintln(h.out, strings.Repeat("=", 24))
	fmt.Fprintln(h.out)

	h.termSection(taxonomy.CategoryControl, "negative", tax.Control())
	h.termSection(taxonomy.CategoryCollaboration, "positive", tax.Collaboration())
	for _, cat := range tax.FunctionCategories() {
		h.termSection(cat.Name, "item", cat.Terms)
	}

	h.println("header", "MEETING FREQUENCY TERMS (first match wins):")
	fmt.Fprintf(h.out, "  %s\n\n", strings.Join(tax.MeetingFrequencyTerms(), ", "))
	h.println("header", "EXECUTIVE TITLES:")
	fmt.Fprintf(h.out, "  %s\n\n", strings.Join(tax.ExecutiveTitles(), ", "))

	shadowed := tax.ShadowedTerms()
	if len(shadowed) == 0 {
		return
	}

	h.println("warning", "SHADOWED TERMS:")
	fmt.Fprintln(h.out, "  These terms are listed in a function category but always count toward")
	fmt.Fprintln(h.out, "  the orientation axis that also lists them.")
	w := tabwriter.NewWriter(h.out, 0, 0, 2, ' ', 0)
	for _, s := range shadowed {
		fmt.Fprintf(w, "  %s\t%s\t-> %s\n", s.Term, s.Category, s.ShadowedBy)
	}
	_ = w.Flush()
	fmt.Fprintln(h.out)
}

func (h *System) termSection(name, colorName string, terms []string) {
	fmt.Fprintf(h.out, "%s %s\n", h.paint(colorName, "%s", name), h.paint("header", "(%d terms)", len(terms)))
	fmt.Fprintf(h.out, "  %s\n\n", strings.Join(terms, ", "))
}

// ShowProbes lists the registered heuristic probes in execution order
func (h *System) ShowProbes(registry *heuristics.Registry) {
	h.println("title", "Heuristic Probes")
	fmt.Fprintln(h.out, strings.Repeat("=", 16))
	fmt.Fprintln(h.out)

	w := tabwriter.NewWriter(h.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  NAME\tCAPABILITY\tDESCRIPTION")
	for _, p := range registry.List() {
		fmt.Fprintf(w, "  %s\t%s\t%s\n", p.Name(), p.Capability(), p.Description())
	}
	_ = w.Flush()
}

// ShowFormats lists the registered output formats
func (h *System) ShowFormats(registry *formatters.Registry) {
	h.println("header", "OUTPUT FORMATS:")
	w := tabwriter.NewWriter(h.out, 0, 0, 2, ' ', 0)
	for _, name := range registry.List() {
		f, _ := registry.Get(name)
		fmt.Fprintf(w, "  %s\t%s\t%s\n", name, f.FileExtension(), f.Description())
	}
	_ = w.Flush()
}

// ShowOrientationLabels lists the labels a summary row can carry
func (h *System) ShowOrientationLabels() {
	h.println("header", "ORIENTATION LABELS:")
	for _, label := range orientation.All() {
		fmt.Fprintf(h.out, "  %s\n", label)
	}
}

// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"fmt"
	"sort"
	"strings"

	"charter-scan/internal/detector"
	"charter-scan/internal/heuristics"
	"charter-scan/internal/observability"
	"charter-scan/internal/orientation"
	"charter-scan/internal/scanner"
	"charter-scan/internal/taxonomy"
)

// Degradation causes, distinguished in logs only
const (
	CauseOpenFailed = "open_failed"
	CauseEmptyText  = "empty_text"
)

// Result is everything produced for one document
type Result struct {
	Hits    []detector.Hit
	Summary detector.DocumentSummary
	Counts  scanner.Counts
	// Cause is empty for fully scanned documents
	Cause string
	Err   error
	// Interrupted marks a document whose extraction was cancelled; it has
	// no rows and is never written
	Interrupted bool
}

// Degraded reports whether the document produced no usable text
func (r Result) Degraded() bool {
	return r.Cause != ""
}

// Aggregator turns one extracted document into hit rows and a summary row
type Aggregator struct {
	taxonomy   *taxonomy.Taxonomy
	scanner    *scanner.Scanner
	heuristics *heuristics.Extractor
}

// NewAggregator wires a scanner and the default probes for tax. A nil
// extractor uses the default snippet width.
func NewAggregator(tax *taxonomy.Taxonomy, extractor *detector.ContextExtractor) *Aggregator {
	return &Aggregator{
		taxonomy:   tax,
		scanner:    scanner.NewScanner(tax, extractor),
		heuristics: heuristics.NewExtractor(heuristics.NewDefaultRegistry(tax)),
	}
}

var _ observability.Observable = (*Aggregator)(nil)

// GetComponentName returns the component identifier
func (a *Aggregator) GetComponentName() string {
	return "aggregator"
}

// Analyze builds the result for file. A non-nil extractErr, or a document
// whose pages are all blank, yields a degraded summary and no hits.
func (a *Aggregator) Analyze(file string, doc *detector.ExtractedDocument, extractErr error) Result {
	if extractErr != nil || doc == nil {
		pages := 0
		if doc != nil {
			pages = doc.PageCount
		}
		err := extractErr
		if err == nil {
			err = fmt.Errorf("no document returned")
		}
		return Result{Summary: degradedSummary(file, pages), Counts: scanner.NewCounts(), Cause: CauseOpenFailed, Err: err}
	}

	if !doc.HasText() {
		return Result{Summary: degradedSummary(file, doc.PageCount), Counts: scanner.NewCounts(), Cause: CauseEmptyText}
	}

	var hits []detector.Hit
	counts := scanner.NewCounts()
	for _, page := range doc.Pages {
		if page.Text == "" {
			continue
		}
		pageHits, pageCounts := a.scanner.ScanPage(file, page)
		hits = append(hits, pageHits...)
		counts.Add(pageCounts)
	}

	fullText := doc.FullText()
	md := a.heuristics.Extract(fullText)

	return Result{
		Hits:   hits,
		Counts: counts,
		Summary: detector.DocumentSummary{
			File:             file,
			NumPages:         doc.PageCount,
			WordCount:        WordCount(fullText),
			ListedFunctions:  md.ListItems,
			MembersCount:     md.MembersCount,
			ExpertiseTags:    md.ExpertiseTags,
			CEOParticipation: md.CEOParticipation,
			MeetingFrequency: md.MeetingFrequency,
			ReportingLine:    md.ReportingLine,
			LastReviewDate:   md.LastReviewDate,
			Authorities:      md.Authorities,
			SelfEvaluation:   md.SelfEvaluation,
			ControlCount:     counts.Control,
			CollabCount:      counts.Collaboration,
			Orientation:      orientation.Classify(counts.Control, counts.Collaboration).String(),
			TopFunctions:     a.TopFunctions(counts.Functions),
		},
	}
}

func degradedSummary(file string, pages int) detector.DocumentSummary {
	return detector.DocumentSummary{
		File:        file,
		NumPages:    pages,
		Orientation: orientation.NoTextExtracted.String(),
	}
}

// WordCount counts whitespace-delimited tokens of the collapsed, lowercased text
func WordCount(text string) int {
	return len(strings.Fields(strings.ToLower(text)))
}

// TopFunctions ranks function categories with nonzero counts as
// "Category (n); ..." by descending count, ties in declaration order with
// the generic fallback last.
func (a *Aggregator) TopFunctions(functions map[string]int) string {
	type entry struct {
		name  string
		count int
	}

	entries := make([]entry, 0, len(functions))
	for name, count := range functions {
		if count > 0 {
			entries = append(entries, entry{name, count})
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		pi, pj := a.taxonomy.CategoryPosition(entries[i].name), a.taxonomy.CategoryPosition(entries[j].name)
		if pi != pj {
			return pi < pj
		}
		return entries[i].name < entries[j].name
	})

	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = fmt.Sprintf("%s (%d)", e.name, e.count)
	}
	return strings.Join(parts, "; ")
}

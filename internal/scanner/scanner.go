// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package scanner finds taxonomy term occurrences in page text and resolves
// each occurrence to its category.
package scanner

import (
	"sort"

	"charter-scan/internal/detector"
	"charter-scan/internal/taxonomy"
)

// Occurrence is one located term match within a page
type Occurrence struct {
	Term      string
	TermIndex int
	Start     int
	End       int
	Category  string
	Kind      taxonomy.Kind
}

// Counts tallies occurrences per orientation axis and function category
type Counts struct {
	Control       int
	Collaboration int
	Functions     map[string]int
}

// NewCounts returns an empty tally
func NewCounts() Counts {
	return Counts{Functions: make(map[string]int)}
}

func (c *Counts) record(category string, kind taxonomy.Kind) {
	switch kind {
	case taxonomy.KindControl:
		c.Control++
	case taxonomy.KindCollaboration:
		c.Collaboration++
	default:
		if c.Functions == nil {
			c.Functions = make(map[string]int)
		}
		c.Functions[category]++
	}
}

// Add accumulates other into c
func (c *Counts) Add(other Counts) {
	c.Control += other.Control
	c.Collaboration += other.Collaboration
	for cat, n := range other.Functions {
		if c.Functions == nil {
			c.Functions = make(map[string]int)
		}
		c.Functions[cat] += n
	}
}

// Total is the number of occurrences counted
func (c Counts) Total() int {
	total := c.Control + c.Collaboration
	for _, n := range c.Functions {
		total += n
	}
	return total
}

type resolvedTerm struct {
	category string
	kind     taxonomy.Kind
}

// Scanner matches the whole search universe of a taxonomy in one pass per page
type Scanner struct {
	terms     []string
	resolved  []resolvedTerm
	automaton *automaton
	extractor *detector.ContextExtractor
}

// NewScanner builds a scanner for tax. A nil extractor uses the default
// context width.
func NewScanner(tax *taxonomy.Taxonomy, extractor *detector.ContextExtractor) *Scanner {
	if extractor == nil {
		extractor = detector.NewContextExtractor()
	}

	terms := tax.SearchUniverse()
	resolved := make([]resolvedTerm, len(terms))
	for i, term := range terms {
		cat, kind := tax.Resolve(term)
		resolved[i] = resolvedTerm{category: cat, kind: kind}
	}

	return &Scanner{
		terms:     terms,
		resolved:  resolved,
		automaton: newAutomaton(terms),
		extractor: extractor,
	}
}

// Scan returns the occurrences in text ordered by term declaration index and
// then position. A term's successive occurrences never overlap each other;
// occurrences of different terms may.
func (s *Scanner) Scan(text string) ([]Occurrence, Counts) {
	counts := NewCounts()
	if text == "" {
		return nil, counts
	}

	raw := s.automaton.findAll(foldASCII(text))
	if len(raw) == 0 {
		return nil, counts
	}

	// findAll reports matches by end position; regroup by term, then position
	sort.SliceStable(raw, func(i, j int) bool {
		if raw[i].pattern != raw[j].pattern {
			return raw[i].pattern < raw[j].pattern
		}
		return raw[i].start < raw[j].start
	})

	occurrences := make([]Occurrence, 0, len(raw))
	lastPattern, lastEnd := -1, 0
	for _, m := range raw {
		if m.pattern != lastPattern {
			lastPattern, lastEnd = m.pattern, 0
		}
		if m.start < lastEnd {
			continue
		}
		term := s.terms[m.pattern]
		end := m.start + len(term)
		lastEnd = end

		r := s.resolved[m.pattern]
		counts.record(r.category, r.kind)
		occurrences = append(occurrences, Occurrence{
			Term:      term,
			TermIndex: m.pattern,
			Start:     m.start,
			End:       end,
			Category:  r.category,
			Kind:      r.kind,
		})
	}

	return occurrences, counts
}

// ScanPage scans one page and renders its occurrences as hit rows for file
func (s *Scanner) ScanPage(file string, page detector.PageText) ([]detector.Hit, Counts) {
	occurrences, counts := s.Scan(page.Text)
	if len(occurrences) == 0 {
		return nil, counts
	}

	hits := make([]detector.Hit, len(occurrences))
	for i, o := range occurrences {
		hits[i] = detector.Hit{
			File:     file,
			Page:     page.Number,
			Category: o.Category,
			Keyword:  o.Term,
			Snippet:  s.extractor.Snippet(page.Text, o.Start, o.End),
		}
	}
	return hits, counts
}

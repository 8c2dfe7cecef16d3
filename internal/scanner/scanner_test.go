// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package scanner

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"charter-scan/internal/detector"
	"charter-scan/internal/taxonomy"
)

const samplePage = `AUDIT COMMITTEE CHARTER
The Committee provides oversight of risk management and compliance.
It will advise and support management on R&D strategy, innovation and
partnership opportunities with universities. Risk Oversight is shared.
Reports to the Board of Directors.`

// naiveScan is the per-term rescanning loop the automaton replaces
func naiveScan(tax *taxonomy.Taxonomy, text string) []Occurrence {
	folded := foldASCII(text)
	var out []Occurrence
	for i, term := range tax.SearchUniverse() {
		cat, kind := tax.Resolve(term)
		from := 0
		for {
			idx := bytes.Index(folded[from:], []byte(term))
			if idx < 0 {
				break
			}
			start := from + idx
			out = append(out, Occurrence{Term: term, TermIndex: i, Start: start, End: start + len(term), Category: cat, Kind: kind})
			from = start + len(term)
		}
	}
	return out
}

func TestScan_MatchesNaiveLoop(t *testing.T) {
	tax := taxonomy.Default()
	s := NewScanner(tax, nil)

	texts := []string{
		samplePage,
		"risk risk risk management risk oversight",
		"monitoringmonitoring",
		"",
		"no taxonomy words in here at all",
		strings.Repeat("Joint Venture and joint research; ", 20),
	}

	for _, text := range texts {
		got, _ := s.Scan(text)
		want := naiveScan(tax, text)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Scan(%q) mismatch (-want +got):\n%s", text, diff)
		}
	}
}

func TestScan_SelfOverlapSkipped(t *testing.T) {
	tax, err := taxonomy.New(taxonomy.Spec{Control: []string{"aa"}})
	require.NoError(t, err)
	s := NewScanner(tax, nil)

	got, counts := s.Scan("aaaaa")
	require.Len(t, got, 2)
	assert.Equal(t, 0, got[0].Start)
	assert.Equal(t, 2, got[1].Start)
	assert.Equal(t, 2, counts.Control)
}

func TestScan_DifferentTermsMayOverlap(t *testing.T) {
	tax := taxonomy.Default()
	s := NewScanner(tax, nil)

	got, counts := s.Scan("Risk Management")
	terms := make([]string, len(got))
	for i, o := range got {
		terms[i] = o.Term
	}
	assert.Equal(t, []string{"risk", "risk management"}, terms)
	assert.Equal(t, 2, counts.Control)
	assert.Empty(t, counts.Functions)
}

func TestScan_ControlPrecedence(t *testing.T) {
	tax := taxonomy.Default()
	s := NewScanner(tax, nil)

	got, counts := s.Scan("enterprise risk management program")
	var rm []Occurrence
	for _, o := range got {
		if o.Term == "risk management" {
			rm = append(rm, o)
		}
	}
	require.Len(t, rm, 1)
	assert.Equal(t, taxonomy.CategoryControl, rm[0].Category)
	assert.Equal(t, 0, counts.Functions[taxonomy.CategoryLegalRisk])
	assert.Equal(t, 1, counts.Functions[taxonomy.CategoryProduct])
}

func TestScan_CountsConsistentWithOccurrences(t *testing.T) {
	s := NewScanner(taxonomy.Default(), nil)
	got, counts := s.Scan(samplePage)

	tally := NewCounts()
	for _, o := range got {
		tally.record(o.Category, o.Kind)
	}
	assert.Equal(t, tally, counts)
	assert.Equal(t, len(got), counts.Total())
}

func TestScanPage_Snippets(t *testing.T) {
	ce := detector.NewContextExtractor().WithContextChars(10)
	s := NewScanner(taxonomy.Default(), ce)

	hits, counts := s.ScanPage("charter.pdf", detector.PageText{Number: 3, Text: samplePage})
	require.NotEmpty(t, hits)
	assert.Equal(t, len(hits), counts.Total())

	for _, h := range hits {
		assert.Equal(t, "charter.pdf", h.File)
		assert.Equal(t, 3, h.Page)
		assert.NotContains(t, h.Snippet, "\n")
		assert.LessOrEqual(t, utf8.RuneCountInString(h.Snippet), 2*ce.ContextChars+len(h.Keyword))
		assert.Contains(t, strings.ToLower(h.Snippet), h.Keyword)
	}
}

func TestScanPage_EmptyPage(t *testing.T) {
	s := NewScanner(taxonomy.Default(), nil)

	hits, counts := s.ScanPage("x.pdf", detector.PageText{Number: 1})
	assert.Empty(t, hits)
	assert.Equal(t, 0, counts.Total())

	hits, counts = s.ScanPage("x.pdf", detector.PageText{Number: 2, Text: " \n\t "})
	assert.Empty(t, hits)
	assert.Equal(t, 0, counts.Total())
}

func TestScan_Idempotent(t *testing.T) {
	s := NewScanner(taxonomy.Default(), nil)
	first, firstCounts := s.ScanPage("a.pdf", detector.PageText{Number: 1, Text: samplePage})
	second, secondCounts := s.ScanPage("a.pdf", detector.PageText{Number: 1, Text: samplePage})

	assert.Empty(t, cmp.Diff(first, second))
	assert.Equal(t, firstCounts, secondCounts)
}

func TestAutomaton_SharedSuffixes(t *testing.T) {
	a := newAutomaton([]string{"he", "she", "his", "hers"})
	got := a.findAll([]byte("ushers"))

	want := []rawMatch{
		{pattern: 1, start: 1},
		{pattern: 0, start: 2},
		{pattern: 3, start: 2},
	}
	assert.ElementsMatch(t, want, got)
}

func TestCounts_Add(t *testing.T) {
	a := Counts{Control: 1, Functions: map[string]int{"X": 2}}
	a.Add(Counts{Control: 2, Collaboration: 3, Functions: map[string]int{"X": 1, "Y": 4}})

	assert.Equal(t, 3, a.Control)
	assert.Equal(t, 3, a.Collaboration)
	assert.Equal(t, map[string]int{"X": 3, "Y": 4}, a.Functions)
	assert.Equal(t, 13, a.Total())
}

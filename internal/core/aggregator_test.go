// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"charter-scan/internal/detector"
	"charter-scan/internal/orientation"
	"charter-scan/internal/taxonomy"
)

const charterPage1 = `SCIENTIFIC AND TECHNOLOGY COMMITTEE CHARTER
The committee consists of 7 members and meets quarterly. Contact the CEO for details.
Reports to the Board of Directors.
Responsibilities:
1. Provide oversight of risk management and compliance programs.
2. Advise management on R&D strategy and innovation.
• Review the pipeline of product development projects.`

const charterPage2 = `The Committee may retain independent consultants and approve the annual budget.
It will conduct an annual self-evaluation. Adopted March 3, 2021.`

func document(pages ...string) *detector.ExtractedDocument {
	doc := &detector.ExtractedDocument{Path: "/corpus/charter.pdf", Filename: "charter.pdf", Format: "pdf", PageCount: len(pages)}
	for i, p := range pages {
		doc.Pages = append(doc.Pages, detector.PageText{Number: i + 1, Text: p})
	}
	return doc
}

func TestAnalyze_SampleSentence(t *testing.T) {
	agg := NewAggregator(taxonomy.Default(), nil)
	text := "The committee consists of 7 members and meets quarterly. Contact the CEO for details. Reports to the Board of Directors."

	r := agg.Analyze("sample.pdf", document(text), nil)
	require.NotNil(t, r.Summary.MembersCount)
	assert.Equal(t, 7, *r.Summary.MembersCount)
	assert.Equal(t, "quarterly", r.Summary.MeetingFrequency)
	assert.True(t, r.Summary.CEOParticipation)
	assert.Equal(t, "Board of Directors", r.Summary.ReportingLine)
}

func TestAnalyze_CountsMatchHits(t *testing.T) {
	tax := taxonomy.Default()
	agg := NewAggregator(tax, nil)

	r := agg.Analyze("charter.pdf", document(charterPage1, "", charterPage2), nil)
	require.False(t, r.Degraded())

	byCategory := map[string]int{}
	for _, h := range r.Hits {
		byCategory[h.Category]++
		assert.Equal(t, "charter.pdf", h.File)
		assert.Contains(t, []int{1, 3}, h.Page)
	}

	assert.Equal(t, byCategory[taxonomy.CategoryControl], r.Summary.ControlCount)
	assert.Equal(t, byCategory[taxonomy.CategoryCollaboration], r.Summary.CollabCount)

	var functionCats []string
	for cat, n := range byCategory {
		if cat == taxonomy.CategoryControl || cat == taxonomy.CategoryCollaboration {
			continue
		}
		assert.Equal(t, n, r.Counts.Functions[cat], cat)
		assert.Contains(t, r.Summary.TopFunctions, fmt.Sprintf("%s (%d)", cat, n))
		functionCats = append(functionCats, cat)
	}
	assert.Len(t, strings.Split(r.Summary.TopFunctions, "; "), len(functionCats))
}

func TestAnalyze_SummaryFields(t *testing.T) {
	agg := NewAggregator(taxonomy.Default(), nil)
	r := agg.Analyze("charter.pdf", document(charterPage1, "", charterPage2), nil)
	s := r.Summary

	assert.Equal(t, 3, s.NumPages)
	assert.Equal(t, WordCount(charterPage1+"\n\n"+charterPage2+"\n"), s.WordCount)
	assert.Equal(t, 3, s.ListedFunctions)
	assert.Equal(t, []string{"scientific", "technological"}, s.ExpertiseTags)
	assert.Equal(t, []string{"authority_to_hire_external_experts", "authority_to_approve_budgets"}, s.Authorities)
	assert.True(t, s.SelfEvaluation)
	assert.Equal(t, "March 3, 2021", s.LastReviewDate)
	assert.Equal(t, orientation.Classify(s.ControlCount, s.CollabCount).String(), s.Orientation)
}

func TestAnalyze_RiskManagementCountedOnceAsControl(t *testing.T) {
	agg := NewAggregator(taxonomy.Default(), nil)
	r := agg.Analyze("x.pdf", document("Effective risk management."), nil)

	var rm []detector.Hit
	for _, h := range r.Hits {
		if h.Keyword == "risk management" {
			rm = append(rm, h)
		}
	}
	require.Len(t, rm, 1)
	assert.Equal(t, taxonomy.CategoryControl, rm[0].Category)
	assert.NotContains(t, r.Summary.TopFunctions, taxonomy.CategoryLegalRisk)
}

func TestAnalyze_SnippetBounds(t *testing.T) {
	ce := detector.NewContextExtractor().WithContextChars(20)
	agg := NewAggregator(taxonomy.Default(), ce)

	r := agg.Analyze("x.pdf", document(charterPage1, charterPage2), nil)
	require.NotEmpty(t, r.Hits)
	for _, h := range r.Hits {
		assert.NotContains(t, h.Snippet, "\n")
		assert.LessOrEqual(t, utf8.RuneCountInString(h.Snippet), 2*20+len(h.Keyword))
	}
}

func TestAnalyze_Idempotent(t *testing.T) {
	agg := NewAggregator(taxonomy.Default(), nil)
	first := agg.Analyze("x.pdf", document(charterPage1, charterPage2), nil)
	second := agg.Analyze("x.pdf", document(charterPage1, charterPage2), nil)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("results differ between runs (-first +second):\n%s", diff)
	}
	assert.Equal(t, first.Summary.Record(), second.Summary.Record())
}

func TestAnalyze_WhitespaceOnlyDocument(t *testing.T) {
	agg := NewAggregator(taxonomy.Default(), nil)
	r := agg.Analyze("blank.pdf", document("  \n\t", "", "\n"), nil)

	assert.True(t, r.Degraded())
	assert.Equal(t, CauseEmptyText, r.Cause)
	assert.Empty(t, r.Hits)
	assert.Equal(t, detector.DocumentSummary{
		File:        "blank.pdf",
		NumPages:    3,
		Orientation: "no_text_extracted",
	}, r.Summary)
}

func TestAnalyze_OpenFailure(t *testing.T) {
	agg := NewAggregator(taxonomy.Default(), nil)
	cause := errors.New("not a PDF file: invalid header")
	r := agg.Analyze("broken.pdf", nil, cause)

	assert.Equal(t, CauseOpenFailed, r.Cause)
	assert.Same(t, cause, r.Err)
	assert.Empty(t, r.Hits)
	assert.Equal(t, 0, r.Summary.NumPages)
	assert.Equal(t, "no_text_extracted", r.Summary.Orientation)
	assert.Equal(t, "False", r.Summary.Record()[6])
}

func TestAnalyze_NoOrientationKeywords(t *testing.T) {
	agg := NewAggregator(taxonomy.Default(), nil)
	r := agg.Analyze("x.pdf", document("The quick brown fox jumps over the lazy dog."), nil)

	assert.False(t, r.Degraded())
	assert.Equal(t, "no_orientation_keywords", r.Summary.Orientation)
	assert.Equal(t, 9, r.Summary.WordCount)
}

func TestTopFunctions_Ordering(t *testing.T) {
	agg := NewAggregator(taxonomy.Default(), nil)

	got := agg.TopFunctions(map[string]int{
		taxonomy.CategoryPartnerships: 2,
		taxonomy.CategoryRnDStrategy:  2,
		taxonomy.CategoryProduct:      5,
		taxonomy.CategoryFunction:     2,
		taxonomy.CategorySustainable:  0,
	})
	assert.Equal(t, "Product/Project-Specific (5); R&D Strategy (2); Partnerships/External Collaboration (2); Function (2)", got)
	assert.Equal(t, "", agg.TopFunctions(nil))
}

func TestWordCount(t *testing.T) {
	assert.Equal(t, 0, WordCount(" \n\t"))
	assert.Equal(t, 4, WordCount("One  two\nthree\tfour\n"))
}

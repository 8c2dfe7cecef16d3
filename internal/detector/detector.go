// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package detector

import (
	"strconv"
	"strings"
)

// HitColumns is the column order of the hit table
var HitColumns = []string{"file", "page", "category", "keyword", "snippet"}

// SummaryColumns is the column order of the summary table
var SummaryColumns = []string{
	"file", "num_pages", "word_count", "num_listed_functions_est", "members_count_est",
	"expertise_tags", "ceo_participation", "meeting_frequency", "reporting_line",
	"last_review_date", "authorities", "self_evaluation", "control_count", "collab_count",
	"orientation", "top_functions",
}

// Hit is a single keyword occurrence on one page of a document
type Hit struct {
	File     string `json:"file" yaml:"file"`
	Page     int    `json:"page" yaml:"page"`
	Category string `json:"category" yaml:"category"`
	Keyword  string `json:"keyword" yaml:"keyword"`
	Snippet  string `json:"snippet" yaml:"snippet"`
}

// Record renders the hit as a table row in HitColumns order
func (h Hit) Record() []string {
	return []string{h.File, strconv.Itoa(h.Page), h.Category, h.Keyword, h.Snippet}
}

// DocumentSummary is the one-row-per-document result of a scan
type DocumentSummary struct {
	File             string   `json:"file" yaml:"file"`
	NumPages         int      `json:"num_pages" yaml:"num_pages"`
	WordCount        int      `json:"word_count" yaml:"word_count"`
	ListedFunctions  int      `json:"num_listed_functions_est" yaml:"num_listed_functions_est"`
	MembersCount     *int     `json:"members_count_est" yaml:"members_count_est"`
	ExpertiseTags    []string `json:"expertise_tags" yaml:"expertise_tags"`
	CEOParticipation bool     `json:"ceo_participation" yaml:"ceo_participation"`
	MeetingFrequency string   `json:"meeting_frequency" yaml:"meeting_frequency"`
	ReportingLine    string   `json:"reporting_line" yaml:"reporting_line"`
	LastReviewDate   string   `json:"last_review_date" yaml:"last_review_date"`
	Authorities      []string `json:"authorities" yaml:"authorities"`
	SelfEvaluation   bool     `json:"self_evaluation" yaml:"self_evaluation"`
	ControlCount     int      `json:"control_count" yaml:"control_count"`
	CollabCount      int      `json:"collab_count" yaml:"collab_count"`
	Orientation      string   `json:"orientation" yaml:"orientation"`
	TopFunctions     string   `json:"top_functions" yaml:"top_functions"`
}

// Record renders the summary as a table row in SummaryColumns order.
// Tag lists are pipe-joined, booleans are True/False and a missing member
// count is an empty cell.
func (s DocumentSummary) Record() []string {
	members := ""
	if s.MembersCount != nil {
		members = strconv.Itoa(*s.MembersCount)
	}
	return []string{
		s.File,
		strconv.Itoa(s.NumPages),
		strconv.Itoa(s.WordCount),
		strconv.Itoa(s.ListedFunctions),
		members,
		strings.Join(s.ExpertiseTags, "|"),
		FormatBool(s.CEOParticipation),
		s.MeetingFrequency,
		s.ReportingLine,
		s.LastReviewDate,
		strings.Join(s.Authorities, "|"),
		FormatBool(s.SelfEvaluation),
		strconv.Itoa(s.ControlCount),
		strconv.Itoa(s.CollabCount),
		s.Orientation,
		s.TopFunctions,
	}
}

// FormatBool renders a boolean the way the summary table expects
func FormatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

// PageText is the extracted text of one page. Empty text is valid.
type PageText struct {
	Number int
	Text   string
}

// ExtractedDocument is what a text extractor produces for one source file
type ExtractedDocument struct {
	Path      string
	Filename  string
	Format    string
	PageCount int
	Pages     []PageText
}

// FullText joins the page texts in page order, each followed by a newline
func (d *ExtractedDocument) FullText() string {
	var b strings.Builder
	for _, p := range d.Pages {
		b.WriteString(p.Text)
		b.WriteByte('\n')
	}
	return b.String()
}

// HasText reports whether any page carries non-whitespace text
func (d *ExtractedDocument) HasText() bool {
	for _, p := range d.Pages {
		if strings.TrimSpace(p.Text) != "" {
			return true
		}
	}
	return false
}

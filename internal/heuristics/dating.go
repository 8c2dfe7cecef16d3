// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package heuristics

import "regexp"

// Date forms in the order they are tried
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:Jan(?:uary)?|Feb(?:ruary)?|Mar(?:ch)?|Apr(?:il)?|May|Jun(?:e)?|Jul(?:y)?|Aug(?:ust)?|Sep(?:tember)?|Oct(?:ober)?|Nov(?:ember)?|Dec(?:ember)?)\s+\d{1,2},\s+\d{4}\b`),
	regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b`),
	regexp.MustCompile(`\b20\d{2}\b`),
}

// LastReviewDateProbe returns the first date-like string in the document
type LastReviewDateProbe struct {
	probeInfo
}

func NewLastReviewDateProbe() *LastReviewDateProbe {
	return &LastReviewDateProbe{probeInfo{
		name:        "last_review_date",
		capability:  CapabilityDating,
		description: "Long-form date, numeric date, or a 20YY year",
	}}
}

func (p *LastReviewDateProbe) Apply(text string, md *Metadata) {
	md.LastReviewDate = firstMatch(text, datePatterns)
}

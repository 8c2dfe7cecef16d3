// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package detector

import (
	"strings"
	"unicode/utf8"
)

// DefaultContextChars is the snippet half-width used when none is configured
const DefaultContextChars = 200

// ContextExtractor builds the review snippet around a keyword occurrence
type ContextExtractor struct {
	// Number of characters before and after the match to include
	ContextChars int
}

// NewContextExtractor creates a new context extractor with default settings
func NewContextExtractor() *ContextExtractor {
	return &ContextExtractor{
		ContextChars: DefaultContextChars,
	}
}

// WithContextChars sets the number of context characters
func (ce *ContextExtractor) WithContextChars(chars int) *ContextExtractor {
	if chars < 0 {
		chars = 0
	}
	ce.ContextChars = chars
	return ce
}

// Snippet returns the text around the byte range [start, end) of text.
// The window extends ContextChars characters on each side, clamped to the
// text, with newlines collapsed to spaces and outer whitespace trimmed.
func (ce *ContextExtractor) Snippet(text string, start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(text) {
		end = len(text)
	}
	if start > end {
		return ""
	}

	from := start
	for n := 0; n < ce.ContextChars && from > 0; n++ {
		_, size := utf8.DecodeLastRuneInString(text[:from])
		from -= size
	}

	to := end
	for n := 0; n < ce.ContextChars && to < len(text); n++ {
		_, size := utf8.DecodeRuneInString(text[to:])
		to += size
	}

	return strings.TrimSpace(strings.ReplaceAll(text[from:to], "\n", " "))
}

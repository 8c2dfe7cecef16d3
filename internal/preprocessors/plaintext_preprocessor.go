// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package preprocessors

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"charter-scan/internal/detector"
	"charter-scan/internal/observability"
)

// PlainTextExtractor reads text documents whose pages are separated by form
// feed characters. A file without form feeds is a single page.
type PlainTextExtractor struct {
	observer         *observability.StandardObserver
	normalizeUnicode bool
}

// NewPlainTextExtractor creates a plain text extractor
func NewPlainTextExtractor(normalizeUnicode bool) *PlainTextExtractor {
	return &PlainTextExtractor{normalizeUnicode: normalizeUnicode}
}

// SetObserver sets the observability component
func (pt *PlainTextExtractor) SetObserver(observer *observability.StandardObserver) {
	pt.observer = observer
}

// GetName returns the name of this extractor
func (pt *PlainTextExtractor) GetName() string {
	return "Plain Text Extractor"
}

// GetSupportedExtensions returns the file extensions this extractor supports
func (pt *PlainTextExtractor) GetSupportedExtensions() []string {
	return []string{".txt", ".text", ".md"}
}

// CanProcess checks if this extractor can handle the given file
func (pt *PlainTextExtractor) CanProcess(filePath string) bool {
	return hasExtension(filePath, pt.GetSupportedExtensions())
}

// Extract reads the file and splits it into pages on form feeds. Page text
// is kept as written apart from CRLF line endings and optional NFKC folding.
func (pt *PlainTextExtractor) Extract(ctx context.Context, filePath string) (*detector.ExtractedDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, NewExtractionError(filePath, "text", ErrorTypeCancelled, "", err)
	}

	var finishTiming func(bool, map[string]interface{})
	if pt.observer != nil {
		finishTiming = pt.observer.StartTiming("plaintext_extractor", "extract", filePath)
	}

	data, err := os.ReadFile(filepath.Clean(filePath))
	if err != nil {
		if finishTiming != nil {
			finishTiming(false, nil)
		}
		return nil, NewExtractionError(filePath, "text", ErrorTypeOpenFailed, "error reading file", err)
	}

	text := string(data)
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, "�")
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")

	doc := newDocument(filePath, "text")
	for i, page := range strings.Split(text, "\f") {
		doc.Pages = append(doc.Pages, detector.PageText{
			Number: i + 1,
			Text:   normalizeText(page, pt.normalizeUnicode),
		})
	}
	doc.PageCount = len(doc.Pages)

	if finishTiming != nil {
		finishTiming(true, map[string]interface{}{"page_count": doc.PageCount})
	}
	return doc, nil
}

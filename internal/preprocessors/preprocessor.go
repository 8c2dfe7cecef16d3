// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package preprocessors turns source documents into page-indexed plain text.
package preprocessors

import (
	"context"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"

	"charter-scan/internal/detector"
	"charter-scan/internal/observability"
)

// Extractor produces ordered page text for one source document
type Extractor interface {
	// CanProcess checks if this extractor can handle the given file
	CanProcess(filePath string) bool

	// Extract returns the document's pages in order, or an *ExtractionError
	// when the document cannot be read at all
	Extract(ctx context.Context, filePath string) (*detector.ExtractedDocument, error)

	// GetName returns the name of this extractor
	GetName() string

	// GetSupportedExtensions returns the file extensions this extractor supports
	GetSupportedExtensions() []string

	// SetObserver sets the observability component
	SetObserver(observer *observability.StandardObserver)
}

func hasExtension(filePath string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(filePath))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

func newDocument(filePath, format string) *detector.ExtractedDocument {
	return &detector.ExtractedDocument{
		Path:     filePath,
		Filename: filepath.Base(filePath),
		Format:   format,
	}
}

// normalizeText NFKC folds text when normalize is set so ligatures and
// compatibility forms match plain terms.
func normalizeText(text string, normalize bool) string {
	if normalize {
		return norm.NFKC.String(text)
	}
	return text
}

// cleanPageText undoes PDF layout spacing: it trims each line, drops blank
// lines and collapses runs of spaces and tabs while keeping line structure.
func cleanPageText(text string, normalize bool) string {
	lines := strings.Split(normalizeText(text, normalize), "\n")
	cleaned := lines[:0]
	for _, line := range lines {
		line = strings.Join(strings.FieldsFunc(line, func(r rune) bool {
			return r == ' ' || r == '\t' || r == '\r'
		}), " ")
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}

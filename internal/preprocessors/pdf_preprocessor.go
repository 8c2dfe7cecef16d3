// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package preprocessors

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"charter-scan/internal/detector"
	"charter-scan/internal/observability"
)

// PDFOptions tunes PDF extraction
type PDFOptions struct {
	// Validate runs strict pdfcpu validation before extraction and takes the
	// page count from pdfcpu
	Validate bool
	// NormalizeUnicode NFKC folds page text
	NormalizeUnicode bool
	// MaxPages limits how many pages are extracted; 0 means all. Skipped
	// pages still count toward the page total.
	MaxPages int
}

// DefaultPDFOptions returns the options used when none are configured
func DefaultPDFOptions() PDFOptions {
	return PDFOptions{NormalizeUnicode: true}
}

// PDFExtractor extracts per-page text from PDF documents
type PDFExtractor struct {
	options  PDFOptions
	observer *observability.StandardObserver
}

// NewPDFExtractor creates a PDF extractor
func NewPDFExtractor(options PDFOptions) *PDFExtractor {
	return &PDFExtractor{options: options}
}

// SetObserver sets the observability component
func (pe *PDFExtractor) SetObserver(observer *observability.StandardObserver) {
	pe.observer = observer
}

// GetName returns the name of this extractor
func (pe *PDFExtractor) GetName() string {
	return "PDF Text Extractor"
}

// GetSupportedExtensions returns the file extensions this extractor supports
func (pe *PDFExtractor) GetSupportedExtensions() []string {
	return []string{".pdf"}
}

// CanProcess checks if this extractor can handle the given file
func (pe *PDFExtractor) CanProcess(filePath string) bool {
	return hasExtension(filePath, pe.GetSupportedExtensions())
}

// Extract opens the PDF and returns the text of every page in order. Pages
// that carry no text, or whose content stream cannot be decoded, yield empty
// text but still count.
func (pe *PDFExtractor) Extract(ctx context.Context, filePath string) (*detector.ExtractedDocument, error) {
	var finishTiming func(bool, map[string]interface{})
	if pe.observer != nil {
		finishTiming = pe.observer.StartTiming("pdf_extractor", "extract", filePath)
	}

	doc, err := pe.extract(ctx, filePath)

	if finishTiming != nil {
		meta := map[string]interface{}{}
		if doc != nil {
			meta["page_count"] = doc.PageCount
		}
		finishTiming(err == nil, meta)
	}
	return doc, err
}

func (pe *PDFExtractor) extract(ctx context.Context, filePath string) (*detector.ExtractedDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, NewExtractionError(filePath, "pdf", ErrorTypeCancelled, "", err)
	}

	doc := newDocument(filePath, "pdf")

	pdfcpuPages := 0
	if pe.options.Validate {
		if err := api.ValidateFile(filePath, model.NewDefaultConfiguration()); err != nil {
			return nil, NewExtractionError(filePath, "pdf", ErrorTypeInvalidFormat, "pdfcpu validation failed", err)
		}
		pdfCtx, err := api.ReadContextFile(filePath)
		if err != nil {
			return nil, NewExtractionError(filePath, "pdf", ErrorTypeOpenFailed, "pdfcpu could not read document", err)
		}
		pdfcpuPages = pdfCtx.PageCount
	}

	f, r, err := pdf.Open(filePath)
	if err != nil {
		return nil, NewExtractionError(filePath, "pdf", ErrorTypeOpenFailed, "error opening PDF", err)
	}
	defer f.Close()

	doc.PageCount = r.NumPage()
	if pdfcpuPages > 0 && pdfcpuPages != doc.PageCount {
		pe.logDetail(fmt.Sprintf("page count mismatch for %s: reader=%d pdfcpu=%d", filePath, doc.PageCount, pdfcpuPages))
		doc.PageCount = pdfcpuPages
	}

	limit := doc.PageCount
	if pe.options.MaxPages > 0 && limit > pe.options.MaxPages {
		limit = pe.options.MaxPages
	}

	doc.Pages = make([]detector.PageText, 0, limit)
	for i := 1; i <= limit; i++ {
		if err := ctx.Err(); err != nil {
			return nil, NewExtractionError(filePath, "pdf", ErrorTypeCancelled, "", err)
		}

		text, err := pe.pageText(r, i)
		if err != nil {
			pe.logDetail(fmt.Sprintf("page %d of %s: %v", i, filePath, err))
		}
		doc.Pages = append(doc.Pages, detector.PageText{
			Number: i,
			Text:   cleanPageText(text, pe.options.NormalizeUnicode),
		})
	}

	return doc, nil
}

// pageText extracts one page; a panic inside the PDF reader is reported as
// an error for that page only
func (pe *PDFExtractor) pageText(r *pdf.Reader, pageNum int) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			text, err = "", fmt.Errorf("panic while reading page: %v", rec)
		}
	}()

	p := r.Page(pageNum)
	if p.V.IsNull() {
		return "", nil
	}
	return extractTextWithProperSpacing(p)
}

func (pe *PDFExtractor) logDetail(detail string) {
	if pe.observer != nil && pe.observer.DebugObserver != nil {
		pe.observer.DebugObserver.LogDetail("pdf_extractor", detail)
	}
}

// extractTextWithProperSpacing rebuilds page text row by row, top of the
// page first, falling back to the plain content stream text
func extractTextWithProperSpacing(p pdf.Page) (string, error) {
	rows, err := p.GetTextByRow()
	if err != nil {
		return p.GetPlainText(nil)
	}

	sortedRows := make([]*pdf.Row, 0, len(rows))
	for _, row := range rows {
		if row != nil && len(row.Content) > 0 {
			sortedRows = append(sortedRows, row)
		}
	}

	// PDF user space grows upward
	sort.SliceStable(sortedRows, func(i, j int) bool {
		return averageY(sortedRows[i].Content) > averageY(sortedRows[j].Content)
	})

	var buf bytes.Buffer
	for _, row := range sortedRows {
		rowText := reconstructRowText(row.Content)
		if strings.TrimSpace(rowText) != "" {
			buf.WriteString(rowText)
			buf.WriteString("\n")
		}
	}
	return buf.String(), nil
}

func averageY(texts []pdf.Text) float64 {
	if len(texts) == 0 {
		return 0
	}
	var total float64
	for _, t := range texts {
		total += t.Y
	}
	return total / float64(len(texts))
}

// reconstructRowText joins a row's glyph runs left to right, inserting a
// space where the horizontal gap exceeds a fifth of the font size
func reconstructRowText(texts []pdf.Text) string {
	if len(texts) == 0 {
		return ""
	}

	sorted := make([]pdf.Text, len(texts))
	copy(sorted, texts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].X < sorted[j].X
	})

	var buf bytes.Buffer
	for i, t := range sorted {
		buf.WriteString(t.S)
		if i == len(sorted)-1 {
			break
		}

		fontSize := t.FontSize
		if fontSize <= 0 {
			fontSize = 12
		}
		gap := sorted[i+1].X - (t.X + t.W)
		if gap > fontSize*0.2 && !strings.HasSuffix(t.S, " ") {
			buf.WriteByte(' ')
		}
	}
	return buf.String()
}

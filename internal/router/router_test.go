// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package router

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"charter-scan/internal/detector"
	"charter-scan/internal/observability"
	"charter-scan/internal/preprocessors"
)

type panickingExtractor struct{}

func (panickingExtractor) CanProcess(string) bool                      { return true }
func (panickingExtractor) GetName() string                             { return "panicker" }
func (panickingExtractor) GetSupportedExtensions() []string            { return []string{".boom"} }
func (panickingExtractor) SetObserver(*observability.StandardObserver) {}
func (panickingExtractor) Extract(context.Context, string) (*detector.ExtractedDocument, error) {
	panic("corrupt cross-reference table")
}

func newTestRouter(cfg Config) *FileRouter {
	fr := NewFileRouter(nil)
	RegisterDefaultExtractors(fr)
	fr.InitializeExtractors(cfg)
	return fr
}

func touch(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func TestListDocuments_DefaultsToPDFs(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "b.pdf"), "x")
	touch(t, filepath.Join(dir, "A.PDF"), "x")
	touch(t, filepath.Join(dir, "notes.txt"), "x")
	touch(t, filepath.Join(dir, ".hidden.pdf"), "x")
	touch(t, filepath.Join(dir, "sub", "c.pdf"), "x")

	fr := newTestRouter(DefaultConfig())
	files, err := fr.ListDocuments(dir, false)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "A.PDF"), filepath.Join(dir, "b.pdf")}, files)

	files, err = fr.ListDocuments(dir, true)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "A.PDF"),
		filepath.Join(dir, "b.pdf"),
		filepath.Join(dir, "sub", "c.pdf"),
	}, files)
}

func TestListDocuments_PlainTextEnabled(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.pdf"), "x")
	touch(t, filepath.Join(dir, "b.txt"), "x")

	cfg := DefaultConfig()
	cfg.PlainTextEnabled = true
	fr := newTestRouter(cfg)

	files, err := fr.ListDocuments(dir, false)
	require.NoError(t, err)
	assert.Len(t, files, 2)
	assert.Equal(t, 2, fr.GetExtractorCount())
	assert.ElementsMatch(t, []string{".pdf", ".txt", ".text", ".md"}, fr.SupportedExtensions())
}

func TestListDocuments_NotADirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "a.pdf")
	touch(t, file, "x")

	_, err := newTestRouter(DefaultConfig()).ListDocuments(file, false)
	assert.Error(t, err)

	_, err = newTestRouter(DefaultConfig()).ListDocuments(filepath.Join(t.TempDir(), "missing"), false)
	assert.Error(t, err)
}

func TestExtract_Unsupported(t *testing.T) {
	_, err := newTestRouter(DefaultConfig()).Extract(context.Background(), "a.docx")
	assert.Equal(t, preprocessors.ErrorTypeUnsupportedFormat, preprocessors.TypeOf(err))
}

func TestExtract_FileSizeLimit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "big.txt")
	touch(t, path, "0123456789")

	cfg := DefaultConfig()
	cfg.PlainTextEnabled = true
	fr := newTestRouter(cfg)
	fr.SetMaxFileSize(5)

	ok, reason := fr.CanProcessFile(path)
	assert.False(t, ok)
	assert.Contains(t, reason, "too large")

	_, err := fr.Extract(context.Background(), path)
	assert.Equal(t, preprocessors.ErrorTypeFileSize, preprocessors.TypeOf(err))
	assert.Equal(t, int64(1), fr.GetMetrics().GetSummary()["error_counts"].(map[string]int64)["file_size"])
}

func TestExtract_RecoversPanics(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.boom")
	touch(t, path, "x")

	fr := NewFileRouter(nil)
	fr.RegisterExtractor("panicker", func(Config) preprocessors.Extractor { return panickingExtractor{} })
	fr.InitializeExtractors(DefaultConfig())

	doc, err := fr.Extract(context.Background(), path)
	assert.Nil(t, doc)
	require.Error(t, err)
	assert.Equal(t, preprocessors.ErrorTypeOpenFailed, preprocessors.TypeOf(err))
	assert.Contains(t, err.Error(), "corrupt cross-reference table")
}

func TestExtract_PlainText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "charter.txt")
	touch(t, path, "oversight\fadvise")

	cfg := DefaultConfig()
	cfg.PlainTextEnabled = true
	fr := newTestRouter(cfg)

	doc, err := fr.Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 2, doc.PageCount)
	assert.Equal(t, int64(1), fr.GetMetrics().GetSummary()["files_processed"])
}

func TestRegistry_OrderAndReplace(t *testing.T) {
	r := NewExtractorRegistry()
	r.Register("b", func(Config) preprocessors.Extractor { return nil })
	r.Register("a", func(Config) preprocessors.Extractor { return panickingExtractor{} })
	r.Register("b", func(Config) preprocessors.Extractor { return panickingExtractor{} })

	assert.Equal(t, []string{"b", "a"}, r.GetRegisteredNames())
	assert.Len(t, r.CreateAll(DefaultConfig()), 2)
	assert.Nil(t, r.Create("missing", DefaultConfig()))
}

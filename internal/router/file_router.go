// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package router selects the extractor for each source document and lists
// the documents of a corpus directory.
package router

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"charter-scan/internal/detector"
	"charter-scan/internal/observability"
	"charter-scan/internal/preprocessors"
)

// FileRouter handles file routing and extraction decisions
type FileRouter struct {
	registry    *ExtractorRegistry
	extractors  []preprocessors.Extractor
	metrics     *RouterMetrics
	observer    *observability.StandardObserver
	maxFileSize int64
}

// MaxFileSize is the default maximum file size the router will process (100 MB).
const MaxFileSize = int64(100 * 1024 * 1024)

// NewFileRouter creates a new file router. A nil observer disables logging.
func NewFileRouter(observer *observability.StandardObserver) *FileRouter {
	if observer == nil {
		observer = observability.NewStandardObserver(observability.ObservabilityOff, nil)
	}
	return &FileRouter{
		registry:    NewExtractorRegistry(),
		metrics:     NewRouterMetrics(),
		observer:    observer,
		maxFileSize: MaxFileSize,
	}
}

// SetMaxFileSize overrides the size limit; values <= 0 restore the default
func (fr *FileRouter) SetMaxFileSize(size int64) {
	if size <= 0 {
		size = MaxFileSize
	}
	fr.maxFileSize = size
}

// RegisterExtractor adds an extractor factory to the registry
func (fr *FileRouter) RegisterExtractor(name string, factory ExtractorFactory) {
	fr.registry.Register(name, factory)
}

// InitializeExtractors creates the enabled extractors
func (fr *FileRouter) InitializeExtractors(config Config) {
	fr.extractors = fr.registry.CreateAll(config)
}

// GetExtractorCount returns the number of active extractors
func (fr *FileRouter) GetExtractorCount() int {
	return len(fr.extractors)
}

// SupportedExtensions lists the extensions of the active extractors
func (fr *FileRouter) SupportedExtensions() []string {
	var exts []string
	for _, e := range fr.extractors {
		exts = append(exts, e.GetSupportedExtensions()...)
	}
	return exts
}

// GetMetrics returns current router metrics
func (fr *FileRouter) GetMetrics() *RouterMetrics {
	return fr.metrics
}

func (fr *FileRouter) extractorFor(filePath string) preprocessors.Extractor {
	for _, e := range fr.extractors {
		if e.CanProcess(filePath) {
			return e
		}
	}
	return nil
}

// CanProcessFile determines if a file can be processed and why not
func (fr *FileRouter) CanProcessFile(filePath string) (bool, string) {
	if fr.extractorFor(filePath) == nil {
		return false, "Unsupported file type"
	}

	if info, err := os.Stat(filepath.Clean(filePath)); err == nil && info.Size() > fr.maxFileSize {
		return false, fmt.Sprintf("File too large (max: %dMB)", fr.maxFileSize/(1024*1024))
	}

	return true, "Supported document"
}

// Extract routes filePath to its extractor. Every failure, including a panic
// inside a third-party parser, comes back as an *ExtractionError.
func (fr *FileRouter) Extract(ctx context.Context, filePath string) (doc *detector.ExtractedDocument, err error) {
	ext := strings.ToLower(filepath.Ext(filePath))
	fr.metrics.RecordFileType(ext)

	defer func() {
		if err != nil {
			fr.metrics.RecordError(string(preprocessors.TypeOf(err)))
		}
	}()

	extractor := fr.extractorFor(filePath)
	if extractor == nil {
		return nil, preprocessors.NewExtractionError(filePath, ext, preprocessors.ErrorTypeUnsupportedFormat, "no extractor can handle file", nil)
	}

	info, statErr := os.Stat(filepath.Clean(filePath))
	if statErr != nil {
		return nil, preprocessors.NewExtractionError(filePath, ext, preprocessors.ErrorTypeOpenFailed, "cannot stat file", statErr)
	}
	if info.Size() > fr.maxFileSize {
		return nil, preprocessors.NewExtractionError(filePath, ext, preprocessors.ErrorTypeFileSize,
			fmt.Sprintf("file too large: %d bytes (max %d)", info.Size(), fr.maxFileSize), nil)
	}

	start := time.Now()
	func() {
		defer func() {
			if r := recover(); r != nil {
				doc = nil
				err = preprocessors.NewExtractionError(filePath, ext, preprocessors.ErrorTypeOpenFailed,
					fmt.Sprintf("extractor panic in %s: %v", extractor.GetName(), r), nil)
			}
		}()
		doc, err = extractor.Extract(ctx, filePath)
	}()

	if err == nil {
		fr.metrics.RecordProcessing(extractor.GetName(), time.Since(start).Milliseconds())
	}
	return doc, err
}

// ListDocuments returns the processable documents under dir sorted by path.
// Subdirectories are walked only when recursive is set; hidden entries are
// skipped.
func (fr *FileRouter) ListDocuments(dir string, recursive bool) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot access input directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("input path %s is not a directory", dir)
	}

	var files []string
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if path == dir {
				return nil
			}
			if !recursive || strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") || !d.Type().IsRegular() {
			return nil
		}
		if fr.extractorFor(path) != nil {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error listing documents: %w", err)
	}

	sort.Strings(files)
	return files, nil
}

// RouterMetrics collects usage metrics across concurrent extractions
type RouterMetrics struct {
	mu               sync.Mutex
	FilesProcessed   int64            `json:"files_processed"`
	ProcessingTimeMs map[string]int64 `json:"processing_time_ms"`
	ErrorCounts      map[string]int64 `json:"error_counts"`
	FileTypeCounts   map[string]int64 `json:"file_type_counts"`
}

// NewRouterMetrics creates a new metrics collector
func NewRouterMetrics() *RouterMetrics {
	return &RouterMetrics{
		ProcessingTimeMs: make(map[string]int64),
		ErrorCounts:      make(map[string]int64),
		FileTypeCounts:   make(map[string]int64),
	}
}

// RecordProcessing records successful processing metrics
func (m *RouterMetrics) RecordProcessing(extractor string, durationMs int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FilesProcessed++
	m.ProcessingTimeMs[extractor] += durationMs
}

// RecordError records error metrics
func (m *RouterMetrics) RecordError(errorType string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ErrorCounts[errorType]++
}

// RecordFileType records file type metrics
func (m *RouterMetrics) RecordFileType(fileExt string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FileTypeCounts[fileExt]++
}

// GetSummary returns a snapshot of the metrics
func (m *RouterMetrics) GetSummary() map[string]interface{} {
	m.mu.Lock()
	defer m.mu.Unlock()

	copyMap := func(src map[string]int64) map[string]int64 {
		out := make(map[string]int64, len(src))
		for k, v := range src {
			out[k] = v
		}
		return out
	}
	return map[string]interface{}{
		"files_processed":    m.FilesProcessed,
		"processing_time_ms": copyMap(m.ProcessingTimeMs),
		"error_counts":       copyMap(m.ErrorCounts),
		"file_type_counts":   copyMap(m.FileTypeCounts),
	}
}

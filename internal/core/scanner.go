// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"context"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"charter-scan/internal/detector"
	"charter-scan/internal/observability"
	"charter-scan/internal/parallel"
	"charter-scan/internal/preprocessors"
)

// DocumentSource produces page text for a document path
type DocumentSource interface {
	Extract(ctx context.Context, filePath string) (*detector.ExtractedDocument, error)
}

// ScanConfig holds configuration for one corpus run
type ScanConfig struct {
	// Paths lists the documents in corpus order
	Paths []string
	// BaseDir, when set, makes the file column relative to it; otherwise the
	// file column is the base name
	BaseDir  string
	Workers  int
	Progress parallel.ProgressCallback
}

// ScanResult holds the results of a corpus run
type ScanResult struct {
	Tables Tables
	Stats  *parallel.ProcessingStats
	RunID  string
}

// Runner drives extraction and aggregation over a corpus
type Runner struct {
	aggregator *Aggregator
	source     DocumentSource
	observer   *observability.StandardObserver
}

// NewRunner creates a runner. A nil observer discards logs.
func NewRunner(aggregator *Aggregator, source DocumentSource, observer *observability.StandardObserver) *Runner {
	if observer == nil {
		observer = observability.NewStandardObserver(observability.ObservabilityOff, nil)
	}
	return &Runner{
		aggregator: aggregator,
		source:     source,
		observer:   observer,
	}
}

// ScanDocument extracts and analyzes a single document. Extraction is
// attempted once; failures become degraded results, never errors. An
// extraction cut short by ctx yields an interrupted result, which carries no
// rows.
func (r *Runner) ScanDocument(ctx context.Context, path, file string) Result {
	var finishStep func(bool, string)
	if r.observer.DebugObserver != nil {
		finishStep = r.observer.DebugObserver.StartStep("runner", "scan_document", path)
	}
	finishTiming := r.observer.StartTiming(r.aggregator.GetComponentName(), "analyze", path)

	doc, err := r.source.Extract(ctx, path)
	if err != nil && (ctx.Err() != nil || preprocessors.TypeOf(err) == preprocessors.ErrorTypeCancelled) {
		finishTiming(false, map[string]interface{}{"interrupted": true})
		if finishStep != nil {
			finishStep(false, "interrupted")
		}
		return Result{Interrupted: true, Err: err}
	}
	result := r.aggregator.Analyze(file, doc, err)

	if result.Degraded() {
		r.observer.LogDocumentFailure(path, result.Cause, result.Err)
	}

	finishTiming(!result.Degraded(), map[string]interface{}{
		"hits":        len(result.Hits),
		"orientation": result.Summary.Orientation,
	})
	if finishStep != nil {
		finishStep(!result.Degraded(), fmt.Sprintf("%d hits, %s", len(result.Hits), result.Summary.Orientation))
	}
	return result
}

// Run processes every document and merges the results in corpus order. A
// cancelled context stops new documents from starting. The returned tables
// then hold the longest run of completed documents from the start of the
// corpus, so an interrupted run is always a prefix of the full run; it is
// returned along with the context error.
func (r *Runner) Run(ctx context.Context, cfg ScanConfig) (*ScanResult, error) {
	logger := r.observer.Logger()
	logger.Info("starting scan",
		zap.Int("documents", len(cfg.Paths)),
		zap.Int("workers", cfg.Workers),
	)

	pp := parallel.NewParallelProcessor(cfg.Workers, r.observer)
	outcomes, stats, err := parallel.Process(ctx, pp, cfg.Paths, func(ctx context.Context, path string) Result {
		return r.ScanDocument(ctx, path, DisplayName(cfg.BaseDir, path))
	}, cfg.Progress)

	result := &ScanResult{Stats: stats, RunID: r.observer.RunID()}
	for i, o := range outcomes {
		if o.Index != i || o.Value.Interrupted {
			break
		}
		result.Tables.Append(o.Value)
	}

	runStats := result.Tables.Stats()
	logger.Info("scan complete",
		zap.Int("documents", runStats.Documents),
		zap.Int("degraded", runStats.Degraded),
		zap.Int("hits", runStats.TotalHits),
		zap.Duration("elapsed", stats.TotalDuration),
	)

	if err != nil {
		return result, fmt.Errorf("scan interrupted after %d of %d documents: %w", runStats.Documents, stats.TotalFiles, err)
	}
	return result, nil
}

// DisplayName is the value of the file column for path
func DisplayName(baseDir, path string) string {
	if baseDir != "" {
		if rel, err := filepath.Rel(baseDir, path); err == nil && !filepath.IsAbs(rel) && rel != ".." && !startsWithParent(rel) {
			return filepath.ToSlash(rel)
		}
	}
	return filepath.Base(path)
}

func startsWithParent(rel string) bool {
	return len(rel) >= 3 && rel[:3] == ".."+string(filepath.Separator)
}

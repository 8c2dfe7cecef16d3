// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package parallel shards independent per-document work across goroutines
// and hands results back in input order.
package parallel

import (
	"context"
	"runtime"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"charter-scan/internal/observability"
)

// MaxWorkers caps the worker count to avoid resource exhaustion
const MaxWorkers = 32

// ParallelProcessor runs a task over many inputs with bounded concurrency
type ParallelProcessor struct {
	workers  int
	observer *observability.StandardObserver
}

// ProcessingStats tracks parallel processing statistics
type ProcessingStats struct {
	TotalFiles     int           `json:"total_files"`
	ProcessedFiles int           `json:"processed_files"`
	TotalDuration  time.Duration `json:"total_duration_ms"`
	WorkerCount    int           `json:"worker_count"`
	AvgFileTime    time.Duration `json:"avg_file_time_ms"`
	Cancelled      bool          `json:"cancelled"`
}

// ProgressCallback is called when a file is completed
type ProgressCallback func(completed, total int, currentFile string)

// Outcome is the result of one completed input
type Outcome[T any] struct {
	Index int
	Item  string
	Value T
}

// NewParallelProcessor creates a processor with the given worker count.
// workers <= 0 uses the CPU count.
func NewParallelProcessor(workers int, observer *observability.StandardObserver) *ParallelProcessor {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > MaxWorkers {
		workers = MaxWorkers
	}
	return &ParallelProcessor{
		workers:  workers,
		observer: observer,
	}
}

// Workers returns the effective worker count
func (pp *ParallelProcessor) Workers() int {
	return pp.workers
}

// Process runs task once per item with at most pp.Workers() in flight and
// returns the outcomes ordered by input index. Cancelling ctx stops new items
// from starting; items already running finish and are returned together with
// ctx's error.
func Process[T any](ctx context.Context, pp *ParallelProcessor, items []string, task func(ctx context.Context, item string) T, progress ProgressCallback) ([]Outcome[T], *ProcessingStats, error) {
	start := time.Now()

	var finishTiming func(bool, map[string]interface{})
	if pp.observer != nil {
		finishTiming = pp.observer.StartTiming("parallel_processor", "process_files", "batch")
	}

	var (
		mu        sync.Mutex
		outcomes  = make([]Outcome[T], 0, len(items))
		completed int
		busy      time.Duration
	)

	var g errgroup.Group
	g.SetLimit(pp.workers)

	for i, item := range items {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}

			itemStart := time.Now()
			value := task(ctx, item)
			elapsed := time.Since(itemStart)

			mu.Lock()
			defer mu.Unlock()
			outcomes = append(outcomes, Outcome[T]{Index: i, Item: item, Value: value})
			completed++
			busy += elapsed
			if progress != nil {
				progress(completed, len(items), item)
			}
			return nil
		})
	}
	_ = g.Wait()

	sort.Slice(outcomes, func(a, b int) bool {
		return outcomes[a].Index < outcomes[b].Index
	})

	stats := &ProcessingStats{
		TotalFiles:     len(items),
		ProcessedFiles: len(outcomes),
		TotalDuration:  time.Since(start),
		WorkerCount:    pp.workers,
		Cancelled:      ctx.Err() != nil,
	}
	if len(outcomes) > 0 {
		stats.AvgFileTime = busy / time.Duration(len(outcomes))
	}

	if finishTiming != nil {
		finishTiming(!stats.Cancelled, map[string]interface{}{
			"total_files":     stats.TotalFiles,
			"processed_files": stats.ProcessedFiles,
			"worker_count":    stats.WorkerCount,
		})
	}

	return outcomes, stats, ctx.Err()
}

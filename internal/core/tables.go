// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"charter-scan/internal/detector"
	"charter-scan/internal/orientation"
)

// Tables holds the two append-only output tables of a run
type Tables struct {
	Hits      []detector.Hit
	Summaries []detector.DocumentSummary
}

// Append adds one document's complete result
func (t *Tables) Append(r Result) {
	t.Hits = append(t.Hits, r.Hits...)
	t.Summaries = append(t.Summaries, r.Summary)
}

// RunStats summarises a run for the console report
type RunStats struct {
	Documents    int
	Degraded     int
	TotalHits    int
	Orientations map[string]int
}

// Stats computes the run summary from the tables
func (t *Tables) Stats() RunStats {
	stats := RunStats{
		Documents:    len(t.Summaries),
		TotalHits:    len(t.Hits),
		Orientations: make(map[string]int),
	}
	for _, s := range t.Summaries {
		stats.Orientations[s.Orientation]++
		if s.Orientation == orientation.NoTextExtracted.String() {
			stats.Degraded++
		}
	}
	return stats
}

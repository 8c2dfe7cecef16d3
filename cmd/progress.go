// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"charter-scan/internal/parallel"
)

const progressBarWidth = 40

// newProgressBar returns a progress callback drawing a single-line bar with
// an ETA on w
func newProgressBar(w io.Writer) parallel.ProgressCallback {
	start := time.Now()
	return func(current, total int, _ string) {
		if total == 0 {
			return
		}
		percent := float64(current) / float64(total) * 100
		filledWidth := progressBarWidth * current / total
		bar := strings.Repeat("█", filledWidth) + strings.Repeat("░", progressBarWidth-filledWidth)

		var etaStr string
		if current > 0 {
			elapsed := time.Since(start)
			avgTime := elapsed / time.Duration(current)
			remaining := time.Duration(total-current) * avgTime
			etaStr = fmt.Sprintf(" ETA: %s", remaining.Round(time.Second))
		}

		fmt.Fprintf(w, "\r[%s] %d/%d documents (%.1f%%)%s", bar, current, total, percent, etaStr)
		if current == total {
			fmt.Fprintf(w, "\n")
		}
	}
}

// shouldSuppressProgressOutput determines if progress output should be suppressed
func shouldSuppressProgressOutput(debug, quiet, isInteractive bool) bool {
	return debug || quiet || !isInteractive
}

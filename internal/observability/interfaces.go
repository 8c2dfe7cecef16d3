// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package observability

import "io"

// Observable interface for all components that need observability
type Observable interface {
	// GetComponentName returns the component identifier
	GetComponentName() string
}

// New returns the observer for the requested verbosity. Debug wins over
// quiet; quiet silences everything but the returned observer stays usable.
func New(writer io.Writer, debug, quiet bool) *StandardObserver {
	switch {
	case debug:
		return NewDebugObserver(writer).StandardObserver
	case quiet:
		return NewStandardObserver(ObservabilityOff, writer)
	default:
		return NewStandardObserver(ObservabilityMetrics, writer)
	}
}

// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package observability

import (
	"bytes"
	"errors"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRunID_Monotonic(t *testing.T) {
	a := NewRunID()
	b := NewRunID()

	_, err := ulid.Parse(a)
	require.NoError(t, err)
	assert.Less(t, a, b)
}

func TestLogDocumentFailure_Metrics(t *testing.T) {
	var buf bytes.Buffer
	obs := NewStandardObserver(ObservabilityMetrics, &buf)

	obs.LogDocumentFailure("broken.pdf", "open_failed", errors.New("bad xref"))
	obs.Sync()

	out := buf.String()
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "broken.pdf")
	assert.Contains(t, out, "open_failed")
	assert.Contains(t, out, "bad xref")
	assert.Contains(t, out, obs.RunID())
}

func TestLogOperation_OnlyInDebug(t *testing.T) {
	var buf bytes.Buffer
	obs := NewStandardObserver(ObservabilityMetrics, &buf)
	obs.StartTiming("aggregator", "analyze", "a.pdf")(true, nil)
	assert.Empty(t, buf.String())

	buf.Reset()
	debug := NewDebugObserver(&buf)
	debug.StartTiming("aggregator", "analyze", "a.pdf")(true, map[string]interface{}{"hits": 3})
	assert.Contains(t, buf.String(), "analyze")
	assert.Contains(t, buf.String(), "a.pdf")
}

func TestObserverOff_Silent(t *testing.T) {
	var buf bytes.Buffer
	obs := New(&buf, false, true)
	obs.LogDocumentFailure("x.pdf", "empty_text", nil)
	obs.Logger().Info("summary")
	assert.Empty(t, buf.String())
}

func TestDebugObserver_Steps(t *testing.T) {
	var buf bytes.Buffer
	d := NewDebugObserver(&buf)
	require.Same(t, d, d.StandardObserver.DebugObserver)

	done := d.StartStep("scanner", "scan", "a.pdf")
	d.LogDetail("scanner", "page 1")
	d.LogMetric("scanner", "hits", 4)
	done(true, "ok")

	out := buf.String()
	assert.Contains(t, out, "🔄 scanner: scan (a.pdf)")
	assert.Contains(t, out, "  → scanner: page 1")
	assert.Contains(t, out, "📊 scanner: hits = 4")
	assert.Contains(t, out, "✅ scanner: scan completed")
}

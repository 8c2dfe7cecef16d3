// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package parallel

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func items(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("doc-%03d.pdf", i)
	}
	return out
}

func TestProcess_OrderedResults(t *testing.T) {
	pp := NewParallelProcessor(4, nil)
	input := items(50)

	outcomes, stats, err := Process(context.Background(), pp, input, func(_ context.Context, item string) string {
		// finish out of order
		if item[len(item)-5] == '0' {
			time.Sleep(time.Millisecond)
		}
		return "scanned " + item
	}, nil)
	require.NoError(t, err)

	require.Len(t, outcomes, len(input))
	for i, o := range outcomes {
		assert.Equal(t, i, o.Index)
		assert.Equal(t, input[i], o.Item)
		assert.Equal(t, "scanned "+input[i], o.Value)
	}
	assert.Equal(t, 50, stats.TotalFiles)
	assert.Equal(t, 50, stats.ProcessedFiles)
	assert.Equal(t, 4, stats.WorkerCount)
	assert.False(t, stats.Cancelled)
}

func TestProcess_SequentialMatchesParallel(t *testing.T) {
	input := items(20)
	task := func(_ context.Context, item string) int { return len(item) * 3 }

	seq, _, err := Process(context.Background(), NewParallelProcessor(1, nil), input, task, nil)
	require.NoError(t, err)
	par, _, err := Process(context.Background(), NewParallelProcessor(8, nil), input, task, nil)
	require.NoError(t, err)

	assert.Equal(t, seq, par)
}

func TestProcess_RespectsLimit(t *testing.T) {
	var inFlight, peak int32
	pp := NewParallelProcessor(3, nil)

	_, _, err := Process(context.Background(), pp, items(30), func(_ context.Context, _ string) struct{} {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		return struct{}{}
	}, nil)
	require.NoError(t, err)
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(3))
}

func TestProcess_Progress(t *testing.T) {
	var calls []int
	_, _, err := Process(context.Background(), NewParallelProcessor(2, nil), items(5), func(_ context.Context, item string) string {
		return item
	}, func(completed, total int, _ string) {
		assert.Equal(t, 5, total)
		calls = append(calls, completed)
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, calls)
}

func TestProcess_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	pp := NewParallelProcessor(1, nil)

	outcomes, stats, err := Process(ctx, pp, items(10), func(_ context.Context, item string) string {
		if item == "doc-002.pdf" {
			cancel()
		}
		return item
	}, nil)

	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, stats.Cancelled)
	require.Len(t, outcomes, 3)
	assert.Equal(t, "doc-002.pdf", outcomes[2].Value)
}

func TestNewParallelProcessor_Bounds(t *testing.T) {
	assert.Positive(t, NewParallelProcessor(0, nil).Workers())
	assert.Equal(t, MaxWorkers, NewParallelProcessor(1000, nil).Workers())
}

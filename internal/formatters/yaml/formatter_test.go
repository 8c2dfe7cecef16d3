// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package yaml

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"charter-scan/internal/detector"
	"charter-scan/internal/formatters"
)

func TestFormatHits(t *testing.T) {
	var buf bytes.Buffer
	hits := []detector.Hit{{File: "a.pdf", Page: 2, Category: "Control", Keyword: "oversight", Snippet: "board oversight"}}
	require.NoError(t, NewFormatter().FormatHits(&buf, hits, formatters.FormatterOptions{}))

	assert.Contains(t, buf.String(), "keyword: oversight")

	var decoded []detector.Hit
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, hits, decoded)
}

func TestFormatSummaries(t *testing.T) {
	members := 7
	var buf bytes.Buffer
	summaries := []detector.DocumentSummary{{File: "a.pdf", MembersCount: &members, Orientation: "Control"}}
	require.NoError(t, NewFormatter().FormatSummaries(&buf, summaries, formatters.FormatterOptions{}))

	assert.Contains(t, buf.String(), "members_count_est: 7")
	assert.Contains(t, buf.String(), "orientation: Control")
}

func TestEmptyTables(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter().FormatHits(&buf, nil, formatters.FormatterOptions{}))
	require.NoError(t, NewFormatter().FormatSummaries(&buf, nil, formatters.FormatterOptions{}))
	assert.Equal(t, "[]\n[]\n", buf.String())
}

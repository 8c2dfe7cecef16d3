// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package json

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"charter-scan/internal/detector"
	"charter-scan/internal/formatters"
)

func TestFormatHits(t *testing.T) {
	var buf bytes.Buffer
	hits := []detector.Hit{{File: "a.pdf", Page: 1, Category: "Collaboration", Keyword: "r&d", Snippet: "<R&D>"}}
	require.NoError(t, NewFormatter().FormatHits(&buf, hits, formatters.FormatterOptions{}))

	assert.Contains(t, buf.String(), `"snippet": "<R&D>"`)

	var decoded []detector.Hit
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, hits, decoded)
}

func TestFormatHits_EmptyIsArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter().FormatHits(&buf, nil, formatters.FormatterOptions{}))
	assert.Equal(t, "[]\n", buf.String())
}

func TestFormatSummaries_NullMembersAndEmptyLists(t *testing.T) {
	var buf bytes.Buffer
	summaries := []detector.DocumentSummary{{File: "a.pdf", Orientation: "No keywords"}}
	require.NoError(t, NewFormatter().FormatSummaries(&buf, summaries, formatters.FormatterOptions{}))

	out := buf.String()
	assert.Contains(t, out, `"members_count_est": null`)
	assert.Contains(t, out, `"expertise_tags": []`)
	assert.Contains(t, out, `"authorities": []`)
	// the caller's rows are untouched
	assert.Nil(t, summaries[0].ExpertiseTags)
}

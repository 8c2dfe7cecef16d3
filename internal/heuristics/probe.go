// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package heuristics

import (
	"regexp"
	"strings"
)

// probeInfo carries the identity shared by every built-in probe
type probeInfo struct {
	name        string
	capability  Capability
	description string
}

func (p probeInfo) Name() string           { return p.name }
func (p probeInfo) Capability() Capability { return p.capability }
func (p probeInfo) Description() string    { return p.description }

// firstSubmatch returns the first capture group of the first pattern that
// matches text.
func firstSubmatch(text string, patterns []*regexp.Regexp) (string, bool) {
	for _, re := range patterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// firstMatch returns the whole match of the first pattern that matches text
func firstMatch(text string, patterns []*regexp.Regexp) string {
	for _, re := range patterns {
		if m := re.FindString(text); m != "" {
			return m
		}
	}
	return ""
}

// wholeWordPattern compiles a case-insensitive whole-word matcher for term
func wholeWordPattern(terms ...string) *regexp.Regexp {
	quoted := make([]string, len(terms))
	for i, t := range terms {
		quoted[i] = regexp.QuoteMeta(t)
	}
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)
}

// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package heuristics

import (
	"regexp"
	"strconv"
)

var listItemPattern = regexp.MustCompile(`(?m)^\s*(?:\d+[.)]|[•\-*])\s+`)

// ListItemsProbe estimates the number of enumerated duties by counting lines
// that start with a numeric or bullet marker.
type ListItemsProbe struct {
	probeInfo
}

func NewListItemsProbe() *ListItemsProbe {
	return &ListItemsProbe{probeInfo{
		name:        "list_items",
		capability:  CapabilityStructure,
		description: "Lines starting with a list marker (1. 1) • - *)",
	}}
}

func (p *ListItemsProbe) Apply(text string, md *Metadata) {
	md.ListItems = len(listItemPattern.FindAllStringIndex(text, -1))
}

// Member-count phrasings in priority order
var membersPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)consist(?:s|ing)? of\s+(\d{1,3})\s+members`),
	regexp.MustCompile(`(?i)composed of\s+(\d{1,3})\s+members`),
	regexp.MustCompile(`(?i)(\d{1,3})\s+members\b`),
	regexp.MustCompile(`(?i)(\d{1,3})\s+member(?:s)?\b`),
}

// MembersProbe finds the stated committee size
type MembersProbe struct {
	probeInfo
}

func NewMembersProbe() *MembersProbe {
	return &MembersProbe{probeInfo{
		name:        "members",
		capability:  CapabilityMembership,
		description: `"consists of N members", "composed of N members", "N members"`,
	}}
}

func (p *MembersProbe) Apply(text string, md *Metadata) {
	digits, ok := firstSubmatch(text, membersPatterns)
	if !ok {
		return
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return
	}
	md.MembersCount = &n
}

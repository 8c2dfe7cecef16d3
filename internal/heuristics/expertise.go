// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package heuristics

import "regexp"

type expertiseGroup struct {
	tag     string
	pattern *regexp.Regexp
}

var expertiseGroups = []expertiseGroup{
	{"scientific", regexp.MustCompile(`(?i)\b(?:scientif\w*|scientists?)\b`)},
	{"technological", regexp.MustCompile(`(?i)\b(?:technolog\w*|technical|engineer\w*)\b`)},
	{"legal", regexp.MustCompile(`(?i)\b(?:legal|laws?|counsel\w*|attorneys?)\b`)},
	{"financial", regexp.MustCompile(`(?i)\b(?:financ\w*|accounting|audit\w*)\b`)},
}

// ExpertiseProbe tags the expertise areas a charter mentions
type ExpertiseProbe struct {
	probeInfo
}

func NewExpertiseProbe() *ExpertiseProbe {
	return &ExpertiseProbe{probeInfo{
		name:        "expertise",
		capability:  CapabilityExpertise,
		description: "scientific, technological, legal, financial",
	}}
}

func (p *ExpertiseProbe) Apply(text string, md *Metadata) {
	for _, g := range expertiseGroups {
		if g.pattern.MatchString(text) {
			md.ExpertiseTags = append(md.ExpertiseTags, g.tag)
		}
	}
}

// ExecutiveParticipationProbe reports whether an executive title appears
type ExecutiveParticipationProbe struct {
	probeInfo
	pattern *regexp.Regexp
}

func NewExecutiveParticipationProbe(titles []string) *ExecutiveParticipationProbe {
	p := &ExecutiveParticipationProbe{probeInfo: probeInfo{
		name:        "executive_participation",
		capability:  CapabilityExecutive,
		description: "CEO, CTO, CIO, COO or their full titles as whole words",
	}}
	if len(titles) > 0 {
		p.pattern = wholeWordPattern(titles...)
	}
	return p
}

func (p *ExecutiveParticipationProbe) Apply(text string, md *Metadata) {
	md.CEOParticipation = p.pattern != nil && p.pattern.MatchString(text)
}

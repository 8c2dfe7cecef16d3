// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package heuristics

import (
	"fmt"
	"regexp"
)

var timesPerYearPattern = regexp.MustCompile(`(?i)meet(?:s|ing)?\s+(?:approximately\s+)?(\d{1,2})\s+times\s+per\s+year`)

// MeetingFrequencyProbe reports the first cadence term found, in vocabulary
// order, falling back to an explicit "N times per year" statement.
type MeetingFrequencyProbe struct {
	probeInfo
	terms    []string
	patterns []*regexp.Regexp
}

func NewMeetingFrequencyProbe(terms []string) *MeetingFrequencyProbe {
	p := &MeetingFrequencyProbe{
		probeInfo: probeInfo{
			name:        "meeting_frequency",
			capability:  CapabilityCadence,
			description: `Cadence term (monthly, quarterly, ...) or "meets N times per year"`,
		},
		terms: terms,
	}
	for _, term := range terms {
		p.patterns = append(p.patterns, wholeWordPattern(term))
	}
	return p
}

func (p *MeetingFrequencyProbe) Apply(text string, md *Metadata) {
	for i, re := range p.patterns {
		if re.MatchString(text) {
			md.MeetingFrequency = p.terms[i]
			return
		}
	}
	if m := timesPerYearPattern.FindStringSubmatch(text); m != nil {
		md.MeetingFrequency = fmt.Sprintf("%s times/year", m[1])
	}
}

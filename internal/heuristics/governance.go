// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package heuristics

import (
	"regexp"
	"strings"
)

// The verb is matched case-insensitively; the body it reports to must be a
// capitalised phrase.
var reportingLinePattern = regexp.MustCompile(`(?i:reports? to )(?:(?i:the) )?([A-Z][A-Za-z &-]{2,100})`)

// ReportingLineProbe captures the body the committee reports to
type ReportingLineProbe struct {
	probeInfo
}

func NewReportingLineProbe() *ReportingLineProbe {
	return &ReportingLineProbe{probeInfo{
		name:        "reporting_line",
		capability:  CapabilityGovernance,
		description: `"reports to (the) <Capitalized phrase>"`,
	}}
}

func (p *ReportingLineProbe) Apply(text string, md *Metadata) {
	if m := reportingLinePattern.FindStringSubmatch(text); m != nil {
		md.ReportingLine = strings.TrimSpace(m[1])
	}
}

// Authority tags
const (
	AuthorityHireExperts     = "authority_to_hire_external_experts"
	AuthorityApproveBudgets  = "authority_to_approve_budgets"
	AuthorityApproveProjects = "authority_to_approve_projects"
)

type authorityCheck struct {
	tag     string
	pattern *regexp.Regexp
}

// Checks apply within a single line
var authorityChecks = []authorityCheck{
	{AuthorityHireExperts, regexp.MustCompile(`(?i)\b(?:hire|retain|engage)\b.*\b(?:consultant|expert|advisor|external)`)},
	{AuthorityApproveBudgets, regexp.MustCompile(`(?i)\b(?:approve|authorize)\b.*\bbudget`)},
	{AuthorityApproveProjects, regexp.MustCompile(`(?i)\b(?:approve|authorize)\b.*\b(?:projects|programs|spending)`)},
}

// AuthoritiesProbe flags the powers a charter grants the committee
type AuthoritiesProbe struct {
	probeInfo
}

func NewAuthoritiesProbe() *AuthoritiesProbe {
	return &AuthoritiesProbe{probeInfo{
		name:        "authorities",
		capability:  CapabilityAuthority,
		description: "Hire external experts, approve budgets, approve projects",
	}}
}

func (p *AuthoritiesProbe) Apply(text string, md *Metadata) {
	for _, check := range authorityChecks {
		if check.pattern.MatchString(text) {
			md.Authorities = append(md.Authorities, check.tag)
		}
	}
}

var selfEvaluationPattern = regexp.MustCompile(`(?i)self[- ]?evaluation|evaluation of the committee|committee evaluation`)

// SelfEvaluationProbe detects a periodic committee self-assessment clause
type SelfEvaluationProbe struct {
	probeInfo
}

func NewSelfEvaluationProbe() *SelfEvaluationProbe {
	return &SelfEvaluationProbe{probeInfo{
		name:        "self_evaluation",
		capability:  CapabilityEvaluation,
		description: `"self-evaluation", "evaluation of the committee", "committee evaluation"`,
	}}
}

func (p *SelfEvaluationProbe) Apply(text string, md *Metadata) {
	md.SelfEvaluation = selfEvaluationPattern.MatchString(text)
}

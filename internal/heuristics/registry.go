// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package heuristics derives structured charter facts from full document text
// through independent pattern probes.
package heuristics

import (
	"fmt"
	"sync"

	"charter-scan/internal/taxonomy"
)

// Capability tags what kind of fact a probe derives
type Capability string

const (
	CapabilityStructure  Capability = "structure"
	CapabilityMembership Capability = "membership"
	CapabilityCadence    Capability = "cadence"
	CapabilityGovernance Capability = "governance"
	CapabilityDating     Capability = "dating"
	CapabilityAuthority  Capability = "authority"
	CapabilityExpertise  Capability = "expertise"
	CapabilityExecutive  Capability = "executive"
	CapabilityEvaluation Capability = "evaluation"
)

// Metadata holds every fact the probes can derive. Zero values mean the
// probe found nothing.
type Metadata struct {
	ListItems        int
	MembersCount     *int
	MeetingFrequency string
	ReportingLine    string
	LastReviewDate   string
	Authorities      []string
	ExpertiseTags    []string
	CEOParticipation bool
	SelfEvaluation   bool
}

// Probe derives one field of Metadata. Apply must only write its own field
// and must never fail; a non-match leaves the zero value.
type Probe interface {
	Name() string
	Capability() Capability
	Description() string
	Apply(text string, md *Metadata)
}

// Registry holds probes in registration order
type Registry struct {
	probes map[string]Probe
	order  []string
	mu     sync.RWMutex
}

// NewRegistry creates an empty probe registry
func NewRegistry() *Registry {
	return &Registry{
		probes: make(map[string]Probe),
	}
}

// Register adds a probe; names must be unique
func (r *Registry) Register(p Probe) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.probes[p.Name()]; exists {
		return fmt.Errorf("probe %q already registered", p.Name())
	}
	r.probes[p.Name()] = p
	r.order = append(r.order, p.Name())
	return nil
}

// Remove drops a probe by name and reports whether it was present
func (r *Registry) Remove(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.probes[name]; !exists {
		return false
	}
	delete(r.probes, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// Get returns a probe by name
func (r *Registry) Get(name string) (Probe, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.probes[name]
	return p, ok
}

// List returns the probes in registration order
func (r *Registry) List() []Probe {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Probe, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.probes[name])
	}
	return out
}

// ByCapability returns the registered probes carrying capability c
func (r *Registry) ByCapability(c Capability) []Probe {
	var out []Probe
	for _, p := range r.List() {
		if p.Capability() == c {
			out = append(out, p)
		}
	}
	return out
}

// NewDefaultRegistry registers the built-in charter probes. Vocabulary driven
// probes take their term lists from tax.
func NewDefaultRegistry(tax *taxonomy.Taxonomy) *Registry {
	r := NewRegistry()
	for _, p := range []Probe{
		NewListItemsProbe(),
		NewMembersProbe(),
		NewMeetingFrequencyProbe(tax.MeetingFrequencyTerms()),
		NewReportingLineProbe(),
		NewLastReviewDateProbe(),
		NewAuthoritiesProbe(),
		NewExpertiseProbe(),
		NewExecutiveParticipationProbe(tax.ExecutiveTitles()),
		NewSelfEvaluationProbe(),
	} {
		// names are fixed and distinct
		_ = r.Register(p)
	}
	return r
}

// Extractor runs every probe of a registry over a document's text
type Extractor struct {
	registry *Registry
}

// NewExtractor creates an extractor over registry
func NewExtractor(registry *Registry) *Extractor {
	return &Extractor{registry: registry}
}

// Extract runs the probes in registration order
func (e *Extractor) Extract(text string) Metadata {
	var md Metadata
	for _, p := range e.registry.List() {
		p.Apply(text, &md)
	}
	return md
}

// Registry returns the underlying probe registry
func (e *Extractor) Registry() *Registry {
	return e.registry
}

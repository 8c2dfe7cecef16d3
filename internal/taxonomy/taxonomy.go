// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package taxonomy

import (
	"fmt"
	"strings"
)

// Category names for the two orientation axes and the generic fallback used
// when a matched term has no function category.
const (
	CategoryControl       = "Control"
	CategoryCollaboration = "Collaboration"
	CategoryFunction      = "Function"
)

// Kind identifies which axis a resolved term counts toward
type Kind int

const (
	KindControl Kind = iota
	KindCollaboration
	KindFunction
)

// Category is a named function-category keyword set
type Category struct {
	Name  string   `yaml:"name"`
	Terms []string `yaml:"terms"`
}

// Taxonomy is the immutable keyword configuration shared by the scanner and
// the heuristic probes. Construct it with New (or Default / LoadFile) and pass
// it by pointer; nothing mutates it after construction.
type Taxonomy struct {
	control               []string
	collaboration         []string
	functionCategories    []Category
	meetingFrequencyTerms []string
	executiveTitles       []string

	controlSet       map[string]struct{}
	collabSet        map[string]struct{}
	functionIndex    map[string]string
	categoryPosition map[string]int
	searchUniverse   []string
}

// Spec is the plain-data description a Taxonomy is built from. It is also the
// YAML document shape accepted by LoadFile.
type Spec struct {
	Control               []string   `yaml:"control"`
	Collaboration         []string   `yaml:"collaboration"`
	FunctionCategories    []Category `yaml:"function_categories"`
	MeetingFrequencyTerms []string   `yaml:"meeting_frequency_terms"`
	ExecutiveTitles       []string   `yaml:"executive_titles"`
}

// New validates spec and derives the lookup structures
func New(spec Spec) (*Taxonomy, error) {
	if len(spec.Control) == 0 && len(spec.Collaboration) == 0 && len(spec.FunctionCategories) == 0 {
		return nil, fmt.Errorf("taxonomy has no terms")
	}

	t := &Taxonomy{
		control:               normalizeTerms(spec.Control),
		collaboration:         normalizeTerms(spec.Collaboration),
		meetingFrequencyTerms: normalizeTerms(spec.MeetingFrequencyTerms),
		executiveTitles:       normalizeTerms(spec.ExecutiveTitles),
		controlSet:            make(map[string]struct{}),
		collabSet:             make(map[string]struct{}),
		functionIndex:         make(map[string]string),
		categoryPosition:      make(map[string]int),
	}

	for i, cat := range spec.FunctionCategories {
		name := strings.TrimSpace(cat.Name)
		if name == "" {
			return nil, fmt.Errorf("function category %d has no name", i+1)
		}
		if name == CategoryControl || name == CategoryCollaboration || name == CategoryFunction {
			return nil, fmt.Errorf("function category name %q is reserved", name)
		}
		if _, dup := t.categoryPosition[name]; dup {
			return nil, fmt.Errorf("duplicate function category %q", name)
		}
		t.categoryPosition[name] = i
		t.functionCategories = append(t.functionCategories, Category{Name: name, Terms: normalizeTerms(cat.Terms)})
	}

	seen := make(map[string]struct{})
	addToUniverse := func(term string) {
		if _, ok := seen[term]; ok {
			return
		}
		seen[term] = struct{}{}
		t.searchUniverse = append(t.searchUniverse, term)
	}

	for _, term := range t.control {
		t.controlSet[term] = struct{}{}
		addToUniverse(term)
	}
	for _, term := range t.collaboration {
		t.collabSet[term] = struct{}{}
		addToUniverse(term)
	}
	for _, cat := range t.functionCategories {
		for _, term := range cat.Terms {
			// first declaring category wins
			if _, ok := t.functionIndex[term]; !ok {
				t.functionIndex[term] = cat.Name
			}
			addToUniverse(term)
		}
	}

	return t, nil
}

// MustNew is New for static data; it panics on an invalid spec
func MustNew(spec Spec) *Taxonomy {
	t, err := New(spec)
	if err != nil {
		panic(err)
	}
	return t
}

// normalizeTerms lowercases and trims terms, dropping empties and duplicates
// while keeping declaration order.
func normalizeTerms(terms []string) []string {
	out := make([]string, 0, len(terms))
	seen := make(map[string]struct{}, len(terms))
	for _, term := range terms {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" {
			continue
		}
		if _, ok := seen[term]; ok {
			continue
		}
		seen[term] = struct{}{}
		out = append(out, term)
	}
	return out
}

// Resolve returns the category a matched term counts toward.
// Precedence is Control, then Collaboration, then the first function category
// declaring the term, then the generic Function fallback.
func (t *Taxonomy) Resolve(term string) (string, Kind) {
	term = strings.ToLower(term)
	if _, ok := t.controlSet[term]; ok {
		return CategoryControl, KindControl
	}
	if _, ok := t.collabSet[term]; ok {
		return CategoryCollaboration, KindCollaboration
	}
	if cat, ok := t.functionIndex[term]; ok {
		return cat, KindFunction
	}
	return CategoryFunction, KindFunction
}

// SearchUniverse returns the deduplicated scan vocabulary in declaration order
func (t *Taxonomy) SearchUniverse() []string {
	return append([]string(nil), t.searchUniverse...)
}

// FunctionIndex returns the term to function-category mapping
func (t *Taxonomy) FunctionIndex() map[string]string {
	out := make(map[string]string, len(t.functionIndex))
	for k, v := range t.functionIndex {
		out[k] = v
	}
	return out
}

// Control returns the Control terms
func (t *Taxonomy) Control() []string { return append([]string(nil), t.control...) }

// Collaboration returns the Collaboration terms
func (t *Taxonomy) Collaboration() []string { return append([]string(nil), t.collaboration...) }

// FunctionCategories returns the function categories in declaration order
func (t *Taxonomy) FunctionCategories() []Category {
	out := make([]Category, len(t.functionCategories))
	for i, cat := range t.functionCategories {
		out[i] = Category{Name: cat.Name, Terms: append([]string(nil), cat.Terms...)}
	}
	return out
}

// CategoryNames returns the function-category names in declaration order
func (t *Taxonomy) CategoryNames() []string {
	names := make([]string, len(t.functionCategories))
	for i, cat := range t.functionCategories {
		names[i] = cat.Name
	}
	return names
}

// CategoryPosition reports the declaration index of a function category.
// Unknown categories (including the Function fallback) sort after every
// declared one.
func (t *Taxonomy) CategoryPosition(name string) int {
	if pos, ok := t.categoryPosition[name]; ok {
		return pos
	}
	return len(t.functionCategories)
}

// MeetingFrequencyTerms returns the cadence vocabulary in priority order
func (t *Taxonomy) MeetingFrequencyTerms() []string {
	return append([]string(nil), t.meetingFrequencyTerms...)
}

// ExecutiveTitles returns the executive title vocabulary
func (t *Taxonomy) ExecutiveTitles() []string {
	return append([]string(nil), t.executiveTitles...)
}

// Spec returns the plain-data form of the taxonomy
func (t *Taxonomy) Spec() Spec {
	return Spec{
		Control:               t.Control(),
		Collaboration:         t.Collaboration(),
		FunctionCategories:    t.FunctionCategories(),
		MeetingFrequencyTerms: t.MeetingFrequencyTerms(),
		ExecutiveTitles:       t.ExecutiveTitles(),
	}
}

// ShadowedTerm is a function-category term that never counts toward its
// category because an orientation axis claims it first.
type ShadowedTerm struct {
	Term       string
	Category   string
	ShadowedBy string
}

// ShadowedTerms lists function-category terms overridden by the Control or
// Collaboration axis under the precedence rule.
func (t *Taxonomy) ShadowedTerms() []ShadowedTerm {
	var out []ShadowedTerm
	for _, cat := range t.functionCategories {
		for _, term := range cat.Terms {
			resolved, kind := t.Resolve(term)
			if kind != KindFunction {
				out = append(out, ShadowedTerm{Term: term, Category: cat.Name, ShadowedBy: resolved})
			}
		}
	}
	return out
}

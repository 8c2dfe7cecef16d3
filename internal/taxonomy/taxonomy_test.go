// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package taxonomy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_CategoryOrder(t *testing.T) {
	tax := Default()
	assert.Equal(t, []string{
		CategoryRnDStrategy,
		CategoryLegalRisk,
		CategoryProduct,
		CategorySustainable,
		CategoryPartnerships,
	}, tax.CategoryNames())
}

func TestResolve_Precedence(t *testing.T) {
	tax := Default()

	cases := []struct {
		term     string
		category string
		kind     Kind
	}{
		{"risk management", CategoryControl, KindControl},
		{"compliance", CategoryControl, KindControl},
		{"assessment", CategoryControl, KindControl},
		{"partnership", CategoryCollaboration, KindCollaboration},
		{"collaboration", CategoryCollaboration, KindCollaboration},
		{"audit", CategoryLegalRisk, KindFunction},
		{"R&D", CategoryRnDStrategy, KindFunction},
		{"climate", CategorySustainable, KindFunction},
		{"not-a-term", CategoryFunction, KindFunction},
	}

	for _, tc := range cases {
		t.Run(tc.term, func(t *testing.T) {
			category, kind := tax.Resolve(tc.term)
			assert.Equal(t, tc.category, category)
			assert.Equal(t, tc.kind, kind)
		})
	}
}

func TestSearchUniverse_DeduplicatedInDeclarationOrder(t *testing.T) {
	tax := Default()
	universe := tax.SearchUniverse()

	seen := make(map[string]int)
	for i, term := range universe {
		_, dup := seen[term]
		require.False(t, dup, "term %q appears twice", term)
		seen[term] = i
	}

	assert.Equal(t, "oversight", universe[0])
	// control terms come before collaboration terms
	assert.Less(t, seen["supervision"], seen["advise"])
	// "compliance" keeps its Control slot and is not repeated for Legal/Compliance/Risk
	assert.Less(t, seen["compliance"], seen["advise"])
	assert.Contains(t, seen, "network")
}

func TestFunctionIndex_FirstCategoryWins(t *testing.T) {
	tax, err := New(Spec{
		FunctionCategories: []Category{
			{Name: "First", Terms: []string{"shared"}},
			{Name: "Second", Terms: []string{"shared", "only-second"}},
		},
	})
	require.NoError(t, err)

	index := tax.FunctionIndex()
	assert.Equal(t, "First", index["shared"])
	assert.Equal(t, "Second", index["only-second"])
	assert.Equal(t, 0, tax.CategoryPosition("First"))
	assert.Equal(t, 2, tax.CategoryPosition(CategoryFunction))
}

func TestNew_RejectsInvalidSpecs(t *testing.T) {
	_, err := New(Spec{})
	assert.Error(t, err)

	_, err = New(Spec{FunctionCategories: []Category{{Name: " ", Terms: []string{"x"}}}})
	assert.Error(t, err)

	_, err = New(Spec{FunctionCategories: []Category{{Name: "Control", Terms: []string{"x"}}}})
	assert.Error(t, err)

	_, err = New(Spec{FunctionCategories: []Category{
		{Name: "A", Terms: []string{"x"}},
		{Name: "A", Terms: []string{"y"}},
	}})
	assert.Error(t, err)
}

func TestNew_NormalizesTerms(t *testing.T) {
	tax, err := New(Spec{Control: []string{"  Oversight ", "oversight", "", "RISK"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"oversight", "risk"}, tax.Control())
}

func TestShadowedTerms(t *testing.T) {
	shadowed := Default().ShadowedTerms()

	byTerm := make(map[string]ShadowedTerm)
	for _, s := range shadowed {
		byTerm[s.Term+"/"+s.Category] = s
	}

	s, ok := byTerm["risk management/"+CategoryLegalRisk]
	require.True(t, ok)
	assert.Equal(t, CategoryControl, s.ShadowedBy)

	s, ok = byTerm["partnership/"+CategoryPartnerships]
	require.True(t, ok)
	assert.Equal(t, CategoryCollaboration, s.ShadowedBy)

	_, ok = byTerm["audit/"+CategoryLegalRisk]
	assert.False(t, ok)
}

func TestDefault_ReturnsIndependentCopies(t *testing.T) {
	a := Default()
	b := Default()

	control := a.Control()
	control[0] = "mutated"
	assert.Equal(t, "oversight", a.Control()[0])
	assert.Equal(t, "oversight", b.Control()[0])
}

func TestLoadFile_RoundTrip(t *testing.T) {
	data, err := Marshal(Default())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "taxonomy.yaml")
	require.NoError(t, os.WriteFile(path, data, 0600))

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Default().Spec(), loaded.Spec())
}

func TestParse_FillsAuxiliaryDefaults(t *testing.T) {
	tax, err := Parse([]byte(`
control: [oversight]
collaboration: [advise]
function_categories:
  - name: Custom
    terms: [widget]
`))
	require.NoError(t, err)

	assert.Equal(t, []string{"Custom"}, tax.CategoryNames())
	assert.Equal(t, DefaultSpec().MeetingFrequencyTerms, tax.MeetingFrequencyTerms())
	assert.Equal(t, DefaultSpec().ExecutiveTitles, tax.ExecutiveTitles())
}

func TestParse_UnknownFieldRejected(t *testing.T) {
	_, err := Parse([]byte("controls: [oversight]\n"))
	assert.Error(t, err)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

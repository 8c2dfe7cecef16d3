// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package taxonomy

// Function category names of the default taxonomy
const (
	CategoryRnDStrategy  = "R&D Strategy"
	CategoryLegalRisk    = "Legal/Compliance/Risk"
	CategoryProduct      = "Product/Project-Specific"
	CategorySustainable  = "Sustainability/Ethics"
	CategoryPartnerships = "Partnerships/External Collaboration"
)

// DefaultSpec returns the built-in charter taxonomy
func DefaultSpec() Spec {
	return Spec{
		Control: []string{
			"oversight", "monitor", "monitoring", "compliance", "ensure compliance",
			"review performance", "review progress", "risk", "risk management", "risk oversight",
			"accountability", "hold management accountable", "evaluate", "assessment",
			"integrity", "independence", "objectivity", "internal control", "control system",
			"adherence", "ensure alignment", "governance", "supervision",
		},
		Collaboration: []string{
			"advise", "advisory", "advisory role", "support", "assist", "help management",
			"guide", "guidance", "strategic direction", "strategic input", "collaboration",
			"partnership", "facilitate", "communication", "coordination", "consult", "counsel",
			"recommend", "propose", "provide input", "expertise", "insight", "best practices",
			"joint", "shared responsibility", "enable", "foster innovation", "enable innovation",
		},
		FunctionCategories: []Category{
			{
				Name: CategoryRnDStrategy,
				Terms: []string{
					"r&d", "research and development", "innovation", "innovative capability",
					"technology strategy", "technology roadmap", "product development", "pipeline",
					"portfolio review", "portfolio optimization", "emerging technologies", "digital transformation",
					"competitiveness", "technological leadership", "investment in r&d", "funding",
					"long-term growth",
				},
			},
			{
				Name: CategoryLegalRisk,
				Terms: []string{
					"compliance", "regulatory", "legal", "laws", "regulation", "standards",
					"ethics", "ethical conduct", "risk management", "risk oversight", "risk mitigation",
					"audit", "review", "assessment", "health & safety", "product safety",
					"data protection", "data privacy", "cybersecurity", "intellectual property", "patent", "ip protection",
					"reporting", "disclosure", "transparency", "liability", "lawsuit", "prevent",
				},
			},
			{
				Name: CategoryProduct,
				Terms: []string{
					"development", "project", "program", "initiative", "product", "drug", "compound",
					"device", "clinical trial", "study", "testing", "preclinical", "phase",
					"regulatory submission", "fda", "ema", "approval process", "milestone",
					"launch", "go-to-market", "commercialization", "research progress", "experimental result",
				},
			},
			{
				Name: CategorySustainable,
				Terms: []string{
					"sustainability", "sustainable technology", "esg", "responsible innovation", "ethical ai",
					"social responsibility", "public impact", "environment", "carbon", "climate",
					"green innovation", "ethical standards", "human rights",
				},
			},
			{
				Name: CategoryPartnerships,
				Terms: []string{
					"partnership", "collaboration", "alliance", "university", "academia", "research institute",
					"joint venture", "consortium", "cooperation", "open innovation", "external engagement",
					"licensing", "technology transfer", "joint research", "stakeholder", "ecosystem", "network",
				},
			},
		},
		MeetingFrequencyTerms: []string{
			"monthly", "quarterly", "annually", "annual", "biannually", "semi-annually",
			"weekly", "as needed", "ad hoc", "bi-monthly",
		},
		ExecutiveTitles: []string{
			"ceo", "chief executive officer", "cto", "cio", "coo",
			"chief technology officer", "chief information officer", "chief operating officer",
		},
	}
}

// Default returns a freshly built copy of the built-in taxonomy
func Default() *Taxonomy {
	return MustNew(DefaultSpec())
}

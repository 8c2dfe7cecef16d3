// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package orientation classifies a document by comparing its Control and
// Collaboration keyword tallies.
package orientation

// Label is a document orientation
type Label string

const (
	Control       Label = "Control"
	Collaboration Label = "Collaboration"
	MixedEqual    Label = "Mixed/Equal"
	NoKeywords    Label = "no_orientation_keywords"

	// NoTextExtracted marks documents that produced no usable text. Classify
	// never returns it.
	NoTextExtracted Label = "no_text_extracted"
)

// Classify returns the orientation for the given tallies
func Classify(control, collab int) Label {
	switch {
	case control == 0 && collab == 0:
		return NoKeywords
	case control > collab:
		return Control
	case collab > control:
		return Collaboration
	default:
		return MixedEqual
	}
}

// All lists every label in reporting order
func All() []Label {
	return []Label{Control, Collaboration, MixedEqual, NoKeywords, NoTextExtracted}
}

func (l Label) String() string { return string(l) }

// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package taxonomy

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadFile reads a taxonomy override from a YAML file.
// Auxiliary vocabularies left out of the file fall back to the built-in lists.
func LoadFile(path string) (*Taxonomy, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("error reading taxonomy file: %w", err)
	}

	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("error parsing taxonomy file %s: %w", path, err)
	}
	return t, nil
}

// Parse builds a taxonomy from YAML bytes
func Parse(data []byte) (*Taxonomy, error) {
	var spec Spec
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&spec); err != nil {
		return nil, err
	}

	defaults := DefaultSpec()
	if spec.MeetingFrequencyTerms == nil {
		spec.MeetingFrequencyTerms = defaults.MeetingFrequencyTerms
	}
	if spec.ExecutiveTitles == nil {
		spec.ExecutiveTitles = defaults.ExecutiveTitles
	}

	return New(spec)
}

// Marshal renders the taxonomy as YAML in the format accepted by Parse
func Marshal(t *Taxonomy) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(t.Spec()); err != nil {
		return nil, fmt.Errorf("error encoding taxonomy: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

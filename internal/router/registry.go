// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package router

import (
	"charter-scan/internal/preprocessors"
)

// Config carries the extractor settings factories read
type Config struct {
	PDFEnabled       bool
	PDF              preprocessors.PDFOptions
	PlainTextEnabled bool
	NormalizeUnicode bool
}

// DefaultConfig enables PDF extraction only
func DefaultConfig() Config {
	return Config{
		PDFEnabled:       true,
		PDF:              preprocessors.DefaultPDFOptions(),
		NormalizeUnicode: true,
	}
}

// ExtractorFactory creates an extractor for the given configuration, or nil
// when the extractor is disabled
type ExtractorFactory func(config Config) preprocessors.Extractor

// ExtractorRegistry manages extractor registration and creation
type ExtractorRegistry struct {
	factories map[string]ExtractorFactory
	order     []string
}

// NewExtractorRegistry creates a new extractor registry
func NewExtractorRegistry() *ExtractorRegistry {
	return &ExtractorRegistry{
		factories: make(map[string]ExtractorFactory),
	}
}

// Register adds an extractor factory; re-registering a name replaces it
func (r *ExtractorRegistry) Register(name string, factory ExtractorFactory) {
	if _, exists := r.factories[name]; !exists {
		r.order = append(r.order, name)
	}
	r.factories[name] = factory
}

// Create creates an extractor instance by name with configuration
func (r *ExtractorRegistry) Create(name string, config Config) preprocessors.Extractor {
	if factory, exists := r.factories[name]; exists {
		return factory(config)
	}
	return nil
}

// GetRegisteredNames returns all registered extractor names in registration order
func (r *ExtractorRegistry) GetRegisteredNames() []string {
	return append([]string(nil), r.order...)
}

// CreateAll creates every enabled extractor in registration order
func (r *ExtractorRegistry) CreateAll(config Config) []preprocessors.Extractor {
	var extractors []preprocessors.Extractor
	for _, name := range r.order {
		if e := r.Create(name, config); e != nil {
			extractors = append(extractors, e)
		}
	}
	return extractors
}

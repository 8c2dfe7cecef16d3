// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package formatters

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"charter-scan/internal/detector"
)

// FormatterOptions defines configuration options for formatters
type FormatterOptions struct {
	NoColor          bool // Whether to disable colored output
	SanitizeFormulas bool // Whether to neutralise spreadsheet formula prefixes
}

// Formatter interface defines methods that all output formatters must implement.
// Both tables are written with their rows in the order given.
type Formatter interface {
	// FormatHits writes the keyword hit table
	FormatHits(w io.Writer, hits []detector.Hit, options FormatterOptions) error

	// FormatSummaries writes the per-document summary table
	FormatSummaries(w io.Writer, summaries []detector.DocumentSummary, options FormatterOptions) error

	// Name returns the name of the formatter (e.g., "json", "text", "csv")
	Name() string

	// Description returns a brief description of what this formatter outputs
	Description() string

	// FileExtension returns the recommended file extension for this format (e.g., ".json", ".txt", ".csv")
	FileExtension() string
}

// Registry holds all registered formatters
type Registry struct {
	formatters map[string]Formatter
}

// NewRegistry creates a new formatter registry
func NewRegistry() *Registry {
	return &Registry{
		formatters: make(map[string]Formatter),
	}
}

// Register adds a formatter to the registry
func (r *Registry) Register(formatter Formatter) {
	r.formatters[formatter.Name()] = formatter
}

// Get retrieves a formatter by name
func (r *Registry) Get(name string) (Formatter, bool) {
	formatter, exists := r.formatters[name]
	return formatter, exists
}

// List returns all registered formatter names, sorted
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.formatters))
	for name := range r.formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry is the global formatter registry
var DefaultRegistry = NewRegistry()

// Register is a convenience function to register a formatter with the default registry
func Register(formatter Formatter) {
	DefaultRegistry.Register(formatter)
}

// Get is a convenience function to get a formatter from the default registry
func Get(name string) (Formatter, bool) {
	return DefaultRegistry.Get(name)
}

// List is a convenience function to list all formatters in the default registry
func List() []string {
	return DefaultRegistry.List()
}

// Lookup returns the named formatter or an error listing the available ones
func Lookup(format string) (Formatter, error) {
	formatter, exists := Get(format)
	if !exists {
		return nil, fmt.Errorf("unsupported format '%s'. Available formats: %s", format, strings.Join(List(), ", "))
	}
	return formatter, nil
}

// OutputPaths names the destination of each table
type OutputPaths struct {
	Hits    string
	Summary string
}

// WriteTables writes both tables to their destination files.
// Parent directories are created as needed.
func WriteTables(formatter Formatter, paths OutputPaths, hits []detector.Hit, summaries []detector.DocumentSummary, options FormatterOptions) error {
	if err := writeFile(paths.Hits, func(w io.Writer) error {
		return formatter.FormatHits(w, hits, options)
	}); err != nil {
		return fmt.Errorf("failed to write hit table: %w", err)
	}
	if err := writeFile(paths.Summary, func(w io.Writer) error {
		return formatter.FormatSummaries(w, summaries, options)
	}); err != nil {
		return fmt.Errorf("failed to write summary table: %w", err)
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	path = filepath.Clean(path)
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return err
		}
	}

	// #nosec G304 - output path is chosen by the operator
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(f)
	if err := write(bw); err != nil {
		_ = f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

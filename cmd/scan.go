// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"charter-scan/internal/config"
	"charter-scan/internal/core"
	"charter-scan/internal/detector"
	"charter-scan/internal/formatters"
	"charter-scan/internal/observability"
	"charter-scan/internal/orientation"
	"charter-scan/internal/parallel"
	"charter-scan/internal/router"
	"charter-scan/internal/store"
)

// NewScanCmd creates the scan command
func NewScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [dir]",
		Short: "Scan a directory of charters and write the hit and summary tables",
		Long: `Scan every charter document in dir (default from the configuration,
./pdfs when unset) and write two tables: one row per keyword occurrence and
one summary row per document. Relative output paths resolve against dir.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runScan,
	}

	flags := cmd.Flags()
	flags.Int("context-chars", detector.DefaultContextChars, "Characters of context on each side of a hit")
	flags.Int("workers", config.DefaultWorkers, fmt.Sprintf("Documents processed in parallel (max %d)", parallel.MaxWorkers))
	flags.String("format", config.DefaultFormat, "Output format: "+strings.Join(formatters.List(), ", "))
	flags.String("hits-output", config.DefaultHitsOutput, "Keyword hit table path")
	flags.String("summary-output", config.DefaultSummaryOutput, "Document summary table path")
	flags.String("sqlite", "", "Also persist the run to this SQLite database")
	flags.Bool("recursive", false, "Scan subdirectories")
	flags.Bool("plaintext", false, "Also scan .txt and .md documents")
	flags.Bool("validate-pdf", false, "Validate PDFs strictly before extracting text")
	flags.Bool("sanitize-csv", false, "Neutralise spreadsheet formula prefixes in CSV output")

	return cmd
}

// applyScanFlags overlays the explicitly set scan flags onto cfg
func applyScanFlags(cmd *cobra.Command, args []string, cfg *config.Config) error {
	flags := cmd.Flags()
	d := &cfg.Defaults

	if len(args) == 1 {
		d.InputDir = args[0]
	}
	if flags.Changed("context-chars") {
		d.ContextChars, _ = flags.GetInt("context-chars")
	}
	if flags.Changed("workers") {
		d.Workers, _ = flags.GetInt("workers")
	}
	if flags.Changed("format") {
		d.Format, _ = flags.GetString("format")
	}
	if flags.Changed("hits-output") {
		d.HitsOutput, _ = flags.GetString("hits-output")
	}
	if flags.Changed("summary-output") {
		d.SummaryOutput, _ = flags.GetString("summary-output")
	}
	// default table names follow the chosen format
	if f, ok := formatters.Get(d.Format); ok {
		if d.HitsOutput == config.DefaultHitsOutput {
			d.HitsOutput = withExtension(d.HitsOutput, f.FileExtension())
		}
		if d.SummaryOutput == config.DefaultSummaryOutput {
			d.SummaryOutput = withExtension(d.SummaryOutput, f.FileExtension())
		}
	}
	if flags.Changed("sqlite") {
		cfg.SQLiteOutput, _ = flags.GetString("sqlite")
	}
	if flags.Changed("recursive") {
		d.Recursive, _ = flags.GetBool("recursive")
	}
	if flags.Changed("plaintext") {
		cfg.Preprocessors.PlainText.Enabled, _ = flags.GetBool("plaintext")
	}
	if flags.Changed("validate-pdf") {
		cfg.Preprocessors.PDF.Validate, _ = flags.GetBool("validate-pdf")
	}
	if flags.Changed("sanitize-csv") {
		d.SanitizeCSV, _ = flags.GetBool("sanitize-csv")
	}

	return config.ValidateConfig(cfg)
}

func withExtension(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfiguration(cmd)
	if err != nil {
		return err
	}
	if err := applyScanFlags(cmd, args, cfg); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	d := cfg.Defaults
	stderr := cmd.ErrOrStderr()
	observer := observability.New(stderr, d.Debug, d.Quiet)
	defer observer.Sync()

	tax, err := loadTaxonomy(cfg)
	if err != nil {
		return err
	}
	formatter, err := formatterFor(cfg)
	if err != nil {
		return err
	}

	fileRouter := router.NewFileRouter(observer)
	router.RegisterDefaultExtractors(fileRouter)
	fileRouter.InitializeExtractors(cfg.ExtractorConfig())

	outputs := cfg.OutputPaths()
	documents, err := fileRouter.ListDocuments(d.InputDir, d.Recursive)
	if err != nil {
		return err
	}
	documents = excludeOutputs(documents, outputs)

	interactive := isTerminal(os.Stderr)
	quietProgress := shouldSuppressProgressOutput(d.Debug, d.Quiet, interactive)
	if len(documents) == 0 && !d.Quiet {
		fmt.Fprintf(stderr, "No supported documents found in %s (extensions: %s)\n",
			d.InputDir, strings.Join(fileRouter.SupportedExtensions(), ", "))
	}

	scanConfig := core.ScanConfig{
		Paths:   documents,
		BaseDir: d.InputDir,
		Workers: d.Workers,
	}
	if !quietProgress {
		scanConfig.Progress = newProgressBar(stderr)
	}

	extractor := detector.NewContextExtractor().WithContextChars(d.ContextChars)
	runner := core.NewRunner(core.NewAggregator(tax, extractor), fileRouter, observer)

	startedAt := time.Now()
	result, runErr := runner.Run(ctx, scanConfig)

	if observer.DebugObserver != nil {
		for key, value := range fileRouter.GetMetrics().GetSummary() {
			observer.DebugObserver.LogMetric("router", key, value)
		}
	}

	// tables of an interrupted run still hold every finished document
	if err := formatters.WriteTables(formatter, outputs, result.Tables.Hits, result.Tables.Summaries, cfg.FormatterOptions()); err != nil {
		return err
	}

	if cfg.SQLiteOutput != "" {
		if err := saveRun(cfg.SQLiteOutput, result, startedAt); err != nil {
			return err
		}
	}

	if !d.Quiet {
		printRunSummary(cmd.OutOrStdout(), result, outputs, cfg)
	}

	return runErr
}

// excludeOutputs drops the tables of a previous run from the document list
func excludeOutputs(documents []string, outputs formatters.OutputPaths) []string {
	skip := make(map[string]bool)
	for _, p := range []string{outputs.Hits, outputs.Summary} {
		if abs, err := filepath.Abs(p); err == nil {
			skip[abs] = true
		}
	}

	kept := documents[:0:0]
	for _, doc := range documents {
		if abs, err := filepath.Abs(doc); err == nil && skip[abs] {
			continue
		}
		kept = append(kept, doc)
	}
	return kept
}

func saveRun(path string, result *core.ScanResult, startedAt time.Time) error {
	// persisted even when the scan context was cancelled
	ctx := context.Background()
	db, err := store.OpenSQLite(ctx, path)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.SaveRun(ctx, result.RunID, startedAt, result.Tables.Hits, result.Tables.Summaries); err != nil {
		return fmt.Errorf("failed to save run to %s: %w", path, err)
	}
	return nil
}

// printRunSummary writes the console report of a finished run
func printRunSummary(w io.Writer, result *core.ScanResult, outputs formatters.OutputPaths, cfg *config.Config) {
	stats := result.Tables.Stats()
	title := color.New(color.FgWhite, color.Bold)
	if cfg.Defaults.NoColor {
		title.DisableColor()
	}

	title.Fprintln(w, "Scan complete")
	fmt.Fprintf(w, "  Run ID:              %s\n", result.RunID)
	fmt.Fprintf(w, "  Documents processed: %d\n", stats.Documents)
	fmt.Fprintf(w, "  Degraded documents:  %d\n", stats.Degraded)
	fmt.Fprintf(w, "  Keyword hits:        %d\n", stats.TotalHits)
	if result.Stats != nil {
		fmt.Fprintf(w, "  Elapsed:             %s\n", result.Stats.TotalDuration.Round(time.Millisecond))
	}

	fmt.Fprintln(w, "  Orientation:")
	for _, label := range orientation.All() {
		fmt.Fprintf(w, "    %-20s %d\n", label.String(), stats.Orientations[label.String()])
	}

	fmt.Fprintf(w, "  Hit table:           %s\n", outputs.Hits)
	fmt.Fprintf(w, "  Summary table:       %s\n", outputs.Summary)
	if cfg.SQLiteOutput != "" {
		fmt.Fprintf(w, "  SQLite database:     %s\n", cfg.SQLiteOutput)
	}
}

// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"charter-scan/internal/config"
	"charter-scan/internal/formatters"
	_ "charter-scan/internal/formatters/csv"
	_ "charter-scan/internal/formatters/json"
	_ "charter-scan/internal/formatters/markdown"
	_ "charter-scan/internal/formatters/text"
	_ "charter-scan/internal/formatters/yaml"
	"charter-scan/internal/paths"
	"charter-scan/internal/taxonomy"
	"charter-scan/internal/version"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "charter-scan",
		Short: "Keyword scanner for board committee charters",
		Long: `charter-scan reads committee charter documents, records every occurrence of
the governance keyword taxonomy with surrounding context, and summarises each
document: structural estimates, meeting cadence, reporting line, authorities,
expertise and a Control versus Collaboration orientation.`,
		Version:       version.Short(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().String("config", "", "Path to configuration file (YAML)")
	cmd.PersistentFlags().String("profile", "", "Profile name to use from config file")
	cmd.PersistentFlags().String("taxonomy", "", "Path to a YAML taxonomy replacing the built-in keywords")
	cmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentFlags().Bool("quiet", false, "Suppress progress and summary output")

	cmd.AddCommand(NewScanCmd())
	cmd.AddCommand(NewTaxonomyCmd())
	cmd.AddCommand(NewProbesCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// loadConfiguration loads the config file named by --config (or found in a
// standard location), then applies --profile and the global flags
func loadConfiguration(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = config.FindConfigFile()
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	if profile, _ := cmd.Flags().GetString("profile"); profile != "" {
		if err := cfg.ApplyProfile(profile); err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("taxonomy") {
		cfg.TaxonomyFile, _ = flags.GetString("taxonomy")
	}
	if flags.Changed("no-color") {
		cfg.Defaults.NoColor, _ = flags.GetBool("no-color")
	}
	if flags.Changed("debug") {
		cfg.Defaults.Debug, _ = flags.GetBool("debug")
	}
	if flags.Changed("quiet") {
		cfg.Defaults.Quiet, _ = flags.GetBool("quiet")
	}
	if !isTerminal(os.Stdout) {
		cfg.Defaults.NoColor = true
	}

	return cfg, nil
}

// loadTaxonomy returns the configured taxonomy override, the user taxonomy
// file when one exists, or the built-in taxonomy
func loadTaxonomy(cfg *config.Config) (*taxonomy.Taxonomy, error) {
	path := cfg.TaxonomyFile
	if path == "" {
		if userFile := paths.GetTaxonomyFile(); fileExists(userFile) {
			path = userFile
		}
	}
	if path == "" {
		return taxonomy.Default(), nil
	}
	return taxonomy.LoadFile(path)
}

// formatterFor returns the configured output formatter
func formatterFor(cfg *config.Config) (formatters.Formatter, error) {
	return formatters.Lookup(cfg.Defaults.Format)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// isTerminal checks if the file descriptor is a terminal
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

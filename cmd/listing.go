// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"charter-scan/internal/formatters"
	"charter-scan/internal/help"
	"charter-scan/internal/heuristics"
	"charter-scan/internal/taxonomy"
)

// NewTaxonomyCmd creates the taxonomy command
func NewTaxonomyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "taxonomy",
		Short: "List the keyword taxonomy or export it as YAML",
		Long: `List the effective keyword taxonomy in precedence order, including the
function-category terms that always count toward Control or Collaboration.
With --export the taxonomy is written as YAML that --taxonomy accepts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfiguration(cmd)
			if err != nil {
				return err
			}
			tax, err := loadTaxonomy(cfg)
			if err != nil {
				return err
			}

			export, _ := cmd.Flags().GetString("export")
			if export == "" {
				help.NewSystem(cmd.OutOrStdout(), cfg.Defaults.NoColor).ShowTaxonomy(tax)
				return nil
			}

			data, err := taxonomy.Marshal(tax)
			if err != nil {
				return err
			}
			if export == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if dir := filepath.Dir(export); dir != "." {
				if err := os.MkdirAll(dir, 0750); err != nil {
					return err
				}
			}
			if err := os.WriteFile(export, data, 0600); err != nil {
				return fmt.Errorf("failed to export taxonomy: %w", err)
			}
			if !cfg.Defaults.Quiet {
				fmt.Fprintf(cmd.ErrOrStderr(), "Taxonomy written to %s\n", export)
			}
			return nil
		},
	}
	cmd.Flags().String("export", "", "Write the taxonomy as YAML to this file ('-' for stdout)")
	return cmd
}

// NewProbesCmd creates the probes command
func NewProbesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "probes",
		Short: "List the heuristic probes and output formats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfiguration(cmd)
			if err != nil {
				return err
			}
			tax, err := loadTaxonomy(cfg)
			if err != nil {
				return err
			}

			h := help.NewSystem(cmd.OutOrStdout(), cfg.Defaults.NoColor)
			h.ShowProbes(heuristics.NewDefaultRegistry(tax))
			fmt.Fprintln(cmd.OutOrStdout())
			h.ShowFormats(formatters.DefaultRegistry)
			fmt.Fprintln(cmd.OutOrStdout())
			h.ShowOrientationLabels()
			return nil
		},
	}
}

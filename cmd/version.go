// Copyright (c) 2025 Brandlens
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version holds the CLI version information.
	// This value is typically set at build time using -ldflags.
	Version = "0.0.0-dev"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show CLI and backend version information",
	Run: func(cmd *cobra.Command, args []string) {
		printVersion(cmd)
	},
}

func printVersion(cmd *cobra.Command) {
	backendVersion, err := newBackend().GetVersion(cmd.Context())
	if err != nil {
		logger.Debug("backend version unavailable", logger.Args("error", err))
		backendVersion = "unknown"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "brandlens %s\nbackend %s\n", Version, backendVersion)
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

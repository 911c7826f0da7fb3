// Copyright (c) 2025 Brandlens
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd provides the command-line interface for the Brandlens CLI.
// It implements sign-in, sign-out, account inspection and an interactive
// navigation shell using the Cobra CLI framework.
package cmd

import (
	"fmt"
	"os"

	"brandlens/cli/internal/app"
	"brandlens/cli/internal/backend"
	"brandlens/cli/internal/config"
	"brandlens/cli/internal/keychain"
	"brandlens/cli/internal/logging"
	"brandlens/cli/internal/session"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	showVersion bool
	verbose     bool
	jsonLogs    bool

	cfg    = config.Defaults()
	logger = logging.Nop()
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:           "brandlens",
	Short:         "Brandlens CLI for signing in and navigating the dashboard",
	Long:          `Brandlens is a command-line client for the Brandlens dashboard. It keeps your session in the OS keychain and lets you walk the app's routes with the same access rules and unsaved-changes checks as the web client.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			_ = os.Setenv(logging.VerboseEnv, "1")
		}
		loaded, err := config.Load()
		cfg = loaded
		if jsonLogs {
			logger = logging.NewJSON(os.Stderr, cfg.LogLevel)
		} else {
			logger = logging.New(os.Stderr, cfg.LogLevel)
		}
		if err != nil {
			logger.Warn("using default configuration", logger.Args("error", err))
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			printVersion(cmd)
			return nil
		}
		return cmd.Help()
	},
}

// Execute runs the CLI application.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, logging.PresentError("brandlens", err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Show CLI and backend version information")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging (same as "+logging.VerboseEnv+"=1)")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "log-json", false, "Write logs as JSON")
}

// newBackend returns the HTTP client for the configured base URL.
func newBackend() *backend.HTTP {
	return backend.New(cfg.BaseURL, backend.DefaultEndpoints(), cfg.RequestTimeout).
		WithUserAgent("brandlens-cli/" + Version)
}

// persister returns the keychain, or nil (memory only) when no keychain is usable.
func persister() session.Persister {
	km, err := keychain.GetManager()
	if err != nil {
		logger.Warn("keychain unavailable, session will not be remembered", logger.Args("error", err))
		return nil
	}
	return km
}

// newApp builds a client that starts at path.
func newApp(api backend.API, start string) (*app.App, error) {
	return app.New(cfg, app.Deps{
		API:     api,
		Persist: persister(),
		Log:     logger,
		Start:   start,
	})
}

func notLoggedIn() {
	pterm.Println("🔒 You're not logged in yet!")
	pterm.Println("   Run 'brandlens login' to get started.")
}

// Copyright (c) 2025 Brandlens
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// logoutCmd clears the session. The remote sign-out is best effort; local
// credentials are removed regardless.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and remove the stored session",
	Long: `The logout command asks the server to invalidate the current session
(best effort, ignored when offline) and then removes the session token and
session hint from the OS keychain.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(newBackend(), "/")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Session.Restore(); err != nil {
			logger.Warn("could not read stored session", logger.Args("error", err))
		}
		if err := a.Logout(cmd.Context()); err != nil {
			return err
		}
		pterm.Println("✅ Signed out. Session token removed from the keychain.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

// Copyright (c) 2025 Brandlens
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"brandlens/cli/internal/backend"
	"brandlens/cli/internal/logging"
	"brandlens/cli/internal/session"
	"brandlens/cli/internal/terminal"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	loginEmail string
	loginCode  string
)

// loginCmd signs in with a magic link. It emails a link, then exchanges the
// link (pasted back, or passed with --code) for a session token.
var loginCmd = &cobra.Command{
	Use:     "login",
	Aliases: []string{"auth"},
	Short:   "Sign in with a magic link",
	Long: `The login command signs you in with a magic link. With --email it asks the
server to email you a sign-in link; paste the link (or just its code) when
prompted, or pass it directly with --code.

The session token is stored in the OS keychain. If you are already signed in
with a valid session, the command does nothing.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
		defer cancel()

		be := newBackend()
		a, err := newApp(be, "/auth/callback")
		if err != nil {
			return err
		}
		defer a.Close()

		if _, err := a.Bootstrap(ctx); err == nil {
			if snap := a.Session.Snapshot(); snap.Authenticated() {
				pterm.Printfln("Already logged in as %s", snap.Profile.Email)
				return nil
			}
		}

		code := loginCode
		if code == "" {
			if loginEmail != "" {
				if err := be.RequestMagicLink(ctx, loginEmail); err != nil {
					return err
				}
				pterm.Success.Printfln("Sign-in link sent to %s", loginEmail)
			}
			code, err = promptMagicLink(os.Stdin)
			if err != nil {
				return err
			}
		}

		type result struct {
			profile session.Profile
			target  string
		}
		res, err := withSpinner(os.Stdout, "Verifying sign-in link", func() (result, error) {
			p, target, err := a.CompleteMagicLink(ctx, code)
			return result{p, target}, err
		})
		if err != nil {
			logging.PresentSessionError(err)
			return errors.New("login failed")
		}

		pterm.Println(loginGreeting(res.profile.Email))
		if res.target == a.Config.Routes.OnboardingEntry {
			pterm.Info.Printfln("Finish setting up your brand at %s%s", a.Config.BaseURL, res.target)
		}
		logger.Debug("signed in", logger.Args("token", logging.MaskToken(a.Session.Snapshot().Token), "landing", res.target))
		return nil
	},
}

// promptMagicLink reads the pasted link and clears it from the terminal, since
// it grants a session to whoever sees it.
func promptMagicLink(in *os.File) (string, error) {
	const prompt = "Paste the sign-in link from your email: "
	fmt.Print(prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read sign-in link: %w", err)
	}
	line = strings.TrimSpace(line)
	terminal.ClearPreviousLines(len(prompt) + len(line))
	if backend.ExtractMagicCode(line) == "" {
		return "", errors.New("no sign-in code found in the pasted text")
	}
	return line, nil
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Email a sign-in link to this address first")
	loginCmd.Flags().StringVar(&loginCode, "code", "", "Sign-in link or code from the email")
	rootCmd.AddCommand(loginCmd)
}

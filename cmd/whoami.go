package cmd

import (
	"errors"
	"os"
	"time"

	apperrors "brandlens/cli/internal/errors"
	"brandlens/cli/internal/logging"
	"brandlens/cli/internal/session"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/xeonx/timeago"
)

// whoamiCmd shows the signed-in account. It validates the session with the
// server and falls back to the stored session hint when the server is unreachable.
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show current authenticated account",
	Long: `The whoami command loads your profile from the server and shows the account,
role, brand setup and plan. If the server cannot be reached it shows what was
stored at the last successful sign-in, marked as offline.

If the stored session has been rejected by the server, it is cleared.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(newBackend(), "/")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Session.Restore(); err != nil {
			return err
		}
		token := a.Session.Snapshot().Token
		if token == "" {
			notLoggedIn()
			return nil
		}

		p, err := withSpinner(os.Stdout, "Checking session", func() (session.Profile, error) {
			return a.Session.LoadProfile(cmd.Context())
		})
		switch {
		case err == nil:
			printProfile(p, a.Session.Snapshot().IsNew)
		case apperrors.Is(err, apperrors.Unauthorized):
			logging.PresentSessionError(err)
			return nil
		case apperrors.Is(err, apperrors.Transient):
			hint, herr := a.Session.Hint()
			if herr != nil || !hint.LoggedIn || hint.Account == "" {
				logging.PresentSessionError(err)
				return nil
			}
			pterm.Printfln("👤 Current user: %s %s", hint.Account, pterm.Gray("(offline)"))
			logger.Debug("profile unavailable", logger.Args("error", logging.Mask(err.Error())))
		default:
			logging.PresentSessionError(err)
			return errors.New("could not read your profile")
		}

		printTokenInfo(token, time.Now())
		return nil
	},
}

func printProfile(p session.Profile, isNew bool) {
	pterm.Printfln("👤 Current user: %s", p.Email)
	if p.Role != "" {
		pterm.Printfln("   Role:  %s", p.Role)
	}
	if p.HasBrand {
		pterm.Println("   Brand: set up")
	} else {
		pterm.Println("   Brand: " + pterm.Yellow("not set up yet, run 'brandlens browse' to start onboarding"))
	}
	if isNew {
		pterm.Println("   New account")
	}
	if s := p.Subscription; s != nil {
		plan := s.PlanName
		if plan == "" {
			plan = s.PlanID
		}
		if plan != "" {
			pterm.Printfln("   Plan:  %s (%s)", plan, s.Status)
		}
		if s.TrialEndsAt != nil {
			if t, err := time.Parse(time.RFC3339, *s.TrialEndsAt); err == nil {
				pterm.Printfln("   Trial ends %s", timeago.NoMax(timeago.English).Format(t))
			}
		}
	}
}

func printTokenInfo(token string, now time.Time) {
	info, ok := session.InspectToken(token)
	if !ok {
		logger.Debug("session token is opaque", logger.Args("token", logging.MaskToken(token)))
		return
	}
	if info.ExpiresAt.IsZero() {
		return
	}
	when := timeago.NoMax(timeago.English).Format(info.ExpiresAt)
	if info.Expired(now) {
		pterm.Warning.Printfln("Session token expired %s", when)
		return
	}
	pterm.Printfln("   Session expires %s", when)
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

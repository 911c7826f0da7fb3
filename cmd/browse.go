// Copyright (c) 2025 Brandlens
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"brandlens/cli/internal/app"
	"brandlens/cli/internal/confirm"
	"brandlens/cli/internal/logging"
	"brandlens/cli/internal/navigation"
	"brandlens/cli/internal/xdg"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/xeonx/timeago"
	"golang.org/x/term"
)

var browseStart string

// browseCmd runs an interactive shell over the dashboard's routes. Every move
// goes through the same access rules and unsaved-changes checks as the web app.
var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Walk the dashboard's routes interactively",
	Long: `The browse command opens a small shell that behaves like the dashboard's
navigation: signed-out viewers are sent to login, accounts without a brand are
sent to onboarding, and leaving a page with unsaved edits asks whether to save,
discard or stay.

Type 'help' inside the shell for the list of commands.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(newBackend(), browseStart)
		if err != nil {
			return err
		}
		defer a.Close()

		stateDir, err := xdg.StateDir()
		if err != nil {
			return err
		}

		if _, err := withSpinner(os.Stdout, "Loading session", func() (struct{}, error) {
			_, err := a.Bootstrap(ctx)
			return struct{}{}, err
		}); err != nil {
			logging.PresentSessionError(err)
		}

		in := bufio.NewScanner(os.Stdin)
		choose := lineChooser(in, os.Stdout)
		if term.IsTerminal(int(os.Stdin.Fd())) {
			choose = selectChooser
		}
		sh := newShell(a, in, os.Stdout, choose, filepath.Join(stateDir, "draft.txt"))
		return sh.run(ctx)
	},
}

func init() {
	browseCmd.Flags().StringVar(&browseStart, "at", "/overview", "Path to open first")
	rootCmd.AddCommand(browseCmd)
}

// chooser asks the viewer to pick one of options.
type chooser func(prompt string, options []string) (string, error)

const (
	optSave    = "Save & Continue"
	optDiscard = "Discard"
	optCancel  = "Cancel"
	optLeave   = "Leave anyway"
	optStay    = "Stay"
)

func selectChooser(prompt string, options []string) (string, error) {
	return pterm.DefaultInteractiveSelect.
		WithOptions(options).
		WithDefaultText(prompt).
		Show()
}

// lineChooser reads the choice as a line: its number or a prefix of its text.
// It is used when stdin is not a terminal.
func lineChooser(in *bufio.Scanner, out io.Writer) chooser {
	return func(prompt string, options []string) (string, error) {
		for {
			fmt.Fprintln(out, prompt)
			for i, o := range options {
				fmt.Fprintf(out, "  %d) %s\n", i+1, o)
			}
			if !in.Scan() {
				if err := in.Err(); err != nil {
					return "", err
				}
				return "", io.EOF
			}
			answer := strings.ToLower(strings.TrimSpace(in.Text()))
			for i, o := range options {
				if answer == fmt.Sprint(i+1) || (answer != "" && strings.HasPrefix(strings.ToLower(o), answer)) {
					return o, nil
				}
			}
			fmt.Fprintf(out, "Please pick 1-%d.\n", len(options))
		}
	}
}

// draft is the shell's single editable document, saved to the XDG state dir.
type draft struct {
	mu   sync.Mutex
	path string
	text string
}

func (d *draft) set(text string) {
	d.mu.Lock()
	d.text = text
	d.mu.Unlock()
}

func (d *draft) save(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return os.WriteFile(d.path, []byte(d.text), 0o600)
}

type shell struct {
	app    *app.App
	in     *bufio.Scanner
	out    io.Writer
	choose chooser
	draft  *draft
	ago    timeago.Config
}

func newShell(a *app.App, in *bufio.Scanner, out io.Writer, choose chooser, draftPath string) *shell {
	sh := &shell{
		app:    a,
		in:     in,
		out:    out,
		choose: choose,
		draft:  &draft{path: draftPath},
		ago:    timeago.NoMax(timeago.English),
	}
	a.Dialog.SetSaver(sh.draft.save)
	return sh
}

func (sh *shell) run(ctx context.Context) error {
	sh.where()
	for {
		fmt.Fprintf(sh.out, "%s> ", sh.app.History.Current())
		if !sh.in.Scan() {
			fmt.Fprintln(sh.out)
			return sh.in.Err()
		}
		quit, err := sh.exec(ctx, sh.in.Text())
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
}

// exec runs one shell line and then resolves any navigation it deferred.
func (sh *shell) exec(ctx context.Context, line string) (quit bool, err error) {
	name, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	rest = strings.TrimSpace(rest)
	a := sh.app

	switch name {
	case "":
		return false, nil
	case "go", "push":
		if sh.needArg(name, rest) {
			a.Nav.Push(rest)
		}
	case "replace":
		if sh.needArg(name, rest) {
			a.Nav.Replace(rest)
		}
	case "back":
		a.Nav.Back()
	case "forward":
		a.Nav.Forward()
	case "link":
		if sh.needArg(name, rest) {
			sh.follow(rest)
		}
	case "edit":
		sh.draft.set(rest)
		a.Dirty.SetDirty(true)
		fmt.Fprintln(sh.out, "draft changed (unsaved)")
	case "save":
		if err := sh.draft.save(ctx); err != nil {
			fmt.Fprintln(sh.out, logging.PresentError("save failed", err))
		} else {
			a.Dirty.MarkSaved()
			fmt.Fprintln(sh.out, "draft saved")
		}
	case "run":
		label := rest
		if label == "" {
			label = "action"
		}
		a.Nav.Run(label, func() { fmt.Fprintf(sh.out, "ran %s\n", label) })
	case "logout":
		if err := a.Logout(ctx); err != nil {
			fmt.Fprintln(sh.out, logging.PresentError("logout", err))
		}
	case "reload":
		if _, err := a.Reload(ctx); err != nil {
			fmt.Fprintln(sh.out, logging.FormatSessionError(err))
		}
	case "where":
		sh.where()
		return false, nil
	case "stats":
		return false, sh.stats()
	case "help":
		sh.help()
		return false, nil
	case "quit", "exit":
		if !a.Nav.BeforeUnload() {
			return true, nil
		}
		choice, err := sh.choose("You have unsaved changes that will be lost.", []string{optStay, optLeave})
		if err != nil {
			return false, err
		}
		return choice == optLeave, nil
	default:
		fmt.Fprintf(sh.out, "unknown command %q, try 'help'\n", name)
		return false, nil
	}

	if err := sh.resolve(ctx); err != nil {
		return false, err
	}
	fmt.Fprintf(sh.out, "→ %s\n", a.History.Current())
	return false, nil
}

func (sh *shell) needArg(name, arg string) bool {
	if arg == "" {
		fmt.Fprintf(sh.out, "usage: %s <path>\n", name)
		return false
	}
	return true
}

func (sh *shell) follow(args string) {
	l := navigation.Link{}
	for _, f := range strings.Fields(args) {
		if f == "--new-tab" {
			l.NewContext = true
			continue
		}
		l.Href = f
	}
	if out := sh.app.Nav.Follow(l); out == navigation.PassThrough {
		fmt.Fprintf(sh.out, "left to the browser: %s\n", l.Href)
	}
}

// resolve shows the confirmation dialog until the viewer settles it.
func (sh *shell) resolve(ctx context.Context) error {
	d := sh.app.Dialog
	for d.State() == confirm.Opened {
		in, _ := d.Intent()
		prompt := fmt.Sprintf("You have unsaved changes. Save before %s?", in.Describe())
		choice, err := sh.choose(prompt, []string{optSave, optDiscard, optCancel})
		if err != nil {
			d.Cancel()
			return err
		}
		switch choice {
		case optSave:
			if err := d.SaveAndContinue(ctx); err != nil {
				fmt.Fprintln(sh.out, logging.FormatSessionError(err))
			}
		case optDiscard:
			d.Discard()
		default:
			d.Cancel()
		}
	}
	return nil
}

func (sh *shell) where() {
	a := sh.app
	snap := a.Session.Snapshot()
	who := "signed out"
	switch {
	case snap.IsLoading:
		who = "loading"
	case snap.Authenticated():
		who = snap.Profile.Email
	case snap.Token != "":
		who = "signed in, profile unavailable"
	}
	saved := "never"
	if t := a.Dirty.LastSavedAt(); !t.IsZero() {
		saved = sh.ago.Format(t)
	}
	fmt.Fprintf(sh.out, "path:    %s\nsession: %s\nunsaved: %t\nsaved:   %s\n",
		a.History.Current(), who, a.Dirty.IsDirty(), saved)
}

func (sh *shell) stats() error {
	samples, err := sh.app.Stats()
	if err != nil {
		return err
	}
	data := pterm.TableData{{"counter", "labels", "value"}}
	for _, s := range samples {
		data = append(data, []string{s.Name, s.Labels, fmt.Sprintf("%.0f", s.Value)})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	fmt.Fprintln(sh.out, table)
	return nil
}

func (sh *shell) help() {
	fmt.Fprint(sh.out, `commands:
  go <path>               push a path
  replace <path>          replace the current path
  back, forward           move through history
  link <href> [--new-tab] follow a link
  edit <text>             change the draft (marks unsaved)
  save                    save the draft
  run <label>             run an action guarded by the unsaved check
  logout                  sign out
  reload                  retry loading the profile
  where                   show path, session and draft state
  stats                   show counters
  quit                    leave the shell
`)
}


// Package xdg resolves the per-user directories brandlens writes to.
// It follows the XDG Base Directory layout, falling back to the usual
// dot-directories under $HOME when the XDG variables are unset.
package xdg

import (
	"os"
	"path/filepath"
)

const appDir = "brandlens"

// ConfigDir returns the XDG config directory for brandlens, creating it with
// private permissions (0700) when missing. Falls back to ~/.config/brandlens.
func ConfigDir() (string, error) {
	return ensure("XDG_CONFIG_HOME", ".config")
}

// StateDir returns the XDG state directory for brandlens, creating it with
// private permissions (0700) when missing. Falls back to ~/.local/state/brandlens.
// Editor drafts saved from the browse shell live here.
func StateDir() (string, error) {
	return ensure("XDG_STATE_HOME", filepath.Join(".local", "state"))
}

func ensure(env, fallback string) (string, error) {
	base := os.Getenv(env)
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, fallback)
	}
	dir := filepath.Join(base, appDir)
	if err := os.MkdirAll(dir, 0o700); err != nil { // private dir
		return "", err
	}
	return dir, nil
}

// Copyright (c) 2025 Brandlens
// Licensed under the MIT License. See LICENSE file in the project root for details.

package session

import (
	"encoding/json"
	"errors"

	"brandlens/cli/internal/keychain"
)

// Persister is the durable slot the store writes the token and session hint to.
// keychain.Manager implements it.
type Persister interface {
	SaveToken(token string) error
	LoadToken() (string, error)
	SaveAuthState(data []byte) error
	LoadAuthState() ([]byte, error)
	ClearAuth() error
}

// Hint is the small piece of session state kept next to the token so that
// whoami can answer without a network round trip. It is never used to
// populate the profile.
type Hint struct {
	LoggedIn bool   `json:"logged_in"`
	Account  string `json:"account"`
	IsNew    bool   `json:"is_new"`
}

func loadHint(p Persister) (Hint, error) {
	var h Hint
	data, err := p.LoadAuthState()
	if errors.Is(err, keychain.ErrNotFound) {
		return h, nil
	}
	if err != nil {
		return h, err
	}
	if len(data) == 0 {
		return h, nil
	}
	if err := json.Unmarshal(data, &h); err != nil {
		return Hint{}, err
	}
	return h, nil
}

func saveHint(p Persister, h Hint) error {
	b, err := json.Marshal(h)
	if err != nil {
		return err
	}
	return p.SaveAuthState(b)
}

// Copyright (c) 2025 Brandlens
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package session owns the viewer's credential and profile.
//
// Store is the only writer of token and profile. Everything else reads a
// Snapshot, which is a copy and can be passed around freely. Profile loading
// goes through a single-shot gate plus a singleflight group keyed by the token
// generation, so concurrent callers share one request per token.
package session

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"

	"github.com/pterm/pterm"
	"golang.org/x/sync/singleflight"

	"brandlens/cli/internal/backend"
	apperrors "brandlens/cli/internal/errors"
	"brandlens/cli/internal/keychain"
	"brandlens/cli/internal/logging"
	"brandlens/cli/internal/metrics"
)

// Snapshot is a point-in-time copy of the session.
type Snapshot struct {
	Token     string
	Profile   *Profile
	IsLoading bool
	IsNew     bool
	Gate      Gate
}

// Authenticated reports whether both a token and a profile are present.
func (s Snapshot) Authenticated() bool {
	return s.Token != "" && s.Profile != nil
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for session events.
func WithLogger(l *pterm.Logger) Option {
	return func(s *Store) { s.log = logging.OrNop(l) }
}

// WithMetrics records profile fetch outcomes on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Store) { s.metrics = m }
}

type subscriber struct {
	id int
	fn func(Snapshot)
}

// Store holds the session. It is safe for concurrent use.
type Store struct {
	api     backend.API
	persist Persister
	log     *pterm.Logger
	metrics *metrics.Metrics
	flight  singleflight.Group

	mu         sync.Mutex
	token      string
	profile    *Profile
	isNew      bool
	gate       Gate
	generation uint64
	subs       []subscriber
	nextSub    int
}

// New creates an empty store. A nil persist keeps everything in memory.
func New(api backend.API, persist Persister, opts ...Option) *Store {
	if persist == nil {
		persist = memoryOnly{}
	}
	s := &Store{api: api, persist: persist, log: logging.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns a copy of the current session.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	snap := Snapshot{
		Token:     s.token,
		IsLoading: s.gate == GateInFlight,
		IsNew:     s.isNew,
		Gate:      s.gate,
	}
	if s.profile != nil {
		snap.Profile = s.profile.clone()
	}
	return snap
}

// Subscribe registers fn to be called after every session change. Callbacks
// run outside the store lock and may call back into the store.
func (s *Store) Subscribe(fn func(Snapshot)) (cancel func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

func (s *Store) notify(snap Snapshot) {
	s.mu.Lock()
	fns := make([]func(Snapshot), 0, len(s.subs))
	for _, sub := range s.subs {
		fns = append(fns, sub.fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn(snap)
	}
}

// Restore reads the token from durable storage. The profile is not restored;
// callers follow up with LoadProfile.
func (s *Store) Restore() error {
	token, err := s.persist.LoadToken()
	if errors.Is(err, keychain.ErrNotFound) {
		token, err = "", nil
	}
	if err != nil {
		return apperrors.Wrap(apperrors.Storage, "read stored token", err)
	}
	token = strings.TrimSpace(token)

	hint, err := loadHint(s.persist)
	if err != nil {
		s.log.Debug("ignoring unreadable session hint", s.log.Args("error", err))
	}

	s.mu.Lock()
	s.token = token
	s.profile = nil
	s.isNew = token != "" && hint.IsNew
	s.gate = GateIdle
	s.generation++
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.log.Debug("session restored", s.log.Args("token", logging.MaskToken(token)))
	s.notify(snap)
	return nil
}

// Hint returns the persisted session hint without touching the network.
func (s *Store) Hint() (Hint, error) {
	h, err := loadHint(s.persist)
	if err != nil {
		return Hint{}, apperrors.Wrap(apperrors.Storage, "read session hint", err)
	}
	return h, nil
}

// SetIsNew records whether the account was created by the current sign-in.
func (s *Store) SetIsNew(isNew bool) {
	s.mu.Lock()
	s.isNew = isNew
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)
}

// LoginWithToken replaces the credential, persists it and loads the profile once.
func (s *Store) LoginWithToken(ctx context.Context, token string) (Profile, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Profile{}, apperrors.New(apperrors.NoToken, "empty session token")
	}

	s.mu.Lock()
	s.token = token
	s.profile = nil
	s.gate = GateIdle
	s.generation++
	s.mu.Unlock()

	if err := s.persist.SaveToken(token); err != nil {
		s.log.Warn("could not persist session token", s.log.Args("error", err))
	}
	return s.LoadProfile(ctx)
}

// LoadProfile fetches the profile for the current token.
//
// Once a fetch for this token succeeded the cached profile is returned. While
// one is in flight, callers wait for it and share its result. After a failure
// the next call fetches again.
//
// The shared fetch is detached from the caller's cancellation and bounded by
// the API client's own timeout. A caller whose ctx ends stops waiting and gets
// ctx.Err(); the fetch still completes for everyone else.
func (s *Store) LoadProfile(ctx context.Context) (Profile, error) {
	s.mu.Lock()
	if s.token == "" {
		s.mu.Unlock()
		return Profile{}, apperrors.New(apperrors.NoToken, "not signed in")
	}
	if s.gate == GateDone && s.profile != nil {
		p := *s.profile.clone()
		s.mu.Unlock()
		return p, nil
	}
	key := strconv.FormatUint(s.generation, 10)
	s.mu.Unlock()

	detached := context.WithoutCancel(ctx)
	ch := s.flight.DoChan(key, func() (any, error) {
		return s.fetch(detached)
	})
	select {
	case <-ctx.Done():
		return Profile{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return Profile{}, res.Err
		}
		return res.Val.(Profile), nil
	}
}

func (s *Store) fetch(ctx context.Context) (Profile, error) {
	s.mu.Lock()
	if !s.gate.canStart() {
		gate := s.gate
		var p Profile
		if s.profile != nil {
			p = *s.profile.clone()
		}
		s.mu.Unlock()
		if gate == GateDone {
			return p, nil
		}
		return Profile{}, apperrors.New(apperrors.Busy, "profile load already in progress")
	}
	token, gen := s.token, s.generation
	if token == "" {
		s.mu.Unlock()
		return Profile{}, apperrors.New(apperrors.NoToken, "not signed in")
	}
	s.gate = GateInFlight
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)

	s.log.Debug("loading profile", s.log.Args("token", logging.MaskToken(token)))
	p, err := s.request(ctx, token)

	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		s.metrics.ProfileFetch("superseded")
		s.log.Debug("discarding profile for a replaced session")
		return Profile{}, apperrors.New(apperrors.Transient, "profile response superseded by a newer session")
	}

	if err == nil {
		s.profile = p.clone()
		s.gate = GateDone
		hint := Hint{LoggedIn: true, Account: p.Email, IsNew: s.isNew}
		snap = s.snapshotLocked()
		s.mu.Unlock()

		if herr := saveHint(s.persist, hint); herr != nil {
			s.log.Warn("could not persist session hint", s.log.Args("error", herr))
		}
		s.metrics.ProfileFetch("ok")
		s.log.Debug("profile loaded", s.log.Args("account", p.Email, "has_brand", p.HasBrand))
		s.notify(snap)
		return p, nil
	}

	s.profile = nil
	s.gate = GateFailed
	snap = s.snapshotLocked()
	s.mu.Unlock()

	switch {
	case apperrors.Is(err, apperrors.Unauthorized):
		s.metrics.ProfileFetch("unauthorized")
		s.log.Info("session rejected, signing out")
		if lerr := s.Logout(ctx); lerr != nil {
			s.log.Warn("sign-out after rejected session was incomplete", s.log.Args("error", lerr))
		}
		return Profile{}, err
	case apperrors.Is(err, apperrors.MalformedProfile):
		s.metrics.ProfileFetch("malformed")
	default:
		s.metrics.ProfileFetch("transient")
	}
	s.log.Debug("profile load failed", s.log.Args("error", logging.Mask(err.Error())))
	s.notify(snap)
	return Profile{}, err
}

func (s *Store) request(ctx context.Context, token string) (Profile, error) {
	payload, err := s.api.Session(ctx, token)
	if err != nil {
		return Profile{}, err
	}
	return ParseProfile(payload.Profile)
}

// Logout invalidates the token remotely on a best-effort basis, then clears
// the session and durable storage. Only a storage failure is returned.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	token := s.token
	s.mu.Unlock()

	if token != "" {
		if err := s.api.Logout(ctx, token); err != nil {
			s.log.Debug("remote logout failed", s.log.Args("error", logging.Mask(err.Error())))
		}
	}

	s.mu.Lock()
	s.token = ""
	s.profile = nil
	s.isNew = false
	s.gate = GateIdle
	s.generation++
	snap := s.snapshotLocked()
	s.mu.Unlock()

	var err error
	if cerr := s.persist.ClearAuth(); cerr != nil {
		err = apperrors.Wrap(apperrors.Storage, "clear stored session", cerr)
	}
	s.notify(snap)
	return err
}

type memoryOnly struct{}

func (memoryOnly) SaveToken(string) error         { return nil }
func (memoryOnly) LoadToken() (string, error)     { return "", keychain.ErrNotFound }
func (memoryOnly) SaveAuthState([]byte) error     { return nil }
func (memoryOnly) LoadAuthState() ([]byte, error) { return nil, keychain.ErrNotFound }
func (memoryOnly) ClearAuth() error               { return nil }

// Copyright (c) 2025 Brandlens
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package keychain is the durable slot for the session credential.
// It wraps the OS keychain/credential store behind a small thread-safe Manager:
// the session token and a tiny serialized session hint live here, everything
// else stays in memory. On macOS the native `security` command is preferred;
// other platforms go through the keyring library.
package keychain

import (
	"errors"
	"runtime"
	"sync"

	"github.com/99designs/keyring"
	"github.com/hashicorp/go-multierror"
)

var (
	globalManager *Manager
	mu            sync.Mutex
)

// ErrNotFound is returned when a key has never been written or was cleared.
var ErrNotFound = errors.New("keychain: item not found")

// Manager provides centralized, thread-safe operations for the OS keychain.
type Manager struct {
	mu      sync.RWMutex
	ring    keyring.Keyring
	backend keychainBackend
}

// keychainBackend is the minimal surface of a native keychain tool.
type keychainBackend interface {
	Set(key, value string) error
	Get(key string) (string, error)
	Delete(key string) error
}

// ServiceName identifies our keychain/credential store namespace.
const ServiceName = "brandlens"

// Keys used for storing secrets in the OS keychain.
const (
	KeyToken     = "session_token"
	KeyAuthState = "session_state"
)

// NewManager creates a manager over the platform keychain.
func NewManager() (*Manager, error) {
	if runtime.GOOS == "darwin" {
		backend, err := newSecurityBackend()
		if err == nil {
			return &Manager{backend: backend}, nil
		}
		// Fall through to the keyring library if the security tool is missing.
	}

	ring, err := openRing()
	if err != nil {
		return nil, err
	}
	return &Manager{ring: ring}, nil
}

// NewManagerWithRing wraps an already opened keyring. Tests pass
// keyring.NewArrayKeyring here.
func NewManagerWithRing(ring keyring.Keyring) *Manager {
	return &Manager{ring: ring}
}

// GetManager returns the process-wide manager, creating it on first use.
// A failed initialisation is retried on the next call.
func GetManager() (*Manager, error) {
	mu.Lock()
	defer mu.Unlock()

	if globalManager != nil {
		return globalManager, nil
	}
	m, err := NewManager()
	if err != nil {
		return nil, err
	}
	globalManager = m
	return globalManager, nil
}

func openRing() (keyring.Keyring, error) {
	var allowed []keyring.BackendType
	switch runtime.GOOS {
	case "darwin":
		allowed = []keyring.BackendType{keyring.KeychainBackend, keyring.PassBackend}
	case "windows":
		allowed = []keyring.BackendType{keyring.WinCredBackend}
	case "linux":
		allowed = []keyring.BackendType{keyring.SecretServiceBackend, keyring.KWalletBackend, keyring.PassBackend}
	default:
		return nil, errors.New("secure storage not supported on this OS")
	}

	cfg := keyring.Config{
		ServiceName:     ServiceName,
		AllowedBackends: allowed,
		PassPrefix:      ServiceName,
		WinCredPrefix:   ServiceName,
	}
	return keyring.Open(cfg)
}

// SaveToken stores the session token.
func (m *Manager) SaveToken(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.set(KeyToken, []byte(token))
}

// LoadToken returns the stored session token or ErrNotFound.
func (m *Manager) LoadToken() (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, err := m.get(KeyToken)
	if err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", ErrNotFound
	}
	return string(data), nil
}

// SaveAuthState stores the serialized session hint.
func (m *Manager) SaveAuthState(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.set(KeyAuthState, data)
}

// LoadAuthState returns the serialized session hint or ErrNotFound.
func (m *Manager) LoadAuthState() ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.get(KeyAuthState)
}

// ClearAuth removes the token and the session hint. Missing entries are not errors;
// every key is attempted even if an earlier removal fails.
func (m *Manager) ClearAuth() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var result *multierror.Error
	for _, key := range []string{KeyToken, KeyAuthState} {
		if err := m.remove(key); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

func (m *Manager) set(key string, data []byte) error {
	if m.backend != nil {
		return m.backend.Set(key, string(data))
	}
	return m.ring.Set(keyring.Item{Key: key, Data: data, Label: ServiceName + " " + key})
}

func (m *Manager) get(key string) ([]byte, error) {
	if m.backend != nil {
		v, err := m.backend.Get(key)
		if errors.Is(err, errBackendNotFound) {
			return nil, ErrNotFound
		}
		if err != nil {
			return nil, err
		}
		return []byte(v), nil
	}
	it, err := m.ring.Get(key)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return it.Data, nil
}

func (m *Manager) remove(key string) error {
	if m.backend != nil {
		return m.backend.Delete(key)
	}
	if err := m.ring.Remove(key); err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return err
	}
	return nil
}

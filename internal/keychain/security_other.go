// Copyright (c) 2025 Brandlens
// Licensed under the MIT License. See LICENSE file in the project root for details.

//go:build !darwin

package keychain

import "errors"

type securityBackend struct{}

func newSecurityBackend() (*securityBackend, error) {
	return nil, errors.New("security backend only available on macOS")
}

func (s *securityBackend) Set(key, value string) error    { return errors.ErrUnsupported }
func (s *securityBackend) Get(key string) (string, error) { return "", errors.ErrUnsupported }
func (s *securityBackend) Delete(key string) error        { return errors.ErrUnsupported }

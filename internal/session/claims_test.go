// Copyright (c) 2025 Brandlens
// Licensed under the MIT License. See LICENSE file in the project root for details.

package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspectToken(t *testing.T) {
	exp := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "u_1",
		"email": "ana@example.com",
		"exp":   exp.Unix(),
	}).SignedString([]byte("not-checked"))
	require.NoError(t, err)

	info, ok := InspectToken(signed)
	require.True(t, ok)
	assert.Equal(t, "u_1", info.Subject)
	assert.Equal(t, "ana@example.com", info.Email)
	assert.True(t, info.ExpiresAt.Equal(exp))
	assert.True(t, info.Expired(exp.Add(time.Second)))
	assert.False(t, info.Expired(exp.Add(-time.Hour)))
}

func TestInspectOpaqueToken(t *testing.T) {
	_, ok := InspectToken("mock_magic_token_ana@example.com")
	assert.False(t, ok)

	assert.False(t, TokenInfo{}.Expired(time.Now()), "no expiry never expires")
}

// Copyright (c) 2025 Brandlens
// Licensed under the MIT License. See LICENSE file in the project root for details.

package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenInfo is what a JWT session token says about itself. It is read without
// verifying the signature and is only ever displayed, never trusted.
type TokenInfo struct {
	Subject   string
	Email     string
	ExpiresAt time.Time
}

// InspectToken decodes token's claims if it is a JWT. Opaque tokens report false.
func InspectToken(token string) (TokenInfo, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return TokenInfo{}, false
	}
	var info TokenInfo
	info.Subject, _ = claims.GetSubject()
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
	}
	if email, ok := claims["email"].(string); ok {
		info.Email = email
	}
	return info, true
}

// Expired reports whether the token carries an expiry before now.
func (t TokenInfo) Expired(now time.Time) bool {
	return !t.ExpiresAt.IsZero() && now.After(t.ExpiresAt)
}

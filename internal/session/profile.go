// Copyright (c) 2025 Brandlens
// Licensed under the MIT License. See LICENSE file in the project root for details.

package session

import (
	"bytes"
	"encoding/json"
	"strings"

	apperrors "brandlens/cli/internal/errors"
)

// Role is the viewer's permission level inside their organisation.
type Role string

const (
	RoleAdmin  Role = "Admin"
	RoleViewer Role = "Viewer"
)

// Subscription describes the viewer's plan. All fields are optional.
type Subscription struct {
	PlanID      string  `json:"planId,omitempty"`
	PlanName    string  `json:"planName,omitempty"`
	TrialEndsAt *string `json:"trialEndsAt,omitempty"`
	Status      string  `json:"status,omitempty"`
}

// Profile is the viewer as reported by the session endpoint.
type Profile struct {
	ID           string        `json:"id"`
	Email        string        `json:"email"`
	HasBrand     bool          `json:"hasBrand"`
	Role         Role          `json:"role,omitempty"`
	Subscription *Subscription `json:"subscription,omitempty"`
}

var (
	validPlans    = map[string]bool{"": true, "basic": true, "advanced": true, "enterprise": true}
	validStatuses = map[string]bool{"": true, "trial": true, "active": true, "canceled": true, "expired": true}
)

// ParseProfile decodes and validates a profile payload. Anything that does not
// look like a profile is an errors.MalformedProfile error, never a partial value.
func ParseProfile(raw json.RawMessage) (Profile, error) {
	var p Profile
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return p, apperrors.New(apperrors.MalformedProfile, "session payload has no profile")
	}
	if err := json.Unmarshal(trimmed, &p); err != nil {
		return Profile{}, apperrors.Wrap(apperrors.MalformedProfile, "decode profile", err)
	}
	if err := p.validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

func (p Profile) validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return apperrors.New(apperrors.MalformedProfile, "profile id is empty")
	}
	at := strings.Index(p.Email, "@")
	if at <= 0 || at == len(p.Email)-1 {
		return apperrors.New(apperrors.MalformedProfile, "profile email is invalid")
	}
	switch p.Role {
	case "", RoleAdmin, RoleViewer:
	default:
		return apperrors.New(apperrors.MalformedProfile, "unknown role "+string(p.Role))
	}
	if s := p.Subscription; s != nil {
		if !validPlans[s.PlanID] {
			return apperrors.New(apperrors.MalformedProfile, "unknown plan "+s.PlanID)
		}
		if !validStatuses[s.Status] {
			return apperrors.New(apperrors.MalformedProfile, "unknown subscription status "+s.Status)
		}
	}
	return nil
}

func (p Profile) clone() *Profile {
	c := p
	if p.Subscription != nil {
		s := *p.Subscription
		if s.TrialEndsAt != nil {
			t := *s.TrialEndsAt
			s.TrialEndsAt = &t
		}
		c.Subscription = &s
	}
	return &c
}

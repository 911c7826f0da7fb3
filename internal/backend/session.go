// Copyright (c) 2025 Brandlens
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	apperrors "brandlens/cli/internal/errors"
)

// Session calls GET /api/auth/session with the bearer credential.
//
// Non-2xx answers are classified by status. A 2xx answer with ok:false is
// classified by its error text, because the web app reports expired sessions
// that way too.
func (h *HTTP) Session(ctx context.Context, accessToken string) (SessionPayload, error) {
	var out SessionPayload
	req, err := h.newRequest(ctx, http.MethodGet, h.endpoints.Session, accessToken)
	if err != nil {
		return out, apperrors.Wrap(apperrors.Transient, "build session request", err)
	}
	resp, err := h.client.Do(req)
	if err != nil {
		return out, apperrors.Wrap(apperrors.Transient, "session request", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return out, statusError("session", resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return out, apperrors.Wrap(apperrors.MalformedProfile, "decode session payload", err)
	}
	if !out.OK {
		reason := out.Error
		if reason == "" {
			reason = out.Message
		}
		if IsAuthorizationReason(reason) {
			return out, apperrors.New(apperrors.Unauthorized, "session rejected: "+reason)
		}
		return out, apperrors.New(apperrors.Transient, "session not ok: "+reason)
	}
	return out, nil
}

// IsAuthorizationReason reports whether an ok:false error string means the
// credential itself is bad.
func IsAuthorizationReason(reason string) bool {
	r := strings.ToLower(reason)
	for _, marker := range []string{"unauthorized", "unauthenticated", "forbidden", "invalid token", "expired", "invalid_token"} {
		if strings.Contains(r, marker) {
			return true
		}
	}
	return false
}

// Logout calls POST /api/auth/logout. Callers treat failures as best effort.
func (h *HTTP) Logout(ctx context.Context, accessToken string) error {
	req, err := h.newRequest(ctx, http.MethodPost, h.endpoints.Logout, accessToken)
	if err != nil {
		return err
	}
	resp, err := h.client.Do(req)
	if err != nil {
		return apperrors.Wrap(apperrors.Transient, "logout request", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	return statusError("logout", resp)
}

// Copyright (c) 2025 Brandlens
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	apperrors "brandlens/cli/internal/errors"
)

// RequestMagicLink calls POST /api/auth/magic-link, which emails a sign-in link
// to email. It is not part of API because only the login command sends links.
func (h *HTTP) RequestMagicLink(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if !strings.Contains(email, "@") {
		return fmt.Errorf("invalid email address %q", email)
	}
	body, err := json.Marshal(map[string]string{"email": email})
	if err != nil {
		return err
	}
	req, err := h.newRequest(ctx, http.MethodPost, h.endpoints.MagicLinkRequest, "")
	if err != nil {
		return err
	}
	req.Body = io.NopCloser(bytes.NewReader(body))
	req.ContentLength = int64(len(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return apperrors.Wrap(apperrors.Transient, "request magic link", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError("magic-link request", resp)
	}
	return nil
}

// VerifyMagicLink calls GET /api/auth/magic-link/verify?token=<code>.
// The code may be pasted either bare or as the full link from the email.
func (h *HTTP) VerifyMagicLink(ctx context.Context, code string) (MagicLinkResult, error) {
	var out MagicLinkResult
	code = ExtractMagicCode(code)
	if code == "" {
		return out, apperrors.New(apperrors.NoToken, "empty magic-link code")
	}

	req, err := h.newRequest(ctx, http.MethodGet, h.endpoints.MagicLinkVerify+"?token="+url.QueryEscape(code), "")
	if err != nil {
		return out, err
	}
	resp, err := h.client.Do(req)
	if err != nil {
		return out, apperrors.Wrap(apperrors.Transient, "verify magic link", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return out, statusError("magic-link verify", resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return out, apperrors.Wrap(apperrors.Transient, "decode magic-link response", err)
	}
	if out.Token == "" {
		// Some deployments hand the token back in the Authorization header only.
		out.Token = parseBearerToken(resp.Header.Get("Authorization"))
	}
	if !out.OK || out.Token == "" {
		return out, apperrors.New(apperrors.Unauthorized, "magic link rejected")
	}
	return out, nil
}

// ExtractMagicCode accepts either the raw code or a callback URL carrying it in
// its token query parameter.
func ExtractMagicCode(input string) string {
	s := strings.TrimSpace(input)
	if !strings.Contains(s, "://") {
		return s
	}
	u, err := url.Parse(s)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(u.Query().Get("token"))
}

// parseBearerToken extracts the token from "Bearer <token>", case-insensitively.
func parseBearerToken(value string) string {
	v := strings.TrimSpace(value)
	if len(v) < 7 || !strings.EqualFold(v[:6], "bearer") {
		return ""
	}
	return strings.TrimSpace(v[6:])
}

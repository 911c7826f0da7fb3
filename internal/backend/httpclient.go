// Copyright (c) 2025 Brandlens
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	apperrors "brandlens/cli/internal/errors"
)

// HTTP implements API over the web application's JSON endpoints.
type HTTP struct {
	// baseURL is the origin every endpoint path is appended to (e.g. "https://app.brandlens.io")
	baseURL string
	// endpoints contains the URL paths for the account API
	endpoints Endpoints
	// client is the underlying HTTP client with configured timeout
	client *http.Client
	// userAgent is sent with every request
	userAgent string
}

// New creates an HTTP backend. A zero timeout means 10 seconds.
func New(baseURL string, endpoints Endpoints, timeout time.Duration) *HTTP {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTP{
		baseURL:   strings.TrimRight(baseURL, "/"),
		endpoints: endpoints,
		client:    &http.Client{Timeout: timeout},
		userAgent: "brandlens-cli",
	}
}

// WithUserAgent sets the User-Agent header; the CLI passes its build version.
func (h *HTTP) WithUserAgent(ua string) *HTTP {
	h.userAgent = ua
	return h
}

func (h *HTTP) newRequest(ctx context.Context, method, path, accessToken string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", h.userAgent)
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}
	return req, nil
}

// GetVersion calls GET /api/version. No authentication required.
func (h *HTTP) GetVersion(ctx context.Context) (string, error) {
	req, err := h.newRequest(ctx, http.MethodGet, h.endpoints.Version, "")
	if err != nil {
		return "", err
	}
	resp, err := h.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "unknown", nil
	}
	var out struct {
		Version string `json:"version"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if out.Version == "" {
		return "unknown", nil
	}
	return out.Version, nil
}

// statusError reads a short error body and classifies the status code.
func statusError(op string, resp *http.Response) error {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
	msg := fmt.Sprintf("%s failed: %d %s", op, resp.StatusCode, strings.TrimSpace(string(b)))
	if isAuthStatus(resp.StatusCode) {
		return apperrors.New(apperrors.Unauthorized, msg)
	}
	return apperrors.New(apperrors.Transient, msg)
}

func isAuthStatus(code int) bool {
	return code == http.StatusUnauthorized || code == http.StatusForbidden
}

// Copyright (c) 2025 Brandlens
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "brandlens/cli/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, h http.HandlerFunc) *HTTP {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", DefaultEndpoints(), 0)
}

func TestSession(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantKind apperrors.Kind
		wantOK   bool
	}{
		{
			name:   "ok",
			status: http.StatusOK,
			body:   `{"ok":true,"profile":{"id":"u_1","email":"a@b.co","hasBrand":true}}`,
			wantOK: true,
		},
		{
			name:     "401",
			status:   http.StatusUnauthorized,
			body:     `{"ok":false,"error":"Unauthorized"}`,
			wantKind: apperrors.Unauthorized,
		},
		{
			name:     "403",
			status:   http.StatusForbidden,
			body:     ``,
			wantKind: apperrors.Unauthorized,
		},
		{
			name:     "ok false with auth reason",
			status:   http.StatusOK,
			body:     `{"ok":false,"error":"token expired"}`,
			wantKind: apperrors.Unauthorized,
		},
		{
			name:     "ok false other reason",
			status:   http.StatusOK,
			body:     `{"ok":false,"error":"rate limited"}`,
			wantKind: apperrors.Transient,
		},
		{
			name:     "501",
			status:   http.StatusNotImplemented,
			body:     `{"error":"Session endpoint not implemented"}`,
			wantKind: apperrors.Transient,
		},
		{
			name:     "garbage body",
			status:   http.StatusOK,
			body:     `<html>`,
			wantKind: apperrors.MalformedProfile,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			be := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/auth/session", r.URL.Path)
				assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			payload, err := be.Session(context.Background(), "tok")
			if tt.wantOK {
				require.NoError(t, err)
				assert.True(t, payload.OK)
				assert.JSONEq(t, `{"id":"u_1","email":"a@b.co","hasBrand":true}`, string(payload.Profile))
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantKind, apperrors.KindOf(err))
		})
	}
}

func TestSessionNetworkErrorIsTransient(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	be := New(srv.URL, DefaultEndpoints(), 0)

	_, err := be.Session(context.Background(), "tok")
	require.Error(t, err)
	assert.Equal(t, apperrors.Transient, apperrors.KindOf(err))
}

func TestLogout(t *testing.T) {
	var calls int
	be := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/logout", r.URL.Path)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	require.NoError(t, be.Logout(context.Background(), "tok"))
	assert.Equal(t, 1, calls)
}

func TestVerifyMagicLink(t *testing.T) {
	be := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/magic-link/verify", r.URL.Path)
		if r.URL.Query().Get("token") != "code-1" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_, _ = w.Write([]byte(`{"ok":true,"token":"tok_abc","isNew":true}`))
	})

	res, err := be.VerifyMagicLink(context.Background(), "https://app.brandlens.io/auth/callback?token=code-1")
	require.NoError(t, err)
	assert.Equal(t, "tok_abc", res.Token)
	assert.True(t, res.IsNew)

	_, err = be.VerifyMagicLink(context.Background(), "wrong")
	assert.Equal(t, apperrors.Transient, apperrors.KindOf(err))

	_, err = be.VerifyMagicLink(context.Background(), "  ")
	assert.Equal(t, apperrors.NoToken, apperrors.KindOf(err))
}

func TestVerifyMagicLinkHeaderToken(t *testing.T) {
	be := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Authorization", "bearer hdr_tok")
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	res, err := be.VerifyMagicLink(context.Background(), "c")
	require.NoError(t, err)
	assert.Equal(t, "hdr_tok", res.Token)
}

func TestGetVersion(t *testing.T) {
	be := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"version":"2.4.1"}`))
	})
	v, err := be.GetVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2.4.1", v)
}

func TestRequestMagicLink(t *testing.T) {
	var got map[string]string
	be := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/magic-link", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	require.NoError(t, be.RequestMagicLink(context.Background(), " ana@example.com "))
	assert.Equal(t, map[string]string{"email": "ana@example.com"}, got)

	assert.Error(t, be.RequestMagicLink(context.Background(), "not-an-email"))
}

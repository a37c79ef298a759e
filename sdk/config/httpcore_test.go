// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildURL(t *testing.T) {
	core := NewHTTPCore(nil, Endpoints{
		PlatformAPIEndpoint: "https://platform.example/",
		MessagingServiceURL: "https://messaging.example",
	}, nil)

	assert.Equal(t, "https://platform.example/v1/accounts/a%2F1/portals?b=2&z=x+y",
		core.BuildURL(map[string]string{"z": "x y", "b": "2", "empty": ""}, "v1", "accounts", "a/1", "portals"))
	assert.Equal(t, "https://messaging.example/v1/transfers/u1/events",
		core.BuildMessagingURL("v1", "transfers", "u1", "events"))
}

func TestDoNonJSONError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gateway timeout", http.StatusGatewayTimeout)
	}))
	defer srv.Close()

	core := NewHTTPCore(srv.Client(), Endpoints{PlatformAPIEndpoint: srv.URL}, nil)
	_, status, err := core.Do(context.Background(), http.MethodGet, core.BuildURL(nil, "v1"), nil)

	assert.Equal(t, http.StatusGatewayTimeout, status)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Empty(t, apiErr.Message)
	assert.Equal(t, "platform responded with: 504 Gateway Timeout", err.Error())
}

func TestTokenRenewedAfterExpiry(t *testing.T) {
	var logins atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logins.Add(1)
		_, _ = w.Write([]byte(`{"access_token":"tok","expires_in":60}`))
	}))
	defer srv.Close()

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	ts := NewPasswordTokenSource(srv.Client(), srv.URL, "user", "secret").(*passwordTokenSource)
	ts.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		tok, err := ts.Token(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "tok", tok)
	}
	assert.Equal(t, int32(1), logins.Load())

	// inside the renewal window
	now = now.Add(45 * time.Second)
	_, err := ts.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), logins.Load())
}

func TestTokenResponseWithoutToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	_, err := NewPasswordTokenSource(srv.Client(), srv.URL, "user", "secret").Token(context.Background())
	assert.EqualError(t, err, "token response without access_token")
}

func TestSharedLoginSurvivesCallerCancellation(t *testing.T) {
	var logins atomic.Int32
	started := make(chan struct{}, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logins.Add(1)
		started <- struct{}{}
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`{"access_token":"tok","expires_in":600}`))
	}))
	defer srv.Close()

	ts := NewPasswordTokenSource(srv.Client(), srv.URL, "user", "secret")

	short, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	shortErr := make(chan error, 1)
	go func() {
		_, err := ts.Token(short)
		shortErr <- err
	}()

	// join the login started by the short-lived caller
	<-started
	tok, err := ts.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok", tok)

	assert.ErrorIs(t, <-shortErr, context.DeadlineExceeded)
	assert.Equal(t, int32(1), logins.Load())
}

// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

const (
	// tokens are renewed this long before they expire
	tokenExpirySkew = 30 * time.Second
	// upper bound of a shared login, independent of its callers
	loginTimeout = 30 * time.Second
)

type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// passwordTokenSource logs in lazily and caches the bearer token.
// Concurrent callers share a single login round-trip.
type passwordTokenSource struct {
	httpClient *http.Client
	tokenURL   string
	username   string
	password   string

	group singleflight.Group

	mu     sync.Mutex
	token  string
	expiry time.Time
	now    func() time.Time
}

func NewPasswordTokenSource(httpClient *http.Client, platformEndpoint, username, password string) TokenSource {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &passwordTokenSource{
		httpClient: httpClient,
		tokenURL:   joinURL(platformEndpoint, nil, "v1", "auth", "token"),
		username:   username,
		password:   password,
		now:        time.Now,
	}
}

func (ts *passwordTokenSource) Token(ctx context.Context) (string, error) {
	if tok, ok := ts.cached(); ok {
		return tok, nil
	}

	// the shared login outlives the caller that started it
	ch := ts.group.DoChan("token", func() (interface{}, error) {
		if tok, ok := ts.cached(); ok {
			return tok, nil
		}
		loginCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), loginTimeout)
		defer cancel()
		return ts.login(loginCtx)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (ts *passwordTokenSource) cached() (string, bool) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	if ts.token == "" {
		return "", false
	}
	if !ts.expiry.IsZero() && ts.now().Add(tokenExpirySkew).After(ts.expiry) {
		return "", false
	}
	return ts.token, true
}

func (ts *passwordTokenSource) login(ctx context.Context) (string, error) {
	payload, err := json.Marshal(map[string]string{
		"username": ts.username,
		"password": ts.password,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal credentials: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ts.tokenURL, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	body, _, err := doJSON(ts.httpClient, req)
	if err != nil {
		return "", err
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return "", fmt.Errorf("invalid token response: %w", err)
	}
	if tr.AccessToken == "" {
		return "", errors.New("token response without access_token")
	}

	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.token = tr.AccessToken
	ts.expiry = time.Time{}
	if tr.ExpiresIn > 0 {
		ts.expiry = ts.now().Add(time.Duration(tr.ExpiresIn) * time.Second)
	}
	return ts.token, nil
}

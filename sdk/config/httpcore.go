// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-Id"

type PlatformHTTP interface {
	BuildURL(params map[string]string, segments ...string) string
	BuildMessagingURL(segments ...string) string
	Do(ctx context.Context, method, url string, data []byte) ([]byte, int, error)
}

// APIError is returned for every non-2xx answer of the platform or messaging service.
type APIError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("platform responded with: %s - %s", e.Status, e.Message)
	}
	return fmt.Sprintf("platform responded with: %s", e.Status)
}

type httpCore struct {
	httpClient *http.Client
	endpoints  Endpoints
	tokens     TokenSource
}

func NewHTTPCore(httpClient *http.Client, endpoints Endpoints, tokens TokenSource) PlatformHTTP {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &httpCore{httpClient: httpClient, endpoints: endpoints, tokens: tokens}
}

func (httpCore *httpCore) BuildURL(params map[string]string, segments ...string) string {
	return joinURL(httpCore.endpoints.PlatformAPIEndpoint, params, segments...)
}

func (httpCore *httpCore) BuildMessagingURL(segments ...string) string {
	return joinURL(httpCore.endpoints.MessagingServiceURL, nil, segments...)
}

func joinURL(base string, params map[string]string, segments ...string) string {
	var sb strings.Builder
	sb.WriteString(strings.TrimSuffix(base, "/"))
	for _, s := range segments {
		sb.WriteString("/")
		sb.WriteString(url.PathEscape(s))
	}

	// sorted for stable URLs
	keys := make([]string, 0, len(params))
	for k, v := range params {
		if v == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for i, k := range keys {
		if i == 0 {
			sb.WriteString("?")
		} else {
			sb.WriteString("&")
		}
		sb.WriteString(url.QueryEscape(k))
		sb.WriteString("=")
		sb.WriteString(url.QueryEscape(params[k]))
	}
	return sb.String()
}

func (httpCore *httpCore) Do(ctx context.Context, method, url string, data []byte) ([]byte, int, error) {
	var body io.Reader
	if data != nil {
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, 0, err
	}
	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, uuid.NewString())

	if httpCore.tokens != nil {
		tok, err := httpCore.tokens.Token(ctx)
		if err != nil {
			return nil, 0, fmt.Errorf("authentication failed: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	return doJSON(httpCore.httpClient, req)
}

func doJSON(client *http.Client, req *http.Request) ([]byte, int, error) {
	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	b, rerr := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Status: resp.Status}
		var m map[string]any
		if json.Unmarshal(b, &m) == nil {
			if msg, ok := m["message"].(string); ok {
				apiErr.Message = msg
			}
		}
		return b, resp.StatusCode, apiErr
	}
	return b, resp.StatusCode, rerr
}

// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package explorer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
)

// ListAccounts performs GET {platform}/v1/accounts
func (s *ExplorerService) ListAccounts(ctx context.Context, req ListAccountsRequest) ([]AccountSummary, error) {
	params := map[string]string{}
	if req.MediaShuttleOnly {
		params["mediaShuttle"] = strconv.FormatBool(true)
	}

	url := s.http.BuildURL(params, "v1", "accounts")
	body, status, err := s.http.Do(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("list accounts failed (status %d): %w", status, err)
	}

	var resp accountsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("json parsing failed: %w", err)
	}
	return resp.MediaShuttleAccounts, nil
}

// FindAccount returns the first account named exactly name, in listing order.
func FindAccount(accounts []AccountSummary, name string) (AccountSummary, bool) {
	for _, a := range accounts {
		if a.Name == name {
			return a, true
		}
	}
	return AccountSummary{}, false
}

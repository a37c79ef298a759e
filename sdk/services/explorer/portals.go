// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package explorer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ListPortals performs GET {platform}/v1/accounts/{accountId}/services/{serviceId}/portals
func (s *ExplorerService) ListPortals(ctx context.Context, req ListPortalsRequest) ([]PortalSummary, error) {
	if req.AccountID == "" {
		return nil, errors.New("account id not specified")
	}
	if req.ServiceID == "" {
		return nil, errors.New("service id not specified")
	}

	url := s.http.BuildURL(nil, "v1", "accounts", req.AccountID, "services", req.ServiceID, "portals")
	body, status, err := s.http.Do(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("list portals failed (status %d): %w", status, err)
	}

	var portals []PortalSummary
	if err := json.Unmarshal(body, &portals); err != nil {
		return nil, fmt.Errorf("json parsing failed: %w", err)
	}
	return portals, nil
}

// FindSharePortal returns the first Share portal named exactly name, in listing order.
func FindSharePortal(portals []PortalSummary, name string) (PortalSummary, bool) {
	for _, p := range portals {
		if p.Type == PortalTypeShare && p.Name == name {
			return p, true
		}
	}
	return PortalSummary{}, false
}

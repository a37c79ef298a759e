// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package portal

import (
	"context"

	"github.com/scc-digitalhub/mediashuttle-cli-sdk/sdk/services/explorer"
)

// PortalSelection holds the identifiers an upload session is created against.
type PortalSelection struct {
	PortalID  string `json:"portalId"  yaml:"portalId"`
	ServiceID string `json:"serviceId" yaml:"serviceId"`
	AccountID string `json:"accountId" yaml:"accountId"`
}

// Explorer is the listing surface the resolver needs; *explorer.ExplorerService implements it.
type Explorer interface {
	ListAccounts(ctx context.Context, req explorer.ListAccountsRequest) ([]explorer.AccountSummary, error)
	ListPortals(ctx context.Context, req explorer.ListPortalsRequest) ([]explorer.PortalSummary, error)
}

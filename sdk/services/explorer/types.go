// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package explorer

const PortalTypeShare = "Share"

type AccountSummary struct {
	AccountID string `json:"accountId" yaml:"accountId"`
	ServiceID string `json:"serviceId" yaml:"serviceId"`
	Name      string `json:"name"      yaml:"name"`
}

type PortalSummary struct {
	PortalID string `json:"portalId"      yaml:"portalId"`
	Type     string `json:"type"          yaml:"type"`
	Name     string `json:"name"          yaml:"name"`
	URL      string `json:"url,omitempty" yaml:"url,omitempty"`
}

type ListAccountsRequest struct {
	// restrict the listing to accounts with a Media Shuttle subscription
	MediaShuttleOnly bool
}

type ListPortalsRequest struct {
	AccountID string
	ServiceID string
}

type accountsResponse struct {
	MediaShuttleAccounts []AccountSummary `json:"mediaShuttleAccounts"`
}

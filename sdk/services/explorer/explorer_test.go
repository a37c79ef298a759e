// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package explorer_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scc-digitalhub/mediashuttle-cli-sdk/sdk/config"
	"github.com/scc-digitalhub/mediashuttle-cli-sdk/sdk/services/explorer"
	"github.com/scc-digitalhub/mediashuttle-cli-sdk/sdk/services/session"
)

func newPlatform(t *testing.T, mux *http.ServeMux) *explorer.ExplorerService {
	t.Helper()
	mux.HandleFunc("POST /v1/auth/token", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"access_token":"tok","expires_in":600}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	sess := session.NewSession("user", "secret",
		session.WithEndpoints(config.Endpoints{PlatformAPIEndpoint: srv.URL, MessagingServiceURL: srv.URL}))
	svc, err := explorer.NewExplorerService(sess)
	require.NoError(t, err)
	return svc
}

func TestListAccounts(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/accounts", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "true", r.URL.Query().Get("mediaShuttle"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"mediaShuttleAccounts":[
			{"accountId":"a1","serviceId":"s1","name":"Acme"},
			{"accountId":"a2","serviceId":"s2","name":"Globex"}]}`))
	})
	svc := newPlatform(t, mux)

	accounts, err := svc.ListAccounts(context.Background(), explorer.ListAccountsRequest{MediaShuttleOnly: true})
	require.NoError(t, err)
	assert.Equal(t, []explorer.AccountSummary{
		{AccountID: "a1", ServiceID: "s1", Name: "Acme"},
		{AccountID: "a2", ServiceID: "s2", Name: "Globex"},
	}, accounts)
}

func TestListAccountsServerError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/accounts", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"message":"upstream down"}`))
	})
	svc := newPlatform(t, mux)

	_, err := svc.ListAccounts(context.Background(), explorer.ListAccountsRequest{})
	require.Error(t, err)

	var apiErr *config.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Contains(t, err.Error(), "upstream down")
}

func TestListPortals(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/accounts/a1/services/s1/portals", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
			{"portalId":"p0","type":"Send","name":"Drop"},
			{"portalId":"p1","type":"Share","name":"Drop","url":"https://acme.mediashuttle.com"}]`))
	})
	svc := newPlatform(t, mux)

	portals, err := svc.ListPortals(context.Background(), explorer.ListPortalsRequest{AccountID: "a1", ServiceID: "s1"})
	require.NoError(t, err)
	require.Len(t, portals, 2)
	assert.Equal(t, "Send", portals[0].Type)
	assert.Equal(t, explorer.PortalSummary{
		PortalID: "p1", Type: explorer.PortalTypeShare, Name: "Drop", URL: "https://acme.mediashuttle.com",
	}, portals[1])
}

func TestListPortalsRequiresIDs(t *testing.T) {
	svc := newPlatform(t, http.NewServeMux())

	_, err := svc.ListPortals(context.Background(), explorer.ListPortalsRequest{ServiceID: "s1"})
	assert.EqualError(t, err, "account id not specified")

	_, err = svc.ListPortals(context.Background(), explorer.ListPortalsRequest{AccountID: "a1"})
	assert.EqualError(t, err, "service id not specified")
}

func TestListAccountsLive(t *testing.T) {
	user := os.Getenv("MEDIASHUTTLE_USER")
	password := os.Getenv("MEDIASHUTTLE_PASSWORD")
	if user == "" || password == "" {
		t.Skip("Missing env vars (MEDIASHUTTLE_USER, MEDIASHUTTLE_PASSWORD), skipping integration test.")
	}

	svc, err := explorer.NewExplorerService(session.NewSession(user, password))
	require.NoError(t, err)

	accounts, err := svc.ListAccounts(context.Background(), explorer.ListAccountsRequest{MediaShuttleOnly: true})
	require.NoError(t, err)
	t.Logf("OK, found %d accounts", len(accounts))
}

func TestFindFirstMatch(t *testing.T) {
	accounts := []explorer.AccountSummary{
		{AccountID: "a1", ServiceID: "s1", Name: "acme"},
		{AccountID: "a2", ServiceID: "s2", Name: "Acme"},
		{AccountID: "a3", ServiceID: "s3", Name: "Acme"},
	}
	acct, ok := explorer.FindAccount(accounts, "Acme")
	require.True(t, ok)
	assert.Equal(t, "a2", acct.AccountID)
	_, ok = explorer.FindAccount(accounts, "Other")
	assert.False(t, ok)

	portals := []explorer.PortalSummary{
		{PortalID: "p1", Type: "Send", Name: "Drop"},
		{PortalID: "p2", Type: explorer.PortalTypeShare, Name: "Drop"},
		{PortalID: "p3", Type: explorer.PortalTypeShare, Name: "Drop"},
	}
	p, ok := explorer.FindSharePortal(portals, "Drop")
	require.True(t, ok)
	assert.Equal(t, "p2", p.PortalID)
	_, ok = explorer.FindSharePortal(portals[:1], "Drop")
	assert.False(t, ok)
}

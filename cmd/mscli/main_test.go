// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scc-digitalhub/mediashuttle-cli-sdk/sdk/result"
)

func fakePlatform(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/auth/token", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"access_token":"tok","expires_in":600}`))
	})
	mux.HandleFunc("GET /v1/accounts", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"mediaShuttleAccounts":[{"accountId":"a1","serviceId":"s1","name":"Acme"}]}`))
	})
	mux.HandleFunc("GET /v1/accounts/a1/services/s1/portals", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"portalId":"p1","type":"Share","name":"Drop"}]`))
	})
	mux.HandleFunc("POST /v1/accounts/a1/services/s1/portals/p1/uploads", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"uploadId":"u1","storage":{"bucket":"b","region":"eu-west-1"}}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	var out bytes.Buffer
	cmd := newRootCmd(&app{})
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	err := cmd.Execute()
	return out.String(), err
}

func setupEnv(t *testing.T) string {
	t.Helper()
	srv := fakePlatform(t)
	t.Setenv("MEDIASHUTTLE_USER", "user")
	t.Setenv("MEDIASHUTTLE_PASSWORD", "secret")
	t.Setenv("PLATFORM_API_ENDPOINT", srv.URL)
	t.Setenv("MESSAGING_SERVICE_URL", srv.URL)
	return filepath.Join(t.TempDir(), "ms.ini")
}

func TestResolveCommand(t *testing.T) {
	iniPath := setupEnv(t)

	out, err := run(t, "", "--config", iniPath, "-o", "json", "resolve", "Acme", "Drop")
	require.NoError(t, err)
	assert.JSONEq(t, `{"portalId":"p1","serviceId":"s1","accountId":"a1"}`, out)
}

func TestResolveCommandNotFound(t *testing.T) {
	iniPath := setupEnv(t)

	_, err := run(t, "", "--config", iniPath, "resolve", "Other", "Drop")
	assert.ErrorIs(t, err, result.ErrAccountNotFound)
}

func TestPortalsCommand(t *testing.T) {
	iniPath := setupEnv(t)

	out, err := run(t, "", "--config", iniPath, "-o", "json", "portals", "Acme")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"portalId":"p1","type":"Share","name":"Drop"}]`, out)

	_, err = run(t, "", "--config", iniPath, "portals", "Other")
	assert.ErrorIs(t, err, result.ErrAccountNotFound)
}

func TestCommandHonoursCancellation(t *testing.T) {
	iniPath := setupEnv(t)
	viper.Reset()
	t.Cleanup(viper.Reset)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cmd := newRootCmd(&app{})
	cmd.SetArgs([]string{"--config", iniPath, "resolve", "Acme", "Drop"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.ExecuteContext(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestUploadStageOnlyFromPrompt(t *testing.T) {
	iniPath := setupEnv(t)
	path := filepath.Join(t.TempDir(), "clip.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	out, err := run(t, path+"\n", "--config", iniPath, "-o", "json",
		"upload", "--account", "Acme", "--portal", "Drop", "--dest", "/in", "--stage-only")
	require.NoError(t, err)

	var files []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &files))
	require.Len(t, files, 1)
	assert.Equal(t, "clip.txt", files[0]["relative_path"])
}

func TestConfigurePersistsDefaults(t *testing.T) {
	iniPath := setupEnv(t)

	_, err := run(t, "", "--config", iniPath, "configure", "--account", "Acme", "--portal", "Drop")
	require.NoError(t, err)

	out, err := run(t, "", "--config", iniPath, "resolve")
	require.NoError(t, err)
	assert.Contains(t, out, "portal:  p1")
}

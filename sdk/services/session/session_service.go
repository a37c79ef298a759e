// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/scc-digitalhub/mediashuttle-cli-sdk/sdk/config"
)

type Credentials struct {
	Username string
	Password string
}

// Session is the authenticated context shared by the explorer and transfer
// services. It is never mutated after NewSession returns.
type Session struct {
	endpoints config.Endpoints
	http      config.PlatformHTTP
	logger    *zap.Logger
}

type options struct {
	endpoints  config.Endpoints
	httpClient *http.Client
	logger     *zap.Logger
}

type Option func(*options)

func WithEndpoints(endpoints config.Endpoints) Option {
	return func(o *options) { o.endpoints = endpoints }
}

func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// NewSession binds the credentials to the platform and messaging endpoints.
// Nothing is sent until the first remote call, so a wrong password surfaces
// there rather than here.
func NewSession(username, password string, opts ...Option) *Session {
	o := options{endpoints: config.DefaultEndpoints()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}

	creds := Credentials{Username: username, Password: password}
	tokens := config.NewPasswordTokenSource(o.httpClient, o.endpoints.PlatformAPIEndpoint, creds.Username, creds.Password)

	return &Session{
		endpoints: o.endpoints,
		http:      config.NewHTTPCore(o.httpClient, o.endpoints, tokens),
		logger:    o.logger,
	}
}

// NewSessionFromConfig is NewSession for a platform config loaded by the CLI.
func NewSessionFromConfig(conf config.PlatformConfig, opts ...Option) *Session {
	endpoints := config.DefaultEndpoints()
	if conf.PlatformAPIEndpoint != "" {
		endpoints.PlatformAPIEndpoint = conf.PlatformAPIEndpoint
	}
	if conf.MessagingServiceURL != "" {
		endpoints.MessagingServiceURL = conf.MessagingServiceURL
	}
	return NewSession(conf.Username, conf.Password, append([]Option{WithEndpoints(endpoints)}, opts...)...)
}

func (s *Session) Endpoints() config.Endpoints { return s.endpoints }

func (s *Session) HTTP() config.PlatformHTTP { return s.http }

func (s *Session) Logger() *zap.Logger { return s.logger }

// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package explorer

import (
	"errors"

	"github.com/scc-digitalhub/mediashuttle-cli-sdk/sdk/config"
	"github.com/scc-digitalhub/mediashuttle-cli-sdk/sdk/services/session"
)

type ExplorerService struct {
	http config.PlatformHTTP
}

func NewExplorerService(sess *session.Session) (*ExplorerService, error) {
	if sess == nil {
		return nil, errors.New("session is required")
	}
	return &ExplorerService{http: sess.HTTP()}, nil
}

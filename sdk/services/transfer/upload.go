// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package transfer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/scc-digitalhub/mediashuttle-cli-sdk/sdk/result"
	"github.com/scc-digitalhub/mediashuttle-cli-sdk/sdk/services/portal"
)

// CreateUpload asks the platform for a new upload session on the selected
// portal, writing into destinationPath with overwrite-on-conflict.
// It never returns an error: request failures come back as a transport
// error outcome, an answer without a session as a not-found outcome.
func (s *TransferService) CreateUpload(ctx context.Context, sel portal.PortalSelection, destinationPath string) result.Outcome[*UploadSession] {
	opts := UploadOptions{
		PortalID:        sel.PortalID,
		ServiceID:       sel.ServiceID,
		AccountID:       sel.AccountID,
		Force:           true,
		DestinationPath: destinationPath,
	}
	if opts.PortalID == "" || opts.ServiceID == "" || opts.AccountID == "" {
		return result.TransportError[*UploadSession](errors.New("incomplete portal selection"))
	}

	payload, err := json.Marshal(opts)
	if err != nil {
		return result.TransportError[*UploadSession](fmt.Errorf("failed to marshal upload options: %w", err))
	}

	url := s.http.BuildURL(nil, "v1", "accounts", opts.AccountID, "services", opts.ServiceID, "portals", opts.PortalID, "uploads")
	body, status, err := s.http.Do(ctx, http.MethodPost, url, payload)
	if err != nil {
		s.logger.Warn("upload creation failed", zap.String("portalId", opts.PortalID), zap.Int("status", status), zap.Error(err))
		return result.TransportError[*UploadSession](fmt.Errorf("failed to create upload: %w", err))
	}

	var resp uploadResponse
	if len(body) > 0 {
		if err := json.Unmarshal(body, &resp); err != nil {
			return result.TransportError[*UploadSession](fmt.Errorf("failed to parse response: %w", err))
		}
	}
	if resp.UploadID == "" {
		s.logger.Info("platform returned no upload session", zap.String("portalId", opts.PortalID))
		return result.NotFound[*UploadSession](result.SubjectUpload, opts.PortalID)
	}

	us := &UploadSession{
		id:        resp.UploadID,
		options:   opts,
		expiresOn: resp.ExpiresOn,
	}
	if resp.DestinationPath != "" {
		us.options.DestinationPath = resp.DestinationPath
	}
	if resp.Storage != nil {
		us.storage = *resp.Storage
	}

	s.logger.Debug("upload session created", zap.String("uploadId", us.id), zap.String("destination", us.options.DestinationPath))
	return result.Found(us)
}

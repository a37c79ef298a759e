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
	"os"
	"path"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/scc-digitalhub/mediashuttle-cli-sdk/sdk/config"
)

// Start transfers the staged files of the session:
// - UPLOADING is reported to the messaging service
// - every file goes to s3://<bucket>/<prefix>/<destination>/<relative path>
// - COMPLETED (with the file list) or ERROR is reported at the end
func (s *TransferService) Start(ctx context.Context, us *UploadSession, hook *config.ProgressHook) (*TransferResult, error) {
	if us == nil {
		return nil, errors.New("upload session is required")
	}
	files := us.Staged()
	if len(files) == 0 {
		return nil, ErrNothingSelected
	}
	if us.storage.Bucket == "" {
		return nil, errors.New("upload session has no storage target")
	}

	if err := s.notify(ctx, us, transferEvent{State: StateUploading}); err != nil {
		return nil, err
	}

	fail := func(err error) (*TransferResult, error) {
		if nerr := s.notify(ctx, us, transferEvent{State: StateError, Error: err.Error()}); nerr != nil {
			s.logger.Warn("failed to report transfer error", zap.String("uploadId", us.id), zap.Error(nerr))
		}
		return nil, err
	}

	store, err := s.newStore(ctx, us.s3Config())
	if err != nil {
		return fail(fmt.Errorf("storage init failed: %w", err))
	}

	res := &TransferResult{UploadID: us.id, Files: files}
	for _, f := range files {
		key := objectKey(us.storage.Prefix, us.options.DestinationPath, f.RelPath)
		obj, err := uploadOne(ctx, store, us.storage.Bucket, key, f, hook)
		if err != nil {
			return fail(fmt.Errorf("upload error (%s): %w", f.Path, err))
		}
		s.logger.Debug("file uploaded", zap.String("uploadId", us.id), zap.String("key", key))
		res.Objects = append(res.Objects, *obj)
	}

	if err := s.notify(ctx, us, transferEvent{State: StateCompleted, Files: files}); err != nil {
		return res, fmt.Errorf("upload succeeded but failed to report completion: %w", err)
	}
	return res, nil
}

func uploadOne(ctx context.Context, store ObjectStore, bucket, key string, f FileDescriptor, hook *config.ProgressHook) (*config.UploadedObject, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open local file: %w", err)
	}
	defer file.Close()
	return store.PutFile(ctx, config.ObjectTarget{Bucket: bucket, Key: key, ContentType: f.ContentType}, file, hook)
}

// objectKey places rel under prefix/destination. destination and rel are
// cleaned as rooted paths first, so ".." never climbs above the prefix.
func objectKey(prefix, destination, rel string) string {
	dest := path.Clean("/" + destination)
	name := path.Clean("/" + rel)
	return strings.TrimPrefix(path.Join("/", prefix, dest, name), "/")
}

// notify posts a transfer event to {messaging}/v1/transfers/{uploadId}/events
func (s *TransferService) notify(ctx context.Context, us *UploadSession, ev transferEvent) error {
	ev.EventID = uuid.NewString()
	ev.UploadID = us.id

	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal transfer event: %w", err)
	}
	url := s.http.BuildMessagingURL("v1", "transfers", us.id, "events")
	if _, status, err := s.http.Do(ctx, http.MethodPost, url, payload); err != nil {
		return fmt.Errorf("failed to report state %s (status %d): %w", ev.State, status, err)
	}
	return nil
}

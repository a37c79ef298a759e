// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package transfer

import (
	"context"
	"errors"
	"os"

	"go.uber.org/zap"

	"github.com/scc-digitalhub/mediashuttle-cli-sdk/sdk/config"
	"github.com/scc-digitalhub/mediashuttle-cli-sdk/sdk/services/session"
)

// ObjectStore writes one local file under bucket/key; *config.S3Client implements it.
type ObjectStore interface {
	PutFile(ctx context.Context, target config.ObjectTarget, file *os.File, hook *config.ProgressHook) (*config.UploadedObject, error)
}

type StoreFactory func(ctx context.Context, cfg config.S3Config) (ObjectStore, error)

type TransferService struct {
	http     config.PlatformHTTP
	logger   *zap.Logger
	newStore StoreFactory
}

type Option func(*TransferService)

// WithStoreFactory replaces the S3 client used by Start.
func WithStoreFactory(f StoreFactory) Option {
	return func(s *TransferService) { s.newStore = f }
}

func NewTransferService(sess *session.Session, opts ...Option) (*TransferService, error) {
	if sess == nil {
		return nil, errors.New("session is required")
	}
	s := &TransferService{
		http:     sess.HTTP(),
		logger:   sess.Logger().Named("transfer"),
		newStore: newS3Store,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func newS3Store(ctx context.Context, cfg config.S3Config) (ObjectStore, error) {
	return config.NewS3Client(ctx, cfg)
}

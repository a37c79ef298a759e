// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package transfer

import (
	"sync"
	"time"

	"github.com/scc-digitalhub/mediashuttle-cli-sdk/sdk/config"
)

// -------- Upload session --------

type UploadOptions struct {
	PortalID        string `json:"portalId"`
	ServiceID       string `json:"serviceId"`
	AccountID       string `json:"accountId"`
	Force           bool   `json:"force"` // overwrite on conflict, enforced by the platform
	DestinationPath string `json:"destinationPath"`
}

// StorageTarget is where the platform wants the files of an upload written,
// together with the temporary credentials to do so.
type StorageTarget struct {
	EndpointURL  string `json:"endpointUrl,omitempty"`
	Region       string `json:"region"`
	Bucket       string `json:"bucket"`
	Prefix       string `json:"prefix,omitempty"`
	AccessKey    string `json:"accessKey"`
	SecretKey    string `json:"secretKey"`
	SessionToken string `json:"sessionToken,omitempty"`
}

type uploadResponse struct {
	UploadID        string         `json:"uploadId"`
	DestinationPath string         `json:"destinationPath"`
	ExpiresOn       time.Time      `json:"expiresOn"`
	Storage         *StorageTarget `json:"storage"`
}

// UploadSession is a pending transfer created against a resolved portal.
// It owns the list of files staged into it.
type UploadSession struct {
	id        string
	options   UploadOptions
	storage   StorageTarget
	expiresOn time.Time

	mu     sync.Mutex
	staged []FileDescriptor
}

func (u *UploadSession) ID() string { return u.id }

func (u *UploadSession) Options() UploadOptions { return u.options }

func (u *UploadSession) ExpiresOn() time.Time { return u.expiresOn }

// Staged returns a copy of the files added so far.
func (u *UploadSession) Staged() []FileDescriptor {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]FileDescriptor(nil), u.staged...)
}

func (u *UploadSession) s3Config() config.S3Config {
	return config.S3Config{
		AccessKey:   u.storage.AccessKey,
		SecretKey:   u.storage.SecretKey,
		AccessToken: u.storage.SessionToken,
		Region:      u.storage.Region,
		EndpointURL: u.storage.EndpointURL,
	}
}

// -------- Staging --------

type FileDescriptor struct {
	Path         string    `json:"path"          yaml:"path"`
	Name         string    `json:"name"          yaml:"name"`
	RelPath      string    `json:"relative_path" yaml:"relative_path"`
	Size         int64     `json:"size"          yaml:"size"`
	ContentType  string    `json:"content_type"  yaml:"content_type"`
	LastModified time.Time `json:"last_modified" yaml:"last_modified"`
}

// -------- Transfer --------

type TransferResult struct {
	UploadID string                  `json:"upload_id" yaml:"upload_id"`
	Files    []FileDescriptor        `json:"files"     yaml:"files"`
	Objects  []config.UploadedObject `json:"objects"   yaml:"objects"`
}

const (
	StateUploading = "UPLOADING"
	StateCompleted = "COMPLETED"
	StateError     = "ERROR"
)

type transferEvent struct {
	EventID  string           `json:"eventId"`
	UploadID string           `json:"uploadId"`
	State    string           `json:"state"`
	Files    []FileDescriptor `json:"files,omitempty"`
	Error    string           `json:"error,omitempty"`
}

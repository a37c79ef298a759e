// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// files above this size go through the multipart uploader
const multipartThreshold = 100 * 1024 * 1024

// S3Client writes staged files into the storage target of an upload session.
type S3Client struct {
	s3 *s3.Client
}

// NewS3Client builds a client bound to the temporary credentials that the
// platform hands out with an upload session.
func NewS3Client(ctx context.Context, target S3Config) (*S3Client, error) {
	if target.AccessKey == "" || target.SecretKey == "" {
		return nil, errors.New("storage target without credentials")
	}
	provider := credentials.NewStaticCredentialsProvider(target.AccessKey, target.SecretKey, target.AccessToken)

	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(aws.NewCredentialsCache(provider)),
		awsconfig.WithRegion(target.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if target.EndpointURL == "" {
			return
		}
		o.BaseEndpoint = aws.String(target.EndpointURL)
		o.UsePathStyle = true
	})
	return &S3Client{s3: client}, nil
}

// ObjectTarget addresses one object inside the storage target of an upload.
type ObjectTarget struct {
	Bucket      string
	Key         string
	ContentType string
}

type UploadedObject struct {
	Key       string `json:"key"                  yaml:"key"`
	ETag      string `json:"etag,omitempty"       yaml:"etag,omitempty"`
	VersionID string `json:"version_id,omitempty" yaml:"version_id,omitempty"`
	Location  string `json:"location,omitempty"   yaml:"location,omitempty"`
	UploadID  string `json:"upload_id,omitempty"  yaml:"upload_id,omitempty"`
}

// ProgressHook receives per-object transfer notifications. Any callback may be nil.
type ProgressHook struct {
	OnStart    func(key string, totalBytes int64)
	OnProgress func(key string, sent, totalBytes int64)
	OnDone     func(key string, totalBytes int64, took time.Duration)
}

// countingReader reports how much of the body the SDK has consumed,
// at most once per interval and always when the body is exhausted.
type countingReader struct {
	r        io.Reader
	key      string
	total    int64
	sent     int64
	every    time.Duration
	last     time.Time
	progress func(key string, sent, total int64)
}

func (cr *countingReader) Read(p []byte) (int, error) {
	n, err := cr.r.Read(p)
	cr.sent += int64(n)
	if cr.progress == nil || n == 0 {
		return n, err
	}
	if now := time.Now(); cr.sent == cr.total || now.Sub(cr.last) >= cr.every {
		cr.progress(cr.key, cr.sent, cr.total)
		cr.last = now
	}
	return n, err
}

// PutFile writes file to target. Files above multipartThreshold go through
// the multipart uploader, smaller ones through a single PutObject.
func (c *S3Client) PutFile(ctx context.Context, target ObjectTarget, file *os.File, hook *ProgressHook) (*UploadedObject, error) {
	if hook == nil {
		hook = &ProgressHook{}
	}

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat error: %w", err)
	}
	size := info.Size()
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek error: %w", err)
	}

	if hook.OnStart != nil {
		hook.OnStart(target.Key, size)
	}
	body := &countingReader{
		r:        file,
		key:      target.Key,
		total:    size,
		every:    250 * time.Millisecond,
		progress: hook.OnProgress,
	}

	started := time.Now()
	var obj *UploadedObject
	if size > multipartThreshold {
		obj, err = c.putMultipart(ctx, target, body)
	} else {
		obj, err = c.putSingle(ctx, target, body, size)
	}
	if err != nil {
		return nil, err
	}
	if hook.OnDone != nil {
		hook.OnDone(target.Key, size, time.Since(started))
	}
	return obj, nil
}

func (c *S3Client) putSingle(ctx context.Context, target ObjectTarget, body io.Reader, size int64) (*UploadedObject, error) {
	out, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(target.Bucket),
		Key:           aws.String(target.Key),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(target.ContentType),
	})
	if err != nil {
		return nil, fmt.Errorf("put object %s: %w", target.Key, err)
	}
	return &UploadedObject{
		Key:       target.Key,
		ETag:      aws.ToString(out.ETag),
		VersionID: aws.ToString(out.VersionId),
	}, nil
}

func (c *S3Client) putMultipart(ctx context.Context, target ObjectTarget, body io.Reader) (*UploadedObject, error) {
	out, err := manager.NewUploader(c.s3).Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(target.Bucket),
		Key:         aws.String(target.Key),
		Body:        body,
		ContentType: aws.String(target.ContentType),
	})
	if err != nil {
		return nil, fmt.Errorf("multipart upload %s: %w", target.Key, err)
	}
	return &UploadedObject{
		Key:       target.Key,
		ETag:      aws.ToString(out.ETag),
		VersionID: aws.ToString(out.VersionID),
		Location:  out.Location,
		UploadID:  out.UploadID,
	}, nil
}

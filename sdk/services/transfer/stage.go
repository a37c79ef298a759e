// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package transfer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
)

var ErrNothingSelected = errors.New("no files selected")

// AddFiles runs the selector and stages every selected file into the
// session. Directories are walked recursively and keep their own name as
// the first element of each relative path. Paths already staged are skipped;
// distinct files landing on the same relative path get a numbered name
// ("clip (1).txt") so that no object is written twice.
// It returns the files added by this call.
func (u *UploadSession) AddFiles(ctx context.Context, selector FileSelector) ([]FileDescriptor, error) {
	if selector == nil {
		return nil, errors.New("file selector is required")
	}
	paths, err := selector.Select(ctx)
	if err != nil {
		return nil, fmt.Errorf("file selection failed: %w", err)
	}
	if len(paths) == 0 {
		return nil, ErrNothingSelected
	}

	var selected []FileDescriptor
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		files, err := describePath(p)
		if err != nil {
			return nil, err
		}
		selected = append(selected, files...)
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	seen := make(map[string]struct{}, len(u.staged))
	taken := make(map[string]struct{}, len(u.staged))
	for _, f := range u.staged {
		seen[f.Path] = struct{}{}
		taken[f.RelPath] = struct{}{}
	}
	var added []FileDescriptor
	for _, f := range selected {
		if _, dup := seen[f.Path]; dup {
			continue
		}
		seen[f.Path] = struct{}{}
		f.RelPath = uniqueRelPath(f.RelPath, taken)
		taken[f.RelPath] = struct{}{}
		added = append(added, f)
	}
	u.staged = append(u.staged, added...)
	return added, nil
}

// uniqueRelPath numbers the file name of rel until it is not in taken.
func uniqueRelPath(rel string, taken map[string]struct{}) string {
	if _, clash := taken[rel]; !clash {
		return rel
	}
	dir, file := path.Split(rel)
	ext := path.Ext(file)
	stem := strings.TrimSuffix(file, ext)
	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s%s (%d)%s", dir, stem, n, ext)
		if _, clash := taken[candidate]; !clash {
			return candidate
		}
	}
}

func describePath(p string) ([]FileDescriptor, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve %s: %w", p, err)
	}
	st, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("cannot access input: %w", err)
	}
	if !st.IsDir() {
		fd, err := describeFile(abs, st.Name(), st)
		if err != nil {
			return nil, err
		}
		return []FileDescriptor{fd}, nil
	}

	root := filepath.Base(abs)
	var out []FileDescriptor
	err = filepath.Walk(abs, func(walked string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return fmt.Errorf("walk error: %w", walkErr)
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(abs, walked)
		if err != nil {
			return fmt.Errorf("relative path error: %w", err)
		}
		fd, err := describeFile(walked, filepath.Join(root, rel), info)
		if err != nil {
			return err
		}
		out = append(out, fd)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate local directory: %w", err)
	}
	return out, nil
}

func describeFile(localPath, rel string, info os.FileInfo) (FileDescriptor, error) {
	mt, err := mimetype.DetectFile(localPath)
	if err != nil {
		return FileDescriptor{}, fmt.Errorf("cannot read %s: %w", localPath, err)
	}
	return FileDescriptor{
		Path:         localPath,
		Name:         info.Name(),
		RelPath:      filepath.ToSlash(rel),
		Size:         info.Size(),
		ContentType:  mt.String(),
		LastModified: info.ModTime().UTC(),
	}, nil
}

// Staging is the pending result of StageUpload.
type Staging struct {
	done  chan struct{}
	files []FileDescriptor
	err   error
}

func (st *Staging) finish(files []FileDescriptor, err error) {
	st.files, st.err = files, err
	close(st.done)
}

// Done is closed once the selection has been staged or has failed.
func (st *Staging) Done() <-chan struct{} { return st.done }

// Wait blocks until staging completes or ctx is done.
func (st *Staging) Wait(ctx context.Context) ([]FileDescriptor, error) {
	select {
	case <-st.done:
		return st.files, st.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// OnComplete calls fn with the staging result from a separate goroutine.
func (st *Staging) OnComplete(fn func(files []FileDescriptor, err error)) {
	go func() {
		<-st.done
		fn(st.files, st.err)
	}()
}

// StageUpload collects a file selection into the upload session in the
// background. Failures (selector errors, unreadable paths, an empty
// selection, cancellation) are reported through the returned Staging.
func (s *TransferService) StageUpload(ctx context.Context, us *UploadSession, selector FileSelector) *Staging {
	st := &Staging{done: make(chan struct{})}
	if us == nil {
		st.finish(nil, errors.New("upload session is required"))
		return st
	}

	go func() {
		files, err := us.AddFiles(ctx, selector)
		if err != nil {
			s.logger.Warn("staging failed", zap.String("uploadId", us.id), zap.Error(err))
		} else {
			s.logger.Info("files staged", zap.String("uploadId", us.id), zap.Any("files", files))
		}
		st.finish(files, err)
	}()
	return st
}

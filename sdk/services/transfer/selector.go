// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package transfer

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// FileSelector stands in for the host's file picker: it returns the local
// paths (files or directories) the user chose.
type FileSelector interface {
	Select(ctx context.Context) ([]string, error)
}

// PathSelector selects a fixed list of paths.
type PathSelector []string

func (p PathSelector) Select(_ context.Context) ([]string, error) {
	return append([]string(nil), p...), nil
}

// PromptSelector asks for one path per line on Out and reads them from In
// until an empty line or EOF.
type PromptSelector struct {
	In  io.Reader
	Out io.Writer
}

func (p PromptSelector) Select(ctx context.Context) ([]string, error) {
	if p.Out != nil {
		fmt.Fprintln(p.Out, "Enter the paths to upload, one per line (empty line to finish):")
	}

	var paths []string
	sc := bufio.NewScanner(p.In)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			break
		}
		paths = append(paths, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("error in reading user input: %w", err)
	}
	return paths, nil
}

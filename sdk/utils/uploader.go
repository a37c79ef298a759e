// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/scc-digitalhub/mediashuttle-cli-sdk/sdk/config"
)

// NewProgressHook renders the progress of a transfer of files objects
// (totalBytes overall) on out.
// verbose: one block per file with its own percentage.
// otherwise: a single global progress line.
func NewProgressHook(out io.Writer, verbose bool, files int, totalBytes int64) *config.ProgressHook {
	if verbose {
		return verboseHook(out, files)
	}
	return globalHook(out, files, totalBytes)
}

func verboseHook(out io.Writer, files int) *config.ProgressHook {
	var idx int
	return &config.ProgressHook{
		OnStart: func(key string, total int64) {
			idx++
			fmt.Fprintf(out, "   [%d/%d] %s\n", idx, files, key)
			if total > 0 {
				fmt.Fprintf(out, "      └─ size: %s\n", humanize.IBytes(uint64(total)))
			}
		},
		OnProgress: func(key string, sent, total int64) {
			if total <= 0 {
				return
			}
			pct := float64(sent) / float64(total) * 100
			fmt.Fprintf(out, "\r      └─ uploading: %6.2f%%", pct)
		},
		OnDone: func(key string, total int64, took time.Duration) {
			if total > 0 {
				fmt.Fprintf(out, "\r      └─ done:      100.00%% in %s\n", took.Truncate(100*time.Millisecond))
			} else {
				fmt.Fprintf(out, "      └─ done in %s\n", took.Truncate(100*time.Millisecond))
			}
		},
	}
}

func globalHook(out io.Writer, files int, totalBytes int64) *config.ProgressHook {
	line := newTransferLine(out, files, totalBytes)
	var prev int64
	return &config.ProgressHook{
		OnStart: func(string, int64) {
			prev = 0
		},
		OnProgress: func(_ string, sent, _ int64) {
			if sent > prev {
				line.sent(sent - prev)
				line.draw(false)
			}
			prev = sent
		},
		OnDone: func(_ string, total int64, _ time.Duration) {
			if total > prev {
				line.sent(total - prev)
			}
			if line.fileDone() {
				line.close()
				return
			}
			line.draw(true)
		},
	}
}

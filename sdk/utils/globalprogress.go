// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
)

// transferLine redraws a single status line for a whole upload session:
// files finished, bytes sent and average throughput.
type transferLine struct {
	out        io.Writer
	files      int
	finished   int
	totalBytes int64
	sentBytes  int64
	started    time.Time
	lastDraw   time.Time
	spin       int
}

var spinner = []rune{'|', '/', '-', '\\'}

func newTransferLine(out io.Writer, files int, totalBytes int64) *transferLine {
	return &transferLine{out: out, files: files, totalBytes: totalBytes, started: time.Now()}
}

func (tl *transferLine) sent(delta int64) {
	tl.sentBytes += delta
	if tl.totalBytes > 0 && tl.sentBytes > tl.totalBytes {
		tl.sentBytes = tl.totalBytes
	}
}

// fileDone counts a finished file and reports whether it was the last one.
func (tl *transferLine) fileDone() bool {
	tl.finished++
	return tl.finished >= tl.files
}

func (tl *transferLine) draw(force bool) {
	if !force && time.Since(tl.lastDraw) < 100*time.Millisecond {
		return
	}
	tl.lastDraw = time.Now()

	rate := ""
	if secs := time.Since(tl.started).Seconds(); secs > 0 {
		rate = humanize.IBytes(uint64(float64(tl.sentBytes)/secs)) + "/s"
	}

	if tl.totalBytes <= 0 {
		ch := spinner[tl.spin%len(spinner)]
		tl.spin++
		fmt.Fprintf(tl.out, "\r[%c] %d/%d files, %s sent %s   ",
			ch, tl.finished, tl.files, humanize.IBytes(uint64(tl.sentBytes)), rate)
		return
	}
	pct := float64(tl.sentBytes) / float64(tl.totalBytes) * 100
	fmt.Fprintf(tl.out, "\r%6.2f%% (%s / %s) %d/%d files %s   ",
		pct, humanize.IBytes(uint64(tl.sentBytes)), humanize.IBytes(uint64(tl.totalBytes)),
		tl.finished, tl.files, rate)
}

func (tl *transferLine) close() {
	tl.draw(true)
	fmt.Fprintln(tl.out)
}

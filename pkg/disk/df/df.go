// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package df builds the mount table from POSIX df output.
package df

import (
	"bufio"
	"context"
	stderrors "errors"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/farmview/farmview/pkg/command"
	"github.com/farmview/farmview/pkg/disk"
	"github.com/farmview/farmview/pkg/errors"
)

// Args request POSIX output with 1-byte blocks.
var Args = []string{"-P", "-B1"}

const devPrefix = "/dev/"

// Source is a disk.MountTableSource backed by df.
type Source struct {
	runner command.Runner
}

// Option is a functional option for configuring Source instances.
type Option func(*Source)

// WithRunner sets the command runner.
func WithRunner(r command.Runner) Option {
	return func(s *Source) {
		s.runner = r
	}
}

// New creates a df source.
func New(opts ...Option) *Source {
	s := &Source{runner: command.NewExecRunner(0)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MountTable runs df and returns the block-device mounts.
func (s *Source) MountTable(ctx context.Context) (disk.MountTable, error) {
	out, err := s.runner.Run(ctx, "df", Args...)
	if err != nil {
		// df exits 1 when a single filesystem is unreadable but still prints the rest
		var cerr *command.Error
		if !stderrors.As(err, &cerr) || cerr.ExitCode != 1 || out == "" {
			return nil, errors.Wrap(errors.ErrCodeSourceUnavailable, "df failed", err)
		}
		slog.Warn("df reported errors, using partial output", "error", err)
	}

	entries := Parse(out)
	slog.Debug("mount table listed", "mounts", len(entries))
	return disk.NewMountTable(entries), nil
}

// Parse reads `df -P -B1` output. The header and rows not backed by a /dev/
// device are ignored; malformed rows are skipped. Mount points containing
// spaces are rejoined.
func Parse(out string) []disk.MountEntry {
	var entries []disk.MountEntry

	scanner := bufio.NewScanner(strings.NewReader(out))
	first := true
	for scanner.Scan() {
		line := scanner.Text()
		if first {
			first = false
			if strings.HasPrefix(line, "Filesystem") {
				continue
			}
		}

		fields := strings.Fields(line)
		if len(fields) == 0 || !strings.HasPrefix(fields[0], devPrefix) {
			continue
		}

		e, err := parseRow(fields)
		if err != nil {
			slog.Warn("skipping df row", "row", line, "error", err)
			continue
		}
		entries = append(entries, e)
	}

	return entries
}

func parseRow(fields []string) (disk.MountEntry, error) {
	if len(fields) < 6 {
		return disk.MountEntry{}, errors.NewWithContext(errors.ErrCodeMalformedEntry,
			"too few fields", map[string]any{"fields": len(fields)})
	}

	var nums [3]int64
	for i := range nums {
		n, err := strconv.ParseInt(fields[i+1], 10, 64)
		if err != nil || n < 0 {
			return disk.MountEntry{}, errors.Wrap(errors.ErrCodeMalformedEntry,
				"invalid byte count "+strconv.Quote(fields[i+1]), err)
		}
		nums[i] = n
	}

	return disk.MountEntry{
		DeviceID:       filepath.Base(fields[0]),
		MountPoint:     strings.Join(fields[5:], " "),
		SizeBytes:      nums[0],
		UsedBytes:      nums[1],
		AvailableBytes: nums[2],
	}, nil
}

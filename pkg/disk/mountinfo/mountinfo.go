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

// Package mountinfo builds the mount table from /proc/self/mountinfo and
// statfs, for hosts where df is unavailable.
package mountinfo

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/farmview/farmview/pkg/disk"
	"github.com/farmview/farmview/pkg/errors"
)

// DefaultPath is the mountinfo file of the current process.
const DefaultPath = "/proc/self/mountinfo"

// Usage is the byte usage of a mounted filesystem.
type Usage struct {
	Size      int64
	Used      int64
	Available int64
}

// Mount is one block-device row of mountinfo.
type Mount struct {
	Source     string
	MountPoint string
	FSType     string
}

// Source is a disk.MountTableSource backed by mountinfo.
type Source struct {
	path   string
	statfs func(path string) (Usage, error)
}

// Option is a functional option for configuring Source instances.
type Option func(*Source)

// WithPath overrides the mountinfo file location.
func WithPath(path string) Option {
	return func(s *Source) {
		s.path = path
	}
}

// New creates a mountinfo source.
func New(opts ...Option) *Source {
	s := &Source{path: DefaultPath, statfs: statfs}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MountTable reads mountinfo and stats every block-device mount.
func (s *Source) MountTable(ctx context.Context) (disk.MountTable, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSourceUnavailable, "failed to open mountinfo", err)
	}
	defer f.Close()

	mounts, err := Parse(f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSourceUnavailable, "failed to read mountinfo", err)
	}

	entries := make([]disk.MountEntry, 0, len(mounts))
	for _, m := range mounts {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeTimeout, "mount table listing canceled", err)
		}

		u, err := s.statfs(m.MountPoint)
		if err != nil {
			slog.Warn("skipping mount without usage",
				"device", m.Source,
				"mount", m.MountPoint,
				"error", err)
			continue
		}

		entries = append(entries, disk.MountEntry{
			DeviceID:       filepath.Base(m.Source),
			MountPoint:     m.MountPoint,
			SizeBytes:      u.Size,
			UsedBytes:      u.Used,
			AvailableBytes: u.Available,
		})
	}

	slog.Debug("mount table listed", "source", "mountinfo", "mounts", len(entries))
	return disk.NewMountTable(entries), nil
}

// Parse returns the /dev/-backed rows of a mountinfo file. Lines look like:
//
//	36 35 98:0 /mnt1 /mnt2 rw,noatime master:1 - ext3 /dev/root rw,errors=continue
//
// with the mount point in field 5 and the filesystem type and source after
// the " - " separator.
func Parse(r io.Reader) ([]Mount, error) {
	var mounts []Mount

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		before, after, ok := strings.Cut(line, " - ")
		if !ok {
			continue
		}

		pre := strings.Fields(before)
		post := strings.Fields(after)
		if len(pre) < 5 || len(post) < 2 {
			continue
		}

		source := unescape(post[1])
		if !strings.HasPrefix(source, "/dev/") {
			continue
		}

		mounts = append(mounts, Mount{
			Source:     source,
			MountPoint: unescape(pre[4]),
			FSType:     post[0],
		})
	}

	return mounts, scanner.Err()
}

// unescape decodes the octal escapes (\040 for space) the kernel uses in paths.
func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+3 < len(s) {
			if n, err := strconv.ParseUint(s[i+1:i+4], 8, 8); err == nil {
				b.WriteByte(byte(n))
				i += 3
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

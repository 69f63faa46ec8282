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

// Package psutil builds the mount table through gopsutil, without spawning df.
package psutil

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	psdisk "github.com/shirou/gopsutil/v4/disk"

	"github.com/farmview/farmview/pkg/disk"
	"github.com/farmview/farmview/pkg/errors"
)

type (
	partitionsFunc func(ctx context.Context, all bool) ([]psdisk.PartitionStat, error)
	usageFunc      func(ctx context.Context, path string) (*psdisk.UsageStat, error)
)

// Source is a disk.MountTableSource backed by gopsutil.
type Source struct {
	partitions partitionsFunc
	usage      usageFunc
}

// New creates a gopsutil mount table source.
func New() *Source {
	return &Source{
		partitions: psdisk.PartitionsWithContext,
		usage:      psdisk.UsageWithContext,
	}
}

// MountTable lists physical partitions and their usage. A partition whose
// usage cannot be read is skipped.
func (s *Source) MountTable(ctx context.Context) (disk.MountTable, error) {
	parts, err := s.partitions(ctx, false)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSourceUnavailable, "failed to list partitions", err)
	}

	entries := make([]disk.MountEntry, 0, len(parts))
	for _, p := range parts {
		if !strings.HasPrefix(p.Device, "/dev/") {
			continue
		}

		u, err := s.usage(ctx, p.Mountpoint)
		if err != nil {
			slog.Warn("skipping partition without usage",
				"device", p.Device,
				"mount", p.Mountpoint,
				"error", err)
			continue
		}

		entries = append(entries, disk.MountEntry{
			DeviceID:       filepath.Base(p.Device),
			MountPoint:     p.Mountpoint,
			SizeBytes:      int64(u.Total),
			UsedBytes:      int64(u.Used),
			AvailableBytes: int64(u.Free),
		})
	}

	slog.Debug("mount table listed", "source", "psutil", "mounts", len(entries))
	return disk.NewMountTable(entries), nil
}

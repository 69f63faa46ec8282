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

// Package disks assembles the disk inventory section from the device tree,
// the mount table and disk metadata.
package disks

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/farmview/farmview/pkg/disk"
	"github.com/farmview/farmview/pkg/report"
)

// Collector resolves the host's disks.
type Collector struct {
	Tree   disk.DeviceTreeSource
	Mounts disk.MountTableSource

	// Meta enriches entries with model and attributes; nil disables it.
	Meta disk.MetadataSource

	Options []disk.ResolveOption
}

// Collect returns report.Disks. It never fails: an unavailable device tree
// or mount table is treated as empty.
func (c *Collector) Collect(ctx context.Context) (any, error) {
	var (
		forest []disk.DeviceNode
		mounts disk.MountTable
	)

	// both listings are independent; neither error cancels the other
	g := new(errgroup.Group)
	g.Go(func() error {
		f, err := c.Tree.DeviceTree(ctx)
		if err != nil {
			slog.Warn("device tree unavailable, reporting no disks", "error", err)
			return nil
		}
		forest = f
		return nil
	})
	g.Go(func() error {
		m, err := c.Mounts.MountTable(ctx)
		if err != nil {
			slog.Warn("mount table unavailable, reporting fallback entries only", "error", err)
			return nil
		}
		mounts = m
		return nil
	})
	_ = g.Wait()

	entries := disk.Resolve(ctx, forest, mounts, c.Meta, c.Options...)
	if entries == nil {
		entries = []disk.ResolvedDiskEntry{}
	}

	slog.Debug("disks collected", "entries", len(entries))
	return report.Disks(entries), nil
}

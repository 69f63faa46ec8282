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

package disk

import (
	"context"
	"maps"
)

// DeviceNode is one block device. Top-level nodes are physical disks and
// children are partitions or stacked devices in source order.
type DeviceNode struct {
	ID        string       `json:"id" yaml:"id"`
	SizeBytes int64        `json:"size_bytes" yaml:"size_bytes"`
	Children  []DeviceNode `json:"children,omitempty" yaml:"children,omitempty"`
}

// MountEntry is a mounted filesystem backed by a block device.
type MountEntry struct {
	DeviceID       string `json:"device_id" yaml:"device_id"`
	MountPoint     string `json:"mount_point" yaml:"mount_point"`
	SizeBytes      int64  `json:"size_bytes" yaml:"size_bytes"`
	UsedBytes      int64  `json:"used_bytes" yaml:"used_bytes"`
	AvailableBytes int64  `json:"available_bytes" yaml:"available_bytes"`
}

// MountTable maps a device id to its mount.
type MountTable map[string]MountEntry

// NewMountTable indexes entries by device id. Later entries replace earlier
// ones with the same device id.
func NewMountTable(entries []MountEntry) MountTable {
	mt := make(MountTable, len(entries))
	for _, e := range entries {
		mt[e.DeviceID] = e
	}
	return mt
}

// Attr is a single health attribute reading.
type Attr struct {
	Value string `json:"value" yaml:"value"`
	Raw   string `json:"raw" yaml:"raw"`
}

// Metadata is what a MetadataSource knows about a physical disk. Either
// field may be absent.
type Metadata struct {
	Model *string         `json:"model,omitempty" yaml:"model,omitempty"`
	Attrs map[string]Attr `json:"attrs,omitempty" yaml:"attrs,omitempty"`
}

// IsEmpty reports whether neither model nor attributes are known.
func (m Metadata) IsEmpty() bool {
	return m.Model == nil && len(m.Attrs) == 0
}

// DeviceTreeSource lists the block device forest of the host.
type DeviceTreeSource interface {
	DeviceTree(ctx context.Context) ([]DeviceNode, error)
}

// MountTableSource lists mounted block-device filesystems keyed by device id.
type MountTableSource interface {
	MountTable(ctx context.Context) (MountTable, error)
}

// MetadataSource returns disk-level metadata for a device id. Implementations
// map partition ids to their physical disk themselves and must not fail:
// anything they cannot determine is left absent.
type MetadataSource interface {
	Lookup(ctx context.Context, deviceID string) Metadata
}

// MetadataFunc adapts a function to MetadataSource.
type MetadataFunc func(ctx context.Context, deviceID string) Metadata

// Lookup calls f.
func (f MetadataFunc) Lookup(ctx context.Context, deviceID string) Metadata {
	return f(ctx, deviceID)
}

// ResolvedDiskEntry is one reportable storage unit. MountPoint, UsedBytes,
// AvailableBytes and PercentUsed are set only for mounted devices.
type ResolvedDiskEntry struct {
	DeviceID       string          `json:"device_id" yaml:"device_id"`
	MountPoint     *string         `json:"mount_point,omitempty" yaml:"mount_point,omitempty"`
	Model          *string         `json:"model,omitempty" yaml:"model,omitempty"`
	Attrs          map[string]Attr `json:"attrs,omitempty" yaml:"attrs,omitempty"`
	SizeBytes      int64           `json:"size_bytes" yaml:"size_bytes"`
	UsedBytes      *int64          `json:"used_bytes,omitempty" yaml:"used_bytes,omitempty"`
	AvailableBytes *int64          `json:"available_bytes,omitempty" yaml:"available_bytes,omitempty"`
	PercentUsed    *int64          `json:"percent_used,omitempty" yaml:"percent_used,omitempty"`
}

// Mounted reports whether the entry corresponds to a mounted filesystem.
func (e ResolvedDiskEntry) Mounted() bool {
	return e.MountPoint != nil
}

// percentUsed returns used/size as a rounded percentage, or nil when the
// size is not positive.
func percentUsed(used, size int64) *int64 {
	if size <= 0 {
		return nil
	}
	pct := (100*used + size/2) / size
	return &pct
}

func (e *ResolvedDiskEntry) applyMetadata(md Metadata) {
	if md.Model != nil {
		model := *md.Model
		e.Model = &model
	}
	if md.Attrs != nil {
		e.Attrs = maps.Clone(md.Attrs)
	}
}

func ptr[T any](v T) *T {
	return &v
}

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

// Package disk resolves the block device forest of a host into the list of
// storage units worth reporting.
//
// Two independently collected inputs feed the resolver: the device forest
// (physical disks with their partitions, as listed by lsblk) and the mount
// table (mounted filesystems with byte usage, as listed by df). For every
// physical disk Resolve reports each mounted descendant merged with its
// usage figures. A disk with nothing mounted is represented by its largest
// descendant, ties going to the first node visited in pre-order.
//
// Entries are enriched with disk-level model and health attributes from a
// MetadataSource. Lookups run concurrently, one per physical disk, after
// every disk's entries have been selected. A lookup that panics or exceeds
// its timeout leaves that disk's model and attributes absent and never
// affects other disks.
//
// Usage:
//
//	entries := disk.Resolve(ctx, forest, mounts, smartSource,
//	    disk.WithConcurrency(4),
//	    disk.WithLookupTimeout(8*time.Second),
//	    disk.WithIgnore("loop*", "/boot/efi"),
//	)
//
// The output is sorted by mount point. Entries without a mount point sort by
// device id within the same key space.
//
// Resolve never returns an error. Callers degrade an unavailable device tree
// or mount table to an empty input, which yields an empty or fallback-only
// result.
package disk

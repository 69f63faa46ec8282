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
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/farmview/farmview/pkg/defaults"
)

// LookupOutcome classifies a single metadata lookup.
type LookupOutcome string

const (
	LookupOK      LookupOutcome = "ok"
	LookupEmpty   LookupOutcome = "empty"
	LookupTimeout LookupOutcome = "timeout"
	LookupPanic   LookupOutcome = "panic"
)

// LookupObserver is notified once per physical disk metadata lookup.
type LookupObserver func(diskID string, outcome LookupOutcome, duration time.Duration)

type resolveOptions struct {
	concurrency   int
	lookupTimeout time.Duration
	ignore        Patterns
	observer      LookupObserver
}

// ResolveOption configures Resolve.
type ResolveOption func(*resolveOptions)

// WithConcurrency bounds the number of metadata lookups in flight.
// Values below 1 are ignored.
func WithConcurrency(n int) ResolveOption {
	return func(o *resolveOptions) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

// WithLookupTimeout bounds each metadata lookup. Zero disables the bound.
func WithLookupTimeout(d time.Duration) ResolveOption {
	return func(o *resolveOptions) {
		if d >= 0 {
			o.lookupTimeout = d
		}
	}
}

// WithIgnore drops resolved entries whose device id or mount point matches
// one of the patterns.
func WithIgnore(patterns ...string) ResolveOption {
	return func(o *resolveOptions) {
		o.ignore = append(o.ignore, patterns...)
	}
}

// WithLookupObserver registers a callback for metadata lookup outcomes.
func WithLookupObserver(fn LookupObserver) ResolveOption {
	return func(o *resolveOptions) {
		o.observer = fn
	}
}

// Resolve turns a device forest and mount table into sorted disk entries.
// Each physical disk yields every mounted descendant, or a single entry for
// its largest descendant when nothing under it is mounted. A nil meta skips
// enrichment.
func Resolve(ctx context.Context, forest []DeviceNode, mounts MountTable, meta MetadataSource, opts ...ResolveOption) []ResolvedDiskEntry {
	o := resolveOptions{
		concurrency:   defaults.MetadataConcurrency,
		lookupTimeout: defaults.MetadataLookupTimeout,
	}
	for _, opt := range opts {
		opt(&o)
	}

	// selection completes for every disk before any lookup starts
	groups := make([][]ResolvedDiskEntry, len(forest))
	for i, root := range forest {
		groups[i] = selectEntries(root, mounts)
	}

	if meta != nil && len(forest) > 0 {
		enrich(ctx, forest, groups, meta, o)
	}

	var entries []ResolvedDiskEntry
	for _, g := range groups {
		entries = append(entries, g...)
	}
	entries = o.ignore.FilterOut(entries)

	SortEntries(entries)

	slog.Debug("disks resolved",
		"disks", len(forest),
		"mounts", len(mounts),
		"entries", len(entries))

	return entries
}

// SortEntries orders entries by mount point, using the device id as the key
// for unmounted entries. Equal keys are ordered by device id.
func SortEntries(entries []ResolvedDiskEntry) {
	slices.SortStableFunc(entries, func(a, b ResolvedDiskEntry) int {
		return cmp.Or(
			cmp.Compare(sortKey(a), sortKey(b)),
			cmp.Compare(a.DeviceID, b.DeviceID),
		)
	})
}

func sortKey(e ResolvedDiskEntry) string {
	if e.MountPoint != nil {
		return *e.MountPoint
	}
	return e.DeviceID
}

func selectEntries(root DeviceNode, mounts MountTable) []ResolvedDiskEntry {
	var mounted []ResolvedDiskEntry
	findMounted(root, mounts, &mounted)
	if len(mounted) > 0 {
		return mounted
	}

	largest := findLargest(root)
	return []ResolvedDiskEntry{{
		DeviceID:  largest.ID,
		SizeBytes: largest.SizeBytes,
	}}
}

// findMounted collects, in pre-order, every node of the subtree present in mounts.
func findMounted(node DeviceNode, mounts MountTable, out *[]ResolvedDiskEntry) {
	if m, ok := mounts[node.ID]; ok {
		*out = append(*out, ResolvedDiskEntry{
			DeviceID:       node.ID,
			MountPoint:     ptr(m.MountPoint),
			SizeBytes:      m.SizeBytes,
			UsedBytes:      ptr(m.UsedBytes),
			AvailableBytes: ptr(m.AvailableBytes),
			PercentUsed:    percentUsed(m.UsedBytes, m.SizeBytes),
		})
	}
	for _, child := range node.Children {
		findMounted(child, mounts, out)
	}
}

// findLargest returns the largest node of the subtree. Among siblings the
// first in source order wins ties; a descendant that ties its ancestor is
// preferred, so a partitioned disk is represented by a partition.
func findLargest(node DeviceNode) DeviceNode {
	if len(node.Children) == 0 {
		return node
	}

	best := findLargest(node.Children[0])
	for _, child := range node.Children[1:] {
		if c := findLargest(child); c.SizeBytes > best.SizeBytes {
			best = c
		}
	}

	if node.SizeBytes > best.SizeBytes {
		return node
	}
	return best
}

func enrich(ctx context.Context, forest []DeviceNode, groups [][]ResolvedDiskEntry, meta MetadataSource, o resolveOptions) {
	g := new(errgroup.Group)
	g.SetLimit(o.concurrency)

	for i := range forest {
		diskID := forest[i].ID
		g.Go(func() error {
			start := time.Now()
			md, outcome := lookup(ctx, meta, diskID, o.lookupTimeout)
			if o.observer != nil {
				o.observer(diskID, outcome, time.Since(start))
			}
			// each goroutine owns groups[i]
			for j := range groups[i] {
				groups[i][j].applyMetadata(md)
			}
			return nil
		})
	}

	// lookups never return errors
	_ = g.Wait()
}

type lookupResult struct {
	md       Metadata
	panicked bool
}

// lookup runs one metadata lookup isolated from panics and bounded by timeout.
func lookup(ctx context.Context, meta MetadataSource, diskID string, timeout time.Duration) (Metadata, LookupOutcome) {
	lctx, cancel := ctx, context.CancelFunc(func() {})
	if timeout > 0 {
		lctx, cancel = context.WithTimeout(ctx, timeout)
	}
	defer cancel()

	ch := make(chan lookupResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				slog.Warn("metadata lookup panicked",
					"disk", diskID,
					"panic", fmt.Sprint(r))
				ch <- lookupResult{panicked: true}
			}
		}()
		ch <- lookupResult{md: meta.Lookup(lctx, diskID)}
	}()

	select {
	case res := <-ch:
		switch {
		case res.panicked:
			return Metadata{}, LookupPanic
		case res.md.IsEmpty():
			return res.md, LookupEmpty
		default:
			return res.md, LookupOK
		}
	case <-lctx.Done():
		slog.Warn("metadata lookup abandoned",
			"disk", diskID,
			"timeout", timeout,
			"error", lctx.Err())
		return Metadata{}, LookupTimeout
	}
}

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

// Package lsblk builds the block device forest from lsblk JSON output.
package lsblk

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"strings"

	"github.com/farmview/farmview/pkg/command"
	"github.com/farmview/farmview/pkg/disk"
	"github.com/farmview/farmview/pkg/errors"
)

// Args are the lsblk arguments: JSON output, sizes in bytes, and the
// columns the forest needs.
var Args = []string{"-J", "-b", "-o", "NAME,SIZE,TYPE"}

// DefaultExcludedTypes are top-level device types that are never physical disks.
var DefaultExcludedTypes = []string{"loop", "ram", "rom"}

type output struct {
	BlockDevices []device `json:"blockdevices"`
}

type device struct {
	Name     string   `json:"name"`
	Size     size     `json:"size"`
	Type     string   `json:"type"`
	Children []device `json:"children,omitempty"`
}

// size accepts a JSON number or, as older util-linux prints it, a numeric string.
type size struct {
	bytes int64
	valid bool
}

func (s *size) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(bytes.TrimSpace(data)), `"`)
	if raw == "" || raw == "null" {
		*s = size{}
		return nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 0 {
		*s = size{}
		return nil
	}
	*s = size{bytes: n, valid: true}
	return nil
}

// Source is a disk.DeviceTreeSource backed by lsblk.
type Source struct {
	runner   command.Runner
	excluded map[string]bool
}

// Option is a functional option for configuring Source instances.
type Option func(*Source)

// WithRunner sets the command runner.
func WithRunner(r command.Runner) Option {
	return func(s *Source) {
		s.runner = r
	}
}

// WithIncludeTypes keeps top-level devices of the given types even if they
// are excluded by default.
func WithIncludeTypes(types ...string) Option {
	return func(s *Source) {
		for _, t := range types {
			delete(s.excluded, strings.ToLower(t))
		}
	}
}

// New creates a lsblk source.
func New(opts ...Option) *Source {
	s := &Source{
		runner:   command.NewExecRunner(0),
		excluded: make(map[string]bool, len(DefaultExcludedTypes)),
	}
	for _, t := range DefaultExcludedTypes {
		s.excluded[t] = true
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DeviceTree runs lsblk and returns the device forest.
func (s *Source) DeviceTree(ctx context.Context) ([]disk.DeviceNode, error) {
	out, err := s.runner.Run(ctx, "lsblk", Args...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSourceUnavailable, "lsblk failed", err)
	}

	forest, err := Parse([]byte(out), s.excluded)
	if err != nil {
		return nil, err
	}

	slog.Debug("device tree listed", "disks", len(forest))
	return forest, nil
}

// Parse decodes lsblk JSON into a forest. Top-level devices whose type is in
// excluded are dropped. Nodes without a name or a valid size are skipped
// together with their children. A device that sits on several parents, such
// as an md array or an LVM volume spanning disks, is listed by lsblk under
// each of them; only its first occurrence in pre-order is kept.
func Parse(data []byte, excluded map[string]bool) ([]disk.DeviceNode, error) {
	var o output
	if err := json.Unmarshal(data, &o); err != nil {
		return nil, errors.Wrap(errors.ErrCodeSourceUnavailable, "invalid lsblk output", err)
	}

	forest := make([]disk.DeviceNode, 0, len(o.BlockDevices))
	seen := make(map[string]bool)
	for _, d := range o.BlockDevices {
		if excluded[strings.ToLower(d.Type)] {
			continue
		}
		if n, ok := convert(d, seen, true); ok {
			forest = append(forest, n)
		}
	}
	return forest, nil
}

// convert builds the node for d. Roots are always kept; a nested device whose
// id was already seen is dropped with its subtree.
func convert(d device, seen map[string]bool, root bool) (disk.DeviceNode, bool) {
	name := strings.TrimSpace(d.Name)
	if name == "" || !d.Size.valid {
		err := errors.NewWithContext(errors.ErrCodeMalformedEntry, "skipping lsblk device",
			map[string]any{"name": d.Name, "type": d.Type})
		slog.Warn(err.Error(), "children", len(d.Children))
		return disk.DeviceNode{}, false
	}
	if seen[name] && !root {
		slog.Debug("skipping repeated lsblk device", "name", name, "type", d.Type)
		return disk.DeviceNode{}, false
	}
	seen[name] = true

	n := disk.DeviceNode{ID: name, SizeBytes: d.Size.bytes}
	for _, c := range d.Children {
		if child, ok := convert(c, seen, false); ok {
			n.Children = append(n.Children, child)
		}
	}
	return n, true
}

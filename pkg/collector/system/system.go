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

// Package system reports the host name and operating system.
package system

import (
	"context"
	"os"

	"github.com/farmview/farmview/pkg/collector/file"
	"github.com/farmview/farmview/pkg/errors"
	"github.com/farmview/farmview/pkg/report"
)

var (
	releasePrimary  = "/etc/os-release"
	releaseFallback = "/usr/lib/os-release"
)

// Collector reads the host name and os-release.
type Collector struct {
	// ReleasePaths overrides the os-release search order.
	ReleasePaths []string

	hostname func() (string, error)
}

// Collect returns a report.System. Either field may be empty; the section
// fails only when both are unknown.
func (c *Collector) Collect(ctx context.Context) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var s report.System

	hostname := c.hostname
	if hostname == nil {
		hostname = os.Hostname
	}
	if h, err := hostname(); err == nil {
		s.Hostname = h
	}

	s.OS = c.prettyName()

	if s.Hostname == "" && s.OS == "" {
		return nil, errors.New(errors.ErrCodeSourceUnavailable, "host identity unavailable")
	}
	return s, nil
}

// prettyName returns PRETTY_NAME, falling back to NAME and VERSION_ID.
//
//	NAME="Ubuntu"
//	VERSION_ID="22.04"
//	PRETTY_NAME="Ubuntu 22.04.4 LTS"
func (c *Collector) prettyName() string {
	paths := c.ReleasePaths
	if len(paths) == 0 {
		paths = []string{releasePrimary, releaseFallback}
	}

	parser := file.NewParser(
		file.WithKVDelimiter("="),
		file.WithVTrimChars(`"'`),
		file.WithSkipEmptyValues(true),
	)

	for _, path := range paths {
		info, err := parser.GetMap(path)
		if err != nil {
			continue
		}
		if name := info["PRETTY_NAME"]; name != "" {
			return name
		}
		if name := info["NAME"]; name != "" {
			if v := info["VERSION_ID"]; v != "" {
				return name + " " + v
			}
			return name
		}
	}
	return ""
}

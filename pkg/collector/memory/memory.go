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

// Package memory reports RAM usage from /proc/meminfo.
package memory

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/farmview/farmview/pkg/collector/file"
	"github.com/farmview/farmview/pkg/errors"
	"github.com/farmview/farmview/pkg/report"
)

// DefaultPath is the kernel memory statistics file.
const DefaultPath = "/proc/meminfo"

// Collector reads meminfo.
type Collector struct {
	Path string
}

// Collect returns a *report.Memory with values in KiB. Available memory is
// MemAvailable, or MemFree plus Cached on kernels older than 3.14.
func (c *Collector) Collect(ctx context.Context) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := c.Path
	if path == "" {
		path = DefaultPath
	}

	info, err := file.NewParser(
		file.WithKVDelimiter(":"),
		file.WithVTrimSuffix("kB"),
	).GetMap(path)
	if err != nil {
		return nil, err
	}

	m, err := FromInfo(info)
	if err != nil {
		return nil, err
	}

	slog.Debug("memory collected", "total_kib", m.Total, "used_kib", m.Used)
	return m, nil
}

// FromInfo computes usage from parsed meminfo fields.
func FromInfo(info map[string]string) (*report.Memory, error) {
	total, err := field(info, "MemTotal")
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return nil, errors.New(errors.ErrCodeMalformedEntry, "MemTotal is zero")
	}

	available, err := field(info, "MemAvailable")
	if err != nil {
		free, ferr := field(info, "MemFree")
		if ferr != nil {
			return nil, ferr
		}
		cached, cerr := field(info, "Cached")
		if cerr != nil {
			return nil, cerr
		}
		available = free + cached
	}
	if available > total {
		available = total
	}

	used := total - available
	return &report.Memory{
		Total:       total,
		Used:        used,
		PercentUsed: report.PercentUsed(used, total),
	}, nil
}

func field(info map[string]string, key string) (uint64, error) {
	raw, ok := info[key]
	if !ok {
		return 0, errors.NewWithContext(errors.ErrCodeMalformedEntry, "meminfo field missing",
			map[string]any{"field": key})
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, errors.WrapWithContext(errors.ErrCodeMalformedEntry, "invalid meminfo value", err,
			map[string]any{"field": key})
	}
	return v, nil
}

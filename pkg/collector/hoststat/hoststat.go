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

// Package hoststat reads the cpu, uptime, memory and system sections through
// gopsutil instead of spawning nproc and uptime or parsing procfs.
package hoststat

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"

	"github.com/farmview/farmview/pkg/errors"
	"github.com/farmview/farmview/pkg/report"
)

type (
	countsFunc func(ctx context.Context, logical bool) (int, error)
	avgFunc    func(ctx context.Context) (*load.AvgStat, error)
	memoryFunc func(ctx context.Context) (*mem.VirtualMemoryStat, error)
	infoFunc   func(ctx context.Context) (*host.InfoStat, error)
)

// CPU reports the logical processor count.
type CPU struct {
	counts countsFunc
}

// NewCPU creates a gopsutil cpu collector.
func NewCPU() *CPU {
	return &CPU{counts: cpu.CountsWithContext}
}

// Collect returns a report.NProc.
func (c *CPU) Collect(ctx context.Context) (any, error) {
	n, err := c.counts(ctx, true)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSourceUnavailable, "failed to count cpus", err)
	}
	if n <= 0 {
		return nil, errors.NewWithContext(errors.ErrCodeMalformedEntry, "invalid cpu count",
			map[string]any{"count": n})
	}

	slog.Debug("cpu count collected", "source", "psutil", "nproc", n)
	return report.NProc(n), nil
}

// Load reports the 1, 5 and 15 minute load averages.
type Load struct {
	avg avgFunc
}

// NewLoad creates a gopsutil load average collector.
func NewLoad() *Load {
	return &Load{avg: load.AvgWithContext}
}

// Collect returns a report.Uptime.
func (l *Load) Collect(ctx context.Context) (any, error) {
	a, err := l.avg(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSourceUnavailable, "failed to read load averages", err)
	}
	return report.Uptime{a.Load1, a.Load5, a.Load15}, nil
}

// Memory reports RAM usage in KiB.
type Memory struct {
	virtual memoryFunc
}

// NewMemory creates a gopsutil memory collector.
func NewMemory() *Memory {
	return &Memory{virtual: mem.VirtualMemoryWithContext}
}

// Collect returns a *report.Memory. Used is total minus available, matching
// the meminfo collector.
func (m *Memory) Collect(ctx context.Context) (any, error) {
	v, err := m.virtual(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSourceUnavailable, "failed to read memory", err)
	}
	if v.Total == 0 {
		return nil, errors.New(errors.ErrCodeMalformedEntry, "total memory is zero")
	}

	total := v.Total / 1024
	available := min(v.Available/1024, total)
	used := total - available

	slog.Debug("memory collected", "source", "psutil", "total_kib", total, "used_kib", used)
	return &report.Memory{
		Total:       total,
		Used:        used,
		PercentUsed: report.PercentUsed(used, total),
	}, nil
}

// System reports the host name and operating system.
type System struct {
	info infoFunc
}

// NewSystem creates a gopsutil host identity collector.
func NewSystem() *System {
	return &System{info: host.InfoWithContext}
}

// Collect returns a report.System. The OS is the platform name followed by
// its version, e.g. "ubuntu 22.04".
func (s *System) Collect(ctx context.Context) (any, error) {
	h, err := s.info(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSourceUnavailable, "failed to read host info", err)
	}

	sys := report.System{
		Hostname: h.Hostname,
		OS:       strings.TrimSpace(h.Platform + " " + h.PlatformVersion),
	}
	if sys.Hostname == "" && sys.OS == "" {
		return nil, errors.New(errors.ErrCodeSourceUnavailable, "host identity unavailable")
	}
	return sys, nil
}

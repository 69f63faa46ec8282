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

package hoststat

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmview/farmview/pkg/errors"
	"github.com/farmview/farmview/pkg/report"
)

var errUnsupported = stderrors.New("not implemented yet")

func TestCPU(t *testing.T) {
	var logical bool
	c := &CPU{counts: func(_ context.Context, l bool) (int, error) {
		logical = l
		return 8, nil
	}}

	got, err := c.Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, report.NProc(8), got)
	assert.True(t, logical)
}

func TestCPUErrors(t *testing.T) {
	c := &CPU{counts: func(context.Context, bool) (int, error) { return 0, errUnsupported }}
	_, err := c.Collect(context.Background())
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeSourceUnavailable))

	c = &CPU{counts: func(context.Context, bool) (int, error) { return 0, nil }}
	_, err = c.Collect(context.Background())
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeMalformedEntry))
}

func TestLoad(t *testing.T) {
	l := &Load{avg: func(context.Context) (*load.AvgStat, error) {
		return &load.AvgStat{Load1: 0.52, Load5: 0.58, Load15: 0.59}, nil
	}}

	got, err := l.Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, report.Uptime{0.52, 0.58, 0.59}, got)
}

func TestLoadError(t *testing.T) {
	l := &Load{avg: func(context.Context) (*load.AvgStat, error) { return nil, errUnsupported }}
	_, err := l.Collect(context.Background())
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeSourceUnavailable))
}

func TestMemory(t *testing.T) {
	m := &Memory{virtual: func(context.Context) (*mem.VirtualMemoryStat, error) {
		return &mem.VirtualMemoryStat{Total: 1000 * 1024, Available: 600 * 1024}, nil
	}}

	got, err := m.Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &report.Memory{Total: 1000, Used: 400, PercentUsed: 40}, got)
}

func TestMemoryAvailableAboveTotal(t *testing.T) {
	m := &Memory{virtual: func(context.Context) (*mem.VirtualMemoryStat, error) {
		return &mem.VirtualMemoryStat{Total: 1024, Available: 4096}, nil
	}}

	got, err := m.Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &report.Memory{Total: 1, Used: 0, PercentUsed: 0}, got)
}

func TestMemoryZeroTotal(t *testing.T) {
	m := &Memory{virtual: func(context.Context) (*mem.VirtualMemoryStat, error) {
		return &mem.VirtualMemoryStat{}, nil
	}}
	_, err := m.Collect(context.Background())
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeMalformedEntry))
}

func TestSystem(t *testing.T) {
	s := &System{info: func(context.Context) (*host.InfoStat, error) {
		return &host.InfoStat{Hostname: "node-7", Platform: "ubuntu", PlatformVersion: "22.04"}, nil
	}}

	got, err := s.Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, report.System{Hostname: "node-7", OS: "ubuntu 22.04"}, got)
}

func TestSystemPartial(t *testing.T) {
	s := &System{info: func(context.Context) (*host.InfoStat, error) {
		return &host.InfoStat{Hostname: "node-7"}, nil
	}}

	got, err := s.Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, report.System{Hostname: "node-7"}, got)
}

func TestSystemUnavailable(t *testing.T) {
	s := &System{info: func(context.Context) (*host.InfoStat, error) {
		return &host.InfoStat{}, nil
	}}
	_, err := s.Collect(context.Background())
	require.Error(t, err)

	s = &System{info: func(context.Context) (*host.InfoStat, error) { return nil, errUnsupported }}
	_, err = s.Collect(context.Background())
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeSourceUnavailable))
}

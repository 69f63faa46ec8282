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

package collector

import (
	"context"
	"time"

	"github.com/farmview/farmview/pkg/collector/cpu"
	"github.com/farmview/farmview/pkg/collector/disks"
	"github.com/farmview/farmview/pkg/collector/gpu"
	"github.com/farmview/farmview/pkg/collector/hoststat"
	"github.com/farmview/farmview/pkg/collector/memory"
	"github.com/farmview/farmview/pkg/collector/network"
	"github.com/farmview/farmview/pkg/collector/power"
	"github.com/farmview/farmview/pkg/collector/system"
	"github.com/farmview/farmview/pkg/collector/uptime"
	"github.com/farmview/farmview/pkg/command"
	"github.com/farmview/farmview/pkg/defaults"
	"github.com/farmview/farmview/pkg/disk"
	"github.com/farmview/farmview/pkg/disk/df"
	"github.com/farmview/farmview/pkg/disk/lsblk"
	"github.com/farmview/farmview/pkg/disk/mountinfo"
	"github.com/farmview/farmview/pkg/disk/psutil"
	"github.com/farmview/farmview/pkg/disk/smart"
)

// Collector gathers one section of the host report. The returned value is
// one of the section types of package report.
type Collector interface {
	Collect(ctx context.Context) (any, error)
}

// Mount table sources selectable with WithMountSource.
const (
	MountSourceDF        = "df"
	MountSourcePsutil    = "psutil"
	MountSourceMountinfo = "mountinfo"
)

// Host statistics sources selectable with WithHostSource. They cover the
// system, cpu, uptime and memory sections.
const (
	HostSourceExec   = "exec"
	HostSourcePsutil = "psutil"
)

// Factory creates the section collectors.
type Factory interface {
	CreateSystemCollector() Collector
	CreateCPUCollector() Collector
	CreateUptimeCollector() Collector
	CreateMemoryCollector() Collector
	CreateDisksCollector() Collector
	CreateNetworkCollector() Collector
	CreatePowerCollector() Collector
	CreateGPUCollector() Collector
}

// DefaultFactory creates collectors with production dependencies.
type DefaultFactory struct {
	// Runner, if set, is used for every command instead of per-collector
	// exec runners.
	Runner command.Runner

	NetworkInterface string
	HostSource       string

	MountSource         string
	DiskIgnore          []string
	DiskIncludeTypes    []string
	Smart               bool
	MetadataConcurrency int
	MetadataRate        float64
	MetadataTimeout     time.Duration
	MetadataObserver    disk.LookupObserver

	// Overrides for the procfs paths, used by tests.
	MeminfoPath   string
	MountinfoPath string
}

// Option configures a DefaultFactory.
type Option func(*DefaultFactory)

// WithRunner sets the command runner shared by all collectors.
func WithRunner(r command.Runner) Option {
	return func(f *DefaultFactory) {
		f.Runner = r
	}
}

// WithNetworkInterface selects the interface vnstat samples.
func WithNetworkInterface(iface string) Option {
	return func(f *DefaultFactory) {
		f.NetworkInterface = iface
	}
}

// WithHostSource selects exec (os-release, nproc, uptime, meminfo) or
// psutil for the host statistics sections.
func WithHostSource(source string) Option {
	return func(f *DefaultFactory) {
		f.HostSource = source
	}
}

// WithMountSource selects df, psutil or mountinfo as the mount table source.
func WithMountSource(source string) Option {
	return func(f *DefaultFactory) {
		f.MountSource = source
	}
}

// WithDiskIgnore drops disk entries matching the patterns.
func WithDiskIgnore(patterns ...string) Option {
	return func(f *DefaultFactory) {
		f.DiskIgnore = patterns
	}
}

// WithDiskIncludeTypes keeps lsblk device types excluded by default.
func WithDiskIncludeTypes(types ...string) Option {
	return func(f *DefaultFactory) {
		f.DiskIncludeTypes = types
	}
}

// WithSmart enables smartctl metadata lookups.
func WithSmart(enabled bool) Option {
	return func(f *DefaultFactory) {
		f.Smart = enabled
	}
}

// WithMetadataConcurrency bounds concurrent metadata lookups.
func WithMetadataConcurrency(n int) Option {
	return func(f *DefaultFactory) {
		f.MetadataConcurrency = n
	}
}

// WithMetadataRate limits smartctl invocations per second; 0 is unlimited.
func WithMetadataRate(perSecond float64) Option {
	return func(f *DefaultFactory) {
		f.MetadataRate = perSecond
	}
}

// WithMetadataTimeout bounds each disk's metadata lookup.
func WithMetadataTimeout(d time.Duration) Option {
	return func(f *DefaultFactory) {
		f.MetadataTimeout = d
	}
}

// WithMetadataObserver registers a callback for metadata lookup outcomes.
func WithMetadataObserver(fn disk.LookupObserver) Option {
	return func(f *DefaultFactory) {
		f.MetadataObserver = fn
	}
}

// NewDefaultFactory creates a factory with default settings.
func NewDefaultFactory(opts ...Option) *DefaultFactory {
	f := &DefaultFactory{
		HostSource:          HostSourceExec,
		MountSource:         MountSourceDF,
		Smart:               true,
		MetadataConcurrency: defaults.MetadataConcurrency,
		MetadataTimeout:     defaults.MetadataLookupTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *DefaultFactory) runner(timeout time.Duration) command.Runner {
	if f.Runner != nil {
		return f.Runner
	}
	return command.NewExecRunner(timeout)
}

// CreateSystemCollector creates the host identity collector.
func (f *DefaultFactory) CreateSystemCollector() Collector {
	if f.HostSource == HostSourcePsutil {
		return hoststat.NewSystem()
	}
	return &system.Collector{}
}

// CreateCPUCollector creates the nproc collector.
func (f *DefaultFactory) CreateCPUCollector() Collector {
	if f.HostSource == HostSourcePsutil {
		return hoststat.NewCPU()
	}
	return &cpu.Collector{Runner: f.runner(defaults.CommandTimeout)}
}

// CreateUptimeCollector creates the load average collector.
func (f *DefaultFactory) CreateUptimeCollector() Collector {
	if f.HostSource == HostSourcePsutil {
		return hoststat.NewLoad()
	}
	return &uptime.Collector{Runner: f.runner(defaults.CommandTimeout)}
}

// CreateMemoryCollector creates the meminfo collector.
func (f *DefaultFactory) CreateMemoryCollector() Collector {
	if f.HostSource == HostSourcePsutil {
		return hoststat.NewMemory()
	}
	return &memory.Collector{Path: f.MeminfoPath}
}

// CreateNetworkCollector creates the vnstat collector.
func (f *DefaultFactory) CreateNetworkCollector() Collector {
	return &network.Collector{
		Runner:    f.runner(defaults.NetworkSampleTimeout),
		Interface: f.NetworkInterface,
	}
}

// CreatePowerCollector creates the ipmitool collector.
func (f *DefaultFactory) CreatePowerCollector() Collector {
	return &power.Collector{Runner: f.runner(defaults.CommandTimeout)}
}

// CreateGPUCollector creates the nvidia-smi collector.
func (f *DefaultFactory) CreateGPUCollector() Collector {
	return &gpu.Collector{Runner: f.runner(defaults.CommandTimeout)}
}

// CreateDisksCollector wires the device tree, mount table and metadata
// sources into the disk resolver.
func (f *DefaultFactory) CreateDisksCollector() Collector {
	r := f.runner(defaults.CommandTimeout)

	c := &disks.Collector{
		Tree:   lsblk.New(lsblk.WithRunner(r), lsblk.WithIncludeTypes(f.DiskIncludeTypes...)),
		Mounts: f.mountSource(r),
		Options: []disk.ResolveOption{
			disk.WithConcurrency(f.MetadataConcurrency),
			disk.WithLookupTimeout(f.MetadataTimeout),
			disk.WithIgnore(f.DiskIgnore...),
		},
	}
	if f.MetadataObserver != nil {
		c.Options = append(c.Options, disk.WithLookupObserver(f.MetadataObserver))
	}
	if f.Smart {
		c.Meta = smart.New(smart.WithRunner(r), smart.WithRateLimit(f.MetadataRate))
	}
	return c
}

func (f *DefaultFactory) mountSource(r command.Runner) disk.MountTableSource {
	switch f.MountSource {
	case MountSourcePsutil:
		return psutil.New()
	case MountSourceMountinfo:
		var opts []mountinfo.Option
		if f.MountinfoPath != "" {
			opts = append(opts, mountinfo.WithPath(f.MountinfoPath))
		}
		return mountinfo.New(opts...)
	default:
		return df.New(df.WithRunner(r))
	}
}

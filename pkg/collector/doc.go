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

// Package collector defines the section collectors of a host report and the
// factory that wires them to their production dependencies.
//
// Each collector returns one section value from package report:
//
//	type Collector interface {
//	    Collect(ctx context.Context) (any, error)
//	}
//
// Sections and their sources:
//   - system: hostname and /etc/os-release
//   - cpu: nproc
//   - uptime: load averages from uptime
//   - memory: /proc/meminfo
//   - disks: lsblk, a mount table (df, gopsutil or /proc/self/mountinfo) and smartctl
//   - network: vnstat and hostname -I
//   - power: ipmitool dcmi
//   - gpu: nvidia-smi
//
// The DefaultFactory is configured with functional options:
//
//	factory := collector.NewDefaultFactory(
//	    collector.WithMountSource(collector.MountSourceMountinfo),
//	    collector.WithDiskIgnore("/boot*", "/dev/loop*"),
//	    collector.WithMetadataConcurrency(2),
//	)
//	section, err := factory.CreateDisksCollector().Collect(ctx)
//
// Tests inject a command.StaticRunner with WithRunner so no external tool
// is executed.
package collector

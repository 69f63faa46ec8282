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

// Package report defines the host report document and its sections.
package report

import (
	"fmt"

	"github.com/farmview/farmview/pkg/disk"
	"github.com/farmview/farmview/pkg/header"
)

// APIVersion is the schema version of Report documents.
const APIVersion = header.APIGroup + "/v1"

// NProc is the number of available processing units.
type NProc int

// Uptime holds the 1, 5 and 15 minute load averages.
type Uptime [3]float64

// Memory is RAM usage in KiB.
type Memory struct {
	Total       uint64 `json:"total" yaml:"total"`
	Used        uint64 `json:"used" yaml:"used"`
	PercentUsed int    `json:"percent_used" yaml:"percent_used"`
}

// Disks is the resolved disk inventory.
type Disks []disk.ResolvedDiskEntry

// Network holds traffic rates in kB/s and the primary address. Each field
// is reported independently.
type Network struct {
	RX *float64 `json:"rx,omitempty" yaml:"rx,omitempty"`
	TX *float64 `json:"tx,omitempty" yaml:"tx,omitempty"`
	IP *string  `json:"ip,omitempty" yaml:"ip,omitempty"`
}

// Power is the current draw in watts.
type Power struct {
	Current float64 `json:"current" yaml:"current"`
}

// GPU is one accelerator as reported by nvidia-smi. Unsupported readings are nil.
type GPU struct {
	Index       int      `json:"index" yaml:"index"`
	Name        string   `json:"name" yaml:"name"`
	UUID        string   `json:"uuid,omitempty" yaml:"uuid,omitempty"`
	Temperature *float64 `json:"temperature,omitempty" yaml:"temperature,omitempty"`
	Utilization *float64 `json:"utilization,omitempty" yaml:"utilization,omitempty"`
	MemoryUsed  *float64 `json:"memory_used,omitempty" yaml:"memory_used,omitempty"`
	MemoryTotal *float64 `json:"memory_total,omitempty" yaml:"memory_total,omitempty"`
	PowerDraw   *float64 `json:"power_draw,omitempty" yaml:"power_draw,omitempty"`
}

// GPUs is the list of accelerators.
type GPUs []GPU

// System identifies the host.
type System struct {
	Hostname string
	OS       string
}

// Report is the normalized host telemetry document.
type Report struct {
	header.Header `json:",inline" yaml:",inline"`

	Hostname *string  `json:"hostname,omitempty" yaml:"hostname,omitempty"`
	OS       *string  `json:"os,omitempty" yaml:"os,omitempty"`
	NProc    *int     `json:"nproc,omitempty" yaml:"nproc,omitempty"`
	Uptime   *Uptime  `json:"uptime,omitempty" yaml:"uptime,omitempty"`
	Memory   *Memory  `json:"memory,omitempty" yaml:"memory,omitempty"`
	Disks    Disks    `json:"disks" yaml:"disks"`
	Network  *Network `json:"network,omitempty" yaml:"network,omitempty"`
	Location *string  `json:"location,omitempty" yaml:"location,omitempty"`
	Power    *Power   `json:"power,omitempty" yaml:"power,omitempty"`
	GPUs     GPUs     `json:"gpus,omitempty" yaml:"gpus,omitempty"`
}

// New creates an empty report with an initialized header.
func New(toolVersion string) *Report {
	r := &Report{Disks: Disks{}}
	r.Init(header.KindHostReport, APIVersion, toolVersion)
	return r
}

// Apply stores a collected section in the report.
func (r *Report) Apply(section any) error {
	switch s := section.(type) {
	case NProc:
		n := int(s)
		r.NProc = &n
	case Uptime:
		r.Uptime = &s
	case *Memory:
		r.Memory = s
	case Memory:
		r.Memory = &s
	case Disks:
		if s == nil {
			s = Disks{}
		}
		r.Disks = s
	case *Network:
		r.Network = s
	case Network:
		r.Network = &s
	case *Power:
		r.Power = s
	case Power:
		r.Power = &s
	case GPUs:
		r.GPUs = s
	case System:
		if s.Hostname != "" {
			r.Hostname = &s.Hostname
		}
		if s.OS != "" {
			r.OS = &s.OS
		}
	default:
		return fmt.Errorf("unsupported report section %T", section)
	}
	return nil
}

// PercentUsed returns used/total as a percentage rounded half up, or 0 for
// a zero total.
func PercentUsed(used, total uint64) int {
	if total == 0 {
		return 0
	}
	return int((100*used + total/2) / total)
}

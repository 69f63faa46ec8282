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
	"fmt"
	"strings"
)

// Section names a part of the host report.
type Section string

const (
	SectionSystem  Section = "system"
	SectionCPU     Section = "cpu"
	SectionUptime  Section = "uptime"
	SectionMemory  Section = "memory"
	SectionDisks   Section = "disks"
	SectionNetwork Section = "network"
	SectionPower   Section = "power"
	SectionGPU     Section = "gpu"
)

// AllSections lists every section in report order.
var AllSections = []Section{
	SectionSystem,
	SectionCPU,
	SectionUptime,
	SectionMemory,
	SectionDisks,
	SectionNetwork,
	SectionPower,
	SectionGPU,
}

// DefaultSections returns the sections enabled when nothing is configured.
// Power and GPU need hardware most hosts lack.
func DefaultSections() []Section {
	out := make([]Section, 0, len(AllSections))
	for _, s := range AllSections {
		if s != SectionPower && s != SectionGPU {
			out = append(out, s)
		}
	}
	return out
}

// ParseSection validates a section name.
func ParseSection(name string) (Section, error) {
	s := Section(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range AllSections {
		if s == known {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown section %q", name)
}

// Create returns the factory's collector for a section.
func Create(f Factory, s Section) (Collector, error) {
	switch s {
	case SectionSystem:
		return f.CreateSystemCollector(), nil
	case SectionCPU:
		return f.CreateCPUCollector(), nil
	case SectionUptime:
		return f.CreateUptimeCollector(), nil
	case SectionMemory:
		return f.CreateMemoryCollector(), nil
	case SectionDisks:
		return f.CreateDisksCollector(), nil
	case SectionNetwork:
		return f.CreateNetworkCollector(), nil
	case SectionPower:
		return f.CreatePowerCollector(), nil
	case SectionGPU:
		return f.CreateGPUCollector(), nil
	default:
		return nil, fmt.Errorf("unknown section %q", s)
	}
}

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

package snapshotter

import (
	"context"
	"fmt"
	"net/netip"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/farmview/farmview/pkg/collector"
	"github.com/farmview/farmview/pkg/defaults"
	"github.com/farmview/farmview/pkg/disk"
	"github.com/farmview/farmview/pkg/header"
	"github.com/farmview/farmview/pkg/location"
	"github.com/farmview/farmview/pkg/report"
)

func TestHostSnapshotter_Measure(t *testing.T) {
	t.Run("with mock factory", func(t *testing.T) {
		factory := newMockFactory()
		ser := &mockSerializer{}
		s := &HostSnapshotter{
			Version:    "1.0.0",
			Factory:    factory,
			Serializer: ser,
		}

		if err := s.Measure(context.Background()); err != nil {
			t.Fatalf("Measure() error = %v, want nil", err)
		}

		if !ser.serialized {
			t.Fatal("serializer not called")
		}

		rep, ok := ser.data.(*report.Report)
		if !ok {
			t.Fatalf("serialized %T, want *report.Report", ser.data)
		}
		if rep.Kind != header.KindHostReport {
			t.Errorf("Kind = %s, want %s", rep.Kind, header.KindHostReport)
		}
		if rep.NProc == nil || *rep.NProc != 8 {
			t.Errorf("NProc = %v, want 8", rep.NProc)
		}
		if len(rep.Disks) != 1 {
			t.Errorf("Disks len = %d, want 1", len(rep.Disks))
		}
		if rep.Power != nil {
			t.Error("Power should not be collected by default")
		}
		if factory.called(collector.SectionGPU) {
			t.Error("GPU collector should not be created by default")
		}
	})

	t.Run("failed section is omitted", func(t *testing.T) {
		factory := newMockFactory()
		factory.errs[collector.SectionMemory] = fmt.Errorf("meminfo unreadable")
		ser := &mockSerializer{}
		s := &HostSnapshotter{Factory: factory, Serializer: ser}

		if err := s.Measure(context.Background()); err != nil {
			t.Fatalf("Measure() error = %v, want nil", err)
		}

		rep := ser.data.(*report.Report)
		if rep.Memory != nil {
			t.Error("Memory should be omitted after a failure")
		}
		if rep.NProc == nil {
			t.Error("NProc should still be present")
		}
	})

	t.Run("explicit sections", func(t *testing.T) {
		factory := newMockFactory()
		ser := &mockSerializer{}
		s := &HostSnapshotter{
			Factory:    factory,
			Serializer: ser,
			Sections:   []collector.Section{collector.SectionPower},
		}

		if err := s.Measure(context.Background()); err != nil {
			t.Fatalf("Measure() error = %v", err)
		}

		rep := ser.data.(*report.Report)
		if rep.Power == nil {
			t.Error("Power should be collected when enabled")
		}
		if rep.Disks == nil || len(rep.Disks) != 0 {
			t.Errorf("Disks = %v, want empty non-nil", rep.Disks)
		}
		if factory.called(collector.SectionCPU) {
			t.Error("CPU collector should not be created")
		}
	})

	t.Run("canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		ser := &mockSerializer{}
		s := &HostSnapshotter{Factory: newMockFactory(), Serializer: ser}
		if err := s.Measure(ctx); err == nil {
			t.Error("Measure() should fail on a canceled context")
		}
		if ser.serialized {
			t.Error("serializer should not be called")
		}
	})

	t.Run("serializer error", func(t *testing.T) {
		s := &HostSnapshotter{
			Factory:    newMockFactory(),
			Serializer: &mockSerializer{err: fmt.Errorf("disk full")},
		}
		if err := s.Measure(context.Background()); err == nil {
			t.Error("Measure() should return serializer errors")
		}
	})
}

func TestHostSnapshotter_Location(t *testing.T) {
	table := &location.Table{
		Locations: []location.Location{
			{Name: "rack-a", IPs: location.Prefixes{netip.MustParsePrefix("10.0.1.0/24")}},
			{Name: "lab", IPs: location.Prefixes{netip.MustParsePrefix("10.0.0.0/16")}},
		},
		Fallback: "office",
	}

	tests := []struct {
		name     string
		ip       string
		sections []collector.Section
		locator  Locator
		want     string
	}{
		{name: "first matching range", ip: "10.0.1.20", locator: table, want: "rack-a"},
		{name: "second range", ip: "10.0.3.20", locator: table, want: "lab"},
		{name: "fallback", ip: "172.16.0.4", locator: table, want: "office"},
		{name: "no address", locator: table, want: "office"},
		{name: "network not collected", ip: "10.0.1.20",
			sections: []collector.Section{collector.SectionCPU}, locator: table, want: "office"},
		{name: "no fallback", ip: "172.16.0.4",
			locator: &location.Table{Locations: table.Locations}},
		{name: "no locator", ip: "10.0.1.20"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			factory := newMockFactory()
			factory.ip = tt.ip
			s := &HostSnapshotter{Factory: factory, Sections: tt.sections, Locator: tt.locator}

			rep, err := s.Collect(context.Background())
			if err != nil {
				t.Fatalf("Collect() error = %v", err)
			}

			switch {
			case tt.want == "" && rep.Location != nil:
				t.Errorf("Location = %q, want none", *rep.Location)
			case tt.want != "" && (rep.Location == nil || *rep.Location != tt.want):
				t.Errorf("Location = %v, want %q", rep.Location, tt.want)
			}
		})
	}
}

func TestHostSnapshotter_Timeout(t *testing.T) {
	s := &HostSnapshotter{CollectorTimeout: 2 * time.Second}

	if got := s.timeout(collector.SectionCPU); got != 2*time.Second {
		t.Errorf("cpu timeout = %v, want 2s", got)
	}
	if got := s.timeout(collector.SectionDisks); got != defaults.DisksCollectorTimeout {
		t.Errorf("disks timeout = %v, want %v", got, defaults.DisksCollectorTimeout)
	}
	if got := s.timeout(collector.SectionNetwork); got != defaults.NetworkSampleTimeout {
		t.Errorf("network timeout = %v, want %v", got, defaults.NetworkSampleTimeout)
	}

	s.CollectorTimeout = 0
	if got := s.timeout(collector.SectionSystem); got != defaults.CollectorTimeout {
		t.Errorf("default timeout = %v, want %v", got, defaults.CollectorTimeout)
	}
}

func TestWriteMetrics(t *testing.T) {
	ObserveMetadataLookup("sda", disk.LookupTimeout, time.Second)

	path := filepath.Join(t.TempDir(), "farmview.prom")
	if err := WriteMetrics(path); err != nil {
		t.Fatalf("WriteMetrics() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `farmview_metadata_lookup_total{outcome="timeout"}`) {
		t.Errorf("metrics file missing lookup counter:\n%s", data)
	}
}

// Mock implementations for testing

type mockSerializer struct {
	serialized bool
	data       any
	err        error
}

func (m *mockSerializer) Serialize(ctx context.Context, data any) error {
	if m.err != nil {
		return m.err
	}
	m.serialized = true
	m.data = data
	return nil
}

type mockFactory struct {
	mu      sync.Mutex
	created map[collector.Section]bool
	errs    map[collector.Section]error
	ip      string
}

func newMockFactory() *mockFactory {
	return &mockFactory{
		created: map[collector.Section]bool{},
		errs:    map[collector.Section]error{},
	}
}

func (m *mockFactory) called(s collector.Section) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.created[s]
}

func (m *mockFactory) collector(s collector.Section, value any) collector.Collector {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created[s] = true
	return &mockCollector{value: value, err: m.errs[s]}
}

func (m *mockFactory) CreateSystemCollector() collector.Collector {
	return m.collector(collector.SectionSystem, report.System{Hostname: "node-1", OS: "Ubuntu 24.04 LTS"})
}

func (m *mockFactory) CreateCPUCollector() collector.Collector {
	return m.collector(collector.SectionCPU, report.NProc(8))
}

func (m *mockFactory) CreateUptimeCollector() collector.Collector {
	return m.collector(collector.SectionUptime, report.Uptime{0.1, 0.2, 0.3})
}

func (m *mockFactory) CreateMemoryCollector() collector.Collector {
	return m.collector(collector.SectionMemory, &report.Memory{Total: 100, Used: 50, PercentUsed: 50})
}

func (m *mockFactory) CreateDisksCollector() collector.Collector {
	return m.collector(collector.SectionDisks, report.Disks{{DeviceID: "sda"}})
}

func (m *mockFactory) CreateNetworkCollector() collector.Collector {
	n := &report.Network{}
	if m.ip != "" {
		ip := m.ip
		n.IP = &ip
	}
	return m.collector(collector.SectionNetwork, n)
}

func (m *mockFactory) CreatePowerCollector() collector.Collector {
	return m.collector(collector.SectionPower, &report.Power{Current: 180})
}

func (m *mockFactory) CreateGPUCollector() collector.Collector {
	return m.collector(collector.SectionGPU, report.GPUs{})
}

type mockCollector struct {
	value any
	err   error
}

func (m *mockCollector) Collect(ctx context.Context) (any, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.value, nil
}

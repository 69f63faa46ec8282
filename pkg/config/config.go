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

// Package config loads the farmview YAML configuration.
package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/farmview/farmview/pkg/collector"
	"github.com/farmview/farmview/pkg/defaults"
	"github.com/farmview/farmview/pkg/errors"
	"github.com/farmview/farmview/pkg/location"
)

// Config is the file-level configuration. CLI flags override its values.
type Config struct {
	// Sections enables or disables report sections by name. Sections not
	// listed keep their default.
	Sections map[string]bool `yaml:"sections,omitempty"`
	// HostSource selects how the system, cpu, uptime and memory sections
	// are read: exec or psutil.
	HostSource string   `yaml:"host_source"`
	Network    Network  `yaml:"network"`
	Disks      Disks    `yaml:"disks"`
	Timeouts   Timeouts `yaml:"timeouts"`

	// Locations are tried in order against the host address; the first
	// whose ranges contain it names the host's site. Location is reported
	// when none matches.
	Locations []location.Location `yaml:"locations,omitempty"`
	Location  string              `yaml:"location,omitempty"`
}

type Network struct {
	Interface string `yaml:"interface,omitempty"`
}

type Disks struct {
	MountSource         string   `yaml:"mount_source"`
	Ignore              []string `yaml:"ignore,omitempty"`
	IncludeTypes        []string `yaml:"include_types,omitempty"`
	Smart               *bool    `yaml:"smart,omitempty"`
	MetadataConcurrency int      `yaml:"metadata_concurrency"`
	MetadataRate        float64  `yaml:"metadata_rate"`
}

type Timeouts struct {
	Collector time.Duration `yaml:"collector"`
	Metadata  time.Duration `yaml:"metadata"`
}

// SearchPaths returns the locations tried when no path is given, in order.
func SearchPaths() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "farmview", "config.yaml"))
	}
	return append(paths, "/etc/farmview/config.yaml")
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	smart := true
	return &Config{
		HostSource: collector.HostSourceExec,
		Disks: Disks{
			MountSource:         collector.MountSourceDF,
			Smart:               &smart,
			MetadataConcurrency: defaults.MetadataConcurrency,
		},
		Timeouts: Timeouts{
			Collector: defaults.CollectorTimeout,
			Metadata:  defaults.MetadataLookupTimeout,
		},
	}
}

// Load reads the configuration at path. An empty path searches
// SearchPaths and falls back to Default when none exists; an explicit path
// must exist. Missing keys keep their defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		for _, candidate := range SearchPaths() {
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
	}

	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeInvalidRequest, "failed to read config", err,
			map[string]any{"path": path})
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeInvalidRequest, "failed to parse config", err,
			map[string]any{"path": path})
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	def := Default()
	if c.HostSource == "" {
		c.HostSource = def.HostSource
	}
	if c.Disks.MountSource == "" {
		c.Disks.MountSource = def.Disks.MountSource
	}
	if c.Disks.Smart == nil {
		c.Disks.Smart = def.Disks.Smart
	}
	if c.Disks.MetadataConcurrency == 0 {
		c.Disks.MetadataConcurrency = def.Disks.MetadataConcurrency
	}
	if c.Timeouts.Collector == 0 {
		c.Timeouts.Collector = def.Timeouts.Collector
	}
	if c.Timeouts.Metadata == 0 {
		c.Timeouts.Metadata = def.Timeouts.Metadata
	}
}

// Validate checks value ranges and names.
func (c *Config) Validate() error {
	switch c.HostSource {
	case collector.HostSourceExec, collector.HostSourcePsutil:
	default:
		return errors.NewWithContext(errors.ErrCodeInvalidRequest, "unknown host source",
			map[string]any{"host_source": c.HostSource})
	}
	switch c.Disks.MountSource {
	case collector.MountSourceDF, collector.MountSourcePsutil, collector.MountSourceMountinfo:
	default:
		return errors.NewWithContext(errors.ErrCodeInvalidRequest, "unknown mount source",
			map[string]any{"mount_source": c.Disks.MountSource})
	}
	if c.Disks.MetadataConcurrency < 1 {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest, "metadata_concurrency must be at least 1",
			map[string]any{"metadata_concurrency": c.Disks.MetadataConcurrency})
	}
	if c.Disks.MetadataRate < 0 {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest, "metadata_rate must not be negative",
			map[string]any{"metadata_rate": c.Disks.MetadataRate})
	}
	if c.Timeouts.Collector < 0 || c.Timeouts.Metadata < 0 {
		return errors.New(errors.ErrCodeInvalidRequest, "timeouts must not be negative")
	}
	for i, loc := range c.Locations {
		if loc.Name == "" || len(loc.IPs) == 0 {
			return errors.NewWithContext(errors.ErrCodeInvalidRequest, "location needs a name and ips",
				map[string]any{"index": i, "name": loc.Name})
		}
	}
	for name := range c.Sections {
		if _, err := collector.ParseSection(name); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidRequest, "invalid sections entry", err)
		}
	}
	return nil
}

// LocationTable returns the resolver for the configured locations, or nil
// when neither locations nor a fallback location is set.
func (c *Config) LocationTable() *location.Table {
	if len(c.Locations) == 0 && c.Location == "" {
		return nil
	}
	return &location.Table{Locations: c.Locations, Fallback: c.Location}
}

// SmartEnabled reports whether smartctl lookups are on.
func (c *Config) SmartEnabled() bool {
	return c.Disks.Smart == nil || *c.Disks.Smart
}

// EnabledSections applies the sections map to the default section set and
// returns the result in report order.
func (c *Config) EnabledSections() []collector.Section {
	enabled := make(map[collector.Section]bool, len(collector.AllSections))
	for _, s := range collector.DefaultSections() {
		enabled[s] = true
	}
	for name, on := range c.Sections {
		s, err := collector.ParseSection(name)
		if err != nil {
			continue
		}
		enabled[s] = on
	}

	out := make([]collector.Section, 0, len(enabled))
	for _, s := range collector.AllSections {
		if enabled[s] {
			out = append(out, s)
		}
	}
	return out
}

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

package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/farmview/farmview/pkg/collector"
	"github.com/farmview/farmview/pkg/config"
	"github.com/farmview/farmview/pkg/defaults"
	"github.com/farmview/farmview/pkg/serializer"
	"github.com/farmview/farmview/pkg/snapshotter"
)

func collectCmd() *cli.Command {
	return &cli.Command{
		Name:                  "collect",
		EnableShellCompletion: true,
		Usage:                 "Collect a host report",
		Description: `Collect a report of the current host. Sections:
  - system: hostname and OS name
  - cpu: processing unit count
  - uptime: load averages
  - memory: total, used and percent used
  - disks: block devices with mount usage and SMART metadata
  - network: rx/tx rates and primary IP, and the location matching that IP
  - power: instantaneous draw via IPMI (off by default)
  - gpu: nvidia-smi readings (off by default)

A section that fails is logged and left out of the report.

# Examples

  farmview collect --format table
  farmview collect --sections cpu,memory,disks --output report.cbor.zst
  farmview collect --mount-source mountinfo --ignore '/boot*' --ignore '/dev/loop*'
  farmview collect --host-source psutil --location lab`,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "sections",
				Usage:   "sections to collect, replacing the configured set",
				Sources: cli.EnvVars("FARMVIEW_SECTIONS"),
			},
			&cli.StringFlag{
				Name:    "interface",
				Usage:   "network interface sampled by vnstat",
				Sources: cli.EnvVars("FARMVIEW_INTERFACE"),
			},
			&cli.StringFlag{
				Name:    "host-source",
				Usage:   "host statistics source for system, cpu, uptime and memory (exec, psutil)",
				Sources: cli.EnvVars("FARMVIEW_HOST_SOURCE"),
			},
			&cli.StringFlag{
				Name:    "location",
				Usage:   "location reported when no configured address range matches",
				Sources: cli.EnvVars("FARMVIEW_LOCATION"),
			},
			&cli.StringFlag{
				Name:    "mount-source",
				Usage:   "mount table source (df, psutil, mountinfo)",
				Sources: cli.EnvVars("FARMVIEW_MOUNT_SOURCE"),
			},
			&cli.StringSliceFlag{
				Name:    "ignore",
				Usage:   "drop disk entries whose mount point or device matches (repeatable, * wildcards)",
				Sources: cli.EnvVars("FARMVIEW_IGNORE"),
			},
			&cli.StringSliceFlag{
				Name:    "include-types",
				Usage:   "lsblk device types to keep that are excluded by default (loop, ram, rom)",
				Sources: cli.EnvVars("FARMVIEW_INCLUDE_TYPES"),
			},
			&cli.BoolFlag{
				Name:    "smart",
				Usage:   "look up disk model and attributes with smartctl",
				Value:   true,
				Sources: cli.EnvVars("FARMVIEW_SMART"),
			},
			&cli.IntFlag{
				Name:    "metadata-concurrency",
				Usage:   "maximum concurrent disk metadata lookups",
				Sources: cli.EnvVars("FARMVIEW_METADATA_CONCURRENCY"),
			},
			&cli.FloatFlag{
				Name:    "metadata-rate",
				Usage:   "maximum smartctl invocations per second (0 = unlimited)",
				Sources: cli.EnvVars("FARMVIEW_METADATA_RATE"),
			},
			&cli.DurationFlag{
				Name:    "metadata-timeout",
				Usage:   "time limit for one disk's metadata lookup",
				Sources: cli.EnvVars("FARMVIEW_METADATA_TIMEOUT"),
			},
			&cli.DurationFlag{
				Name:    "collector-timeout",
				Usage:   "time limit for each section",
				Sources: cli.EnvVars("FARMVIEW_COLLECTOR_TIMEOUT"),
			},
			&cli.DurationFlag{
				Name:    "timeout",
				Usage:   "time limit for the whole collection",
				Value:   defaults.CLICollectTimeout,
				Sources: cli.EnvVars("FARMVIEW_TIMEOUT"),
			},
			&cli.StringFlag{
				Name:    "metrics-file",
				Usage:   "write collection metrics in node_exporter textfile format",
				Sources: cli.EnvVars("FARMVIEW_METRICS_FILE"),
			},
			outputFlag(),
			formatFlag(""),
		},
		Action: runCollect,
	}
}

func runCollect(ctx context.Context, cmd *cli.Command) error {
	outFormat, err := parseOutputFormat(cmd)
	if err != nil {
		return err
	}

	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return err
	}
	if err := applyCollectFlags(cmd, cfg); err != nil {
		return err
	}

	sections, err := selectedSections(cmd, cfg)
	if err != nil {
		return err
	}

	factory := collector.NewDefaultFactory(
		collector.WithHostSource(cfg.HostSource),
		collector.WithNetworkInterface(cfg.Network.Interface),
		collector.WithMountSource(cfg.Disks.MountSource),
		collector.WithDiskIgnore(cfg.Disks.Ignore...),
		collector.WithDiskIncludeTypes(cfg.Disks.IncludeTypes...),
		collector.WithSmart(cfg.SmartEnabled()),
		collector.WithMetadataConcurrency(cfg.Disks.MetadataConcurrency),
		collector.WithMetadataRate(cfg.Disks.MetadataRate),
		collector.WithMetadataTimeout(cfg.Timeouts.Metadata),
		collector.WithMetadataObserver(snapshotter.ObserveMetadataLookup),
	)

	writer := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
	defer func() {
		if cerr := writer.Close(); cerr != nil {
			slog.Warn("failed to close output", "error", cerr)
		}
	}()

	hs := snapshotter.HostSnapshotter{
		Version:          version,
		Factory:          factory,
		Serializer:       writer,
		Sections:         sections,
		CollectorTimeout: cfg.Timeouts.Collector,
	}
	if table := cfg.LocationTable(); table != nil {
		hs.Locator = table
	}

	cctx, cancel := context.WithTimeout(ctx, cmd.Duration("timeout"))
	defer cancel()

	if err := hs.Measure(cctx); err != nil {
		return err
	}

	if path := cmd.String("metrics-file"); path != "" {
		if err := snapshotter.WriteMetrics(path); err != nil {
			return err
		}
		slog.Debug("metrics written", "path", path)
	}
	return nil
}

// applyCollectFlags overrides config file values with explicitly set flags.
func applyCollectFlags(cmd *cli.Command, cfg *config.Config) error {
	if cmd.IsSet("interface") {
		cfg.Network.Interface = cmd.String("interface")
	}
	if cmd.IsSet("host-source") {
		cfg.HostSource = cmd.String("host-source")
	}
	if cmd.IsSet("location") {
		cfg.Location = cmd.String("location")
	}
	if cmd.IsSet("mount-source") {
		cfg.Disks.MountSource = cmd.String("mount-source")
	}
	if cmd.IsSet("ignore") {
		cfg.Disks.Ignore = cmd.StringSlice("ignore")
	}
	if cmd.IsSet("include-types") {
		cfg.Disks.IncludeTypes = cmd.StringSlice("include-types")
	}
	if cmd.IsSet("smart") {
		smart := cmd.Bool("smart")
		cfg.Disks.Smart = &smart
	}
	if cmd.IsSet("metadata-concurrency") {
		cfg.Disks.MetadataConcurrency = cmd.Int("metadata-concurrency")
	}
	if cmd.IsSet("metadata-rate") {
		cfg.Disks.MetadataRate = cmd.Float("metadata-rate")
	}
	if cmd.IsSet("metadata-timeout") {
		cfg.Timeouts.Metadata = cmd.Duration("metadata-timeout")
	}
	if cmd.IsSet("collector-timeout") {
		cfg.Timeouts.Collector = cmd.Duration("collector-timeout")
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	return nil
}

func selectedSections(cmd *cli.Command, cfg *config.Config) ([]collector.Section, error) {
	if !cmd.IsSet("sections") {
		return cfg.EnabledSections(), nil
	}

	var out []collector.Section
	for _, name := range cmd.StringSlice("sections") {
		s, err := collector.ParseSection(name)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("--sections must name at least one section")
	}
	return out, nil
}

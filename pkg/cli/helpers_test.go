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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/farmview/farmview/pkg/collector"
	"github.com/farmview/farmview/pkg/config"
	"github.com/farmview/farmview/pkg/report"
	"github.com/farmview/farmview/pkg/serializer"
)

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		name       string
		format     string
		output     string
		wantFormat serializer.Format
		wantErr    bool
	}{
		{
			name:       "valid yaml format",
			format:     "yaml",
			wantFormat: serializer.FormatYAML,
		},
		{
			name:       "valid cbor format",
			format:     "CBOR",
			wantFormat: serializer.FormatCBOR,
		},
		{
			name:       "valid table format",
			format:     "table",
			wantFormat: serializer.FormatTable,
		},
		{
			name:       "empty format defaults to json",
			wantFormat: serializer.FormatJSON,
		},
		{
			name:       "empty format inferred from output",
			output:     "report.yaml.zst",
			wantFormat: serializer.FormatYAML,
		},
		{
			name:    "invalid format xml",
			format:  "xml",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cli.Command{
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "format", Value: tt.format},
					&cli.StringFlag{Name: "output", Value: tt.output},
				},
				Action: func(_ context.Context, c *cli.Command) error {
					got, err := parseOutputFormat(c)
					if (err != nil) != tt.wantErr {
						t.Errorf("parseOutputFormat() error = %v, wantErr %v", err, tt.wantErr)
						return nil
					}
					if !tt.wantErr && got != tt.wantFormat {
						t.Errorf("parseOutputFormat() = %v, want %v", got, tt.wantFormat)
					}
					return nil
				},
			}

			require.NoError(t, cmd.Run(context.Background(), []string{"test"}))
		})
	}
}

// runCollectFlags parses args with the collect flags and hands the parsed
// command to fn.
func runCollectFlags(t *testing.T, args []string, fn func(c *cli.Command)) {
	t.Helper()
	cmd := collectCmd()
	cmd.Action = func(_ context.Context, c *cli.Command) error {
		fn(c)
		return nil
	}
	require.NoError(t, cmd.Run(context.Background(), append([]string{"collect"}, args...)))
}

func TestApplyCollectFlags(t *testing.T) {
	runCollectFlags(t, []string{
		"--interface", "eth2",
		"--mount-source", "psutil",
		"--ignore", "/boot*",
		"--smart=false",
		"--metadata-concurrency", "1",
		"--metadata-rate", "2.5",
	}, func(c *cli.Command) {
		cfg := config.Default()
		require.NoError(t, applyCollectFlags(c, cfg))

		assert.Equal(t, "eth2", cfg.Network.Interface)
		assert.Equal(t, collector.MountSourcePsutil, cfg.Disks.MountSource)
		assert.Equal(t, []string{"/boot*"}, cfg.Disks.Ignore)
		assert.False(t, cfg.SmartEnabled())
		assert.Equal(t, 1, cfg.Disks.MetadataConcurrency)
		assert.InDelta(t, 2.5, cfg.Disks.MetadataRate, 1e-9)
	})

	runCollectFlags(t, nil, func(c *cli.Command) {
		cfg := config.Default()
		cfg.Network.Interface = "from-file"
		require.NoError(t, applyCollectFlags(c, cfg))
		assert.Equal(t, "from-file", cfg.Network.Interface, "unset flags keep config values")
		assert.True(t, cfg.SmartEnabled())
	})

	runCollectFlags(t, []string{"--mount-source", "fstab"}, func(c *cli.Command) {
		assert.Error(t, applyCollectFlags(c, config.Default()))
	})

	runCollectFlags(t, []string{"--host-source", "psutil", "--location", "lab"}, func(c *cli.Command) {
		cfg := config.Default()
		require.NoError(t, applyCollectFlags(c, cfg))
		assert.Equal(t, collector.HostSourcePsutil, cfg.HostSource)
		assert.Equal(t, "lab", cfg.Location)
		require.NotNil(t, cfg.LocationTable())
	})

	runCollectFlags(t, []string{"--host-source", "wmi"}, func(c *cli.Command) {
		assert.Error(t, applyCollectFlags(c, config.Default()))
	})
}

func TestSelectedSections(t *testing.T) {
	runCollectFlags(t, []string{"--sections", "cpu,gpu"}, func(c *cli.Command) {
		got, err := selectedSections(c, config.Default())
		require.NoError(t, err)
		assert.Equal(t, []collector.Section{collector.SectionCPU, collector.SectionGPU}, got)
	})

	runCollectFlags(t, nil, func(c *cli.Command) {
		got, err := selectedSections(c, config.Default())
		require.NoError(t, err)
		assert.Equal(t, collector.DefaultSections(), got)
	})

	runCollectFlags(t, []string{"--sections", "kernel"}, func(c *cli.Command) {
		_, err := selectedSections(c, config.Default())
		assert.Error(t, err)
	})
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "report.json.zst")
	out := filepath.Join(dir, "report.yaml")

	rep := report.New("1.2.3")
	require.NoError(t, rep.Apply(report.NProc(16)))

	w := serializer.NewFileWriterOrStdout("", in)
	require.NoError(t, w.Serialize(context.Background(), rep))
	require.NoError(t, w.Close())

	err := newRootCmd().Run(context.Background(), []string{name, "render", "-i", in, "-o", out, "-t", "yaml"})
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "nproc: 16")
	assert.Contains(t, string(data), "kind: HostReport")
}

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

package psutil

import (
	"context"
	"fmt"
	"testing"

	psdisk "github.com/shirou/gopsutil/v4/disk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmview/farmview/pkg/errors"
)

func fakeSource(parts []psdisk.PartitionStat, usage map[string]*psdisk.UsageStat) *Source {
	return &Source{
		partitions: func(context.Context, bool) ([]psdisk.PartitionStat, error) {
			return parts, nil
		},
		usage: func(_ context.Context, path string) (*psdisk.UsageStat, error) {
			if u, ok := usage[path]; ok {
				return u, nil
			}
			return nil, fmt.Errorf("statfs %s: permission denied", path)
		},
	}
}

func TestMountTable(t *testing.T) {
	s := fakeSource(
		[]psdisk.PartitionStat{
			{Device: "/dev/nvme0n1p2", Mountpoint: "/", Fstype: "ext4"},
			{Device: "/dev/nvme0n1p1", Mountpoint: "/boot/efi", Fstype: "vfat"},
			{Device: "/dev/sdb1", Mountpoint: "/secret", Fstype: "xfs"},
			{Device: "tmpfs", Mountpoint: "/run", Fstype: "tmpfs"},
		},
		map[string]*psdisk.UsageStat{
			"/":         {Total: 1000, Used: 400, Free: 600},
			"/boot/efi": {Total: 100, Used: 10, Free: 90},
			"/run":      {Total: 5, Used: 1, Free: 4},
		},
	)

	mt, err := s.MountTable(context.Background())
	require.NoError(t, err)
	require.Len(t, mt, 2)

	root := mt["nvme0n1p2"]
	assert.Equal(t, "/", root.MountPoint)
	assert.Equal(t, int64(1000), root.SizeBytes)
	assert.Equal(t, int64(400), root.UsedBytes)
	assert.Equal(t, int64(600), root.AvailableBytes)
	assert.Equal(t, "/boot/efi", mt["nvme0n1p1"].MountPoint)
}

func TestMountTablePartitionsError(t *testing.T) {
	s := &Source{
		partitions: func(context.Context, bool) ([]psdisk.PartitionStat, error) {
			return nil, fmt.Errorf("open /proc/1/mountinfo: no such file")
		},
	}

	mt, err := s.MountTable(context.Background())
	require.Error(t, err)
	assert.Nil(t, mt)
	assert.True(t, errors.HasCode(err, errors.ErrCodeSourceUnavailable))
}

func TestNewUsesGopsutil(t *testing.T) {
	s := New()
	assert.NotNil(t, s.partitions)
	assert.NotNil(t, s.usage)
}

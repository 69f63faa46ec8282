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

package disks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmview/farmview/pkg/command"
	"github.com/farmview/farmview/pkg/disk"
	"github.com/farmview/farmview/pkg/disk/df"
	"github.com/farmview/farmview/pkg/disk/lsblk"
	"github.com/farmview/farmview/pkg/disk/smart"
	"github.com/farmview/farmview/pkg/report"
)

const (
	lsblkOut = `{"blockdevices": [
  {"name": "sda", "size": 1000204886016, "type": "disk", "children": [
    {"name": "sda1", "size": 536870912, "type": "part"},
    {"name": "sda2", "size": 999666221056, "type": "part"}
  ]},
  {"name": "sdb", "size": 4000787030016, "type": "disk", "children": [
    {"name": "sdb1", "size": 4000785104896, "type": "part"}
  ]},
  {"name": "loop0", "size": 58363904, "type": "loop"}
]}`

	dfOut = `Filesystem 1-blocks Used Available Capacity Mounted on
/dev/sda2 983349346304 48573194240 884749512704 6% /
/dev/sda1 535805952 6139904 529666048 2% /boot/efi
tmpfs 1640173568 2056192 1638117376 1% /run
`

	smartInfo = "=== START OF INFORMATION SECTION ===\nDevice Model:     WDC WD10EZEX-08WN4A0\n"
)

func runner() *command.StaticRunner {
	return command.NewStaticRunner(map[string]string{
		"lsblk -J -b -o NAME,SIZE,TYPE": lsblkOut,
		"df -P -B1":                     dfOut,
		"smartctl --version":            "smartctl 6.6 2016-05-31 r4324",
		"smartctl -i /dev/sda":          smartInfo,
	})
}

func TestCollect(t *testing.T) {
	r := runner()
	c := &Collector{
		Tree:   lsblk.New(lsblk.WithRunner(r)),
		Mounts: df.New(df.WithRunner(r)),
		Meta:   smart.New(smart.WithRunner(r)),
	}

	got, err := c.Collect(context.Background())
	require.NoError(t, err)

	entries := got.(report.Disks)
	require.Len(t, entries, 3)

	// "/" < "/boot/efi" < "sdb"
	assert.Equal(t, "sda2", entries[0].DeviceID)
	assert.Equal(t, "sda1", entries[1].DeviceID)
	assert.Equal(t, "sdb", entries[2].DeviceID)

	require.NotNil(t, entries[0].Model)
	assert.Equal(t, "WDC WD10EZEX-08WN4A0", *entries[0].Model)
	assert.Equal(t, int64(48573194240), *entries[0].UsedBytes)

	assert.False(t, entries[2].Mounted())
	assert.Nil(t, entries[2].Model)
	assert.Equal(t, int64(4000787030016), entries[2].SizeBytes)
}

func TestCollectSourcesUnavailable(t *testing.T) {
	r := command.NewStaticRunner(nil)
	c := &Collector{
		Tree:   lsblk.New(lsblk.WithRunner(r)),
		Mounts: df.New(df.WithRunner(r)),
	}

	got, err := c.Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, report.Disks{}, got)
}

func TestCollectMountTableUnavailable(t *testing.T) {
	r := command.NewStaticRunner(map[string]string{
		"lsblk -J -b -o NAME,SIZE,TYPE": lsblkOut,
	})
	c := &Collector{
		Tree:    lsblk.New(lsblk.WithRunner(r)),
		Mounts:  df.New(df.WithRunner(r)),
		Options: []disk.ResolveOption{disk.WithIgnore("sdb*")},
	}

	got, err := c.Collect(context.Background())
	require.NoError(t, err)

	entries := got.(report.Disks)
	require.Len(t, entries, 1)
	assert.Equal(t, "sda", entries[0].DeviceID)
	assert.False(t, entries[0].Mounted())
}

func TestCollectRaidMember(t *testing.T) {
	r := command.NewStaticRunner(map[string]string{
		"lsblk -J -b -o NAME,SIZE,TYPE": `{"blockdevices": [
  {"name": "sda", "size": 2000, "type": "disk", "children": [
    {"name": "sda1", "size": 2000, "type": "part", "children": [
      {"name": "md0", "size": 1900, "type": "raid1"}
    ]}
  ]},
  {"name": "sdb", "size": 2000, "type": "disk", "children": [
    {"name": "sdb1", "size": 2000, "type": "part", "children": [
      {"name": "md0", "size": 1900, "type": "raid1"}
    ]}
  ]}
]}`,
		"df -P -B1": "Filesystem 1-blocks Used Available Capacity Mounted on\n" +
			"/dev/md0 1900 950 950 50% /data\n",
	})
	c := &Collector{
		Tree:   lsblk.New(lsblk.WithRunner(r)),
		Mounts: df.New(df.WithRunner(r)),
	}

	got, err := c.Collect(context.Background())
	require.NoError(t, err)

	entries := got.(report.Disks)
	require.Len(t, entries, 2)
	assert.Equal(t, "md0", entries[0].DeviceID)
	require.NotNil(t, entries[0].MountPoint)
	assert.Equal(t, "/data", *entries[0].MountPoint)
	require.NotNil(t, entries[0].PercentUsed)
	assert.Equal(t, int64(50), *entries[0].PercentUsed)

	assert.Equal(t, "sdb1", entries[1].DeviceID)
	assert.False(t, entries[1].Mounted())
}

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

package disk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchesPattern(t *testing.T) {
	tests := []struct {
		key     string
		pattern string
		want    bool
	}{
		{"sda1", "sda1", true},
		{"sda1", "sda", false},
		{"loop0", "loop*", true},
		{"/var/lib/docker", "*docker", true},
		{"/snap/core/123", "/snap/*", true},
		{"nvme0n1p2", "nvme*p*", true},
		{"nvme0n1", "nvme*p*", false},
		{"ab", "a*b", true},
		{"a", "a*a", false},
		{"anything", "*", true},
		{"/mnt/backup/x", "*backup*", true},
	}

	for _, tt := range tests {
		t.Run(tt.key+"~"+tt.pattern, func(t *testing.T) {
			assert.Equal(t, tt.want, matchesPattern(tt.key, tt.pattern))
		})
	}
}

func TestPatternsFilterOut(t *testing.T) {
	entries := []ResolvedDiskEntry{
		{DeviceID: "sda1", MountPoint: ptr("/")},
		{DeviceID: "sdb1", MountPoint: ptr("/snap/core/1")},
		{DeviceID: "loop3"},
		{DeviceID: "sdc"},
	}

	got := Patterns{"/snap/*", "loop*", ""}.FilterOut(entries)

	assert.Equal(t, []string{"sda1", "sdc"}, ids(got))
	assert.Equal(t, entries, Patterns(nil).FilterOut(entries))
}

func TestPatternsDevPrefix(t *testing.T) {
	e := ResolvedDiskEntry{DeviceID: "sdb2"}
	assert.True(t, Patterns{"/dev/sdb2"}.Matches(e))
	assert.True(t, Patterns{"/dev/sdb*"}.Matches(e))
	assert.False(t, Patterns{"/dev/sda*"}.Matches(e))
}

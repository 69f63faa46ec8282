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

package location

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/farmview/farmview/pkg/errors"
)

func TestLocate(t *testing.T) {
	table := &Table{
		Locations: []Location{
			{Name: "rack-a", IPs: Prefixes{netip.MustParsePrefix("10.0.1.0/24")}},
			{Name: "lab", IPs: Prefixes{
				netip.MustParsePrefix("10.0.0.0/16"),
				netip.MustParsePrefix("fd00::/8"),
			}},
		},
		Fallback: "office",
	}

	tests := []struct {
		name string
		ip   string
		want string
	}{
		{"first match wins", "10.0.1.7", "rack-a"},
		{"wider range", "10.0.2.7", "lab"},
		{"ipv6", "fd00::12", "lab"},
		{"mapped ipv4", "::ffff:10.0.1.7", "rack-a"},
		{"no match", "192.168.1.5", "office"},
		{"empty", "", "office"},
		{"garbage", "not-an-ip", "office"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, table.Locate(tt.ip))
		})
	}
}

func TestLocateNoFallback(t *testing.T) {
	table := &Table{Locations: []Location{
		{Name: "rack-a", IPs: Prefixes{netip.MustParsePrefix("10.0.1.0/24")}},
	}}
	assert.Equal(t, "", table.Locate("10.9.9.9"))

	var nilTable *Table
	assert.Equal(t, "", nilTable.Locate("10.0.1.1"))
}

func TestPrefixesYAML(t *testing.T) {
	var locs []Location
	err := yaml.Unmarshal([]byte(`
- name: rack-a
  ips: 10.0.1.0/24
- name: lab
  ips: [10.0.0.5, "10.1.0.9/16"]
`), &locs)
	require.NoError(t, err)
	require.Len(t, locs, 2)

	assert.Equal(t, Prefixes{netip.MustParsePrefix("10.0.1.0/24")}, locs[0].IPs)
	assert.Equal(t, Prefixes{
		netip.MustParsePrefix("10.0.0.5/32"),
		netip.MustParsePrefix("10.1.0.0/16"),
	}, locs[1].IPs)
}

func TestPrefixesYAMLInvalid(t *testing.T) {
	var locs []Location
	err := yaml.Unmarshal([]byte("- name: x\n  ips: 10.0.0.0/40\n"), &locs)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidRequest))
}

func TestParsePrefix(t *testing.T) {
	p, err := ParsePrefix(" 192.168.1.77/24 ")
	require.NoError(t, err)
	assert.Equal(t, "192.168.1.0/24", p.String())

	_, err = ParsePrefix("")
	assert.Error(t, err)
}

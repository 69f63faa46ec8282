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

package network

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmview/farmview/pkg/command"
	"github.com/farmview/farmview/pkg/errors"
	"github.com/farmview/farmview/pkg/report"
)

const vnstatSample = `15 packets sampled in 5 seconds
Traffic average for enp3s0

      rx        16.00 kbit/s             2 packets/s
      tx         2.00 Mbit/s           170 packets/s

`

func TestParseRates(t *testing.T) {
	rx, tx := ParseRates(vnstatSample)
	require.NotNil(t, rx)
	require.NotNil(t, tx)
	assert.InDelta(t, 2.0, *rx, 1e-9)
	assert.InDelta(t, 250.0, *tx, 1e-9)
}

func TestParseRatesUnits(t *testing.T) {
	tests := []struct {
		line string
		want float64
	}{
		{"rx 8000 bit/s", 1},
		{"rx 1.5 Gbit/s", 187500},
		{"rx 2 KiB/s", 2.048},
		{"rx 1 MiB/s", 1048.576},
		{"rx 500 B/s", 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			rx, tx := ParseRates(tt.line)
			require.NotNil(t, rx)
			assert.Nil(t, tx)
			assert.InDelta(t, tt.want, *rx, 1e-9)
		})
	}
}

func TestParseRatesMalformed(t *testing.T) {
	rx, tx := ParseRates("rx n/a kbit/s\ntx 1.0 furlongs/s\nerror: no interface")
	assert.Nil(t, rx)
	assert.Nil(t, tx)
}

func TestCollect(t *testing.T) {
	c := &Collector{
		Interface: "enp3s0",
		Runner: command.NewStaticRunner(map[string]string{
			"vnstat -tr -i enp3s0": vnstatSample,
			"hostname -I":          "192.168.1.20 172.17.0.1 fd00::20 \n",
		}),
	}

	got, err := c.Collect(context.Background())
	require.NoError(t, err)

	n := got.(*report.Network)
	assert.InDelta(t, 2.0, *n.RX, 1e-9)
	assert.Equal(t, "192.168.1.20", *n.IP)
}

func TestCollectPartial(t *testing.T) {
	c := &Collector{Runner: command.NewStaticRunner(map[string]string{
		"hostname -I": "10.0.0.5\n",
	})}

	got, err := c.Collect(context.Background())
	require.NoError(t, err)

	n := got.(*report.Network)
	assert.Nil(t, n.RX)
	assert.Nil(t, n.TX)
	assert.Equal(t, "10.0.0.5", *n.IP)
}

func TestCollectNothing(t *testing.T) {
	_, err := (&Collector{Runner: command.NewStaticRunner(nil)}).Collect(context.Background())
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeSourceUnavailable))
}

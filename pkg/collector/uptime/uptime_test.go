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

package uptime

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmview/farmview/pkg/command"
	"github.com/farmview/farmview/pkg/errors"
	"github.com/farmview/farmview/pkg/report"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want report.Uptime
	}{
		{"linux", " 10:14:02 up 12 days,  3:04,  2 users,  load average: 0.52, 0.58, 0.59\n", report.Uptime{0.52, 0.58, 0.59}},
		{"macos", "10:14  up 3 days, 18:27, 2 users, load averages: 1.91 2.02 2.07", report.Uptime{1.91, 2.02, 2.07}},
		{"busybox", "10:14:02 up 1 min,  0 users,  load average: 0.00, 0.01, 0.05", report.Uptime{0, 0.01, 0.05}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseMalformed(t *testing.T) {
	for _, in := range []string{"", "up 3 days", "load average: 1.0, 2.0", "load average: a, b, c"} {
		_, err := Parse(in)
		require.Error(t, err, in)
		assert.True(t, errors.HasCode(err, errors.ErrCodeMalformedEntry))
	}
}

func TestCollect(t *testing.T) {
	c := &Collector{Runner: command.NewStaticRunner(map[string]string{
		"uptime": "load average: 1.00, 2.00, 3.00",
	})}
	got, err := c.Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, report.Uptime{1, 2, 3}, got)

	_, err = (&Collector{Runner: command.NewStaticRunner(nil)}).Collect(context.Background())
	assert.True(t, errors.HasCode(err, errors.ErrCodeSourceUnavailable))
}

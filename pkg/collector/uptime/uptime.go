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

// Package uptime reports the 1, 5 and 15 minute load averages.
package uptime

import (
	"context"
	"strconv"
	"strings"

	"github.com/farmview/farmview/pkg/command"
	"github.com/farmview/farmview/pkg/errors"
	"github.com/farmview/farmview/pkg/report"
)

// Collector runs uptime.
type Collector struct {
	Runner command.Runner
}

// Collect returns a report.Uptime.
func (c *Collector) Collect(ctx context.Context) (any, error) {
	out, err := c.Runner.Run(ctx, "uptime")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSourceUnavailable, "uptime failed", err)
	}
	return Parse(out)
}

// Parse extracts the load averages following "load average:" (Linux) or
// "load averages:" (BSD, macOS), separated by commas or spaces:
//
//	10:14:02 up 12 days,  3:04,  2 users,  load average: 0.52, 0.58, 0.59
//	10:14  up 3 days, 18:27, 2 users, load averages: 1.91 2.02 2.07
func Parse(out string) (report.Uptime, error) {
	var u report.Uptime

	idx := strings.LastIndex(out, "load average")
	if idx < 0 {
		return u, errors.NewWithContext(errors.ErrCodeMalformedEntry, "no load average in uptime output",
			map[string]any{"output": out})
	}
	_, rest, ok := strings.Cut(out[idx:], ":")
	if !ok {
		return u, errors.New(errors.ErrCodeMalformedEntry, "no load average values")
	}

	fields := strings.FieldsFunc(rest, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	if len(fields) < 3 {
		return u, errors.NewWithContext(errors.ErrCodeMalformedEntry, "expected three load averages",
			map[string]any{"found": len(fields)})
	}

	for i := range u {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return report.Uptime{}, errors.Wrap(errors.ErrCodeMalformedEntry, "invalid load average", err)
		}
		u[i] = v
	}
	return u, nil
}

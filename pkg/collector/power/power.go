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

// Package power reports the host's current power draw from the BMC.
package power

import (
	"context"
	"strconv"
	"strings"

	"github.com/farmview/farmview/pkg/collector/file"
	"github.com/farmview/farmview/pkg/command"
	"github.com/farmview/farmview/pkg/errors"
	"github.com/farmview/farmview/pkg/report"
)

const readingKey = "Instantaneous power reading"

// Collector runs `ipmitool dcmi power reading`.
type Collector struct {
	Runner command.Runner
}

// Collect returns a *report.Power.
func (c *Collector) Collect(ctx context.Context) (any, error) {
	out, err := c.Runner.Run(ctx, "ipmitool", "dcmi", "power", "reading")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSourceUnavailable, "ipmitool failed", err)
	}
	return Parse(out)
}

// Parse reads the instantaneous reading:
//
//	Instantaneous power reading:                   142 Watts
//	Minimum during sampling period:                 98 Watts
func Parse(out string) (*report.Power, error) {
	info := file.NewParser(file.WithKVDelimiter(":")).ParseMap(out)

	raw, ok := info[readingKey]
	if !ok {
		return nil, errors.New(errors.ErrCodeMalformedEntry, "no instantaneous power reading")
	}

	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return nil, errors.New(errors.ErrCodeMalformedEntry, "empty power reading")
	}
	watts, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformedEntry, "invalid power reading", err)
	}
	return &report.Power{Current: watts}, nil
}

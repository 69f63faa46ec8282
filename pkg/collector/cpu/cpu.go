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

// Package cpu reports the number of processing units available to the host.
package cpu

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/farmview/farmview/pkg/command"
	"github.com/farmview/farmview/pkg/errors"
	"github.com/farmview/farmview/pkg/report"
)

// Collector runs nproc.
type Collector struct {
	Runner command.Runner
}

// Collect returns a report.NProc.
func (c *Collector) Collect(ctx context.Context) (any, error) {
	out, err := c.Runner.Run(ctx, "nproc")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSourceUnavailable, "nproc failed", err)
	}

	n, err := Parse(out)
	if err != nil {
		return nil, err
	}

	slog.Debug("cpu count collected", "nproc", n)
	return report.NProc(n), nil
}

// Parse reads the single integer nproc prints.
func Parse(out string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(out))
	if err != nil || n <= 0 {
		return 0, errors.WrapWithContext(errors.ErrCodeMalformedEntry, "invalid nproc output", err,
			map[string]any{"output": out})
	}
	return n, nil
}

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

package gpu

import (
	"context"
	"encoding/csv"
	stderrors "errors"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/farmview/farmview/pkg/command"
	"github.com/farmview/farmview/pkg/errors"
	"github.com/farmview/farmview/pkg/report"
)

// QueryFields are the nvidia-smi columns, in output order.
var QueryFields = []string{
	"index",
	"name",
	"uuid",
	"temperature.gpu",
	"utilization.gpu",
	"memory.used",
	"memory.total",
	"power.draw",
}

// Args is the nvidia-smi invocation.
var Args = []string{
	"--query-gpu=" + strings.Join(QueryFields, ","),
	"--format=csv,noheader,nounits",
}

// Collector runs nvidia-smi.
type Collector struct {
	Runner command.Runner
}

// Collect returns report.GPUs. A host without nvidia-smi has no GPUs.
func (c *Collector) Collect(ctx context.Context) (any, error) {
	out, err := c.Runner.Run(ctx, "nvidia-smi", Args...)
	if err != nil {
		var cerr *command.Error
		if stderrors.As(err, &cerr) && cerr.NotFound() {
			slog.Debug("nvidia-smi not installed, reporting no gpus")
			return report.GPUs{}, nil
		}
		return nil, errors.Wrap(errors.ErrCodeSourceUnavailable, "nvidia-smi failed", err)
	}

	gpus, err := Parse(out)
	if err != nil {
		return nil, err
	}

	slog.Debug("gpus collected", "count", len(gpus))
	return gpus, nil
}

// Parse reads nvidia-smi CSV rows. Readings printed as "[N/A]" or
// "[Not Supported]" are left nil; rows with an unparseable index are skipped.
func Parse(out string) (report.GPUs, error) {
	r := csv.NewReader(strings.NewReader(out))
	r.FieldsPerRecord = len(QueryFields)
	r.TrimLeadingSpace = true

	gpus := report.GPUs{}
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if stderrors.As(err, &perr) && stderrors.Is(perr.Err, csv.ErrFieldCount) {
				slog.Warn("skipping nvidia-smi row", "error", err)
				continue
			}
			return nil, errors.Wrap(errors.ErrCodeMalformedEntry, "invalid nvidia-smi output", err)
		}

		idx, err := strconv.Atoi(strings.TrimSpace(rec[0]))
		if err != nil {
			slog.Warn("skipping nvidia-smi row without index", "row", rec)
			continue
		}

		gpus = append(gpus, report.GPU{
			Index:       idx,
			Name:        strings.TrimSpace(rec[1]),
			UUID:        strings.TrimSpace(rec[2]),
			Temperature: reading(rec[3]),
			Utilization: reading(rec[4]),
			MemoryUsed:  reading(rec[5]),
			MemoryTotal: reading(rec[6]),
			PowerDraw:   reading(rec[7]),
		})
	}
	return gpus, nil
}

func reading(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "[") {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

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

// Package network reports traffic rates sampled by vnstat and the host's
// primary address.
package network

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/farmview/farmview/pkg/command"
	"github.com/farmview/farmview/pkg/errors"
	"github.com/farmview/farmview/pkg/report"
)

// Collector runs `vnstat -tr` and `hostname -I`.
type Collector struct {
	Runner command.Runner

	// Interface selects the vnstat interface; empty uses vnstat's default.
	Interface string
}

// Collect returns a *report.Network. Rates and address are independent:
// the section fails only when none of them could be read.
func (c *Collector) Collect(ctx context.Context) (any, error) {
	var n report.Network

	args := []string{"-tr"}
	if c.Interface != "" {
		args = append(args, "-i", c.Interface)
	}

	out, err := c.Runner.Run(ctx, "vnstat", args...)
	if err != nil {
		slog.Warn("traffic sample unavailable", "error", err)
	} else {
		n.RX, n.TX = ParseRates(out)
	}

	out, err = c.Runner.Run(ctx, "hostname", "-I")
	if err != nil {
		slog.Warn("host address unavailable", "error", err)
	} else if fields := strings.Fields(out); len(fields) > 0 {
		n.IP = &fields[0]
	}

	if n.RX == nil && n.TX == nil && n.IP == nil {
		return nil, errors.New(errors.ErrCodeSourceUnavailable, "no network data available")
	}
	return &n, nil
}

// ParseRates reads the rx and tx lines of `vnstat -tr` and converts them
// to kB/s:
//
//	rx         1.20 kbit/s             2 packets/s
//	tx        38.94 Mbit/s          3284 packets/s
func ParseRates(out string) (rx, tx *float64) {
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 3 {
			continue
		}

		var dst **float64
		switch fields[0] {
		case "rx":
			dst = &rx
		case "tx":
			dst = &tx
		default:
			continue
		}

		v, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			slog.Debug("skipping vnstat line", "line", line, "error", err)
			continue
		}
		factor, ok := unitFactors[fields[2]]
		if !ok {
			slog.Debug("unknown vnstat unit", "unit", fields[2])
			continue
		}
		kbs := v * factor
		*dst = &kbs
	}
	return rx, tx
}

// unitFactors convert a vnstat rate unit to kB/s (1 kB = 1000 bytes).
var unitFactors = map[string]float64{
	"bit/s":  1.0 / 8000,
	"kbit/s": 1.0 / 8,
	"Mbit/s": 1000.0 / 8,
	"Gbit/s": 1000000.0 / 8,
	"B/s":    1.0 / 1000,
	"kB/s":   1,
	"MB/s":   1000,
	"GB/s":   1000000,
	"KiB/s":  1.024,
	"MiB/s":  1048.576,
	"GiB/s":  1073741.824,
}

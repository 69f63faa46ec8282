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

package smart

import (
	"context"
	stderrors "errors"
	"log/slog"
	"regexp"
	"sync"

	"golang.org/x/time/rate"

	"github.com/farmview/farmview/pkg/command"
	"github.com/farmview/farmview/pkg/defaults"
	"github.com/farmview/farmview/pkg/disk"
	"github.com/farmview/farmview/pkg/errors"
	"github.com/farmview/farmview/pkg/version"
)

// MinJSONVersion is the first smartctl release with stable -j output.
var MinJSONVersion = version.NewVersion(7, 0, 0)

const versionTimeout = defaults.CommandTimeout

// fatalExitBits are the smartctl exit status bits that mean no usable
// output was produced: command line parse error and device open failure.
// The remaining bits report disk health and come with normal output.
const fatalExitBits = 0x03

var (
	nvmeName   = regexp.MustCompile(`^(nvme\d+n\d+)(?:p\d+)?$`)
	mmcName    = regexp.MustCompile(`^(mmcblk\d+)(?:p\d+)?$`)
	legacyName = regexp.MustCompile(`^((?:s|h|v|xv)d[a-z]+)\d*$`)
)

// PhysicalDiskID maps a partition id to its physical disk id: "sda1" to
// "sda", "nvme0n1p2" to "nvme0n1". Ids that follow no known convention are
// returned unchanged.
func PhysicalDiskID(id string) string {
	for _, re := range []*regexp.Regexp{nvmeName, mmcName, legacyName} {
		if m := re.FindStringSubmatch(id); m != nil {
			return m[1]
		}
	}
	return id
}

// Source is a disk.MetadataSource backed by smartctl.
type Source struct {
	runner  command.Runner
	limiter *rate.Limiter
	devDir  string

	modeOnce sync.Once
	json     bool
	forced   *bool
}

// Option is a functional option for configuring Source instances.
type Option func(*Source)

// WithRunner sets the command runner.
func WithRunner(r command.Runner) Option {
	return func(s *Source) {
		s.runner = r
	}
}

// WithRateLimit limits smartctl invocations per second across all lookups.
// Zero or negative disables the limit.
func WithRateLimit(perSecond float64) Option {
	return func(s *Source) {
		if perSecond <= 0 {
			s.limiter = nil
			return
		}
		s.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
}

// WithJSON forces JSON (true) or text (false) output instead of detecting
// it from the smartctl version.
func WithJSON(enabled bool) Option {
	return func(s *Source) {
		s.forced = &enabled
	}
}

// New creates a smartctl metadata source.
func New(opts ...Option) *Source {
	s := &Source{
		runner: command.NewExecRunner(0),
		devDir: "/dev",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Lookup implements disk.MetadataSource. The model and the attributes are
// read by separate smartctl calls; either may be absent.
func (s *Source) Lookup(ctx context.Context, deviceID string) disk.Metadata {
	diskID := PhysicalDiskID(deviceID)
	path := s.devDir + "/" + diskID
	useJSON := s.useJSON(ctx)

	var md disk.Metadata

	if out, err := s.smartctl(ctx, useJSON, "-i", path); err != nil {
		logLookupFailure(diskID, "model", err)
	} else if model, ok := parseModel(out, useJSON); ok {
		md.Model = &model
	}

	if out, err := s.smartctl(ctx, useJSON, "-A", path); err != nil {
		logLookupFailure(diskID, "attrs", err)
	} else if attrs := parseAttrs(out, useJSON); len(attrs) > 0 {
		md.Attrs = attrs
	}

	return md
}

// useJSON detects the output mode once for the lifetime of the source. The
// version query ignores the caller's cancellation and has its own deadline.
func (s *Source) useJSON(ctx context.Context) bool {
	s.modeOnce.Do(func() {
		if s.forced != nil {
			s.json = *s.forced
			return
		}
		vctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), versionTimeout)
		defer cancel()
		out, err := s.runner.Run(vctx, "smartctl", "--version")
		if err != nil {
			slog.Debug("smartctl version unavailable, using text output", "error", err)
			return
		}
		v, err := version.FromBanner(out, "smartctl")
		if err != nil {
			slog.Debug("smartctl version unparseable, using text output", "error", err)
			return
		}
		s.json = v.EqualsOrNewer(MinJSONVersion)
		slog.Debug("smartctl detected", "version", v.String(), "json", s.json)
	})
	return s.json
}

// smartctl runs one query and tolerates the health exit bits.
func (s *Source) smartctl(ctx context.Context, useJSON bool, args ...string) (string, error) {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return "", errors.Wrap(errors.ErrCodeTimeout, "smartctl rate limit wait aborted", err)
		}
	}

	if useJSON {
		args = append([]string{"-j"}, args...)
	}

	out, err := s.runner.Run(ctx, "smartctl", args...)
	if err == nil {
		return out, nil
	}

	var cerr *command.Error
	if stderrors.As(err, &cerr) && cerr.ExitCode > 0 && cerr.ExitCode&fatalExitBits == 0 && out != "" {
		return out, nil
	}
	return "", errors.Wrap(errors.ErrCodeMetadataLookupFailed, "smartctl query failed", err)
}

func logLookupFailure(diskID, what string, err error) {
	slog.Debug("disk metadata unavailable",
		"disk", diskID,
		"field", what,
		"error", err)
}

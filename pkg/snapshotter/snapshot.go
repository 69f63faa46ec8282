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

package snapshotter

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/farmview/farmview/pkg/collector"
	"github.com/farmview/farmview/pkg/defaults"
	"github.com/farmview/farmview/pkg/errors"
	"github.com/farmview/farmview/pkg/report"
	"github.com/farmview/farmview/pkg/serializer"
)

// HostSnapshotter collects the enabled report sections from the current host
// in parallel, then serializes the report.
type HostSnapshotter struct {
	// Version is the tool version recorded in the report metadata.
	Version string

	// Factory is the collector factory to use. If nil, the default factory is used.
	Factory collector.Factory

	// Serializer is the serializer to use for output. If nil, a default stdout JSON serializer is used.
	Serializer serializer.Serializer

	// Sections lists the sections to collect. If empty, collector.DefaultSections is used.
	Sections []collector.Section

	// CollectorTimeout bounds each section. Disks and network get the longer
	// of this and their own defaults.
	CollectorTimeout time.Duration

	// Locator names the site of the host from its network address. If nil,
	// no location is reported.
	Locator Locator
}

// Locator maps a host address to a location name. An empty ip means the
// address is unknown; an empty result means no location.
type Locator interface {
	Locate(ip string) string
}

// Measure collects a report and serializes it. A failed section is logged
// and left out of the report; only cancellation of ctx or a serialization
// failure is returned as an error.
func (h *HostSnapshotter) Measure(ctx context.Context) error {
	rep, err := h.Collect(ctx)
	if err != nil {
		return err
	}

	if h.Serializer == nil {
		h.Serializer = serializer.NewStdoutWriter(serializer.FormatJSON)
	}

	if err := h.Serializer.Serialize(ctx, rep); err != nil {
		slog.Error("failed to serialize", slog.String("error", err.Error()))
		return fmt.Errorf("failed to serialize: %w", err)
	}
	return nil
}

// Collect runs the enabled section collectors and assembles the report.
func (h *HostSnapshotter) Collect(ctx context.Context) (*report.Report, error) {
	if h.Factory == nil {
		h.Factory = collector.NewDefaultFactory()
	}

	sections := h.Sections
	if len(sections) == 0 {
		sections = collector.DefaultSections()
	}

	slog.Debug("starting host report", "sections", len(sections))

	start := time.Now()
	defer func() {
		reportCollectionDuration.Observe(time.Since(start).Seconds())
	}()

	var mu sync.Mutex
	rep := report.New(h.Version)

	// sections are independent, so a failure never cancels the others
	g := new(errgroup.Group)
	for _, s := range sections {
		g.Go(func() error {
			section, err := h.collectSection(ctx, s)
			if err != nil {
				slog.Warn("section omitted from report",
					slog.String("section", string(s)),
					slog.String("error", err.Error()))
				sectionTotal.WithLabelValues(string(s), "error").Inc()
				return nil
			}

			mu.Lock()
			err = rep.Apply(section)
			mu.Unlock()
			if err != nil {
				slog.Error("unusable section value",
					slog.String("section", string(s)),
					slog.String("error", err.Error()))
				sectionTotal.WithLabelValues(string(s), "error").Inc()
				return nil
			}

			sectionTotal.WithLabelValues(string(s), "success").Inc()
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeTimeout, "report collection canceled", err)
	}

	h.locate(rep)
	resolvedDisks.Set(float64(len(rep.Disks)))

	slog.Debug("host report complete",
		slog.Int("disks", len(rep.Disks)),
		slog.Duration("duration", time.Since(start)))

	return rep, nil
}

// locate runs after every section has been applied, since it depends on the
// network address.
func (h *HostSnapshotter) locate(rep *report.Report) {
	if h.Locator == nil {
		return
	}

	var ip string
	if rep.Network != nil && rep.Network.IP != nil {
		ip = *rep.Network.IP
	}
	if name := h.Locator.Locate(ip); name != "" {
		rep.Location = &name
		slog.Debug("host located", "ip", ip, "location", name)
	}
}

func (h *HostSnapshotter) collectSection(ctx context.Context, s collector.Section) (any, error) {
	sectionStart := time.Now()
	defer func() {
		sectionDuration.WithLabelValues(string(s)).Observe(time.Since(sectionStart).Seconds())
	}()

	c, err := collector.Create(h.Factory, s)
	if err != nil {
		return nil, err
	}

	sctx, cancel := context.WithTimeout(ctx, h.timeout(s))
	defer cancel()

	slog.Debug("collecting section", slog.String("section", string(s)))
	return c.Collect(sctx)
}

func (h *HostSnapshotter) timeout(s collector.Section) time.Duration {
	base := h.CollectorTimeout
	if base <= 0 {
		base = defaults.CollectorTimeout
	}

	switch s {
	case collector.SectionDisks:
		return max(base, defaults.DisksCollectorTimeout)
	case collector.SectionNetwork:
		return max(base, defaults.NetworkSampleTimeout)
	default:
		return base
	}
}

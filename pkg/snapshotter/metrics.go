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
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/farmview/farmview/pkg/disk"
	"github.com/farmview/farmview/pkg/errors"
)

// Registry holds the collection metrics. It is separate from the default
// registry so a textfile export carries no Go runtime metrics.
var Registry = prometheus.NewRegistry()

var (
	reportCollectionDuration = promauto.With(Registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "farmview_report_collection_duration_seconds",
			Help:    "Time taken to collect a complete host report",
			Buckets: []float64{0.5, 1, 5, 10, 30, 60, 120},
		},
	)

	sectionDuration = promauto.With(Registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "farmview_section_duration_seconds",
			Help:    "Time taken by individual section collectors",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30},
		},
		[]string{"section"},
	)

	sectionTotal = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "farmview_section_total",
			Help: "Section collection attempts by outcome",
		},
		[]string{"section", "status"}, // success or error
	)

	resolvedDisks = promauto.With(Registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "farmview_resolved_disks",
			Help: "Number of disk entries in the last collected report",
		},
	)

	metadataLookupTotal = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "farmview_metadata_lookup_total",
			Help: "Disk metadata lookups by outcome",
		},
		[]string{"outcome"},
	)

	metadataLookupDuration = promauto.With(Registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "farmview_metadata_lookup_duration_seconds",
			Help:    "Time taken by a single disk metadata lookup",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5, 10},
		},
	)
)

// ObserveMetadataLookup records a disk metadata lookup. It satisfies
// disk.LookupObserver.
func ObserveMetadataLookup(_ string, outcome disk.LookupOutcome, d time.Duration) {
	metadataLookupTotal.WithLabelValues(string(outcome)).Inc()
	metadataLookupDuration.Observe(d.Seconds())
}

// WriteMetrics writes the registry in the node_exporter textfile format.
func WriteMetrics(path string) error {
	if err := prometheus.WriteToTextfile(path, Registry); err != nil {
		return errors.WrapWithContext(errors.ErrCodeInternal, "failed to write metrics", err,
			map[string]any{"path": path})
	}
	return nil
}

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

// Package snapshotter collects a host report from the current machine.
//
// HostSnapshotter runs the enabled section collectors in parallel, each
// under its own timeout, and applies every section that succeeds to a
// report.Report. A failed section is logged and left out; the disks
// section never fails and is always present.
//
//	s := &snapshotter.HostSnapshotter{
//	    Version:    "v1.0.0",
//	    Factory:    collector.NewDefaultFactory(collector.WithMetadataObserver(snapshotter.ObserveMetadataLookup)),
//	    Serializer: serializer.NewStdoutWriter(serializer.FormatYAML),
//	}
//	if err := s.Measure(ctx); err != nil {
//	    return err
//	}
//
// # Metrics
//
// Collection metrics are registered on Registry:
//   - farmview_report_collection_duration_seconds
//   - farmview_section_duration_seconds{section}
//   - farmview_section_total{section,status}
//   - farmview_resolved_disks
//   - farmview_metadata_lookup_total{outcome}
//   - farmview_metadata_lookup_duration_seconds
//
// WriteMetrics exports them once in the node_exporter textfile format.
package snapshotter

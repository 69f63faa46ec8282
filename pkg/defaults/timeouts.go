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

package defaults

import "time"

// Collector timeouts for data collection operations.
const (
	// CollectorTimeout is the default timeout for a single report section.
	// Collectors should respect parent context deadlines when shorter.
	CollectorTimeout = 10 * time.Second

	// DisksCollectorTimeout bounds the disks section, which runs one
	// metadata lookup per physical disk on top of lsblk and df.
	DisksCollectorTimeout = 30 * time.Second
)

// Command timeouts for external utility invocations.
const (
	// CommandTimeout is the default timeout for one external command.
	CommandTimeout = 5 * time.Second

	// NetworkSampleTimeout covers vnstat -tr, which samples traffic for
	// five seconds before printing.
	NetworkSampleTimeout = 15 * time.Second
)

// Metadata lookup settings for per-disk enrichment.
const (
	// MetadataLookupTimeout is the timeout for one disk's smartctl lookups.
	MetadataLookupTimeout = 8 * time.Second

	// MetadataConcurrency is the maximum number of disks queried at once.
	MetadataConcurrency = 4
)

// CLI timeouts for command-line operations.
const (
	// CLICollectTimeout is the default timeout for a full collection run.
	CLICollectTimeout = 2 * time.Minute
)

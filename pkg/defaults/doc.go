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

// Package defaults provides centralized configuration constants for farmview.
//
// This package defines timeout values, concurrency bounds, and other
// defaults used across the codebase. Centralizing these values ensures
// consistency and makes tuning easier.
//
// # Timeout Categories
//
// Timeouts are organized by component:
//
//   - Collector timeouts: one report section (nproc, uptime, df, ...)
//   - Command timeouts: a single external utility invocation
//   - Metadata timeouts: one per-disk smartctl lookup
//   - CLI timeouts: a whole collection run
//
// # Usage
//
// Import and use constants directly:
//
//	import "github.com/farmview/farmview/pkg/defaults"
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.CollectorTimeout)
//	defer cancel()
//
// # Timeout Guidelines
//
//   - Commands must finish inside the collector timeout that owns them
//   - Metadata lookups are bounded separately so one sleeping disk cannot
//     stall the disks section
//   - The CLI timeout bounds the whole run including serialization
package defaults

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

// Package smart reads disk model and health attributes with smartctl.
//
// Source implements disk.MetadataSource. Each lookup maps the device id to
// its physical disk and runs two independent queries:
//
//	smartctl [-j] -i /dev/<disk>    model
//	smartctl [-j] -A /dev/<disk>    attributes
//
// JSON output is used when `smartctl --version` reports 7.0 or newer;
// older releases are parsed from their text output. smartctl encodes disk
// health in its exit status, so only the command line and device open
// failure bits are treated as errors.
//
// Invocations can be throttled with WithRateLimit to keep a burst of
// lookups from waking every disk at once.
package smart

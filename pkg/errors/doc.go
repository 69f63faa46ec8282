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

// Package errors provides structured error types for better observability
// and programmatic error handling across the collector.
//
// The codes mirror the failure taxonomy of a collection run: whole sources
// that cannot be queried (SOURCE_UNAVAILABLE), per-disk metadata failures
// (METADATA_LOOKUP_FAILED), single unparseable records (MALFORMED_ENTRY) and
// failed external utilities (COMMAND_FAILED). None of them abort a run; they
// are logged and the affected section degrades to absent or empty.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeCommandFailed,
//	    "failed to list block devices",
//	    cause,
//	    map[string]any{
//	        "command": "lsblk",
//	    },
//	)
package errors

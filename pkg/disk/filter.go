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

package disk

import "strings"

// Patterns is a list of wildcard patterns matched against device ids and
// mount points. Supported forms:
//   - "prefix*" matches values starting with "prefix"
//   - "*suffix" matches values ending with "suffix"
//   - "*contains*" matches values containing "contains"
//   - "exact" matches values exactly
//
// A pattern starting with "/dev/" is also matched against the bare device id.
type Patterns []string

// Matches reports whether any pattern matches the entry's device id or mount point.
func (p Patterns) Matches(e ResolvedDiskEntry) bool {
	for _, pattern := range p {
		if pattern == "" {
			continue
		}
		if matchesPattern(e.DeviceID, strings.TrimPrefix(pattern, "/dev/")) {
			return true
		}
		if e.MountPoint != nil && matchesPattern(*e.MountPoint, pattern) {
			return true
		}
	}
	return false
}

// FilterOut returns the entries not matched by any pattern, preserving order.
func (p Patterns) FilterOut(entries []ResolvedDiskEntry) []ResolvedDiskEntry {
	if len(p) == 0 {
		return entries
	}
	kept := make([]ResolvedDiskEntry, 0, len(entries))
	for _, e := range entries {
		if !p.Matches(e) {
			kept = append(kept, e)
		}
	}
	return kept
}

// matchesPattern checks if a key matches a wildcard pattern.
// Supports multiple wildcard segments, e.g., "nvme*n1p*" matches "nvme0n1p2".
func matchesPattern(key, pattern string) bool {
	if !strings.Contains(pattern, "*") {
		return key == pattern
	}

	segments := strings.Split(pattern, "*")

	pos := 0
	for i, segment := range segments {
		if segment == "" {
			continue
		}

		// anchored at the start
		if i == 0 {
			if !strings.HasPrefix(key, segment) {
				return false
			}
			pos = len(segment)
			continue
		}

		// anchored at the end
		if i == len(segments)-1 {
			return len(key)-pos >= len(segment) && strings.HasSuffix(key[pos:], segment)
		}

		idx := strings.Index(key[pos:], segment)
		if idx == -1 {
			return false
		}
		pos += idx + len(segment)
	}

	return true
}

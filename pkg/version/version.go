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

// Package version parses the version numbers printed by external utilities
// so collectors can pick output modes the installed tool supports.
package version

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Error types for version parsing failures
var (
	ErrEmptyVersion      = errors.New("version string is empty")
	ErrTooManyComponents = errors.New("version has more than 3 components")
	ErrNonNumeric        = errors.New("version component is not numeric")
	ErrNoVersionInBanner = errors.New("no version found in banner")
)

// Version is a numeric version with one to three significant components.
// Extras keeps any suffix after the numeric part ("-rc1", "+git").
type Version struct {
	Major     int    `json:"major" yaml:"major"`
	Minor     int    `json:"minor,omitempty" yaml:"minor,omitempty"`
	Patch     int    `json:"patch,omitempty" yaml:"patch,omitempty"`
	Precision int    `json:"precision" yaml:"precision"`
	Extras    string `json:"extras,omitempty" yaml:"extras,omitempty"`
}

// NewVersion creates a Version with all three components significant.
func NewVersion(major, minor, patch int) Version {
	return Version{Major: major, Minor: minor, Patch: patch, Precision: 3}
}

// String returns the version respecting its precision. Extras are not included.
func (v Version) String() string {
	switch v.Precision {
	case 1:
		return fmt.Sprintf("%d", v.Major)
	case 2:
		return fmt.Sprintf("%d.%d", v.Major, v.Minor)
	default:
		return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	}
}

// ParseVersion parses "1", "1.2", "1.2.3", with optional "v" prefix and a
// "-suffix" or "+suffix" kept in Extras.
func ParseVersion(s string) (Version, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Version{}, ErrEmptyVersion
	}
	s = strings.TrimPrefix(s, "v")

	var v Version
	mainPart := s
	if i := strings.IndexAny(s, "-+"); i > 0 {
		mainPart = s[:i]
		v.Extras = s[i:]
	}

	parts := strings.Split(mainPart, ".")
	if len(parts) > 3 {
		return Version{}, ErrTooManyComponents
	}

	for i, part := range parts {
		num, err := strconv.Atoi(part)
		if err != nil || num < 0 {
			return Version{}, fmt.Errorf("%w: %q", ErrNonNumeric, part)
		}
		switch i {
		case 0:
			v.Major = num
		case 1:
			v.Minor = num
		case 2:
			v.Patch = num
		}
	}

	v.Precision = len(parts)
	return v, nil
}

// MustParseVersion parses a version string and panics if parsing fails.
// Only use this for hardcoded strings or in tests.
func MustParseVersion(s string) Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(fmt.Sprintf("MustParseVersion: %v", err))
	}
	return v
}

var bannerVersion = regexp.MustCompile(`(?i)\b(?:version\s+)?v?(\d+(?:\.\d+){0,2})\b`)

// FromBanner extracts the first version number following the tool name in
// the first line of a --version banner, e.g.
//
//	smartctl 7.3 2022-02-28 r5338 [x86_64-linux-6.1.0] (local build)
//	vnStat 2.10 by Teemu Toivola <tst at iki dot fi>
//	ipmitool version 1.8.19
func FromBanner(banner, tool string) (Version, error) {
	line := strings.TrimSpace(strings.SplitN(banner, "\n", 2)[0])
	if idx := strings.Index(strings.ToLower(line), strings.ToLower(tool)); idx >= 0 {
		line = line[idx+len(tool):]
	}
	m := bannerVersion.FindStringSubmatch(line)
	if m == nil {
		return Version{}, fmt.Errorf("%w: %q", ErrNoVersionInBanner, line)
	}
	return ParseVersion(m[1])
}

// EqualsOrNewer returns true if v is equal to or newer than other,
// comparing up to the precision of v.
func (v Version) EqualsOrNewer(other Version) bool {
	return v.Compare(other) >= 0
}

// Compare returns -1, 0 or 1, comparing only the components significant in
// both versions.
func (v Version) Compare(other Version) int {
	precision := v.Precision
	if other.Precision < precision {
		precision = other.Precision
	}

	pairs := [][2]int{{v.Major, other.Major}, {v.Minor, other.Minor}, {v.Patch, other.Patch}}
	for i := 0; i < precision && i < len(pairs); i++ {
		switch {
		case pairs[i][0] < pairs[i][1]:
			return -1
		case pairs[i][0] > pairs[i][1]:
			return 1
		}
	}
	return 0
}

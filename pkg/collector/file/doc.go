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

// Package file parses line-oriented text such as /proc/meminfo,
// /etc/os-release and key/value command output.
//
// A Parser is configured with functional options and can read a file
// (GetLines, GetMap) or parse text already in memory (ParseLines, ParseMap):
//
//	p := file.NewParser(
//	    file.WithKVDelimiter(":"),
//	    file.WithVTrimSuffix("kB"),
//	)
//	info, err := p.GetMap("/proc/meminfo")
//	// info["MemTotal"] == "16318684"
//
// Read failures are returned as *errors.StructuredError with code
// SOURCE_UNAVAILABLE; oversized or non UTF-8 files as MALFORMED_ENTRY.
package file

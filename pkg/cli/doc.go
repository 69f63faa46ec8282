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

// Package cli implements the farmview command line.
//
// # Commands
//
// collect - Collect a host report:
//
//	farmview collect [--sections cpu,memory,disks] [--output report.json] [--format table]
//
// render - Re-render a saved report:
//
//	farmview render --input report.cbor.zst [--format yaml]
//
// version - Print version information.
//
// # Global Flags
//
//	--config, -c   Config file (default: $HOME/.config/farmview/config.yaml, then /etc/farmview/config.yaml)
//	--log-level    Log level: debug, info, warn, error (default: info)
//
// Every collect flag also reads a FARMVIEW_* environment variable, and
// explicitly set flags override config file values.
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/farmview/farmview/pkg/cli.version=1.0.0'"
package cli

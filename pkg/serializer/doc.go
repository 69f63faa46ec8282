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

// Package serializer writes and reads host reports.
//
// Output formats:
//   - json: indented JSON, the default
//   - yaml: human-readable YAML
//   - cbor: compact binary using core deterministic encoding
//   - table: flattened key/value rows, byte sizes in human units
//
// Usage:
//
//	writer := serializer.NewFileWriterOrStdout(serializer.FormatJSON, path)
//	defer writer.Close() // Important: close to flush compressed output
//	if err := writer.Serialize(ctx, rep); err != nil {
//		return err
//	}
//
// Paths ending in .zst are zstd-compressed on write and decompressed on
// read. FormatFromPath looks beneath the .zst suffix, so report.cbor.zst is
// read back as CBOR:
//
//	rep, err := serializer.FromFile[report.Report]("report.cbor.zst")
package serializer

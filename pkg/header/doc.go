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

// Package header provides the common header embedded in farmview documents.
//
// The Header follows the Kind/APIVersion/Metadata convention so saved
// reports are self-describing:
//
//	{
//	  "kind": "HostReport",
//	  "apiVersion": "farmview.io/v1",
//	  "metadata": {
//	    "id": "0b6f5c0e-5a43-4f5d-9d0b-2c8a1a9d5e11",
//	    "source-host": "node-7",
//	    "timestamp": "2026-10-17T10:30:00Z",
//	    "version": "v0.4.0"
//	  }
//	}
//
// Init stamps a header with the collection time, a random document id and
// the collecting host name. Functional options build headers for tests:
//
//	h := header.New(
//	    header.WithKind(header.KindHostReport),
//	    header.WithAPIVersion("farmview.io/v1"),
//	    header.WithMetadata("version", "v0.4.0"),
//	)
package header

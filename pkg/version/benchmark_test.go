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

package version

import (
	"testing"
)

func BenchmarkParseVersion(b *testing.B) {
	tests := []string{"7", "v2.10", "1.8.19", "7.4-rc1"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = ParseVersion(tests[i%len(tests)])
	}
}

func BenchmarkFromBanner(b *testing.B) {
	banner := "smartctl 7.3 2022-02-28 r5338 [x86_64-linux-6.1.0-13-amd64] (local build)"
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = FromBanner(banner, "smartctl")
	}
}

func BenchmarkEqualsOrNewer(b *testing.B) {
	v1 := MustParseVersion("7.3")
	v2 := NewVersion(7, 0, 0)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = v1.EqualsOrNewer(v2)
	}
}

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

func FuzzParseVersion(f *testing.F) {
	for _, seed := range []string{"1", "v1.2", "1.2.3", "7.4-rc1", "", "a.b", "1.2.3.4", "-1"} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, s string) {
		v, err := ParseVersion(s)
		if err != nil {
			return
		}
		if v.Precision < 1 || v.Precision > 3 {
			t.Errorf("ParseVersion(%q) precision out of range: %d", s, v.Precision)
		}
		reparsed, err := ParseVersion(v.String())
		if err != nil {
			t.Errorf("String() of %q not parseable: %v", s, err)
			return
		}
		if reparsed.Compare(v) != 0 {
			t.Errorf("round trip mismatch for %q: %v vs %v", s, reparsed, v)
		}
	})
}

func FuzzFromBanner(f *testing.F) {
	f.Add("smartctl 7.3 2022-02-28 r5338", "smartctl")
	f.Add("ipmitool version 1.8.19", "ipmitool")
	f.Add("", "vnstat")

	f.Fuzz(func(t *testing.T, banner, tool string) {
		// must never panic
		_, _ = FromBanner(banner, tool)
	})
}

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

package defaults

import (
	"testing"
	"time"
)

func TestTimeoutConstants(t *testing.T) {
	tests := []struct {
		name     string
		timeout  time.Duration
		minValue time.Duration
		maxValue time.Duration
	}{
		{"CollectorTimeout", CollectorTimeout, 5 * time.Second, 30 * time.Second},
		{"DisksCollectorTimeout", DisksCollectorTimeout, 10 * time.Second, 60 * time.Second},
		{"CommandTimeout", CommandTimeout, 1 * time.Second, 15 * time.Second},
		{"NetworkSampleTimeout", NetworkSampleTimeout, 6 * time.Second, 30 * time.Second},
		{"MetadataLookupTimeout", MetadataLookupTimeout, 2 * time.Second, 30 * time.Second},
		{"CLICollectTimeout", CLICollectTimeout, 30 * time.Second, 10 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.timeout < tt.minValue {
				t.Errorf("%s (%v) is below minimum expected value (%v)", tt.name, tt.timeout, tt.minValue)
			}
			if tt.timeout > tt.maxValue {
				t.Errorf("%s (%v) is above maximum expected value (%v)", tt.name, tt.timeout, tt.maxValue)
			}
		})
	}
}

func TestCommandTimeoutFitsCollector(t *testing.T) {
	if CommandTimeout >= CollectorTimeout {
		t.Errorf("CommandTimeout (%v) should be less than CollectorTimeout (%v)",
			CommandTimeout, CollectorTimeout)
	}
}

func TestMetadataTimeoutFitsDisksCollector(t *testing.T) {
	if MetadataLookupTimeout >= DisksCollectorTimeout {
		t.Errorf("MetadataLookupTimeout (%v) should be less than DisksCollectorTimeout (%v)",
			MetadataLookupTimeout, DisksCollectorTimeout)
	}
}

func TestCollectorTimeoutsFitCLI(t *testing.T) {
	for name, d := range map[string]time.Duration{
		"CollectorTimeout":      CollectorTimeout,
		"DisksCollectorTimeout": DisksCollectorTimeout,
		"NetworkSampleTimeout":  NetworkSampleTimeout,
	} {
		if d >= CLICollectTimeout {
			t.Errorf("%s (%v) should be less than CLICollectTimeout (%v)", name, d, CLICollectTimeout)
		}
	}
}

func TestMetadataConcurrency(t *testing.T) {
	if MetadataConcurrency < 1 {
		t.Errorf("MetadataConcurrency must be positive, got %d", MetadataConcurrency)
	}
}

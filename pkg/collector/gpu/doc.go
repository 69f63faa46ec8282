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

// Package gpu reports NVIDIA GPU temperature, utilization, memory and power.
//
// The collector uses nvidia-smi's query mode, which prints one CSV row per
// GPU without units:
//
//	nvidia-smi --query-gpu=index,name,uuid,temperature.gpu,utilization.gpu,memory.used,memory.total,power.draw --format=csv,noheader,nounits
//	0, NVIDIA A100-SXM4-80GB, GPU-5f3c..., 34, 0, 4, 81920, 61.38
//
// Memory is in MiB and power in watts. Readings a GPU does not support are
// printed as [N/A] and reported as absent. When nvidia-smi is not installed
// the collector reports an empty list rather than failing.
package gpu

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

package command

import (
	"context"
	"os/exec"
	"strings"
	"sync"
)

// Response is a canned result for StaticRunner.
type Response struct {
	Output   string
	ExitCode int
	Err      error
}

// StaticRunner returns canned responses keyed by the full command line
// ("name arg1 arg2"). Unknown commands fail as if the executable were
// missing. It is safe for concurrent use and records every call.
type StaticRunner struct {
	Responses map[string]Response

	mu    sync.Mutex
	calls []string
}

// NewStaticRunner creates a StaticRunner that answers every listed command
// line with the given stdout and a zero exit status.
func NewStaticRunner(outputs map[string]string) *StaticRunner {
	r := &StaticRunner{Responses: make(map[string]Response, len(outputs))}
	for k, v := range outputs {
		r.Responses[k] = Response{Output: v}
	}
	return r
}

// Run implements Runner.
func (r *StaticRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	key := strings.TrimSpace(name + " " + strings.Join(args, " "))

	r.mu.Lock()
	r.calls = append(r.calls, key)
	r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", &Error{Name: name, Args: args, ExitCode: -1, Err: err}
	}

	resp, ok := r.Responses[key]
	if !ok {
		return "", &Error{Name: name, Args: args, ExitCode: -1, Err: exec.ErrNotFound}
	}
	if resp.Err != nil {
		return resp.Output, &Error{Name: name, Args: args, ExitCode: -1, Output: resp.Output, Err: resp.Err}
	}
	if resp.ExitCode != 0 {
		return resp.Output, &Error{Name: name, Args: args, ExitCode: resp.ExitCode, Output: resp.Output}
	}
	return resp.Output, nil
}

// Calls returns the command lines run so far, in order.
func (r *StaticRunner) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

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

// Package command runs external OS utilities and returns their captured
// standard output.
package command

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/farmview/farmview/pkg/defaults"
)

// Runner executes a command and returns its standard output as text.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (string, error)
}

// Error is returned when a command exits non-zero or cannot be started.
// Output holds whatever stdout was captured before the failure; some tools
// (smartctl) report useful data together with a non-zero exit status.
type Error struct {
	Name     string
	Args     []string
	ExitCode int
	Stderr   string
	Output   string
	Err      error
}

// Error implements the error interface.
func (e *Error) Error() string {
	cmd := strings.TrimSpace(e.Name + " " + strings.Join(e.Args, " "))
	if e.ExitCode >= 0 {
		if e.Stderr != "" {
			return fmt.Sprintf("command %q exited with status %d: %s", cmd, e.ExitCode, e.Stderr)
		}
		return fmt.Sprintf("command %q exited with status %d", cmd, e.ExitCode)
	}
	return fmt.Sprintf("command %q failed: %v", cmd, e.Err)
}

// Unwrap returns the underlying exec error.
func (e *Error) Unwrap() error {
	return e.Err
}

// NotFound reports whether the executable could not be located.
func (e *Error) NotFound() bool {
	return errors.Is(e.Err, exec.ErrNotFound)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct {
	// Timeout bounds each invocation. Zero uses defaults.CommandTimeout.
	Timeout time.Duration

	// Env, if set, replaces the child environment. LC_ALL=C is always
	// appended so numeric output does not depend on the host locale.
	Env []string
}

// NewExecRunner creates a runner with the given per-command timeout.
func NewExecRunner(timeout time.Duration) *ExecRunner {
	return &ExecRunner{Timeout: timeout}
}

// Run executes name with args and returns its standard output.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = defaults.CommandTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.Env = append(r.environ(), "LC_ALL=C")

	start := time.Now()
	err := cmd.Run()
	slog.Debug("command finished",
		slog.String("command", name),
		slog.Any("args", args),
		slog.Duration("duration", time.Since(start)),
		slog.Bool("ok", err == nil),
	)

	if err == nil {
		return stdout.String(), nil
	}

	cerr := &Error{
		Name:     name,
		Args:     args,
		ExitCode: -1,
		Stderr:   strings.TrimSpace(stderr.String()),
		Output:   stdout.String(),
		Err:      err,
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		cerr.ExitCode = exitErr.ExitCode()
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		cerr.Err = errors.Join(err, ctxErr)
	}

	return stdout.String(), cerr
}

func (r *ExecRunner) environ() []string {
	if r.Env != nil {
		return append([]string(nil), r.Env...)
	}
	return os.Environ()
}

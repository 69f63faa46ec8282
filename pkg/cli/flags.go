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

package cli

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/farmview/farmview/pkg/serializer"
)

func outputFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output file path, .zst suffix compresses (default: stdout)",
		Sources: cli.EnvVars("FARMVIEW_OUTPUT"),
	}
}

func formatFlag(value string) *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Usage: fmt.Sprintf("output format (%s); default inferred from --output, else json",
			strings.Join(serializer.SupportedFormats(), ", ")),
		Value:   value,
		Sources: cli.EnvVars("FARMVIEW_FORMAT"),
	}
}

// parseOutputFormat returns the --format value, inferring it from --output
// when unset.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	value := strings.ToLower(strings.TrimSpace(cmd.String("format")))
	if value == "" {
		if out := cmd.String("output"); out != "" {
			return serializer.FormatFromPath(out), nil
		}
		return serializer.FormatJSON, nil
	}

	format := serializer.Format(value)
	if format.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q", value)
	}
	return format, nil
}

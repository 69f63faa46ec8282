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
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/farmview/farmview/pkg/report"
	"github.com/farmview/farmview/pkg/serializer"
)

func renderCmd() *cli.Command {
	return &cli.Command{
		Name:  "render",
		Usage: "Re-render a saved host report in another format",
		Description: `Read a report written by collect (json, yaml or cbor, optionally .zst
compressed) and write it again, by default as a table.

  farmview render --input report.cbor.zst
  farmview render -i report.json --format yaml --output report.yaml`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "input",
				Aliases:  []string{"i"},
				Usage:    "saved report path; format from the extension",
				Required: true,
			},
			outputFlag(),
			formatFlag(string(serializer.FormatTable)),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			rep, err := serializer.FromFile[report.Report](cmd.String("input"))
			if err != nil {
				return fmt.Errorf("failed to load report: %w", err)
			}

			writer := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			defer func() {
				if cerr := writer.Close(); cerr != nil {
					slog.Warn("failed to close output", "error", cerr)
				}
			}()

			return writer.Serialize(ctx, rep)
		},
	}
}

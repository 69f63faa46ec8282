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

package smart

import (
	"bufio"
	"bytes"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/farmview/farmview/pkg/disk"
)

func parseModel(out string, useJSON bool) (string, bool) {
	if useJSON {
		return parseModelJSON([]byte(out))
	}
	return parseModelText(out)
}

func parseAttrs(out string, useJSON bool) map[string]disk.Attr {
	if useJSON {
		return parseAttrsJSON([]byte(out))
	}
	return parseAttrsText(out)
}

type infoJSON struct {
	ModelName     string `json:"model_name"`
	SCSIModelName string `json:"scsi_model_name"`
	SCSIProduct   string `json:"scsi_product"`
}

func parseModelJSON(data []byte) (string, bool) {
	var info infoJSON
	if err := json.Unmarshal(data, &info); err != nil {
		return "", false
	}
	for _, m := range []string{info.ModelName, info.SCSIModelName, info.SCSIProduct} {
		if m = strings.TrimSpace(m); m != "" {
			return m, true
		}
	}
	return "", false
}

var modelLine = regexp.MustCompile(`(?m)^(Device Model|Model Number|Product):\s+(.+?)\s*$`)

// parseModelText prefers "Device Model" (ATA) over "Model Number" (NVMe)
// over "Product" (SCSI).
func parseModelText(out string) (string, bool) {
	found := make(map[string]string)
	for _, m := range modelLine.FindAllStringSubmatch(out, -1) {
		if _, ok := found[m[1]]; !ok {
			found[m[1]] = m[2]
		}
	}
	for _, key := range []string{"Device Model", "Model Number", "Product"} {
		if v := found[key]; v != "" {
			return v, true
		}
	}
	return "", false
}

type attrsJSON struct {
	ATA struct {
		Table []struct {
			Name  string `json:"name"`
			Value int64  `json:"value"`
			Raw   struct {
				Value  int64  `json:"value"`
				String string `json:"string"`
			} `json:"raw"`
		} `json:"table"`
	} `json:"ata_smart_attributes"`
	NVMe        map[string]json.RawMessage `json:"nvme_smart_health_information_log"`
	Temperature *struct {
		Current *int64 `json:"current"`
	} `json:"temperature"`
}

func parseAttrsJSON(data []byte) map[string]disk.Attr {
	var a attrsJSON
	if err := json.Unmarshal(data, &a); err != nil {
		return nil
	}

	attrs := make(map[string]disk.Attr)
	for _, row := range a.ATA.Table {
		if row.Name == "" {
			continue
		}
		raw := row.Raw.String
		if raw == "" {
			raw = strconv.FormatInt(row.Raw.Value, 10)
		}
		attrs[row.Name] = disk.Attr{Value: strconv.FormatInt(row.Value, 10), Raw: raw}
	}

	for name, msg := range a.NVMe {
		// arrays such as temperature_sensors are not single readings
		if v, ok := scalar(msg); ok {
			attrs[name] = disk.Attr{Value: v, Raw: v}
		}
	}

	if len(attrs) == 0 && a.Temperature != nil && a.Temperature.Current != nil {
		v := strconv.FormatInt(*a.Temperature.Current, 10)
		attrs["temperature"] = disk.Attr{Value: v, Raw: v}
	}

	if len(attrs) == 0 {
		return nil
	}
	return attrs
}

func scalar(msg json.RawMessage) (string, bool) {
	dec := json.NewDecoder(bytes.NewReader(msg))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return "", false
	}
	switch t := v.(type) {
	case json.Number:
		return t.String(), true
	case string:
		return t, true
	case bool:
		return strconv.FormatBool(t), true
	default:
		return "", false
	}
}

// parseAttrsText reads the ATA attribute table
//
//	ID# ATTRIBUTE_NAME          FLAG     VALUE WORST THRESH TYPE      UPDATED  WHEN_FAILED RAW_VALUE
//	  9 Power_On_Hours          0x0032   091   091   000    Old_age   Always       -       40226
//
// or the NVMe health log ("Temperature:   35 Celsius").
func parseAttrsText(out string) map[string]disk.Attr {
	attrs := make(map[string]disk.Attr)

	const (
		none = iota
		ata
		nvme
	)
	section := none

	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(trimmed, "ID#"):
			section = ata
			continue
		case strings.HasPrefix(trimmed, "SMART/Health Information"):
			section = nvme
			continue
		case trimmed == "":
			if section == ata {
				section = none
			}
			continue
		}

		switch section {
		case ata:
			fields := strings.Fields(trimmed)
			if len(fields) < 10 {
				continue
			}
			if _, err := strconv.Atoi(fields[0]); err != nil {
				continue
			}
			attrs[fields[1]] = disk.Attr{Value: fields[3], Raw: strings.Join(fields[9:], " ")}
		case nvme:
			name, value, ok := strings.Cut(trimmed, ":")
			if !ok {
				continue
			}
			value = strings.TrimSpace(value)
			if name == "" || value == "" {
				continue
			}
			attrs[strings.TrimSpace(name)] = disk.Attr{Value: value, Raw: value}
		}
	}

	if len(attrs) == 0 {
		return nil
	}
	return attrs
}

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

// Package location maps a host address to a named site.
package location

import (
	"net/netip"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/farmview/farmview/pkg/errors"
)

// Location names a site and the address ranges that belong to it.
type Location struct {
	Name string   `yaml:"name"`
	IPs  Prefixes `yaml:"ips"`
}

// Prefixes is a list of address ranges. In YAML it is either a single
// string or a sequence; each item is CIDR notation or a bare address,
// which matches only itself.
type Prefixes []netip.Prefix

// UnmarshalYAML accepts a scalar or a sequence of scalars.
func (p *Prefixes) UnmarshalYAML(node *yaml.Node) error {
	var raw []string
	if node.Kind == yaml.ScalarNode {
		raw = []string{node.Value}
	} else if err := node.Decode(&raw); err != nil {
		return err
	}

	out := make(Prefixes, 0, len(raw))
	for _, s := range raw {
		prefix, err := ParsePrefix(s)
		if err != nil {
			return err
		}
		out = append(out, prefix)
	}
	*p = out
	return nil
}

// MarshalYAML writes the prefixes as strings.
func (p Prefixes) MarshalYAML() (any, error) {
	out := make([]string, len(p))
	for i, prefix := range p {
		out[i] = prefix.String()
	}
	return out, nil
}

// ParsePrefix parses CIDR notation or a bare address.
func ParsePrefix(s string) (netip.Prefix, error) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, "/") {
		prefix, err := netip.ParsePrefix(s)
		if err != nil {
			return netip.Prefix{}, errors.WrapWithContext(errors.ErrCodeInvalidRequest,
				"invalid address range", err, map[string]any{"ips": s})
		}
		return prefix.Masked(), nil
	}

	addr, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Prefix{}, errors.WrapWithContext(errors.ErrCodeInvalidRequest,
			"invalid address range", err, map[string]any{"ips": s})
	}
	addr = addr.Unmap()
	return netip.PrefixFrom(addr, addr.BitLen()), nil
}

// Table resolves addresses against an ordered list of locations.
type Table struct {
	Locations []Location
	// Fallback is returned when no location matches.
	Fallback string
}

// Locate returns the name of the first location with a range containing
// ip, or the fallback. An empty or unparseable ip yields the fallback.
func (t *Table) Locate(ip string) string {
	if t == nil {
		return ""
	}

	addr, err := netip.ParseAddr(strings.TrimSpace(ip))
	if err != nil {
		return t.Fallback
	}
	addr = addr.Unmap()

	for _, loc := range t.Locations {
		for _, prefix := range loc.IPs {
			if prefix.Contains(addr) {
				return loc.Name
			}
		}
	}
	return t.Fallback
}

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

package file

import (
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/farmview/farmview/pkg/errors"
)

// Option configures a Parser.
type Option func(*Parser)

// Parser splits procfs-style files and command output into lines or
// key/value maps.
type Parser struct {
	delimiter       string
	maxSize         int
	skipComments    bool
	kvDelimiter     string
	vTrimChars      string
	vTrimSuffix     string
	skipEmptyValues bool
}

// WithDelimiter sets the entry delimiter. Default is newline.
func WithDelimiter(delim string) Option {
	return func(p *Parser) {
		p.delimiter = delim
	}
}

// WithMaxSize sets the maximum input size in bytes. Default is 1MB.
func WithMaxSize(size int) Option {
	return func(p *Parser) {
		p.maxSize = size
	}
}

// WithSkipComments sets whether lines starting with "#" are dropped.
// Default is true.
func WithSkipComments(skip bool) Option {
	return func(p *Parser) {
		p.skipComments = skip
	}
}

// WithKVDelimiter sets the key/value delimiter. Default is "=".
func WithKVDelimiter(kvDelim string) Option {
	return func(p *Parser) {
		p.kvDelimiter = kvDelim
	}
}

// WithVTrimChars sets characters trimmed from both ends of values, e.g. quotes.
func WithVTrimChars(trimChars string) Option {
	return func(p *Parser) {
		p.vTrimChars = trimChars
	}
}

// WithVTrimSuffix sets a unit suffix removed from values, e.g. " kB".
func WithVTrimSuffix(suffix string) Option {
	return func(p *Parser) {
		p.vTrimSuffix = suffix
	}
}

// WithSkipEmptyValues drops keys without a value. Default is false.
func WithSkipEmptyValues(skip bool) Option {
	return func(p *Parser) {
		p.skipEmptyValues = skip
	}
}

// NewParser creates a parser with the provided options.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		delimiter:    "\n",
		maxSize:      1 << 20,
		skipComments: true,
		kvDelimiter:  "=",
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// GetMap reads the file at path and parses it with ParseMap.
func (p *Parser) GetMap(path string) (map[string]string, error) {
	content, err := p.read(path)
	if err != nil {
		return nil, err
	}
	return p.ParseMap(content), nil
}

// GetLines reads the file at path and parses it with ParseLines.
func (p *Parser) GetLines(path string) ([]string, error) {
	content, err := p.read(path)
	if err != nil {
		return nil, err
	}
	return p.ParseLines(content), nil
}

// ParseMap splits content into key/value pairs. Entries without the
// delimiter map to an empty value. Later duplicates replace earlier ones.
func (p *Parser) ParseMap(content string) map[string]string {
	result := make(map[string]string)
	for _, line := range p.ParseLines(content) {
		k, v, _ := strings.Cut(line, p.kvDelimiter)
		key := strings.TrimSpace(k)
		value := strings.TrimSpace(v)

		if p.vTrimChars != "" {
			value = strings.Trim(value, p.vTrimChars)
		}
		if p.vTrimSuffix != "" {
			value = strings.TrimSpace(strings.TrimSuffix(value, p.vTrimSuffix))
		}

		if key == "" || (p.skipEmptyValues && value == "") {
			continue
		}
		result[key] = value
	}
	return result
}

// ParseLines splits content by the delimiter, dropping blank and, if
// configured, comment entries. Entries are trimmed of surrounding space.
func (p *Parser) ParseLines(content string) []string {
	parts := strings.Split(content, p.delimiter)

	result := make([]string, 0, len(parts))
	for _, part := range parts {
		clean := strings.TrimSpace(part)
		if clean == "" {
			continue
		}
		if p.skipComments && strings.HasPrefix(clean, "#") {
			continue
		}
		result = append(result, clean)
	}
	return result
}

func (p *Parser) read(path string) (string, error) {
	if path == "" {
		return "", errors.New(errors.ErrCodeInvalidRequest, "file path cannot be empty")
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return "", errors.WrapWithContext(errors.ErrCodeSourceUnavailable, "failed to read file", err,
			map[string]any{"path": path})
	}

	if len(b) > p.maxSize {
		return "", errors.NewWithContext(errors.ErrCodeMalformedEntry, "file exceeds maximum size",
			map[string]any{"path": path, "size": len(b), "max": p.maxSize})
	}

	if !utf8.Valid(b) {
		return "", errors.NewWithContext(errors.ErrCodeMalformedEntry, "file is not valid UTF-8",
			map[string]any{"path": path})
	}

	slog.Debug("file read", "path", path, "bytes", len(b))
	return string(b), nil
}

// Copyright (c) 2026 The r2proto3 Authors
//
// Permission to use, copy, modify, and/or distribute this software for any
// purpose with or without fee is hereby granted.
//
// THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH
// REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY
// AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT,
// INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM
// LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR
// OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR
// PERFORMANCE OF THIS SOFTWARE.
//
// SPDX-License-Identifier: 0BSD

// Package plugin runs code generators compiled to WebAssembly against a
// generated proto3 schema.
//
// A plugin exports two functions:
//
//	r2proto3_codegen_allocate(len u32) -> ptr u32
//	r2proto3_codegen_generate/<language>(request_ptr u32, response_ptr_ptr u32) -> rc u8
//
// Requests and responses are JSON documents prefixed with their total length
// (header included) as a little-endian uint32.
package plugin

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// PathEnv names the environment variable searched when no plugin path is
// given.
const PathEnv = "R2PROTO3_CODEGEN_PLUGIN_PATH"

const headerLen = 4

type Request struct {
	Schema     string            `json:"schema"`
	SourcePath []string          `json:"source_path,omitempty"`
	Options    map[string]string `json:"options,omitempty"`
}

type Response struct {
	Error       string       `json:"error,omitempty"`
	OutputFiles []OutputFile `json:"output_files,omitempty"`
}

// An OutputFile is one generated file. Path holds its components relative
// to the output directory.
type OutputFile struct {
	Path    []string `json:"path"`
	Content []byte   `json:"content"`
}

// EncodeRequest returns the framed request.
func EncodeRequest(req *Request) ([]byte, error) {
	return encodeFrame(req)
}

// DecodeResponse parses a framed response.
func DecodeResponse(buf []byte) (*Response, error) {
	body, err := decodeFrame(buf)
	if err != nil {
		return nil, err
	}
	var resp Response
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, errors.Wrap(err, "failed to decode plugin response")
	}
	return &resp, nil
}

func encodeFrame(v any) ([]byte, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if uint64(len(body)) > math.MaxUint32-headerLen {
		return nil, errors.Errorf("message size (%d bytes) exceeds maximum", len(body))
	}
	buf := make([]byte, headerLen, headerLen+len(body))
	binary.LittleEndian.PutUint32(buf, uint32(headerLen+len(body)))
	return append(buf, body...), nil
}

func decodeFrame(buf []byte) ([]byte, error) {
	if len(buf) < headerLen {
		return nil, errors.Errorf("truncated message header (%d bytes)", len(buf))
	}
	total := binary.LittleEndian.Uint32(buf)
	if total < headerLen || uint64(total) > uint64(len(buf)) {
		return nil, errors.Errorf("invalid message length %d (buffer has %d bytes)", total, len(buf))
	}
	return buf[headerLen:total], nil
}

// Basename returns the file name of the plugin for a language.
func Basename(language string) string {
	return fmt.Sprintf("r2proto3-codegen-%s.wasm", language)
}

// Locate searches a ':'-separated list of directories for the plugin of a
// language. An empty pluginPath falls back to $R2PROTO3_CODEGEN_PLUGIN_PATH.
func Locate(pluginPath, language string) (string, error) {
	if pluginPath == "" {
		pluginPath = os.Getenv(PathEnv)
	}
	if pluginPath == "" {
		return "", errors.Errorf("no plugin path set, use --plugin-path= or $%s", PathEnv)
	}
	basename := Basename(language)
	for _, dir := range filepath.SplitList(pluginPath) {
		if dir == "" {
			continue
		}
		candidate := filepath.Join(dir, basename)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	return "", errors.Errorf("codegen plugin %s not found in plugin path", basename)
}

// RelPath validates the path of a generated file and returns it as a
// slash-separated relative path.
func (f *OutputFile) RelPath() (string, error) {
	parts := f.Path
	if len(parts) == 0 {
		return "", errors.Errorf("invalid output path %#v: empty", parts)
	}
	for _, part := range parts {
		if part == "" || part == "." || part == ".." {
			return "", errors.Errorf("invalid output path %#v: bad path component %q", parts, part)
		}
		if part[0] == '/' || filepath.IsAbs(part) {
			return "", errors.Errorf("invalid output path %#v: absolute path component %q", parts, part)
		}
		if strings.ContainsAny(part, `/\`) {
			return "", errors.Errorf("invalid output path %#v: component %q contains a path separator", parts, part)
		}
	}
	return strings.Join(parts, "/"), nil
}

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

package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"testing"
)

// TestdataFS returns the repository's testdata directory.
func TestdataFS() (fs.FS, error) {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		return nil, fmt.Errorf("can't locate testdata directory")
	}
	dir := filepath.Join(filepath.Dir(file), "..", "..", "testdata")
	if _, err := os.Stat(dir); err != nil {
		return nil, err
	}
	return os.DirFS(dir), nil
}

// A Diagnostic is one entry of a diagnostics catalog: an error or warning
// code with its expected message.
type Diagnostic struct {
	Key     string
	Code    uint32
	Message string
	Pattern *regexp.Regexp
}

// LoadDiagnostics reads a catalog such as "diagnostics/errors.json". Keys
// starting with '_' reserve a code without describing a diagnostic. Several
// entries may share a code when they match different messages.
func LoadDiagnostics(testdata fs.FS, path string) (map[string]*Diagnostic, error) {
	type raw struct {
		Code    uint32 `json:"code"`
		Message string `json:"message"`
		Pattern string `json:"message_pattern"`
	}

	jsonData, err := fs.ReadFile(testdata, path)
	if err != nil {
		return nil, err
	}

	var rawDiagnostics map[string]raw
	decoder := json.NewDecoder(bytes.NewReader(jsonData))
	decoder.UseNumber()
	if err := decoder.Decode(&rawDiagnostics); err != nil {
		return nil, err
	}

	out := make(map[string]*Diagnostic, len(rawDiagnostics))
	reserved := make(map[uint32]string, len(rawDiagnostics))
	for key, raw := range rawDiagnostics {
		if key[0] == '_' {
			if prev, conflict := reserved[raw.Code]; conflict {
				return nil, fmt.Errorf("%s: code %d reserved by %q and %q", path, raw.Code, prev, key)
			}
			reserved[raw.Code] = key
		}
	}
	for key, raw := range rawDiagnostics {
		if key[0] == '_' {
			continue
		}
		if raw.Code == 0 {
			return nil, fmt.Errorf("%s: %q has no code", path, key)
		}
		if prev, conflict := reserved[raw.Code]; conflict {
			return nil, fmt.Errorf("%s: code %d of %q is reserved by %q", path, raw.Code, key, prev)
		}

		var pattern *regexp.Regexp
		if raw.Pattern != "" {
			pattern, err = regexp.Compile("(?i)" + raw.Pattern)
			if err != nil {
				return nil, err
			}
		}
		out[key] = &Diagnostic{
			Key:     key,
			Code:    raw.Code,
			Message: raw.Message,
			Pattern: pattern,
		}
	}

	return out, nil
}

// LoadExpected reads the "errors" or "warnings" list of a test case's
// expectation file and looks each entry up in the catalog.
func LoadExpected(
	t *testing.T,
	catalog map[string]*Diagnostic,
	testdata fs.FS,
	jsonPath string,
	listKey string,
) []*Diagnostic {
	t.Helper()

	jsonData, err := fs.ReadFile(testdata, jsonPath)
	if err != nil {
		t.Fatal(err)
	}

	var raw map[string][]string
	if err := json.Unmarshal(jsonData, &raw); err != nil {
		t.Fatal(err)
	}

	var out []*Diagnostic
	for _, key := range raw[listKey] {
		diag, ok := catalog[key]
		if !ok {
			t.Fatalf("unknown diagnostic name %q", key)
		}
		out = append(out, diag)
	}
	return out
}

// ExpectDiagnostic compares a reported code and message against the catalog
// entry.
func ExpectDiagnostic(t *testing.T, want *Diagnostic, code uint32, message string) {
	t.Helper()
	ExpectEq(t, want.Code, code)
	if want.Pattern != nil {
		ExpectMatch(t, want.Pattern, message)
	} else if want.Message != "" {
		ExpectEq(t, want.Message, message)
	}
}

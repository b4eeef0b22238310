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

package crate_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	"github.com/viant/afs/file"

	"github.com/markcda/r2proto3/crate"
	"github.com/markcda/r2proto3/syntax"
)

const accountSource = `// NOTE: ToProtobuf
pub struct Account {
    pub id: u64,
    pub owner: String,
}
`

const statusSource = `// NOTE: ToProtobuf
enum Status {
    Active,
    Closed,
}

struct Unmarked {
    x: u8,
}
`

func seed(t *testing.T, fs afs.Service, root string, files map[string]string) {
	t.Helper()
	ctx := context.Background()
	for name, content := range files {
		err := fs.Upload(ctx, root+"/"+name, file.DefaultFileOsMode, strings.NewReader(content))
		require.NoError(t, err)
	}
}

func declNames(files []*syntax.File) []string {
	var out []string
	for _, f := range files {
		for _, decl := range f.Decls {
			out = append(out, f.Path+":"+decl.Name)
		}
	}
	return out
}

func TestLoad(t *testing.T) {
	ctx := context.Background()
	fs := afs.New()

	var useCases = []struct {
		description string
		root        string
		files       map[string]string
		options     []crate.LoadOption
		expect      []string
	}{
		{
			description: "sorted by path",
			root:        "mem://localhost/crate_sorted",
			files: map[string]string{
				"src/model/status.rs": statusSource,
				"src/account.rs":      accountSource,
				"README.md":           accountSource,
			},
			expect: []string{"src/account.rs:Account", "src/model/status.rs:Status"},
		},
		{
			description: "default exclusions are not applied without options",
			root:        "mem://localhost/crate_target",
			files: map[string]string{
				"src/lib.rs":            accountSource,
				"target/debug/build.rs": statusSource,
			},
			expect: []string{"src/lib.rs:Account", "target/debug/build.rs:Status"},
		},
		{
			description: "excluded prefix",
			root:        "mem://localhost/crate_excluded",
			files: map[string]string{
				"src/lib.rs":            accountSource,
				"target/debug/build.rs": statusSource,
				"targets.rs":            statusSource,
			},
			options: []crate.LoadOption{crate.WithExclude("target", "")},
			expect:  []string{"src/lib.rs:Account", "targets.rs:Status"},
		},
		{
			description: "custom marker",
			root:        "mem://localhost/crate_marker",
			files: map[string]string{
				"lib.rs": strings.ReplaceAll(accountSource, "NOTE: ToProtobuf", "proto"),
			},
			options: []crate.LoadOption{crate.WithMarker("proto")},
			expect:  []string{"lib.rs:Account"},
		},
		{
			description: "no sources",
			root:        "mem://localhost/crate_empty",
			files: map[string]string{
				"Cargo.toml": "[package]\nname = \"empty\"\n",
			},
			expect: nil,
		},
	}

	for _, useCase := range useCases {
		seed(t, fs, useCase.root, useCase.files)
		files, err := crate.Load(ctx, fs, useCase.root, useCase.options...)
		if !assert.NoError(t, err, useCase.description) {
			continue
		}
		assert.Equal(t, useCase.expect, declNames(files), useCase.description)
	}
}

func TestLoadBodyLines(t *testing.T) {
	ctx := context.Background()
	fs := afs.New()
	root := "mem://localhost/crate_lines"
	seed(t, fs, root, map[string]string{"lib.rs": accountSource})

	files, err := crate.Load(ctx, fs, root)
	require.NoError(t, err)
	require.Len(t, files, 1)
	require.Len(t, files[0].Decls, 1)
	assert.Equal(t, []string{"pub id: u64,", "pub owner: String,"}, files[0].Decls[0].Lines)
	assert.Equal(t, "lib.rs:2", files[0].Position(files[0].Decls[0].Span))
}

func TestLoadSyntaxError(t *testing.T) {
	ctx := context.Background()
	fs := afs.New()
	root := "mem://localhost/crate_broken"
	seed(t, fs, root, map[string]string{
		"lib.rs": "// NOTE: ToProtobuf\nstruct Broken {\n    x: u8,\n",
	})

	_, err := crate.Load(ctx, fs, root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lib.rs")

	var syntaxErr *syntax.Error
	require.ErrorAs(t, err, &syntaxErr)
	assert.EqualValues(t, 1001, syntaxErr.Code())
}

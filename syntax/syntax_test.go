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

package syntax_test

import (
	"testing"

	"github.com/markcda/r2proto3/internal/testutil"
	"github.com/markcda/r2proto3/syntax"
)

func extract(t *testing.T, src string, opts ...syntax.ExtractOption) *syntax.File {
	t.Helper()
	file, err := syntax.Extract([]byte(src), opts...)
	testutil.AssertNoError(t, err)
	return file
}

func TestExtractStruct(t *testing.T) {
	file := extract(t, `
use std::collections::HashMap;

// NOTE: ToProtobuf
#[derive(Debug, Clone, serde::Serialize)]
pub struct Account {
    /// Primary key.
    pub id: u64,
    #[serde(rename = "display_name")]
    pub(crate) name: String, // shown in the UI

    tags: HashMap<String, Vec<u8>>,
}

pub struct Unmarked {
    a: u32,
}
`, syntax.WithPath("src/lib.rs"))

	testutil.ExpectEq(t, 1, len(file.Decls))
	decl := file.Decls[0]
	testutil.ExpectEq(t, syntax.DeclStruct, decl.Kind)
	testutil.ExpectEq(t, "Account", decl.Name)
	testutil.ExpectFalse(t, decl.Generic)
	testutil.ExpectSliceEq(t, []string{
		"pub id: u64,",
		"pub(crate) name: String, // shown in the UI",
		"tags: HashMap<String, Vec<u8>>,",
	}, decl.Lines)
	testutil.ExpectEq(t, "src/lib.rs:6", file.Position(decl.Span))
}

func TestExtractQuotesInComments(t *testing.T) {
	tests := []struct {
		src   string
		lines []string
	}{
		{
			"// NOTE: ToProtobuf\nstruct User {\n    /// The user's display name.\n    name: String,\n}\n",
			[]string{"name: String,"},
		},
		{
			"// NOTE: ToProtobuf\nstruct User {\n    // see \"docs\n    name: String,\n}\n",
			[]string{"name: String,"},
		},
		{
			"// NOTE: ToProtobuf\nstruct User {\n    name: String, // it's \"quoted\" }\n    age: u8, /* don't } */\n}\n",
			[]string{"name: String, // it's \"quoted\" }", "age: u8,"},
		},
		{
			"// NOTE: ToProtobuf\nenum Mood {\n    // can't decide\n    Happy,\n    Sad,\n}\n",
			[]string{"Happy,", "Sad,"},
		},
		{
			"// NOTE: ToProtobuf\nstruct Pair(u8 /* it's */, String);\n",
			[]string{"u8", "String"},
		},
	}
	for _, test := range tests {
		file := extract(t, test.src)
		testutil.AssertEq(t, 1, len(file.Decls))
		testutil.ExpectSliceEq(t, test.lines, file.Decls[0].Lines)
	}
}

func TestExtractEnum(t *testing.T) {
	file := extract(t, `
// NOTE: ToProtobuf
#[derive(Debug)]
enum Color {
    Red,
    // Green is deprecated
    Green,
    Blue
}
`)
	testutil.ExpectEq(t, 1, len(file.Decls))
	decl := file.Decls[0]
	testutil.ExpectEq(t, syntax.DeclEnum, decl.Kind)
	testutil.ExpectEq(t, "Color", decl.Name)
	testutil.ExpectSliceEq(t, []string{"Red,", "Green,", "Blue"}, decl.Lines)
}

func TestExtractSingleLineBodies(t *testing.T) {
	file := extract(t, `
// NOTE: ToProtobuf
struct Point { x: f64, y: f64, tags: HashMap<String, u8> }

// NOTE: ToProtobuf
enum Axis { X, Y }
`)
	testutil.ExpectEq(t, 2, len(file.Decls))
	testutil.ExpectSliceEq(t,
		[]string{"x: f64", "y: f64", "tags: HashMap<String, u8>"},
		file.Decls[0].Lines,
	)
	testutil.ExpectSliceEq(t, []string{"X", "Y"}, file.Decls[1].Lines)
}

func TestExtractTupleAndUnitStructs(t *testing.T) {
	file := extract(t, `
// NOTE: ToProtobuf
pub struct Pair(pub u32, HashMap<String, u8>);

// NOTE: ToProtobuf
pub struct Empty;

// NOTE: ToProtobuf
pub struct Braced {}
`)
	testutil.ExpectEq(t, 3, len(file.Decls))
	testutil.ExpectEq(t, "Pair", file.Decls[0].Name)
	testutil.ExpectSliceEq(t,
		[]string{"pub u32", "HashMap<String, u8>"},
		file.Decls[0].Lines,
	)
	testutil.ExpectEq(t, "Empty", file.Decls[1].Name)
	testutil.ExpectEq(t, 0, len(file.Decls[1].Lines))
	testutil.ExpectEq(t, "Braced", file.Decls[2].Name)
	testutil.ExpectEq(t, 0, len(file.Decls[2].Lines))
}

func TestExtractFunctionsAndGenerics(t *testing.T) {
	file := extract(t, `
// NOTE: ToProtobuf
pub async fn get_account(id: u64) -> Account {
    todo!()
}

// NOTE: ToProtobuf
pub struct Page<T> {
    items: Vec<T>,
}
`)
	testutil.ExpectEq(t, 2, len(file.Decls))
	testutil.ExpectEq(t, syntax.DeclFunction, file.Decls[0].Kind)
	testutil.ExpectEq(t, "get_account", file.Decls[0].Name)
	testutil.ExpectEq(t, "Page", file.Decls[1].Name)
	testutil.ExpectTrue(t, file.Decls[1].Generic)
	testutil.ExpectEq(t, 0, len(file.Decls[1].Lines))
}

func TestExtractLifetimeGenerics(t *testing.T) {
	file := extract(t, `
// NOTE: ToProtobuf
pub struct View<'a> { name: &'a str }

// NOTE: ToProtobuf
pub struct Callback<F: Fn(u8) -> u8> {
    f: F,
}

// NOTE: ToProtobuf
pub struct Ok {
    /// Isn't generic.
    id: u64,
}
`)
	testutil.AssertEq(t, 3, len(file.Decls))
	testutil.ExpectEq(t, "View", file.Decls[0].Name)
	testutil.ExpectTrue(t, file.Decls[0].Generic)
	testutil.ExpectEq(t, "Callback", file.Decls[1].Name)
	testutil.ExpectTrue(t, file.Decls[1].Generic)
	testutil.ExpectEq(t, "Ok", file.Decls[2].Name)
	testutil.ExpectFalse(t, file.Decls[2].Generic)
	testutil.ExpectSliceEq(t, []string{"id: u64,"}, file.Decls[2].Lines)
}

func TestExtractCancelledMarker(t *testing.T) {
	file := extract(t, `
// NOTE: ToProtobuf
impl Account {
    fn new() -> Self { todo!() }
}

const MARKER: &str = "// NOTE: ToProtobuf";

/// NOTE: ToProtobuf
struct DocCommented {
    a: u32,
}
`)
	testutil.ExpectEq(t, 0, len(file.Decls))
}

func TestExtractNestedMarker(t *testing.T) {
	file := extract(t, `
mod api {
    // NOTE: ToProtobuf
    pub struct Inner {
        pub value: i32,
    }
}
`)
	testutil.ExpectEq(t, 1, len(file.Decls))
	testutil.ExpectEq(t, "Inner", file.Decls[0].Name)
	testutil.ExpectSliceEq(t, []string{"pub value: i32,"}, file.Decls[0].Lines)
}

func TestExtractCustomMarker(t *testing.T) {
	src := `
// proto
struct A { a: u32 }

// NOTE: ToProtobuf
struct B { b: u32 }
`
	file := extract(t, src, syntax.WithMarker("proto"))
	testutil.ExpectEq(t, 1, len(file.Decls))
	testutil.ExpectEq(t, "A", file.Decls[0].Name)
}

func TestExtractMultilineAttributes(t *testing.T) {
	file := extract(t, `
// NOTE: ToProtobuf
struct Config {
    #[serde(
        rename = "x]",
        default
    )]
    x: u32,
    /* block
       comment */
    y: bool,
}
`)
	testutil.ExpectEq(t, 1, len(file.Decls))
	testutil.ExpectSliceEq(t, []string{"x: u32,", "y: bool,"}, file.Decls[0].Lines)
}

func TestExtractErrors(t *testing.T) {
	tests := []struct {
		src  string
		code uint32
	}{
		{"// NOTE: ToProtobuf\nstruct Foo {\n  a: u32,\n", 1001},
		{"// NOTE: ToProtobuf\nenum Foo;\n", 1001},
		{"// NOTE: ToProtobuf\nstruct {\n}\n", 1002},
		{"// NOTE: ToProtobuf\nfn (\n", 1002},
	}
	for _, test := range tests {
		_, err := syntax.Extract([]byte(test.src))
		testutil.ExpectErrorCode(t, test.code, err)
	}

	_, err := syntax.Extract([]byte("struct A {}\n\xff"))
	testutil.ExpectErrorCode(t, 1000, err)
	if synErr, ok := err.(*syntax.Error); ok {
		testutil.ExpectEq(t, uint32(12), synErr.Span().Start())
	}
}

func TestFilePosition(t *testing.T) {
	file := extract(t, "a\nb\n// NOTE: ToProtobuf\nenum E { A }\n",
		syntax.WithPath("x.rs"))
	testutil.ExpectEq(t, 1, file.Line(0))
	testutil.ExpectEq(t, 2, file.Line(2))
	testutil.ExpectEq(t, "x.rs:4", file.Position(file.Decls[0].Span))

	detached := &syntax.File{Path: "y.rs"}
	testutil.ExpectEq(t, "y.rs", detached.Position(syntax.NewSpan(3, 1)))
}

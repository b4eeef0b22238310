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

package typexpr_test

import (
	"testing"

	"github.com/markcda/r2proto3/internal/testutil"
	"github.com/markcda/r2proto3/typexpr"
)

func TestResolveScalars(t *testing.T) {
	tests := map[string]string{
		"f64":     "double",
		"f32":     "float",
		"f16":     "float",
		"f8":      "float",
		"i64":     "int64",
		"i32":     "int32",
		"i16":     "int32",
		"i8":      "int32",
		"u64":     "uint64",
		"u32":     "uint32",
		"u16":     "uint32",
		"u8":      "uint32",
		"bool":    "bool",
		"String":  "string",
		"Vec<u8>": "bytes",
	}
	for expr, want := range tests {
		got, err := typexpr.Resolve(expr, nil, false)
		testutil.ExpectNoError(t, err)
		testutil.ExpectEq(t, want, got)
	}
}

func TestResolveGenericDialect(t *testing.T) {
	r := typexpr.NewResolver(typexpr.GenericDialect())
	known := typexpr.NewKnownTypes("Account")

	tests := []struct {
		expr string
		want string
	}{
		{"F64", "double"},
		{"U8", "uint32"},
		{"Bytes", "bytes"},
		{"Optional<String>", "optional string"},
		{"List<I32>", "repeated int32"},
		{"List<Optional<I32>>", "repeated optional int32"},
		{"Map<String, U32>", "map<string, uint32>"},
		{"Map<I64, List<Account>>", "map<int64, repeated Account>"},
		{"Account", "Account"},
	}
	for _, test := range tests {
		got, err := r.Resolve(test.expr, known, false)
		testutil.ExpectNoError(t, err)
		testutil.ExpectEq(t, test.want, got)
	}
}

func TestResolveWrappers(t *testing.T) {
	known := typexpr.NewKnownTypes("Foo", "Bar")

	tests := []struct {
		expr string
		want string
	}{
		{"Option<Foo>", "optional Foo"},
		{"Vec<Foo>", "repeated Foo"},
		{"Vec<Vec<u8>>", "repeated bytes"},
		{"Option<Vec<u8>>", "optional bytes"},
		{"Vec< String >", "repeated string"},
		{"Vec<String,>", "repeated string"},
		{"HashMap<String, u32>", "map<string, uint32>"},
		{"BTreeMap<u64, Bar>", "map<uint64, Bar>"},
		{"std::collections::HashMap<i32, Vec<Foo>>", "map<int32, repeated Foo>"},
		{"HashMap<String, HashMap<String, f64>>", "map<string, map<string, double>>"},
		{"Option<HashMap<bool, String>>", "optional map<bool, string>"},
	}
	for _, test := range tests {
		got, err := typexpr.Resolve(test.expr, known, false)
		testutil.ExpectNoError(t, err)
		testutil.ExpectEq(t, test.want, got)
	}
}

func TestResolveErrors(t *testing.T) {
	known := typexpr.NewKnownTypes("Foo")

	tests := []struct {
		expr   string
		mapKey bool
		code   uint32
	}{
		{"", false, typexpr.CodeEmptyType},
		{"Bar", false, typexpr.CodeUnknownType},
		{"Box<Foo>", false, typexpr.CodeUnknownType},
		{"usize", false, typexpr.CodeUnknownType},
		{"Vec<Bar>", false, typexpr.CodeUnknownType},
		{"f64", true, typexpr.CodeUnsupportedMapKey},
		{"f32", true, typexpr.CodeUnsupportedMapKey},
		{"Vec<u8>", true, typexpr.CodeUnsupportedMapKey},
		{"Vec<u32>", true, typexpr.CodeUnsupportedMapKey},
		{"HashMap<f64, String>", false, typexpr.CodeUnsupportedMapKey},
		{"HashMap<Option<u32>, String>", false, typexpr.CodeUnsupportedMapKey},
		{"Vec<Vec<u32>>", false, typexpr.CodeDoubleWrapped},
		{"Option<Option<Foo>>", false, typexpr.CodeDoubleWrapped},
		{"HashMap<String, Vec<(u8, u8>)>>", false, typexpr.CodeMismatchedDelimiters},
		{"Vec<u8, u16>", false, typexpr.CodeWrongArity},
		{"HashMap<String>", false, typexpr.CodeWrongArity},
		{"HashMap<String, u8, u8>", false, typexpr.CodeWrongArity},
		{"Vec<>", false, typexpr.CodeEmptyType},
	}
	for _, test := range tests {
		_, err := typexpr.Resolve(test.expr, known, test.mapKey)
		testutil.ExpectErrorCode(t, test.code, err)
	}
}

func TestResolveMapKeys(t *testing.T) {
	for _, key := range []string{"i64", "i32", "u64", "u32", "bool", "String"} {
		_, err := typexpr.Resolve(key, nil, true)
		testutil.ExpectNoError(t, err)
	}

	got, err := typexpr.NewResolver(typexpr.GenericDialect()).
		Resolve("Map<String, U32>", nil, false)
	testutil.AssertNoError(t, err)
	testutil.ExpectEq(t, "map<string, uint32>", got)

	_, err = typexpr.NewResolver(typexpr.GenericDialect()).
		Resolve("Map<F64, String>", nil, false)
	testutil.ExpectErrorCode(t, typexpr.CodeUnsupportedMapKey, err)
}

func TestDialectExtensions(t *testing.T) {
	dialect := typexpr.RustDialect().
		WithScalar("usize", typexpr.Uint64).
		WithList("SmallVec").
		WithOptional("Maybe").
		WithMap("IndexMap")
	r := typexpr.NewResolver(dialect)

	tests := map[string]string{
		"usize":                    "uint64",
		"SmallVec<usize>":          "repeated uint64",
		"Maybe<String>":            "optional string",
		"IndexMap<String, String>": "map<string, string>",
	}
	for expr, want := range tests {
		got, err := r.Resolve(expr, nil, false)
		testutil.ExpectNoError(t, err)
		testutil.ExpectEq(t, want, got)
	}

	// Extensions do not leak into the dialect they were derived from.
	_, err := typexpr.Resolve("usize", nil, false)
	testutil.ExpectErrorCode(t, typexpr.CodeUnknownType, err)
}

func TestParsePrimitive(t *testing.T) {
	p, ok := typexpr.ParsePrimitive("uint64")
	testutil.ExpectTrue(t, ok)
	testutil.ExpectEq(t, typexpr.Uint64, p)

	_, ok = typexpr.ParsePrimitive("usize")
	testutil.ExpectFalse(t, ok)

	testutil.ExpectFalse(t, typexpr.Double.MapKey())
	testutil.ExpectFalse(t, typexpr.Bytes.MapKey())
	testutil.ExpectTrue(t, typexpr.String.MapKey())
}

func TestKnownTypes(t *testing.T) {
	known := typexpr.NewKnownTypes("B")
	known.Add("A")
	known.Add("B")
	testutil.ExpectTrue(t, known.Contains("A"))
	testutil.ExpectFalse(t, known.Contains("C"))
	testutil.ExpectSliceEq(t, []string{"A", "B"}, known.Sorted())

	var empty typexpr.KnownTypes
	testutil.ExpectFalse(t, empty.Contains("A"))
}

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

package compiler

import (
	"testing"

	"github.com/markcda/r2proto3/internal/testutil"
	"github.com/markcda/r2proto3/syntax"
)

func TestFieldSeparator(t *testing.T) {
	tests := map[string]int{
		"id: u64":                  2,
		"pub(in crate::a) id: u64": 19,
		"path: std::path::PathBuf": 4,
		"std::string::String":      -1,
		"HashMap<String, u8>":      -1,
		"a::b: c":                  4,
		"r#type: String":           6,
		"":                         -1,
		"trailing:":                8,
	}
	for line, want := range tests {
		testutil.ExpectEq(t, want, fieldSeparator(line))
	}
}

func TestFieldNumbersOverflow(t *testing.T) {
	testutil.ExpectFalse(t, fieldNumbersOverflow(0))
	testutil.ExpectFalse(t, fieldNumbersOverflow(maxFieldLines-1))
	testutil.ExpectTrue(t, fieldNumbersOverflow(maxFieldLines))

	// The last field of the largest accepted struct still fits.
	last := int64(maxFieldLines-1) + (reservedEnd - reservedStart)
	testutil.ExpectTrue(t, last <= maxFieldNumber)
}

func TestNextFieldNumber(t *testing.T) {
	testutil.ExpectEq(t, int32(2), nextFieldNumber(1))
	testutil.ExpectEq(t, int32(18999), nextFieldNumber(18998))
	testutil.ExpectEq(t, int32(20000), nextFieldNumber(18999))
	testutil.ExpectEq(t, int32(20001), nextFieldNumber(20000))
}

func TestFieldNumberOverflowError(t *testing.T) {
	decl := &declInfo{
		file: &syntax.File{Path: "big.rs"},
		node: &syntax.Decl{Kind: syntax.DeclStruct, Name: "Huge"},
	}
	err := errFieldNumberOverflow(decl, maxFieldLines)
	testutil.ExpectErrorCode(t, CodeFieldNumberOverflow, err)
	testutil.ExpectEq(t, "Huge", err.(*Error).Entity())
	testutil.ExpectEq(t, "big.rs", err.(*Error).Position())
}

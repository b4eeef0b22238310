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

package syntax

import (
	"fmt"
	"slices"
)

type Span struct {
	start, len uint32
}

func NewSpan(start, len uint32) Span {
	return Span{start, len}
}

func (s Span) Start() uint32 {
	return s.start
}

func (s Span) End() uint32 {
	return s.start + s.len
}

func (s Span) Len() uint32 {
	return s.len
}

type DeclKind uint8

const (
	DeclStruct DeclKind = iota + 1
	DeclEnum
	DeclFunction
)

func (k DeclKind) String() string {
	switch k {
	case DeclStruct:
		return "struct"
	case DeclEnum:
		return "enum"
	case DeclFunction:
		return "fn"
	}
	return fmt.Sprintf("DeclKind(%d)", uint8(k))
}

// A Decl is a declaration that follows a marker comment.
type Decl struct {
	Kind DeclKind
	Name string

	// Lines holds the non-empty body lines of a struct or enum, trimmed,
	// with attributes and comment-only lines removed. Tuple structs have
	// one line per component.
	Lines []string

	// Generic declarations have type parameters and no Lines.
	Generic bool

	// Span covers the declaration's name.
	Span Span
}

// A File is the set of marked declarations found in one source file.
type File struct {
	Path  string
	Decls []*Decl

	lineStarts []uint32
}

func newFile(path string, src []byte) *File {
	lineStarts := []uint32{0}
	for ii, c := range src {
		if c == '\n' {
			lineStarts = append(lineStarts, uint32(ii+1))
		}
	}
	return &File{Path: path, lineStarts: lineStarts}
}

// Line returns the 1-based line number of a byte offset, or 0 if the file
// was not extracted from source.
func (f *File) Line(offset uint32) int {
	if len(f.lineStarts) == 0 {
		return 0
	}
	idx, found := slices.BinarySearch(f.lineStarts, offset)
	if found {
		return idx + 1
	}
	return idx
}

// Position formats the location of a span as "path:line".
func (f *File) Position(span Span) string {
	line := f.Line(span.Start())
	if line == 0 {
		return f.Path
	}
	return fmt.Sprintf("%s:%d", f.Path, line)
}

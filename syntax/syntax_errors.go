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
	"math"
	"unicode/utf8"
)

const maxSrcLen = 0x7FFFFFFF // (2**31)-1

type Error struct {
	code    uint32
	message string
	span    Span
}

var _ error = (*Error)(nil)

func (err *Error) Error() string {
	return fmt.Sprintf("E%d: %s", err.code, err.message)
}

func (err *Error) Code() uint32 {
	return err.code
}

func (err *Error) Message() string {
	return err.message
}

func (err *Error) Span() Span {
	return err.span
}

func errInvalidUtf8(src []byte) error {
	var off uint32
	for len(src) > 0 {
		r, size := utf8.DecodeRune(src)
		if r == utf8.RuneError && size <= 1 {
			break
		}
		off += uint32(size)
		src = src[size:]
	}
	return &Error{
		code:    1000,
		message: "Source file contains invalid UTF-8",
		span:    Span{off, 1},
	}
}

func errUnterminatedBody(kind DeclKind, name string, start int) error {
	return &Error{
		code:    1001,
		message: fmt.Sprintf("Marked %s '%s' has no terminated body", kind, name),
		span:    Span{uint32(start), 1},
	}
}

func errMissingName(kind DeclKind, start int) error {
	return &Error{
		code:    1002,
		message: fmt.Sprintf("Expected a name after marked '%s'", kind),
		span:    Span{uint32(start), 0},
	}
}

func errSourceTooLong(srcLen int) error {
	lenUint32 := uint32(math.MaxUint32)
	if uint64(srcLen) < math.MaxUint32 {
		lenUint32 = uint32(srcLen)
	}
	return &Error{
		code: 1003,
		message: fmt.Sprintf(
			"Source file size (%d bytes) exceeds maximum (%d bytes)",
			srcLen, maxSrcLen,
		),
		span: Span{0, lenUint32},
	}
}

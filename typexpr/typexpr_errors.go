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

package typexpr

import (
	"fmt"
)

const (
	CodeUnknownType          uint32 = 2000
	CodeUnsupportedMapKey    uint32 = 2001
	CodeDoubleWrapped        uint32 = 2002
	CodeMismatchedDelimiters uint32 = 2003
	CodeWrongArity           uint32 = 2004
	CodeEmptyType            uint32 = 2005
)

type Error struct {
	code    uint32
	message string
	expr    string
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

// Expr returns the type expression that failed to resolve.
func (err *Error) Expr() string {
	return err.expr
}

func errUnknownType(expr string) error {
	return &Error{
		code:    CodeUnknownType,
		message: fmt.Sprintf("Unknown type %q", expr),
		expr:    expr,
	}
}

func errUnsupportedMapKey(expr string) error {
	return &Error{
		code:    CodeUnsupportedMapKey,
		message: fmt.Sprintf("Type %q can't be used as a map key", expr),
		expr:    expr,
	}
}

func errDoubleWrapped(expr, modifier string) error {
	return &Error{
		code: CodeDoubleWrapped,
		message: fmt.Sprintf(
			"Type %q nests a '%s' type inside another '%s' type",
			expr, modifier, modifier,
		),
		expr: expr,
	}
}

func errMismatchedDelimiters(text string, offset int) error {
	var message string
	if offset < len(text) {
		message = fmt.Sprintf(
			"Mismatched delimiter '%c' at offset %d in %q",
			text[offset], offset, text,
		)
	} else {
		message = fmt.Sprintf("Unclosed delimiter in %q", text)
	}
	return &Error{
		code:    CodeMismatchedDelimiters,
		message: message,
		expr:    text,
	}
}

func errWrongArity(expr, head string, want, got int) error {
	return &Error{
		code: CodeWrongArity,
		message: fmt.Sprintf(
			"Type %q: '%s' takes %d type argument(s), got %d",
			expr, head, want, got,
		),
		expr: expr,
	}
}

func errEmptyType() error {
	return &Error{
		code:    CodeEmptyType,
		message: "Empty type expression",
	}
}

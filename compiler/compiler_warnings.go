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
	"fmt"

	"github.com/markcda/r2proto3/syntax"
)

const (
	CodeDuplicateDecl  uint32 = 4000
	CodeEntityDropped  uint32 = 4001
	CodeNoDeclarations uint32 = 4002
	CodeRPCUnsupported uint32 = 4003
	CodeGenericSkipped uint32 = 4004
)

type Warning struct {
	code     uint32
	message  string
	position string
	span     syntax.Span
	cause    error
}

func (w *Warning) String() string {
	return fmt.Sprintf("W%d: %s", w.code, w.message)
}

func (w *Warning) Code() uint32 {
	return w.code
}

func (w *Warning) Message() string {
	return w.message
}

func (w *Warning) Position() string {
	return w.position
}

func (w *Warning) Span() syntax.Span {
	return w.span
}

// Cause returns the error that made the compiler drop an entity, or nil.
func (w *Warning) Cause() error {
	return w.cause
}

func warnDuplicateDecl(decl, prev *declInfo) *Warning {
	return &Warning{
		code: CodeDuplicateDecl,
		message: fmt.Sprintf(
			"Type '%s' is declared more than once (%s and %s);"+
				" the later declaration wins",
			decl.node.Name, prev.position(), decl.position(),
		),
		position: decl.position(),
		span:     decl.node.Span,
	}
}

func warnEntityDropped(decl *declInfo, cause error) *Warning {
	return &Warning{
		code: CodeEntityDropped,
		message: fmt.Sprintf(
			"Dropped %s '%s': %v",
			decl.node.Kind, decl.node.Name, cause,
		),
		position: decl.position(),
		span:     decl.node.Span,
		cause:    cause,
	}
}

func warnNoDeclarations() *Warning {
	return &Warning{
		code: CodeNoDeclarations,
		message: "No marked structs or enums were found;" +
			" add a '// NOTE: ToProtobuf' comment above each declaration",
	}
}

func warnRPCUnsupported(decl *declInfo) *Warning {
	return &Warning{
		code: CodeRPCUnsupported,
		message: fmt.Sprintf(
			"Marked function '%s' ignored: RPC translation is not supported",
			decl.node.Name,
		),
		position: decl.position(),
		span:     decl.node.Span,
	}
}

func warnGenericSkipped(decl *declInfo) *Warning {
	return &Warning{
		code: CodeGenericSkipped,
		message: fmt.Sprintf(
			"Marked %s '%s' skipped: type parameters are not supported",
			decl.node.Kind, decl.node.Name,
		),
		position: decl.position(),
		span:     decl.node.Span,
	}
}

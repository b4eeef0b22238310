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
	CodeFieldType            uint32 = 3000
	CodeFieldNumberOverflow  uint32 = 3001
	CodeValueCarryingVariant uint32 = 3002
	CodeVariantDiscriminant  uint32 = 3003
)

// An Error reports why an entity could not be translated.
type Error struct {
	code     uint32
	message  string
	entity   string
	position string
	span     syntax.Span
	cause    error
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

// Entity returns the name of the entity that failed.
func (err *Error) Entity() string {
	return err.entity
}

// Position returns the "path:line" of the entity's declaration.
func (err *Error) Position() string {
	return err.position
}

func (err *Error) Span() syntax.Span {
	return err.span
}

func (err *Error) Unwrap() error {
	return err.cause
}

func newError(decl *declInfo, code uint32, message string, cause error) *Error {
	return &Error{
		code:     code,
		message:  message,
		entity:   decl.node.Name,
		position: decl.position(),
		span:     decl.node.Span,
		cause:    cause,
	}
}

func errFieldType(decl *declInfo, field string, cause error) error {
	return newError(decl, CodeFieldType, fmt.Sprintf(
		"Field '%s' of message '%s' has an unsupported type: %v",
		field, decl.node.Name, cause,
	), cause)
}

func errFieldNumberOverflow(decl *declInfo, fieldCount int) error {
	return newError(decl, CodeFieldNumberOverflow, fmt.Sprintf(
		"Message '%s' has %d fields, which exceeds the proto3 field number space",
		decl.node.Name, fieldCount,
	), nil)
}

func errValueCarryingVariant(decl *declInfo, variant string) error {
	return newError(decl, CodeValueCarryingVariant, fmt.Sprintf(
		"Variant '%s' of enum '%s' carries a value",
		variant, decl.node.Name,
	), nil)
}

func errVariantDiscriminant(decl *declInfo, variant string) error {
	return newError(decl, CodeVariantDiscriminant, fmt.Sprintf(
		"Variant '%s' of enum '%s' has an explicit discriminant",
		variant, decl.node.Name,
	), nil)
}

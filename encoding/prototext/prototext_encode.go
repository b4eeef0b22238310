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

// Package prototext renders a schema as a proto3 definition file.
package prototext

import (
	"fmt"
	"io"
	"strings"

	"github.com/markcda/r2proto3/schema"
)

type EncodeOption interface {
	apply(*encodeOptions)
}

type encodeOption func(*encodeOptions)

func (f encodeOption) apply(opts *encodeOptions) { f(opts) }

type encodeOptions struct {
	pkg string
}

// WithPackage adds a package statement after the syntax line.
func WithPackage(pkg string) EncodeOption {
	return encodeOption(func(opts *encodeOptions) {
		opts.pkg = pkg
	})
}

func Encode(s *schema.Schema, opts ...EncodeOption) string {
	var buf strings.Builder
	EncodeTo(s, &buf, opts...)
	return buf.String()
}

func EncodeTo(s *schema.Schema, w io.Writer, opts ...EncodeOption) error {
	var options encodeOptions
	for _, opt := range opts {
		opt.apply(&options)
	}

	e := encoder{w: w}
	e.line(`syntax = "proto3";`)
	if options.pkg != "" {
		e.line("")
		e.linef("package %s;", options.pkg)
	}
	if s == nil {
		return e.err
	}
	for entity := range s.Entities() {
		if e.err != nil {
			break
		}
		e.line("")
		switch entity.Kind {
		case schema.KindMessage:
			e.visitMessage(entity)
		case schema.KindEnum:
			e.visitEnum(entity)
		default:
			panic(fmt.Sprintf("prototext: unhandled entity kind %v", entity.Kind))
		}
	}
	return e.err
}

type encoder struct {
	w      io.Writer
	indent int
	err    error
}

func (e *encoder) line(s string) {
	if e.err != nil {
		return
	}
	if indent := strings.Repeat("  ", e.indent); indent != "" {
		if _, err := io.WriteString(e.w, indent); err != nil {
			e.err = err
			return
		}
	}
	if _, err := io.WriteString(e.w, s); err != nil {
		e.err = err
		return
	}
	if _, err := io.WriteString(e.w, "\n"); err != nil {
		e.err = err
		return
	}
}

func (e *encoder) linef(format string, a ...any) {
	e.line(fmt.Sprintf(format, a...))
}

func (e *encoder) visitMessage(entity *schema.Entity) {
	e.linef("message %s {", entity.Name)
	e.indent += 1
	for _, field := range entity.Fields {
		e.linef("%s %s = %d;", field.Type, field.Name, field.Number)
	}
	e.indent -= 1
	e.line("}")
}

func (e *encoder) visitEnum(entity *schema.Entity) {
	e.linef("enum %s {", entity.Name)
	e.indent += 1
	for _, value := range entity.Values {
		e.linef("%s = %d;", value.Name, value.Value)
	}
	e.indent -= 1
	e.line("}")
}

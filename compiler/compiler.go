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

// Package compiler translates marked Rust declarations into proto3 entities.
//
// All declarations are registered before any of them is compiled, so field
// types may refer to types declared later or in other files. Structs are
// compiled before enums. When two declarations share a name the one stored
// last replaces the other.
package compiler

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/markcda/r2proto3/schema"
	"github.com/markcda/r2proto3/syntax"
	"github.com/markcda/r2proto3/typexpr"
)

const (
	maxFieldNumber = 536870911 // (2**29)-1

	reservedStart = 19000
	reservedEnd   = 20000

	// Struct bodies with this many lines would number past maxFieldNumber.
	maxFieldLines = maxFieldNumber - (reservedEnd - reservedStart)
)

type CompileOption interface {
	apply(*CompileOptions)
}

type compileOption func(*CompileOptions)

func (f compileOption) apply(opts *CompileOptions) { f(opts) }

type CompileOptions struct {
	strict    bool
	ignoreRPC bool
	dialect   typexpr.Dialect
	logger    zerolog.Logger
}

// WithStrict makes the first untranslatable entity fail the compilation.
// By default such entities are dropped with a warning.
func WithStrict(strict bool) CompileOption {
	return compileOption(func(opts *CompileOptions) {
		opts.strict = strict
	})
}

// WithIgnoreRPC silences the warnings for marked functions.
func WithIgnoreRPC(ignoreRPC bool) CompileOption {
	return compileOption(func(opts *CompileOptions) {
		opts.ignoreRPC = ignoreRPC
	})
}

func WithDialect(dialect typexpr.Dialect) CompileOption {
	return compileOption(func(opts *CompileOptions) {
		opts.dialect = dialect
	})
}

func WithLogger(logger zerolog.Logger) CompileOption {
	return compileOption(func(opts *CompileOptions) {
		opts.logger = logger
	})
}

type CompileResult struct {
	// Schema is nil if Errors is not empty.
	Schema *schema.Schema

	Errors   []*Error
	Warnings []*Warning
}

func Compile(files []*syntax.File, opts ...CompileOption) CompileResult {
	return NewCompileOptions(opts...).Compile(files)
}

func NewCompileOptions(opts ...CompileOption) *CompileOptions {
	compileOptions := &CompileOptions{
		dialect: typexpr.RustDialect(),
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt.apply(compileOptions)
	}
	return compileOptions
}

func (opts *CompileOptions) Compile(files []*syntax.File) CompileResult {
	c := compiler{
		opts:     opts,
		log:      opts.logger,
		resolver: typexpr.NewResolver(opts.dialect),
		schema:   schema.New(),
		known:    typexpr.NewKnownTypes(),
	}
	c.registerDecls(files)
	c.compileDecls()
	if len(c.errors) > 0 {
		return CompileResult{
			Errors:   c.errors,
			Warnings: c.warnings,
		}
	}
	return CompileResult{
		Schema:   c.schema,
		Warnings: c.warnings,
	}
}

type compiler struct {
	opts     *CompileOptions
	log      zerolog.Logger
	resolver *typexpr.Resolver
	schema   *schema.Schema
	errors   []*Error
	warnings []*Warning

	// Set by registerDecls()
	known       typexpr.KnownTypes
	structs     []*declInfo
	enums       []*declInfo
	declsByName map[string]*declInfo
}

type declInfo struct {
	file *syntax.File
	node *syntax.Decl
}

func (d *declInfo) position() string {
	if d.file == nil {
		return ""
	}
	return d.file.Position(d.node.Span)
}

func (c *compiler) err(err error) {
	c.errors = append(c.errors, err.(*Error))
}

func (c *compiler) warn(warning *Warning) {
	c.warnings = append(c.warnings, warning)
}

func (c *compiler) registerDecls(files []*syntax.File) {
	c.declsByName = make(map[string]*declInfo)
	for _, file := range files {
		for _, node := range file.Decls {
			decl := &declInfo{file: file, node: node}
			switch {
			case node.Kind == syntax.DeclFunction:
				if !c.opts.ignoreRPC {
					c.warn(warnRPCUnsupported(decl))
				}
			case node.Generic:
				c.warn(warnGenericSkipped(decl))
			default:
				c.registerDecl(decl)
			}
		}
	}

	if len(c.structs)+len(c.enums) == 0 {
		c.warn(warnNoDeclarations())
		return
	}
	c.log.Debug().
		Strs("messages", declNames(c.structs)).
		Strs("enums", declNames(c.enums)).
		Strs("known_types", c.known.Sorted()).
		Msg("collected declarations")
}

func (c *compiler) registerDecl(decl *declInfo) {
	name := decl.node.Name
	if prev, conflict := c.declsByName[name]; conflict {
		c.warn(warnDuplicateDecl(decl, prev))
	}
	c.declsByName[name] = decl
	c.known.Add(name)
	switch decl.node.Kind {
	case syntax.DeclStruct:
		c.structs = append(c.structs, decl)
	case syntax.DeclEnum:
		c.enums = append(c.enums, decl)
	}
}

func declNames(decls []*declInfo) []string {
	names := make([]string, 0, len(decls))
	for _, decl := range decls {
		names = append(names, decl.node.Name)
	}
	return names
}

func (c *compiler) compileDecls() {
	for _, decl := range c.structs {
		if !c.compileEntity(decl, c.compileMessage) {
			return
		}
	}
	for _, decl := range c.enums {
		if !c.compileEntity(decl, c.compileEnum) {
			return
		}
	}
}

// compileEntity stores the entity built from decl. It returns false if
// compilation must stop.
func (c *compiler) compileEntity(
	decl *declInfo,
	build func(*declInfo) (*schema.Entity, error),
) bool {
	entity, err := build(decl)
	if err != nil {
		if c.opts.strict {
			c.err(err)
			return false
		}
		c.log.Debug().Err(err).Str("entity", decl.node.Name).Msg("dropped entity")
		c.warn(warnEntityDropped(decl, err))
		return true
	}
	if replaced := c.schema.Put(entity); replaced {
		c.log.Debug().Str("entity", entity.Name).Msg("replaced earlier declaration")
	}
	return true
}

func (c *compiler) compileMessage(decl *declInfo) (*schema.Entity, error) {
	lines := decl.node.Lines
	if fieldNumbersOverflow(len(lines)) {
		return nil, errFieldNumberOverflow(decl, len(lines))
	}

	fields := make([]schema.Field, 0, len(lines))
	number := int32(1)
	for ii, line := range lines {
		field, err := c.compileField(decl, ii+1, line, number)
		if err != nil {
			return nil, err
		}
		fields = append(fields, field)
		number = nextFieldNumber(number)
	}
	return schema.NewMessage(decl.node.Name, fields), nil
}

func (c *compiler) compileField(
	decl *declInfo,
	position int,
	line string,
	number int32,
) (schema.Field, error) {
	var name, typeText string
	if sep := fieldSeparator(line); sep >= 0 {
		name = typexpr.FieldName(line[:sep])
		typeText = line[sep+1:]
	} else {
		name = fmt.Sprintf("anonymous_value_%d", position)
		typeText = typexpr.StripVisibility(line)
	}

	sourceType := typexpr.Normalize(typeText)
	resolved, err := c.resolver.Resolve(sourceType, c.known, false)
	if err != nil {
		return schema.Field{}, errFieldType(decl, name, err)
	}
	c.log.Debug().
		Str("message", decl.node.Name).
		Str("field", name).
		Str("source_type", sourceType).
		Str("type", resolved).
		Int32("number", number).
		Msg("parsed field")
	return schema.Field{
		Name:       name,
		SourceType: sourceType,
		Type:       resolved,
		Number:     number,
	}, nil
}

func fieldNumbersOverflow(fieldCount int) bool {
	return fieldCount >= maxFieldLines
}

func nextFieldNumber(number int32) int32 {
	number++
	if number == reservedStart {
		return reservedEnd
	}
	return number
}

// fieldSeparator returns the index of the first ':' in line that is not
// part of a "::" path separator, or -1.
func fieldSeparator(line string) int {
	for ii := 0; ii < len(line); ii++ {
		if line[ii] != ':' {
			continue
		}
		if ii+1 < len(line) && line[ii+1] == ':' {
			ii++
			continue
		}
		return ii
	}
	return -1
}

func (c *compiler) compileEnum(decl *declInfo) (*schema.Entity, error) {
	values := make([]schema.EnumValue, 0, len(decl.node.Lines))
	for _, line := range decl.node.Lines {
		variant := typexpr.Normalize(line)
		if variant == "" {
			continue
		}
		if strings.ContainsAny(variant, "({") {
			return nil, errValueCarryingVariant(decl, variant)
		}
		if strings.Contains(variant, "=") {
			return nil, errVariantDiscriminant(decl, variant)
		}
		values = append(values, schema.EnumValue{
			Name:  variant,
			Value: int32(len(values)),
		})
	}
	return schema.NewEnum(decl.node.Name, values), nil
}

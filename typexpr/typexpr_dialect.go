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
	"maps"
	"slices"
)

// Primitive is a proto3 scalar keyword.
type Primitive string

const (
	Double Primitive = "double"
	Float  Primitive = "float"
	Int64  Primitive = "int64"
	Int32  Primitive = "int32"
	Uint64 Primitive = "uint64"
	Uint32 Primitive = "uint32"
	Bool   Primitive = "bool"
	String Primitive = "string"
	Bytes  Primitive = "bytes"
)

var primitives = []Primitive{
	Double, Float, Int64, Int32, Uint64, Uint32, Bool, String, Bytes,
}

// ParsePrimitive returns the primitive named s, if there is one.
func ParsePrimitive(s string) (Primitive, bool) {
	for _, p := range primitives {
		if string(p) == s {
			return p, true
		}
	}
	return "", false
}

// MapKey reports whether the primitive may be used as the key of a map.
func (p Primitive) MapKey() bool {
	switch p {
	case Double, Float, Bytes:
		return false
	}
	return true
}

type wrapperKind uint8

const (
	wrapList wrapperKind = iota + 1
	wrapOptional
	wrapMap
)

func (k wrapperKind) String() string {
	switch k {
	case wrapList:
		return "repeated"
	case wrapOptional:
		return "optional"
	case wrapMap:
		return "map"
	}
	return "unknown"
}

// A Dialect names the scalar types and the generic wrappers of a source
// language. Dialects are values; the With* methods return modified copies.
type Dialect struct {
	scalars  map[string]Primitive
	wrappers map[string]wrapperKind
}

// RustDialect matches the spelling of types in Rust struct definitions.
func RustDialect() Dialect {
	return Dialect{
		scalars: map[string]Primitive{
			"f64":     Double,
			"f32":     Float,
			"f16":     Float,
			"f8":      Float,
			"i64":     Int64,
			"i32":     Int32,
			"i16":     Int32,
			"i8":      Int32,
			"u64":     Uint64,
			"u32":     Uint32,
			"u16":     Uint32,
			"u8":      Uint32,
			"bool":    Bool,
			"String":  String,
			"Vec<u8>": Bytes,
		},
		wrappers: map[string]wrapperKind{
			"Vec":      wrapList,
			"Option":   wrapOptional,
			"HashMap":  wrapMap,
			"BTreeMap": wrapMap,
		},
	}
}

// GenericDialect is a language-neutral spelling of the same type set.
func GenericDialect() Dialect {
	return Dialect{
		scalars: map[string]Primitive{
			"F64":    Double,
			"F32":    Float,
			"F16":    Float,
			"F8":     Float,
			"I64":    Int64,
			"I32":    Int32,
			"I16":    Int32,
			"I8":     Int32,
			"U64":    Uint64,
			"U32":    Uint32,
			"U16":    Uint32,
			"U8":     Uint32,
			"Bool":   Bool,
			"String": String,
			"Bytes":  Bytes,
		},
		wrappers: map[string]wrapperKind{
			"List":     wrapList,
			"Optional": wrapOptional,
			"Map":      wrapMap,
		},
	}
}

func (d Dialect) clone() Dialect {
	return Dialect{
		scalars:  maps.Clone(d.scalars),
		wrappers: maps.Clone(d.wrappers),
	}
}

// WithScalar returns a copy of the dialect in which name resolves to p.
func (d Dialect) WithScalar(name string, p Primitive) Dialect {
	out := d.clone()
	if out.scalars == nil {
		out.scalars = make(map[string]Primitive)
	}
	out.scalars[name] = p
	return out
}

func (d Dialect) withWrapper(name string, kind wrapperKind) Dialect {
	out := d.clone()
	if out.wrappers == nil {
		out.wrappers = make(map[string]wrapperKind)
	}
	out.wrappers[name] = kind
	return out
}

// WithList returns a copy of the dialect with an additional single-argument
// list wrapper.
func (d Dialect) WithList(name string) Dialect {
	return d.withWrapper(name, wrapList)
}

// WithOptional returns a copy of the dialect with an additional
// single-argument optional wrapper.
func (d Dialect) WithOptional(name string) Dialect {
	return d.withWrapper(name, wrapOptional)
}

// WithMap returns a copy of the dialect with an additional two-argument map
// wrapper.
func (d Dialect) WithMap(name string) Dialect {
	return d.withWrapper(name, wrapMap)
}

// Scalar looks up a scalar type name.
func (d Dialect) Scalar(name string) (Primitive, bool) {
	p, ok := d.scalars[name]
	return p, ok
}

// Scalars returns the scalar type names of the dialect, sorted.
func (d Dialect) Scalars() []string {
	return slices.Sorted(maps.Keys(d.scalars))
}

// Wrappers returns the wrapper names of the dialect, sorted.
func (d Dialect) Wrappers() []string {
	return slices.Sorted(maps.Keys(d.wrappers))
}

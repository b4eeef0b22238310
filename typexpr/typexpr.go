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

// Package typexpr resolves the textual type of a struct field into a proto3
// field type.
//
// A type expression is a scalar name, a declared type name, or a wrapper
// applied to type arguments:
//
//	expr := scalar | head '<' args '>' | identifier
//	args := expr (',' expr)*
//
// Wrappers are list ("Vec<T>"), optional ("Option<T>") and map
// ("HashMap<K, V>"). Their results are "repeated T", "optional T" and
// "map<K, V>".
package typexpr

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// KnownTypes is the set of declared type names that field types may refer to.
type KnownTypes map[string]struct{}

func NewKnownTypes(names ...string) KnownTypes {
	known := make(KnownTypes, len(names))
	for _, name := range names {
		known[name] = struct{}{}
	}
	return known
}

func (k KnownTypes) Add(name string) {
	k[name] = struct{}{}
}

func (k KnownTypes) Contains(name string) bool {
	_, ok := k[name]
	return ok
}

func (k KnownTypes) Sorted() []string {
	return slices.Sorted(maps.Keys(k))
}

// A Resolver resolves type expressions of one dialect. It holds no state
// besides the dialect and may be shared.
type Resolver struct {
	dialect Dialect
}

func NewResolver(dialect Dialect) *Resolver {
	return &Resolver{dialect: dialect}
}

var rust = NewResolver(RustDialect())

// Resolve resolves expr with the Rust dialect.
func Resolve(expr string, known KnownTypes, mapKey bool) (string, error) {
	return rust.Resolve(expr, known, mapKey)
}

func (r *Resolver) Dialect() Dialect {
	return r.dialect
}

// Resolve returns the proto3 type of expr. If mapKey is true the result must
// be usable as the key of a proto3 map.
func (r *Resolver) Resolve(expr string, known KnownTypes, mapKey bool) (string, error) {
	if expr == "" {
		return "", errEmptyType()
	}

	if p, ok := r.dialect.scalars[expr]; ok {
		if mapKey && !p.MapKey() {
			return "", errUnsupportedMapKey(expr)
		}
		return string(p), nil
	}

	if head, inner, ok := splitGeneric(expr); ok {
		if kind, ok := r.dialect.wrappers[head]; ok {
			return r.resolveWrapper(expr, head, inner, kind, known, mapKey)
		}
	}

	if known.Contains(expr) {
		return expr, nil
	}
	return "", errUnknownType(expr)
}

func (r *Resolver) resolveWrapper(
	expr string,
	head string,
	inner string,
	kind wrapperKind,
	known KnownTypes,
	mapKey bool,
) (string, error) {
	if mapKey {
		return "", errUnsupportedMapKey(expr)
	}
	args, err := SplitArgs(Normalize(inner))
	if err != nil {
		return "", err
	}

	switch kind {
	case wrapList, wrapOptional:
		if len(args) != 1 {
			return "", errWrongArity(expr, head, 1, len(args))
		}
		resolved, err := r.Resolve(Normalize(args[0]), known, false)
		if err != nil {
			return "", err
		}
		modifier := kind.String()
		if strings.HasPrefix(resolved, modifier+" ") {
			return "", errDoubleWrapped(expr, modifier)
		}
		return modifier + " " + resolved, nil
	case wrapMap:
		if len(args) != 2 {
			return "", errWrongArity(expr, head, 2, len(args))
		}
		key, err := r.Resolve(Normalize(args[0]), known, true)
		if err != nil {
			return "", err
		}
		value, err := r.Resolve(Normalize(args[1]), known, false)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("map<%s, %s>", key, value), nil
	}
	panic(fmt.Sprintf("unknown wrapper kind %d", kind))
}

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

package schema_test

import (
	"testing"

	"github.com/markcda/r2proto3/internal/testutil"
	"github.com/markcda/r2proto3/schema"
)

func TestPutReplaces(t *testing.T) {
	s := schema.New()
	first := schema.NewMessage("Foo", []schema.Field{
		{Name: "a", SourceType: "u32", Type: "uint32", Number: 1},
	})
	second := schema.NewEnum("Foo", []schema.EnumValue{{Name: "A", Value: 0}})

	testutil.ExpectFalse(t, s.Put(first))
	testutil.ExpectTrue(t, s.Put(second))
	testutil.ExpectEq(t, 1, s.Len())

	got, ok := s.Get("Foo")
	testutil.ExpectTrue(t, ok)
	testutil.ExpectEq(t, second, got)
	testutil.ExpectEq(t, schema.KindEnum, got.Kind)
}

func TestEntitiesSorted(t *testing.T) {
	s := schema.New()
	for _, name := range []string{"Zeta", "Alpha", "Mid"} {
		s.Put(schema.NewMessage(name, nil))
	}

	var names []string
	for entity := range s.Entities() {
		names = append(names, entity.Name)
	}
	testutil.ExpectSliceEq(t, []string{"Alpha", "Mid", "Zeta"}, names)
	testutil.ExpectSliceEq(t, names, s.Names())

	_, ok := s.Get("Missing")
	testutil.ExpectFalse(t, ok)
}

func TestZeroSchema(t *testing.T) {
	var s schema.Schema
	testutil.ExpectEq(t, 0, s.Len())
	s.Put(schema.NewEnum("E", nil))
	testutil.ExpectEq(t, 1, s.Len())
}

func TestKindString(t *testing.T) {
	testutil.ExpectEq(t, "message", schema.KindMessage.String())
	testutil.ExpectEq(t, "enum", schema.KindEnum.String())
	testutil.ExpectEq(t, "Kind(9)", schema.Kind(9).String())
}

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

// Package schema holds the translated proto3 entities.
package schema

import (
	"fmt"
	"iter"
	"maps"
	"slices"
)

type Kind uint8

const (
	KindMessage Kind = iota + 1
	KindEnum
)

func (k Kind) String() string {
	switch k {
	case KindMessage:
		return "message"
	case KindEnum:
		return "enum"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// A Field is one numbered field of a message.
type Field struct {
	Name string

	// SourceType is the normalized type expression the field was
	// declared with.
	SourceType string

	// Type is the proto3 type, e.g. "repeated string" or
	// "map<string, uint32>".
	Type string

	Number int32
}

type EnumValue struct {
	Name  string
	Value int32
}

// An Entity is a message (with Fields) or an enum (with Values).
type Entity struct {
	Name   string
	Kind   Kind
	Fields []Field
	Values []EnumValue
}

func NewMessage(name string, fields []Field) *Entity {
	return &Entity{Name: name, Kind: KindMessage, Fields: fields}
}

func NewEnum(name string, values []EnumValue) *Entity {
	return &Entity{Name: name, Kind: KindEnum, Values: values}
}

// Schema is a set of entities keyed by name.
type Schema struct {
	entities map[string]*Entity
}

func New() *Schema {
	return &Schema{entities: make(map[string]*Entity)}
}

// Put stores an entity, replacing any entity of the same name. It reports
// whether a previous entity was replaced.
func (s *Schema) Put(entity *Entity) (replaced bool) {
	if s.entities == nil {
		s.entities = make(map[string]*Entity)
	}
	_, replaced = s.entities[entity.Name]
	s.entities[entity.Name] = entity
	return replaced
}

func (s *Schema) Get(name string) (*Entity, bool) {
	entity, ok := s.entities[name]
	return entity, ok
}

func (s *Schema) Len() int {
	return len(s.entities)
}

// Names returns the entity names in ascending order.
func (s *Schema) Names() []string {
	return slices.Sorted(maps.Keys(s.entities))
}

// Entities iterates over the entities in ascending name order.
func (s *Schema) Entities() iter.Seq[*Entity] {
	return func(yield func(*Entity) bool) {
		for _, name := range s.Names() {
			if !yield(s.entities[name]) {
				return
			}
		}
	}
}

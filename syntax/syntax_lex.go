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
	"bytes"
	"unicode/utf8"

	"github.com/viant/parsly"
	"github.com/viant/parsly/matcher"
)

const (
	whitespaceToken = iota
	lineCommentToken
	blockCommentToken
	attributeToken
	doubleQuotedToken
	charToken
	identifierToken
	braceBlockToken
	parenBlockToken
	genericBlockToken
	semicolonToken
	anyToken
)

var whitespaceMatcher = parsly.NewToken(whitespaceToken, "Whitespace", matcher.NewWhiteSpace())
var lineCommentMatcher = parsly.NewToken(lineCommentToken, "LineComment", &lineCommentMatch{})
var blockCommentMatcher = parsly.NewToken(blockCommentToken, "BlockComment", matcher.NewSeqBlock("/*", "*/"))
var attributeMatcher = parsly.NewToken(attributeToken, "Attribute", &attributeMatch{})
var doubleQuotedMatcher = parsly.NewToken(doubleQuotedToken, "DoubleQuote", &stringMatch{})
var charMatcher = parsly.NewToken(charToken, "Char", &charMatch{})
var identifierMatcher = parsly.NewToken(identifierToken, "Identifier", &identifierMatch{})
var braceBlockMatcher = parsly.NewToken(braceBlockToken, "{ ... }", &blockMatch{open: '{', close: '}'})
var parenBlockMatcher = parsly.NewToken(parenBlockToken, "( ... )", &blockMatch{open: '(', close: ')'})
var genericBlockMatcher = parsly.NewToken(genericBlockToken, "< ... >", &blockMatch{open: '<', close: '>'})
var semicolonMatcher = parsly.NewToken(semicolonToken, ";", matcher.NewByte(';'))
var anyMatcher = parsly.NewToken(anyToken, "Any", &anyMatch{})

type anyMatch struct{}

func (a *anyMatch) Match(cursor *parsly.Cursor) int {
	if cursor.Pos < cursor.InputSize {
		return 1
	}
	return 0
}

type identifierMatch struct{}

func (i *identifierMatch) Match(cursor *parsly.Cursor) int {
	input := cursor.Input[:cursor.InputSize]
	pos := cursor.Pos
	if pos >= len(input) {
		return 0
	}
	// Raw identifiers: r#type
	if input[pos] == 'r' && pos+2 < len(input) && input[pos+1] == '#' && isIdentifierStart(input[pos+2]) {
		pos += 2
	}
	if !isIdentifierStart(input[pos]) {
		return 0
	}
	pos++
	for pos < len(input) && isIdentifierPart(input[pos]) {
		pos++
	}
	return pos - cursor.Pos
}

func isIdentifierStart(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_'
}

func isIdentifierPart(b byte) bool {
	return isIdentifierStart(b) || (b >= '0' && b <= '9')
}

type lineCommentMatch struct{}

func (c *lineCommentMatch) Match(cursor *parsly.Cursor) int {
	input := cursor.Input[cursor.Pos:cursor.InputSize]
	if !bytes.HasPrefix(input, []byte("//")) {
		return 0
	}
	if end := bytes.IndexByte(input, '\n'); end >= 0 {
		return end
	}
	return len(input)
}

// attributeMatch matches "#[...]" and "#![...]", skipping string literals
// in the attribute arguments.
type attributeMatch struct{}

func (a *attributeMatch) Match(cursor *parsly.Cursor) int {
	input := cursor.Input[cursor.Pos:cursor.InputSize]
	if len(input) < 2 || input[0] != '#' {
		return 0
	}
	ii := 1
	if input[ii] == '!' {
		ii++
	}
	if ii >= len(input) || input[ii] != '[' {
		return 0
	}
	depth := 0
	for ; ii < len(input); ii++ {
		switch input[ii] {
		case '"':
			for ii++; ii < len(input) && input[ii] != '"'; ii++ {
				if input[ii] == '\\' {
					ii++
				}
			}
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return ii + 1
			}
		}
	}
	return 0
}

// charMatch matches character literals. A quote that does not start a
// character literal is a lifetime ('a) and is left to other matchers.
type charMatch struct{}

func (c *charMatch) Match(cursor *parsly.Cursor) int {
	return charLen(cursor.Input[cursor.Pos:cursor.InputSize])
}

func charLen(input []byte) int {
	if len(input) < 3 || input[0] != '\'' {
		return 0
	}
	if input[1] == '\\' {
		if len(input) < 4 {
			return 0
		}
		if end := bytes.IndexByte(input[3:], '\''); end >= 0 {
			return end + 4
		}
		return 0
	}
	_, size := utf8.DecodeRune(input[1:])
	if 1+size < len(input) && input[1+size] == '\'' {
		return size + 2
	}
	return 0
}

type stringMatch struct{}

func (s *stringMatch) Match(cursor *parsly.Cursor) int {
	return stringLen(cursor.Input[cursor.Pos:cursor.InputSize])
}

func stringLen(input []byte) int {
	if len(input) == 0 || input[0] != '"' {
		return 0
	}
	for ii := 1; ii < len(input); ii++ {
		switch input[ii] {
		case '\\':
			ii++
		case '"':
			return ii + 1
		}
	}
	return 0
}

// blockMatch matches a bracketed block such as "{ ... }", counting nested
// brackets of the same kind. Comments, string literals and character
// literals inside the block are skipped. Any other quote starts a lifetime.
type blockMatch struct {
	open  byte
	close byte
}

func (b *blockMatch) Match(cursor *parsly.Cursor) int {
	input := cursor.Input[cursor.Pos:cursor.InputSize]
	if len(input) == 0 || input[0] != b.open {
		return 0
	}
	depth := 0
	for ii := 0; ii < len(input); {
		rest := input[ii:]
		switch {
		case bytes.HasPrefix(rest, []byte("//")):
			end := bytes.IndexByte(rest, '\n')
			if end < 0 {
				return 0
			}
			ii += end
		case bytes.HasPrefix(rest, []byte("/*")):
			end := bytes.Index(rest[2:], []byte("*/"))
			if end < 0 {
				return 0
			}
			ii += end + 4
		case rest[0] == '"':
			n := stringLen(rest)
			if n == 0 {
				return 0
			}
			ii += n
		case rest[0] == '\'':
			ii += max(charLen(rest), 1)
		case rest[0] == b.close:
			ii++
			// The arrow of "Fn() -> T" closes nothing.
			if b.close == '>' && ii > 1 && input[ii-2] == '-' {
				continue
			}
			depth--
			if depth == 0 {
				return ii
			}
		case rest[0] == b.open:
			depth++
			ii++
		default:
			ii++
		}
	}
	return 0
}

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

// Package syntax finds the Rust declarations marked for translation.
//
// A declaration is marked by a line comment directly above it:
//
//	// NOTE: ToProtobuf
//	#[derive(Debug)]
//	pub struct Account {
//	    pub id: u64,
//	}
//
// Attributes, comments and visibility qualifiers may appear between the
// marker and the item keyword. Anything else cancels the marker.
package syntax

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/viant/parsly"

	"github.com/markcda/r2proto3/typexpr"
)

const DefaultMarker = "NOTE: ToProtobuf"

type ExtractOption interface {
	apply(*ExtractOptions)
}

type extractOption func(*ExtractOptions)

func (opt extractOption) apply(opts *ExtractOptions) {
	opt(opts)
}

// WithPath sets the path reported by File.Position.
func WithPath(path string) ExtractOption {
	return extractOption(func(opts *ExtractOptions) {
		opts.path = path
	})
}

// WithMarker replaces the text of the marker comment.
func WithMarker(marker string) ExtractOption {
	return extractOption(func(opts *ExtractOptions) {
		opts.marker = marker
	})
}

func Extract(src []byte, opts ...ExtractOption) (*File, error) {
	return NewExtractOptions(opts...).Extract(src)
}

type ExtractOptions struct {
	path   string
	marker string
}

func NewExtractOptions(opts ...ExtractOption) *ExtractOptions {
	out := &ExtractOptions{
		marker: DefaultMarker,
	}
	for _, opt := range opts {
		opt.apply(out)
	}
	return out
}

func (opts *ExtractOptions) Extract(src []byte) (*File, error) {
	if len(src) > maxSrcLen {
		return nil, errSourceTooLong(len(src))
	}
	if !utf8.Valid(src) {
		return nil, errInvalidUtf8(src)
	}
	x := &extractor{
		marker: opts.marker,
		file:   newFile(opts.path, src),
		cursor: parsly.NewCursor(opts.path, src, 0),
	}
	if err := x.run(); err != nil {
		return nil, err
	}
	return x.file, nil
}

type extractor struct {
	marker string
	file   *File
	cursor *parsly.Cursor
}

func (x *extractor) run() error {
	cursor := x.cursor
	for cursor.Pos < cursor.InputSize {
		matched := cursor.MatchAfterOptional(whitespaceMatcher,
			lineCommentMatcher,
			blockCommentMatcher,
			doubleQuotedMatcher,
			charMatcher,
			identifierMatcher,
			anyMatcher,
		)
		switch matched.Code {
		case parsly.EOF:
			return nil
		case lineCommentToken:
			if x.isMarker(matched.Text(cursor)) {
				if err := x.extractItem(); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (x *extractor) isMarker(comment string) bool {
	return strings.TrimSpace(strings.TrimPrefix(comment, "//")) == x.marker
}

func (x *extractor) extractItem() error {
	cursor := x.cursor
	for {
		matched := cursor.MatchAfterOptional(whitespaceMatcher,
			lineCommentMatcher,
			blockCommentMatcher,
			attributeMatcher,
			identifierMatcher,
		)
		switch matched.Code {
		case lineCommentToken, blockCommentToken, attributeToken:
			continue
		case identifierToken:
		default:
			return nil
		}

		switch matched.Text(cursor) {
		case "pub":
			cursor.MatchAfterOptional(whitespaceMatcher, parenBlockMatcher)
		case "extern":
			cursor.MatchAfterOptional(whitespaceMatcher, doubleQuotedMatcher)
		case "async", "const", "unsafe", "default":
		case "struct":
			return x.extractType(DeclStruct)
		case "enum":
			return x.extractType(DeclEnum)
		case "fn":
			return x.extractFunction()
		default:
			return nil
		}
	}
}

func (x *extractor) extractName(kind DeclKind) (*Decl, error) {
	cursor := x.cursor
	matched := cursor.MatchAfterOptional(whitespaceMatcher, identifierMatcher)
	if matched.Code != identifierToken {
		return nil, errMissingName(kind, x.nextOffset())
	}
	text := matched.Text(cursor)
	return &Decl{
		Kind: kind,
		Name: strings.TrimPrefix(text, "r#"),
		Span: NewSpan(uint32(matched.Offset), uint32(len(text))),
	}, nil
}

func (x *extractor) extractType(kind DeclKind) error {
	decl, err := x.extractName(kind)
	if err != nil {
		return err
	}

	cursor := x.cursor
	candidates := []*parsly.Token{genericBlockMatcher, braceBlockMatcher}
	if kind == DeclStruct {
		candidates = append(candidates, parenBlockMatcher, semicolonMatcher)
	}
	matched := cursor.MatchAfterOptional(whitespaceMatcher, candidates...)
	switch matched.Code {
	case genericBlockToken:
		decl.Generic = true
		// Skip the body. A where clause leaves it to the main loop.
		cursor.MatchAfterOptional(whitespaceMatcher, braceBlockMatcher, parenBlockMatcher, semicolonMatcher)
	case braceBlockToken:
		body := matched.Text(cursor)
		decl.Lines = bodyLines(body[1 : len(body)-1])
	case parenBlockToken:
		body := matched.Text(cursor)
		decl.Lines = tupleLines(body[1 : len(body)-1])
	case semicolonToken:
	default:
		return errUnterminatedBody(kind, decl.Name, x.nextOffset())
	}
	x.file.Decls = append(x.file.Decls, decl)
	return nil
}

func (x *extractor) extractFunction() error {
	decl, err := x.extractName(DeclFunction)
	if err != nil {
		return err
	}
	x.file.Decls = append(x.file.Decls, decl)
	return nil
}

// nextOffset returns the offset of the next non-whitespace byte.
func (x *extractor) nextOffset() int {
	pos := x.cursor.Pos
	for pos < x.cursor.InputSize && isSpace(x.cursor.Input[pos]) {
		pos++
	}
	return pos
}

// bodyLines splits the body of a struct or enum into trimmed lines, dropping
// blank lines and lines that are only attributes or comments. Several fields
// on one line are split at their top-level commas.
func bodyLines(body string) []string {
	var lines []string
	for _, line := range strings.Split(stripAttributes(body), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line[0] == '#' || line[0] == '/' {
			continue
		}
		lines = append(lines, splitLine(line)...)
	}
	return lines
}

func splitLine(line string) []string {
	code := line
	if idx := strings.Index(line, "//"); idx >= 0 {
		code = line[:idx]
	}
	parts, err := typexpr.SplitArgs(code)
	if err != nil {
		return []string{line}
	}
	var out []string
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) <= 1 {
		return []string{line}
	}
	return out
}

// tupleLines returns one line per component of a tuple struct.
func tupleLines(body string) []string {
	body = strings.TrimSpace(stripComments(stripAttributes(body)))
	if body == "" {
		return nil
	}
	parts, err := typexpr.SplitArgs(body)
	if err != nil {
		return []string{body}
	}
	var lines []string
	for _, part := range parts {
		if part = strings.Join(strings.Fields(part), " "); part != "" {
			lines = append(lines, part)
		}
	}
	return lines
}

// stripAttributes removes attributes and block comments, keeping their
// newlines so that line structure is preserved.
func stripAttributes(body string) string {
	return strip(body, attributeToken, blockCommentToken)
}

func stripComments(body string) string {
	return strip(body, lineCommentToken)
}

func strip(body string, codes ...int) string {
	src := []byte(body)
	cursor := parsly.NewCursor("", src, 0)
	var out strings.Builder
	out.Grow(len(src))
	for cursor.Pos < cursor.InputSize {
		start := cursor.Pos
		matched := cursor.MatchAfterOptional(whitespaceMatcher,
			lineCommentMatcher,
			blockCommentMatcher,
			attributeMatcher,
			doubleQuotedMatcher,
			anyMatcher,
		)
		if matched.Code == parsly.EOF {
			out.Write(src[start:])
			break
		}
		out.Write(src[start:matched.Offset])
		text := matched.Text(cursor)
		if slices.Contains(codes, matched.Code) {
			out.WriteString(strings.Repeat("\n", strings.Count(text, "\n")))
		} else {
			out.WriteString(text)
		}
	}
	return out.String()
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

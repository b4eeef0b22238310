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
	"strings"
)

// Normalize strips surrounding whitespace, a trailing "//" comment and one
// trailing comma from a line of declaration text.
func Normalize(text string) string {
	text = strings.TrimSpace(text)
	if idx := strings.Index(text, "//"); idx >= 0 {
		text = strings.TrimSpace(text[:idx])
	}
	text = strings.TrimSuffix(text, ",")
	return strings.TrimSpace(text)
}

// StripVisibility removes a leading visibility qualifier such as "pub" or
// "pub(crate)".
func StripVisibility(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "pub") {
		return text
	}
	rest := text[3:]
	switch {
	case rest == "":
		return ""
	case rest[0] == '(':
		end := strings.IndexByte(rest, ')')
		if end < 0 {
			return text
		}
		rest = rest[end+1:]
	case rest[0] == ' ' || rest[0] == '\t':
	default:
		// "publisher", "pub_key", ...
		return text
	}
	return strings.TrimSpace(rest)
}

// FieldName returns the bare field name of the text before a field's ':'
// separator.
func FieldName(text string) string {
	return strings.TrimPrefix(StripVisibility(text), "r#")
}

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

// SplitArgs splits a comma-separated list of type arguments at the commas
// that are not nested inside '<>', '()' or '[]'. The returned arguments are
// not trimmed.
//
//	SplitArgs("A<B,C>, D") // ["A<B,C>", " D"]
func SplitArgs(inner string) ([]string, error) {
	var (
		args  []string
		stack []byte
		start int
	)
	for ii := 0; ii < len(inner); ii++ {
		c := inner[ii]
		switch c {
		case '<', '(', '[':
			stack = append(stack, c)
		case '>', ')', ']':
			// The arrow of a function type ("fn(u8) -> u8") closes nothing.
			if c == '>' && ii > 0 && inner[ii-1] == '-' {
				continue
			}
			if len(stack) == 0 || stack[len(stack)-1] != opener(c) {
				return nil, errMismatchedDelimiters(inner, ii)
			}
			stack = stack[:len(stack)-1]
		case ',':
			if len(stack) == 0 {
				args = append(args, inner[start:ii])
				start = ii + 1
			}
		}
	}
	if len(stack) > 0 {
		return nil, errMismatchedDelimiters(inner, len(inner))
	}
	return append(args, inner[start:]), nil
}

func opener(closer byte) byte {
	switch closer {
	case '>':
		return '<'
	case ')':
		return '('
	}
	return '['
}

// splitGeneric splits "path::Head<inner>" into its last path segment and
// the text between the outermost angle brackets.
func splitGeneric(expr string) (head, inner string, ok bool) {
	open := strings.IndexByte(expr, '<')
	if open <= 0 || expr[len(expr)-1] != '>' {
		return "", "", false
	}
	path := strings.TrimSpace(expr[:open])
	for ii := 0; ii < len(path); ii++ {
		if !isPathByte(path[ii]) {
			return "", "", false
		}
	}
	head = path
	if idx := strings.LastIndex(path, "::"); idx >= 0 {
		head = path[idx+2:]
	}
	if head == "" || !isIdentStart(head[0]) {
		return "", "", false
	}
	return head, expr[open+1 : len(expr)-1], true
}

func isIdentStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isPathByte(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9') || c == ':'
}

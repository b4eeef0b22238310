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

package main

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/markcda/r2proto3/compiler"
)

type cmdCheck struct {
	env *env
	runOptions
}

func (*cmdCheck) help() *commandHelp {
	return &commandHelp{
		usage:   "check [CRATE_ROOT]",
		summary: "Report marked types that can't be translated",
	}
}

func (cmd *cmdCheck) flags(flags *pflag.FlagSet) {
	cmd.register(flags)
}

func (cmd *cmdCheck) run(ctx context.Context, argv []string) int {
	cfg, err := cmd.loadConfig(ctx, cmd.env, argv)
	if err != nil {
		fmt.Fprintln(cmd.env.stderr, err)
		return 1
	}

	result, err := compile(ctx, cmd.env, cfg, newLogger(cmd.env, cfg))
	if err != nil {
		fmt.Fprintln(cmd.env.stderr, err)
		return 1
	}
	if len(result.Errors) > 0 {
		return 1
	}

	dropped := 0
	for _, warn := range result.Warnings {
		if warn.Code() == compiler.CodeEntityDropped {
			dropped++
		}
	}
	fmt.Fprintf(cmd.env.stdout, "%d types translated, %d dropped\n", result.Schema.Len(), dropped)
	if dropped > 0 {
		return 1
	}
	return 0
}

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
	"io"
	"strings"

	"github.com/spf13/pflag"
	"github.com/viant/afs/file"

	"github.com/markcda/r2proto3/encoding/prototext"
)

type cmdGenerate struct {
	env *env
	runOptions

	outPath string
}

func (*cmdGenerate) help() *commandHelp {
	return &commandHelp{
		usage:   "generate [CRATE_ROOT]",
		summary: "Write the proto3 schema of a crate's marked types",
	}
}

func (cmd *cmdGenerate) flags(flags *pflag.FlagSet) {
	cmd.register(flags)
	flags.StringVarP(&cmd.outPath, "output", "o", "", "Output file, or '-' for stdout (default \"generated.proto\")")
}

func (cmd *cmdGenerate) run(ctx context.Context, argv []string) int {
	cfg, err := cmd.loadConfig(ctx, cmd.env, argv)
	if err != nil {
		fmt.Fprintln(cmd.env.stderr, err)
		return 1
	}
	if cmd.changed("output") {
		cfg.Output = cmd.outPath
	}
	if cfg.Output == "" {
		fmt.Fprintln(cmd.env.stderr, "No output file specified (set --output=)")
		return 1
	}

	logger := newLogger(cmd.env, cfg)
	result, err := compile(ctx, cmd.env, cfg, logger)
	if err != nil {
		fmt.Fprintln(cmd.env.stderr, err)
		return 1
	}
	if len(result.Errors) > 0 {
		return 1
	}

	output := prototext.Encode(result.Schema, prototext.WithPackage(cfg.Package))
	if cfg.Output == "-" {
		if _, err := io.WriteString(cmd.env.stdout, output); err != nil {
			fmt.Fprintln(cmd.env.stderr, err)
			return 1
		}
		return 0
	}

	outURL := storageURL(cfg.Output)
	err = cmd.env.fs.Upload(ctx, outURL, file.DefaultFileOsMode, strings.NewReader(output))
	if err != nil {
		fmt.Fprintln(cmd.env.stderr, err)
		return 1
	}
	logger.Info().
		Str("output", outURL).
		Int("entities", result.Schema.Len()).
		Msg("schema written")
	return 0
}

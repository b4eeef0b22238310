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
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"

	"github.com/markcda/r2proto3/plugin"
)

type cmdCodegen struct {
	env *env

	outDir     string
	pluginPath string
	options    map[string]string
}

func (*cmdCodegen) help() *commandHelp {
	return &commandHelp{
		usage:   "codegen SCHEMA [LANGUAGE]",
		summary: "Run a WebAssembly code generator on a generated schema",
	}
}

func (cmd *cmdCodegen) flags(flags *pflag.FlagSet) {
	flags.StringVarP(&cmd.outDir, "output", "o", "", "Directory to write generated files into")
	flags.StringVar(&cmd.pluginPath, "plugin-path", "", "Directories to search for plugins, separated by ':'")
	flags.StringToStringVar(&cmd.options, "option", nil, "Plugin option as key=value (repeatable)")
}

func (cmd *cmdCodegen) run(ctx context.Context, argv []string) int {
	e := cmd.env
	if len(argv) < 1 || len(argv) > 2 {
		fmt.Fprintln(e.stderr, "usage: r2proto3 codegen --output=DIR SCHEMA [LANGUAGE]")
		return 1
	}
	if cmd.outDir == "" {
		fmt.Fprintln(e.stderr, "No output directory specified (set --output=)")
		return 1
	}
	schemaPath := argv[0]
	language := "go"
	if len(argv) == 2 {
		language = argv[1]
	}

	schemaBuf, err := e.fs.DownloadWithURL(ctx, storageURL(schemaPath))
	if err != nil {
		fmt.Fprintln(e.stderr, err)
		return 1
	}
	request := &plugin.Request{
		Schema:  string(schemaBuf),
		Options: cmd.options,
	}
	if !strings.Contains(schemaPath, "://") && !filepath.IsAbs(schemaPath) {
		request.SourcePath = splitPath(filepath.Clean(schemaPath))
	}

	pluginPath, err := plugin.Locate(cmd.pluginPath, language)
	if err != nil {
		fmt.Fprintln(e.stderr, err)
		return 1
	}
	pluginBin, err := e.fs.DownloadWithURL(ctx, storageURL(pluginPath))
	if err != nil {
		fmt.Fprintln(e.stderr, err)
		return 1
	}

	response, err := plugin.Run(ctx, pluginBin, language, request)
	if err != nil {
		fmt.Fprintln(e.stderr, err)
		return 1
	}
	if len(response.OutputFiles) == 0 {
		fmt.Fprintln(e.stderr, "Plugin did not generate any output files")
		return 1
	}

	outDir := storageURL(cmd.outDir)
	for _, outputFile := range response.OutputFiles {
		relPath, err := outputFile.RelPath()
		if err != nil {
			fmt.Fprintln(e.stderr, err)
			return 1
		}
		outURL := url.Join(outDir, relPath)
		err = e.fs.Upload(ctx, outURL, file.DefaultFileOsMode, bytes.NewReader(outputFile.Content))
		if err != nil {
			fmt.Fprintln(e.stderr, err)
			return 1
		}
	}
	return 0
}
